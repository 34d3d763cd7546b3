//go:build !nogpu

package cli

import (
	"github.com/gogpu/noisefx"
	"github.com/gogpu/noisefx/gpu"
)

// deviceFactory returns the factory the render session opens devices with.
func (c *CLI) deviceFactory(o *renderOpts) (noisefx.DeviceFactory, error) {
	if !o.gpu {
		return c.cpuFactory(o), nil
	}
	return func() (noisefx.Device, error) {
		dev, err := gpu.Open()
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("Opened GPU device", "device", dev.Name())
		return dev, nil
	}, nil
}

func (c *CLI) cpuFactory(o *renderOpts) noisefx.DeviceFactory {
	return func() (noisefx.Device, error) {
		dev := noisefx.NewCPUDevice(o.workers)
		c.Logger.Debug("Opened CPU device", "workers", dev.Workers())
		return dev, nil
	}
}
