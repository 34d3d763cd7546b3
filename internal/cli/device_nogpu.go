//go:build nogpu

package cli

import (
	"errors"

	"github.com/gogpu/noisefx"
)

var errNoGPUBuild = errors.New("--gpu is not available: noisefx was built with the nogpu tag")

func (c *CLI) deviceFactory(o *renderOpts) (noisefx.DeviceFactory, error) {
	if o.gpu {
		return nil, errNoGPUBuild
	}
	return func() (noisefx.Device, error) {
		dev := noisefx.NewCPUDevice(o.workers)
		c.Logger.Debug("Opened CPU device", "workers", dev.Workers())
		return dev, nil
	}, nil
}
