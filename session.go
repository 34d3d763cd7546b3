package noisefx

import (
	"errors"
	"image"
)

// Session ties a graph to the lifetime of a device.
//
// A session opens a device and builds its graph lazily, on the first
// Render. When a render reports ErrDeviceLost, or when the host calls
// Invalidate, the graph and device are torn down together and rebuilt on
// the next Render. Every rebuild re-applies the current configuration,
// which draws a new seed.
//
// Session is not safe for concurrent use.
type Session struct {
	open DeviceFactory
	opts []Option

	dev   Device
	graph *Graph
	dst   *Image

	cfg     Config
	pending bool // cfg (or a recompute) not yet pushed into graph
	closed  bool
}

// ErrSessionClosed is returned by Render after Close.
var ErrSessionClosed = errors.New("noisefx: session closed")

// NewSession creates a session that opens devices with open. No device is
// opened until the first Render.
func NewSession(open DeviceFactory, dst *Image, opts ...Option) *Session {
	return &Session{
		open:    open,
		opts:    opts,
		dst:     dst,
		cfg:     DefaultConfig(),
		pending: true,
	}
}

// Config returns the session's current configuration.
func (s *Session) Config() Config { return s.cfg }

// Graph returns the live graph, or nil when none is built.
func (s *Session) Graph() *Graph { return s.graph }

// Update records cfg. If it differs from the current configuration the
// graph is updated immediately (or on the next build). Identical
// configurations are ignored.
func (s *Session) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg == s.cfg && !s.pending {
		return nil
	}
	s.cfg = cfg
	return s.apply()
}

// Recompute draws a new seed without changing the configuration.
func (s *Session) Recompute() error {
	s.pending = true
	return s.apply()
}

func (s *Session) apply() error {
	if !s.graph.Built() {
		s.pending = true
		return nil
	}
	if err := s.graph.Update(s.cfg); err != nil {
		return err
	}
	s.pending = false
	return nil
}

// SetDestination replaces the destination image for current and future
// graphs.
func (s *Session) SetDestination(dst *Image) {
	s.dst = dst
	if s.graph.Built() {
		s.graph.SetDestination(dst)
	}
}

// Render builds the graph if needed and renders it into out.
// A lost device invalidates the session before the error is returned.
func (s *Session) Render(out *Image, origin image.Point) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.acquire(); err != nil {
		return err
	}
	if s.pending {
		if err := s.apply(); err != nil {
			return err
		}
	}
	err := s.graph.Render(out, origin)
	if IsDeviceLost(err) {
		s.Invalidate()
	}
	return err
}

// acquire opens a device and builds the graph when none exists. Either
// both succeed or nothing is held.
func (s *Session) acquire() error {
	if s.graph.Built() {
		return nil
	}
	dev, err := s.open()
	if err != nil {
		return resourceError("open device", err)
	}
	g, err := CreateGraph(dev, s.dst, s.opts...)
	if err != nil {
		s.closeDevice(dev)
		return err
	}
	s.dev, s.graph = dev, g
	s.pending = true
	return nil
}

// Invalidate destroys the graph and closes the device. The next Render
// rebuilds both.
func (s *Session) Invalidate() {
	if s.graph != nil {
		DestroyGraph(s.graph)
		s.graph = nil
	}
	if s.dev != nil {
		s.closeDevice(s.dev)
		s.dev = nil
	}
	s.pending = true
}

// Close releases the graph and device. Close is idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.Invalidate()
	s.closed = true
	return nil
}

func (s *Session) closeDevice(dev Device) {
	if dev == nil {
		return
	}
	if err := dev.Close(); err != nil {
		Logger().Warn("noisefx: device close failed", "device", dev.Name(), "err", err)
	}
}
