package st7789

import (
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// defaultMaxTxSize is used when the connection does not report its limits.
const defaultMaxTxSize = 4096

// SPITransport implements Transport on a periph.io SPI connection with
// separate DC and RST lines.
type SPITransport struct {
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin, low for commands
	rst gpio.PinOut // Reset pin, active low

	// maxTxSize is the largest single transaction the connection accepts.
	maxTxSize int
	cmd       [1]byte
}

// NewSPITransport wraps an already connected SPI connection.
func NewSPITransport(c conn.Conn, dc, rst gpio.PinOut) *SPITransport {
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize <= 0 {
		maxTxSize = defaultMaxTxSize
	}
	return &SPITransport{
		c:         c,
		dc:        dc,
		rst:       rst,
		maxTxSize: maxTxSize,
	}
}

// NewSPI creates a new ST7789 device connected via SPI and initializes it.
//
// The SPI port is configured for opts.Frequency (40MHz when zero), Mode0,
// 8-bit transfers. Both dc and rst must be provided and configured as
// outputs.
//
// opts can be nil to use DefaultOpts.
func NewSPI(p spi.Port, dc, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	freq := opts.Frequency
	if freq == 0 {
		freq = 40 * physic.MegaHertz
	}

	c, err := p.Connect(freq, spi.Mode0, 8)
	if err != nil {
		return nil, wrap(err)
	}

	d, err := New(NewSPITransport(c, dc, rst), opts)
	if err != nil {
		return nil, err
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// ResetAssert implements Transport.
func (s *SPITransport) ResetAssert() error {
	return s.rst.Out(gpio.Low)
}

// ResetRelease implements Transport.
func (s *SPITransport) ResetRelease() error {
	return s.rst.Out(gpio.High)
}

// Delay implements Transport.
func (s *SPITransport) Delay(d time.Duration) {
	time.Sleep(d)
}

// Command implements Transport.
func (s *SPITransport) Command(cmd byte) error {
	if err := s.dc.Out(gpio.Low); err != nil {
		return err
	}
	s.cmd[0] = cmd
	return s.c.Tx(s.cmd[:], nil)
}

// CommandParams implements Transport.
func (s *SPITransport) CommandParams(cmd byte, params []byte) error {
	if err := s.Command(cmd); err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	return s.Data(params)
}

// Data implements Transport. Bursts larger than the connection limit are
// split into several transactions.
func (s *SPITransport) Data(p []byte) error {
	if err := s.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(p) != 0 {
		chunk := p
		if len(chunk) > s.maxTxSize {
			chunk = p[:s.maxTxSize]
		}
		if err := s.c.Tx(chunk, nil); err != nil {
			return err
		}
		p = p[len(chunk):]
	}
	return nil
}

// Unbound reports missing connection or pins.
func (s *SPITransport) Unbound() []string {
	if s == nil {
		return append([]string(nil), primitives...)
	}
	var missing []string
	if s.rst == nil {
		missing = append(missing, "ResetAssert", "ResetRelease")
	}
	if s.c == nil || s.dc == nil {
		missing = append(missing, "Command", "CommandParams", "Data")
	}
	return missing
}

// String returns the underlying connection name.
func (s *SPITransport) String() string {
	if s.c == nil {
		return "st7789.SPITransport{}"
	}
	return "st7789.SPITransport{" + s.c.String() + "}"
}

var _ Transport = (*SPITransport)(nil)
