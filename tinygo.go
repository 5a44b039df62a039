package st7789

import (
	"fmt"
	"image/color"
	"time"

	"tinygo.org/x/drivers"
)

// OutputPin is a digital output. machine.Pin satisfies it.
type OutputPin interface {
	Set(high bool)
}

// BusTransport implements Transport on a TinyGo drivers.SPI bus.
type BusTransport struct {
	bus drivers.SPI
	dc  OutputPin
	rst OutputPin
	cmd [1]byte
}

// NewBusTransport wraps a configured TinyGo SPI bus and its DC and RST pins.
// The pins must already be configured as outputs.
func NewBusTransport(bus drivers.SPI, dc, rst OutputPin) *BusTransport {
	return &BusTransport{bus: bus, dc: dc, rst: rst}
}

// ResetAssert implements Transport.
func (b *BusTransport) ResetAssert() error {
	b.rst.Set(false)
	return nil
}

// ResetRelease implements Transport.
func (b *BusTransport) ResetRelease() error {
	b.rst.Set(true)
	return nil
}

// Delay implements Transport.
func (b *BusTransport) Delay(d time.Duration) {
	time.Sleep(d)
}

// Command implements Transport.
func (b *BusTransport) Command(cmd byte) error {
	b.dc.Set(false)
	b.cmd[0] = cmd
	return b.bus.Tx(b.cmd[:], nil)
}

// CommandParams implements Transport.
func (b *BusTransport) CommandParams(cmd byte, params []byte) error {
	if err := b.Command(cmd); err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	return b.Data(params)
}

// Data implements Transport.
func (b *BusTransport) Data(p []byte) error {
	b.dc.Set(true)
	return b.bus.Tx(p, nil)
}

// Unbound reports a missing bus or pins.
func (b *BusTransport) Unbound() []string {
	var missing []string
	if b.rst == nil {
		missing = append(missing, "ResetAssert", "ResetRelease")
	}
	if b.bus == nil || b.dc == nil {
		missing = append(missing, "Command", "CommandParams", "Data")
	}
	return missing
}

var _ Transport = (*BusTransport)(nil)

// Size returns the logical display size. It implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	w, h := d.size()
	return int16(w), int16(h)
}

// SetPixel draws a single pixel. It implements drivers.Displayer.
//
// Out of range pixels and bus errors are dropped, the interface has no error
// return. In 3-byte mode the full 24-bit color is sent.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 {
		return
	}
	if d.conv.Mode == ColorRGB666 {
		_ = d.FillRectRGB(uint16(x), uint16(y), 1, 1, c.R, c.G, c.B)
		return
	}
	_ = d.FillRect(uint16(x), uint16(y), 1, 1, PackRGB565(c.R, c.G, c.B))
}

// Display implements drivers.Displayer. Pixels are written immediately so
// there is nothing to flush.
func (d *Dev) Display() error {
	return nil
}

// SetRotation maps a clockwise TinyGo rotation to an orientation.
func (d *Dev) SetRotation(r drivers.Rotation) error {
	switch r {
	case drivers.Rotation0:
		return d.SetOrientation(Portrait)
	case drivers.Rotation90:
		return d.SetOrientation(Landscape)
	case drivers.Rotation180:
		return d.SetOrientation(PortraitInverted)
	case drivers.Rotation270:
		return d.SetOrientation(LandscapeInverted)
	default:
		return fmt.Errorf("st7789: invalid rotation %d", r)
	}
}

var _ drivers.Displayer = (*Dev)(nil)
