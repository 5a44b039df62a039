package st7789

import (
	"encoding/binary"
	"fmt"
)

// ColorMode is the interface pixel format programmed with COLMOD.
type ColorMode byte

const (
	// ColorRGB565 sends 16 bits per pixel as 2 bytes.
	ColorRGB565 ColorMode = 0x55
	// ColorRGB666 sends 18 bits per pixel as 3 bytes, 6 high bits per channel.
	ColorRGB666 ColorMode = 0x66
)

// BytesPerPixel returns the number of bytes one pixel occupies on the wire.
func (m ColorMode) BytesPerPixel() int {
	if m == ColorRGB666 {
		return 3
	}
	return 2
}

func (m ColorMode) valid() bool {
	return m == ColorRGB565 || m == ColorRGB666
}

func (m ColorMode) String() string {
	switch m {
	case ColorRGB565:
		return "RGB565"
	case ColorRGB666:
		return "RGB666"
	default:
		return fmt.Sprintf("ColorMode(0x%02X)", byte(m))
	}
}

// ChannelOrder is the byte order of the three channels in 3-byte mode.
//
// It depends on how the panel is wired and is independent from the MADCTL
// BGR bit.
type ChannelOrder uint8

const (
	OrderRGB ChannelOrder = iota
	OrderBGR
	OrderGBR
)

func (o ChannelOrder) String() string {
	switch o {
	case OrderRGB:
		return "RGB"
	case OrderBGR:
		return "BGR"
	case OrderGBR:
		return "GBR"
	default:
		return fmt.Sprintf("ChannelOrder(%d)", uint8(o))
	}
}

// Encoder converts colors to the controller wire format.
type Encoder struct {
	Mode  ColorMode
	Order ChannelOrder
}

// BytesPerPixel returns the encoded size of one pixel.
func (e Encoder) BytesPerPixel() int {
	return e.Mode.BytesPerPixel()
}

// AppendRGB565 appends the wire encoding of the RGB565 color c to b.
//
// In 2-byte mode c is written big-endian. In 3-byte mode each channel is
// shifted into the high bits of its byte (R<<3, G<<2, B<<3), so 0xF800
// becomes 248, 0, 0.
func (e Encoder) AppendRGB565(b []byte, c uint16) []byte {
	if e.Mode != ColorRGB666 {
		return binary.BigEndian.AppendUint16(b, c)
	}
	r := uint8(c>>11) << 3
	g := uint8(c>>5&0x3F) << 2
	bl := uint8(c&0x1F) << 3
	return e.appendChannels(b, r, g, bl)
}

// AppendRGB888 appends the wire encoding of a 24-bit color to b.
//
// In 3-byte mode the channels are written as is; the controller ignores the
// two low bits of each. In 2-byte mode the color is packed to RGB565 first.
func (e Encoder) AppendRGB888(b []byte, r, g, bl uint8) []byte {
	if e.Mode != ColorRGB666 {
		return binary.BigEndian.AppendUint16(b, PackRGB565(r, g, bl))
	}
	return e.appendChannels(b, r, g, bl)
}

func (e Encoder) appendChannels(b []byte, r, g, bl uint8) []byte {
	switch e.Order {
	case OrderBGR:
		return append(b, bl, g, r)
	case OrderGBR:
		return append(b, g, bl, r)
	default:
		return append(b, r, g, bl)
	}
}

// PackRGB565 packs 8-bit channels into a RGB565 value, dropping low bits.
func PackRGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
