// Package st7789 controls a ST7789 TFT LCD controller.
//
// The ST7789 drives panels of up to 240x320 pixels in 16-bit or 18-bit color.
// The driver only sequences commands; the bus is provided by a Transport.
//
// See the examples for how to use this package.
package st7789

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/flavioheleno/st7789/image565"
	"periph.io/x/conn/v3/physic"
)

// Command set.
const (
	cmdSWRESET = 0x01 // Software reset
	cmdSLPOUT  = 0x11 // Sleep out
	cmdINVON   = 0x21 // Display inversion on
	cmdDISPON  = 0x29 // Display on
	cmdCASET   = 0x2A // Column address set
	cmdRASET   = 0x2B // Row address set
	cmdRAMWR   = 0x2C // Memory write
	cmdMADCTL  = 0x36 // Memory data access control
	cmdCOLMOD  = 0x3A // Interface pixel format
)

// MADCTL bits.
const (
	madctlMY  = 0x80 // Row address order
	madctlMX  = 0x40 // Column address order
	madctlMV  = 0x20 // Row/column exchange
	madctlBGR = 0x08 // BGR panel
)

// Frame memory size along its long and short sides.
const (
	maxDim      = 320
	maxShortDim = 240
)

// Datasheet minimums for the init sequence delays.
const (
	minResetPulse    = 10 * time.Millisecond
	minResetSettle   = 120 * time.Millisecond
	minSoftwareReset = 120 * time.Millisecond
	minSleepOut      = 120 * time.Millisecond
)

var (
	// ErrMissingCapability is returned by Init when the transport cannot
	// perform every primitive the init sequence needs.
	ErrMissingCapability = errors.New("st7789: missing transport capability")
	// ErrOutOfBounds is returned when a rectangle exceeds the display.
	ErrOutOfBounds = errors.New("st7789: rectangle outside display area")
	// ErrBufferSize is returned when a pixel buffer is too short.
	ErrBufferSize = errors.New("st7789: invalid buffer size")
	// ErrColorMode is returned when an operation is not valid in the current
	// color mode.
	ErrColorMode = errors.New("st7789: operation not supported in this color mode")
)

// Orientation selects the memory scan direction.
type Orientation uint8

const (
	Portrait Orientation = iota
	Landscape
	PortraitInverted
	LandscapeInverted
)

// swapsAxes reports whether rows and columns are exchanged.
func (o Orientation) swapsAxes() bool {
	return o == Landscape || o == LandscapeInverted
}

func (o Orientation) madctl() byte {
	switch o {
	case Landscape:
		return madctlMV
	case PortraitInverted:
		return madctlMY
	case LandscapeInverted:
		return madctlMX | madctlMY | madctlMV
	default:
		return madctlMX
	}
}

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	case PortraitInverted:
		return "portrait-inverted"
	case LandscapeInverted:
		return "landscape-inverted"
	default:
		return fmt.Sprintf("Orientation(%d)", uint8(o))
	}
}

// Timing holds the settle delays of the init sequence.
type Timing struct {
	ResetPulse    time.Duration // RESX held low
	ResetSettle   time.Duration // After RESX release, NVM load
	SoftwareReset time.Duration // After SWRESET, when sent
	SleepOut      time.Duration // After SLPOUT
	DisplayOn     time.Duration // After DISPON
}

// Convention is one complete wiring and timing profile for a panel.
//
// Modules in the wild disagree on the pixel format, the channel order and
// whether the panel needs inversion. Pick the preset matching the module, or
// build one; presets are never mixed field by field. New rejects a Timing
// below the datasheet minimums.
type Convention struct {
	Mode          ColorMode
	Order         ChannelOrder // Channel order in 3-byte mode
	BGR           bool         // Set the MADCTL BGR bit
	Invert        bool         // Send INVON during init
	SoftwareReset bool         // Send SWRESET after the hardware reset
	Timing        Timing
}

// The presets are shared by every caller and must not be modified. Copy one
// to derive a custom Convention; New keeps its own copy.
var (
	// ConventionBGR565 is the default: 16-bit pixels on a BGR panel, short
	// delays, no inversion.
	ConventionBGR565 = Convention{
		Mode:  ColorRGB565,
		Order: OrderRGB,
		BGR:   true,
		Timing: Timing{
			ResetPulse:  10 * time.Millisecond,
			ResetSettle: 120 * time.Millisecond,
			SleepOut:    120 * time.Millisecond,
			DisplayOn:   20 * time.Millisecond,
		},
	}

	// ConventionGBR666 is 18-bit pixels sent in G, B, R byte order on a RGB
	// panel that needs inversion, with longer delays.
	ConventionGBR666 = Convention{
		Mode:          ColorRGB666,
		Order:         OrderGBR,
		BGR:           false,
		Invert:        true,
		SoftwareReset: true,
		Timing: Timing{
			ResetPulse:    10 * time.Millisecond,
			ResetSettle:   150 * time.Millisecond,
			SoftwareReset: 150 * time.Millisecond,
			SleepOut:      150 * time.Millisecond,
			DisplayOn:     100 * time.Millisecond,
		},
	}
)

// Opts is the configuration for the ST7789 display.
type Opts struct {
	// Native panel dimensions in pixels, before rotation
	// Both must be between 1 and 320 and the shorter one at most 240.
	W int // Width (default: 240)
	H int // Height (default: 320)

	Orientation Orientation

	// Convention defaults to ConventionBGR565 when nil.
	Convention *Convention

	// Frequency is only used by NewSPI (default: 40MHz).
	Frequency physic.Frequency
}

// DefaultOpts is a 240x320 panel in portrait with the default convention.
var DefaultOpts = Opts{
	W:           240,
	H:           320,
	Orientation: Portrait,
}

// Dev is the device handle for the ST7789 display.
//
// Dev is not safe for concurrent use. An interrupted window and write
// sequence leaves the controller addressing state undefined, so callers
// must serialize every call.
type Dev struct {
	t Transport

	width, height uint16
	orientation   Orientation
	conv          Convention

	addr   [4]byte
	stream [streamBufLen]byte
}

// New creates a device bound to t. It does not touch the hardware; call Init
// before drawing.
//
// opts can be nil to use DefaultOpts.
func New(t Transport, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	if opts.W <= 0 || opts.W > maxDim {
		return nil, errors.New("st7789: width must be between 1 and 320")
	}
	if opts.H <= 0 || opts.H > maxDim {
		return nil, errors.New("st7789: height must be between 1 and 320")
	}
	if min(opts.W, opts.H) > maxShortDim {
		return nil, errors.New("st7789: shorter side must be at most 240")
	}
	if opts.Orientation > LandscapeInverted {
		return nil, fmt.Errorf("st7789: invalid orientation %d", uint8(opts.Orientation))
	}
	conv := ConventionBGR565
	if opts.Convention != nil {
		conv = *opts.Convention
	}
	if !conv.Mode.valid() {
		return nil, fmt.Errorf("st7789: invalid color mode %s", conv.Mode)
	}
	if conv.Order > OrderGBR {
		return nil, fmt.Errorf("st7789: invalid channel order %s", conv.Order)
	}
	if err := conv.checkTiming(); err != nil {
		return nil, err
	}
	return &Dev{
		t:           t,
		width:       uint16(opts.W),
		height:      uint16(opts.H),
		orientation: opts.Orientation,
		conv:        conv,
	}, nil
}

func (c *Convention) checkTiming() error {
	tm := c.Timing
	switch {
	case tm.ResetPulse < minResetPulse:
		return fmt.Errorf("st7789: reset pulse %v below %v", tm.ResetPulse, minResetPulse)
	case tm.ResetSettle < minResetSettle:
		return fmt.Errorf("st7789: reset settle %v below %v", tm.ResetSettle, minResetSettle)
	case c.SoftwareReset && tm.SoftwareReset < minSoftwareReset:
		return fmt.Errorf("st7789: software reset delay %v below %v", tm.SoftwareReset, minSoftwareReset)
	case tm.SleepOut < minSleepOut:
		return fmt.Errorf("st7789: sleep out delay %v below %v", tm.SleepOut, minSleepOut)
	}
	return nil
}

// Init resets the controller and brings it to an active display state with
// the full frame selected.
//
// It fails with ErrMissingCapability, without any bus access, if the
// transport is not fully bound.
func (d *Dev) Init() error {
	if missing := unboundPrimitives(d.t); len(missing) != 0 {
		return fmt.Errorf("%w: %s", ErrMissingCapability, strings.Join(missing, ", "))
	}
	tm := d.conv.Timing

	// Hardware reset
	if err := d.t.ResetAssert(); err != nil {
		return wrap(err)
	}
	d.t.Delay(tm.ResetPulse)
	if err := d.t.ResetRelease(); err != nil {
		return wrap(err)
	}
	d.t.Delay(tm.ResetSettle)

	if d.conv.SoftwareReset {
		if err := d.t.Command(cmdSWRESET); err != nil {
			return wrap(err)
		}
		d.t.Delay(tm.SoftwareReset)
	}

	if err := d.t.Command(cmdSLPOUT); err != nil {
		return wrap(err)
	}
	d.t.Delay(tm.SleepOut)

	if err := d.SetColorMode(d.conv.Mode); err != nil {
		return err
	}
	if err := d.SetOrientation(d.orientation); err != nil {
		return err
	}
	if d.conv.Invert {
		if err := d.t.Command(cmdINVON); err != nil {
			return wrap(err)
		}
	}

	w, h := d.size()
	if err := d.SetWindow(0, 0, w-1, h-1); err != nil {
		return err
	}

	if err := d.t.Command(cmdDISPON); err != nil {
		return wrap(err)
	}
	d.t.Delay(tm.DisplayOn)
	return nil
}

// SetOrientation changes the memory scan direction and reprograms MADCTL.
//
// Geometry is not resent; redraw after changing the orientation.
func (d *Dev) SetOrientation(o Orientation) error {
	if o > LandscapeInverted {
		return fmt.Errorf("st7789: invalid orientation %d", uint8(o))
	}
	d.orientation = o
	d.addr[0] = d.madctl()
	return wrap(d.t.CommandParams(cmdMADCTL, d.addr[:1]))
}

// SetColorMode changes the interface pixel format and reprograms COLMOD.
func (d *Dev) SetColorMode(m ColorMode) error {
	if !m.valid() {
		return fmt.Errorf("st7789: invalid color mode %s", m)
	}
	d.conv.Mode = m
	d.addr[0] = byte(m)
	return wrap(d.t.CommandParams(cmdCOLMOD, d.addr[:1]))
}

func (d *Dev) madctl() byte {
	v := d.orientation.madctl()
	if d.conv.BGR {
		v |= madctlBGR
	}
	return v
}

// Orientation returns the current orientation.
func (d *Dev) Orientation() Orientation {
	return d.orientation
}

// ColorMode returns the current interface pixel format.
func (d *Dev) ColorMode() ColorMode {
	return d.conv.Mode
}

// Encoder returns the encoder matching the current color mode and channel
// order. Use it to pre-encode buffers for Blit.
func (d *Dev) Encoder() Encoder {
	return Encoder{Mode: d.conv.Mode, Order: d.conv.Order}
}

// size returns the logical dimensions for the current orientation.
func (d *Dev) size() (w, h uint16) {
	if d.orientation.swapsAxes() {
		return d.height, d.width
	}
	return d.width, d.height
}

// Bounds returns the logical display bounds for the current orientation.
func (d *Dev) Bounds() image.Rectangle {
	w, h := d.size()
	return image.Rect(0, 0, int(w), int(h))
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image565.RGB565Model
}

// Halt implements conn.Resource.
//
// The controller has no teardown command in this driver; the panel keeps
// showing the last frame.
func (d *Dev) Halt() error {
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7789.Dev{%dx%d}", d.width, d.height)
}

// wrap prefixes transport errors with the package name.
func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), "st7789: ") {
		return err
	}
	return fmt.Errorf("st7789: %w", err)
}
