// Package st7789 controls a ST7789 TFT LCD controller.
//
// The ST7789 is a 262K color TFT controller with a 240×320 frame memory.
// This driver turns drawing operations into the controller command protocol
// and leaves the physical bus to a Transport supplied by the caller.
//
// # Display Characteristics
//
// - 16-bit (RGB565, 2 bytes per pixel) or 18-bit (RGB666, 3 bytes per pixel) interface formats
// - Panels up to 240×320 pixels (common modules: 240×240, 240×320, 135×240)
// - Four orientations selected through the MADCTL register
// - Window addressing (CASET/RASET) followed by a memory write (RAMWR)
//
// # Hardware Connection
//
// Connect the ST7789 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select (or GND if always selected)
//	RES         → GPIO for hardware reset
//	BLK         → 3.3V or a GPIO for the backlight
//
// # Basic Usage
//
// Example of creating and using the display with periph.io:
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"github.com/flavioheleno/st7789"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Get Data/Command and Reset GPIO pins
//		dcPin := gpioreg.ByName("GPIO25")
//		rstPin := gpioreg.ByName("GPIO27")
//
//		// Create and initialize the device
//		dev, _ := st7789.NewSPI(spiBus, dcPin, rstPin, &st7789.Opts{
//			W: 240,
//			H: 320,
//		})
//
//		// Fill the screen with pure red
//		dev.FillScreen(0xF800)
//	}
//
// # Custom Transports
//
// Any bus can drive the controller by implementing Transport, or by binding
// plain functions with TransportFuncs:
//
//	dev, _ := st7789.New(&st7789.TransportFuncs{
//		ResetAssertFunc:   func() error { return rst.Out(gpio.Low) },
//		ResetReleaseFunc:  func() error { return rst.Out(gpio.High) },
//		DelayFunc:         time.Sleep,
//		CommandFunc:       writeCommand,
//		CommandParamsFunc: writeCommandParams,
//		DataFunc:          writeData,
//	}, nil)
//	if err := dev.Init(); errors.Is(err, st7789.ErrMissingCapability) {
//		// a function was left nil; nothing was sent to the panel
//	}
//
// On TinyGo, NewBusTransport takes a drivers.SPI bus and two machine.Pin
// values. Dev implements drivers.Displayer so tinyfont and tinydraw can
// render on it directly.
//
// # Conventions
//
// ST7789 modules are not wired consistently. A Convention groups the pixel
// format, the channel order used in 3-byte mode, the MADCTL BGR bit, display
// inversion and the init delays:
//
//	ConventionBGR565  // default: RGB565, BGR panel, 10/120/120/20ms delays
//	ConventionGBR666  // RGB666 sent as G,B,R, RGB panel, inverted, SWRESET, longer delays
//
// Pick the one matching the module; if colors come out swapped or inverted,
// the other preset is the likely fix.
//
// # Orientation
//
// SetOrientation reprograms MADCTL immediately:
//
//	Portrait          → MX
//	Landscape         → MV
//	PortraitInverted  → MY
//	LandscapeInverted → MX | MY | MV
//
// In the landscape orientations the logical X range is sent with RASET and
// the Y range with CASET. Anything on screen must be redrawn after a change.
//
// # Drawing
//
// FillRect streams a constant color through a 32-pixel buffer owned by the
// device, so no memory is allocated per call. Blit sends an already encoded
// buffer as one burst. Draw accepts any image.Image and encodes it on the fly;
// image565.Image in RGB565 mode is sent without conversion.
//
// Rectangles with no area are a no-op. Dev is not safe for concurrent use.
//
// # Datasheet
//
// For detailed register descriptions and timing information, see:
// https://www.newhavendisplay.com/appnotes/datasheets/LCDs/ST7789V.pdf
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
package st7789
