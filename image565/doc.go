// Package image565 provides a 16-bit RGB565 image format for the ST7789 display controller.
//
// The ST7789 in 2-byte mode (COLMOD 0x55) expects each pixel as a big-endian
// RGB565 word: 5 bits of red, 6 bits of green, 5 bits of blue.
//
// Memory layout example for a 2-pixel row:
//
//	Pixels: 0       1
//	Colors: red     green
//	Bytes:  F8 00   07 E0
//
// This package provides:
//
// - RGB565: A color type holding a packed 16-bit value
// - RGB565Model: A color model for converting standard Go colors to RGB565
// - Image: An image.Image implementation whose Pix can be sent to the display as is
//
// Example usage:
//
//	// Create a 240x320 image
//	img := image565.NewImage(image.Rect(0, 0, 240, 320))
//
//	// Set a pixel to pure red
//	img.SetRGB565(10, 20, image565.RGB565(0xF800))
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
package image565
