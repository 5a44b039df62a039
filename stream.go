package st7789

import (
	"image"

	"github.com/flavioheleno/st7789/image565"
	"periph.io/x/conn/v3/display"
)

// streamPixels is the number of pixels sent per data burst.
const streamPixels = 32

// streamBufLen holds streamPixels pixels in the widest color mode.
const streamBufLen = streamPixels * 3

// FillRect fills the w x h rectangle at (x, y) with the RGB565 color c.
//
// A rectangle with no area is a no-op.
func (d *Dev) FillRect(x, y, w, h uint16, c uint16) error {
	if w == 0 || h == 0 {
		return nil
	}
	if err := d.checkRect(x, y, w, h); err != nil {
		return err
	}
	px := d.Encoder().AppendRGB565(d.stream[:0], c)
	return d.fill(x, y, w, h, len(px))
}

// FillRectRGB fills the w x h rectangle at (x, y) with a 24-bit color,
// bypassing the RGB565 expansion. It requires ColorRGB666 unless the
// rectangle is empty.
func (d *Dev) FillRectRGB(x, y, w, h uint16, r, g, b uint8) error {
	if w == 0 || h == 0 {
		return nil
	}
	if d.conv.Mode != ColorRGB666 {
		return ErrColorMode
	}
	if err := d.checkRect(x, y, w, h); err != nil {
		return err
	}
	px := d.Encoder().AppendRGB888(d.stream[:0], r, g, b)
	return d.fill(x, y, w, h, len(px))
}

// FillScreen fills the whole display with the RGB565 color c.
func (d *Dev) FillScreen(c uint16) error {
	w, h := d.size()
	return d.FillRect(0, 0, w, h, c)
}

// fill replicates the first bpp bytes of the stream buffer and sends w*h
// copies of them in bursts of at most streamPixels pixels.
func (d *Dev) fill(x, y, w, h uint16, bpp int) error {
	buf := d.stream[:streamPixels*bpp]
	for i := bpp; i < len(buf); i += bpp {
		copy(buf[i:i+bpp], buf[:bpp])
	}
	if err := d.beginWrite(x, y, w, h); err != nil {
		return err
	}
	for n := uint32(w) * uint32(h); n > 0; {
		chunk := uint32(streamPixels)
		if n < chunk {
			chunk = n
		}
		if err := d.t.Data(buf[:chunk*uint32(bpp)]); err != nil {
			return wrap(err)
		}
		n -= chunk
	}
	return nil
}

// Blit sends pix, already in the wire format of the current color mode, to
// the w x h rectangle at (x, y) as a single burst.
//
// pix must hold at least w*h pixels; extra bytes are ignored. Use Encoder to
// build buffers for ColorRGB666.
func (d *Dev) Blit(x, y, w, h uint16, pix []byte) error {
	if w == 0 || h == 0 {
		return nil
	}
	if err := d.checkRect(x, y, w, h); err != nil {
		return err
	}
	n := int(uint32(w)*uint32(h)) * d.conv.Mode.BytesPerPixel()
	if len(pix) < n {
		return ErrBufferSize
	}
	if err := d.beginWrite(x, y, w, h); err != nil {
		return err
	}
	return wrap(d.t.Data(pix[:n]))
}

// Draw draws src onto the display. It implements display.Drawer.
//
// dst is clipped to the display bounds; sp is the point of src aligned with
// dst.Min. Pixels are encoded on the fly through the stream buffer.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	r := dst.Intersect(d.Bounds())
	if r.Empty() {
		return nil
	}
	sp = sp.Add(r.Min.Sub(dst.Min))

	if img, ok := src.(*image565.Image); ok && d.conv.Mode == ColorRGB565 {
		if sr := (image.Rectangle{Min: sp, Max: sp.Add(r.Size())}); sr.In(img.Rect) {
			return d.drawRGB565(r, img, sr)
		}
	}

	if err := d.beginWrite(uint16(r.Min.X), uint16(r.Min.Y), uint16(r.Dx()), uint16(r.Dy())); err != nil {
		return err
	}
	enc := d.Encoder()
	limit := streamPixels * enc.BytesPerPixel()
	buf := d.stream[:0]
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			cr, cg, cb, _ := src.At(sp.X+x, sp.Y+y).RGBA()
			buf = enc.AppendRGB888(buf, uint8(cr>>8), uint8(cg>>8), uint8(cb>>8))
			if len(buf) == limit {
				if err := d.t.Data(buf); err != nil {
					return wrap(err)
				}
				buf = d.stream[:0]
			}
		}
	}
	if len(buf) != 0 {
		return wrap(d.t.Data(buf))
	}
	return nil
}

// drawRGB565 sends the sr part of img to r without conversion, one burst when
// the rows are contiguous and one burst per row otherwise.
func (d *Dev) drawRGB565(r image.Rectangle, img *image565.Image, sr image.Rectangle) error {
	if err := d.beginWrite(uint16(r.Min.X), uint16(r.Min.Y), uint16(r.Dx()), uint16(r.Dy())); err != nil {
		return err
	}
	rowLen := sr.Dx() * 2
	start := img.PixOffset(sr.Min.X, sr.Min.Y)
	if img.Stride == rowLen {
		return wrap(d.t.Data(img.Pix[start : start+rowLen*sr.Dy()]))
	}
	for y := 0; y < sr.Dy(); y++ {
		off := start + y*img.Stride
		if err := d.t.Data(img.Pix[off : off+rowLen]); err != nil {
			return wrap(err)
		}
	}
	return nil
}

var _ display.Drawer = (*Dev)(nil)
