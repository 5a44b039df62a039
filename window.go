package st7789

// SetWindow selects the inclusive rectangle (x0, y0)-(x1, y1), in logical
// coordinates, that the next memory write fills.
//
// Bounds are not checked. In landscape orientations the X range goes out on
// RASET and the Y range on CASET.
func (d *Dev) SetWindow(x0, y0, x1, y1 uint16) error {
	cols0, cols1, rows0, rows1 := x0, x1, y0, y1
	if d.orientation.swapsAxes() {
		cols0, cols1, rows0, rows1 = y0, y1, x0, x1
	}
	if err := d.setRange(cmdCASET, cols0, cols1); err != nil {
		return err
	}
	return d.setRange(cmdRASET, rows0, rows1)
}

// setRange sends an address set command with start and end big-endian.
func (d *Dev) setRange(cmd byte, start, end uint16) error {
	d.addr[0] = byte(start >> 8)
	d.addr[1] = byte(start)
	d.addr[2] = byte(end >> 8)
	d.addr[3] = byte(end)
	return wrap(d.t.CommandParams(cmd, d.addr[:]))
}

// beginWrite selects the w x h window at (x, y) and starts a memory write.
// The caller must then send exactly w*h pixels.
func (d *Dev) beginWrite(x, y, w, h uint16) error {
	if err := d.SetWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	return wrap(d.t.Command(cmdRAMWR))
}

// checkRect validates a non-empty rectangle against the logical bounds.
func (d *Dev) checkRect(x, y, w, h uint16) error {
	lw, lh := d.size()
	if uint32(x)+uint32(w) > uint32(lw) || uint32(y)+uint32(h) > uint32(lh) {
		return ErrOutOfBounds
	}
	return nil
}
