package st7789

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"
)

func newTestSPITransport(t *testing.T) (*SPITransport, *spitest.Record, *gpiotest.Pin, *gpiotest.Pin) {
	t.Helper()
	rec := &spitest.Record{}
	c, err := rec.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		t.Fatalf("Connect() = %v", err)
	}
	dc := &gpiotest.Pin{N: "DC", Num: 25}
	rst := &gpiotest.Pin{N: "RST", Num: 27}
	return NewSPITransport(c, dc, rst), rec, dc, rst
}

func TestSPITransportCommand(t *testing.T) {
	tr, rec, dc, _ := newTestSPITransport(t)
	dc.L = gpio.High

	if err := tr.Command(0x29); err != nil {
		t.Fatalf("Command() = %v", err)
	}
	if len(rec.Ops) != 1 || !bytes.Equal(rec.Ops[0].W, []byte{0x29}) {
		t.Fatalf("Ops = %v, want one write of 0x29", rec.Ops)
	}
	if dc.L != gpio.Low {
		t.Error("DC should be low after a command")
	}
}

func TestSPITransportCommandParams(t *testing.T) {
	tr, rec, dc, _ := newTestSPITransport(t)

	if err := tr.CommandParams(0x2A, []byte{0x00, 0x00, 0x00, 0xEF}); err != nil {
		t.Fatalf("CommandParams() = %v", err)
	}
	if len(rec.Ops) != 2 {
		t.Fatalf("got %d transactions, want 2", len(rec.Ops))
	}
	if !bytes.Equal(rec.Ops[0].W, []byte{0x2A}) {
		t.Errorf("command = % X, want 2A", rec.Ops[0].W)
	}
	if !bytes.Equal(rec.Ops[1].W, []byte{0x00, 0x00, 0x00, 0xEF}) {
		t.Errorf("params = % X", rec.Ops[1].W)
	}
	if dc.L != gpio.High {
		t.Error("DC should be high after parameters")
	}

	// No parameters: command only
	if err := tr.CommandParams(0x11, nil); err != nil {
		t.Fatalf("CommandParams() = %v", err)
	}
	if len(rec.Ops) != 3 || dc.L != gpio.Low {
		t.Errorf("empty parameters sent %d transactions, DC = %v", len(rec.Ops)-2, dc.L)
	}
}

func TestSPITransportDataChunking(t *testing.T) {
	tr, rec, dc, _ := newTestSPITransport(t)
	tr.maxTxSize = 16

	data := make([]byte, 40)
	for i := range data {
		data[i] = byte(i)
	}
	if err := tr.Data(data); err != nil {
		t.Fatalf("Data() = %v", err)
	}
	if dc.L != gpio.High {
		t.Error("DC should be high for data")
	}

	wantLens := []int{16, 16, 8}
	if len(rec.Ops) != len(wantLens) {
		t.Fatalf("got %d transactions, want %d", len(rec.Ops), len(wantLens))
	}
	var got []byte
	for i, op := range rec.Ops {
		if len(op.W) != wantLens[i] {
			t.Errorf("transaction #%d is %d bytes, want %d", i, len(op.W), wantLens[i])
		}
		got = append(got, op.W...)
	}
	if !bytes.Equal(got, data) {
		t.Error("chunked data does not match input")
	}
}

func TestSPITransportReset(t *testing.T) {
	tr, rec, _, rst := newTestSPITransport(t)
	rst.L = gpio.High

	if err := tr.ResetAssert(); err != nil {
		t.Fatalf("ResetAssert() = %v", err)
	}
	if rst.L != gpio.Low {
		t.Error("RST should be low while asserted")
	}
	if err := tr.ResetRelease(); err != nil {
		t.Fatalf("ResetRelease() = %v", err)
	}
	if rst.L != gpio.High {
		t.Error("RST should be high after release")
	}
	if len(rec.Ops) != 0 {
		t.Errorf("reset used the SPI bus %d times", len(rec.Ops))
	}
}

func TestSPITransportDefaultMaxTxSize(t *testing.T) {
	tr := NewSPITransport(nil, nil, nil)
	if tr.maxTxSize != defaultMaxTxSize {
		t.Errorf("maxTxSize = %d, want %d", tr.maxTxSize, defaultMaxTxSize)
	}
	if got := tr.String(); got != "st7789.SPITransport{}" {
		t.Errorf("String() = %q", got)
	}
}

func TestSPITransportNilUnbound(t *testing.T) {
	var tr *SPITransport
	if got := tr.Unbound(); len(got) != len(primitives) {
		t.Errorf("Unbound() on nil = %v, want every primitive", got)
	}
}

func TestSPITransportUnbound(t *testing.T) {
	tests := []struct {
		name        string
		dc, rst     gpio.PinOut
		wantMissing int
	}{
		{"all bound", &gpiotest.Pin{N: "DC"}, &gpiotest.Pin{N: "RST"}, 0},
		{"no reset", &gpiotest.Pin{N: "DC"}, nil, 2},
		{"no dc", nil, &gpiotest.Pin{N: "RST"}, 3},
		{"nothing", nil, nil, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &spitest.Record{}
			c, err := rec.Connect(10*physic.MegaHertz, spi.Mode0, 8)
			if err != nil {
				t.Fatalf("Connect() = %v", err)
			}
			tr := NewSPITransport(c, tt.dc, tt.rst)
			if got := tr.Unbound(); len(got) != tt.wantMissing {
				t.Errorf("Unbound() = %v, want %d entries", got, tt.wantMissing)
			}
		})
	}
}

func TestNewSPI(t *testing.T) {
	rec := &spitest.Record{}
	dc := &gpiotest.Pin{N: "DC", Num: 25}
	rst := &gpiotest.Pin{N: "RST", Num: 27}

	dev, err := NewSPI(rec, dc, rst, &Opts{W: 240, H: 240})
	if err != nil {
		t.Fatalf("NewSPI() = %v", err)
	}
	if got := dev.String(); got != "st7789.Dev{240x240}" {
		t.Errorf("String() = %q", got)
	}
	if rst.L != gpio.High {
		t.Error("RST should be released after init")
	}

	want := [][]byte{
		{0x11},
		{0x3A}, {0x55},
		{0x36}, {0x48},
		{0x2A}, {0x00, 0x00, 0x00, 0xEF},
		{0x2B}, {0x00, 0x00, 0x00, 0xEF},
		{0x29},
	}
	if len(rec.Ops) != len(want) {
		t.Fatalf("got %d transactions, want %d", len(rec.Ops), len(want))
	}
	for i := range want {
		if !bytes.Equal(rec.Ops[i].W, want[i]) {
			t.Errorf("transaction #%d = % X, want % X", i, rec.Ops[i].W, want[i])
		}
	}
}

func TestNewSPIMissingReset(t *testing.T) {
	rec := &spitest.Record{}
	dev, err := NewSPI(rec, &gpiotest.Pin{N: "DC"}, nil, nil)
	if dev != nil || !errors.Is(err, ErrMissingCapability) {
		t.Fatalf("NewSPI() = %v, %v, want ErrMissingCapability", dev, err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("NewSPI() sent %d transactions before failing", len(rec.Ops))
	}
}

func TestNewSPIInvalidOpts(t *testing.T) {
	rec := &spitest.Record{}
	if _, err := NewSPI(rec, &gpiotest.Pin{N: "DC"}, &gpiotest.Pin{N: "RST"}, &Opts{W: 400, H: 240}); err == nil {
		t.Fatal("NewSPI() with a 400 pixel width should fail")
	}
	if len(rec.Ops) != 0 {
		t.Errorf("NewSPI() sent %d transactions before failing", len(rec.Ops))
	}
}
