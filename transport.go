package st7789

import (
	"time"
)

// Transport is the set of bus primitives the driver needs from the host.
//
// Calls are blocking and are issued in order. Slices passed to CommandParams
// and Data are only valid for the duration of the call and must not be
// retained.
type Transport interface {
	// ResetAssert drives the RESX line low.
	ResetAssert() error
	// ResetRelease drives the RESX line high.
	ResetRelease() error
	// Delay blocks for at least d.
	Delay(d time.Duration)
	// Command sends a single command byte with DCX low.
	Command(cmd byte) error
	// CommandParams sends cmd with DCX low followed by params with DCX high.
	CommandParams(cmd byte, params []byte) error
	// Data sends a raw byte stream with DCX high.
	Data(p []byte) error
}

var primitives = []string{"ResetAssert", "ResetRelease", "Delay", "Command", "CommandParams", "Data"}

// unbinder is implemented by transports that may be partially configured.
type unbinder interface {
	// Unbound returns the names of primitives that are not available.
	Unbound() []string
}

// TransportFuncs adapts a set of plain functions to Transport.
//
// Every field must be set before Dev.Init is called, otherwise Init fails with
// ErrMissingCapability.
type TransportFuncs struct {
	ResetAssertFunc   func() error
	ResetReleaseFunc  func() error
	DelayFunc         func(d time.Duration)
	CommandFunc       func(cmd byte) error
	CommandParamsFunc func(cmd byte, params []byte) error
	DataFunc          func(p []byte) error
}

// ResetAssert implements Transport.
func (f *TransportFuncs) ResetAssert() error {
	return f.ResetAssertFunc()
}

// ResetRelease implements Transport.
func (f *TransportFuncs) ResetRelease() error {
	return f.ResetReleaseFunc()
}

// Delay implements Transport.
func (f *TransportFuncs) Delay(d time.Duration) {
	f.DelayFunc(d)
}

// Command implements Transport.
func (f *TransportFuncs) Command(cmd byte) error {
	return f.CommandFunc(cmd)
}

// CommandParams implements Transport.
func (f *TransportFuncs) CommandParams(cmd byte, params []byte) error {
	return f.CommandParamsFunc(cmd, params)
}

// Data implements Transport.
func (f *TransportFuncs) Data(p []byte) error {
	return f.DataFunc(p)
}

// Unbound returns the names of the nil function fields.
func (f *TransportFuncs) Unbound() []string {
	if f == nil {
		return append([]string(nil), primitives...)
	}
	var missing []string
	if f.ResetAssertFunc == nil {
		missing = append(missing, "ResetAssert")
	}
	if f.ResetReleaseFunc == nil {
		missing = append(missing, "ResetRelease")
	}
	if f.DelayFunc == nil {
		missing = append(missing, "Delay")
	}
	if f.CommandFunc == nil {
		missing = append(missing, "Command")
	}
	if f.CommandParamsFunc == nil {
		missing = append(missing, "CommandParams")
	}
	if f.DataFunc == nil {
		missing = append(missing, "Data")
	}
	return missing
}

// unboundPrimitives reports what t cannot do. A nil t is missing everything.
func unboundPrimitives(t Transport) []string {
	if t == nil {
		return append([]string(nil), primitives...)
	}
	if u, ok := t.(unbinder); ok {
		return u.Unbound()
	}
	return nil
}

var _ Transport = (*TransportFuncs)(nil)
