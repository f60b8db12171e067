package dmm

import "github.com/scpi-protocol/scpi-go/pkg/scpierr"

// Event Status Register bits (IEEE 488.2).
const (
	EsrOperationComplete uint8 = 1 << 0
	EsrQueryError        uint8 = 1 << 2
	EsrDeviceError       uint8 = 1 << 3
	EsrExecutionError    uint8 = 1 << 4
	EsrCommandError      uint8 = 1 << 5
	EsrPowerOn           uint8 = 1 << 7
)

// Status Byte bits.
const (
	StbErrorQueue  uint8 = 1 << 2
	StbEventStatus uint8 = 1 << 5
)

// PushError records an error in the queue and raises the matching
// event status bit.
func (v *Voltmeter) PushError(err *scpierr.Error) {
	if err == nil {
		return
	}
	v.Errors.Push(err)
	switch c := err.Code; {
	case c <= -400 && c > -500:
		v.esr |= EsrQueryError
	case c <= -300 && c > -400:
		v.esr |= EsrDeviceError
	case c <= -200 && c > -300:
		v.esr |= EsrExecutionError
	case c < 0:
		v.esr |= EsrCommandError
	}
}

// Cls clears the event status register and the error queue (*CLS).
func (v *Voltmeter) Cls() {
	v.esr = 0
	v.Errors.Clear()
}

// Esr returns and clears the event status register (*ESR?).
func (v *Voltmeter) Esr() uint8 {
	esr := v.esr
	v.esr = 0
	return esr
}

// Ese returns the event status enable register (*ESE?).
func (v *Voltmeter) Ese() uint8 { return v.ese }

// SetEse sets the event status enable register (*ESE).
func (v *Voltmeter) SetEse(mask uint8) { v.ese = mask }

// Sre returns the service request enable register (*SRE?).
func (v *Voltmeter) Sre() uint8 { return v.sre }

// SetSre sets the service request enable register (*SRE).
func (v *Voltmeter) SetSre(mask uint8) { v.sre = mask }

// Stb computes the status byte (*STB?): error-queue summary and event
// status summary.
func (v *Voltmeter) Stb() uint8 {
	var stb uint8
	if v.Errors.Len() > 0 {
		stb |= StbErrorQueue
	}
	if v.esr&v.ese != 0 {
		stb |= StbEventStatus
	}
	return stb
}

// Opc flags operation complete (*OPC). All commands execute to
// completion before the next line is read, so the bit is raised
// immediately.
func (v *Voltmeter) Opc() {
	v.esr |= EsrOperationComplete
}

// Tst runs the self-test (*TST?). The simulated meter always passes.
func (v *Voltmeter) Tst() int {
	return 0
}
