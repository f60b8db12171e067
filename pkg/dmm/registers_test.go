package dmm

import (
	"testing"

	"github.com/scpi-protocol/scpi-go/pkg/scpierr"
)

func TestPushErrorRaisesEventBits(t *testing.T) {
	tests := []struct {
		code scpierr.Code
		bit  uint8
	}{
		{scpierr.CodeUndefinedHeader, EsrCommandError},
		{scpierr.CodeDataOutOfRange, EsrExecutionError},
		{scpierr.CodeQueueOverflow, EsrDeviceError},
		{scpierr.CodeQueryError, EsrQueryError},
	}

	for _, tt := range tests {
		v := New(nil)
		v.PushError(scpierr.New(tt.code))
		if esr := v.Esr(); esr&tt.bit == 0 {
			t.Errorf("code %d: esr = %08b, want bit %08b", tt.code, esr, tt.bit)
		}
		if v.Errors.Len() != 1 {
			t.Errorf("code %d: queue len = %d", tt.code, v.Errors.Len())
		}
	}
}

func TestEsrReadClears(t *testing.T) {
	v := New(nil)
	v.Opc()

	if esr := v.Esr(); esr&EsrOperationComplete == 0 {
		t.Errorf("esr = %08b", esr)
	}
	if esr := v.Esr(); esr != 0 {
		t.Errorf("esr after read = %08b", esr)
	}
}

func TestClsClearsStatus(t *testing.T) {
	v := New(nil)
	v.PushError(scpierr.New(scpierr.CodeUndefinedHeader))

	v.Cls()
	if v.Errors.Len() != 0 {
		t.Errorf("queue len after *CLS = %d", v.Errors.Len())
	}
	if esr := v.Esr(); esr != 0 {
		t.Errorf("esr after *CLS = %08b", esr)
	}
}

func TestStatusByte(t *testing.T) {
	v := New(nil)
	if stb := v.Stb(); stb != 0 {
		t.Errorf("idle stb = %08b", stb)
	}

	v.PushError(scpierr.New(scpierr.CodeUndefinedHeader))
	if stb := v.Stb(); stb&StbErrorQueue == 0 {
		t.Errorf("stb with queued error = %08b", stb)
	}

	// Event summary needs the matching enable bit.
	if stb := v.Stb(); stb&StbEventStatus != 0 {
		t.Errorf("stb without enable = %08b", stb)
	}
	v.SetEse(EsrCommandError)
	if stb := v.Stb(); stb&StbEventStatus == 0 {
		t.Errorf("stb with enable = %08b", stb)
	}
}

func TestEnableRegisters(t *testing.T) {
	v := New(nil)

	v.SetEse(0x81)
	if v.Ese() != 0x81 {
		t.Errorf("ese = %#x", v.Ese())
	}
	v.SetSre(0x20)
	if v.Sre() != 0x20 {
		t.Errorf("sre = %#x", v.Sre())
	}
}

func TestSelfTest(t *testing.T) {
	if got := New(nil).Tst(); got != 0 {
		t.Errorf("self test = %d", got)
	}
}
