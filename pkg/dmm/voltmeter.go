package dmm

import (
	"fmt"
	"strings"

	"github.com/scpi-protocol/scpi-go/pkg/response"
	"github.com/scpi-protocol/scpi-go/pkg/scpierr"
)

// Default identity fields reported by *IDN?.
const (
	Manufacturer = "scpi-rs"
	Model        = "digital_voltmeter"
	Serial       = "0"
	Firmware     = "0"
)

// Identity holds the four *IDN? response fields.
type Identity struct {
	Manufacturer string
	Model        string
	Serial       string
	Firmware     string
}

// DefaultIdentity returns the built-in instrument identity.
func DefaultIdentity() Identity {
	return Identity{
		Manufacturer: Manufacturer,
		Model:        Model,
		Serial:       Serial,
		Firmware:     Firmware,
	}
}

// String renders the *IDN? response payload.
func (id Identity) String() string {
	return fmt.Sprintf("%s,%s,%s,%s", id.Manufacturer, id.Model, id.Serial, id.Firmware)
}

// Function is the measurement function.
type Function uint8

const (
	// VoltageDC measures DC voltage. Power-on default.
	VoltageDC Function = iota
	// VoltageAC measures AC voltage (RMS).
	VoltageAC
)

// String returns the short SCPI rendering of the function.
func (f Function) String() string {
	switch f {
	case VoltageAC:
		return "VOLT:AC"
	default:
		return "VOLT:DC"
	}
}

// ParseFunction decodes a sensor function string such as "VOLT:AC",
// "VOLTAGE:DC" or bare "VOLT" (DC implied). Mnemonic abbreviation and
// case rules apply to each path element.
func ParseFunction(s string) (Function, error) {
	parts := strings.Split(s, ":")
	if len(parts) == 0 || !matchMnemonic("VOLTage", parts[0]) {
		return 0, scpierr.Newf(scpierr.CodeIllegalParameterValue, "unsupported function %q", s)
	}
	switch {
	case len(parts) == 1:
		return VoltageDC, nil
	case len(parts) == 2 && strings.EqualFold(parts[1], "DC"):
		return VoltageDC, nil
	case len(parts) == 2 && strings.EqualFold(parts[1], "AC"):
		return VoltageAC, nil
	default:
		return 0, scpierr.Newf(scpierr.CodeIllegalParameterValue, "unsupported function %q", s)
	}
}

// matchMnemonic matches input against a long-form mnemonic: exactly
// its capitalized short form or the full long form, case-insensitive.
func matchMnemonic(name, input string) bool {
	short := name
	for i, r := range name {
		if r >= 'a' && r <= 'z' {
			short = name[:i]
			break
		}
	}
	return strings.EqualFold(input, name) || strings.EqualFold(input, short)
}

// Range limits in volts, shared by both voltage functions.
const (
	RangeMin = 0.1
	RangeMax = 100.0
)

// Resolution limits in volts.
const (
	ResolutionMin     = 1e-6
	ResolutionMax     = 1.0
	DefaultResolution = 1.0
)

// Range is the configured measurement range.
type Range struct {
	// Auto selects automatic ranging.
	Auto bool

	// Upper is the fixed full-scale value in volts; retained while
	// Auto is set so RANGe? stays answerable.
	Upper float64
}

// String renders the range for the CONFigure? response.
func (r Range) String() string {
	if r.Auto {
		return "AUTO"
	}
	return response.FormatFloat(r.Upper)
}

// Config is the persistent measurement configuration.
type Config struct {
	Function   Function
	Range      Range
	Resolution float64
}

// DefaultConfig is the power-on and *RST configuration.
func DefaultConfig() Config {
	return Config{
		Function:   VoltageDC,
		Range:      Range{Auto: true, Upper: RangeMax},
		Resolution: DefaultResolution,
	}
}

// String renders the configuration as the CONFigure? payload (the
// body of the quoted response string).
func (c Config) String() string {
	return fmt.Sprintf("%s %s,%s", c.Function, c.Range, response.FormatFloat(c.Resolution))
}

// TriggerState is the measurement phase.
type TriggerState uint8

const (
	// TriggerIdle means no acquisition has been armed.
	TriggerIdle TriggerState = iota
	// TriggerInitiated means an acquisition is armed or in progress.
	TriggerInitiated
	// TriggerReady means readings are latched and fetchable.
	TriggerReady
)

// String returns the trigger state name.
func (s TriggerState) String() string {
	switch s {
	case TriggerInitiated:
		return "INITIATED"
	case TriggerReady:
		return "READY"
	default:
		return "IDLE"
	}
}

// Voltmeter is the simulated instrument.
//
// It is exclusively owned by the interpreter's single execution
// context; no internal locking is needed or provided.
type Voltmeter struct {
	// Identity is reported by *IDN?.
	Identity Identity

	// Errors is the SCPI error queue, shared with the interpreter.
	Errors *scpierr.Queue

	cfg     Config
	trigger TriggerState
	trigCnt int
	sensor  Sensor

	// Latched readings, valid while trigger is TriggerReady.
	readings []float64

	// IEEE 488.2 status registers.
	esr uint8
	ese uint8
	sre uint8
}

// New creates a voltmeter in its power-on state.
// A nil sensor falls back to the deterministic SimSensor.
func New(sensor Sensor) *Voltmeter {
	if sensor == nil {
		sensor = NewSimSensor()
	}
	return &Voltmeter{
		Identity: DefaultIdentity(),
		Errors:   scpierr.NewQueue(scpierr.DefaultQueueCapacity),
		cfg:      DefaultConfig(),
		trigCnt:  1,
		sensor:   sensor,
	}
}

// Config returns the current measurement configuration.
func (v *Voltmeter) Config() Config {
	return v.cfg
}

// TriggerState returns the current measurement phase.
func (v *Voltmeter) TriggerState() TriggerState {
	return v.trigger
}

// Reset restores the *RST state: default configuration, idle trigger,
// invalidated readings. Status registers and the error queue are not
// affected, per IEEE 488.2.
func (v *Voltmeter) Reset() {
	v.cfg = DefaultConfig()
	v.trigger = TriggerIdle
	v.trigCnt = 1
	v.readings = nil
}

// SetFunction selects the measurement function, leaving range and
// resolution untouched. Latched readings are invalidated.
func (v *Voltmeter) SetFunction(fn Function) {
	v.cfg.Function = fn
	v.invalidate()
}

// SetRangeUpper sets a fixed range, clamped to the function limits,
// and disables auto ranging.
func (v *Voltmeter) SetRangeUpper(upper float64) {
	v.cfg.Range = Range{Auto: false, Upper: clamp(upper, RangeMin, RangeMax)}
	v.invalidate()
}

// SetRangeAuto switches automatic ranging on or off.
func (v *Voltmeter) SetRangeAuto(auto bool) {
	v.cfg.Range.Auto = auto
	v.invalidate()
}

// SetResolution sets the measurement resolution, clamped to the
// instrument limits.
func (v *Voltmeter) SetResolution(res float64) error {
	if res <= 0 {
		return scpierr.Newf(scpierr.CodeDataOutOfRange, "resolution %s", response.FormatFloat(res))
	}
	v.cfg.Resolution = clamp(res, ResolutionMin, ResolutionMax)
	v.invalidate()
	return nil
}

// Configure applies a full CONFigure: function, range and resolution
// in one step, using defaults for omitted values.
func (v *Voltmeter) Configure(fn Function, rng Range, resolution float64) error {
	v.cfg.Function = fn
	if rng.Auto {
		v.cfg.Range = Range{Auto: true, Upper: RangeMax}
	} else {
		v.cfg.Range = Range{Auto: false, Upper: clamp(rng.Upper, RangeMin, RangeMax)}
	}
	v.invalidate()
	return v.SetResolution(resolution)
}

// TriggerCount returns the number of readings per INITiate.
func (v *Voltmeter) TriggerCount() int {
	return v.trigCnt
}

// SetTriggerCount sets the number of readings per INITiate, clamped
// to 1..10.
func (v *Voltmeter) SetTriggerCount(n int) {
	v.trigCnt = int(clamp(float64(n), 1, 10))
}

// Initiate arms the trigger and synchronously acquires the configured
// number of readings, latching them for FETCh?.
func (v *Voltmeter) Initiate() {
	v.trigger = TriggerInitiated

	readings := make([]float64, 0, v.trigCnt)
	for range v.trigCnt {
		raw := v.sensor.Sense(v.cfg.Function, v.cfg.Range.Upper, v.cfg.Range.Auto)
		readings = append(readings, quantize(raw, v.cfg.Resolution))
	}
	v.readings = readings
	v.trigger = TriggerReady
}

// Fetch returns the latched readings without consuming them.
// Fetching with no valid readings reports stale data.
func (v *Voltmeter) Fetch() ([]float64, error) {
	if v.trigger != TriggerReady {
		return nil, scpierr.New(scpierr.CodeDataCorruptOrStale)
	}
	return v.readings, nil
}

// Abort returns the trigger to idle and invalidates readings.
func (v *Voltmeter) Abort() {
	v.invalidate()
}

// Read is the READ? composite: ABORt, INITiate, FETCh?.
func (v *Voltmeter) Read() ([]float64, error) {
	v.Abort()
	v.Initiate()
	return v.Fetch()
}

// invalidate discards latched readings and idles the trigger.
// Reconfiguration invalidates measurement data per SCPI.
func (v *Voltmeter) invalidate() {
	v.trigger = TriggerIdle
	v.readings = nil
}

// quantize rounds a reading to the configured resolution.
func quantize(value, resolution float64) float64 {
	if resolution <= 0 {
		return value
	}
	steps := value / resolution
	// Round half away from zero.
	if steps >= 0 {
		steps = float64(int64(steps + 0.5))
	} else {
		steps = float64(int64(steps - 0.5))
	}
	return steps * resolution
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
