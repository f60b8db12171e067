package dmm

// Sensor is the acquisition front end: the ADC with its range switches
// in a real meter.
type Sensor interface {
	// Sense takes one reading for the given function. upper is the
	// configured full-scale range in volts; auto selects automatic
	// ranging.
	Sense(fn Function, upper float64, auto bool) float64
}

// SimSensor is a deterministic simulated sensor that always observes
// the same input level. Deterministic readings keep the
// INITiate/FETCh? protocol testable over the line transport.
type SimSensor struct {
	// Level is the simulated input in volts.
	Level float64
}

// DefaultSimLevel is the input level a zero-configured SimSensor reads.
const DefaultSimLevel = 1.0

// NewSimSensor creates a simulated sensor reading the default level.
func NewSimSensor() *SimSensor {
	return &SimSensor{Level: DefaultSimLevel}
}

// Sense returns the simulated level. For the AC function the level is
// reported as RMS, which for the simulated constant input is the level
// itself.
func (s *SimSensor) Sense(Function, float64, bool) float64 {
	return s.Level
}
