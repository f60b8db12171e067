package dmm

import (
	"github.com/scpi-protocol/scpi-go/pkg/param"
	"github.com/scpi-protocol/scpi-go/pkg/response"
	"github.com/scpi-protocol/scpi-go/pkg/scpierr"
)

// confQuery handles CONFigure?.
func (v *Voltmeter) confQuery(args param.Args, r *response.Unit) error {
	if err := args.Expect(0, 0); err != nil {
		return err
	}
	r.String(v.cfg.String())
	return nil
}

// confEvent handles CONFigure:VOLTage:{AC,DC} [<range>[,<resolution>]].
func (v *Voltmeter) confEvent(fn Function) func(param.Args) error {
	return func(args param.Args) error {
		if err := args.Expect(0, 2); err != nil {
			return err
		}
		rng, resolution, err := configureArgs(args)
		if err != nil {
			return err
		}
		return v.Configure(fn, rng, resolution)
	}
}

// configureArgs decodes the optional range and resolution arguments of
// a CONFigure or MEASure unit.
func configureArgs(args param.Args) (Range, float64, error) {
	rng := Range{Auto: true, Upper: RangeMax}
	resolution := DefaultResolution

	if a, ok := args.Value(0); ok {
		r, err := rangeArg(a)
		if err != nil {
			return Range{}, 0, err
		}
		rng = r
	}
	if a, ok := args.Value(1); ok {
		res, err := resolutionArg(a)
		if err != nil {
			return Range{}, 0, err
		}
		resolution = res
	}
	return rng, resolution, nil
}

// fetchQuery handles FETCh?.
func (v *Voltmeter) fetchQuery(args param.Args, r *response.Unit) error {
	if err := args.Expect(0, 0); err != nil {
		return err
	}
	readings, err := v.Fetch()
	if err != nil {
		return err
	}
	appendReadings(r, readings)
	return nil
}

// fetchFuncQuery handles FETCh[:SCALar]:VOLTage:{AC,DC}?.
// Fetching a function other than the configured one is a settings
// conflict; the latched data belongs to another function.
func (v *Voltmeter) fetchFuncQuery(fn Function) func(param.Args, *response.Unit) error {
	return func(args param.Args, r *response.Unit) error {
		if err := args.Expect(0, 0); err != nil {
			return err
		}
		if v.cfg.Function != fn {
			return scpierr.New(scpierr.CodeSettingsConflict)
		}
		return v.fetchQuery(args, r)
	}
}

// measQuery handles MEASure[:SCALar]:VOLTage:{AC,DC}? [<range>[,<res>]]:
// CONFigure followed by READ?.
func (v *Voltmeter) measQuery(fn Function) func(param.Args, *response.Unit) error {
	return func(args param.Args, r *response.Unit) error {
		if err := args.Expect(0, 2); err != nil {
			return err
		}
		rng, resolution, err := configureArgs(args)
		if err != nil {
			return err
		}
		if err := v.Configure(fn, rng, resolution); err != nil {
			return err
		}
		readings, err := v.Read()
		if err != nil {
			return err
		}
		appendReadings(r, readings)
		return nil
	}
}

// funcEvent handles SENSe:FUNCtion[:ON] <"function">.
func (v *Voltmeter) funcEvent(args param.Args) error {
	if err := args.Expect(1, 1); err != nil {
		return err
	}
	s, err := args.String(0)
	if err != nil {
		return err
	}
	fn, err := ParseFunction(s)
	if err != nil {
		return err
	}
	v.SetFunction(fn)
	return nil
}

// funcQuery handles SENSe:FUNCtion[:ON]?.
func (v *Voltmeter) funcQuery(args param.Args, r *response.Unit) error {
	if err := args.Expect(0, 0); err != nil {
		return err
	}
	r.String(v.cfg.Function.String())
	return nil
}

// rangeEvent handles SENSe:VOLTage:{AC,DC}:RANGe[:UPPer] <value|AUTO>.
func (v *Voltmeter) rangeEvent(args param.Args) error {
	if err := args.Expect(1, 1); err != nil {
		return err
	}
	rng, err := rangeArg(args[0])
	if err != nil {
		return err
	}
	if rng.Auto {
		v.SetRangeAuto(true)
		return nil
	}
	v.SetRangeUpper(rng.Upper)
	return nil
}

// rangeQuery handles SENSe:VOLTage:{AC,DC}:RANGe[:UPPer]?.
func (v *Voltmeter) rangeQuery(args param.Args, r *response.Unit) error {
	if err := args.Expect(0, 0); err != nil {
		return err
	}
	r.Float(v.cfg.Range.Upper)
	return nil
}

// rangeAutoEvent handles SENSe:VOLTage:{AC,DC}:RANGe:AUTO <bool>.
func (v *Voltmeter) rangeAutoEvent(args param.Args) error {
	if err := args.Expect(1, 1); err != nil {
		return err
	}
	auto, err := boolArg(args[0])
	if err != nil {
		return err
	}
	v.SetRangeAuto(auto)
	return nil
}

// rangeAutoQuery handles SENSe:VOLTage:{AC,DC}:RANGe:AUTO?.
func (v *Voltmeter) rangeAutoQuery(args param.Args, r *response.Unit) error {
	if err := args.Expect(0, 0); err != nil {
		return err
	}
	r.Bool(v.cfg.Range.Auto)
	return nil
}

// resolutionEvent handles SENSe:VOLTage:{AC,DC}:RESolution <value>.
func (v *Voltmeter) resolutionEvent(args param.Args) error {
	if err := args.Expect(1, 1); err != nil {
		return err
	}
	res, err := resolutionArg(args[0])
	if err != nil {
		return err
	}
	return v.SetResolution(res)
}

// resolutionQuery handles SENSe:VOLTage:{AC,DC}:RESolution?.
func (v *Voltmeter) resolutionQuery(args param.Args, r *response.Unit) error {
	if err := args.Expect(0, 0); err != nil {
		return err
	}
	r.Float(v.cfg.Resolution)
	return nil
}

// appendReadings appends each latched reading as one data item.
func appendReadings(r *response.Unit, readings []float64) {
	for _, reading := range readings {
		r.Float(reading)
	}
}

// rangeArg decodes a range argument: a number (volts or
// dimensionless), AUTO or DEFault for automatic ranging, or the
// MINimum/MAXimum sentinels.
func rangeArg(a param.Value) (Range, error) {
	switch a.Kind {
	case param.KindNumber:
		return Range{Upper: a.Number}, nil
	case param.KindKeyword:
		switch {
		case a.Is("AUTO"), a.Is("DEF", "DEFault"):
			return Range{Auto: true, Upper: RangeMax}, nil
		case a.Is("MIN", "MINimum"):
			return Range{Upper: RangeMin}, nil
		case a.Is("MAX", "MAXimum"):
			return Range{Upper: RangeMax}, nil
		default:
			return Range{}, scpierr.Newf(scpierr.CodeInvalidCharacterData, "%s", a.Text)
		}
	default:
		return Range{}, scpierr.New(scpierr.CodeDataTypeError)
	}
}

// resolutionArg decodes a resolution argument: a number or the
// MINimum/MAXimum/DEFault sentinels.
func resolutionArg(a param.Value) (float64, error) {
	switch a.Kind {
	case param.KindNumber:
		return a.Number, nil
	case param.KindKeyword:
		switch {
		case a.Is("MIN", "MINimum"):
			return ResolutionMin, nil
		case a.Is("MAX", "MAXimum"):
			return ResolutionMax, nil
		case a.Is("DEF", "DEFault"):
			return DefaultResolution, nil
		default:
			return 0, scpierr.Newf(scpierr.CodeInvalidCharacterData, "%s", a.Text)
		}
	default:
		return 0, scpierr.New(scpierr.CodeDataTypeError)
	}
}

// boolArg decodes SCPI boolean program data: ON/OFF or 1/0.
func boolArg(a param.Value) (bool, error) {
	switch a.Kind {
	case param.KindNumber:
		switch a.Number {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return false, scpierr.New(scpierr.CodeIllegalParameterValue)
		}
	case param.KindKeyword:
		switch {
		case a.Is("ON"):
			return true, nil
		case a.Is("OFF"):
			return false, nil
		default:
			return false, scpierr.Newf(scpierr.CodeInvalidCharacterData, "%s", a.Text)
		}
	default:
		return false, scpierr.New(scpierr.CodeDataTypeError)
	}
}
