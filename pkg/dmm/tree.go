package dmm

import (
	"github.com/scpi-protocol/scpi-go/pkg/param"
	"github.com/scpi-protocol/scpi-go/pkg/response"
	"github.com/scpi-protocol/scpi-go/pkg/scpierr"
	"github.com/scpi-protocol/scpi-go/pkg/tree"
	"github.com/scpi-protocol/scpi-go/pkg/version"
)

// CommandTree builds the instrument's command tree with handlers bound
// to the voltmeter.
func CommandTree(v *Voltmeter) *tree.Node {
	return &tree.Node{Children: []*tree.Node{
		// IEEE 488.2 common commands.
		{
			Name: "*CLS",
			Event: func(args param.Args) error {
				if err := args.Expect(0, 0); err != nil {
					return err
				}
				v.Cls()
				return nil
			},
		},
		{
			Name:  "*ESE",
			Event: registerSetter(args8(v.SetEse)),
			Query: registerQuery(func() uint8 { return v.Ese() }),
		},
		{
			Name:  "*ESR",
			Query: registerQuery(func() uint8 { return v.Esr() }),
		},
		{
			Name: "*IDN",
			Query: func(args param.Args, r *response.Unit) error {
				if err := args.Expect(0, 0); err != nil {
					return err
				}
				r.Literal(v.Identity.String())
				return nil
			},
		},
		{
			Name: "*OPC",
			Event: func(args param.Args) error {
				if err := args.Expect(0, 0); err != nil {
					return err
				}
				v.Opc()
				return nil
			},
			Query: func(args param.Args, r *response.Unit) error {
				if err := args.Expect(0, 0); err != nil {
					return err
				}
				// Everything runs to completion synchronously.
				r.Literal("1")
				return nil
			},
		},
		{
			Name: "*RST",
			Event: func(args param.Args) error {
				if err := args.Expect(0, 0); err != nil {
					return err
				}
				v.Reset()
				return nil
			},
		},
		{
			Name:  "*SRE",
			Event: registerSetter(args8(v.SetSre)),
			Query: registerQuery(func() uint8 { return v.Sre() }),
		},
		{
			Name:  "*STB",
			Query: registerQuery(func() uint8 { return v.Stb() }),
		},
		{
			Name: "*TST",
			Query: func(args param.Args, r *response.Unit) error {
				if err := args.Expect(0, 0); err != nil {
					return err
				}
				r.Int(int64(v.Tst()))
				return nil
			},
		},
		{
			Name: "*WAI",
			Event: func(args param.Args) error {
				// No overlapped commands exist; *WAI is a no-op.
				return args.Expect(0, 0)
			},
		},

		{
			Name: "ABORt",
			Event: func(args param.Args) error {
				if err := args.Expect(0, 0); err != nil {
					return err
				}
				v.Abort()
				return nil
			},
		},

		{
			Name:  "CONFigure",
			Query: v.confQuery,
			Children: []*tree.Node{{
				Name: "SCALar", Default: true,
				Children: []*tree.Node{{
					Name: "VOLTage",
					Children: []*tree.Node{
						{Name: "AC", Event: v.confEvent(VoltageAC)},
						{Name: "DC", Default: true, Event: v.confEvent(VoltageDC)},
					},
				}},
			}},
		},

		{
			Name:  "FETCh",
			Query: v.fetchQuery,
			Children: []*tree.Node{{
				Name: "SCALar", Default: true,
				Children: []*tree.Node{{
					Name: "VOLTage",
					Children: []*tree.Node{
						{Name: "AC", Query: v.fetchFuncQuery(VoltageAC)},
						{Name: "DC", Default: true, Query: v.fetchFuncQuery(VoltageDC)},
					},
				}},
			}},
		},

		{
			Name: "INITiate",
			Children: []*tree.Node{{
				Name: "IMMediate", Default: true,
				Children: []*tree.Node{{
					Name: "ALL", Default: true,
					Event: func(args param.Args) error {
						if err := args.Expect(0, 0); err != nil {
							return err
						}
						v.Initiate()
						return nil
					},
				}},
			}},
		},

		{
			Name: "MEASure",
			Children: []*tree.Node{{
				Name: "SCALar", Default: true,
				Children: []*tree.Node{{
					Name: "VOLTage",
					Children: []*tree.Node{
						{Name: "AC", Query: v.measQuery(VoltageAC)},
						{Name: "DC", Default: true, Query: v.measQuery(VoltageDC)},
					},
				}},
			}},
		},

		{
			Name: "READ",
			Query: func(args param.Args, r *response.Unit) error {
				if err := args.Expect(0, 0); err != nil {
					return err
				}
				readings, err := v.Read()
				if err != nil {
					return err
				}
				appendReadings(r, readings)
				return nil
			},
		},

		{
			Name: "SENSe",
			Children: []*tree.Node{
				{
					Name: "FUNCtion",
					Children: []*tree.Node{{
						Name: "ON", Default: true,
						Event: v.funcEvent,
						Query: v.funcQuery,
					}},
				},
				{
					Name:     "VOLTage",
					Children: []*tree.Node{senseVoltage(v, "AC"), senseVoltageDefault(v)},
				},
			},
		},

		{
			Name: "SYSTem",
			Children: []*tree.Node{
				{
					Name: "ERRor",
					Children: []*tree.Node{
						{
							Name: "NEXT", Default: true,
							Query: func(args param.Args, r *response.Unit) error {
								if err := args.Expect(0, 0); err != nil {
									return err
								}
								r.Literal(v.Errors.Pop().Error())
								return nil
							},
						},
						{
							Name: "COUNt",
							Query: func(args param.Args, r *response.Unit) error {
								if err := args.Expect(0, 0); err != nil {
									return err
								}
								r.Int(int64(v.Errors.Len()))
								return nil
							},
						},
					},
				},
				{
					Name: "VERSion",
					Query: func(args param.Args, r *response.Unit) error {
						if err := args.Expect(0, 0); err != nil {
							return err
						}
						r.Literal(version.Current)
						return nil
					},
				},
			},
		},

		{
			Name: "TRIGger",
			Children: []*tree.Node{{
				Name: "SEQuence", Default: true,
				Children: []*tree.Node{{
					Name: "COUNt",
					Event: func(args param.Args) error {
						if err := args.Expect(1, 1); err != nil {
							return err
						}
						n, err := args.Number(0)
						if err != nil {
							return err
						}
						v.SetTriggerCount(int(n))
						return nil
					},
					Query: func(args param.Args, r *response.Unit) error {
						if err := args.Expect(0, 0); err != nil {
							return err
						}
						r.Int(int64(v.TriggerCount()))
						return nil
					},
				}},
			}},
		},
	}}
}

// senseVoltage builds the SENSe:VOLTage:{AC,DC} subtree.
func senseVoltage(v *Voltmeter, name string) *tree.Node {
	return &tree.Node{
		Name: name,
		Children: []*tree.Node{
			{
				Name: "RANGe",
				Children: []*tree.Node{
					{
						Name: "UPPer", Default: true,
						Event: v.rangeEvent,
						Query: v.rangeQuery,
					},
					{
						Name:  "AUTO",
						Event: v.rangeAutoEvent,
						Query: v.rangeAutoQuery,
					},
				},
			},
			{
				Name:  "RESolution",
				Event: v.resolutionEvent,
				Query: v.resolutionQuery,
			},
		},
	}
}

// senseVoltageDefault is the DC subtree, the default voltage function.
func senseVoltageDefault(v *Voltmeter) *tree.Node {
	n := senseVoltage(v, "DC")
	n.Default = true
	return n
}

// registerSetter adapts a status-register store into an event handler.
func registerSetter(set func(float64) error) tree.EventFunc {
	return func(args param.Args) error {
		if err := args.Expect(1, 1); err != nil {
			return err
		}
		n, err := args.Number(0)
		if err != nil {
			return err
		}
		return set(n)
	}
}

// registerQuery adapts a status-register read into a query handler.
func registerQuery(get func() uint8) tree.QueryFunc {
	return func(args param.Args, r *response.Unit) error {
		if err := args.Expect(0, 0); err != nil {
			return err
		}
		r.Int(int64(get()))
		return nil
	}
}

// args8 validates the 0..255 register domain before storing.
func args8(set func(uint8)) func(float64) error {
	return func(n float64) error {
		if n < 0 || n > 255 || n != float64(int(n)) {
			return scpierr.New(scpierr.CodeDataOutOfRange)
		}
		set(uint8(n))
		return nil
	}
}
