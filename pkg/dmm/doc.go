// Package dmm implements the simulated digital multimeter: its
// configuration state, the trigger/fetch measurement engine, the
// IEEE 488.2 status registers and the SCPI command tree binding it all
// to handlers.
//
// # Measurement Protocol
//
// The meter follows the SCPI trigger model in its simplest form:
// INITiate arms the trigger and, with the immediate trigger source,
// synchronously acquires readings and latches them. FETCh? returns the
// latched readings without consuming them; they stay valid until the
// next INITiate, ABORt or *RST. READ? is ABORt;INITiate;FETCh? and
// MEASure? is CONFigure followed by READ?.
//
// # Defaults
//
// Construction and *RST leave the meter at function VOLT:DC, range
// AUTO, resolution 1.0 and an idle trigger.
package dmm
