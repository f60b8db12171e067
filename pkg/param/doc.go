// Package param decodes SCPI program data (arguments) into typed values.
//
// Three data forms are supported:
//
//   - Decimal numeric data with an optional unit suffix: 5, -1.5e-3, 5V,
//     0.01V, 10MV. A recognized suffix normalizes the value to base
//     units (volts) at parse time.
//   - Character data (keywords): AUTO, MINimum, MAXimum, DEFault, ON, OFF.
//   - String data: double-quote delimited, embedded quotes doubled.
//
// Numeric parse failures are distinguished from unrecognized keywords
// so the instrument can report -120,"Numeric data error" versus
// -141,"Invalid character data".
package param
