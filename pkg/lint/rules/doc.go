// Package rules provides the built-in csvdoc rules.
//
//   - CSV001 missing-closing-quote: a quoted cell runs to the end of the input
//   - CSV002 ragged-row: a row's cell count differs from the expected width
//   - CSV003 blank-row: a row holds only a line break
//   - CSV004 duplicate-header: a name in the first row repeats
//
// Only CSV001 is enabled by default.
package rules
