package sheets

import "strings"

// Target identifies the tabular range read on every cycle
type Target struct {
	SpreadsheetID string
	Range         string
}

// SheetName returns the sheet part of the range, e.g. "Roster" for "Roster!A1:I500"
func (t Target) SheetName() string {
	return strings.Split(t.Range, "!")[0]
}
