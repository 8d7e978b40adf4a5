package roster

import (
	"strings"
)

// Record represents one participant row read from the spreadsheet
type Record struct {
	DisplayName string
	JerseyName  string
	Nickname    string
	No          string
	Size        string

	// Options holds the normalized option flags in column order (option A, option B)
	Options [OptionCount]string

	Payment       string
	PartialAmount Amount
}

// OptionCount is the number of priced option columns in a row
const OptionCount = 2

// IsValid reports whether every required text field is non-empty after trimming.
// Option flags and payment fields never take part in validity.
func (r Record) IsValid() bool {
	for _, field := range r.requiredFields() {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// MissingFields returns the names of the required fields that are empty
func (r Record) MissingFields() []string {
	names := []string{"display_name", "jersey_name", "nickname", "no", "size"}
	var missing []string
	for i, field := range r.requiredFields() {
		if strings.TrimSpace(field) == "" {
			missing = append(missing, names[i])
		}
	}
	return missing
}

func (r Record) requiredFields() []string {
	return []string{r.DisplayName, r.JerseyName, r.Nickname, r.No, r.Size}
}

// Selected reports whether option i is selected
func (r Record) Selected(i int) bool {
	if i < 0 || i >= OptionCount {
		return false
	}
	return IsSelected(r.Options[i])
}

// State derives the payment state from the payment text and partial amount
func (r Record) State() PaymentState {
	return DerivePaymentState(r.Payment, r.PartialAmount)
}

// Valid filters records down to the valid ones, keeping fetch order
func Valid(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.IsValid() {
			out = append(out, r)
		}
	}
	return out
}
