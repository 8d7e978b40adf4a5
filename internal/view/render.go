package view

import (
	"strings"

	"participant_board/internal/roster"
)

// Row is one line of the participant table
type Row struct {
	DisplayName string
	JerseyName  string
	Nickname    string
	No          string
	SizeCode    string

	// Options holds one presence indicator per option column
	Options [roster.OptionCount]string

	Badge   Badge
	Visible bool
}

// Badge describes how the payment state is shown
type Badge struct {
	State  roster.PaymentState
	Label  string
	Amount roster.Amount
}

const checkMark = "✓"

// Render turns records into table rows in fetch order. Invalid records are
// dropped, an active search keeps only matching records, and the status filter
// only toggles Visible.
func Render(records []roster.Record, ctrl Controller) []Row {
	term, active := ctrl.Search()
	status := ctrl.Status()

	rows := make([]Row, 0, len(records))
	for _, r := range records {
		if !r.IsValid() {
			continue
		}
		if active && !Matches(r, term) {
			continue
		}
		rows = append(rows, newRow(r, status))
	}
	return rows
}

// Matches reports whether any searchable field contains term, ignoring case
func Matches(r roster.Record, term string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return true
	}
	for _, field := range []string{r.DisplayName, r.JerseyName, r.Nickname, r.No} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// CountVisible returns the number of rows the status filter leaves visible
func CountVisible(rows []Row) int {
	n := 0
	for _, row := range rows {
		if row.Visible {
			n++
		}
	}
	return n
}

func newRow(r roster.Record, status StatusFilter) Row {
	state := r.State()
	row := Row{
		DisplayName: r.DisplayName,
		JerseyName:  r.JerseyName,
		Nickname:    r.Nickname,
		No:          r.No,
		SizeCode:    SizeCode(r.Size),
		Badge:       newBadge(r, state),
		Visible:     visible(state, status),
	}
	for i := range row.Options {
		row.Options[i] = optionIndicator(r.Options[i])
	}
	return row
}

func optionIndicator(flag string) string {
	if roster.IsSelected(flag) {
		return checkMark
	}
	// blanks stay blank, free text is shown as entered
	return roster.NormalizeFlag(flag)
}

func newBadge(r roster.Record, state roster.PaymentState) Badge {
	switch state {
	case roster.Paid:
		return Badge{State: state, Label: "Paid"}
	case roster.Partial:
		return Badge{State: state, Label: "Partial", Amount: r.PartialAmount}
	default:
		return Badge{State: state, Label: "Unpaid"}
	}
}

// visible applies the status filter; partial payments count as unpaid
func visible(state roster.PaymentState, status StatusFilter) bool {
	if status == ShowUnpaid {
		return state != roster.Paid
	}
	return state == roster.Paid
}
