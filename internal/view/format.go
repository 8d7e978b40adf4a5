package view

import (
	"participant_board/internal/roster"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pesoPrinter = message.NewPrinter(language.English)

// Peso formats an amount as whole Philippine pesos with digit grouping, e.g. "₱12,345"
func Peso(a roster.Amount) string {
	p := a.WholePesos()
	if p < 0 {
		return pesoPrinter.Sprintf("-₱%d", -p)
	}
	return pesoPrinter.Sprintf("₱%d", p)
}
