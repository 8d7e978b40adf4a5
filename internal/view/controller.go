package view

import (
	"fmt"
	"strings"
)

// StatusFilter selects which payment states are visible in the table
type StatusFilter string

const (
	ShowPaid   StatusFilter = "paid"
	ShowUnpaid StatusFilter = "unpaid"
)

// ParseStatusFilter accepts "paid" or "unpaid" in any case
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case ShowPaid:
		return ShowPaid, nil
	case ShowUnpaid:
		return ShowUnpaid, nil
	default:
		return "", fmt.Errorf("unknown status filter %q", s)
	}
}

// Controller holds the transient search and status filter state of the board.
// The zero value is not ready for use; call NewController.
type Controller struct {
	term   string
	active bool
	status StatusFilter
}

func NewController() Controller {
	return Controller{status: ShowPaid}
}

// Confirm activates the search with term. A blank term deactivates it.
func (c *Controller) Confirm(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		c.Clear()
		return
	}
	c.term = term
	c.active = true
}

// Clear deactivates the search
func (c *Controller) Clear() {
	c.term = ""
	c.active = false
}

// SetStatus switches the status filter
func (c *Controller) SetStatus(status StatusFilter) {
	c.status = status
}

// Search returns the active term and whether a search is active
func (c Controller) Search() (string, bool) {
	return c.term, c.active
}

func (c Controller) Status() StatusFilter {
	if c.status == "" {
		return ShowPaid
	}
	return c.status
}
