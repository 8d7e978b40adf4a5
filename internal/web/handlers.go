package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"participant_board/internal/view"

	"github.com/rs/zerolog/hlog"
)

// controllerFromRequest builds the search and filter state of one request
// from its query, e.g. /?q=doe&status=unpaid
func controllerFromRequest(r *http.Request) (view.Controller, error) {
	ctrl := view.NewController()
	query := r.URL.Query()
	ctrl.Confirm(query.Get("q"))
	if raw := query.Get("status"); raw != "" {
		status, err := view.ParseStatusFilter(raw)
		if err != nil {
			return ctrl, err
		}
		ctrl.SetStatus(status)
	}
	return ctrl, nil
}

// boardURL links to the board with the given search term and status filter
func boardURL(term string, status view.StatusFilter) string {
	query := url.Values{}
	if term != "" {
		query.Set("q", term)
	}
	if status != "" && status != view.ShowPaid {
		query.Set("status", string(status))
	}
	if len(query) == 0 {
		return "/"
	}
	return "/?" + query.Encode()
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	ctrl, err := controllerFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	term, _ := ctrl.Search()
	hlog.FromRequest(r).Debug().Str("term", term).Str("status", string(ctrl.Status())).Msg("Rendering board")
	s.render(w, r, http.StatusOK, "board.html", s.buildBoardPage(ctrl))
}

// handleRefresh runs a cycle now and returns to the board the caller was
// looking at. Failures are logged by the poller and the board keeps showing
// the last good data.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if err := s.refresher.Refresh(r.Context()); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("Manual refresh failed")
	}

	status, err := view.ParseStatusFilter(r.PostForm.Get("status"))
	if err != nil {
		status = view.ShowPaid
	}
	http.Redirect(w, r, boardURL(strings.TrimSpace(r.PostForm.Get("q")), status), http.StatusSeeOther)
}

type optionSummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type syncSummary struct {
	LastSuccess *time.Time `json:"last_success,omitempty"`
	Cycles      int64      `json:"cycles"`
	Failures    int64      `json:"failures"`
	LastError   string     `json:"last_error,omitempty"`
}

type summaryResponse struct {
	Loaded       bool            `json:"loaded"`
	ValidCount   int             `json:"valid_count"`
	PaidCount    int             `json:"paid_count"`
	PartialCount int             `json:"partial_count"`
	UnpaidCount  int             `json:"unpaid_count"`
	Collected    int64           `json:"collected"`
	Potential    int64           `json:"potential"`
	Outstanding  int64           `json:"outstanding"`
	Options      []optionSummary `json:"options"`
	Sync         syncSummary     `json:"sync"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	resp := summaryResponse{
		Loaded:       snap.Loaded,
		ValidCount:   snap.Summary.ValidCount,
		PaidCount:    snap.Summary.PaidCount,
		PartialCount: snap.Summary.PartialCount,
		UnpaidCount:  snap.Summary.UnpaidCount,
		Collected:    snap.Summary.CollectedAmount.WholePesos(),
		Potential:    snap.Summary.PotentialAmount.WholePesos(),
		Outstanding:  snap.Summary.OutstandingAmount.WholePesos(),
		Sync: syncSummary{
			Cycles:    snap.Sync.Cycles,
			Failures:  snap.Sync.Failures,
			LastError: snap.Sync.LastError,
		},
	}
	if !snap.Sync.LastSuccess.IsZero() {
		last := snap.Sync.LastSuccess
		resp.Sync.LastSuccess = &last
	}
	for i, opt := range s.state.Pricing() {
		resp.Options = append(resp.Options, optionSummary{Name: opt.Name, Count: snap.Summary.OptionCounts[i]})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to encode summary")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleUnavailable(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusServiceUnavailable, "unavailable.html", struct{ EventName string }{s.opts.EventName})
}
