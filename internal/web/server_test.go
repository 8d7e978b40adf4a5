package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"participant_board/internal/board"
	"participant_board/internal/roster"
	"participant_board/internal/view"
)

var pricing = roster.Pricing{
	{Name: "Jersey", Price: roster.Pesos(500)},
	{Name: "Shorts", Price: roster.Pesos(300)},
}

type fakeRefresher struct {
	calls atomic.Int64
	err   error
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.calls.Add(1)
	return f.err
}

func newTestServer(t *testing.T, opts Options) (*Server, *board.State, *fakeRefresher) {
	t.Helper()
	state := board.NewState(pricing)
	state.Replace([]roster.Record{
		{DisplayName: "John Doe", JerseyName: "DOE", Nickname: "JD", No: "7", Size: "Medium",
			Options: [roster.OptionCount]string{"true", "true"}, Payment: "Paid"},
		{DisplayName: "Jane Smith", JerseyName: "SMITH", Nickname: "Janey", No: "11", Size: "Small",
			Options: [roster.OptionCount]string{"true", ""}},
		{DisplayName: "No Number", JerseyName: "NN", Nickname: "N", Size: "L"},
	}, time.Now())

	refresher := &fakeRefresher{}
	srv, err := NewServer(state, refresher, opts)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return srv, state, refresher
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBoardPage(t *testing.T) {
	srv, _, _ := newTestServer(t, Options{EventName: "Fun Run"})
	rec := do(t, srv.Handler(), http.MethodGet, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Fun Run", "John Doe", "Jane Smith", "₱800", "₱500", "Jersey"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
	if strings.Contains(body, "No Number") {
		t.Error("Expected invalid record to be dropped")
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("Expected X-Request-Id header")
	}
}

func TestSearchFromQuery(t *testing.T) {
	srv, _, _ := newTestServer(t, Options{})
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/?q=doe", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "John Doe") || strings.Contains(body, "Jane Smith") {
		t.Error("Expected only the matching record")
	}
	if !strings.Contains(body, "Showing results for") {
		t.Error("Expected active search notice")
	}

	body = do(t, h, http.MethodGet, "/?q=%20%20", nil).Body.String()
	if !strings.Contains(body, "Jane Smith") || strings.Contains(body, "Showing results for") {
		t.Error("Expected blank search to show every record")
	}
}

func TestRequestsDoNotShareFilters(t *testing.T) {
	srv, _, _ := newTestServer(t, Options{})
	h := srv.Handler()

	do(t, h, http.MethodGet, "/?q=doe&status=unpaid", nil)
	body := do(t, h, http.MethodGet, "/", nil).Body.String()

	if !strings.Contains(body, "Jane Smith") {
		t.Error("Expected another visitor's search not to hide records")
	}
	if strings.Contains(body, "Showing results for") {
		t.Error("Expected no active search on a fresh request")
	}
	if !strings.Contains(body, `<a href="/" class="active">Paid</a>`) {
		t.Error("Expected default paid filter on a fresh request")
	}
}

func TestFilterStatus(t *testing.T) {
	srv, _, _ := newTestServer(t, Options{})
	h := srv.Handler()

	body := do(t, h, http.MethodGet, "/?status=unpaid", nil).Body.String()
	if !strings.Contains(body, `<a href="/?status=unpaid" class="active">Unpaid</a>`) {
		t.Error("Expected unpaid filter to be active")
	}
	if !strings.Contains(body, "<tr hidden>\n        <td>John Doe</td>") {
		t.Error("Expected paid row to be hidden under the unpaid filter")
	}

	rec := do(t, h, http.MethodGet, "/?status=everyone", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown filter, got %d", rec.Code)
	}
}

func TestBoardURL(t *testing.T) {
	tests := []struct {
		term   string
		status view.StatusFilter
		want   string
	}{
		{"", view.ShowPaid, "/"},
		{"", view.ShowUnpaid, "/?status=unpaid"},
		{"doe", view.ShowPaid, "/?q=doe"},
		{"jane smith", view.ShowUnpaid, "/?q=jane+smith&status=unpaid"},
	}
	for _, test := range tests {
		if got := boardURL(test.term, test.status); got != test.want {
			t.Errorf("boardURL(%q, %q) = %q, expected %q", test.term, test.status, got, test.want)
		}
	}
}

func TestRefreshUsesRefresher(t *testing.T) {
	srv, _, refresher := newTestServer(t, Options{})
	refresher.err = errors.New("status 500")

	rec := do(t, srv.Handler(), http.MethodPost, "/refresh", url.Values{"q": {"doe"}, "status": {"unpaid"}})
	if rec.Code != http.StatusSeeOther {
		t.Errorf("Expected redirect even on failure, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/?q=doe&status=unpaid" {
		t.Errorf("Expected redirect back to the same view, got %q", loc)
	}
	if refresher.calls.Load() != 1 {
		t.Errorf("Expected 1 refresh, got %d", refresher.calls.Load())
	}
}

func TestWriteTimeoutExceedsFetchTimeout(t *testing.T) {
	opts := Options{FetchTimeout: 10 * time.Second}
	if got := opts.writeTimeout(); got <= opts.FetchTimeout {
		t.Errorf("Expected write timeout above %v, got %v", opts.FetchTimeout, got)
	}
}

func TestSummaryJSON(t *testing.T) {
	srv, _, _ := newTestServer(t, Options{})
	rec := do(t, srv.Handler(), http.MethodGet, "/api/summary", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp summaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode summary: %v", err)
	}
	if resp.ValidCount != 2 || resp.PaidCount != 1 {
		t.Errorf("Unexpected counts %+v", resp)
	}
	if resp.Collected != 800 || resp.Potential != 1300 || resp.Outstanding != 500 {
		t.Errorf("Unexpected amounts %+v", resp)
	}
	if len(resp.Options) != 2 || resp.Options[0].Count != 2 || resp.Options[1].Count != 1 {
		t.Errorf("Unexpected option counts %+v", resp.Options)
	}
	if resp.Sync.LastSuccess == nil {
		t.Error("Expected last success time")
	}
}

func TestCountdownShown(t *testing.T) {
	srv, _, _ := newTestServer(t, Options{EventDate: time.Date(2026, 12, 5, 5, 0, 0, 0, time.UTC)})
	srv.now = func() time.Time { return time.Date(2026, 12, 3, 4, 0, 0, 0, time.UTC) }

	body := do(t, srv.Handler(), http.MethodGet, "/", nil).Body.String()
	if !strings.Contains(body, "2d 1h 0m 0s to go") {
		t.Errorf("Expected countdown in body")
	}
}

func TestDiscontinuedMode(t *testing.T) {
	srv, err := NewServer(nil, nil, Options{EventName: "Fun Run", Discontinued: true})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	h := srv.Handler()

	for _, target := range []string{"/", "/api/summary", "/anything"} {
		rec := do(t, h, http.MethodGet, target, nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected 503, got %d", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Service Unavailable") {
			t.Errorf("%s: expected placeholder page", target)
		}
	}

	if rec := do(t, h, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Errorf("Expected healthz 200, got %d", rec.Code)
	}
}
