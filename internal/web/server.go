package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"participant_board/internal/board"
	"participant_board/internal/roster"
	"participant_board/internal/view"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// Refresher triggers an out-of-schedule fetch cycle
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Options configures what the board shows besides the participant data
type Options struct {
	EventName    string
	EventDate    time.Time
	Discontinued bool

	// FetchTimeout bounds one sheet read; a manual refresh may wait that long
	FetchTimeout time.Duration
}

// responseSlack is the time left to write a response after a refresh
const responseSlack = 10 * time.Second

// writeTimeout leaves room for a POST /refresh that joins a slow fetch
func (o Options) writeTimeout() time.Duration {
	return o.FetchTimeout + responseSlack
}

type Server struct {
	state     *board.State
	refresher Refresher
	opts      Options
	templates *template.Template
	router    *mux.Router
	now       func() time.Time
}

// NewServer parses the embedded templates and registers the routes.
// state and refresher may be nil in discontinued mode.
func NewServer(state *board.State, refresher Refresher, opts Options) (*Server, error) {
	funcs := template.FuncMap{
		"peso": view.Peso,
		"ago":  humanize.Time,
	}
	templates, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		state:     state,
		refresher: refresher,
		opts:      opts,
		templates: templates,
		router:    mux.NewRouter(),
		now:       time.Now,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	if s.opts.Discontinued {
		s.router.PathPrefix("/").HandlerFunc(s.handleUnavailable)
		return
	}

	s.router.HandleFunc("/", s.handleBoard).Methods(http.MethodGet)
	s.router.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	s.router.HandleFunc("/api/summary", s.handleSummary).Methods(http.MethodGet)
}

// Handler wraps the router with request logging
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request handled")
	})(h)
	h = requestID(h)
	h = hlog.NewHandler(log.Logger)(h)
	return h
}

// requestID tags the request logger and response with an X-Request-Id
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		logger := zerolog.Ctx(r.Context())
		logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", id)
		})
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.opts.writeTimeout(),
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}

type optionStat struct {
	Name  string
	Price roster.Amount
	Count int
}

type boardPage struct {
	EventName    string
	Countdown    *view.Countdown
	Loaded       bool
	Summary      roster.Summary
	Options      []optionStat
	Rows         []view.Row
	VisibleCount int
	Search       string
	SearchActive bool
	Status       view.StatusFilter
	LastSync     time.Time

	PaidURL   string
	UnpaidURL string
	ClearURL  string
}

func (s *Server) buildBoardPage(ctrl view.Controller) boardPage {
	snap := s.state.Snapshot()
	rows := snap.Rows(ctrl)
	term, active := ctrl.Search()
	status := ctrl.Status()

	page := boardPage{
		EventName:    s.opts.EventName,
		Loaded:       snap.Loaded,
		Summary:      snap.Summary,
		Rows:         rows,
		VisibleCount: view.CountVisible(rows),
		Search:       term,
		SearchActive: active,
		Status:       status,
		LastSync:     snap.Sync.LastSuccess,
		PaidURL:      boardURL(term, view.ShowPaid),
		UnpaidURL:    boardURL(term, view.ShowUnpaid),
		ClearURL:     boardURL("", status),
	}
	for i, opt := range s.state.Pricing() {
		page.Options = append(page.Options, optionStat{
			Name:  opt.Name,
			Price: opt.Price,
			Count: snap.Summary.OptionCounts[i],
		})
	}
	if !s.opts.EventDate.IsZero() {
		countdown := view.CountdownTo(s.opts.EventDate, s.now())
		page.Countdown = &countdown
	}
	return page
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("Failed to render template")
	}
}
