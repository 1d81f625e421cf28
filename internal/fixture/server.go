package fixture

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rshade/pagetable/internal/logging"
	"github.com/rshade/pagetable/internal/pagination"
	"github.com/rshade/pagetable/internal/records"
)

// Server serves GET /api/data/page/{page} from an in-memory dataset.
type Server struct {
	items        []records.Record
	pageSize     int
	latency      time.Duration
	pageLatency  func(page int) time.Duration
	logger       zerolog.Logger
	router       chi.Router
	mu           sync.Mutex
	failingPages map[int]int
	hits         map[int]int
}

// Option configures a Server.
type Option func(*Server)

// WithPageSize sets how many records each page holds.
func WithPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLatency delays every page response.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// WithPageLatency delays responses per page, overriding WithLatency.
func WithPageLatency(fn func(page int) time.Duration) Option {
	return func(s *Server) {
		s.pageLatency = fn
	}
}

// WithFailingPage makes page answer with status code.
func WithFailingPage(page, status int) Option {
	return func(s *Server) {
		s.failingPages[page] = status
	}
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logging.ComponentLogger(l, "fixture")
	}
}

// NewServer creates a fixture server for items.
func NewServer(items []records.Record, opts ...Option) *Server {
	s := &Server{
		items:        items,
		pageSize:     pagination.DefaultRows,
		logger:       zerolog.Nop(),
		failingPages: make(map[int]int),
		hits:         make(map[int]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(
		chiMiddleware.RequestID,
		chiMiddleware.Recoverer,
		s.logRequests,
	)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/data/page/{page}", s.handlePage)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Page returns the envelope for a 1-based page number. Pages past the end
// have no items but still report the totals.
func (s *Server) Page(page int) records.Page {
	total := len(s.items)
	out := records.Page{
		Items:      []records.Record{},
		Total:      total,
		TotalPages: pagination.PageCount(total, s.pageSize),
	}

	start := pagination.OffsetForPage(page, s.pageSize)
	if page < pagination.MinPage || start >= total {
		return out
	}
	end := min(start+s.pageSize, total)
	out.Items = append(out.Items, s.items[start:end]...)
	return out
}

// Hits returns how many times page was requested.
func (s *Server) Hits(page int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[page]
}

// TotalHits returns the number of page requests served.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.hits {
		n += h
	}
	return n
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < pagination.MinPage {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
		return
	}

	s.mu.Lock()
	s.hits[page]++
	status, failing := s.failingPages[page]
	s.mu.Unlock()

	delay := s.latency
	if s.pageLatency != nil {
		delay = s.pageLatency(page)
	}
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-r.Context().Done():
			return
		}
	}

	if failing {
		respondJSON(w, status, map[string]string{"error": http.StatusText(status)})
		return
	}
	respondJSON(w, http.StatusOK, s.Page(page))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("served request")
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
