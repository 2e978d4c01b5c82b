// Package http serves the ledger as a JSON API.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/text/language"

	"ledger/internal/analytics"
	"ledger/internal/cache"
	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/middleware/ratelimit"
	"ledger/internal/middleware/security"
	"ledger/internal/middleware/trace"
	"ledger/internal/query"
)

// Ledger is the store surface the handlers need. *ledger.Store satisfies it.
type Ledger interface {
	Snapshot() core.Snapshot
	Version() uint64

	AddExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error)
	UpdateExpense(ctx context.Context, id core.ID, p core.ExpensePatch) (core.Expense, bool, error)
	DeleteExpense(ctx context.Context, id core.ID) (bool, error)
	Expense(id core.ID) (core.Expense, bool)

	AddCategory(ctx context.Context, in core.CategoryInput) (core.Category, error)
	UpdateCategory(ctx context.Context, id core.ID, p core.CategoryPatch) (core.Category, bool, error)
	DeleteCategory(ctx context.Context, id core.ID) (bool, error)
	Category(id core.ID) (core.Category, bool)

	AddBudget(ctx context.Context, in core.BudgetInput) (core.Budget, error)
	UpdateBudget(ctx context.Context, id core.ID, p core.BudgetPatch) (core.Budget, bool, error)
	DeleteBudget(ctx context.Context, id core.ID) (bool, error)
	Budget(id core.ID) (core.Budget, bool)
}

type Options struct {
	CacheSize      int
	CacheTTL       time.Duration
	Locale         language.Tag
	CurrencySymbol string
	Logger         *log.Logger
	Now            func() time.Time

	// WritesPerMinute caps mutations per client; zero disables the limit.
	WritesPerMinute int
}

type Server struct {
	http.Server
	ledger    Ledger
	engine    *query.Engine
	formatter analytics.Formatter
	views     *cache.LRUCache[[]byte]
	tracer    *trace.Middleware
	limiter   *ratelimit.Limiter
	logger    *log.Logger
	now       func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, l Ledger, opts Options) *Server {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 256
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Wrap(nil, log.ComponentHTTP)
	} else {
		logger = logger.WithComponent(log.ComponentHTTP)
	}

	clientIP := security.NewClientIP()
	s := &Server{
		ledger:    l,
		engine:    query.NewEngine(opts.Locale),
		formatter: analytics.NewFormatter(opts.CurrencySymbol),
		views:     cache.NewLRUCache[[]byte](opts.CacheSize, opts.CacheTTL),
		tracer:    trace.NewMiddleware(logger, clientIP.Extract),
		logger:    logger,
		now:       opts.Now,
	}

	mux := http.NewServeMux()
	s.routes(mux)

	var handler http.Handler = mux
	if opts.WritesPerMinute > 0 {
		s.limiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.WritesPerMinute})
		handler = s.limiter.Middleware(clientIP.Extract, func(w http.ResponseWriter, r *http.Request) {
			ErrorResponse(http.StatusTooManyRequests, "too many changes, try again later").Write(w)
		})(handler)
	}
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.tracer.Middleware(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("PATCH /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("GET /api/categories/usage", s.handleCategoriesUsage)
	mux.HandleFunc("GET /api/categories/{id}", s.handleGetCategory)
	mux.HandleFunc("PATCH /api/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)
	mux.HandleFunc("GET /api/categories/{id}/usage", s.handleCategoryUsage)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("GET /api/budgets/status", s.handleBudgetsStatus)
	mux.HandleFunc("GET /api/budgets/{id}", s.handleGetBudget)
	mux.HandleFunc("PATCH /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)
	mux.HandleFunc("GET /api/budgets/{id}/status", s.handleBudgetStatus)

	mux.HandleFunc("GET /api/analytics/summary", s.handleSummary)
	mux.HandleFunc("GET /api/analytics/monthly", s.handleMonthly)
	mux.HandleFunc("GET /api/analytics/weekly", s.handleWeekly)
	mux.HandleFunc("GET /api/analytics/daily", s.handleDaily)

	mux.HandleFunc("GET /api/export", s.handleExport)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// Limiter is nil when writes are not rate limited.
func (s *Server) Limiter() *ratelimit.Limiter {
	return s.limiter
}

// Views exposes the derived-view cache so its expired entries can be swept.
func (s *Server) Views() *cache.LRUCache[[]byte] {
	return s.views
}

type health struct {
	Status    string             `json:"status"`
	Version   uint64             `json:"version"`
	Requests  trace.Metrics      `json:"requests"`
	Cache     cache.Stats        `json:"cache"`
	RateLimit *ratelimit.Metrics `json:"rateLimit,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := health{
		Status:   "ok",
		Version:  s.ledger.Version(),
		Requests: s.tracer.GetMetrics(),
		Cache:    s.views.Stats(),
	}
	if s.limiter != nil {
		m := s.limiter.GetMetrics()
		h.RateLimit = &m
	}
	NewJSONResponse().Body(h).Write(w)
}

// cachedView writes the JSON encoding of compute's result, reusing a
// previous encoding for the same snapshot version and params.
func (s *Server) cachedView(w http.ResponseWriter, r *http.Request, snap core.Snapshot, view string, params []string, compute func() any) {
	key := cache.Key(snap.Version, view, params...)
	body, hit := s.views.Get(key)
	if !hit {
		var err error
		body, err = json.Marshal(compute())
		if err != nil {
			log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode view", log.FieldError, err, "view", view)
			InternalServerError("encode response").Write(w)
			return
		}
		s.views.Set(key, body)
	}

	status := "miss"
	if hit {
		status = "hit"
	}
	NewJSONResponse().Header("X-Cache", status).RawBody(body).Write(w)
}
