package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"ledger/internal/analytics"
	"ledger/internal/core"
	"ledger/internal/export"
	"ledger/internal/log"
)

type summary struct {
	Period     analytics.Kind            `json:"period"`
	From       core.Date                 `json:"from"`
	To         core.Date                 `json:"to"`
	Total      string                    `json:"total"`
	Categories analytics.ColoredSeries   `json:"categories"`
	Breakdown  []analytics.CategoryTotal `json:"breakdown"`
	Insights   []analytics.Insight       `json:"insights"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := s.now()
	kind, err := parseKind(q)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	year, err := parseYear(q, now)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	snap := s.ledger.Snapshot()
	params := []string{string(kind), strconv.Itoa(year), core.Today(now).String()}
	s.cachedView(w, r, snap, "summary", params, func() any {
		span := analytics.NewSpan(kind, now, year)
		totals := analytics.TotalsByCategory(snap, span.Range)
		insights := analytics.Insights(snap, span, s.formatter)
		if insights == nil {
			insights = []analytics.Insight{}
		}
		return summary{
			Period:     kind,
			From:       span.Range.From,
			To:         span.Range.To,
			Total:      analytics.TotalInRange(snap, span.Range).StringFixed(2),
			Categories: analytics.CategorySeries(totals),
			Breakdown:  totals,
			Insights:   insights,
		}
	})
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r.URL.Query(), s.now())
	if err != nil {
		writeRequestError(w, err)
		return
	}
	snap := s.ledger.Snapshot()
	s.cachedView(w, r, snap, "monthly", []string{strconv.Itoa(year)}, func() any {
		return analytics.MonthlySeries(snap, year)
	})
}

// handleWeekly buckets every expense when neither bound is given.
func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeRequestError(w, err)
		return
	}
	window := core.DateRange{From: c.From, To: c.To}

	snap := s.ledger.Snapshot()
	s.cachedView(w, r, snap, "weekly", []string{window.From.String(), window.To.String()}, func() any {
		return analytics.WeeklySeries(snap, window)
	})
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r.URL.Query(), s.now())
	if err != nil {
		writeRequestError(w, err)
		return
	}
	snap := s.ledger.Snapshot()
	s.cachedView(w, r, snap, "daily", []string{strconv.Itoa(year), strconv.Itoa(month)}, func() any {
		return analytics.DailySeries(snap, year, month)
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, f, s.ledger.Snapshot()); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Export failed", log.FieldError, err, "format", f)
		InternalServerError("export failed").Write(w)
		return
	}

	name := fmt.Sprintf("expenses-%s.%s", core.Today(s.now()), f)
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(buf.Bytes())
}
