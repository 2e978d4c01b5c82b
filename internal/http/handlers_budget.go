package http

import (
	"net/http"

	"ledger/internal/analytics"
	"ledger/internal/core"
	"ledger/internal/log"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(s.ledger.Snapshot().Budgets).Write(w)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, err)
		return
	}
	in, err := req.input()
	if err != nil {
		writeRequestError(w, err)
		return
	}

	b, err := s.ledger.AddBudget(r.Context(), in)
	if err != nil {
		writePersistError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Body(b).Write(w)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	b, ok := s.ledger.Budget(core.ID(r.PathValue("id")))
	if !ok {
		NotFoundError("budget not found").Write(w)
		return
	}
	NewJSONResponse().Body(b).Write(w)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, err)
		return
	}
	p, err := req.patch()
	if err != nil {
		writeRequestError(w, err)
		return
	}

	b, found, err := s.ledger.UpdateBudget(r.Context(), core.ID(r.PathValue("id")), p)
	if err != nil {
		writePersistError(w, r, err)
		return
	}
	if !found {
		NotFoundError("budget not found").Write(w)
		return
	}
	NewJSONResponse().Body(b).Write(w)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	found, err := s.ledger.DeleteBudget(r.Context(), core.ID(r.PathValue("id")))
	if err != nil {
		writePersistError(w, r, err)
		return
	}
	if !found {
		NotFoundError("budget not found").Write(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	b, ok := s.ledger.Budget(core.ID(r.PathValue("id")))
	if !ok {
		NotFoundError("budget not found").Write(w)
		return
	}
	st, err := analytics.BudgetStatus(s.ledger.Snapshot(), b, s.now())
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}
	NewJSONResponse().Body(st).Write(w)
}

// handleBudgetsStatus skips budgets whose stored period is not usable.
func (s *Server) handleBudgetsStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.ledger.Snapshot()
	now := s.now()
	s.cachedView(w, r, snap, "budgets-status", []string{core.Today(now).String()}, func() any {
		out := make([]analytics.Status, 0, len(snap.Budgets))
		for _, b := range snap.Budgets {
			st, err := analytics.BudgetStatus(snap, b, now)
			if err != nil {
				log.FromContext(r.Context()).Warn("Skipping budget with invalid period",
					log.FieldEntityID, b.ID, log.FieldError, err)
				continue
			}
			out = append(out, st)
		}
		return out
	})
}
