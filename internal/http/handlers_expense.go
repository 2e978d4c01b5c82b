package http

import (
	"net/http"

	"ledger/internal/core"
)

type expenseList struct {
	Expenses []core.Expense `json:"expenses"`
	Count    int            `json:"count"`
	Total    string         `json:"total"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := parseCriteria(q)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	o, err := parseOrder(q)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	snap := s.ledger.Snapshot()
	params := []string{string(c.CategoryID), c.Search, c.From.String(), c.To.String(), string(o.Key), string(o.Direction)}
	s.cachedView(w, r, snap, "expenses", params, func() any {
		res := s.engine.Run(snap, c, o)
		return expenseList{Expenses: res.Expenses, Count: res.Count, Total: res.Total.StringFixed(2)}
	})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, err)
		return
	}
	in, err := req.input()
	if err != nil {
		writeRequestError(w, err)
		return
	}

	e, err := s.ledger.AddExpense(r.Context(), in)
	if err != nil {
		writePersistError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Body(e).Write(w)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ledger.Expense(core.ID(r.PathValue("id")))
	if !ok {
		NotFoundError("expense not found").Write(w)
		return
	}
	NewJSONResponse().Body(e).Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, err)
		return
	}
	p, err := req.patch()
	if err != nil {
		writeRequestError(w, err)
		return
	}

	e, found, err := s.ledger.UpdateExpense(r.Context(), core.ID(r.PathValue("id")), p)
	if err != nil {
		writePersistError(w, r, err)
		return
	}
	if !found {
		NotFoundError("expense not found").Write(w)
		return
	}
	NewJSONResponse().Body(e).Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	found, err := s.ledger.DeleteExpense(r.Context(), core.ID(r.PathValue("id")))
	if err != nil {
		writePersistError(w, r, err)
		return
	}
	if !found {
		NotFoundError("expense not found").Write(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
