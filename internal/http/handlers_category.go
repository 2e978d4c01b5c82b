package http

import (
	"net/http"

	"ledger/internal/analytics"
	"ledger/internal/core"
)

// categoryDeleted reports how many expenses still point at a removed
// category. They are not touched and resolve to Unknown from now on.
type categoryDeleted struct {
	ID               core.ID `json:"id"`
	OrphanedExpenses int     `json:"orphanedExpenses"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(s.ledger.Snapshot().Categories).Write(w)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, err)
		return
	}
	in, err := req.input()
	if err != nil {
		writeRequestError(w, err)
		return
	}

	c, err := s.ledger.AddCategory(r.Context(), in)
	if err != nil {
		writePersistError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Body(c).Write(w)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := s.ledger.Category(core.ID(r.PathValue("id")))
	if !ok {
		NotFoundError("category not found").Write(w)
		return
	}
	NewJSONResponse().Body(c).Write(w)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, err)
		return
	}
	p, err := req.patch()
	if err != nil {
		writeRequestError(w, err)
		return
	}

	c, found, err := s.ledger.UpdateCategory(r.Context(), core.ID(r.PathValue("id")), p)
	if err != nil {
		writePersistError(w, r, err)
		return
	}
	if !found {
		NotFoundError("category not found").Write(w)
		return
	}
	NewJSONResponse().Body(c).Write(w)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := core.ID(r.PathValue("id"))
	found, err := s.ledger.DeleteCategory(r.Context(), id)
	if err != nil {
		writePersistError(w, r, err)
		return
	}
	if !found {
		NotFoundError("category not found").Write(w)
		return
	}
	usage := analytics.CategoryUsage(s.ledger.Snapshot(), id)
	NewJSONResponse().Body(categoryDeleted{ID: id, OrphanedExpenses: usage.Count}).Write(w)
}

func (s *Server) handleCategoryUsage(w http.ResponseWriter, r *http.Request) {
	id := core.ID(r.PathValue("id"))
	snap := s.ledger.Snapshot()
	if !snap.Index().Known(id) {
		NotFoundError("category not found").Write(w)
		return
	}
	s.cachedView(w, r, snap, "category-usage", []string{string(id)}, func() any {
		return analytics.CategoryUsage(snap, id)
	})
}

func (s *Server) handleCategoriesUsage(w http.ResponseWriter, r *http.Request) {
	snap := s.ledger.Snapshot()
	s.cachedView(w, r, snap, "categories-usage", nil, func() any {
		return analytics.UsageByCategory(snap)
	})
}
