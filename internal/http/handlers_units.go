package http

import (
	"fmt"
	"net/http"

	"condo/internal/core"
	"condo/internal/log"
)

func (s *Server) handleProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.session.Property(r.Context())
	if err != nil {
		s.writeError(w, r, "property", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleListUnits returns every unit with its derived status at ?at=
// (YYYY-MM-DD), defaulting to today.
func (s *Server) handleListUnits(w http.ResponseWriter, r *http.Request) {
	at, err := queryDate(r, "at")
	if err != nil {
		s.writeError(w, r, "list_units", err)
		return
	}
	statuses, err := s.session.UnitStatuses(r.Context(), at)
	if err != nil {
		s.writeError(w, r, "list_units", err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (s *Server) handleCreateUnit(w http.ResponseWriter, r *http.Request) {
	var in core.UnitInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, log.OpCreate, err)
		return
	}
	sanitizeUnit(&in)

	u, err := s.session.AddUnit(r.Context(), in)
	if err != nil {
		s.writeError(w, r, log.OpCreate, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// handleUpdateUnit replaces the whole record; the id comes from the path.
func (s *Server) handleUpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, log.OpUpdate, err)
		return
	}
	var in core.UnitInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, log.OpUpdate, err)
		return
	}
	sanitizeUnit(&in)

	u := in.Unit(id)
	found, err := s.session.UpdateUnit(r.Context(), u)
	if err == nil && !found {
		err = fmt.Errorf("unit %d: %w", id, errNotFound)
	}
	if err != nil {
		s.writeError(w, r, log.OpUpdate, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleDeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, log.OpDelete, err)
		return
	}
	found, err := s.session.DeleteUnit(r.Context(), id)
	if err == nil && !found {
		err = fmt.Errorf("unit %d: %w", id, errNotFound)
	}
	if err != nil {
		s.writeError(w, r, log.OpDelete, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type paidRequest struct {
	Paid bool `json:"paid"`
}

func (s *Server) handleSetPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, log.OpSetPaid, err)
		return
	}
	var req paidRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, log.OpSetPaid, err)
		return
	}

	u, found, err := s.session.SetPaid(r.Context(), id, req.Paid)
	if err == nil && !found {
		err = fmt.Errorf("unit %d: %w", id, errNotFound)
	}
	if err != nil {
		s.writeError(w, r, log.OpSetPaid, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func sanitizeUnit(in *core.UnitInput) {
	in.Name = sanitizeInput(in.Name)
	in.Nickname = sanitizeInput(in.Nickname)
	in.Occupant = sanitizeInput(in.Occupant)
}
