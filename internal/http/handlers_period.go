package http

import (
	"net/http"

	"condo/internal/core"
	"condo/internal/log"
)

type periodBody struct {
	Date  core.Date `json:"date"`
	Year  int       `json:"year"`
	Month int       `json:"month"`
}

func newPeriodBody(d core.Date) periodBody {
	return periodBody{Date: d, Year: d.Year(), Month: d.Month()}
}

type setPeriodRequest struct {
	Date core.Date `json:"date"`
}

func (s *Server) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newPeriodBody(s.session.SelectedPeriod()))
}

func (s *Server) handleSetPeriod(w http.ResponseWriter, r *http.Request) {
	var req setPeriodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, log.OpNavigate, err)
		return
	}
	d, err := s.session.SetSelectedPeriod(r.Context(), req.Date)
	if err != nil {
		s.writeError(w, r, log.OpNavigate, err)
		return
	}
	writeJSON(w, http.StatusOK, newPeriodBody(d))
}

func (s *Server) handleNextMonth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newPeriodBody(s.session.NextMonth(r.Context())))
}

func (s *Server) handlePreviousMonth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newPeriodBody(s.session.PreviousMonth(r.Context())))
}

// handleSummary aggregates the selected period, or ?month=YYYY-MM without
// moving the selection.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	month, err := queryMonth(r, "month")
	if err != nil {
		s.writeError(w, r, "summary", err)
		return
	}

	var sum core.Summary
	if month.IsZero() {
		sum, err = s.session.Summary(r.Context())
	} else {
		sum, err = s.session.SummaryAt(r.Context(), month)
	}
	if err != nil {
		s.writeError(w, r, "summary", err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

type exportResponse struct {
	Ref string `json:"ref"`
}

// handleExport exports the selected period, or ?month=YYYY-MM.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	month, err := queryMonth(r, "month")
	if err != nil {
		s.writeError(w, r, log.OpExport, err)
		return
	}

	var ref string
	if month.IsZero() {
		ref, err = s.session.Export(r.Context())
	} else {
		ref, err = s.session.ExportAt(r.Context(), month)
	}
	if err != nil {
		s.writeError(w, r, log.OpExport, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Ref: ref})
}
