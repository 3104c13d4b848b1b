package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rgehrsitz/nestegg/internal/breakeven"
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

// SolveRequest is the body of POST /solve.
type SolveRequest struct {
	VariableToSolve string                  `json:"variable_to_solve"`
	SearchMin       float64                 `json:"search_min"`
	SearchMax       float64                 `json:"search_max"`
	Inputs          domain.RetirementInputs `json:"inputs"`
}

// VariableInfo describes one solvable input for GET /variables.
type VariableInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Integer     bool    `json:"integer"`
	Direction   string  `json:"direction"`
	DefaultMin  float64 `json:"default_min"`
	DefaultMax  float64 `json:"default_max"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var in domain.RetirementInputs
	if !s.decode(w, r, &in) {
		return
	}
	// The summary is defined for any tax rate; only non-finite values are refused.
	if err := in.Validate(); err != nil && !errors.Is(err, domain.ErrTaxRateTooHigh) {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calculation.Summarize(in))
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var in domain.RetirementInputs
	if !s.decode(w, r, &in) {
		return
	}
	projection, err := calculation.Project(in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projection)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.solver.Solve(r.Context(), breakeven.SolveRequest{
		Variable:  req.VariableToSolve,
		SearchMin: req.SearchMin,
		SearchMax: req.SearchMax,
		Base:      req.Inputs,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleVariables(w http.ResponseWriter, r *http.Request) {
	vars := transform.Variables()
	infos := make([]VariableInfo, 0, len(vars))
	for _, v := range vars {
		infos = append(infos, VariableInfo{
			Name:        v.Name,
			Description: v.Description,
			Unit:        v.Unit,
			Integer:     v.Integer,
			Direction:   string(breakeven.Directions[v.Name]),
			DefaultMin:  v.DefaultMin,
			DefaultMax:  v.DefaultMax,
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON body into v, answering 400 itself when the body is unusable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		s.logger.Warnf("%s %s: bad request body: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

// writeError maps engine errors onto status codes. Inputs that parse but cannot be
// evaluated are 422; malformed requests are 400.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrTaxRateTooHigh):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, transform.ErrUnknownVariable), errors.Is(err, domain.ErrNonFiniteInput):
		status = http.StatusBadRequest
	case errors.As(err, new(*breakeven.BreakEvenError)):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Errorf("request failed: %v", err)
	} else {
		s.logger.Warnf("request rejected: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
