package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/s0up4200/matchboard/filter"
	"github.com/s0up4200/matchboard/footballdata"
	"github.com/s0up4200/matchboard/report"
)

// apiResponse is the envelope of every JSON response
type apiResponse struct {
	Success bool                 `json:"success"`
	Data    any                  `json:"data,omitempty"`
	Stats   *report.Stats        `json:"stats,omitempty"`
	Error   *report.ErrorPayload `json:"error,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	s.writeJSON(w, status, apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// respondError answers with the status mapped from the error kind
func (s *Server) respondError(w http.ResponseWriter, err error) {
	payload := report.NewErrorPayload(err)
	s.writeJSON(w, httpStatus(footballdata.Kind(payload.Kind)), apiResponse{Error: &payload})
}

// respondBadRequest answers a request the server rejected before calling the provider
func (s *Server) respondBadRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusBadRequest, apiResponse{Error: &report.ErrorPayload{
		Kind:            string(footballdata.KindInvalidRequest),
		Message:         message,
		FriendlyMessage: footballdata.FriendlyMessage(footballdata.KindInvalidRequest),
	}})
}

// httpStatus maps an error kind to the status the API answers with.
// Provider authentication failures are the server's fault, not the caller's.
func httpStatus(kind footballdata.Kind) int {
	switch kind {
	case footballdata.KindInvalidRequest, footballdata.KindInvalidCompetition:
		return http.StatusBadRequest
	case footballdata.KindNotFound:
		return http.StatusNotFound
	case footballdata.KindRateLimit:
		return http.StatusTooManyRequests
	case footballdata.KindServiceUnavailable, footballdata.KindMissingToken:
		return http.StatusServiceUnavailable
	case footballdata.KindTimeoutError:
		return http.StatusGatewayTimeout
	case "":
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

// Health handler

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	result := s.client.TestConnection(r.Context())

	status := http.StatusOK
	if !result.Success {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, apiResponse{Success: result.Success, Data: result})
}

// Catalog handlers

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, footballdata.SupportedCompetitions())
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	presets := make(map[string]string)
	for _, name := range s.filters.ListFilters() {
		if f, ok := s.filters.GetFilter(name); ok {
			presets[name] = f.Expression()
		}
	}
	s.respondJSON(w, http.StatusOK, presets)
}

func (s *Server) handleCompetitions(w http.ResponseWriter, r *http.Request) {
	competitions, err := s.client.GetCompetitions(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, competitions)
}

func (s *Server) handleCompetition(w http.ResponseWriter, r *http.Request) {
	info, err := s.client.GetCompetitionInfo(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, info)
}

// Match handlers

func (s *Server) handleCompetitionMatches(w http.ResponseWriter, r *http.Request) {
	opts, err := parseMatchOptions(r)
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	result, err := s.client.GetMatchesByCompetition(r.Context(), chi.URLParam(r, "code"), opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondMatches(w, r, result)
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	opts, err := parseMatchOptions(r)
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	result, err := s.client.GetMatches(r.Context(), opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondMatches(w, r, result)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	opts, err := parseMatchOptions(r)
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	var f *filter.Filter
	if expression := r.URL.Query().Get("filter"); expression != "" {
		if f, err = s.filters.Resolve(expression); err != nil {
			s.respondBadRequest(w, err.Error())
			return
		}
	}

	codes := opts.Competitions
	if len(codes) == 0 {
		codes = footballdata.SupportedCodes()
	}

	results := s.client.GetMatchesForCompetitions(r.Context(), codes, opts)
	if f != nil {
		for i, entry := range results {
			if entry.Result == nil {
				continue
			}
			filtered := *entry.Result
			filtered.Matches = f.Apply(entry.Result.Matches)
			filtered.Count = len(filtered.Matches)
			results[i].Result = &filtered
		}
	}
	s.respondJSON(w, http.StatusOK, report.NewOverview(results))
}

// respondMatches applies the optional filter parameter and attaches stats
func (s *Server) respondMatches(w http.ResponseWriter, r *http.Request, result *footballdata.MatchResult) {
	if expression := r.URL.Query().Get("filter"); expression != "" {
		f, err := s.filters.Resolve(expression)
		if err != nil {
			s.respondBadRequest(w, err.Error())
			return
		}
		filtered := *result
		filtered.Matches = f.Apply(result.Matches)
		filtered.Count = len(filtered.Matches)
		result = &filtered
	}

	stats := report.ComputeStats(result.Matches)
	s.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data:    result,
		Stats:   &stats,
	})
}

// parseMatchOptions reads the match search query parameters. date is a
// shorthand for dateFrom and dateTo on the same day.
func parseMatchOptions(r *http.Request) (footballdata.MatchOptions, error) {
	q := r.URL.Query()

	opts := footballdata.MatchOptions{
		Season:   q.Get("season"),
		Status:   strings.ToUpper(q.Get("status")),
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
	}

	if raw := q.Get("competitions"); raw != "" {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				opts.Competitions = append(opts.Competitions, code)
			}
		}
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return opts, fmt.Errorf("limit must be a positive integer, got %q", raw)
		}
		opts.Limit = limit
	}

	return opts.OnDate(q.Get("date")), nil
}
