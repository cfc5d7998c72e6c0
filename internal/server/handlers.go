package server

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/26sneakysnake/Career-Compass/internal/catalog"
	"github.com/26sneakysnake/Career-Compass/internal/coach"
	"github.com/26sneakysnake/Career-Compass/internal/logger"
	"github.com/26sneakysnake/Career-Compass/internal/metrics"
	"github.com/26sneakysnake/Career-Compass/internal/recommend"
)

type employeeSummary struct {
	ID              string `json:"id"`
	CurrentPosition string `json:"current_position"`
}

type careerMapResponse struct {
	Positions []string       `json:"positions"`
	Edges     []catalog.Edge `json:"edges"`
}

type positionsResponse struct {
	TotalEmployees int                       `json:"total_employees"`
	Positions      []recommend.PositionCount `json:"positions"`
}

type coachRequest struct {
	Target   string `query:"target" validate:"required"`
	Question string `query:"question" validate:"required,oneof=prepare chances timeline"`
}

var (
	queryValidator     *validator.Validate
	queryValidatorOnce sync.Once
)

func getQueryValidator() *validator.Validate {
	queryValidatorOnce.Do(func() {
		queryValidator = validator.New(validator.WithRequiredStructEnabled())
		queryValidator.RegisterTagNameFunc(func(field reflect.StructField) string {
			return field.Tag.Get("query")
		})
	})
	return queryValidator
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEmployees(w http.ResponseWriter, _ *http.Request) {
	employees := s.engine.Employees()

	summaries := make([]employeeSummary, 0, len(employees))
	for _, employee := range employees {
		summaries = append(summaries, employeeSummary{ID: employee.ID, CurrentPosition: employee.CurrentPosition})
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	rec, ok := s.recommend(w, r, employeeID)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCareerMap(w http.ResponseWriter, _ *http.Request) {
	careerMap := s.engine.CareerMap()

	writeJSON(w, http.StatusOK, careerMapResponse{
		Positions: careerMap.Positions(),
		Edges:     careerMap.Edges(),
	})
}

func (s *Server) handlePositions(w http.ResponseWriter, _ *http.Request) {
	counts := s.engine.PositionCounts()

	resp := positionsResponse{Positions: counts}
	for _, count := range counts {
		resp.TotalEmployees += count.Employees
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCoach(w http.ResponseWriter, r *http.Request) {
	if s.coach == nil {
		writeError(w, http.StatusServiceUnavailable, codeCoachDisabled, "career coach is not configured")
		return
	}

	req := coachRequest{
		Target:   strings.TrimSpace(r.URL.Query().Get("target")),
		Question: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("question"))),
	}
	if err := getQueryValidator().Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, validationMessage(err))
		return
	}

	rec, ok := s.recommend(w, r, chi.URLParam(r, "employeeID"))
	if !ok {
		return
	}

	answer, err := s.coach.Ask(r.Context(), rec, req.Target, coach.Question(req.Question))
	metrics.RecordCoachRequest(err)

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, answer)
	case errors.Is(err, coach.ErrUnknownTarget):
		writeError(w, http.StatusNotFound, codeUnknownTarget, err.Error())
	default:
		s.logger.Warn("coach request failed",
			zap.String(logger.FieldRequestID, RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, codeCoachFailed, "career coach is unavailable")
	}
}

// recommend runs the engine and writes the error response itself when the
// query fails.
func (s *Server) recommend(w http.ResponseWriter, r *http.Request, employeeID string) (*recommend.Recommendation, bool) {
	start := time.Now()
	rec, err := s.engine.Recommend(employeeID)
	duration := time.Since(start)

	switch {
	case err == nil:
		outcome := metrics.OutcomeOK
		if len(rec.Paths) == 0 {
			outcome = metrics.OutcomeNoPaths
		}
		metrics.RecordRecommendation(outcome, duration)
		return rec, true
	case errors.Is(err, recommend.ErrNotFound):
		metrics.RecordRecommendation(metrics.OutcomeNotFound, duration)
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	default:
		metrics.RecordRecommendation(metrics.OutcomeError, duration)
		s.logger.Error("recommendation failed",
			zap.String(logger.FieldRequestID, RequestID(r.Context())),
			zap.String(logger.FieldEmployeeID, employeeID),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "recommendation failed")
	}

	return nil, false
}

func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err.Error()
	}

	fieldErr := validationErrs[0]
	if fieldErr.Tag() == "required" {
		return fmt.Sprintf("query parameter %q is required", fieldErr.Field())
	}

	return fmt.Sprintf("query parameter %q must be one of: %s", fieldErr.Field(), fieldErr.Param())
}
