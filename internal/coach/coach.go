// Package coach answers free-form career questions about a scored career path
// with a language model. It never changes the scores it is given.
package coach

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/26sneakysnake/Career-Compass/internal/logger"
	"github.com/26sneakysnake/Career-Compass/internal/recommend"
)

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

var (
	ErrUnknownTarget   = errors.New("target position is not a recommended career path")
	ErrUnknownQuestion = errors.New("unknown coach question")
)

// Question selects what the coach is asked about a career path.
type Question string

const (
	QuestionPrepare  Question = "prepare"
	QuestionChances  Question = "chances"
	QuestionTimeline Question = "timeline"
)

var questionText = map[Question]string{
	QuestionPrepare:  "How should this employee prepare for the move to the target position?",
	QuestionChances:  "What are this employee's realistic chances of reaching the target position, and what would improve them?",
	QuestionTimeline: "What is a realistic timeline for this employee to become ready for the target position?",
}

// Questions lists the supported questions in display order.
func Questions() []Question {
	return []Question{QuestionPrepare, QuestionChances, QuestionTimeline}
}

func ParseQuestion(name string) (Question, error) {
	question := Question(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := questionText[question]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuestion, name)
	}
	return question, nil
}

// Answer is the parsed model reply.
type Answer struct {
	Question        Question `json:"question" yaml:"question"`
	Target          string   `json:"target_position" yaml:"target_position"`
	Text            string   `json:"answer" yaml:"answer"`
	FocusSkills     []string `json:"focus_skills" yaml:"focus_skills"`
	EstimatedMonths float64  `json:"estimated_months" yaml:"estimated_months"`
	Raw             string   `json:"-" yaml:"-"`
}

type Coach struct {
	generator Generator
	logger    *zap.Logger
	maxLogLen int
}

func New(generator Generator, maxLogLength int, log *zap.Logger) *Coach {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Coach{
		generator: generator,
		logger:    logger.WithFields(log),
		maxLogLen: maxLogLength,
	}
}

// Ask asks question about the path from rec leading to target.
func (c *Coach) Ask(ctx context.Context, rec *recommend.Recommendation, target string, question Question) (*Answer, error) {
	if c.generator == nil {
		return nil, errors.New("coach generator is not configured")
	}
	if rec == nil {
		return nil, errors.New("recommendation is required")
	}

	text, ok := questionText[question]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuestion, string(question))
	}

	path, ok := rec.Path(target)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}

	prompt, err := buildPrompt(rec, path, text)
	if err != nil {
		return nil, err
	}

	log := logger.WithEmployee(c.logger, rec.Employee.ID, rec.Employee.CurrentPosition).
		With(zap.String(logger.FieldTarget, path.TargetPosition), zap.String("question", string(question)))

	log.Debug("coach request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("asking coach: %w", err)
	}

	log.Debug("coach response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, c.maxLogLen)),
	)

	answer, err := parseAnswer(raw)
	if err != nil {
		return nil, err
	}

	answer.Question = question
	answer.Target = path.TargetPosition
	answer.Raw = raw

	return answer, nil
}

func buildPrompt(rec *recommend.Recommendation, path *recommend.PathRecommendation, question string) (string, error) {
	employeeJSON, err := json.MarshalIndent(rec.Employee, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal employee payload: %w", err)
	}

	pathJSON, err := json.MarshalIndent(path, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal path payload: %w", err)
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Employee:\n{{EMPLOYEE_JSON}}\n\nPath:\n{{PATH_JSON}}\n\nQuestion:\n{{QUESTION}}\n\nJSON Response:"
	}

	prompt := strings.ReplaceAll(template, "{{EMPLOYEE_JSON}}", string(employeeJSON))
	prompt = strings.ReplaceAll(prompt, "{{PATH_JSON}}", string(pathJSON))
	prompt = strings.ReplaceAll(prompt, "{{QUESTION}}", question)

	return prompt, nil
}

func parseAnswer(raw string) (*Answer, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse coach response: %w", err)
	}

	months := coerceFloat(data["estimated_months"])
	if math.IsNaN(months) || months < 0 {
		months = 0
	}

	answer := &Answer{
		Text:            coerceString(data["answer"]),
		FocusSkills:     coerceStrings(data["focus_skills"]),
		EstimatedMonths: months,
	}

	if answer.Text == "" {
		return nil, errors.New("coach response has no answer")
	}

	return answer, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

func coerceStrings(v any) []string {
	result := make([]string, 0)

	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := coerceString(item); s != "" {
				result = append(result, s)
			}
		}
	case string:
		for _, item := range strings.Split(val, ",") {
			if s := strings.TrimSpace(item); s != "" {
				result = append(result, s)
			}
		}
	}

	return result
}
