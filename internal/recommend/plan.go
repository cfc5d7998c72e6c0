package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/26sneakysnake/Career-Compass/internal/catalog"
)

// Plan step actions, in the order they appear in a plan.
const (
	ActionAcquireSkills      = "acquire_skills"
	ActionGainExperience     = "gain_experience"
	ActionImprovePerformance = "improve_performance"
	ActionApplyInternally    = "apply_internally"
)

// ReadyNote is the closing note of a plan with nothing left to close.
const ReadyNote = "all skills and prerequisites are met; contact HR about an internal move"

// DevelopmentPlan lists the ordered steps towards a target position.
type DevelopmentPlan struct {
	// ExperienceGapYears is zero when the experience requirement is met.
	ExperienceGapYears float64    `json:"experience_gap_years" yaml:"experience_gap_years"`
	Steps              []PlanStep `json:"steps" yaml:"steps"`
	Ready              bool       `json:"ready" yaml:"ready"`
	Note               string     `json:"note,omitempty" yaml:"note,omitempty"`
}

// PlanStep is one action of a development plan.
type PlanStep struct {
	Action string `json:"action" yaml:"action"`
	Detail string `json:"detail" yaml:"detail"`
}

// BuildPlan derives the development plan of a scored path. Missing skills
// come first, then the experience and performance gaps, and the internal
// application always closes the plan.
func BuildPlan(employee catalog.Employee, path catalog.CareerPath, missing []string) DevelopmentPlan {
	plan := DevelopmentPlan{Steps: make([]PlanStep, 0, 4)}

	if len(missing) > 0 {
		plan.Steps = append(plan.Steps, PlanStep{
			Action: ActionAcquireSkills,
			Detail: fmt.Sprintf("acquire %s through the recommended trainings", strings.Join(missing, ", ")),
		})
	}

	meetsExperience := employee.YearsInPosition >= path.MinYearsExperience
	if !meetsExperience {
		plan.ExperienceGapYears = path.MinYearsExperience - employee.YearsInPosition
		plan.Steps = append(plan.Steps, PlanStep{
			Action: ActionGainExperience,
			Detail: fmt.Sprintf("gain %s more years of experience in the current position", formatDecimal(plan.ExperienceGapYears)),
		})
	}

	meetsPerformance := employee.PerformanceScore >= path.MinPerformance
	if !meetsPerformance {
		plan.Steps = append(plan.Steps, PlanStep{
			Action: ActionImprovePerformance,
			Detail: fmt.Sprintf("raise the performance score from %s to at least %s",
				formatDecimal(employee.PerformanceScore), formatDecimal(path.MinPerformance)),
		})
	}

	plan.Steps = append(plan.Steps, PlanStep{
		Action: ActionApplyInternally,
		Detail: fmt.Sprintf("prepare an internal application for %s", path.ToPosition),
	})

	if len(missing) == 0 && meetsExperience && meetsPerformance {
		plan.Ready = true
		plan.Note = ReadyNote
	}

	return plan
}

func formatDecimal(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
