package recommend

import (
	"github.com/26sneakysnake/Career-Compass/internal/catalog"
)

// NoPathsMessage is reported when the employee's position has no outgoing
// career path.
const NoPathsMessage = "no career path defined for this position"

// Recommendation is the answer to a single employee query.
type Recommendation struct {
	Employee catalog.Employee     `json:"employee" yaml:"employee"`
	Paths    []PathRecommendation `json:"career_paths" yaml:"career_paths"`
	Message  string               `json:"message,omitempty" yaml:"message,omitempty"`
}

// Path returns the recommendation for the given target position.
func (r *Recommendation) Path(target string) (*PathRecommendation, bool) {
	for idx := range r.Paths {
		if r.Paths[idx].TargetPosition == target {
			return &r.Paths[idx], true
		}
	}
	return nil, false
}

// PathRecommendation is one candidate move annotated with its score and gaps.
type PathRecommendation struct {
	TargetPosition     string                   `json:"target_position" yaml:"target_position"`
	CompatibilityScore float64                  `json:"compatibility_score" yaml:"compatibility_score"`
	SkillMatch         float64                  `json:"skill_match" yaml:"skill_match"`
	MeetsExperience    bool                     `json:"meets_experience" yaml:"meets_experience"`
	MeetsPerformance   bool                     `json:"meets_performance" yaml:"meets_performance"`
	MissingSkills      []string                 `json:"missing_skills" yaml:"missing_skills"`
	Trainings          []TrainingRecommendation `json:"recommended_trainings" yaml:"recommended_trainings"`
	Requirements       Requirements             `json:"requirements" yaml:"requirements"`
	Breakdown          ScoreBreakdown           `json:"breakdown" yaml:"breakdown"`
	Plan               DevelopmentPlan          `json:"development_plan" yaml:"development_plan"`
}

// PositionCount is the headcount of one current position.
type PositionCount struct {
	Position  string `json:"position" yaml:"position"`
	Employees int    `json:"employees" yaml:"employees"`
}

// Requirements echoes the thresholds of the career path.
type Requirements struct {
	MinYearsExperience float64  `json:"min_years_experience" yaml:"min_years_experience"`
	MinPerformance     float64  `json:"min_performance" yaml:"min_performance"`
	RequiredSkills     []string `json:"required_skills" yaml:"required_skills"`
}

// TrainingRecommendation is a training that teaches one missing skill.
type TrainingRecommendation struct {
	TrainingID   string  `json:"training_id" yaml:"training_id"`
	Name         string  `json:"training_name" yaml:"training_name"`
	DurationDays float64 `json:"duration_days" yaml:"duration_days"`
	Level        string  `json:"level" yaml:"level"`
	ForSkill     string  `json:"for_skill" yaml:"for_skill"`
}

// ScoreBreakdown holds the weighted contributions summed into the
// compatibility score.
type ScoreBreakdown struct {
	Skills      float64 `json:"skills" yaml:"skills"`
	Experience  float64 `json:"experience" yaml:"experience"`
	Performance float64 `json:"performance" yaml:"performance"`
}

func (b ScoreBreakdown) Total() float64 {
	return b.Skills + b.Experience + b.Performance
}
