package catalog

import "strings"

// SkillSeparator delimits multi-valued cells in the source tables.
const SkillSeparator = ";"

// Skills is an ordered list of distinct skill names.
type Skills []string

// ParseSkills splits a delimited cell into skills. Items are trimmed, empty
// items are dropped and repeated items are kept once, in first-seen order.
// An empty cell yields an empty, non-nil list.
func ParseSkills(raw string) Skills {
	parts := strings.Split(raw, SkillSeparator)
	skills := make(Skills, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, part := range parts {
		skill := strings.TrimSpace(part)
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}

	return skills
}

// Set returns the skills as a membership set.
func (s Skills) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(s))
	for _, skill := range s {
		set[skill] = struct{}{}
	}
	return set
}

func (s Skills) Contains(skill string) bool {
	for _, item := range s {
		if item == skill {
			return true
		}
	}
	return false
}

func (s Skills) String() string {
	return strings.Join(s, SkillSeparator)
}

// Employee is a row of the employees table.
type Employee struct {
	ID               string  `mapstructure:"employee_id" json:"employee_id" yaml:"employee_id" validate:"required"`
	CurrentPosition  string  `mapstructure:"current_position" json:"current_position" yaml:"current_position" validate:"required"`
	YearsInPosition  float64 `mapstructure:"years_in_position" json:"years_in_position" yaml:"years_in_position" validate:"gte=0"`
	EducationLevel   string  `mapstructure:"education_level" json:"education_level" yaml:"education_level"`
	PerformanceScore float64 `mapstructure:"performance_score" json:"performance_score" yaml:"performance_score" validate:"gte=0,lte=5"`
	Skills           Skills  `mapstructure:"skills" json:"skills" yaml:"skills"`
	Interests        Skills  `mapstructure:"interests" json:"interests" yaml:"interests"`
}

// CareerPath is a directed move from one position to another together with
// its prerequisites.
type CareerPath struct {
	FromPosition       string  `mapstructure:"from_position" json:"from_position" yaml:"from_position" validate:"required"`
	ToPosition         string  `mapstructure:"to_position" json:"to_position" yaml:"to_position" validate:"required"`
	RequiredSkills     Skills  `mapstructure:"required_skills" json:"required_skills" yaml:"required_skills"`
	MinYearsExperience float64 `mapstructure:"min_years_experience" json:"min_years_experience" yaml:"min_years_experience" validate:"gte=0"`
	MinPerformance     float64 `mapstructure:"min_performance" json:"min_performance" yaml:"min_performance" validate:"gte=0,lte=5"`
}

// Training is a row of the trainings table.
type Training struct {
	ID             string  `mapstructure:"training_id" json:"training_id" yaml:"training_id" validate:"required"`
	Name           string  `mapstructure:"training_name" json:"training_name" yaml:"training_name" validate:"required"`
	DurationDays   float64 `mapstructure:"duration_days" json:"duration_days" yaml:"duration_days" validate:"gte=0"`
	Level          string  `mapstructure:"level" json:"level" yaml:"level"`
	SkillsProvided Skills  `mapstructure:"skills_provided" json:"skills_provided" yaml:"skills_provided"`
}

// Tables holds the three loaded tables in file order.
type Tables struct {
	Employees   []Employee
	CareerPaths []CareerPath
	Trainings   []Training
}
