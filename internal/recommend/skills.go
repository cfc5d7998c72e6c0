package recommend

import (
	"sort"

	"github.com/26sneakysnake/Career-Compass/internal/catalog"
)

// SkillMatch returns the share of required skills the employee already has,
// as a percentage. An empty requirement set scores 0, not 100.
func SkillMatch(employeeSkills, requiredSkills catalog.Skills) float64 {
	required := requiredSkills.Set()
	if len(required) == 0 {
		return 0
	}

	owned := employeeSkills.Set()
	matching := 0
	for skill := range required {
		if _, ok := owned[skill]; ok {
			matching++
		}
	}

	return float64(matching) / float64(len(required)) * 100
}

// MissingSkills returns the required skills the employee lacks, sorted.
func MissingSkills(employeeSkills, requiredSkills catalog.Skills) []string {
	owned := employeeSkills.Set()
	missing := make([]string, 0)

	for skill := range requiredSkills.Set() {
		if _, ok := owned[skill]; !ok {
			missing = append(missing, skill)
		}
	}

	sort.Strings(missing)
	return missing
}

// Score weights. Experience and performance contribute their full value when
// the prerequisite is met and half of it otherwise.
const (
	SkillWeight       = 0.5
	ExperienceWeight  = 0.3
	PerformanceWeight = 0.2

	metValue   = 100.0
	unmetValue = 50.0
)

// Breakdown returns the weighted contribution of each scoring component.
func Breakdown(skillMatch float64, meetsExperience, meetsPerformance bool) ScoreBreakdown {
	experience := unmetValue
	if meetsExperience {
		experience = metValue
	}

	performance := unmetValue
	if meetsPerformance {
		performance = metValue
	}

	return ScoreBreakdown{
		Skills:      skillMatch * SkillWeight,
		Experience:  experience * ExperienceWeight,
		Performance: performance * PerformanceWeight,
	}
}

// CompatibilityScore combines skill match, experience and performance into
// a single percentage.
func CompatibilityScore(skillMatch float64, meetsExperience, meetsPerformance bool) float64 {
	return Breakdown(skillMatch, meetsExperience, meetsPerformance).Total()
}
