package recommend

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/26sneakysnake/Career-Compass/internal/catalog"
	"github.com/26sneakysnake/Career-Compass/internal/logger"
)

// Engine ranks the career paths open to an employee.
//
// All state is built by New and never written afterwards, so an Engine may
// serve concurrent queries. Every query returns freshly allocated values.
type Engine struct {
	logger *zap.Logger

	employees []catalog.Employee
	byID      map[string]int

	paths    []catalog.CareerPath
	byOrigin map[string][]int

	trainings []catalog.Training
	bySkill   map[string][]int
}

// New indexes the loaded tables. Employee identifiers must be unique.
func New(tables *catalog.Tables, log *zap.Logger) (*Engine, error) {
	if tables == nil {
		return nil, errors.New("tables are required")
	}

	e := &Engine{
		logger:    logger.WithFields(log),
		employees: cloneEmployees(tables.Employees),
		byID:      make(map[string]int, len(tables.Employees)),
		paths:     clonePaths(tables.CareerPaths),
		byOrigin:  make(map[string][]int),
		trainings: cloneTrainings(tables.Trainings),
		bySkill:   make(map[string][]int),
	}

	for idx, employee := range e.employees {
		if first, ok := e.byID[employee.ID]; ok {
			// Lines count a header row, as for tables read from a file.
			return nil, &catalog.MalformedRecordError{
				Table:  catalog.TableEmployees,
				Line:   idx + 2,
				Field:  "employee_id",
				Reason: fmt.Sprintf("duplicate identifier %q, first defined at line %d", employee.ID, first+2),
			}
		}
		e.byID[employee.ID] = idx
	}

	for idx, path := range e.paths {
		e.byOrigin[path.FromPosition] = append(e.byOrigin[path.FromPosition], idx)
	}

	// Table order within each skill is kept, so lookups match a linear scan.
	for idx, training := range e.trainings {
		for _, skill := range training.SkillsProvided {
			e.bySkill[skill] = append(e.bySkill[skill], idx)
		}
	}

	for _, indexed := range []struct {
		table   string
		records int
	}{
		{table: catalog.TableEmployees, records: len(e.employees)},
		{table: catalog.TableCareerPaths, records: len(e.paths)},
		{table: catalog.TableTrainings, records: len(e.trainings)},
	} {
		e.logger.Debug("table indexed",
			zap.String(logger.FieldTable, indexed.table),
			zap.Int("records", indexed.records),
		)
	}

	e.logger.Info("recommendation engine ready",
		zap.Int("employees", len(e.employees)),
		zap.Int("career_paths", len(e.paths)),
		zap.Int("trainings", len(e.trainings)),
	)

	return e, nil
}

// Load reads the tables from src and builds an Engine.
func Load(src catalog.Sources, log *zap.Logger) (*Engine, error) {
	tables, err := catalog.Load(src)
	if err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}

	return New(tables, log)
}

// Employee returns the employee with the given identifier.
func (e *Engine) Employee(id string) (catalog.Employee, error) {
	idx, ok := e.byID[id]
	if !ok {
		return catalog.Employee{}, &NotFoundError{EmployeeID: id}
	}

	return cloneEmployee(e.employees[idx]), nil
}

// Employees returns all employees in table order.
func (e *Engine) Employees() []catalog.Employee {
	return cloneEmployees(e.employees)
}

// Tables returns a copy of the loaded tables.
func (e *Engine) Tables() *catalog.Tables {
	return &catalog.Tables{
		Employees:   cloneEmployees(e.employees),
		CareerPaths: clonePaths(e.paths),
		Trainings:   cloneTrainings(e.trainings),
	}
}

// PositionCounts returns the number of employees per current position, by
// descending headcount and then by position name.
func (e *Engine) PositionCounts() []PositionCount {
	byPosition := make(map[string]int)
	for _, employee := range e.employees {
		byPosition[employee.CurrentPosition]++
	}

	counts := make([]PositionCount, 0, len(byPosition))
	for position, employees := range byPosition {
		counts = append(counts, PositionCount{Position: position, Employees: employees})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Employees != counts[j].Employees {
			return counts[i].Employees > counts[j].Employees
		}
		return counts[i].Position < counts[j].Position
	})

	return counts
}

// CareerMap returns the graph of all career paths.
func (e *Engine) CareerMap() *catalog.CareerMap {
	return catalog.NewCareerMap(e.paths)
}

// RecommendTrainings lists, for each missing skill in order, every training
// providing it in table order. Skills without a training contribute nothing.
func (e *Engine) RecommendTrainings(missingSkills []string) []TrainingRecommendation {
	recommendations := make([]TrainingRecommendation, 0)

	for _, skill := range missingSkills {
		for _, idx := range e.bySkill[skill] {
			training := e.trainings[idx]
			recommendations = append(recommendations, TrainingRecommendation{
				TrainingID:   training.ID,
				Name:         training.Name,
				DurationDays: training.DurationDays,
				Level:        training.Level,
				ForSkill:     skill,
			})
		}
	}

	return recommendations
}

// Recommend scores every career path leaving the employee's current position
// and returns them by descending compatibility score. Paths with equal scores
// keep their table order. A position without paths is not an error.
func (e *Engine) Recommend(employeeID string) (*Recommendation, error) {
	employee, err := e.Employee(employeeID)
	if err != nil {
		return nil, err
	}

	log := logger.WithEmployee(e.logger, employee.ID, employee.CurrentPosition)

	candidates := e.byOrigin[employee.CurrentPosition]
	rec := &Recommendation{
		Employee: employee,
		Paths:    make([]PathRecommendation, 0, len(candidates)),
	}

	if len(candidates) == 0 {
		rec.Message = NoPathsMessage
		log.Debug("no career paths for position")
		return rec, nil
	}

	for _, idx := range candidates {
		rec.Paths = append(rec.Paths, e.score(employee, e.paths[idx]))
	}

	sort.SliceStable(rec.Paths, func(i, j int) bool {
		return rec.Paths[i].CompatibilityScore > rec.Paths[j].CompatibilityScore
	})

	log.Debug("career paths ranked",
		zap.Int("paths", len(rec.Paths)),
		zap.String(logger.FieldTarget, rec.Paths[0].TargetPosition),
		zap.Float64("best_score", rec.Paths[0].CompatibilityScore),
	)

	return rec, nil
}

func (e *Engine) score(employee catalog.Employee, path catalog.CareerPath) PathRecommendation {
	skillMatch := SkillMatch(employee.Skills, path.RequiredSkills)
	meetsExperience := employee.YearsInPosition >= path.MinYearsExperience
	meetsPerformance := employee.PerformanceScore >= path.MinPerformance

	breakdown := Breakdown(skillMatch, meetsExperience, meetsPerformance)
	missing := MissingSkills(employee.Skills, path.RequiredSkills)
	trainings := e.RecommendTrainings(missing)

	return PathRecommendation{
		TargetPosition:     path.ToPosition,
		CompatibilityScore: breakdown.Total(),
		SkillMatch:         skillMatch,
		MeetsExperience:    meetsExperience,
		MeetsPerformance:   meetsPerformance,
		MissingSkills:      missing,
		Trainings:          trainings,
		Requirements: Requirements{
			MinYearsExperience: path.MinYearsExperience,
			MinPerformance:     path.MinPerformance,
			RequiredSkills:     append([]string{}, path.RequiredSkills...),
		},
		Breakdown: breakdown,
		Plan:      BuildPlan(employee, path, missing),
	}
}

func cloneEmployee(employee catalog.Employee) catalog.Employee {
	employee.Skills = append(catalog.Skills{}, employee.Skills...)
	employee.Interests = append(catalog.Skills{}, employee.Interests...)
	return employee
}

func cloneEmployees(employees []catalog.Employee) []catalog.Employee {
	cloned := make([]catalog.Employee, 0, len(employees))
	for _, employee := range employees {
		cloned = append(cloned, cloneEmployee(employee))
	}
	return cloned
}

func clonePaths(paths []catalog.CareerPath) []catalog.CareerPath {
	cloned := make([]catalog.CareerPath, 0, len(paths))
	for _, path := range paths {
		path.RequiredSkills = append(catalog.Skills{}, path.RequiredSkills...)
		cloned = append(cloned, path)
	}
	return cloned
}

func cloneTrainings(trainings []catalog.Training) []catalog.Training {
	cloned := make([]catalog.Training, 0, len(trainings))
	for _, training := range trainings {
		training.SkillsProvided = append(catalog.Skills{}, training.SkillsProvided...)
		cloned = append(cloned, training)
	}
	return cloned
}
