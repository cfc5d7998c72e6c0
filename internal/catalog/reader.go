package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

const (
	TableEmployees   = "employees"
	TableCareerPaths = "career_paths"
	TableTrainings   = "trainings"
)

const utf8BOM = "\ufeff"

type columnKind int

const (
	// kindText may be left empty.
	kindText columnKind = iota
	// kindKey must be a non-empty string.
	kindKey
	// kindNumber must parse as a finite float.
	kindNumber
	// kindSkills is a delimited list, empty means the empty set.
	kindSkills
)

type column struct {
	name string
	kind columnKind
}

var employeeColumns = []column{
	{name: "employee_id", kind: kindKey},
	{name: "current_position", kind: kindKey},
	{name: "years_in_position", kind: kindNumber},
	{name: "education_level", kind: kindText},
	{name: "performance_score", kind: kindNumber},
	{name: "skills", kind: kindSkills},
	{name: "interests", kind: kindSkills},
}

var careerPathColumns = []column{
	{name: "from_position", kind: kindKey},
	{name: "to_position", kind: kindKey},
	{name: "required_skills", kind: kindSkills},
	{name: "min_years_experience", kind: kindNumber},
	{name: "min_performance", kind: kindNumber},
}

var trainingColumns = []column{
	{name: "training_id", kind: kindKey},
	{name: "training_name", kind: kindKey},
	{name: "duration_days", kind: kindNumber},
	{name: "level", kind: kindText},
	{name: "skills_provided", kind: kindSkills},
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// recordValidator returns the shared validator. Field names in its errors are
// the table column names.
func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
			if name == "" {
				return field.Name
			}
			return name
		})
	})

	return validate
}

// ReadEmployees reads the employees table. Employee identifiers must be
// unique.
func ReadEmployees(r io.Reader) ([]Employee, error) {
	employees, lines, err := readTable[Employee](r, TableEmployees, employeeColumns)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int, len(employees))
	for idx, employee := range employees {
		if first, ok := seen[employee.ID]; ok {
			return nil, &MalformedRecordError{
				Table:  TableEmployees,
				Line:   lines[idx],
				Field:  "employee_id",
				Reason: fmt.Sprintf("duplicate identifier %q, first defined at line %d", employee.ID, first),
			}
		}
		seen[employee.ID] = lines[idx]
	}

	return employees, nil
}

// ReadCareerPaths reads the career paths table.
func ReadCareerPaths(r io.Reader) ([]CareerPath, error) {
	paths, _, err := readTable[CareerPath](r, TableCareerPaths, careerPathColumns)
	return paths, err
}

// ReadTrainings reads the trainings table.
func ReadTrainings(r io.Reader) ([]Training, error) {
	trainings, _, err := readTable[Training](r, TableTrainings, trainingColumns)
	return trainings, err
}

// readTable decodes every row into T and returns the records along with the
// source line of each one.
func readTable[T any](r io.Reader, table string, columns []column) ([]T, []int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, &MalformedRecordError{Table: table, Reason: "missing header row"}
	}
	if err != nil {
		return nil, nil, csvError(table, err)
	}

	index, err := headerIndex(table, header, columns)
	if err != nil {
		return nil, nil, err
	}

	records := make([]T, 0)
	lines := make([]int, 0)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, csvError(table, err)
		}

		line, _ := reader.FieldPos(0)

		record, err := decodeRow[T](table, line, row, index, columns)
		if err != nil {
			return nil, nil, err
		}

		records = append(records, record)
		lines = append(lines, line)
	}

	return records, lines, nil
}

func headerIndex(table string, header []string, columns []column) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for pos, name := range header {
		if pos == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		index[strings.TrimSpace(name)] = pos
	}

	for _, col := range columns {
		if _, ok := index[col.name]; !ok {
			return nil, &MalformedRecordError{Table: table, Field: col.name, Reason: "missing column"}
		}
	}

	return index, nil
}

func decodeRow[T any](table string, line int, row []string, index map[string]int, columns []column) (T, error) {
	var record T

	values := make(map[string]any, len(columns))
	for _, col := range columns {
		cell := strings.TrimSpace(row[index[col.name]])

		switch col.kind {
		case kindKey:
			if cell == "" {
				return record, &MalformedRecordError{Table: table, Line: line, Field: col.name, Reason: "value is required"}
			}
		case kindNumber:
			if cell == "" {
				return record, &MalformedRecordError{Table: table, Line: line, Field: col.name, Reason: "value is required"}
			}
			number, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
				return record, &MalformedRecordError{Table: table, Line: line, Field: col.name, Reason: fmt.Sprintf("%q is not a number", cell)}
			}
		}

		values[col.name] = cell
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(skillsHook),
		WeaklyTypedInput: true,
		Result:           &record,
	})
	if err != nil {
		return record, fmt.Errorf("creating %s decoder: %w", table, err)
	}

	if err := decoder.Decode(values); err != nil {
		return record, &MalformedRecordError{Table: table, Line: line, Reason: err.Error()}
	}

	if err := recordValidator().Struct(&record); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return record, &MalformedRecordError{
				Table:  table,
				Line:   line,
				Field:  fe.Field(),
				Reason: fmt.Sprintf("value %v violates %s", fe.Value(), constraint(fe)),
			}
		}
		return record, &MalformedRecordError{Table: table, Line: line, Reason: err.Error()}
	}

	return record, nil
}

var skillsType = reflect.TypeOf(Skills{})

func skillsHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != skillsType {
		return data, nil
	}
	return ParseSkills(data.(string)), nil
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func csvError(table string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &MalformedRecordError{Table: table, Line: parseErr.Line, Reason: parseErr.Err.Error()}
	}
	return fmt.Errorf("reading %s: %w", table, err)
}
