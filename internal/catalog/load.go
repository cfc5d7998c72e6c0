package catalog

import (
	"fmt"
	"io"
	"os"
)

// Sources names the files backing each table.
type Sources struct {
	Employees   string `mapstructure:"employees"`
	CareerPaths string `mapstructure:"career-paths"`
	Trainings   string `mapstructure:"trainings"`
}

// Load reads all three tables. It fails on the first unreadable file or
// malformed record; no partial result is returned.
func Load(src Sources) (*Tables, error) {
	employees, err := readFile(src.Employees, ReadEmployees)
	if err != nil {
		return nil, err
	}

	paths, err := readFile(src.CareerPaths, ReadCareerPaths)
	if err != nil {
		return nil, err
	}

	trainings, err := readFile(src.Trainings, ReadTrainings)
	if err != nil {
		return nil, err
	}

	return &Tables{
		Employees:   employees,
		CareerPaths: paths,
		Trainings:   trainings,
	}, nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer file.Close()

	records, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}
