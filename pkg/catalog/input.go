package catalog

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"runtime"
	"slices"
	"sync"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"
)

type RawCourse struct {
	Title           string
	Code            string
	UOC             uint8
	Level           uint8
	Description     string
	StudyLevel      string `mapstructure:"study_level"`
	School          string
	Faculty         string
	Campus          string
	Terms           []string
	GenEd           bool   `mapstructure:"gen_ed"`
	RawRequirements string `mapstructure:"raw_requirements"`
	IsMultiterm     bool   `mapstructure:"is_multiterm"`
}

type RawComponent struct {
	Type              string
	Title             string
	Courses           map[string]any
	CreditsToComplete uint8 `mapstructure:"credits_to_complete"`
	Notes             string
}

type RawSpecialisationView struct {
	Specs      map[string]any
	Notes      string
	IsOptional bool `mapstructure:"is_optional"`
}

type RawProgramComponents struct {
	NonSpecData []RawComponent                              `mapstructure:"non_spec_data"`
	SpecData    map[string]map[string]RawSpecialisationView `mapstructure:"spec_data"` // Tier ("majors", "minors", "honours") -> direction -> view
}

type RawProgram struct {
	Title            string
	Code             string
	UOC              uint8
	Duration         uint8
	Overview         string
	StructureSummary string `mapstructure:"structure_summary"`
	Components       RawProgramComponents
}

type RawConstraint struct {
	Title       string
	Description string
}

type RawSpecialisation struct {
	Name              string
	Code              string
	UOC               uint8
	Type              string
	Curriculum        []RawComponent
	CourseConstraints []RawConstraint `mapstructure:"course_constraints"`
}

// readJson loads a JSON object keyed by catalog code
func readJson(file string) (map[string]any, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, fmt.Errorf("cannot decode %v: %w", file, err)
	}
	return inputJson, nil
}

// recordsFromJson decodes every entry of a catalog file into a raw record
func recordsFromJson[T any](file string) (map[string]T, error) {
	inputJson, err := readJson(file)
	if err != nil {
		return nil, err
	}

	records := make(map[string]T, len(inputJson))
	if err := mapstructure.Decode(inputJson, &records); err != nil {
		return nil, fmt.Errorf("cannot decode records from %v: %w", file, err)
	}
	return records, nil
}

// processRecords converts raw records in parallel keeping the file's keys
func processRecords[R any, T any](records map[string]R, process func(R) (*T, error)) (map[string]*T, error) {
	var (
		mutex     sync.Mutex
		processed = make(map[string]*T, len(records))
		group     errgroup.Group
	)
	group.SetLimit(runtime.NumCPU())

	for key, record := range records {
		group.Go(func() error {
			value, err := process(record)
			if err != nil {
				return fmt.Errorf("%w %v: %w", ErrInvalidRecord, key, err)
			}
			mutex.Lock()
			defer mutex.Unlock()
			processed[key] = value
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return processed, nil
}

// sortedKeys gives the keys of a JSON object in a stable order
func sortedKeys[V any](object map[string]V) []string {
	return slices.Sorted(maps.Keys(object))
}
