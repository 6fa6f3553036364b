package catalog

import (
	"errors"
	"fmt"

	"github.com/limaJavier/handbook/pkg/code"
	"github.com/samber/lo"
)

var (
	ErrPatternCode   = errors.New("expect a specific course code")
	ErrCodeNotFound  = errors.New("cannot found in dataset")
	ErrInvalidRecord = errors.New("invalid catalog record")
)

// CourseManager owns the loaded course catalog together with its equivalence and exclusion side tables.
// The catalog is read-only once built and safe for concurrent readers.
type CourseManager interface {
	// Returns the course identified by an exact code
	GetCourse(course code.CourseCode) (*Course, error)
	// Returns the units of credit of an exact course code
	CourseUOC(course code.CourseCode) (uint8, error)
	// Returns every course keyed by its display code
	Courses() map[string]*Course
	// Returns the equivalent course codes of each course
	Equivalents() map[string][]string
	// Returns the exclusion conditions of each course
	Exclusions() map[string][]ExclusionCondition
}

type courseManagerImpl struct {
	courses     map[string]*Course
	equivalents map[string][]string
	exclusions  map[string][]ExclusionCondition
}

func NewCourseManager(courses map[string]*Course, equivalents map[string][]string, exclusions map[string][]ExclusionCondition) CourseManager {
	return &courseManagerImpl{
		courses:     courses,
		equivalents: equivalents,
		exclusions:  exclusions,
	}
}

// LoadCourseManager reads the course, equivalent and exclusion catalog files
func LoadCourseManager(coursesPath, equivalentsPath, exclusionsPath string) (CourseManager, error) {
	rawCourses, err := RawCoursesFromJson(coursesPath)
	if err != nil {
		return nil, err
	}
	courses, err := ProcessRawCourses(rawCourses)
	if err != nil {
		return nil, err
	}

	rawEquivalents, err := readJson(equivalentsPath)
	if err != nil {
		return nil, err
	}
	rawExclusions, err := readJson(exclusionsPath)
	if err != nil {
		return nil, err
	}

	return NewCourseManager(courses, ProcessRawEquivalents(rawEquivalents), ProcessRawExclusions(rawExclusions)), nil
}

// RawCoursesFromJson decodes the course catalog file without validating it
func RawCoursesFromJson(file string) (map[string]RawCourse, error) {
	return recordsFromJson[RawCourse](file)
}

// ProcessRawCourses converts every raw record in parallel and keys the result by display code
func ProcessRawCourses(rawCourses map[string]RawCourse) (map[string]*Course, error) {
	processed, err := processRecords(rawCourses, ProcessRawCourse)
	if err != nil {
		return nil, err
	}
	return lo.MapKeys(processed, func(course *Course, _ string) string {
		return course.Code.String()
	}), nil
}

func (manager *courseManagerImpl) GetCourse(course code.CourseCode) (*Course, error) {
	if course.IsPattern() {
		return nil, fmt.Errorf("%w, rather than %v", ErrPatternCode, course)
	}
	found, ok := manager.courses[course.String()]
	if !ok {
		return nil, fmt.Errorf("%v %w", course, ErrCodeNotFound)
	}
	return found, nil
}

func (manager *courseManagerImpl) CourseUOC(course code.CourseCode) (uint8, error) {
	found, err := manager.GetCourse(course)
	if err != nil {
		return 0, err
	}
	return found.UOC, nil
}

func (manager *courseManagerImpl) Courses() map[string]*Course {
	return manager.courses
}

func (manager *courseManagerImpl) Equivalents() map[string][]string {
	return manager.equivalents
}

func (manager *courseManagerImpl) Exclusions() map[string][]ExclusionCondition {
	return manager.exclusions
}
