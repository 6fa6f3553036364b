package search

import (
	"errors"
	"fmt"

	"github.com/limaJavier/handbook/pkg/catalog"
	"github.com/limaJavier/handbook/pkg/code"
	"github.com/limaJavier/handbook/pkg/requirements"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

var ErrSpecialisationNotAllowed = errors.New("is not allowed for program")

// StructureEntry is one named block of a program structure with the display strings of its courses
type StructureEntry struct {
	Name    string
	Courses []string
}

// Searcher expands programs into structures and course pools over a loaded catalog
type Searcher interface {
	// Lists the program's course components and, depending on recursive and filter, its specialisations.
	// A nil filter expands every reachable specialisation; a non-nil filter expands only the listed ones.
	ProgramStructure(program code.ProgramCode, recursive bool, filter []string) ([]StructureEntry, error)
	// Collects every course code reachable from the program and its specialisations
	CoursePool(program code.ProgramCode) (*SearchPool, error)
	// Resolves the pool and keeps the courses the student is eligible for
	EligibleCourses(pool *SearchPool, student requirements.Student) []*catalog.Course
	// Resolves the pool into catalog courses
	CoursesFromPool(pool *SearchPool) []*catalog.Course
	// Assigns taken courses to the entries of the program and of the chosen specialisations
	Progress(program code.ProgramCode, specs []string, taken []string) ([]ComponentProgress, error)
}

type searcherImpl struct {
	programs catalog.ProgramManager
	courses  catalog.CourseManager
}

func NewSearcher(programs catalog.ProgramManager, courses catalog.CourseManager) Searcher {
	return &searcherImpl{
		programs: programs,
		courses:  courses,
	}
}

func (searcher *searcherImpl) ProgramStructure(programCode code.ProgramCode, recursive bool, filter []string) ([]StructureEntry, error) {
	program, err := searcher.programs.GetProgram(programCode)
	if err != nil {
		return nil, err
	}

	structure := componentEntries("", program.ListCourses())

	if !recursive {
		return append(structure, directionEntries(program)...), nil
	}

	if filter == nil {
		return append(structure, searcher.specialisationEntries(program)...), nil
	}

	for _, specCode := range filter {
		specialisation, err := searcher.programs.GetSpecialisation(specCode)
		if err != nil {
			return nil, err
		}
		if !specialisation.IsOfferedBy(program.Code) {
			return nil, fmt.Errorf("specialisation %v %w %v", specCode, ErrSpecialisationNotAllowed, program.Code)
		}
		prefix := fmt.Sprintf("%v - %v - ", specialisation.Type, specialisation.Name)
		structure = append(structure, componentEntries(prefix, specialisation.ListCourses())...)
	}
	return structure, nil
}

// directionEntries summarises each non-empty direction as "{Tier} - {direction}" with its specialisation codes
func directionEntries(program *catalog.Program) []StructureEntry {
	tiers := program.ListSpecialisations()
	if tiers == nil {
		return nil
	}

	entries := make([]StructureEntry, 0)
	for i, tier := range catalog.Tiers {
		for _, direction := range tiers[i] {
			if len(direction.Specialisations) == 0 {
				continue
			}
			entries = append(entries, StructureEntry{
				Name:    fmt.Sprintf("%v - %v", tier, direction.Direction),
				Courses: direction.Specialisations,
			})
		}
	}
	return entries
}

// specialisationEntries expands every reachable specialisation, skipping the ones missing from the catalog
func (searcher *searcherImpl) specialisationEntries(program *catalog.Program) []StructureEntry {
	entries := make([]StructureEntry, 0)
	searcher.forEachSpecialisation(program, func(tier catalog.SpecialisationType, specialisation *catalog.Specialisation) {
		prefix := fmt.Sprintf("%v - %v - ", tier, specialisation.Name)
		entries = append(entries, componentEntries(prefix, specialisation.ListCourses())...)
	})
	return entries
}

func (searcher *searcherImpl) forEachSpecialisation(program *catalog.Program, visit func(catalog.SpecialisationType, *catalog.Specialisation)) {
	tiers := program.ListSpecialisations()
	if tiers == nil {
		return
	}
	for i, tier := range catalog.Tiers {
		for _, direction := range tiers[i] {
			for _, specCode := range direction.Specialisations {
				specialisation, err := searcher.programs.GetSpecialisation(specCode)
				if err != nil {
					log.WithFields(log.Fields{
						"program":        program.Code.String(),
						"specialisation": specCode,
						"error":          err,
					}).Warn("skipping unknown specialisation")
					continue
				}
				visit(tier, specialisation)
			}
		}
	}
}

func componentEntries(prefix string, components []catalog.ComponentCourses) []StructureEntry {
	return lo.Map(components, func(component catalog.ComponentCourses, _ int) StructureEntry {
		return StructureEntry{
			Name: prefix + component.Name,
			Courses: lo.Map(component.Courses, func(ref catalog.CourseRef, _ int) string {
				return ref.String()
			}),
		}
	})
}

func (searcher *searcherImpl) CoursePool(programCode code.ProgramCode) (*SearchPool, error) {
	program, err := searcher.programs.GetProgram(programCode)
	if err != nil {
		return nil, err
	}

	components := program.ListCourses()
	searcher.forEachSpecialisation(program, func(_ catalog.SpecialisationType, specialisation *catalog.Specialisation) {
		components = append(components, specialisation.ListCourses()...)
	})

	courses := lo.FlatMap(components, func(component catalog.ComponentCourses, _ int) []code.CourseCode {
		return lo.FlatMap(component.Courses, func(ref catalog.CourseRef, _ int) []code.CourseCode {
			return ref.CourseCodes()
		})
	})
	return NewSearchPool(courses), nil
}

func (searcher *searcherImpl) EligibleCourses(pool *SearchPool, student requirements.Student) []*catalog.Course {
	return parallelFilter(pool.Pool(searcher.courses), func(course *catalog.Course) bool {
		eligible, err := course.IsEligible(student, searcher.courses)
		return err == nil && eligible
	})
}

func (searcher *searcherImpl) CoursesFromPool(pool *SearchPool) []*catalog.Course {
	return pool.Pool(searcher.courses)
}
