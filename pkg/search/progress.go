package search

import (
	"fmt"

	"github.com/limaJavier/handbook/pkg/catalog"
	"github.com/limaJavier/handbook/pkg/code"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/onsi/gomega/matchers/support/goraph/edge"
	"github.com/samber/lo"
)

// ComponentProgress reports which entries of a curriculum block are filled by taken courses
type ComponentProgress struct {
	Name      string
	Filled    map[string]string // Entry display string -> taken course filling it
	Remaining []string
}

// slot is one checkable entry of a curriculum block
type slot struct {
	component int
	ref       catalog.CourseRef
}

// Progress assigns every taken course to at most one entry of the program's structure.
// Specialisations listed in specs are included after the program's own components.
// The assignment is a largest bipartite matching, so a course matching several entries is counted once.
func (searcher *searcherImpl) Progress(programCode code.ProgramCode, specs []string, taken []string) ([]ComponentProgress, error) {
	program, err := searcher.programs.GetProgram(programCode)
	if err != nil {
		return nil, err
	}

	components := program.ListCourses()
	for _, specCode := range specs {
		specialisation, err := searcher.programs.GetSpecialisation(specCode)
		if err != nil {
			return nil, err
		}
		if !specialisation.IsOfferedBy(program.Code) {
			return nil, fmt.Errorf("specialisation %v %w %v", specCode, ErrSpecialisationNotAllowed, program.Code)
		}
		components = append(components, lo.Map(specialisation.ListCourses(), func(component catalog.ComponentCourses, _ int) catalog.ComponentCourses {
			component.Name = fmt.Sprintf("%v - %v - %v", specialisation.Type, specialisation.Name, component.Name)
			return component
		})...)
	}

	//** Collect entries and taken courses
	slots := make([]slot, 0)
	for i, component := range components {
		for _, ref := range component.Courses {
			if ref.Kind != catalog.TextCourse {
				slots = append(slots, slot{component: i, ref: ref})
			}
		}
	}
	takenCodes := lo.Uniq(lo.FilterMap(taken, func(course string, _ int) (code.CourseCode, bool) {
		return code.FromStrExact(course)
	}))

	//** Match entries against taken courses
	filled := make(map[int]code.CourseCode)
	if len(slots) > 0 && len(takenCodes) > 0 {
		matching, err := largestMatching(slots, takenCodes)
		if err != nil {
			return nil, err
		}
		for _, matched := range matching {
			filled[matched.Node1] = takenCodes[matched.Node2-len(slots)]
		}
	}

	//** Build report
	progress := lo.Map(components, func(component catalog.ComponentCourses, _ int) ComponentProgress {
		return ComponentProgress{Name: component.Name, Filled: make(map[string]string), Remaining: make([]string, 0)}
	})
	for i, entry := range slots {
		if course, ok := filled[i]; ok {
			progress[entry.component].Filled[entry.ref.String()] = course.String()
		} else {
			progress[entry.component].Remaining = append(progress[entry.component].Remaining, entry.ref.String())
		}
	}
	return progress, nil
}

func largestMatching(slots []slot, taken []code.CourseCode) (edge.EdgeSet, error) {
	// Build neighbors predicate: a taken course fills an entry listing a code that covers it
	neighbors := func(slotAny any, courseAny any) (bool, error) {
		entry := slotAny.(slot)
		course := courseAny.(code.CourseCode)

		return lo.SomeBy(entry.ref.CourseCodes(), course.Equal), nil
	}

	slotsAny, takenAny := lo.Map(slots, func(entry slot, _ int) any { return entry }), lo.Map(taken, func(course code.CourseCode, _ int) any { return course })

	graph, err := bipartitegraph.NewBipartiteGraph(slotsAny, takenAny, neighbors)
	if err != nil {
		return nil, err
	}
	return graph.LargestMatching(), nil
}
