package catalog

import (
	"fmt"
	"slices"

	"github.com/limaJavier/handbook/pkg/code"
	"github.com/samber/lo"
)

type SpecialisationType int

const (
	Major SpecialisationType = iota
	Minor
	Honours
)

// Tiers lists the specialisation types in the order programs present them
var Tiers = [3]SpecialisationType{Major, Minor, Honours}

var (
	specialisationTypeNames = map[SpecialisationType]string{
		Major:   "Major",
		Minor:   "Minor",
		Honours: "Honours",
	}
	specialisationTypeLabels = map[string]SpecialisationType{
		"major":   Major,
		"minor":   Minor,
		"honours": Honours,
	}
	// Keys of a program's spec_data object
	specialisationTierKeys = map[SpecialisationType]string{
		Major:   "majors",
		Minor:   "minors",
		Honours: "honours",
	}
)

func (specType SpecialisationType) String() string {
	return specialisationTypeNames[specType]
}

type Constraint struct {
	Title       string
	Description string
}

type Specialisation struct {
	Name             string
	Type             SpecialisationType
	Code             string
	UOC              uint8
	CourseComponents map[string]CourseComponent
	Constraints      []Constraint // nil when the specialisation declares none
	programs         []code.ProgramCode
}

// Programs lists the programs whose structure references the specialisation
func (specialisation *Specialisation) Programs() []code.ProgramCode {
	return specialisation.programs
}

func (specialisation *Specialisation) IsOfferedBy(program code.ProgramCode) bool {
	return slices.ContainsFunc(specialisation.programs, program.Equal)
}

func (specialisation *Specialisation) ListCourses() []ComponentCourses {
	return listComponents(specialisation.CourseComponents)
}

func ProcessRawSpecialisation(raw RawSpecialisation) (*Specialisation, error) {
	specType, ok := specialisationTypeLabels[raw.Type]
	if !ok {
		return nil, fmt.Errorf("invalid specialisation type for %v: %v", raw.Code, raw.Type)
	}

	components := make(map[string]CourseComponent, len(raw.Curriculum))
	for _, rawComponent := range raw.Curriculum {
		component := newCourseComponent(rawComponent)
		components[component.Title] = component
	}

	var constraints []Constraint
	if len(raw.CourseConstraints) > 0 {
		constraints = lo.Map(raw.CourseConstraints, func(constraint RawConstraint, _ int) Constraint {
			return Constraint{Title: constraint.Title, Description: constraint.Description}
		})
	}

	return &Specialisation{
		Name:             raw.Name,
		Type:             specType,
		Code:             raw.Code,
		UOC:              raw.UOC,
		CourseComponents: components,
		Constraints:      constraints,
	}, nil
}
