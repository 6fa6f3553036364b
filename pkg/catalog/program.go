package catalog

import (
	"fmt"

	"github.com/limaJavier/handbook/pkg/code"
	"github.com/samber/lo"
)

// Component types of a program's non_spec_data entries
const (
	coreCoursesType         = "core_courses"
	prescribedElectivesType = "prescribed_electives"
	infoRuleType            = "info_rule"
	limitRuleType           = "limit_rule"
)

type SpecialisationView struct {
	Specialisations []string
	Notes           string
	IsOptional      bool
}

// SpecialisationComponent holds the views of each tier keyed by direction.
// A nil map means the program does not offer that tier.
type SpecialisationComponent struct {
	Major   map[string]SpecialisationView
	Minor   map[string]SpecialisationView
	Honours map[string]SpecialisationView
}

func (component *SpecialisationComponent) Tier(tier SpecialisationType) map[string]SpecialisationView {
	switch tier {
	case Major:
		return component.Major
	case Minor:
		return component.Minor
	case Honours:
		return component.Honours
	}
	return nil
}

// DirectionSpecs pairs a direction label with the specialisation codes it offers
type DirectionSpecs struct {
	Direction       string
	Specialisations []string
}

type Program struct {
	Title                   string
	Code                    code.ProgramCode
	UOC                     uint8
	Duration                uint8
	Overview                string
	StructureSummary        string
	CourseComponents        map[string]CourseComponent // nil when the program has no course component
	SpecialisationComponent *SpecialisationComponent   // nil when the program offers no specialisation
	Rules                   []Rule
}

// ListCourses flattens the program's course components ordered by title, or nil if it has none
func (program *Program) ListCourses() []ComponentCourses {
	if program.CourseComponents == nil {
		return nil
	}
	return listComponents(program.CourseComponents)
}

// ListSpecialisations returns the major, minor and honours directions in that order.
// Missing tiers are empty; the result is nil only when the program offers no specialisation at all.
func (program *Program) ListSpecialisations() *[3][]DirectionSpecs {
	if program.SpecialisationComponent == nil {
		return nil
	}

	var tiers [3][]DirectionSpecs
	for i, tier := range Tiers {
		views := program.SpecialisationComponent.Tier(tier)
		tiers[i] = lo.Map(sortedKeys(views), func(direction string, _ int) DirectionSpecs {
			return DirectionSpecs{Direction: direction, Specialisations: views[direction].Specialisations}
		})
	}
	return &tiers
}

func ProcessRawProgram(raw RawProgram) (*Program, error) {
	programCode, ok := code.ParseProgramCode(raw.Code)
	if !ok {
		return nil, fmt.Errorf("invalid program code: %v", raw.Code)
	}

	//** Manage non-specialisation components
	components := make(map[string]CourseComponent)
	rules := make([]Rule, 0)
	for _, rawComponent := range raw.Components.NonSpecData {
		switch rawComponent.Type {
		case coreCoursesType, prescribedElectivesType:
			component := newCourseComponent(rawComponent)
			components[component.Title] = component
		case infoRuleType, limitRuleType:
			rules = append(rules, newRule(rawComponent))
		}
	}
	if len(components) == 0 {
		components = nil
	}

	//** Manage specialisation component
	var specialisationComponent *SpecialisationComponent
	if raw.Components.SpecData != nil {
		specialisationComponent = &SpecialisationComponent{
			Major:   newSpecialisationViews(raw.Components.SpecData, Major),
			Minor:   newSpecialisationViews(raw.Components.SpecData, Minor),
			Honours: newSpecialisationViews(raw.Components.SpecData, Honours),
		}
	}

	return &Program{
		Title:                   raw.Title,
		Code:                    programCode,
		UOC:                     raw.UOC,
		Duration:                raw.Duration,
		Overview:                raw.Overview,
		StructureSummary:        raw.StructureSummary,
		CourseComponents:        components,
		SpecialisationComponent: specialisationComponent,
		Rules:                   rules,
	}, nil
}

func newSpecialisationViews(specData map[string]map[string]RawSpecialisationView, tier SpecialisationType) map[string]SpecialisationView {
	rawViews, ok := specData[specialisationTierKeys[tier]]
	if !ok {
		return nil
	}
	return lo.MapValues(rawViews, func(view RawSpecialisationView, _ string) SpecialisationView {
		return SpecialisationView{
			Specialisations: sortedKeys(view.Specs),
			Notes:           view.Notes,
			IsOptional:      view.IsOptional,
		}
	})
}
