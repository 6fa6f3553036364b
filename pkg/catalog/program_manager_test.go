package catalog

import (
	"testing"

	"github.com/limaJavier/handbook/pkg/code"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadProgramManager(t *testing.T) ProgramManager {
	t.Helper()
	manager, err := LoadProgramManager(
		testDataDirectory+"programsProcessed.json",
		testDataDirectory+"specialisationsProcessed.json",
	)
	require.NoError(t, err)
	return manager
}

func TestLoadProgramManager(t *testing.T) {
	manager := loadProgramManager(t)

	t.Run("Program", func(t *testing.T) {
		// Act
		program, err := manager.GetProgram(code.MustParseProgramCode("3784"))

		// Assert
		require.NoError(t, err)
		assert.Len(t, manager.Programs(), 3)
		assert.Equal(t, "Commerce / Computer Science", program.Title)
		assert.Equal(t, "3784", program.Code.String())
		assert.Equal(t, uint8(192), program.UOC)
		assert.Equal(t, uint8(4), program.Duration)
		assert.Len(t, program.CourseComponents, 2)
		require.NotNil(t, program.SpecialisationComponent)
		assert.Len(t, program.SpecialisationComponent.Major, 2)
		assert.Nil(t, program.SpecialisationComponent.Minor)
		assert.Nil(t, program.SpecialisationComponent.Honours)
	})

	t.Run("Only course blocks become components", func(t *testing.T) {
		program, err := manager.GetProgram(code.MustParseProgramCode("3778"))

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Core Courses", "Computing Electives"}, lo.Keys(program.CourseComponents))
		assert.Equal(t, "Complete core courses, a major and electives.", program.StructureSummary)
	})

	t.Run("Rules", func(t *testing.T) {
		program, err := manager.GetProgram(code.MustParseProgramCode("3778"))

		require.NoError(t, err)
		require.Len(t, program.Rules, 2)
		assert.Equal(t, Rule{
			Kind:  InfoRule,
			Title: "Industrial Training",
			Body:  "Students must complete 60 days of industrial training.",
		}, program.Rules[0])
		assert.Equal(t, Rule{
			Kind:  LimitRule,
			Title: "Level 1 Limit",
			Body:  "Students may complete at most 60 UOC at level 1.\nCOMP1###\n- MATH1###",
		}, program.Rules[1])
	})

	t.Run("Program without components", func(t *testing.T) {
		program, err := manager.GetProgram(code.MustParseProgramCode("8543"))

		require.NoError(t, err)
		assert.Nil(t, program.CourseComponents)
		assert.Nil(t, program.SpecialisationComponent)
		assert.Nil(t, program.ListCourses())
		assert.Nil(t, program.ListSpecialisations())
		assert.Empty(t, program.Overview)
	})

	t.Run("Specialisation", func(t *testing.T) {
		specialisation, err := manager.GetSpecialisation("COMPA1")

		require.NoError(t, err)
		assert.Len(t, manager.Specialisations(), 5)
		assert.Equal(t, "Computer Science", specialisation.Name)
		assert.Equal(t, Major, specialisation.Type)
		assert.Equal(t, uint8(96), specialisation.UOC)
		assert.Nil(t, specialisation.Constraints)
		assert.Len(t, specialisation.CourseComponents, 2)
	})

	t.Run("Specialisation constraints", func(t *testing.T) {
		specialisation, err := manager.GetSpecialisation("COMPD1")

		require.NoError(t, err)
		assert.Equal(t, []Constraint{{Title: "Overlap", Description: "Cannot be combined with the Computer Science major."}}, specialisation.Constraints)
	})

	t.Run("Unknown codes", func(t *testing.T) {
		_, err := manager.GetProgram(code.MustParseProgramCode("1234"))
		assert.EqualError(t, err, "1234 cannot found in dataset")

		_, err = manager.GetSpecialisation("COMPZ9")
		assert.EqualError(t, err, "COMPZ9 cannot found in dataset")
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})
}

func TestSpecialisationPrograms(t *testing.T) {
	manager := loadProgramManager(t)
	programs := func(specCode string) []string {
		specialisation, err := manager.GetSpecialisation(specCode)
		require.NoError(t, err)
		return lo.Map(specialisation.Programs(), func(program code.ProgramCode, _ int) string { return program.String() })
	}

	t.Run("Every referenced specialisation knows its programs", func(t *testing.T) {
		for _, program := range manager.Programs() {
			specialisations := program.ListSpecialisations()
			if specialisations == nil {
				continue
			}
			for _, tier := range specialisations {
				for _, direction := range tier {
					for _, specCode := range direction.Specialisations {
						specialisation, err := manager.GetSpecialisation(specCode)
						if err != nil {
							continue
						}
						assert.True(t, specialisation.IsOfferedBy(program.Code), "%v should list %v", specCode, program.Code)
					}
				}
			}
		}
	})

	t.Run("Back references", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"3778", "3784"}, programs("COMPA1"))
		assert.Equal(t, []string{"3778"}, programs("MATHC2"))
		assert.Equal(t, []string{"3784"}, programs("FINSA1"))
		assert.Empty(t, programs("FINSB2"))
	})

	t.Run("Back references are unique and ordered", func(t *testing.T) {
		// Arrange
		programs := make(map[string]*Program)
		for _, programCode := range []string{"9999", "1111", "5555"} {
			programs[programCode] = &Program{
				Code: code.MustParseProgramCode(programCode),
				SpecialisationComponent: &SpecialisationComponent{
					Major:   map[string]SpecialisationView{"Computing": {Specialisations: []string{"COMPA1"}}, "Any": {Specialisations: []string{"COMPA1"}}},
					Honours: map[string]SpecialisationView{"Honours": {Specialisations: []string{"COMPA1"}}},
				},
			}
		}
		specialisations := map[string]*Specialisation{"COMPA1": {Code: "COMPA1", Type: Major}}

		// Act
		manager := NewProgramManager(programs, specialisations)

		// Assert
		specialisation, err := manager.GetSpecialisation("COMPA1")
		require.NoError(t, err)
		assert.Equal(t, []string{"1111", "5555", "9999"},
			lo.Map(specialisation.Programs(), func(program code.ProgramCode, _ int) string { return program.String() }))
	})

	t.Run("Unlisted program", func(t *testing.T) {
		specialisation, err := manager.GetSpecialisation("FINSA1")

		require.NoError(t, err)
		assert.False(t, specialisation.IsOfferedBy(code.MustParseProgramCode("3778")))
	})
}

func TestListing(t *testing.T) {
	manager := loadProgramManager(t)
	program, err := manager.GetProgram(code.MustParseProgramCode("3778"))
	require.NoError(t, err)

	t.Run("Courses", func(t *testing.T) {
		// Act
		components := program.ListCourses()

		// Assert
		require.Len(t, components, 2)
		assert.Equal(t, "Computing Electives", components[0].Name)
		assert.Equal(t, "Core Courses", components[1].Name)
		assert.Equal(t, []string{"COMP1511", "COMP1521", "COMP1531", "COMP2521", "MATH1131 or MATH1141"},
			lo.Map(components[1].Courses, func(ref CourseRef, _ int) string { return ref.String() }))
	})

	t.Run("Specialisations", func(t *testing.T) {
		tiers := program.ListSpecialisations()

		require.NotNil(t, tiers)
		assert.Equal(t, []DirectionSpecs{{Direction: "Computer Science", Specialisations: []string{"COMPA1", "COMPD1", "COMPZ9"}}}, tiers[0])
		assert.Equal(t, []DirectionSpecs{{Direction: "Minor", Specialisations: []string{"MATHC2"}}}, tiers[1])
		assert.Equal(t, []DirectionSpecs{{Direction: "Honours"}}, tiers[2])
	})

	t.Run("Missing tiers are empty", func(t *testing.T) {
		program, err := manager.GetProgram(code.MustParseProgramCode("3784"))
		require.NoError(t, err)

		tiers := program.ListSpecialisations()

		require.NotNil(t, tiers)
		assert.Len(t, tiers[0], 2)
		assert.NotNil(t, tiers[1])
		assert.Empty(t, tiers[1])
		assert.Empty(t, tiers[2])
	})

	t.Run("Specialisation courses", func(t *testing.T) {
		specialisation, err := manager.GetSpecialisation("COMPA1")
		require.NoError(t, err)

		components := specialisation.ListCourses()

		require.Len(t, components, 2)
		assert.Equal(t, "Core Courses", components[0].Name)
		assert.Equal(t, "Electives", components[1].Name)
	})
}
