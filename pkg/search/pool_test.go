package search

import (
	"testing"

	"github.com/limaJavier/handbook/pkg/catalog"
	"github.com/limaJavier/handbook/pkg/code"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCourses(t *testing.T) catalog.CourseManager {
	t.Helper()
	courses, err := catalog.LoadCourseManager(
		testDataDirectory+"coursesProcessed.json",
		testDataDirectory+"equivalents.json",
		testDataDirectory+"exclusions.json",
	)
	require.NoError(t, err)
	return courses
}

func parseAll(codes ...string) []code.CourseCode {
	return lo.Map(codes, func(course string, _ int) code.CourseCode { return code.MustParse(course) })
}

func rendered(codes []code.CourseCode) []string {
	return lo.Map(codes, func(course code.CourseCode, _ int) string { return course.String() })
}

func TestSearchPoolLevel(t *testing.T) {
	scenarios := []struct {
		name     string
		codes    []code.CourseCode
		expected PoolLevel
	}{
		{"Empty", nil, CodeOnly},
		{"Exact codes", parseAll("COMP1511", "COMP1521"), CodeOnly},
		{"Patterns", parseAll("COMP1###", "MATH####"), PatternOnly},
		{"Both", parseAll("COMP1511", "MATH####"), Hybrid},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			pool := NewSearchPool(scenario.codes)

			assert.Equal(t, scenario.expected, pool.Level())
		})
	}
}

func TestSearchPool(t *testing.T) {
	courses := loadCourses(t)

	t.Run("Duplicates collapse", func(t *testing.T) {
		pool := NewSearchPool(parseAll("COMP1511", "COMP1511", "COMP1###", "COMP1###"))

		assert.Equal(t, []string{"COMP1511"}, rendered(pool.Codes()))
		assert.Equal(t, []string{"COMP1###"}, rendered(pool.Patterns()))
	})

	t.Run("Unknown exact codes are dropped", func(t *testing.T) {
		pool := NewSearchPool(parseAll("COMP1511", "COMP9999"))

		assert.Equal(t, []string{"COMP1511"}, courseCodes(pool.Pool(courses)))
	})

	t.Run("Patterns scan the catalog", func(t *testing.T) {
		pool := NewSearchPool(parseAll("MATH####", "COMP6###"))

		assert.Equal(t, []string{"COMP6771", "MATH1131", "MATH1231", "MATH2501"}, courseCodes(pool.Pool(courses)))
	})

	t.Run("Level selects the active set", func(t *testing.T) {
		// Arrange
		pool := NewSearchPool(parseAll("COMP1511", "MATH2###"))

		// Act & Assert
		assert.Equal(t, []string{"COMP1511", "MATH2501"}, courseCodes(pool.Pool(courses)))

		pool.SetLevel(CodeOnly)
		assert.Equal(t, []string{"COMP1511"}, courseCodes(pool.Pool(courses)))

		pool.SetLevel(PatternOnly)
		assert.Equal(t, []string{"MATH2501"}, courseCodes(pool.Pool(courses)))
	})

	t.Run("Adjust to pattern", func(t *testing.T) {
		// Arrange
		pool := NewSearchPool(parseAll("COMP1511", "COMP2521", "MATH1131", "COMP4###"))

		// Act
		pool.AdjustToPattern(4, 1)

		// Assert
		assert.Equal(t, PatternOnly, pool.Level())
		assert.Empty(t, pool.Codes())
		assert.Equal(t, []string{"COMP1###", "COMP2###", "COMP4###", "MATH1###"}, rendered(pool.Patterns()))
		assert.Equal(t, []string{"COMP1511", "COMP1521", "COMP1531", "COMP2041", "COMP2511", "COMP2521", "COMP4141", "MATH1131", "MATH1231"}, courseCodes(pool.Pool(courses)))
	})

	t.Run("Adjust to school", func(t *testing.T) {
		pool := NewSearchPool(parseAll("MATH1131"))

		pool.AdjustToPattern(4, 0)

		assert.Equal(t, []string{"MATH1131", "MATH1231", "MATH2501"}, courseCodes(pool.Pool(courses)))
	})

	t.Run("Widening a school keeps it a pattern", func(t *testing.T) {
		pool := NewSearchPool(parseAll("COMP"))

		pool.AdjustToPattern(4, 4)

		assert.Equal(t, []string{"COMP####"}, rendered(pool.Patterns()))
		assert.Empty(t, pool.Codes())
		assert.Contains(t, courseCodes(pool.Pool(courses)), "COMP1511")
		assert.NotContains(t, courseCodes(pool.Pool(courses)), "MATH1131")
	})

	t.Run("Empty pool resolves to nothing", func(t *testing.T) {
		assert.Empty(t, NewSearchPool(nil).Pool(courses))
	})
}

func TestParallelFilter(t *testing.T) {
	items := lo.Range(1000)

	kept := parallelFilter(items, func(item int) bool { return item%3 == 0 })

	assert.Equal(t, lo.Filter(items, func(item int, _ int) bool { return item%3 == 0 }), kept)
	assert.Nil(t, parallelFilter([]int{}, func(int) bool { return true }))
}
