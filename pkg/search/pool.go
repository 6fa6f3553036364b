package search

import (
	"slices"
	"strings"

	"github.com/limaJavier/handbook/pkg/catalog"
	"github.com/limaJavier/handbook/pkg/code"
	"github.com/samber/lo"
)

type PoolLevel int

const (
	CodeOnly PoolLevel = iota
	PatternOnly
	Hybrid
)

var poolLevelNames = map[PoolLevel]string{
	CodeOnly:    "code only",
	PatternOnly: "pattern only",
	Hybrid:      "hybrid",
}

func (level PoolLevel) String() string {
	return poolLevelNames[level]
}

// SearchPool holds the exact codes and the patterns a program can reach.
// The level selects which of the two sets Pool resolves.
type SearchPool struct {
	codes    map[string]code.CourseCode
	patterns map[string]code.CourseCode
	level    PoolLevel
}

// NewSearchPool splits the given codes into exact codes and patterns
func NewSearchPool(courses []code.CourseCode) *SearchPool {
	pool := &SearchPool{
		codes:    make(map[string]code.CourseCode),
		patterns: make(map[string]code.CourseCode),
	}
	for _, course := range courses {
		if course.IsPattern() {
			pool.patterns[course.Key()] = course
		} else {
			pool.codes[course.Key()] = course
		}
	}

	switch {
	case len(pool.patterns) == 0:
		pool.level = CodeOnly
	case len(pool.codes) == 0:
		pool.level = PatternOnly
	default:
		pool.level = Hybrid
	}
	return pool
}

func (pool *SearchPool) Level() PoolLevel {
	return pool.level
}

func (pool *SearchPool) SetLevel(level PoolLevel) {
	pool.level = level
}

// AdjustToPattern turns every code of the pool into a pattern keeping schoolLen and numberLen live slots
func (pool *SearchPool) AdjustToPattern(schoolLen, numberLen uint8) {
	patterns := make(map[string]code.CourseCode, len(pool.codes)+len(pool.patterns))
	for _, course := range lo.Assign(pool.codes, pool.patterns) {
		adjusted := course.AdjustPattern(schoolLen, numberLen)
		patterns[adjusted.Key()] = adjusted
	}
	pool.codes = make(map[string]code.CourseCode)
	pool.patterns = patterns
	pool.level = PatternOnly
}

// Codes returns the exact codes ordered by display string
func (pool *SearchPool) Codes() []code.CourseCode {
	return sortedCodes(pool.codes)
}

// Patterns returns the patterns ordered by display string
func (pool *SearchPool) Patterns() []code.CourseCode {
	return sortedCodes(pool.patterns)
}

// Pool resolves the active sets against the catalog.
// Exact codes missing from the catalog are dropped; each pattern costs a full catalog scan.
func (pool *SearchPool) Pool(courses catalog.CourseManager) []*catalog.Course {
	var resolved []*catalog.Course
	switch pool.level {
	case CodeOnly:
		resolved = pool.resolveCodes(courses)
	case PatternOnly:
		resolved = pool.resolvePatterns(courses)
	case Hybrid:
		resolved = append(pool.resolveCodes(courses), pool.resolvePatterns(courses)...)
	}
	return sortCourses(lo.UniqBy(resolved, func(course *catalog.Course) string { return course.Code.Key() }))
}

func (pool *SearchPool) resolveCodes(courses catalog.CourseManager) []*catalog.Course {
	return lo.FilterMap(pool.Codes(), func(course code.CourseCode, _ int) (*catalog.Course, bool) {
		found, err := courses.GetCourse(course)
		return found, err == nil
	})
}

func (pool *SearchPool) resolvePatterns(courses catalog.CourseManager) []*catalog.Course {
	if len(pool.patterns) == 0 {
		return nil
	}
	patterns := pool.Patterns()
	return parallelFilter(lo.Values(courses.Courses()), func(course *catalog.Course) bool {
		return lo.SomeBy(patterns, func(pattern code.CourseCode) bool {
			return pattern.Matches(course.Code)
		})
	})
}

func sortedCodes(codes map[string]code.CourseCode) []code.CourseCode {
	return lo.Map(sortedKeys(codes), func(key string, _ int) code.CourseCode { return codes[key] })
}

func sortedKeys[V any](object map[string]V) []string {
	keys := lo.Keys(object)
	slices.Sort(keys)
	return keys
}

func sortCourses(courses []*catalog.Course) []*catalog.Course {
	slices.SortFunc(courses, func(a, b *catalog.Course) int {
		return strings.Compare(a.Code.Key(), b.Code.Key())
	})
	return courses
}
