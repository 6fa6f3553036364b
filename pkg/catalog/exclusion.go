package catalog

import (
	"github.com/limaJavier/handbook/pkg/code"
	"github.com/samber/lo"
)

const defaultExclusionText = "Please check handbook for further detail"

type ExclusionKind int

const (
	CourseExclusion ExclusionKind = iota
	ProgramExclusion
	TextExclusion
)

// ExclusionCondition is one entry of a course's exclusion list.
// Only the field matching Kind is meaningful.
type ExclusionCondition struct {
	Kind    ExclusionKind
	Course  code.CourseCode
	Program code.ProgramCode
	Text    string
}

func (condition ExclusionCondition) String() string {
	switch condition.Kind {
	case CourseExclusion:
		return condition.Course.String()
	case ProgramExclusion:
		return condition.Program.String()
	}
	return condition.Text
}

func newExclusionCondition(key string, value any) ExclusionCondition {
	if course, ok := code.FromStrExact(key); ok {
		return ExclusionCondition{Kind: CourseExclusion, Course: course}
	}
	if program, ok := code.ParseProgramCode(key); ok {
		return ExclusionCondition{Kind: ProgramExclusion, Program: program}
	}
	text, ok := value.(string)
	if !ok {
		text = defaultExclusionText
	}
	return ExclusionCondition{Kind: TextExclusion, Text: text}
}

// nonEmptyObjects keeps the entries whose value is a JSON object with at least one key
func nonEmptyObjects(lookup map[string]any) map[string]map[string]any {
	objects := make(map[string]map[string]any, len(lookup))
	for key, value := range lookup {
		if object, ok := value.(map[string]any); ok && len(object) > 0 {
			objects[key] = object
		}
	}
	return objects
}

// ProcessRawEquivalents turns each course's equivalents object into the sorted list of its keys
func ProcessRawEquivalents(lookup map[string]any) map[string][]string {
	return lo.MapValues(nonEmptyObjects(lookup), func(object map[string]any, _ string) []string {
		return sortedKeys(object)
	})
}

// ProcessRawExclusions classifies every key of a course's exclusions object
func ProcessRawExclusions(lookup map[string]any) map[string][]ExclusionCondition {
	return lo.MapValues(nonEmptyObjects(lookup), func(object map[string]any, _ string) []ExclusionCondition {
		return lo.Map(sortedKeys(object), func(key string, _ int) ExclusionCondition {
			return newExclusionCondition(key, object[key])
		})
	})
}
