package catalog

import (
	"strings"

	"github.com/limaJavier/handbook/pkg/code"
	"github.com/samber/lo"
)

type CourseRefKind int

const (
	SingleCourse CourseRefKind = iota
	AlternativeCourses
	TextCourse
)

// CourseRef is one entry of a curriculum block: a course, a choice between courses, or free text
type CourseRef struct {
	Kind    CourseRefKind
	Courses []code.CourseCode // One code for SingleCourse, every option for AlternativeCourses
	Text    string
}

func NewCourseRef(entry string) CourseRef {
	if strings.Contains(entry, "or") {
		alternatives, ok := parseAlternatives(entry)
		if ok {
			return CourseRef{Kind: AlternativeCourses, Courses: alternatives}
		}
	}
	if course, ok := code.Parse(strings.TrimSpace(entry)); ok {
		return CourseRef{Kind: SingleCourse, Courses: []code.CourseCode{course}}
	}
	return CourseRef{Kind: TextCourse, Text: entry}
}

// parseAlternatives succeeds only when every "or"-separated piece is a course code
func parseAlternatives(entry string) ([]code.CourseCode, bool) {
	pieces := strings.Split(entry, "or")
	courses := make([]code.CourseCode, 0, len(pieces))
	for _, piece := range pieces {
		course, ok := code.Parse(strings.TrimSpace(piece))
		if !ok {
			return nil, false
		}
		courses = append(courses, course)
	}
	return courses, true
}

// CourseCodes flattens the reference into course codes; free text contributes none
func (ref CourseRef) CourseCodes() []code.CourseCode {
	return ref.Courses
}

func (ref CourseRef) String() string {
	if ref.Kind == TextCourse {
		return ref.Text
	}
	return strings.Join(lo.Map(ref.Courses, func(course code.CourseCode, _ int) string {
		return course.String()
	}), " or ")
}

type CourseComponent struct {
	Title   string
	Courses []CourseRef
	UOC     uint8
	Notes   string
}

func newCourseComponent(raw RawComponent) CourseComponent {
	return CourseComponent{
		Title:   raw.Title,
		Courses: lo.Map(sortedKeys(raw.Courses), func(entry string, _ int) CourseRef { return NewCourseRef(entry) }),
		UOC:     raw.CreditsToComplete,
		Notes:   raw.Notes,
	}
}

// ComponentCourses pairs a curriculum block's title with its course entries
type ComponentCourses struct {
	Name    string
	Courses []CourseRef
}

// listComponents flattens a component map ordered by title
func listComponents(components map[string]CourseComponent) []ComponentCourses {
	return lo.Map(sortedKeys(components), func(title string, _ int) ComponentCourses {
		return ComponentCourses{Name: title, Courses: components[title].Courses}
	})
}

type RuleKind int

const (
	InfoRule RuleKind = iota
	LimitRule
)

// Rule is an informational or limiting notice attached to a program
type Rule struct {
	Kind  RuleKind
	Title string
	Body  string
}

func newRule(raw RawComponent) Rule {
	if raw.Type == limitRuleType {
		messages := lo.Map(sortedKeys(raw.Courses), func(key string, _ int) string {
			message, _ := raw.Courses[key].(string)
			return message
		})
		return Rule{Kind: LimitRule, Title: raw.Title, Body: raw.Notes + "\n" + strings.Join(messages, "\n- ")}
	}
	return Rule{Kind: InfoRule, Title: raw.Title, Body: raw.Notes}
}
