package requirements

import (
	"errors"
	"fmt"

	"github.com/limaJavier/handbook/pkg/code"
	"github.com/samber/lo"
)

var (
	ErrInvalidTakenCourse = errors.New("taken course is not a course code")
	ErrUnknownNode        = errors.New("unknown requirement node")
)

// Student is the academic record a requirement tree is evaluated against
type Student struct {
	Program code.ProgramCode
	Taken   []string // Display strings of completed courses
	WAM     *uint8   // nil when no WAM is recorded
}

// CourseLookup resolves the units of credit of an exact course code
type CourseLookup interface {
	CourseUOC(course code.CourseCode) (uint8, error)
}

// Evaluate walks the tree against the student's record.
//
// A ListNode treats a failing child as unsatisfied and keeps going, while BinaryNode propagates the error.
func Evaluate(node Node, student Student, lookup CourseLookup) (bool, error) {
	switch node := node.(type) {
	case ListNode:
		return lo.EveryBy(node.Children, func(child Node) bool {
			satisfied, err := Evaluate(child, student, lookup)
			return err == nil && satisfied
		}), nil
	case BinaryNode:
		left, err := Evaluate(node.Left, student, lookup)
		if err != nil {
			return false, err
		}
		// Short-circuit
		if (node.Operator == And && !left) || (node.Operator == Or && left) {
			return left, nil
		}
		return Evaluate(node.Right, student, lookup)
	case CodeNode:
		if node.IsProgram {
			return node.Program.String() == student.Program.String(), nil
		}
		return lo.Contains(student.Taken, node.Course.String()), nil
	case TextNode:
		return true, nil
	case UOCNode:
		return meetsUOC(node.UOC, student, lookup, func(code.CourseCode) bool { return true })
	case UOCAtLevelNode:
		return meetsUOC(node.UOC, student, lookup, func(course code.CourseCode) bool {
			return course.Level() == node.Level
		})
	case UOCFromNode:
		return meetsUOC(node.UOC, student, lookup, func(course code.CourseCode) bool {
			return lo.ContainsBy(node.Courses, course.Equal)
		})
	case WAMNode:
		if student.WAM == nil {
			return true, nil
		}
		return *student.WAM >= node.WAM, nil
	}
	return false, fmt.Errorf("%w: %T", ErrUnknownNode, node)
}

// meetsUOC checks the units of credit summed over every taken course accepted by include against threshold
func meetsUOC(threshold uint8, student Student, lookup CourseLookup, include func(code.CourseCode) bool) (bool, error) {
	var sum uint64
	for _, taken := range student.Taken {
		course, ok := code.FromStrExact(taken)
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrInvalidTakenCourse, taken)
		}
		if !include(course) {
			continue
		}
		uoc, err := lookup.CourseUOC(course)
		if err != nil {
			return false, err
		}
		sum += uint64(uoc)
	}
	return sum >= uint64(threshold), nil
}
