package requirements

import (
	"fmt"
	"strings"

	"github.com/limaJavier/handbook/pkg/code"
	"github.com/samber/lo"
)

// Node is one vertex of a requirement tree. The family is closed: ListNode, BinaryNode, CodeNode, TextNode,
// UOCNode, UOCAtLevelNode, UOCFromNode and WAMNode are the only implementations.
type Node interface {
	// Canonical, deterministic description of the subtree
	String() string
	node()
}

// ListNode is satisfied iff every child is satisfied (comma separated conditions)
type ListNode struct {
	Children []Node
}

// BinaryNode joins two conditions with "and" or "or"
type BinaryNode struct {
	Left     Node
	Right    Node
	Operator OperatorKind
}

// CodeNode holds either a course code (must have been taken) or a program code (must be enrolled in)
type CodeNode struct {
	Course    code.CourseCode
	Program   code.ProgramCode
	IsProgram bool
}

// TextNode is free text that cannot be checked mechanically; it is always satisfied
type TextNode struct {
	Text string
}

// UOCNode requires a minimum of total units of credit
type UOCNode struct {
	UOC uint8
}

// UOCAtLevelNode requires a minimum of units of credit from courses of a given level
type UOCAtLevelNode struct {
	UOC   uint8
	Level uint8
}

// UOCFromNode requires a minimum of units of credit from an explicit list of courses
type UOCFromNode struct {
	UOC     uint8
	Courses []code.CourseCode
}

// WAMNode requires a minimum weighted average mark
type WAMNode struct {
	WAM uint8
}

func (ListNode) node()       {}
func (BinaryNode) node()     {}
func (CodeNode) node()       {}
func (TextNode) node()       {}
func (UOCNode) node()        {}
func (UOCAtLevelNode) node() {}
func (UOCFromNode) node()    {}
func (WAMNode) node()        {}

func (list ListNode) String() string {
	return "Require all of following conditions: " + strings.Join(lo.Map(list.Children, func(child Node, _ int) string {
		return child.String()
	}), ", ")
}

func (binary BinaryNode) String() string {
	return fmt.Sprintf("(%v %v %v)", binary.Left, binary.Operator, binary.Right)
}

func (leaf CodeNode) String() string {
	if leaf.IsProgram {
		return leaf.Program.String()
	}
	return leaf.Course.String()
}

func (leaf TextNode) String() string {
	return leaf.Text
}

func (leaf UOCNode) String() string {
	return fmt.Sprintf("Complete at least %d UOC", leaf.UOC)
}

func (leaf UOCAtLevelNode) String() string {
	return fmt.Sprintf("Complete %d UOC at level %d", leaf.UOC, leaf.Level)
}

func (leaf UOCFromNode) String() string {
	return fmt.Sprintf("Complete %d UOC from following course [%v]", leaf.UOC, strings.Join(lo.Map(leaf.Courses, func(course code.CourseCode, _ int) string {
		return course.String()
	}), ", "))
}

func (leaf WAMNode) String() string {
	return fmt.Sprintf("WAM of at least %d", leaf.WAM)
}
