package requirements

import "fmt"

// Requirements is the parsed form of a course's raw requirement text.
// The tree is immutable once built and is shared by pointer.
type Requirements struct {
	tree Node // nil means no requirement
	raw  string
}

// New cleans, tokenizes and parses a raw catalog string.
// Text without a prerequisite line is valid and yields an empty requirement.
func New(raw string) (*Requirements, error) {
	tree, err := Parse(Tokenize(Clean(raw)))
	if err != nil {
		return nil, fmt.Errorf("cannot parse requirement %q: %w", raw, err)
	}
	return &Requirements{tree: tree, raw: raw}, nil
}

func MustNew(raw string) *Requirements {
	requirements, err := New(raw)
	if err != nil {
		panic(err)
	}
	return requirements
}

func (requirements *Requirements) Tree() Node {
	return requirements.tree
}

func (requirements *Requirements) Raw() string {
	return requirements.raw
}

// IsEmpty reports whether the requirement places no constraint at all
func (requirements *Requirements) IsEmpty() bool {
	return requirements == nil || requirements.tree == nil
}

func (requirements *Requirements) IsSatisfied(student Student, lookup CourseLookup) (bool, error) {
	if requirements.IsEmpty() {
		return true, nil
	}
	return Evaluate(requirements.tree, student, lookup)
}

func (requirements *Requirements) String() string {
	if requirements.IsEmpty() {
		return ""
	}
	return requirements.tree.String()
}
