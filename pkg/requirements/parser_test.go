package requirements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalRendering(t *testing.T) {
	scenarios := []struct {
		name     string
		raw      string
		expected string
	}{
		{"WAM of", "Prerequisites: WAM of 65", "WAM of at least 65"},
		{"Number WAM", "Prerequisites: 75 WAM", "WAM of at least 75"},
		{"Course code", "Prerequisites: COMP1511", "COMP1511"},
		{"Program code", "Prerequisites: must enroll in master of commerce - Finance 9999", "9999"},
		{"Text", "Prerequisites: TEXT [ major in FINSXXXX]", "major in FINSXXXX"},
		{"UOC at level", "Prerequisites: 36 UOC at level 1", "Complete 36 UOC at level 1"},
		{"UOC from", "Prerequisites: 6 UOC from following course COMM1100 or COMM1120 or COMM1140", "Complete 6 UOC from following course [COMM1100, COMM1120, COMM1140]"},
		{"UOC overall", "Prerequisites: finish 112 UOC overall", "Complete at least 112 UOC"},
		{"Binary", "Prerequisites: COMP1511 and COMP1521", "(COMP1511 and COMP1521)"},
		{"List", "Prerequisites: COMP1511, COMP1521", "Require all of following conditions: COMP1511, COMP1521"},
		{"Right-associative chain", "Prerequisites: COMP1511 and COMP1521 OR COMP1531 OR COMP2521 And COMM1999", "(COMP1511 and (COMP1521 or (COMP1531 or (COMP2521 and COMM1999))))"},
		{"Operator after comma", "Prerequisites: COMP1511, and COMM1100", "Require all of following conditions: COMP1511, COMM1100"},
		{"Nested brackets", "Prerequisites: (COMP1511 and COMP1521) or (COMP3311 and COMM1999)", "((COMP1511 and COMP1521) or (COMP3311 and COMM1999))"},
		{"Program and course", "Prerequisites: Must enroll in master of commerce 3784 and complete COMM1110", "(3784 and COMM1110)"},
		{"Program, course", "Prerequisites: Must enroll in master of commerce 3784, complete COMM1110", "Require all of following conditions: 3784, COMM1110"},
		{"Program and UOC from", "Prerequisites: Must enroll in master of commerce 3784 and complete 12 uoc from COMM1100 or COMM1120 or COMM1140", "(3784 and Complete 12 UOC from following course [COMM1100, COMM1120, COMM1140])"},
		{"Program and WAM", "Prerequisites: Must enroll in master of commerce 3784 and wam of 65 or above", "(3784 and WAM of at least 65)"},
		{"WAM and UOC", "Prerequisites: WAM of 85 and complete 102 uoc at level 1", "(WAM of at least 85 and Complete 102 UOC at level 1)"},
		{"Empty", "", ""},
		{"Unrelated line", "Exclusion: MECH3211, MTRN3212", ""},
		{"Line break", "Exclusion: MECH3211, MTRN3212<br/>Prerequisites: MATH1231 OR DPST1014 OR MATH1241", "(MATH1231 or (DPST1014 or MATH1241))"},
		{"Nested text", "Pre-requisites: (TEXT [Major in COMMMA and something like (this)] and COMM1140) or (TEXT [ Major in COMMMB] and COMM1120)", "((Major in COMMMA and something like ( this ) and COMM1140) or (Major in COMMMB and COMM1120))"},
		{"Complex", "Pre-requisites: (TEXT [ this is a text] and COMM1140 or COMM1190) or (wam of 85 and (complete at least 102 uoc at level 3 or program 3999)), COMM1110", "Require all of following conditions: ((this is a text and (COMM1140 or COMM1190)) or (WAM of at least 85 and (Complete 102 UOC at level 3 or 3999))), COMM1110"},
		{"UOC from then and", "Prerequisites: 12 UOC from COMM1100 or COMM1120 and COMP1511", "(Complete 12 UOC from following course [COMM1100, COMM1120] and COMP1511)"},
		{"Dangling operator", "Prerequisites: or COMP1511", "COMP1511"},
		{"Trailing operator", "Prerequisites: COMP1511 or", "COMP1511"},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			// Act
			requirements, err := New(scenario.raw)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, scenario.expected, requirements.String())
			assert.Equal(t, requirements.String(), requirements.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	scenarios := []struct {
		name     string
		raw      string
		expected error
	}{
		{"Unclosed bracket", "Prerequisites: (COMP1511 and COMP1521", ErrUnbalancedBracket},
		{"Stray closing bracket", "Prerequisites: COMP1511 )", ErrUnbalancedBracket},
		{"Two conditions before comma", "Prerequisites: COMP1511 COMP1521, COMP1531", ErrPendingConditions},
		{"Two conditions at end", "Prerequisites: COMP1511 COMP1521", ErrPendingConditions},
		{"Two conditions before operator", "Prerequisites: COMP1511 COMP1521 and COMP1531", ErrOperatorAmbiguous},
		{"UOC at without level", "Prerequisites: 36 UOC at 1", ErrIncompleteQuantifier},
		{"UOC at level without number", "Prerequisites: 36 UOC at level", ErrIncompleteQuantifier},
		{"WAM without of", "Prerequisites: WAM 65", ErrIncompleteQuantifier},
		{"WAM of without number", "Prerequisites: WAM of", ErrIncompleteQuantifier},
		{"UOC from without codes", "Prerequisites: 6 UOC from following courses", ErrEmptyCourseList},
		{"UOC from with program", "Prerequisites: 6 UOC from COMM1100 or 3784", ErrInvalidCourseList},
		{"Error inside right operand", "Prerequisites: COMP1511 and (COMP1521", ErrUnbalancedBracket},
		{"Comma inside bracket on the right", "Prerequisites: COMP1511 or (COMP1521, COMP1531), MATH1131", ErrUnbalancedBracket},
		{"Comma inside bracket after and", "Prerequisites: COMP1511 and (COMP1521, COMP1531)", ErrUnbalancedBracket},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			requirements, err := New(scenario.raw)

			assert.Nil(t, requirements)
			assert.ErrorIs(t, err, scenario.expected)
		})
	}
}

func TestParseTree(t *testing.T) {
	t.Run("Right-associative structure", func(t *testing.T) {
		// Arrange
		tokens := Tokenize("COMP1511 and COMP1521 or COMP1531")

		// Act
		tree, err := Parse(tokens)

		// Assert
		require.NoError(t, err)
		root, ok := tree.(BinaryNode)
		require.True(t, ok)
		assert.Equal(t, And, root.Operator)
		assert.Equal(t, "COMP1511", root.Left.String())
		right, ok := root.Right.(BinaryNode)
		require.True(t, ok)
		assert.Equal(t, Or, right.Operator)
	})

	t.Run("Empty stream", func(t *testing.T) {
		tree, err := Parse(nil)

		assert.NoError(t, err)
		assert.Nil(t, tree)
	})

	t.Run("Number without follower is dropped", func(t *testing.T) {
		tree, err := Parse(Tokenize("COMP1511 65"))

		assert.NoError(t, err)
		assert.Equal(t, "COMP1511", tree.String())
	})

	t.Run("Canonical text parses again", func(t *testing.T) {
		requirements := MustNew("Prerequisites: WAM of 85 and complete 102 uoc at level 1")

		assert.NotPanics(t, func() {
			_, _ = Parse(Tokenize(Clean("Prerequisites: " + requirements.String())))
		})
	})
}
