package code

import (
	"fmt"
	"unicode"
)

const (
	SchoolFiller = '.'
	NumberFiller = '#'
	segmentLen   = 4
)

// CourseCode is a course code made of a 4-slot alphabetic school segment and a 4-slot numeric segment.
// Only the leading schoolLen/numberLen slots of each segment are live; the remaining slots are wildcards.
// A code with both counters at 4 is exact, anything else is a pattern.
type CourseCode struct {
	school    [segmentLen]rune // Captured characters, kept even when hidden so a wider pattern can reveal them again
	number    [segmentLen]rune
	schoolLen uint8
	numberLen uint8
}

func blankCourseCode() CourseCode {
	code := CourseCode{}
	for i := range segmentLen {
		code.school[i] = SchoolFiller
		code.number[i] = NumberFiller
	}
	return code
}

// Parse accepts an exact code ("COMP1511") or any shorter prefix or pattern ("COMP", "COMM1", "COMP2###", "....1").
// The live counters are set to the number of concrete characters supplied in each segment.
func Parse(s string) (CourseCode, bool) {
	runes := []rune(s)
	if len(runes) > 2*segmentLen {
		return CourseCode{}, false
	}

	code := blankCourseCode()
	schoolClosed, numberClosed := false, false
	for i, r := range runes {
		if i < segmentLen {
			//** School segment
			switch {
			case r == SchoolFiller:
				schoolClosed = true
			case r <= unicode.MaxASCII && unicode.IsLetter(r) && !schoolClosed:
				code.school[i] = r
				code.schoolLen++
			default:
				return CourseCode{}, false
			}
			continue
		}

		//** Number segment
		switch {
		case r == NumberFiller:
			numberClosed = true
		case r >= '0' && r <= '9' && !numberClosed:
			code.number[i-segmentLen] = r
			code.numberLen++
		default:
			return CourseCode{}, false
		}
	}
	return code, true
}

// FromStrExact accepts exactly 4 ASCII letters followed by 4 digits
func FromStrExact(s string) (CourseCode, bool) {
	code, ok := Parse(s)
	if !ok || !code.IsExact() {
		return CourseCode{}, false
	}
	return code, true
}

// MustParse is Parse for literals known to be valid; it panics otherwise
func MustParse(s string) CourseCode {
	code, ok := Parse(s)
	if !ok {
		panic(fmt.Sprintf("invalid course code %q", s))
	}
	return code
}

// IsCode reports whether s is an exact course code
func IsCode(s string) bool {
	_, ok := FromStrExact(s)
	return ok
}

// NewSchoolWithLevel builds the pattern "any level-<level> course of <school>"
func NewSchoolWithLevel(school string, level uint8) CourseCode {
	code := NewAnySchool(school)
	code.number[0] = levelDigit(level)
	code.numberLen = 1
	return code
}

// NewAnySchool builds the pattern "any course of <school>"
func NewAnySchool(school string) CourseCode {
	code := blankCourseCode()
	for i, r := range []rune(school) {
		if i >= segmentLen {
			break
		}
		code.school[i] = r
	}
	code.schoolLen = segmentLen
	return code
}

// NewAnySchoolWithLevel builds the pattern "any level-<level> course of any school"
func NewAnySchoolWithLevel(level uint8) CourseCode {
	code := blankCourseCode()
	code.number[0] = levelDigit(level)
	code.numberLen = 1
	return code
}

func levelDigit(level uint8) rune {
	if level > 9 {
		panic(fmt.Sprintf("course level must be a single digit: %d", level))
	}
	return rune('0' + level)
}

func (code CourseCode) IsPattern() bool {
	return code.schoolLen != segmentLen || code.numberLen != segmentLen
}

func (code CourseCode) IsExact() bool {
	return !code.IsPattern()
}

func (code CourseCode) SchoolLen() uint8 {
	return code.schoolLen
}

func (code CourseCode) NumberLen() uint8 {
	return code.numberLen
}

// School returns the rendered school segment (hidden slots as filler)
func (code CourseCode) School() string {
	return render(code.school, code.schoolLen, SchoolFiller)
}

// Number returns the rendered numeric segment (hidden slots as filler)
func (code CourseCode) Number() string {
	return render(code.number, code.numberLen, NumberFiller)
}

// Level returns the first digit of the numeric segment.
// It panics when that slot is a wildcard, i.e. callers must ensure NumberLen() >= 1.
func (code CourseCode) Level() uint8 {
	if code.numberLen == 0 || code.number[0] < '0' || code.number[0] > '9' {
		panic(fmt.Sprintf("course code %v has no level digit", code))
	}
	return uint8(code.number[0] - '0')
}

// AdjustPattern returns a copy whose live counters are clamped to the captured slots of each segment.
// Slots that become hidden render as filler; slots that become live again show their originally captured character.
func (code CourseCode) AdjustPattern(schoolLen, numberLen uint8) CourseCode {
	code.schoolLen = min(schoolLen, captured(code.school, SchoolFiller))
	code.numberLen = min(numberLen, captured(code.number, NumberFiller))
	return code
}

// captured counts the leading slots holding a real character
func captured(slots [segmentLen]rune, filler rune) uint8 {
	var count uint8
	for _, slot := range slots {
		if slot == filler {
			break
		}
		count++
	}
	return count
}

// Equal compares live slots only, truncated to the smaller counter of each side, so the relation is symmetric.
func (code CourseCode) Equal(other CourseCode) bool {
	schoolLen := min(code.schoolLen, other.schoolLen)
	for i := range schoolLen {
		if code.school[i] != other.school[i] {
			return false
		}
	}
	numberLen := min(code.numberLen, other.numberLen)
	for i := range numberLen {
		if code.number[i] != other.number[i] {
			return false
		}
	}
	return true
}

// Matches reports whether the pattern (or exact code) covers other
func (code CourseCode) Matches(other CourseCode) bool {
	return code.Equal(other)
}

// Key is the display string, used wherever codes index a map
func (code CourseCode) Key() string {
	return code.String()
}

func (code CourseCode) String() string {
	return code.School() + code.Number()
}

func render(slots [segmentLen]rune, live uint8, filler rune) string {
	rendered := make([]rune, segmentLen)
	for i := range segmentLen {
		if uint8(i) < live {
			rendered[i] = slots[i]
		} else {
			rendered[i] = filler
		}
	}
	return string(rendered)
}
