package code

import "fmt"

const programCodeLen = 4

// ProgramCode is an exact 4-digit program code; there is no pattern form
type ProgramCode struct {
	digits string
}

func ParseProgramCode(s string) (ProgramCode, bool) {
	if len(s) != programCodeLen {
		return ProgramCode{}, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return ProgramCode{}, false
		}
	}
	return ProgramCode{digits: s}, true
}

func MustParseProgramCode(s string) ProgramCode {
	code, ok := ParseProgramCode(s)
	if !ok {
		panic(fmt.Sprintf("invalid program code %q", s))
	}
	return code
}

func IsProgramCode(s string) bool {
	_, ok := ParseProgramCode(s)
	return ok
}

func (code ProgramCode) Equal(other ProgramCode) bool {
	return code.digits == other.digits
}

func (code ProgramCode) String() string {
	return code.digits
}
