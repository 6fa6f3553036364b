package requirements

import (
	"fmt"

	"github.com/limaJavier/handbook/pkg/code"
)

type TokenType int

const (
	Comma TokenType = iota
	OpenBracket
	CloseBracket
	Number
	Keyword
	Operator
	Preposition
	CourseCode
	ProgramCode
	Text
)

type KeywordKind int

const (
	LevelKeyword KeywordKind = iota
	UOCKeyword
	WAMKeyword
)

type OperatorKind int

const (
	Or OperatorKind = iota
	And
)

type PrepositionKind int

const (
	At PrepositionKind = iota
	From
	Of
)

// Token is one classified word of a cleaned requirement string.
// Only the fields relevant to Type are set.
type Token struct {
	Type        TokenType
	Number      uint8
	Keyword     KeywordKind
	Operator    OperatorKind
	Preposition PrepositionKind
	Course      code.CourseCode
	Program     code.ProgramCode
	Text        string
}

var (
	keywordNames     = map[KeywordKind]string{LevelKeyword: "LEVEL", UOCKeyword: "UOC", WAMKeyword: "WAM"}
	operatorNames    = map[OperatorKind]string{Or: "or", And: "and"}
	prepositionNames = map[PrepositionKind]string{At: "AT", From: "FROM", Of: "OF"}
)

func (operator OperatorKind) String() string {
	return operatorNames[operator]
}

func (token Token) is(tokenType TokenType) bool {
	return token.Type == tokenType
}

func (token Token) isKeyword(keyword KeywordKind) bool {
	return token.Type == Keyword && token.Keyword == keyword
}

func (token Token) isPreposition(preposition PrepositionKind) bool {
	return token.Type == Preposition && token.Preposition == preposition
}

func (token Token) String() string {
	switch token.Type {
	case Comma:
		return ","
	case OpenBracket:
		return "("
	case CloseBracket:
		return ")"
	case Number:
		return fmt.Sprintf("NUMBER(%d)", token.Number)
	case Keyword:
		return keywordNames[token.Keyword]
	case Operator:
		return operatorNames[token.Operator]
	case Preposition:
		return prepositionNames[token.Preposition]
	case CourseCode:
		return fmt.Sprintf("CODE(%v)", token.Course)
	case ProgramCode:
		return fmt.Sprintf("CODE(%v)", token.Program)
	case Text:
		return fmt.Sprintf("TEXT[%v]", token.Text)
	}
	return "UNKNOWN"
}
