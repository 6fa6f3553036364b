package requirements

import (
	"strconv"
	"strings"

	"github.com/limaJavier/handbook/pkg/code"
)

// Labels introducing the prerequisite line, tried in order
var prerequisitePrefixes = []string{
	"Pre-requisites:",
	"Pre-requisite:",
	"Prerequisites:",
	"Prerequisite:",
}

var punctuationPadding = strings.NewReplacer(
	"[", " [ ",
	"]", " ] ",
	"(", " ( ",
	")", " ) ",
	",", " , ",
	".", " ",
	"+", "",
	"<br/>", "\n",
)

var (
	keywords = map[string]KeywordKind{
		"uoc":   UOCKeyword,
		"uocs":  UOCKeyword,
		"wam":   WAMKeyword,
		"level": LevelKeyword,
	}
	operators = map[string]OperatorKind{
		"or":  Or,
		"and": And,
	}
	prepositions = map[string]PrepositionKind{
		"at":   At,
		"from": From,
		"of":   Of,
	}
)

const textMarker = "TEXT"

// Clean keeps only the body of the prerequisite line of a raw catalog string,
// with punctuation padded so that a whitespace split separates it.
// A string with no prerequisite line cleans to "", meaning no requirement.
func Clean(raw string) string {
	padded := punctuationPadding.Replace(strings.TrimSpace(raw))
	for _, line := range strings.Split(padded, "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range prerequisitePrefixes {
			if strings.HasPrefix(line, prefix) {
				return strings.TrimSpace(strings.TrimPrefix(line, prefix))
			}
		}
	}
	return ""
}

// Tokenize classifies every whitespace separated word of a cleaned requirement string.
// Words with no meaning in the grammar are dropped.
func Tokenize(cleaned string) []Token {
	words := strings.Fields(cleaned)
	tokens := make([]Token, 0, len(words))

	for i := 0; i < len(words); i++ {
		word := words[i]
		lower := strings.ToLower(word)

		if operator, ok := operators[lower]; ok {
			tokens = append(tokens, Token{Type: Operator, Operator: operator})
		} else if keyword, ok := keywords[lower]; ok {
			tokens = append(tokens, Token{Type: Keyword, Keyword: keyword})
		} else if preposition, ok := prepositions[lower]; ok {
			tokens = append(tokens, Token{Type: Preposition, Preposition: preposition})
		} else if word == "," {
			tokens = append(tokens, Token{Type: Comma})
		} else if word == "(" {
			tokens = append(tokens, Token{Type: OpenBracket})
		} else if word == ")" {
			tokens = append(tokens, Token{Type: CloseBracket})
		} else if word == textMarker {
			var text string
			text, i = scanText(words, i+1)
			tokens = append(tokens, Token{Type: Text, Text: text})
		} else if course, ok := code.FromStrExact(word); ok {
			tokens = append(tokens, Token{Type: CourseCode, Course: course})
		} else if program, ok := code.ParseProgramCode(word); ok {
			tokens = append(tokens, Token{Type: ProgramCode, Program: program})
		} else if number, err := strconv.ParseUint(word, 10, 8); err == nil {
			tokens = append(tokens, Token{Type: Number, Number: uint8(number)})
		}
	}
	return tokens
}

// scanText collects the words of a "TEXT [ ... ]" span starting at words[start].
// It returns the joined text and the index of the last consumed word.
func scanText(words []string, start int) (string, int) {
	collected := make([]string, 0)
	started := false
	i := start
	for ; i < len(words); i++ {
		word := words[i]
		if word == "[" {
			started = true
			continue
		}
		if !started {
			continue
		}
		if word == "]" {
			break
		}
		collected = append(collected, word)
	}
	return strings.Join(collected, " "), i
}
