package requirements

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var (
	ErrUnbalancedBracket    = errors.New("unbalanced bracket")
	ErrPendingConditions    = errors.New("more than one pending condition")
	ErrOperatorAmbiguous    = errors.New("operator with more than one left hand side")
	ErrIncompleteQuantifier = errors.New("incomplete quantifier")
	ErrInvalidCourseList    = errors.New("invalid course list")
	ErrEmptyCourseList      = errors.New("UOC from without following course code")
)

type parser struct {
	tokens   []Token
	position int
}

// Parse builds a requirement tree from a token stream, left to right.
// A nil tree with a nil error means the stream carries no requirement.
//
// Binary operators take everything up to the next top-level comma as their right operand,
// so chains are right-associative: "A and B or C" is (A and (B or C)).
func Parse(tokens []Token) (Node, error) {
	parser := &parser{tokens: tokens}
	return parser.parse()
}

func (p *parser) hasNext() bool {
	return p.position < len(p.tokens)
}

func (p *parser) next() Token {
	token := p.tokens[p.position]
	p.position++
	return token
}

func (p *parser) peek() (Token, bool) {
	if !p.hasNext() {
		return Token{}, false
	}
	return p.tokens[p.position], true
}

func (p *parser) parse() (Node, error) {
	buffer := make([]Node, 0, 1)
	parsed := make([]Node, 0)

	for p.hasNext() {
		token := p.next()
		switch token.Type {
		case CourseCode:
			buffer = append(buffer, CodeNode{Course: token.Course})
		case ProgramCode:
			buffer = append(buffer, CodeNode{Program: token.Program, IsProgram: true})
		case Text:
			buffer = append(buffer, TextNode{Text: token.Text})
		case Operator:
			switch len(buffer) {
			case 0:
				warn("binary operator without left hand side", token)
			case 1:
				right, err := Parse(p.takeClause())
				if err != nil {
					return nil, err
				}
				if right != nil {
					buffer[0] = BinaryNode{Left: buffer[0], Right: right, Operator: token.Operator}
				}
			default:
				return nil, fmt.Errorf("%w: %d conditions before %v", ErrOperatorAmbiguous, len(buffer), token)
			}
		case Number:
			node, err := p.parseQuantity(token)
			if err != nil {
				return nil, err
			}
			if node != nil {
				buffer = append(buffer, node)
			}
		case Comma:
			if len(buffer) > 1 {
				return nil, fmt.Errorf("%w: %d conditions before comma", ErrPendingConditions, len(buffer))
			}
			parsed = append(parsed, buffer...)
			buffer = buffer[:0]
		case OpenBracket:
			interior, err := p.takeBracket()
			if err != nil {
				return nil, err
			}
			node, err := Parse(interior)
			if err != nil {
				return nil, err
			}
			if node != nil {
				buffer = append(buffer, node)
			}
		case CloseBracket:
			return nil, fmt.Errorf("%w: unexpected closing bracket", ErrUnbalancedBracket)
		case Keyword:
			if token.Keyword != WAMKeyword {
				warn("keyword is not supported here", token)
				continue
			}
			node, err := p.parseWAMOf()
			if err != nil {
				return nil, err
			}
			buffer = append(buffer, node)
		case Preposition:
			warn("preposition is not supported here", token)
		}
	}

	if len(buffer) > 1 {
		return nil, fmt.Errorf("%w: %d conditions at end of input", ErrPendingConditions, len(buffer))
	}
	parsed = append(parsed, buffer...)

	switch len(parsed) {
	case 0:
		return nil, nil
	case 1:
		return parsed[0], nil
	}
	return ListNode{Children: parsed}, nil
}

// takeClause consumes tokens up to, but not including, the next comma.
// Brackets are not tracked, so a comma inside a bracket cuts the bracket open.
func (p *parser) takeClause() []Token {
	start := p.position
	for p.hasNext() && !p.tokens[p.position].is(Comma) {
		p.position++
	}
	return p.tokens[start:p.position]
}

// takeBracket consumes the tokens after an opening bracket up to its matching closing bracket,
// returning the interior without the closing bracket
func (p *parser) takeBracket() ([]Token, error) {
	start := p.position
	depth := 1
	for p.hasNext() {
		token := p.next()
		if token.is(OpenBracket) {
			depth++
		} else if token.is(CloseBracket) {
			depth--
		}
		if depth == 0 {
			return p.tokens[start : p.position-1], nil
		}
	}
	return nil, fmt.Errorf("%w: unclosed bracket", ErrUnbalancedBracket)
}

// parseQuantity handles a number, which only means something when followed by UOC or WAM
func (p *parser) parseQuantity(number Token) (Node, error) {
	if !p.hasNext() {
		warn("number without following token", number)
		return nil, nil
	}

	follower := p.next()
	switch {
	case follower.isKeyword(UOCKeyword):
		next, ok := p.peek()
		if ok && next.isPreposition(From) {
			return p.parseUOCFrom(number.Number)
		} else if ok && next.isPreposition(At) {
			return p.parseUOCAtLevel(number.Number)
		}
		return UOCNode{UOC: number.Number}, nil
	case follower.isKeyword(WAMKeyword):
		return WAMNode{WAM: number.Number}, nil
	}

	warn("only WAM and UOC can follow a number", follower)
	return nil, nil
}

// parseUOCAtLevel reads "AT LEVEL <number>"
func (p *parser) parseUOCAtLevel(uoc uint8) (Node, error) {
	p.next()
	keyword, ok := p.peek()
	if !ok || !keyword.isKeyword(LevelKeyword) {
		return nil, fmt.Errorf("%w: UOC at level without following level keyword", ErrIncompleteQuantifier)
	}
	p.next()

	level, ok := p.peek()
	if !ok || !level.is(Number) {
		return nil, fmt.Errorf("%w: UOC at level without following level number", ErrIncompleteQuantifier)
	}
	p.next()

	return UOCAtLevelNode{UOC: uoc, Level: level.Number}, nil
}

// parseUOCFrom reads "FROM <code> [or <code>]...", stopping before the first token that is neither
func (p *parser) parseUOCFrom(uoc uint8) (Node, error) {
	p.next()
	node := UOCFromNode{UOC: uoc}

	for token, ok := p.peek(); ok; token, ok = p.peek() {
		if token.is(CourseCode) {
			node.Courses = append(node.Courses, token.Course)
		} else if token.is(ProgramCode) {
			return nil, fmt.Errorf("%w: %v is not a course code", ErrInvalidCourseList, token.Program)
		} else if !(token.is(Operator) && token.Operator == Or) {
			break
		}
		p.next()
	}

	if len(node.Courses) == 0 {
		return nil, ErrEmptyCourseList
	}
	return node, nil
}

// parseWAMOf reads "OF <number>" after a standalone WAM keyword
func (p *parser) parseWAMOf() (Node, error) {
	preposition, ok := p.peek()
	if !ok || !preposition.isPreposition(Of) {
		return nil, fmt.Errorf("%w: WAM without following OF preposition", ErrIncompleteQuantifier)
	}
	p.next()

	number, ok := p.peek()
	if !ok || !number.is(Number) {
		return nil, fmt.Errorf("%w: WAM without following WAM number", ErrIncompleteQuantifier)
	}
	p.next()

	return WAMNode{WAM: number.Number}, nil
}

func warn(message string, token Token) {
	log.WithFields(log.Fields{
		"token": token.String(),
	}).Debug(message)
}
