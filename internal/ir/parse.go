package ir

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError reports a syntax error in a formula string with a byte offset
// into the original input.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("formula syntax error at offset %d: %s", e.Offset, e.Message)
}

// ParseFormula parses the canonical s-expression rendering back into a
// Formula. The grammar is:
//
//	formula := "true" | "false" | symbol | "(" op formula+ ")"
//
// Symbols are runs of letters, digits, and the punctuation -_.<>=+*/ that
// do not collide with "true"/"false" or a connective name. Arity is checked
// against ValidOps during parsing, not deferred to evaluation.
//
// ParseFormula(f.String()) returns a formula equal to f for every f built
// from the exported constructors.
func ParseFormula(input string) (Formula, error) {
	p := &parser{input: input}
	f, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, &ParseError{Offset: p.pos, Message: "trailing input after formula"}
	}
	return f, nil
}

// MustParse parses a formula and panics on error. For tests and
// compile-time-constant formulas only.
func MustParse(input string) Formula {
	f, err := ParseFormula(input)
	if err != nil {
		panic(err)
	}
	return f
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parse() (Formula, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, &ParseError{Offset: p.pos, Message: "unexpected end of input"}
	}

	if p.input[p.pos] == '(' {
		return p.parseApp()
	}
	if p.input[p.pos] == ')' {
		return nil, &ParseError{Offset: p.pos, Message: "unexpected ')'"}
	}
	return p.parseAtom()
}

func (p *parser) parseApp() (Formula, error) {
	open := p.pos
	p.pos++ // consume '('

	p.skipSpace()
	opStart := p.pos
	opName := p.readToken()
	if opName == "" {
		return nil, &ParseError{Offset: opStart, Message: "expected connective after '('"}
	}

	op := Op(opName)
	arity, ok := ValidOps[op]
	if !ok {
		return nil, &ParseError{Offset: opStart, Message: fmt.Sprintf("unknown connective %q", opName)}
	}

	var args []Formula
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, &ParseError{Offset: open, Message: "unclosed '('"}
		}
		if p.input[p.pos] == ')' {
			p.pos++
			break
		}
		arg, err := p.parse()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	if arity >= 0 && len(args) != arity {
		return nil, &ParseError{
			Offset:  open,
			Message: fmt.Sprintf("%s takes %d argument(s), got %d", op, arity, len(args)),
		}
	}
	if arity < 0 && len(args) == 0 {
		return nil, &ParseError{
			Offset:  open,
			Message: fmt.Sprintf("%s takes at least one argument", op),
		}
	}

	return App{Op: op, Args: args}, nil
}

func (p *parser) parseAtom() (Formula, error) {
	start := p.pos
	tok := p.readToken()
	if tok == "" {
		r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
		return nil, &ParseError{Offset: start, Message: fmt.Sprintf("unexpected character %q", r)}
	}

	switch tok {
	case "true":
		return Lit(true), nil
	case "false":
		return Lit(false), nil
	}
	if _, isOp := ValidOps[Op(tok)]; isOp {
		return nil, &ParseError{Offset: start, Message: fmt.Sprintf("connective %q outside application", tok)}
	}
	return Sym(tok), nil
}

func (p *parser) readToken() string {
	start := p.pos
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !isSymRune(r) {
			break
		}
		p.pos += size
	}
	return p.input[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		p.pos += size
	}
}

func isSymRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return strings.ContainsRune("-_.<>=+*/", r)
}
