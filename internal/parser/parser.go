// Package parser implements the recursive-descent parser over the lexer's
// token stream: statement dispatch, the coldef/assign/predicate grammars,
// and a precedence-climbing expression evaluator for WHERE-clause
// constant folding. Grounded on the teacher's internal/parser package for
// the shape of column/attribute parsing, generalized from a schema-only
// DSL to the full statement grammar this spec calls for.
package parser

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/command"
	"github.com/tdbql/tdbql/internal/lexer"
)

// ErrParse is the sentinel for wrong token type, unknown statement head,
// or unexpected token in an expression.
var ErrParse = errors.New("parse error")

// Parser walks a token stream one statement at a time.
type Parser struct {
	lx       *lexer.Lexer
	current  lexer.Token
	previous lexer.Token
}

// New returns a Parser over src, primed with the first token.
func New(src string) (*Parser, error) {
	p := &Parser{lx: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.previous = p.current
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *Parser) check(t lexer.Type) bool { return p.current.Type == t }

// match consumes current and returns true if it has type t, otherwise
// leaves current untouched and returns false.
func (p *Parser) match(t lexer.Type) (bool, error) {
	if !p.check(t) {
		return false, nil
	}
	return true, p.advance()
}

// expect fails unless current.Type == t, then advances past it.
func (p *Parser) expect(t lexer.Type, what string) (lexer.Token, error) {
	if !p.check(t) {
		return lexer.Token{}, errors.Wrapf(ErrParse, "expected %s, got %s", what, lexer.DescribeToken(p.current))
	}
	tok := p.current
	return tok, p.advance()
}

// ParseStatement selects a production by the first keyword and parses
// exactly one statement.
func (p *Parser) ParseStatement() (command.Command, error) {
	switch p.current.Type {
	case lexer.CREATE:
		return p.parseCreateTable()
	case lexer.INSERT:
		return p.parseInsert()
	case lexer.SELECT:
		return p.parseSelect()
	case lexer.UPDATE:
		return p.parseUpdate()
	case lexer.DELETE:
		return p.parseDelete()
	default:
		return nil, errors.Wrapf(ErrParse, "unknown statement head %s", lexer.DescribeToken(p.current))
	}
}
