package parser

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/command"
	"github.com/tdbql/tdbql/internal/lexer"
)

// parseSelect parses `select := SELECT ( '*' | ident ('.' ident)? (','
// …)* ) FROM ident (JOIN ident ON expr)* [ WHERE predicate ]` (§4.2). Joins
// are reserved grammar but not implemented (no-goal: "no joins"); a JOIN
// clause is a parse error here rather than silently accepted and ignored.
func (p *Parser) parseSelect() (command.Command, error) {
	if err := p.advance(); err != nil { // SELECT
		return nil, err
	}

	var projection []string
	if ok, err := p.match(lexer.Star); err != nil {
		return nil, err
	} else if !ok {
		for {
			name, err := p.parseQualifiedIdent()
			if err != nil {
				return nil, err
			}
			projection = append(projection, name)
			matched, err := p.match(lexer.Comma)
			if err != nil {
				return nil, err
			}
			if !matched {
				break
			}
		}
	}

	if _, err := p.expect(lexer.FROM, "FROM"); err != nil {
		return nil, err
	}
	table, err := p.expect(lexer.Ident, "table name")
	if err != nil {
		return nil, err
	}

	if p.check(lexer.JOIN) {
		return nil, errors.Wrap(ErrParse, "joins are not supported: this engine implements single-table queries only")
	}

	sel := command.Select{Table: table.Lexeme, Projection: projection}
	if ok, err := p.match(lexer.WHERE); err != nil {
		return nil, err
	} else if ok {
		node, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		sel.Predicate = node
	}

	return sel, nil
}

// parseQualifiedIdent parses `ident ('.' ident)?`, returning the final
// segment — this engine has no joins, so a table qualifier is accepted
// syntactically and then discarded.
func (p *Parser) parseQualifiedIdent() (string, error) {
	first, err := p.expect(lexer.Ident, "column name")
	if err != nil {
		return "", err
	}
	if ok, err := p.match(lexer.Dot); err != nil {
		return "", err
	} else if ok {
		second, err := p.expect(lexer.Ident, "column name")
		if err != nil {
			return "", err
		}
		return second.Lexeme, nil
	}
	return first.Lexeme, nil
}
