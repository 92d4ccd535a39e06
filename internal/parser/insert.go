package parser

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/command"
	"github.com/tdbql/tdbql/internal/lexer"
	"github.com/tdbql/tdbql/internal/value"
)

// parseInsert parses `insert := INSERT '(' assign (',' assign)* ')' TO
// ident` where `assign := ident '=' literal` (§4.2). The literal's kind is
// inferred from its token class; Table.Insert is the actual authority on
// whether that kind matches the target column.
func (p *Parser) parseInsert() (command.Command, error) {
	if err := p.advance(); err != nil { // INSERT
		return nil, err
	}
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}

	values := make(map[string]value.Value)
	for {
		name, err := p.expect(lexer.Ident, "column name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Assign, "'='"); err != nil {
			return nil, err
		}
		v, err := p.parseAssignLiteral()
		if err != nil {
			return nil, err
		}
		values[name.Lexeme] = v

		matched, err := p.match(lexer.Comma)
		if err != nil {
			return nil, err
		}
		if !matched {
			break
		}
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TO, "TO"); err != nil {
		return nil, err
	}
	table, err := p.expect(lexer.Ident, "table name")
	if err != nil {
		return nil, err
	}

	return command.Insert{Table: table.Lexeme, Values: values}, nil
}

// parseAssignLiteral parses the single literal token an assign's RHS
// requires, coerced by the literal's own natural kind.
func (p *Parser) parseAssignLiteral() (value.Value, error) {
	kind, ok := literalKindOf(p.current)
	if !ok {
		return value.Value{}, errors.Wrapf(ErrParse, "expected a literal, got %s", lexer.DescribeToken(p.current))
	}
	v, err := literalValue(kind, p.current)
	if err != nil {
		return value.Value{}, err
	}
	return v, p.advance()
}
