package parser

import (
	"github.com/tdbql/tdbql/internal/command"
	"github.com/tdbql/tdbql/internal/lexer"
	"github.com/tdbql/tdbql/internal/value"
)

// parseUpdate parses `update := UPDATE ident SET assign (',' assign)*
// [ WHERE predicate ]` (§4.2).
func (p *Parser) parseUpdate() (command.Command, error) {
	if err := p.advance(); err != nil { // UPDATE
		return nil, err
	}
	table, err := p.expect(lexer.Ident, "table name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SET, "SET"); err != nil {
		return nil, err
	}

	assignments := make(map[string]value.Value)
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
		assignments[name.Lexeme] = v

		matched, err := p.match(lexer.Comma)
		if err != nil {
			return nil, err
		}
		if !matched {
			break
		}
	}

	upd := command.Update{Table: table.Lexeme, Assignments: assignments}
	if ok, err := p.match(lexer.WHERE); err != nil {
		return nil, err
	} else if ok {
		node, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		upd.Predicate = node
	}

	return upd, nil
}
