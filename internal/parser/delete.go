package parser

import (
	"github.com/tdbql/tdbql/internal/command"
	"github.com/tdbql/tdbql/internal/lexer"
)

// parseDelete parses `delete := DELETE ident [ WHERE predicate ]` (§4.2).
func (p *Parser) parseDelete() (command.Command, error) {
	if err := p.advance(); err != nil { // DELETE
		return nil, err
	}
	table, err := p.expect(lexer.Ident, "table name")
	if err != nil {
		return nil, err
	}

	del := command.Delete{Table: table.Lexeme}
	if ok, err := p.match(lexer.WHERE); err != nil {
		return nil, err
	} else if ok {
		node, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		del.Predicate = node
	}

	return del, nil
}
