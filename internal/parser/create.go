package parser

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/column"
	"github.com/tdbql/tdbql/internal/command"
	"github.com/tdbql/tdbql/internal/lexer"
	"github.com/tdbql/tdbql/internal/value"
)

// parseCreateTable parses `create_table := CREATE TABLE ident '('
// coldef (',' coldef)* ')'` (§4.2).
func (p *Parser) parseCreateTable() (command.Command, error) {
	if err := p.advance(); err != nil { // CREATE
		return nil, err
	}
	if _, err := p.expect(lexer.TABLE, "TABLE"); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.Ident, "table name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}

	var cols []column.Column
	for {
		c, err := p.parseColdef()
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
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

	return command.CreateTable{Name: name.Lexeme, Columns: cols}, nil
}

// parseColdef parses `coldef := [ '{' attr (',' attr)* '}' ] ident ':'
// type [ '[' INT_LIT ']' ] [ '=' literal ]` and the `attr := 'unique' |
// 'autoincrement' | 'key'` attribute set.
func (p *Parser) parseColdef() (column.Column, error) {
	var flags column.Flags

	if ok, err := p.match(lexer.LBrace); err != nil {
		return column.Column{}, err
	} else if ok {
		for {
			attr, err := p.expect(lexer.Ident, "attribute")
			if err != nil {
				return column.Column{}, err
			}
			switch attr.Lexeme {
			case "unique":
				flags.Unique = true
			case "autoincrement":
				flags.AutoIncrement = true
			case "key":
				flags.Key = true
			default:
				return column.Column{}, errors.Wrapf(ErrParse, "unknown column attribute %q", attr.Lexeme)
			}
			matched, err := p.match(lexer.Comma)
			if err != nil {
				return column.Column{}, err
			}
			if !matched {
				break
			}
		}
		if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
			return column.Column{}, err
		}
	}

	name, err := p.expect(lexer.Ident, "column name")
	if err != nil {
		return column.Column{}, err
	}
	if _, err := p.expect(lexer.Colon, "':'"); err != nil {
		return column.Column{}, err
	}

	kind, err := p.parseTypeKeyword()
	if err != nil {
		return column.Column{}, err
	}

	maxLen := 0
	if ok, err := p.match(lexer.LBracket); err != nil {
		return column.Column{}, err
	} else if ok {
		n, err := p.expect(lexer.IntLit, "max_len")
		if err != nil {
			return column.Column{}, err
		}
		v, err := literalValue(value.KindInteger, n)
		if err != nil {
			return column.Column{}, err
		}
		maxLen = int(v.Int())
		if _, err := p.expect(lexer.RBracket, "']'"); err != nil {
			return column.Column{}, err
		}
	}

	var def *value.Value
	if ok, err := p.match(lexer.Assign); err != nil {
		return column.Column{}, err
	} else if ok {
		tok := p.current
		v, err := literalValue(kind, tok)
		if err != nil {
			return column.Column{}, err
		}
		if err := p.advance(); err != nil {
			return column.Column{}, err
		}
		def = &v
	}

	return column.New(kind, name.Lexeme, maxLen, def, flags)
}

func (p *Parser) parseTypeKeyword() (value.Kind, error) {
	switch p.current.Type {
	case lexer.INT32:
		return value.KindInteger, p.advance()
	case lexer.STRING:
		return value.KindString, p.advance()
	case lexer.BYTES:
		return value.KindBytes, p.advance()
	case lexer.BOOL:
		return value.KindBool, p.advance()
	default:
		return value.KindNone, errors.Wrapf(ErrParse, "expected a column type, got %s", lexer.DescribeToken(p.current))
	}
}
