package parser

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/lexer"
	"github.com/tdbql/tdbql/internal/predicate"
)

// parsePredicate parses a WHERE-clause tree: comparisons combined with the
// lexer's boolean operators (`&&`, `||`, `!`), matching §4.8's three node
// kinds (Comparison, Logical, Not) exactly — just expressed with this
// grammar's own operator tokens instead of AND/OR/NOT keywords.
func (p *Parser) parsePredicate() (predicate.Node, error) {
	return p.parsePredOr()
}

func (p *Parser) parsePredOr() (predicate.Node, error) {
	left, err := p.parsePredAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.OrOr) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parsePredAnd()
		if err != nil {
			return nil, err
		}
		left = predicate.Logical{Kind: predicate.LogicalOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parsePredAnd() (predicate.Node, error) {
	left, err := p.parsePredNot()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.AndAnd) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parsePredNot()
		if err != nil {
			return nil, err
		}
		left = predicate.Logical{Kind: predicate.LogicalAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parsePredNot() (predicate.Node, error) {
	if p.check(lexer.Bang) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parsePredNot()
		if err != nil {
			return nil, err
		}
		return predicate.Not{Operand: operand}, nil
	}
	return p.parsePredAtom()
}

func (p *Parser) parsePredAtom() (predicate.Node, error) {
	if ok, err := p.match(lexer.LParen); err != nil {
		return nil, err
	} else if ok {
		node, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		return node, nil
	}
	return p.parseComparison()
}

var comparisonOps = map[lexer.Type]predicate.Op{
	lexer.Assign: predicate.OpEq,
	lexer.Eq:     predicate.OpEq,
	lexer.Ne:     predicate.OpNe,
	lexer.Lt:     predicate.OpLt,
	lexer.Le:     predicate.OpLe,
	lexer.Gt:     predicate.OpGt,
	lexer.Ge:     predicate.OpGe,
}

// parseComparison parses `ident op literal-or-expr`, evaluating the
// right-hand side at parse time (§4.2). The right-hand side is parsed from
// the equality level down, so a following `&&` or `||` joins the next
// comparison instead of being folded into this one's constant.
func (p *Parser) parseComparison() (predicate.Node, error) {
	col, err := p.expect(lexer.Ident, "column name")
	if err != nil {
		return nil, err
	}
	op, ok := comparisonOps[p.current.Type]
	if !ok {
		return nil, errors.Wrapf(ErrParse, "expected a comparison operator, got %s", lexer.DescribeToken(p.current))
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	return predicate.Comparison{Column: col.Lexeme, Op: op, Value: rhs}, nil
}
