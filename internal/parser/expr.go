package parser

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/lexer"
	"github.com/tdbql/tdbql/internal/value"
)

// parseExpr parses a constant expression by precedence climbing (§4.2:
// `|| < && < (== !=) < (< <= > >=) < (+ -) < (* / %) < unary(! -) <
// primary`) and evaluates it immediately with an empty
// context, so constant arithmetic like `1 + 1` folds to a literal Value at
// parse time. Any identifier reached by primary has nothing to bind to in
// that empty context and fails — WHERE-clause comparisons only fold
// constants, they don't reference other columns. A comparison's right-hand
// side enters at parseEquality (see parseComparison); a parenthesized
// sub-expression re-enters here with the full operator set.
func (p *Parser) parseExpr() (value.Value, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (value.Value, error) {
	left, err := p.parseAnd()
	if err != nil {
		return value.Value{}, err
	}
	for p.check(lexer.OrOr) {
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return value.Value{}, err
		}
		left, err = boolOp(left, right, func(a, b bool) bool { return a || b })
		if err != nil {
			return value.Value{}, err
		}
	}
	return left, nil
}

func (p *Parser) parseAnd() (value.Value, error) {
	left, err := p.parseEquality()
	if err != nil {
		return value.Value{}, err
	}
	for p.check(lexer.AndAnd) {
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		right, err := p.parseEquality()
		if err != nil {
			return value.Value{}, err
		}
		left, err = boolOp(left, right, func(a, b bool) bool { return a && b })
		if err != nil {
			return value.Value{}, err
		}
	}
	return left, nil
}

func (p *Parser) parseEquality() (value.Value, error) {
	left, err := p.parseRelational()
	if err != nil {
		return value.Value{}, err
	}
	for p.check(lexer.Eq) || p.check(lexer.Ne) {
		op := p.current.Type
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		right, err := p.parseRelational()
		if err != nil {
			return value.Value{}, err
		}
		cmp, ok := value.Compare(left, right)
		if !ok {
			return value.Value{}, errors.Wrapf(value.ErrType, "cannot compare %s to %s", left.Kind(), right.Kind())
		}
		if op == lexer.Eq {
			left = value.Bool(cmp == 0)
		} else {
			left = value.Bool(cmp != 0)
		}
	}
	return left, nil
}

func (p *Parser) parseRelational() (value.Value, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return value.Value{}, err
	}
	for p.check(lexer.Lt) || p.check(lexer.Le) || p.check(lexer.Gt) || p.check(lexer.Ge) {
		op := p.current.Type
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return value.Value{}, err
		}
		cmp, ok := value.Compare(left, right)
		if !ok {
			return value.Value{}, errors.Wrapf(value.ErrType, "cannot compare %s to %s", left.Kind(), right.Kind())
		}
		switch op {
		case lexer.Lt:
			left = value.Bool(cmp < 0)
		case lexer.Le:
			left = value.Bool(cmp <= 0)
		case lexer.Gt:
			left = value.Bool(cmp > 0)
		case lexer.Ge:
			left = value.Bool(cmp >= 0)
		}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (value.Value, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return value.Value{}, err
	}
	for p.check(lexer.Plus) || p.check(lexer.Minus) {
		op := p.current.Type
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return value.Value{}, err
		}
		left, err = intOp(left, right, func(a, b int32) (int32, error) {
			if op == lexer.Plus {
				return a + b, nil
			}
			return a - b, nil
		})
		if err != nil {
			return value.Value{}, err
		}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (value.Value, error) {
	left, err := p.parseUnary()
	if err != nil {
		return value.Value{}, err
	}
	for p.check(lexer.Star) || p.check(lexer.Slash) || p.check(lexer.Percent) {
		op := p.current.Type
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return value.Value{}, err
		}
		left, err = intOp(left, right, func(a, b int32) (int32, error) {
			switch op {
			case lexer.Star:
				return a * b, nil
			case lexer.Slash:
				if b == 0 {
					return 0, errors.Wrap(value.ErrType, "division by zero")
				}
				return a / b, nil
			default:
				if b == 0 {
					return 0, errors.Wrap(value.ErrType, "modulo by zero")
				}
				return a % b, nil
			}
		})
		if err != nil {
			return value.Value{}, err
		}
	}
	return left, nil
}

func (p *Parser) parseUnary() (value.Value, error) {
	if p.check(lexer.Bang) {
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return value.Value{}, err
		}
		if operand.Kind() != value.KindBool {
			return value.Value{}, errors.Wrapf(value.ErrType, "! requires Bool, got %s", operand.Kind())
		}
		return value.Bool(!operand.Bool()), nil
	}
	if p.check(lexer.Minus) {
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return value.Value{}, err
		}
		if operand.Kind() != value.KindInteger && operand.Kind() != value.KindID {
			return value.Value{}, errors.Wrapf(value.ErrType, "unary - requires Int32, got %s", operand.Kind())
		}
		return value.Int(-operand.Int()), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (value.Value, error) {
	switch p.current.Type {
	case lexer.LParen:
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		v, err := p.parseExpr()
		if err != nil {
			return value.Value{}, err
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return value.Value{}, err
		}
		return v, nil
	case lexer.Pipe:
		// | ident | string-length notation. With an empty fold context the
		// identifier has no binding, so this form only typechecks; it always
		// fails to fold and is rejected here with a clear message rather than
		// a generic "unbound identifier".
		return value.Value{}, errors.Wrap(ErrParse, "string-length notation requires a bound value and cannot be folded in a WHERE constant")
	case lexer.IntLit:
		v, err := literalValue(value.KindInteger, p.current)
		if err != nil {
			return value.Value{}, err
		}
		return v, p.advance()
	case lexer.HexLit:
		v, err := literalValue(value.KindBytes, p.current)
		if err != nil {
			return value.Value{}, err
		}
		return v, p.advance()
	case lexer.StringLit:
		v, err := literalValue(value.KindString, p.current)
		if err != nil {
			return value.Value{}, err
		}
		return v, p.advance()
	case lexer.TRUE:
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		return value.Bool(true), nil
	case lexer.FALSE:
		if err := p.advance(); err != nil {
			return value.Value{}, err
		}
		return value.Bool(false), nil
	case lexer.Ident:
		return value.Value{}, errors.Wrapf(ErrParse, "identifier %q has no binding in a folded WHERE constant", p.current.Lexeme)
	default:
		return value.Value{}, errors.Wrapf(ErrParse, "unexpected token %s in expression", lexer.DescribeToken(p.current))
	}
}

func intOp(a, b value.Value, fn func(int32, int32) (int32, error)) (value.Value, error) {
	if a.Kind() != value.KindInteger || b.Kind() != value.KindInteger {
		return value.Value{}, errors.Wrapf(value.ErrType, "arithmetic requires Int32, got %s and %s", a.Kind(), b.Kind())
	}
	n, err := fn(a.Int(), b.Int())
	if err != nil {
		return value.Value{}, err
	}
	return value.Int(n), nil
}

func boolOp(a, b value.Value, fn func(bool, bool) bool) (value.Value, error) {
	if a.Kind() != value.KindBool || b.Kind() != value.KindBool {
		return value.Value{}, errors.Wrapf(value.ErrType, "logical operator requires Bool, got %s and %s", a.Kind(), b.Kind())
	}
	return value.Bool(fn(a.Bool(), b.Bool())), nil
}
