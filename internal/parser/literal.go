package parser

import (
	"encoding/hex"
	"strconv"

	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/lexer"
	"github.com/tdbql/tdbql/internal/value"
)

// literalValue materializes a value.Value from a single literal token,
// coerced by kind per §4.2: INT32/integer-literal→Int, STRING/string-
// literal→Str, BYTES/hex-literal→Bytes, BOOL/TRUE/FALSE→Bool. Hex digits
// decode pair-by-pair (the lexer already rejects an odd digit count).
func literalValue(kind value.Kind, tok lexer.Token) (value.Value, error) {
	switch kind {
	case value.KindInteger, value.KindID:
		if tok.Type != lexer.IntLit {
			return value.Value{}, errors.Wrapf(ErrParse, "expected integer literal, got %s", lexer.DescribeToken(tok))
		}
		n, err := strconv.ParseInt(tok.Lexeme, 10, 32)
		if err != nil {
			return value.Value{}, errors.Wrapf(ErrParse, "invalid integer literal %q", tok.Lexeme)
		}
		if kind == value.KindID {
			return value.ID(int32(n)), nil
		}
		return value.Int(int32(n)), nil
	case value.KindString:
		if tok.Type != lexer.StringLit {
			return value.Value{}, errors.Wrapf(ErrParse, "expected string literal, got %s", lexer.DescribeToken(tok))
		}
		return value.Str(tok.Lexeme), nil
	case value.KindBytes:
		if tok.Type != lexer.HexLit {
			return value.Value{}, errors.Wrapf(ErrParse, "expected hex literal, got %s", lexer.DescribeToken(tok))
		}
		b, err := hex.DecodeString(tok.Lexeme)
		if err != nil {
			return value.Value{}, errors.Wrapf(ErrParse, "invalid hex literal %q", tok.Lexeme)
		}
		return value.Bytes(b), nil
	case value.KindBool:
		switch tok.Type {
		case lexer.TRUE:
			return value.Bool(true), nil
		case lexer.FALSE:
			return value.Bool(false), nil
		default:
			return value.Value{}, errors.Wrapf(ErrParse, "expected TRUE or FALSE, got %s", lexer.DescribeToken(tok))
		}
	default:
		return value.Value{}, errors.Wrapf(ErrParse, "cannot coerce a literal to kind %s", kind)
	}
}

// literalKindOf infers a bare literal token's natural kind, used where a
// declared column type isn't known to the parser (the right-hand side of an
// INSERT or UPDATE assignment).
func literalKindOf(tok lexer.Token) (value.Kind, bool) {
	switch tok.Type {
	case lexer.IntLit:
		return value.KindInteger, true
	case lexer.StringLit:
		return value.KindString, true
	case lexer.HexLit:
		return value.KindBytes, true
	case lexer.TRUE, lexer.FALSE:
		return value.KindBool, true
	default:
		return value.KindNone, false
	}
}
