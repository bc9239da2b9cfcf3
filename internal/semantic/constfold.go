package semantic

import (
	"github.com/smasonuk/oopchecker/internal/ast"
	"github.com/smasonuk/oopchecker/internal/lexer"
)

// constantInteger is the narrow compile-time constant folder (C7,
// constant_integer): it recognizes an Expression that is nothing but a
// chain of unary sign prefixes over an integer literal - no
// comparison, no left-recursion at the additive or multiplicative
// level - and returns the literal's face value and source position.
// The accumulated sign is deliberately ignored: only the literal's
// face value is used for array-bounds checking, matching the
// original.
func constantInteger(expr *ast.Expression) (value int, pos lexer.Position, ok bool) {
	if expr.Right != nil {
		return 0, lexer.Position{}, false
	}
	additive := expr.Left
	if additive.Left != nil {
		return 0, lexer.Position{}, false
	}
	multiplicative := additive.Right
	if multiplicative.Left != nil {
		return 0, lexer.Position{}, false
	}

	neg := multiplicative.Right
	for neg.Sign != "" {
		neg = neg.Next
	}
	if neg.Primary.Kind != ast.PrimaryInteger {
		return 0, lexer.Position{}, false
	}
	return neg.Primary.IntValue, neg.Primary.PosV, true
}
