package semantic

import "github.com/smasonuk/oopchecker/internal/types"

// checkDeclaredType validates a declared type (field, parameter, local
// variable or return type) against check_type. Class and array types
// carry their own line (the class-name token, or the array's min
// literal), so no caller-supplied position is needed.
func (c *Checker) checkDeclaredType(t *types.Type, allowArrays bool) {
	if t == nil {
		return
	}
	switch t.Kind {
	case types.Integer, types.Real, types.Char, types.Boolean:
		return
	case types.ClassKind:
		if !c.table.HasKey(t.ClassName) {
			c.errorf(t.Line, "class \"%s\" is not defined", t.ClassName)
		}
	case types.ArrayKind:
		if !allowArrays {
			c.errorf(t.Line, "parameters and return values are not allowed to be arrays")
			return
		}
		if t.Max < t.Min {
			c.errorf(t.Line, "invalid array range: [%d..%d]", t.Min, t.Max)
		}
	}
}
