// Package symbols implements the prior pass spec.md treats as an
// external collaborator: it walks the parsed class list once and
// builds the case-insensitive, class-keyed SymbolTable the semantic
// pass consumes read-only (spec §6).
package symbols

import (
	"fmt"
	"strings"

	"github.com/smasonuk/oopchecker/internal/ast"
	"github.com/smasonuk/oopchecker/internal/types"
)

// FieldInfo is a single entry in a class's ordered field list.
type FieldInfo struct {
	Name string
	Type *types.Type
	Decl *ast.FieldDecl
}

// OrderedFields preserves declaration order, which structural
// equivalence depends on (spec §3: "insertion order is observable and
// used by structural equivalence").
type OrderedFields struct {
	entries []FieldInfo
	byName  map[string]int // lowercase name -> index
}

func newOrderedFields() *OrderedFields {
	return &OrderedFields{byName: map[string]int{}}
}

func (f *OrderedFields) add(name string, typ *types.Type, decl *ast.FieldDecl) bool {
	key := strings.ToLower(name)
	if _, exists := f.byName[key]; exists {
		return false
	}
	f.byName[key] = len(f.entries)
	f.entries = append(f.entries, FieldInfo{Name: name, Type: typ, Decl: decl})
	return true
}

// Count returns the number of fields.
func (f *OrderedFields) Count() int { return len(f.entries) }

// Get returns the i'th field in declaration order.
func (f *OrderedFields) Get(i int) FieldInfo { return f.entries[i] }

// Lookup finds a field by case-insensitive name.
func (f *OrderedFields) Lookup(name string) (FieldInfo, bool) {
	i, ok := f.byName[strings.ToLower(name)]
	if !ok {
		return FieldInfo{}, false
	}
	return f.entries[i], true
}

// Types returns the ordered list of field types, for structural
// equivalence comparisons.
func (f *OrderedFields) Types() []*types.Type {
	out := make([]*types.Type, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.Type
	}
	return out
}

// MethodSymbols holds a method's declaration and the flattened
// name->type map of its parameters and local variables.
type MethodSymbols struct {
	Decl      *ast.MethodDecl
	Variables map[string]*types.Type // lowercase name -> type (params + locals)
}

// ClassSymbols holds everything the semantic pass needs about one
// declared class.
type ClassSymbols struct {
	Decl      *ast.ClassDecl
	Fields    *OrderedFields
	Functions map[string]*MethodSymbols // lowercase name -> method
}

// SymbolTable is the case-insensitive, class-keyed symbol table of
// spec §6. It is read-only once Build returns.
type SymbolTable struct {
	classes map[string]*ClassSymbols // lowercase name -> class
}

// HasKey reports whether className (case-insensitively) names a
// declared class.
func (t *SymbolTable) HasKey(className string) bool {
	_, ok := t.classes[strings.ToLower(className)]
	return ok
}

// Get returns the ClassSymbols for className. Callers must check
// HasKey first; Get panics on an unknown class, matching the
// original's unchecked map access (the semantic pass calls Get only
// after checking HasKey, or for a class taken from the program's own
// class declarations).
func (t *SymbolTable) Get(className string) *ClassSymbols {
	cs, ok := t.classes[strings.ToLower(className)]
	if !ok {
		panic(fmt.Sprintf("symbols: Get(%q) on an undeclared class", className))
	}
	return cs
}

// ParentOf implements types.ClassAncestry.
func (t *SymbolTable) ParentOf(className string) (parent string, hasParent bool, known bool) {
	cs, ok := t.classes[strings.ToLower(className)]
	if !ok {
		return "", false, false
	}
	if cs.Decl.Parent == "" {
		return "", false, true
	}
	return cs.Decl.Parent, true, true
}

// FieldTypes implements types.ClassAncestry.
func (t *SymbolTable) FieldTypes(className string) ([]*types.Type, bool) {
	cs, ok := t.classes[strings.ToLower(className)]
	if !ok {
		return nil, false
	}
	return cs.Fields.Types(), true
}

// Build walks program's class list and constructs the symbol table.
// Duplicate class/field/method/parameter names are reported as build
// errors (this pass's own well-formedness duty; the semantic pass
// never needs to check for them because Build guarantees they can't
// occur in a table it hands back).
func Build(program *ast.Program) (*SymbolTable, []string) {
	table := &SymbolTable{classes: map[string]*ClassSymbols{}}
	var errs []string

	for _, classDecl := range program.Classes {
		key := strings.ToLower(classDecl.Name)
		if _, exists := table.classes[key]; exists {
			errs = append(errs, fmt.Sprintf("%s: class %q already declared", classDecl.NamePos, classDecl.Name))
			continue
		}

		cs := &ClassSymbols{
			Decl:      classDecl,
			Fields:    newOrderedFields(),
			Functions: map[string]*MethodSymbols{},
		}

		for _, field := range classDecl.Fields {
			if !cs.Fields.add(field.Name, field.Type, field) {
				errs = append(errs, fmt.Sprintf("%s: field %q already declared in class %q", field.NamePos, field.Name, classDecl.Name))
			}
		}

		for _, method := range classDecl.Methods {
			mKey := strings.ToLower(method.Name)
			if _, exists := cs.Functions[mKey]; exists {
				errs = append(errs, fmt.Sprintf("%s: method %q already declared in class %q", method.NamePos, method.Name, classDecl.Name))
				continue
			}
			vars := map[string]*types.Type{}
			for _, p := range method.Params {
				pKey := strings.ToLower(p.Name)
				if _, exists := vars[pKey]; exists {
					errs = append(errs, fmt.Sprintf("%s: parameter %q already declared in method %q", p.NamePos, p.Name, method.Name))
					continue
				}
				vars[pKey] = p.Type
			}
			for _, l := range method.Locals {
				vars[strings.ToLower(l.Name)] = l.Type
			}
			if method.ReturnType != nil {
				// A function's own name doubles as its return-value
				// pseudo-variable, writable from inside the body but not
				// otherwise readable (enforced by the caller with
				// allowFunctionReturnValue).
				vars[mKey] = method.ReturnType
			}
			cs.Functions[mKey] = &MethodSymbols{Decl: method, Variables: vars}
		}

		table.classes[key] = cs
	}

	return table, errs
}
