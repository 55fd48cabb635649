// Package types implements lenniscript's closed type sum (§3) and the
// structural compatibility predicate the checker uses everywhere (§4.3).
package types

import "fmt"

// Kind discriminates the members of the closed type sum.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBoolean
	KindNull
	KindVoid
	KindAny
	KindArray
	KindObject
	KindOption
)

// Type is a tree: Array and Option wrap exactly one child type, Object
// wraps a field-name-to-Type record. There are no cycles (§9).
type Type struct {
	Kind Kind
	Elem *Type             // Array(T), Option(T): T
	Rec  map[string]*Type  // Object(record)
}

var (
	Number  = &Type{Kind: KindNumber}
	String  = &Type{Kind: KindString}
	Boolean = &Type{Kind: KindBoolean}
	Null    = &Type{Kind: KindNull}
	Void    = &Type{Kind: KindVoid}
	Any     = &Type{Kind: KindAny}
)

// NewArray builds Array(elem).
func NewArray(elem *Type) *Type { return &Type{Kind: KindArray, Elem: elem} }

// NewOption builds Option(elem).
func NewOption(elem *Type) *Type { return &Type{Kind: KindOption, Elem: elem} }

// NewObject builds Object(record) from a field map. The map is kept by
// reference; callers should treat it as immutable once passed in.
func NewObject(rec map[string]*Type) *Type { return &Type{Kind: KindObject, Rec: rec} }

// EmptyObject is the type of `{}`.
func EmptyObject() *Type { return NewObject(map[string]*Type{}) }

// String renders a Type the way diagnostics name it: capitalized,
// structural for Array/Option/Object.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindNull:
		return "Null"
	case KindVoid:
		return "Void"
	case KindAny:
		return "Any"
	case KindArray:
		return fmt.Sprintf("Array(%s)", t.Elem.String())
	case KindOption:
		return fmt.Sprintf("Option(%s)", t.Elem.String())
	case KindObject:
		return "Object"
	default:
		return "<unknown>"
	}
}

// Equal is structural equality (§3: "Equality is structural"). Element
// and field comparisons recurse through Matches, not Equal, so an Any
// wildcard nested at any depth (Array(Any), Option(Any), a record field
// of Any, ...) still matches per §3's "in both directions" rule.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindArray, KindOption:
		return Matches(a.Elem, b.Elem)
	case KindObject:
		if len(a.Rec) != len(b.Rec) {
			return false
		}
		for name, at := range a.Rec {
			bt, ok := b.Rec[name]
			if !ok || !Matches(at, bt) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Matches is the type-compatibility predicate of §4.3: target == actual
// structurally, or target is Any, or actual is Any, or target is
// Option(T) and actual is T or Null. The Any wildcard check runs first
// at every level of recursion, so it applies to nested element/field
// types as well as to the outermost type.
func Matches(target, actual *Type) bool {
	if target == nil || actual == nil {
		return false
	}
	if target.Kind == KindAny || actual.Kind == KindAny {
		return true
	}
	if target.Kind == KindOption {
		return Matches(target.Elem, actual) || actual.Kind == KindNull
	}
	return Equal(target, actual)
}
