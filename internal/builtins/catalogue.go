// Package builtins is the type checker's built-in catalogue (§6, §9):
// a read-only, data-driven, two-level map from owner name (or primitive
// kind) to member name to declared return Type. The checker never hard-
// codes intrinsic method names; it consults this table.
//
// Grounded on original_source/js_stdlib.rs's JsStdLib.objects map, which
// has the exact same owner -> method -> type shape.
package builtins

import "github.com/Lenni808090/lenniscript/internal/types"

// Catalogue maps an owner name ("console", "Math", ...) or a primitive
// kind name ("String", "Number", "Array", "Object") to its member-name
// to return-Type map.
var Catalogue = map[string]map[string]*types.Type{
	"console": {
		"log":   types.Void,
		"error": types.Void,
		"warn":  types.Void,
		"info":  types.Void,
		"debug": types.Void,
		"table": types.Void,
	},
	"Math": {
		"abs":    types.Number,
		"ceil":   types.Number,
		"floor":  types.Number,
		"round":  types.Number,
		"sqrt":   types.Number,
		"pow":    types.Number,
		"max":    types.Number,
		"min":    types.Number,
		"random": types.Number,
		"PI":     types.Number,
		"E":      types.Number,
	},
	"JSON": {
		"parse":     types.Any,
		"stringify": types.String,
	},
	// String instance methods, keyed both as a receiver-kind table (for
	// `"x".length`) and under the "String" owner (for the pre-populated
	// global-scope binding, §4.3's scope-policy paragraph).
	"String": {
		"charAt":      types.String,
		"charCodeAt":  types.Number,
		"slice":       types.String,
		"substring":   types.String,
		"toUpperCase": types.String,
		"toLowerCase": types.String,
		"trim":        types.String,
		"concat":      types.String,
		"length":      types.Number,
		"split":       types.NewArray(types.String),
		"includes":    types.Boolean,
		"startsWith":  types.Boolean,
		"endsWith":    types.Boolean,
		"indexOf":     types.Number,
	},
	"Array": {
		"push":      types.Number,
		"unshift":   types.Number,
		"indexOf":   types.Number,
		"length":    types.Number,
		"pop":       types.Any,
		"shift":     types.Any,
		"reduce":    types.Any,
		"slice":     types.NewArray(types.Any),
		"splice":    types.NewArray(types.Any),
		"map":       types.NewArray(types.Any),
		"filter":    types.NewArray(types.Any),
		"includes":  types.Boolean,
		"some":      types.Boolean,
		"every":     types.Boolean,
		"forEach":   types.Void,
		"join":      types.String,
	},
	"Object": {
		"keys":           types.NewArray(types.String),
		"values":         types.NewArray(types.Any),
		"entries":        types.NewArray(types.NewArray(types.Any)),
		"hasOwnProperty": types.Boolean,
		"toString":       types.String,
	},
	// Number static helpers, supplemented from original_source/js_stdlib.rs
	// (permitted extras per §6: "others permitted, none required beyond
	// these").
	"Number": {
		"toFixed":     types.String,
		"toPrecision": types.String,
		"toString":    types.String,
		"isInteger":   types.Boolean,
		"parseFloat":  types.Number,
		"parseInt":    types.Number,
		"MAX_VALUE":   types.Number,
		"MIN_VALUE":   types.Number,
	},
}

// Lookup resolves a method/property on a named owner (e.g. "console.log",
// the binding name used when the receiver is one of the pre-populated
// global intrinsic objects).
func Lookup(owner, member string) (*types.Type, bool) {
	members, ok := Catalogue[owner]
	if !ok {
		return nil, false
	}
	t, ok := members[member]
	return t, ok
}

// LookupByKind resolves a method on a receiver's primitive kind (e.g. a
// string value's .toUpperCase()), used when the receiver isn't one of
// the named global intrinsic objects.
func LookupByKind(kind *types.Type, member string) (*types.Type, bool) {
	if kind == nil {
		return nil, false
	}
	switch kind.Kind {
	case types.KindString:
		return Lookup("String", member)
	case types.KindNumber:
		return Lookup("Number", member)
	case types.KindArray:
		return Lookup("Array", member)
	case types.KindObject:
		return Lookup("Object", member)
	default:
		return nil, false
	}
}

// GlobalObjects lists the intrinsic collection names the type checker
// pre-populates into the global scope as Object(record) bindings (§4.3).
var GlobalObjects = []string{"console", "Math", "JSON", "String", "Number", "Array", "Object"}

// AsRecordType renders an owner's member map as an Object(record) Type,
// for binding into the global scope.
func AsRecordType(owner string) *types.Type {
	members := Catalogue[owner]
	rec := make(map[string]*types.Type, len(members))
	for name, t := range members {
		rec[name] = t
	}
	return types.NewObject(rec)
}
