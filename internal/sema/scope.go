package sema

import (
	"strings"

	"weave/internal/source"
	"weave/internal/types"
)

// SymbolKind attributes a scope entry to the construct that declared it.
type SymbolKind uint8

const (
	SymbolVal SymbolKind = iota
	SymbolFn
	SymbolParam
	SymbolBuiltin
	SymbolIntrinsic
)

// Symbol is one named binding. Type stays NoTypeID when the declaration
// itself failed to check.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Type    types.TypeID
	Span    source.Span
	Builtin BuiltinID
}

// Scope is a chained name table. The document scope has no parent;
// function bodies push one child scope for the parameters.
type Scope struct {
	parent *Scope
	syms   map[string]*Symbol
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, syms: make(map[string]*Symbol, 8)}
}

// Lookup walks the chain outward and returns the nearest binding.
func (s *Scope) Lookup(name string) *Symbol {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.syms[name]; ok {
			return sym
		}
	}
	return nil
}

// Declare adds sym to this scope. When the name is already bound here the
// existing symbol is returned and nothing changes; callers report the
// duplicate.
func (s *Scope) Declare(sym *Symbol) (existing *Symbol, ok bool) {
	if prev, found := s.syms[sym.Name]; found {
		return prev, false
	}
	s.syms[sym.Name] = sym
	return sym, true
}

// reservedPrefix marks names the instrumenter owns. User declarations may
// not use it; the seeded intrinsics are the only symbols that do.
const reservedPrefix = "__w_"

// IsReservedName reports whether the name belongs to the runtime
// instrumentation namespace.
func IsReservedName(name string) bool {
	return strings.HasPrefix(name, reservedPrefix)
}
