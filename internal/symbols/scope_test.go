package symbols_test

import (
	"testing"

	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/symbols"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

func TestSymbolNotVisibleAfterMatchingPop(t *testing.T) {
	strs := store.NewStringStore()
	syms := symbols.NewStore()
	scopes := symbols.NewScopeStack(syms)

	name := strs.Intern("x")
	scopes.Push()
	scopes.DefineSymbol(symbols.Symbol{NameId: name, TypeId: typesystem.I32})
	if _, ok := scopes.LookupByName(name); !ok {
		t.Fatal("expected x to resolve inside its scope")
	}
	scopes.Pop()
	if _, ok := scopes.LookupByName(name); ok {
		t.Fatal("x must not resolve after its scope popped")
	}
}

func TestLookupByNameSearchesInnermostOutward(t *testing.T) {
	strs := store.NewStringStore()
	syms := symbols.NewStore()
	scopes := symbols.NewScopeStack(syms)

	name := strs.Intern("x")
	outer := scopes.DefineSymbol(symbols.Symbol{NameId: name, TypeId: typesystem.I32})

	scopes.Push()
	inner := scopes.DefineSymbol(symbols.Symbol{NameId: name, TypeId: typesystem.F64})
	got, ok := scopes.LookupByName(name)
	if !ok || got != inner {
		t.Fatalf("LookupByName = %d, %v; want inner shadow %d", got, ok, inner)
	}
	scopes.Pop()

	got, ok = scopes.LookupByName(name)
	if !ok || got != outer {
		t.Fatalf("LookupByName after pop = %d, %v; want outer %d", got, ok, outer)
	}
}

func TestRecordFlatteningComposesNestedPaths(t *testing.T) {
	strs := store.NewStringStore()
	p := strs.Intern("p")
	x := strs.Intern("x")
	px := symbols.FlattenedName(strs, p, x)
	if strs.Get(px) != "p_x" {
		t.Fatalf("FlattenedName(p, x) = %q, want p_x", strs.Get(px))
	}

	o := strs.Intern("o")
	inner := strs.Intern("inner")
	val := strs.Intern("val")
	oInner := symbols.FlattenedName(strs, o, inner)
	oInnerVal := symbols.FlattenedName(strs, oInner, val)
	if strs.Get(oInnerVal) != "o_inner_val" {
		t.Fatalf("nested FlattenedName = %q, want o_inner_val", strs.Get(oInnerVal))
	}
}

func TestListBindingRegistryIsScoped(t *testing.T) {
	strs := store.NewStringStore()
	syms := symbols.NewStore()
	scopes := symbols.NewScopeStack(syms)

	base := strs.Intern("xs")
	listType := typesystem.NewStore(strs).RegisterListType(typesystem.I32, 3)

	scopes.Push()
	scopes.DefineListBinding(base, listType)
	if got, ok := scopes.LookupListBinding(base); !ok || got != listType {
		t.Fatalf("LookupListBinding = %d, %v; want %d, true", got, ok, listType)
	}
	scopes.Pop()
	if _, ok := scopes.LookupListBinding(base); ok {
		t.Fatal("list binding must not survive its scope's pop")
	}
}
