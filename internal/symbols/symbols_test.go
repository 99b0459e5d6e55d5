package symbols

import "testing"

func TestInsertStampsScopeLabel(t *testing.T) {
	st := New()
	st.Insert(Symbol{Name: "x", Kind: Variable, DataType: Integer})

	sym, ok := st.Lookup("x")
	if !ok {
		t.Fatalf("expected x to be found")
	}
	if sym.Label != "L0_" {
		t.Errorf("expected global-scope label L0_, got %q", sym.Label)
	}
}

func TestLookupWalksEnclosingScopes(t *testing.T) {
	st := New()
	st.Insert(Symbol{Name: "outer", Kind: Variable, DataType: Integer})
	st.Enter()
	defer st.Exit()

	if _, ok := st.Lookup("outer"); !ok {
		t.Fatalf("expected outer to be visible from nested scope")
	}
	if st.IsDeclaredInCurrentScope("outer") {
		t.Errorf("outer is declared in the parent scope, not the current one")
	}
}

func TestInsertShadowsOuterScopeUntilExit(t *testing.T) {
	st := New()
	st.Insert(Symbol{Name: "x", Kind: Variable, DataType: Integer})
	st.Enter()
	st.Insert(Symbol{Name: "x", Kind: Variable, DataType: String})

	sym, _ := st.Lookup("x")
	if sym.DataType != String {
		t.Errorf("expected inner x to shadow outer, got %v", sym.DataType)
	}
	st.Exit()

	sym, _ = st.Lookup("x")
	if sym.DataType != Integer {
		t.Errorf("expected outer x to be restored after Exit, got %v", sym.DataType)
	}
}

func TestUpdateFindsNearestEnclosingDeclaration(t *testing.T) {
	st := New()
	st.Insert(Symbol{Name: "x", Kind: Variable, DataType: Integer, Value: "1"})
	st.Enter()
	defer st.Exit()

	ok := st.Update("x", Symbol{Name: "x", Kind: Variable, DataType: Integer, Value: "2"})
	if !ok {
		t.Fatalf("expected Update to find x in the enclosing scope")
	}
	sym, _ := st.Lookup("x")
	if sym.Value != "2" {
		t.Errorf("expected updated value 2, got %q", sym.Value)
	}
}

func TestGetPropertySearchesOnlyTheNamedClassScope(t *testing.T) {
	st := New()

	animalScope := st.Enter()
	st.Insert(Symbol{Name: "nombre", Kind: Property, DataType: String, Offset: 0, Size: 4})
	st.RegisterClassTable("Animal", animalScope)
	st.Exit()

	dogScope := st.Enter()
	st.RegisterClassTable("Perro", dogScope)
	st.Exit()

	// Perro's own scope has no "nombre"; GetProperty only searches the
	// exact class scope registered for the name, so a caller resolving
	// inheritance walks the Parent chain itself and calls GetProperty once
	// per ancestor.
	if _, ok := st.GetProperty("Perro", "nombre"); ok {
		t.Fatalf("GetProperty must not search ancestor scopes on its own")
	}
	if sym, ok := st.GetProperty("Animal", "nombre"); !ok || sym.Offset != 0 {
		t.Fatalf("expected nombre at offset 0 in Animal, got %+v ok=%v", sym, ok)
	}
}

func TestEnterExistingReplaysChildrenInOrder(t *testing.T) {
	st := New()
	st.Enter(Symbol{Name: "a", Kind: Argument, DataType: Integer})
	st.Exit()
	st.Enter(Symbol{Name: "b", Kind: Argument, DataType: Integer})
	st.Exit()

	first := st.EnterExisting()
	if _, ok := first.Symbols["a"]; !ok {
		t.Fatalf("expected first replayed scope to hold 'a', got %+v", first.Symbols)
	}
	st.Exit()

	second := st.EnterExisting()
	if _, ok := second.Symbols["b"]; !ok {
		t.Fatalf("expected second replayed scope to hold 'b', got %+v", second.Symbols)
	}
	st.Exit()

	if st.EnterExisting() != nil {
		t.Errorf("expected no more children to replay")
	}
}

func TestKindAndDataTypeStrings(t *testing.T) {
	if Class.String() != "CLASS" {
		t.Errorf("unexpected Kind.String(): %q", Class.String())
	}
	if Object.String() != "object" {
		t.Errorf("unexpected DataType.String(): %q", Object.String())
	}
}
