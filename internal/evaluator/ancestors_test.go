package evaluator

import "testing"

func ancestorNames(list []Object) []string {
	out := make([]string, len(list))
	for i, a := range list {
		switch v := a.(type) {
		case *Module:
			out[i] = v.Name
		case *Class:
			out[i] = v.Name
		}
	}
	return out
}

func assertOrder(t *testing.T, got []string, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ancestors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ancestors = %v, want %v", got, want)
		}
	}
}

// Inclusion order: the most recent include is searched first, each
// module followed by its own mixin chain, then the supertype chain.
func TestAncestorOrder(t *testing.T) {
	helper := NewModule("Helper")
	m1 := NewModule("M1")
	m1.Include(helper)
	m2 := NewModule("M2")

	base := NewClass("Base", nil)
	sub := NewClass("Sub", base)
	sub.Include(m1)
	sub.Include(m2)

	assertOrder(t, ancestorNames(sub.Ancestors()), []string{"M2", "M1", "Helper", "Base"})
}

// Duplicates keep their first occurrence.
func TestAncestorDedup(t *testing.T) {
	shared := NewModule("Shared")
	m1 := NewModule("M1")
	m1.Include(shared)
	m2 := NewModule("M2")
	m2.Include(shared)

	base := NewClass("Base", nil)
	base.Include(shared)

	c := NewClass("C", base)
	c.Include(m2)
	c.Include(m1)

	got := ancestorNames(c.Ancestors())
	assertOrder(t, got, []string{"M1", "Shared", "M2", "Base"})

	seen := make(map[string]int)
	for _, name := range got {
		seen[name]++
	}
	for name, n := range seen {
		if n > 1 {
			t.Fatalf("%s appears %d times in %v", name, n, got)
		}
	}
}

func TestAncestorsDeterministic(t *testing.T) {
	m1 := NewModule("M1")
	m2 := NewModule("M2")
	base := NewClass("Base", nil)
	c := NewClass("C", base)
	c.Include(m1)
	c.Include(m2)

	first := ancestorNames(c.Ancestors())
	for i := 0; i < 10; i++ {
		assertOrder(t, ancestorNames(c.Ancestors()), first)
	}
}

// The static side substitutes extended modules and follows the supertype
// chain's extended ancestors.
func TestExtendedAncestors(t *testing.T) {
	reg := NewModule("Registry")
	inst := NewModule("InstanceOnly")

	base := NewClass("Base", nil)
	baseExt := NewModule("BaseExt")
	base.Extend(baseExt)

	c := NewClass("C", base)
	c.Include(inst)
	c.Extend(reg)

	assertOrder(t, ancestorNames(c.ExtendedAncestors()), []string{"Registry", "Base", "BaseExt"})
	assertOrder(t, ancestorNames(c.Ancestors()), []string{"InstanceOnly", "Base"})
}
