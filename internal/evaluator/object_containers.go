package evaluator

import "fmt"

// Module is a named namespace. Its scope holds both its methods and its
// module-level bindings; Included lists modules mixed into it, most
// recent first.
type Module struct {
	Name     string
	Scope    *Scope
	Included []*Module
}

func NewModule(name string) *Module {
	return &Module{Name: name, Scope: NewScope()}
}

func (m *Module) Type() ObjectType { return MODULE_OBJ }
func (m *Module) TypeName() string { return "Module" }
func (m *Module) Inspect() string  { return m.Name }
func (m *Module) Truthy() bool     { return true }
func (m *Module) Hash() uint32     { return hashString(m.Name) }
func (m *Module) Bindings() *Scope { return m.Scope }

// Include prepends, so the most recent inclusion is found first.
func (m *Module) Include(mod *Module) {
	m.Included = append([]*Module{mod}, m.Included...)
}

// Ancestors is the module's own mixin chain: each included module
// followed by that module's ancestors, first occurrence wins.
func (m *Module) Ancestors() []Object {
	var out []Object
	seen := make(map[Object]bool)
	appendModuleChain(&out, seen, m.Included)
	return out
}

func appendModuleChain(out *[]Object, seen map[Object]bool, mods []*Module) {
	for _, mod := range mods {
		if !seen[mod] {
			seen[mod] = true
			*out = append(*out, mod)
		}
		appendModuleChain(out, seen, mod.Included)
	}
}

// Class is a user or built-in type: static scope (class-level bindings
// and static methods), instance scope (methods inherited by instances),
// optional supertype, and the included/extended mixin lists, most recent
// first.
type Class struct {
	Name          string
	StaticScope   *Scope
	InstanceScope *Scope
	Super         *Class
	Included      []*Module
	Extended      []*Module
}

func NewClass(name string, super *Class) *Class {
	return &Class{
		Name:          name,
		StaticScope:   NewScope(),
		InstanceScope: NewScope(),
		Super:         super,
	}
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) TypeName() string { return "Type" }
func (c *Class) Inspect() string  { return c.Name }
func (c *Class) Truthy() bool     { return true }
func (c *Class) Hash() uint32     { return hashString(c.Name) }
func (c *Class) Bindings() *Scope { return c.StaticScope }

func (c *Class) Include(mod *Module) {
	c.Included = append([]*Module{mod}, c.Included...)
}

func (c *Class) Extend(mod *Module) {
	c.Extended = append([]*Module{mod}, c.Extended...)
}

// Ancestors computes the instance-side resolution order: included modules
// (each followed by its own ancestors), then the supertype and its
// ancestors. Duplicates keep their first occurrence; the ordering is
// deterministic under re-runs.
func (c *Class) Ancestors() []Object {
	var out []Object
	seen := make(map[Object]bool)
	c.appendAncestors(&out, seen, false)
	return out
}

// ExtendedAncestors is the static-side order: extended modules take the
// place of included ones, and the supertype chain contributes its own
// extended ancestors.
func (c *Class) ExtendedAncestors() []Object {
	var out []Object
	seen := make(map[Object]bool)
	c.appendAncestors(&out, seen, true)
	return out
}

func (c *Class) appendAncestors(out *[]Object, seen map[Object]bool, extended bool) {
	mods := c.Included
	if extended {
		mods = c.Extended
	}
	appendModuleChain(out, seen, mods)
	if c.Super != nil {
		if !seen[c.Super] {
			seen[c.Super] = true
			*out = append(*out, c.Super)
		}
		c.Super.appendAncestors(out, seen, extended)
	}
}

// Instance is an object of a user-defined type. Its scope's parent is the
// type's instance scope, so instance-level lookup falls back to the
// class's instance bindings.
type Instance struct {
	Class *Class
	Scope *Scope
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Scope: NewEnclosedScope(class.InstanceScope)}
}

func (i *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (i *Instance) TypeName() string { return i.Class.Name }
func (i *Instance) Truthy() bool     { return true }
func (i *Instance) Bindings() *Scope { return i.Scope }
func (i *Instance) Hash() uint32     { return hashString(fmt.Sprintf("%s@%p", i.Class.Name, i)) }

func (i *Instance) Inspect() string {
	return fmt.Sprintf("#<%s>", i.Class.Name)
}
