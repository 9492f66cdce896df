// Copyright 2024 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scope implements the declaration table: a lexical scope
// partitioned into kind-specific sub-dictionaries, linked to an optional
// parent, supporting local insertion with conflict checking and
// ancestor-chained lookup.
//
// Scopes live in an arena (Table), addressed by Handle, rather than through
// raw parent/child pointers — this keeps the tree's bidirectional links
// consistent from one place and makes the whole tree easy to hand to a
// debug validator.
package scope

import (
	"sort"

	"smlang.org/go/ast"
	"smlang.org/go/decl"
	"smlang.org/go/errors"
	"smlang.org/go/types"
)

// Handle addresses a Scope within a Table. Handles count up from 0 (the
// first scope created); NoHandle is the only invalid value.
type Handle int

// NoHandle is the "no parent" / "not found" sentinel.
const NoHandle Handle = -1

// Table is the arena owning every Scope created during an analysis.
type Table struct {
	scopes []*Scope
}

// NewTable creates an empty arena.
func NewTable() *Table {
	return &Table{}
}

// NewScope allocates a new Scope with the given parent (NoHandle for the
// top-level scope) and returns its handle. It also updates parent.children,
// keeping the two directions consistent.
func (t *Table) NewScope(parent Handle) Handle {
	h := Handle(len(t.scopes))
	s := &Scope{
		table:  t,
		handle: h,
		parent: parent,
		decls:  map[decl.Kind]map[string]decl.Declaration{},
	}
	t.scopes = append(t.scopes, s)
	if parent != NoHandle {
		p := t.scopes[parent]
		p.children = append(p.children, h)
	}
	return h
}

// Scope returns the Scope addressed by h.
func (t *Table) Scope(h Handle) *Scope {
	if h == NoHandle {
		return nil
	}
	return t.scopes[h]
}

// Root returns the top-level scope, i.e. the first one ever created. It
// panics if no scope has been created yet; callers always create the root
// scope first.
func (t *Table) Root() *Scope {
	return t.scopes[0]
}

// Len reports how many scopes the arena holds, mainly for tests.
func (t *Table) Len() int { return len(t.scopes) }

// Scope is one lexical scope: a set of kind-partitioned local dictionaries,
// a parent link, and a child set.
type Scope struct {
	table    *Table
	handle   Handle
	parent   Handle
	children []Handle
	decls    map[decl.Kind]map[string]decl.Declaration
}

// Handle returns this scope's own handle.
func (s *Scope) Handle() Handle { return s.handle }

// Parent returns the parent scope, or nil for the top-level scope.
func (s *Scope) Parent() *Scope {
	if s.parent == NoHandle {
		return nil
	}
	return s.table.Scope(s.parent)
}

// SetParent re-parents s, removing it from the old parent's children and
// adding it to the new one's.
func (s *Scope) SetParent(newParent Handle) {
	if s.parent != NoHandle {
		old := s.table.Scope(s.parent)
		for i, c := range old.children {
			if c == s.handle {
				old.children = append(old.children[:i], old.children[i+1:]...)
				break
			}
		}
	}
	s.parent = newParent
	if newParent != NoHandle {
		p := s.table.Scope(newParent)
		p.children = append(p.children, s.handle)
	}
}

// Children returns the handles of scopes directly nested in s.
func (s *Scope) Children() []Handle { return s.children }

// Put creates a declaration of kind k named name, attached to syntax node
// n, checks it against the Collision Matrix within this scope's local
// dictionaries only, and inserts it on success. The returned Declaration is
// always the freshly created object, even on conflict — the node still
// produced exactly one Declaration, it is simply unreachable by lookup —
// so that the caller's Node→Decl map stays total over every
// declaration-producing node. On conflict a DuplicateDeclarationError
// describing (new, existing) is also returned and the new declaration is
// not inserted.
func (s *Scope) Put(k decl.Kind, name string, n ast.Node) (decl.Declaration, errors.Error) {
	d := decl.New(k, name, n)
	for _, other := range kindsToCheck(k) {
		m := s.decls[other]
		if m == nil {
			continue
		}
		if existing, ok := m[name]; ok {
			return d, errors.DuplicateDeclaration(d, existing)
		}
	}
	m := s.decls[k]
	if m == nil {
		m = map[string]decl.Declaration{}
		s.decls[k] = m
	}
	m[name] = d
	return d, nil
}

// Get returns the local entry for (kind, name), or nil if none.
func (s *Scope) Get(k decl.Kind, name string) decl.Declaration {
	m := s.decls[k]
	if m == nil {
		return nil
	}
	return m[name]
}

// Lookup walks s and its ancestors, returning the first (kind, name) match
// found, or nil.
func (s *Scope) Lookup(k decl.Kind, name string) decl.Declaration {
	for cur := s; cur != nil; cur = cur.Parent() {
		if d := cur.Get(k, name); d != nil {
			return d
		}
	}
	return nil
}

// AllDecls iterates every local declaration across all kinds. The order is
// deterministic: kinds in declaration order, names sorted within a kind.
func (s *Scope) AllDecls() []decl.Declaration {
	var out []decl.Declaration
	kinds := make([]decl.Kind, 0, len(s.decls))
	for k := range s.decls {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		names := make([]string, 0, len(s.decls[k]))
		for name := range s.decls[k] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, s.decls[k][name])
		}
	}
	return out
}

// LookupType implements types.Scope: a name resolves to a Type if a
// TypeDef, Enum, Interface, Machine, SpecMachine or MachineProto of that
// name is visible from s (local scope first, then ancestors).
func (s *Scope) LookupType(name string) (types.Type, bool) {
	typeKinds := []decl.Kind{
		decl.KindTypeDef, decl.KindEnum, decl.KindInterface,
		decl.KindMachine, decl.KindSpecMachine, decl.KindMachineProto,
	}
	for cur := s; cur != nil; cur = cur.Parent() {
		for _, k := range typeKinds {
			if d := cur.Get(k, name); d != nil {
				return types.Type{Kind: types.Named, Name: name}, true
			}
		}
	}
	return types.Type{}, false
}

var _ types.Scope = (*Scope)(nil)
