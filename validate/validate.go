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

// Package validate is a debug-only invariant checker for a resolve.Graph:
// it re-asserts, as plain boolean predicates, everything the binder is
// supposed to already guarantee. Production builds can skip it; it exists
// to catch a resolver regression close to its source rather
// than as a symptom three phases downstream.
package validate

import (
	"fmt"

	"github.com/kr/pretty"

	"smlang.org/go/decl"
	"smlang.org/go/resolve"
	"smlang.org/go/types"
)

// Failure is one violated invariant, naming the offending declaration.
type Failure struct {
	Decl    decl.Declaration
	Message string
}

func (f *Failure) String() string {
	return fmt.Sprintf("%s %q: %s", f.Decl.Kind(), f.Decl.Name(), f.Message)
}

// Graph walks every declaration recorded in g.FileDecls and returns every
// violated invariant found. The built-in events belong to no file and are
// not visited. An empty result means no checked invariant is violated;
// Graph never mutates g.
func Graph(g *resolve.Graph) []*Failure {
	var fails []*Failure
	for _, f := range g.FileDecls {
		for _, d := range f {
			fails = append(fails, checkDecl(g, d)...)
		}
	}
	return fails
}

// checkDecl dispatches on d's dynamic kind, with one arm per declaration
// type that carries an invariant (Event, EnumElem, Function, Interface,
// FunctionProto, Machine). Every other declaration is checked only for the
// nodeToDecl mapping.
func checkDecl(g *resolve.Graph, d decl.Declaration) []*Failure {
	var fails []*Failure
	fail := func(msg string, args ...interface{}) {
		fails = append(fails, &Failure{Decl: d, Message: fmt.Sprintf(msg, args...)})
	}

	if g.NodeToDecl[d.Node()] != d {
		fail("not reachable via nodeToDecl(d.sourceNode)")
	}

	switch x := d.(type) {
	case *decl.Event:
		if x.Node() == nil && x.Name() != "halt" && x.Name() != "null" {
			fail("has no source node but is not a built-in event")
		}

	case *decl.EnumElem:
		if x.Parent == nil {
			fail("has no parent enum")
		} else if !containsElem(x.Parent.Elems, x) {
			fail("parent enum does not list this element")
		}

	case *decl.Function:
		if x.Owner != nil && x.Name() != "" && !containsFunc(x.Owner.Methods, x) {
			fail("named function not found in owner's method list")
		}
		if !validKind(x.Signature.ReturnType) {
			fail("has an unresolved return type")
		}
		for _, p := range x.Signature.Parameters {
			if _, typ := p.TypedName(); !validKind(typ) {
				fail("parameter has an unresolved type")
			}
		}

	case *decl.Interface:
		if !validKind(x.Payload) {
			fail("has an unresolved payload type")
		}

	case *decl.FunctionProto:
		if !validKind(x.Signature.ReturnType) {
			fail("has an unresolved return type")
		}
		for _, p := range x.Signature.Parameters {
			if _, typ := p.TypedName(); !validKind(typ) {
				fail("parameter has an unresolved type")
			}
		}

	case *decl.Machine:
		if x.StartState == nil {
			fail("has no start state")
		} else if !flattenContains(x.States, x.Groups, x.StartState) {
			fail("start state is not reachable from states/groups")
		}
		count := 0
		countStarts(x.States, x.Groups, &count)
		if count > 1 {
			fail("more than one state marked start")
		}
		for _, field := range x.Fields {
			if field.IsParam {
				fail("field %q is marked as a parameter", field.Name())
			}
		}
	}
	return fails
}

// validKind reports whether t.Kind is one of types' defined Kind values.
// A resolved type is never a Go zero value in the "absent" sense — Null
// is itself a valid, always-populated Kind (see decl.Signature) — so this
// only catches a Kind that was never assigned via one of the package's
// constructors or resolveType, not a legitimately payload-less decl.
func validKind(t types.Type) bool {
	return t.Kind >= types.Null && t.Kind <= types.Foreign
}

func containsElem(elems []*decl.EnumElem, e *decl.EnumElem) bool {
	for _, x := range elems {
		if x == e {
			return true
		}
	}
	return false
}

func containsFunc(fns []*decl.Function, f *decl.Function) bool {
	for _, x := range fns {
		if x == f {
			return true
		}
	}
	return false
}

func flattenContains(states []*decl.State, groups []*decl.StateGroup, target *decl.State) bool {
	for _, s := range states {
		if s == target {
			return true
		}
	}
	for _, g := range groups {
		if flattenContains(g.States, g.Groups, target) {
			return true
		}
	}
	return false
}

func countStarts(states []*decl.State, groups []*decl.StateGroup, count *int) {
	for _, s := range states {
		if s.IsStart {
			*count++
		}
	}
	for _, g := range groups {
		countStarts(g.States, g.Groups, count)
	}
}

// Dump renders a Failure slice for test/debug output using kr/pretty's
// struct pretty-printer.
func Dump(fails []*Failure) string {
	return fmt.Sprintf("%# v", pretty.Formatter(fails))
}
