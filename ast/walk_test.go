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

package ast

import (
	"testing"

	qt "github.com/go-quicktest/qt"
)

type recorder struct {
	before []Node
	after  []Node
}

func (r *recorder) Before(n Node) Visitor {
	r.before = append(r.before, n)
	return r
}

func (r *recorder) After(n Node) {
	r.after = append(r.after, n)
}

func TestWalkVisitsMachineChildrenInDeclaredOrder(t *testing.T) {
	entry := &Ident{Name: "onEnter"}
	state := &StateDecl{Name: "Open", IsStart: true, Entry: entry}
	m := &MachineDecl{
		Name:   "Door",
		States: []*StateDecl{state},
	}
	f := &File{Filename: "x.sml", Decls: []Decl{m}}

	r := &recorder{}
	Walk(r, f)

	qt.Assert(t, qt.Equals(len(r.before), len(r.after)))
	qt.Assert(t, qt.Equals(r.before[0], Node(f)))
	qt.Assert(t, qt.Equals(r.before[len(r.before)-1], r.after[0]))
}

// stopper returns nil from Before for a chosen node, pruning its subtree.
type stopper struct {
	stopAt Node
	seen   []Node
}

func (s *stopper) Before(n Node) Visitor {
	s.seen = append(s.seen, n)
	if n == s.stopAt {
		return nil
	}
	return s
}

func (s *stopper) After(Node) {}

func TestWalkStopsDescentWhenBeforeReturnsNil(t *testing.T) {
	inner := &Ident{Name: "inner"}
	outer := &EventSetLit{Name: "S", Events: []*Ident{inner}}
	f := &File{Decls: []Decl{outer}}

	s := &stopper{stopAt: outer}
	Walk(s, f)

	qt.Assert(t, qt.HasLen(s.seen, 2)) // File, EventSetLit — never reaches inner
}

func TestWalkNilNodeIsNoop(t *testing.T) {
	r := &recorder{}
	Walk(r, nil)
	qt.Assert(t, qt.HasLen(r.before, 0))
}

func TestWalkAnonymousHandlerReachedOnlyThroughStateSlot(t *testing.T) {
	anon := &FunctionDecl{Name: ""}
	state := &StateDecl{Name: "Open", Entry: anon}
	m := &MachineDecl{Name: "Door", States: []*StateDecl{state}}
	f := &File{Decls: []Decl{m}}

	r := &recorder{}
	Walk(r, f)

	var sawAnon bool
	for _, n := range r.before {
		if n == Node(anon) {
			sawAnon = true
		}
	}
	qt.Assert(t, qt.IsTrue(sawAnon))
}
