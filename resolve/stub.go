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

package resolve

import (
	"smlang.org/go/ast"
	"smlang.org/go/decl"
	"smlang.org/go/errors"
	"smlang.org/go/scope"
)

// stubber is Pass 1: it walks a syntax tree creating empty
// declaration objects and populating scopes. It is traversal-local state,
// never a package global.
type stubber struct {
	graph *Graph
	table *scope.Table

	scopes     []scope.Handle // lexical scope stack; top-level scope seeded by caller
	enums      []*decl.Enum   // innermost-enclosing-enum stack
	protoDepth int            // >0 while inside a FunctionProtoDecl's parameter list
	curFile    *ast.File

	errs errors.List
}

func newStubber(g *Graph) *stubber {
	return &stubber{graph: g, table: g.Table}
}

func (st *stubber) run(files []*ast.File) errors.List {
	for _, f := range files {
		st.scopes = []scope.Handle{st.graph.Top.Handle()}
		ast.Walk(st, f)
	}
	return st.errs
}

func (st *stubber) top() *scope.Scope {
	return st.table.Scope(st.scopes[len(st.scopes)-1])
}

func (st *stubber) pushScope(n ast.Node) {
	h := st.table.NewScope(st.scopes[len(st.scopes)-1])
	st.graph.NodeToScope[n] = h
	st.scopes = append(st.scopes, h)
}

func (st *stubber) popScope() {
	st.scopes = st.scopes[:len(st.scopes)-1]
}

// put inserts a declaration of kind k named name for node n into the
// current scope, recording it in the Node→Decl map and the owning file's
// declaration list regardless of whether insertion collided.
func (st *stubber) put(k decl.Kind, name string, n ast.Node) decl.Declaration {
	d, err := st.top().Put(k, name, n)
	st.record(n, d, err)
	return d
}

// putUnnamed records d (already constructed, e.g. an anonymous handler)
// without touching the scope dictionaries — anonymous handlers are never
// reachable by name.
func (st *stubber) putUnnamed(n ast.Node, d decl.Declaration) {
	st.record(n, d, nil)
}

func (st *stubber) record(n ast.Node, d decl.Declaration, err errors.Error) {
	if err != nil {
		st.errs = errors.Append(st.errs, err)
	}
	st.graph.NodeToDecl[n] = d
	st.graph.FileDecls[st.curFile] = append(st.graph.FileDecls[st.curFile], d)
}

func (st *stubber) currentEnum() *decl.Enum {
	if len(st.enums) == 0 {
		return nil
	}
	return st.enums[len(st.enums)-1]
}

// Before implements ast.Visitor.
func (st *stubber) Before(n ast.Node) ast.Visitor {
	switch x := n.(type) {
	case *ast.File:
		st.curFile = x

	case *ast.AnnotationSet:
		st.errs = errors.Append(st.errs, errors.NotImplemented("annotation set", x))

	case *ast.EventDecl:
		st.put(decl.KindEvent, x.Name, x)

	case *ast.EventSetLit:
		// Anonymous literals (inline Receives/Sends/Observes/Interface event
		// lists) still produce exactly one EventSet, just unreachable by name
		// — same treatment as an anonymous FunctionDecl below.
		if x.Name != "" {
			st.put(decl.KindEventSet, x.Name, x)
		} else {
			st.putUnnamed(x, decl.NewEventSet("", x))
		}

	case *ast.EnumDecl:
		d := st.put(decl.KindEnum, x.Name, x)
		en, _ := d.(*decl.Enum)
		st.enums = append(st.enums, en)

	case *ast.EnumElemDecl:
		d := st.put(decl.KindEnumElem, x.Name, x)
		if elem, ok := d.(*decl.EnumElem); ok {
			if en := st.currentEnum(); en != nil {
				en.AddElem(elem)
			}
		}

	case *ast.TypeDefDecl:
		st.put(decl.KindTypeDef, x.Name, x)

	case *ast.InterfaceDecl:
		st.put(decl.KindInterface, x.Name, x)

	case *ast.MachineProtoDecl:
		st.put(decl.KindMachineProto, x.Name, x)

	case *ast.FunctionProtoDecl:
		st.put(decl.KindFunctionProto, x.Name, x)
		st.protoDepth++

	case *ast.MachineDecl:
		k := decl.KindMachine
		if x.IsSpec {
			k = decl.KindSpecMachine
		}
		st.put(k, x.Name, x)
		st.pushScope(x)

	case *ast.StateGroupDecl:
		st.put(decl.KindStateGroup, x.Name, x)
		st.pushScope(x)

	case *ast.StateDecl:
		st.put(decl.KindState, x.Name, x)

	case *ast.FunctionDecl:
		if x.Name != "" {
			st.put(decl.KindFunction, x.Name, x)
		} else {
			st.putUnnamed(x, decl.NewFunction("", x))
		}
		st.pushScope(x)

	case *ast.ParamDecl:
		// FunctionProto parameters are FormalParameters: never entered into
		// any scope. FunctionDecl parameters are stub-created
		// Variables, already in scope, with their type filled by the binder.
		if st.protoDepth == 0 {
			d := st.put(decl.KindVariable, x.Name, x)
			if v, ok := d.(*decl.Variable); ok {
				v.IsParam = true
			}
		}

	case *ast.VariableDecl:
		st.put(decl.KindVariable, x.Name, x)
	}
	return st
}

// After implements ast.Visitor.
func (st *stubber) After(n ast.Node) {
	switch n.(type) {
	case *ast.EnumDecl:
		st.enums = st.enums[:len(st.enums)-1]
	case *ast.FunctionProtoDecl:
		st.protoDepth--
	case *ast.MachineDecl, *ast.StateGroupDecl, *ast.FunctionDecl:
		st.popScope()
	}
}
