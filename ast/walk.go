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

// Visitor is the syntax visitor contract: the core subscribes to
// enter/exit events per grammar production relevant to declarations.
// Before is invoked for every node Walk encounters; if it returns a non-nil
// w, Walk visits that node's children with w and then calls w.After on the
// node. Returning nil from Before stops the descent into that node's
// children (but After is still not called in that case, mirroring
// cue/ast/astutil's walk).
type Visitor interface {
	Before(n Node) (w Visitor)
	After(n Node)
}

// Walk delivers Before/After events for n and all of its children, in
// document order, to v.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	w := v.Before(n)
	if w == nil {
		return
	}
	walkChildren(w, n)
	w.After(n)
}

func walkChildren(v Visitor, n Node) {
	switch x := n.(type) {
	case *File:
		for _, d := range x.Decls {
			Walk(v, d)
		}

	case *EventDecl:
		Walk(v, x.Payload)

	case *EventSetLit:
		for _, e := range x.Events {
			Walk(v, e)
		}

	case *EnumDecl:
		for _, e := range x.Elems {
			Walk(v, e)
		}

	case *EnumElemDecl:
		// leaf

	case *TypeDefDecl:
		Walk(v, x.RHS)

	case *InterfaceDecl:
		Walk(v, x.Payload)
		walkEventsRef(v, x.Events)

	case *VariableDecl:
		Walk(v, x.Type)

	case *ParamDecl:
		Walk(v, x.Type)

	case *FunctionDecl:
		for _, p := range x.Params {
			Walk(v, p)
		}
		Walk(v, x.ReturnType)
		for _, l := range x.Locals {
			Walk(v, l)
		}

	case *FunctionProtoDecl:
		for _, p := range x.Params {
			Walk(v, p)
		}
		Walk(v, x.ReturnType)
		for _, c := range x.Creates {
			Walk(v, c)
		}

	case *MachineDecl:
		for _, i := range x.Interfaces {
			Walk(v, i)
		}
		walkEventsRef(v, x.Receives)
		walkEventsRef(v, x.Sends)
		walkEventsRef(v, x.Observes)
		for _, f := range x.Fields {
			Walk(v, f)
		}
		for _, m := range x.Methods {
			Walk(v, m)
		}
		for _, g := range x.Groups {
			Walk(v, g)
		}
		for _, s := range x.States {
			Walk(v, s)
		}

	case *MachineProtoDecl:
		Walk(v, x.Payload)

	case *StateGroupDecl:
		for _, s := range x.States {
			Walk(v, s)
		}
		for _, g := range x.Groups {
			Walk(v, g)
		}

	case *StateDecl:
		walkHandler(v, x.Entry)
		walkHandler(v, x.Exit)
		for _, a := range x.Actions {
			Walk(v, a)
		}

	case *ActionDecl:
		for _, e := range x.Events {
			Walk(v, e)
		}
		walkHandler(v, x.TransitionFn)
		walkHandler(v, x.Fn)

	case *Ident, *TypeRef, *ForeignTypeRef, *StatePath, *AnnotationSet:
		// leaves

	default:
		// Unknown node kinds are treated as leaves: the visitor contract
		// only covers productions relevant to declarations.
	}
}

func walkEventsRef(v Visitor, r EventsRef) {
	switch x := r.(type) {
	case nil:
	case *Ident:
		Walk(v, x)
	case *EventSetLit:
		Walk(v, x)
	}
}

func walkHandler(v Visitor, h Handler) {
	switch x := h.(type) {
	case nil:
	case *Ident:
		Walk(v, x)
	case *FunctionDecl:
		Walk(v, x)
	}
}
