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
	"smlang.org/go/types"
)

// binder is Pass 2: it walks the same trees a second time,
// reconstructing its scope stack from the Node→Scope map the stub pass
// wrote, and fills every declaration's attributes, resolving references as
// it goes.
type binder struct {
	graph *Graph
	table *scope.Table
	tr    types.Resolver

	scopes []scope.Handle

	curMachine   *decl.Machine
	machineScope *scope.Scope

	curGroups    []*decl.StateGroup
	curState     *decl.State
	curFunctions []*decl.Function

	enums      []*decl.Enum
	enumCounts []int

	errs errors.List
}

func newBinder(g *Graph, table *scope.Table, tr types.Resolver) *binder {
	return &binder{graph: g, table: table, tr: tr}
}

func (b *binder) run(files []*ast.File) errors.List {
	for _, f := range files {
		b.scopes = []scope.Handle{b.graph.Top.Handle()}
		ast.Walk(b, f)
	}
	return b.errs
}

func (b *binder) cur() *scope.Scope {
	return b.table.Scope(b.scopes[len(b.scopes)-1])
}

// pushScope re-enters the scope the stub pass introduced for n.
func (b *binder) pushScope(n ast.Node) {
	h, ok := b.graph.NodeToScope[n]
	if !ok {
		h = b.table.NewScope(b.scopes[len(b.scopes)-1])
	}
	b.scopes = append(b.scopes, h)
}

func (b *binder) popScope() {
	b.scopes = b.scopes[:len(b.scopes)-1]
}

func (b *binder) errf(err errors.Error) {
	b.errs = errors.Append(b.errs, err)
}

// resolveType delegates to the supplied type Resolver, rejecting foreign
// types outright (the Resolver's job is only to recognize them) and
// defaulting a nil expression to Null.
func (b *binder) resolveType(expr ast.TypeExpr) types.Type {
	if expr == nil {
		return types.NullType
	}
	if fr, ok := expr.(*ast.ForeignTypeRef); ok {
		b.errf(errors.NotImplemented("foreign type", fr))
		return types.NullType
	}
	t, err := b.tr.Resolve(b.cur(), expr)
	if err != nil {
		b.errf(errors.MissingDeclaration(typeRefName(expr), expr))
		return types.NullType
	}
	return t
}

func typeRefName(expr ast.TypeExpr) string {
	if r, ok := expr.(*ast.TypeRef); ok {
		return r.Name
	}
	return "?"
}

// bindEventsRef resolves a Machine's Receives/Sends slot: a reference to a
// previously/later declared EventSet, or an inline literal already given a
// Declaration by the stub pass (its members are filled when Walk visits it
// directly, via the *ast.EventSetLit case below).
func (b *binder) bindEventsRef(r ast.EventsRef) (*decl.EventSet, errors.Error) {
	switch x := r.(type) {
	case nil:
		return nil, nil
	case *ast.Ident:
		d := b.cur().Lookup(decl.KindEventSet, x.Name)
		if d == nil {
			return nil, errors.MissingDeclaration(x.Name, x)
		}
		return d.(*decl.EventSet), nil
	case *ast.EventSetLit:
		set, _ := b.graph.NodeToDecl[x].(*decl.EventSet)
		return set, nil
	}
	return nil, nil
}

// bindObserves implements the SpecMachine-only rule that Observes is
// mandatory and always an anonymous EventSet named "<MachineName>$eventset",
// regardless of whether the source named a declared set or wrote an inline
// literal. Called from After(MachineDecl), once the whole subtree
// (including an inline Observes literal) has already been walked, so the
// literal case below only ever copies already-resolved events — it never
// re-resolves event names itself and so never reports a MissingEvent
// already reported by the generic *ast.EventSetLit case that filled it in.
func (b *binder) bindObserves(x *ast.MachineDecl, m *decl.Machine) {
	set := decl.NewEventSet(m.Name()+"$eventset", x)
	switch r := x.Observes.(type) {
	case nil:
	case *ast.Ident:
		d := b.cur().Lookup(decl.KindEventSet, r.Name)
		if d == nil {
			b.errf(errors.MissingDeclaration(r.Name, r))
		} else {
			for _, e := range d.(*decl.EventSet).Events() {
				set.Add(e)
			}
		}
	case *ast.EventSetLit:
		if lit, _ := b.graph.NodeToDecl[r].(*decl.EventSet); lit != nil {
			for _, e := range lit.Events() {
				set.Add(e)
			}
		}
	}
	m.Observes = set
}

// resolveHandler resolves a State Entry/Exit/Action/transition slot: either
// a name lookup (rejecting a FunctionProto target as unimplemented) or the
// already stub-created anonymous Function for an inline FunctionDecl.
func (b *binder) resolveHandler(h ast.Handler) (*decl.Function, errors.Error) {
	switch x := h.(type) {
	case nil:
		return nil, nil
	case *ast.Ident:
		if d := b.cur().Lookup(decl.KindFunction, x.Name); d != nil {
			return d.(*decl.Function), nil
		}
		if d := b.cur().Lookup(decl.KindFunctionProto, x.Name); d != nil {
			return nil, errors.NotImplemented("function prototype used as a state handler", x)
		}
		return nil, errors.MissingDeclaration(x.Name, x)
	case *ast.FunctionDecl:
		fn, _ := b.graph.NodeToDecl[x].(*decl.Function)
		return fn, nil
	}
	return nil, nil
}

// insertAction resolves evId and attaches proto to s.Actions, failing with
// MissingDeclaration or DuplicateHandler.
func (b *binder) insertAction(s *decl.State, evId *ast.Ident, proto *decl.StateAction) {
	d := b.cur().Lookup(decl.KindEvent, evId.Name)
	if d == nil {
		b.errf(errors.MissingDeclaration(evId.Name, evId))
		return
	}
	ev := d.(*decl.Event)
	if _, exists := s.Actions[ev]; exists {
		b.errf(errors.DuplicateHandler(ev, s, evId))
		return
	}
	proto.Event = ev
	s.Actions[ev] = proto
}

func convertTemperature(t ast.Temperature) decl.Temperature {
	switch t {
	case ast.TempHot:
		return decl.Hot
	case ast.TempCold:
		return decl.Cold
	default:
		return decl.Warm
	}
}

// Before implements ast.Visitor.
func (b *binder) Before(n ast.Node) ast.Visitor {
	switch x := n.(type) {
	case *ast.AnnotationSet:
		// Already rejected by the stub pass; nothing to bind.

	case *ast.EventDecl:
		e := b.graph.NodeToDecl[x].(*decl.Event)
		e.Payload = b.resolveType(x.Payload)
		e.Assume, e.Assert = -1, -1
		if x.Assume != nil {
			e.Assume = *x.Assume
		}
		if x.Assert != nil {
			e.Assert = *x.Assert
		}

	case *ast.EventSetLit:
		set, _ := b.graph.NodeToDecl[x].(*decl.EventSet)
		if set != nil {
			for _, id := range x.Events {
				d := b.cur().Lookup(decl.KindEvent, id.Name)
				if d == nil {
					b.errf(errors.MissingEvent(set, id.Name, id))
					continue
				}
				set.Add(d.(*decl.Event))
			}
		}

	case *ast.EnumDecl:
		en := b.graph.NodeToDecl[x].(*decl.Enum)
		b.enums = append(b.enums, en)
		b.enumCounts = append(b.enumCounts, 0)

	case *ast.EnumElemDecl:
		el := b.graph.NodeToDecl[x].(*decl.EnumElem)
		i := len(b.enumCounts) - 1
		if x.Value != nil {
			el.Value = *x.Value
		} else {
			el.Value = b.enumCounts[i]
		}
		b.enumCounts[i]++

	case *ast.TypeDefDecl:
		td := b.graph.NodeToDecl[x].(*decl.TypeDef)
		td.Type = b.resolveType(x.RHS)

	case *ast.InterfaceDecl:
		intf := b.graph.NodeToDecl[x].(*decl.Interface)
		intf.Payload = b.resolveType(x.Payload)
		switch r := x.Events.(type) {
		case nil:
		case *ast.Ident:
			d := b.cur().Lookup(decl.KindEventSet, r.Name)
			if d == nil {
				b.errf(errors.MissingDeclaration(r.Name, r))
			} else {
				intf.ReceivableEvents = d.(*decl.EventSet)
			}
		case *ast.EventSetLit:
			intf.ReceivableEvents, _ = b.graph.NodeToDecl[r].(*decl.EventSet)
		}

	case *ast.MachineProtoDecl:
		mp := b.graph.NodeToDecl[x].(*decl.MachineProto)
		mp.Payload = b.resolveType(x.Payload)

	case *ast.FunctionProtoDecl:
		fp := b.graph.NodeToDecl[x].(*decl.FunctionProto)
		fp.Signature.ReturnType = b.resolveType(x.ReturnType)
		for _, p := range x.Params {
			fp.Signature.Parameters = append(fp.Signature.Parameters, decl.FormalParameter{
				Name: p.Name,
				Type: b.resolveType(p.Type),
			})
		}
		for _, id := range x.Creates {
			d := b.cur().Lookup(decl.KindMachine, id.Name)
			if d == nil {
				d = b.cur().Lookup(decl.KindSpecMachine, id.Name)
			}
			if d == nil {
				b.errf(errors.MissingDeclaration(id.Name, id))
				continue
			}
			fp.Creates = append(fp.Creates, d.(*decl.Machine))
		}

	case *ast.MachineDecl:
		m := b.graph.NodeToDecl[x].(*decl.Machine)
		m.Assume, m.Assert = -1, -1
		if x.Assume != nil {
			m.Assume = *x.Assume
		}
		if x.Assert != nil {
			m.Assert = *x.Assert
		}
		for _, id := range x.Interfaces {
			d := b.cur().Lookup(decl.KindInterface, id.Name)
			if d == nil {
				b.errf(errors.MissingDeclaration(id.Name, id))
				continue
			}
			m.Interfaces = append(m.Interfaces, d.(*decl.Interface))
		}
		b.pushScope(x)
		if rs, err := b.bindEventsRef(x.Receives); err != nil {
			b.errf(err)
		} else {
			m.Receives = rs
		}
		if ss, err := b.bindEventsRef(x.Sends); err != nil {
			b.errf(err)
		} else {
			m.Sends = ss
		}
		b.curMachine = m
		b.machineScope = b.cur()

	case *ast.StateGroupDecl:
		g := b.graph.NodeToDecl[x].(*decl.StateGroup)
		if len(b.curGroups) > 0 {
			parent := b.curGroups[len(b.curGroups)-1]
			parent.Groups = append(parent.Groups, g)
		} else if b.curMachine != nil {
			b.curMachine.Groups = append(b.curMachine.Groups, g)
		}
		b.curGroups = append(b.curGroups, g)
		b.pushScope(x)

	case *ast.StateDecl:
		s := b.graph.NodeToDecl[x].(*decl.State)
		s.Temperature = convertTemperature(x.Temperature)
		s.IsStart = x.IsStart
		if len(b.curGroups) > 0 {
			parent := b.curGroups[len(b.curGroups)-1]
			parent.States = append(parent.States, s)
		} else if b.curMachine != nil {
			b.curMachine.States = append(b.curMachine.States, s)
		}
		if x.IsStart && b.curMachine != nil {
			if b.curMachine.StartState != nil {
				b.errf(errors.DuplicateStartState(b.curMachine, s))
			} else {
				b.curMachine.StartState = s
			}
		}
		if x.Entry != nil {
			fn, err := b.resolveHandler(x.Entry)
			if err != nil {
				b.errf(err)
			} else if s.Entry != nil {
				b.errf(errors.DuplicateEntry(s))
			} else {
				s.Entry = fn
			}
		}
		if x.Exit != nil {
			fn, err := b.resolveHandler(x.Exit)
			if err != nil {
				b.errf(err)
			} else if s.Exit != nil {
				b.errf(errors.DuplicateExit(s))
			} else {
				s.Exit = fn
			}
		}
		b.curState = s

	case *ast.ActionDecl:
		s := b.curState
		if s != nil {
			switch x.Kind {
			case ast.ActionGoto, ast.ActionPush:
				target, terr := resolveStatePath(b.graph, b.table, b.machineScope, x.Target)
				if terr != nil {
					b.errf(terr)
					break
				}
				kind := decl.ActionGoto
				if x.Kind == ast.ActionPush {
					kind = decl.ActionPush
				}
				var transitionFn *decl.Function
				if x.Kind == ast.ActionGoto && x.TransitionFn != nil {
					fn, ferr := b.resolveHandler(x.TransitionFn)
					if ferr != nil {
						b.errf(ferr)
					} else {
						transitionFn = fn
					}
				}
				for _, evID := range x.Events {
					a := decl.NewStateAction(kind, x)
					a.Target = target
					a.TransitionFn = transitionFn
					b.insertAction(s, evID, a)
				}

			case ast.ActionDo:
				fn, ferr := b.resolveHandler(x.Fn)
				if ferr != nil {
					b.errf(ferr)
					break
				}
				for _, evID := range x.Events {
					a := decl.NewStateAction(decl.ActionDo, x)
					a.Fn = fn
					b.insertAction(s, evID, a)
				}

			case ast.ActionDefer:
				for _, evID := range x.Events {
					b.insertAction(s, evID, decl.NewStateAction(decl.ActionDefer, x))
				}

			case ast.ActionIgnore:
				for _, evID := range x.Events {
					b.insertAction(s, evID, decl.NewStateAction(decl.ActionIgnore, x))
				}
			}
		}

	case *ast.FunctionDecl:
		fn := b.graph.NodeToDecl[x].(*decl.Function)
		fn.Owner = b.curMachine
		if x.Foreign {
			b.errf(errors.NotImplemented("foreign function", x))
		}
		b.pushScope(x)
		fn.Signature.ReturnType = b.resolveType(x.ReturnType)
		for _, p := range x.Params {
			v, _ := b.graph.NodeToDecl[p].(*decl.Variable)
			if v == nil {
				continue
			}
			v.Type = b.resolveType(p.Type)
			fn.Signature.Parameters = append(fn.Signature.Parameters, v)
		}
		if x.Name != "" && b.curMachine != nil {
			b.curMachine.Methods = append(b.curMachine.Methods, fn)
		}
		b.curFunctions = append(b.curFunctions, fn)

	case *ast.VariableDecl:
		v := b.graph.NodeToDecl[x].(*decl.Variable)
		v.Type = b.resolveType(x.Type)
		if len(b.curFunctions) > 0 {
			cf := b.curFunctions[len(b.curFunctions)-1]
			cf.Locals = append(cf.Locals, v)
		} else if b.curMachine != nil {
			b.curMachine.Fields = append(b.curMachine.Fields, v)
		}
	}
	return b
}

// After implements ast.Visitor.
func (b *binder) After(n ast.Node) {
	switch x := n.(type) {
	case *ast.EnumDecl:
		b.enums = b.enums[:len(b.enums)-1]
		b.enumCounts = b.enumCounts[:len(b.enumCounts)-1]

	case *ast.StateGroupDecl:
		b.curGroups = b.curGroups[:len(b.curGroups)-1]
		b.popScope()

	case *ast.StateDecl:
		s, _ := b.graph.NodeToDecl[x].(*decl.State)
		if s != nil && s.IsStart && b.curMachine != nil {
			if s.Entry != nil {
				b.curMachine.Payload = s.Entry.Signature.ReturnType
			} else {
				b.curMachine.Payload = types.NullType
			}
		}
		b.curState = nil

	case *ast.FunctionDecl:
		b.curFunctions = b.curFunctions[:len(b.curFunctions)-1]
		b.popScope()

	case *ast.MachineDecl:
		if x.IsSpec && b.curMachine != nil {
			// Deferred to After: an inline Observes literal is a child of
			// this node and is only resolved by the generic *ast.EventSetLit
			// case partway through walkChildren, above. Binding Observes
			// here, after the whole subtree (including that literal) has
			// been walked, lets bindObserves copy its already-resolved
			// Events() instead of re-resolving the literal itself.
			b.bindObserves(x, b.curMachine)
		}
		if b.curMachine != nil && b.curMachine.StartState == nil {
			b.errf(errors.MachineWithoutStartState(b.curMachine))
		}
		b.popScope()
		b.curMachine = nil
		b.machineScope = nil
	}
}
