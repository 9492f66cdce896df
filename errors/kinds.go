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

package errors

import (
	"smlang.org/go/ast"
	"smlang.org/go/decl"
)

// DuplicateDeclarationError reports a local-scope conflict per the
// Collision Matrix: a new declaration whose name already names an
// incompatible declaration in the same local scope.
type DuplicateDeclarationError struct {
	*baseError
	New      decl.Declaration
	Existing decl.Declaration
}

func DuplicateDeclaration(newDecl, existing decl.Declaration) *DuplicateDeclarationError {
	return &DuplicateDeclarationError{
		baseError: newf(newDecl.Position(), "%s %q already declared as %s at %s",
			newDecl.Kind(), newDecl.Name(), existing.Kind(), existing.Position()),
		New:      newDecl,
		Existing: existing,
	}
}

// MissingDeclarationError reports a failed name lookup for a referenced
// identifier (any kind).
type MissingDeclarationError struct {
	*baseError
	Name string
}

func MissingDeclaration(name string, contextNode ast.Node) *MissingDeclarationError {
	return &MissingDeclarationError{
		baseError: newf(contextNode.Pos(), "undeclared name %q", name),
		Name:      name,
	}
}

// MissingEventError reports an event name that does not resolve while
// binding an event set literal.
type MissingEventError struct {
	*baseError
	Set  *decl.EventSet
	Name string
}

func MissingEvent(set *decl.EventSet, name string, at ast.Node) *MissingEventError {
	return &MissingEventError{
		baseError: newf(at.Pos(), "event %q not found for event set %q", name, set.Name()),
		Set:       set,
		Name:      name,
	}
}

// DuplicateStartStateError reports a second state marked START in the same
// machine.
type DuplicateStartStateError struct {
	*baseError
	Machine     *decl.Machine
	Conflicting *decl.State
}

func DuplicateStartState(m *decl.Machine, conflicting *decl.State) *DuplicateStartStateError {
	return &DuplicateStartStateError{
		baseError: newf(conflicting.Position(), "machine %q already has a start state %q",
			m.Name(), m.StartState.Name()),
		Machine:     m,
		Conflicting: conflicting,
	}
}

// DuplicateEntryError reports a second Entry handler declared for a state.
type DuplicateEntryError struct {
	*baseError
	State *decl.State
}

func DuplicateEntry(s *decl.State) *DuplicateEntryError {
	return &DuplicateEntryError{
		baseError: newf(s.Position(), "state %q already has an entry handler", s.Name()),
		State:     s,
	}
}

// DuplicateExitError reports a second Exit handler declared for a state.
type DuplicateExitError struct {
	*baseError
	State *decl.State
}

func DuplicateExit(s *decl.State) *DuplicateExitError {
	return &DuplicateExitError{
		baseError: newf(s.Position(), "state %q already has an exit handler", s.Name()),
		State:     s,
	}
}

// DuplicateHandlerError reports a second action for the same event in one
// state.
type DuplicateHandlerError struct {
	*baseError
	Event *decl.Event
	State *decl.State
}

func DuplicateHandler(event *decl.Event, state *decl.State, at ast.Node) *DuplicateHandlerError {
	return &DuplicateHandlerError{
		baseError: newf(at.Pos(), "state %q already has a handler for event %q", state.Name(), event.Name()),
		Event:     event,
		State:     state,
	}
}

// MachineWithoutStartStateError reports a machine body closed with no
// state marked START.
type MachineWithoutStartStateError struct {
	*baseError
	Machine *decl.Machine
}

func MachineWithoutStartState(m *decl.Machine) *MachineWithoutStartStateError {
	return &MachineWithoutStartStateError{
		baseError: newf(m.Position(), "machine %q has no start state", m.Name()),
		Machine:   m,
	}
}

// NotImplementedError reports a recognized-but-unimplemented feature:
// annotation sets, foreign types, foreign functions, or a prototype used
// as a state handler.
type NotImplementedError struct {
	*baseError
	Feature string
}

func NotImplemented(feature string, at ast.Node) *NotImplementedError {
	return &NotImplementedError{
		baseError: newf(at.Pos(), "%s: not implemented", feature),
		Feature:   feature,
	}
}
