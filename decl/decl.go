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

// Package decl is the Declaration Graph's object model: one
// concrete Go type per declaration kind, each carrying its kind-specific
// attributes and a back-reference to its defining syntax node. Declaration
// objects are created empty by the stub pass and filled in by the binding
// pass; this package only defines the shapes, never the
// resolution logic.
package decl

import (
	"smlang.org/go/ast"
	"smlang.org/go/token"
	"smlang.org/go/types"
)

// Kind identifies which of the fourteen declaration kinds a Declaration is.
// The Collision Matrix (scope package) is indexed by Kind.
type Kind int

const (
	KindEvent Kind = iota
	KindEventSet
	KindEnum
	KindEnumElem
	KindTypeDef
	KindInterface
	KindMachine
	KindSpecMachine
	KindMachineProto
	KindStateGroup
	KindState
	KindFunction
	KindFunctionProto
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindEventSet:
		return "event set"
	case KindEnum:
		return "enum"
	case KindEnumElem:
		return "enum element"
	case KindTypeDef:
		return "type"
	case KindInterface:
		return "interface"
	case KindMachine:
		return "machine"
	case KindSpecMachine:
		return "spec machine"
	case KindMachineProto:
		return "machine prototype"
	case KindStateGroup:
		return "state group"
	case KindState:
		return "state"
	case KindFunction:
		return "function"
	case KindFunctionProto:
		return "function prototype"
	case KindVariable:
		return "variable"
	default:
		return "?"
	}
}

// Declaration is implemented by every entity the Declaration Table stores.
type Declaration interface {
	Kind() Kind
	Name() string
	Node() ast.Node
	Position() token.Position
}

// base is embedded by every concrete Declaration to supply Name/Node/
// Position uniformly.
type base struct {
	kind Kind
	name string
	node ast.Node
}

func (b *base) Kind() Kind { return b.kind }
func (b *base) Name() string { return b.name }
func (b *base) Node() ast.Node { return b.node }
func (b *base) Position() token.Position {
	if b.node == nil {
		return token.Position{}
	}
	return b.node.Pos()
}

func newBase(k Kind, name string, n ast.Node) base {
	return base{kind: k, name: name, node: n}
}

// Temperature is a State's thermal classification, WARM by default.
type Temperature int

const (
	Warm Temperature = iota
	Hot
	Cold
)

// ----------------------------------------------------------------------------
// Event / EventSet

// Event is a named event, built in (no syntax node, name is "halt" or
// "null") or user-declared.
type Event struct {
	base
	Payload types.Type
	Assume  int // -1 when absent
	Assert  int // -1 when absent
}

func NewEvent(name string, n ast.Node) *Event {
	return &Event{base: newBase(KindEvent, name, n), Payload: types.NullType, Assume: -1, Assert: -1}
}

// EventSet is an ordered set of Events, deterministically iterated sorted
// by event name. It may be declared (has a source name) or anonymous
// (an inline literal owned by a Machine/Interface). An anonymous literal's
// name is empty; the only anonymous set given a synthetic name is a spec
// machine's Observes set, named "<MachineName>$eventset".
type EventSet struct {
	base
	events map[string]*Event
}

func NewEventSet(name string, n ast.Node) *EventSet {
	return &EventSet{base: newBase(KindEventSet, name, n), events: map[string]*Event{}}
}

// Add inserts e into the set, keyed by event name; adding the same event
// name twice is idempotent (last write wins), matching "ordered set".
func (s *EventSet) Add(e *Event) {
	s.events[e.Name()] = e
}

// Has reports whether an event of that name is a member.
func (s *EventSet) Has(name string) bool {
	_, ok := s.events[name]
	return ok
}

// Events returns the set's members, sorted by event name for determinism.
func (s *EventSet) Events() []*Event {
	out := make([]*Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	sortEvents(out)
	return out
}

// Len reports the number of members.
func (s *EventSet) Len() int { return len(s.events) }

func sortEvents(es []*Event) {
	for i := 1; i < len(es); i++ {
		for j := i; j > 0 && es[j-1].Name() > es[j].Name(); j-- {
			es[j-1], es[j] = es[j], es[j-1]
		}
	}
}

// ----------------------------------------------------------------------------
// Enum / EnumElem

// Enum is a named enumeration; Elems preserves declaration (insertion)
// order, not name order.
type Enum struct {
	base
	Elems []*EnumElem
}

func NewEnum(name string, n ast.Node) *Enum {
	return &Enum{base: newBase(KindEnum, name, n)}
}

// AddElem attaches e to the enum, setting e's parent and appending it to
// Elems. Attaching an element already attached elsewhere detaches it from
// its prior parent first: parentage is exclusive.
func (en *Enum) AddElem(e *EnumElem) {
	if e.Parent != nil {
		e.Parent.removeElem(e)
	}
	e.Parent = en
	en.Elems = append(en.Elems, e)
}

func (en *Enum) removeElem(e *EnumElem) {
	for i, x := range en.Elems {
		if x == e {
			en.Elems = append(en.Elems[:i], en.Elems[i+1:]...)
			return
		}
	}
}

// EnumElem is one member of an Enum, with an integer Value assigned per
// element kind: plain gets the running element count at the moment it is
// added, numbered gets the literal value written in source.
type EnumElem struct {
	base
	Value  int
	Parent *Enum
}

func NewEnumElem(name string, n ast.Node) *EnumElem {
	return &EnumElem{base: newBase(KindEnumElem, name, n)}
}

// ----------------------------------------------------------------------------
// TypeDef / Interface / MachineProto

// TypeDef is a named alias for a resolved type.
type TypeDef struct {
	base
	Type types.Type
}

func NewTypeDef(name string, n ast.Node) *TypeDef {
	return &TypeDef{base: newBase(KindTypeDef, name, n), Type: types.NullType}
}

// Interface declares a payload type plus a ReceivableEvents set (named or
// anonymous).
type Interface struct {
	base
	Payload          types.Type
	ReceivableEvents *EventSet
}

func NewInterface(name string, n ast.Node) *Interface {
	return &Interface{base: newBase(KindInterface, name, n), Payload: types.NullType}
}

// MachineProto is a declared-but-external machine prototype: name and
// payload only, never usable as a state handler owner.
type MachineProto struct {
	base
	Payload types.Type
}

func NewMachineProto(name string, n ast.Node) *MachineProto {
	return &MachineProto{base: newBase(KindMachineProto, name, n), Payload: types.NullType}
}

// ----------------------------------------------------------------------------
// Variable / FormalParameter

// Variable is a machine field, a function local, or a parameter; IsParam
// distinguishes the last from the first two (fields and locals always
// have IsParam==false).
type Variable struct {
	base
	Type    types.Type
	IsParam bool
}

func NewVariable(name string, n ast.Node, isParam bool) *Variable {
	return &Variable{base: newBase(KindVariable, name, n), Type: types.NullType, IsParam: isParam}
}

// FormalParameter is a parameter that appears only inside a
// FunctionProto's signature; it is never entered into any scope.
type FormalParameter struct {
	Name string
	Type types.Type
}

// ----------------------------------------------------------------------------
// Functions

// Signature is the parameter list and return type shared by Function and
// FunctionProto. Invariant: ReturnType is never the Go zero value of an
// absent type — it defaults to types.NullType, never a true "no type".
type Signature struct {
	Parameters []ITypedName
	ReturnType types.Type
}

// ITypedName is anything with a name and a resolved type: *Variable (used
// as a Function's parameter) and FormalParameter (used only inside
// FunctionProto signatures) both satisfy it.
type ITypedName interface {
	TypedName() (name string, typ types.Type)
}

func (v *Variable) TypedName() (string, types.Type) { return v.Name(), v.Type }
func (p FormalParameter) TypedName() (string, types.Type) { return p.Name, p.Type }

// Function is a named function or — when Name() == "" — an anonymous
// handler. Owner is nil for top-level functions.
type Function struct {
	base
	Owner     *Machine
	Signature Signature
	Locals    []*Variable
}

func NewFunction(name string, n ast.Node) *Function {
	return &Function{base: newBase(KindFunction, name, n), Signature: Signature{ReturnType: types.NullType}}
}

// FunctionProto declares a top-level function prototype.
type FunctionProto struct {
	base
	Signature Signature
	Creates   []*Machine
}

func NewFunctionProto(name string, n ast.Node) *FunctionProto {
	return &FunctionProto{base: newBase(KindFunctionProto, name, n), Signature: Signature{ReturnType: types.NullType}}
}

// ----------------------------------------------------------------------------
// States, groups, actions

// StateAction is one (state, event) handler clause. Exactly one of the
// polymorphic payload fields is meaningful, selected by Kind.
type ActionKind int

const (
	ActionDefer ActionKind = iota
	ActionIgnore
	ActionGoto
	ActionPush
	ActionDo
)

type StateAction struct {
	Event        *Event
	Kind         ActionKind
	Target       *State    // ActionGoto, ActionPush
	TransitionFn *Function // ActionGoto only, optional
	Fn           *Function // ActionDo only
	node         ast.Node
}

func (a *StateAction) Node() ast.Node { return a.node }

// NewStateAction constructs a StateAction of the given kind attached to its
// originating ActionDecl node. Callers fill in Event and whichever of
// Target/TransitionFn/Fn the kind uses.
func NewStateAction(kind ActionKind, n ast.Node) *StateAction {
	return &StateAction{Kind: kind, node: n}
}

// State is one state in a machine's state tree (top-level or nested in a
// StateGroup).
type State struct {
	base
	Temperature Temperature
	IsStart     bool
	Entry       *Function
	Exit        *Function
	Actions     map[*Event]*StateAction
}

func NewState(name string, n ast.Node) *State {
	return &State{base: newBase(KindState, name, n), Actions: map[*Event]*StateAction{}}
}

// StateGroup nests child States and further StateGroups to arbitrary
// depth.
type StateGroup struct {
	base
	States []*State
	Groups []*StateGroup
}

func NewStateGroup(name string, n ast.Node) *StateGroup {
	return &StateGroup{base: newBase(KindStateGroup, name, n)}
}

// ----------------------------------------------------------------------------
// Machine / SpecMachine

// Machine is an implementation or spec machine. IsSpec selects between the
// two: a spec machine's Observes set is mandatory.
type Machine struct {
	base
	IsSpec     bool
	Payload    types.Type
	Assume     int // -1 when absent
	Assert     int // -1 when absent
	Interfaces []*Interface
	Receives   *EventSet
	Sends      *EventSet
	Observes   *EventSet // spec machines only
	Fields     []*Variable
	Methods    []*Function
	States     []*State
	Groups     []*StateGroup
	StartState *State
}

func NewMachine(name string, n ast.Node, isSpec bool) *Machine {
	return &Machine{
		base:    newBase(kindFor(isSpec), name, n),
		IsSpec:  isSpec,
		Payload: types.NullType,
		Assume:  -1,
		Assert:  -1,
	}
}

func kindFor(isSpec bool) Kind {
	if isSpec {
		return KindSpecMachine
	}
	return KindMachine
}
