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

// Package ast declares the syntax node types the resolver core consumes.
//
// The real parser and its lexical token provenance are external
// collaborators: this package only carries the handful of
// typed accessors the stub and binding passes need (identifiers,
// cardinality tokens, type subtrees, event lists, group-qualified names).
// Concrete node types exist, rather than a bare opaque handle, so that
// tests and the cmd/smldecl demo harness can build trees without a real
// parser.
package ast

import "smlang.org/go/token"

// Node is any syntax tree position the core can report a diagnostic
// against. A nil Node is valid and denotes "no originating syntax node" —
// used only by the two built-in events.
type Node interface {
	Pos() token.Position
}

// Decl is implemented by every declaration-producing node: the kind the
// stub pass hands to Scope.Put.
type Decl interface {
	Node
	declNode()
}

// pos embeds a literal Position and provides Pos() for node structs that
// have no computed position of their own.
type pos struct {
	P token.Position
}

func (p pos) Pos() token.Position { return p.P }

// ----------------------------------------------------------------------------
// Compilation unit

// File is one parsed source file: a flat list of top-level declarations.
// AnalyzeCompilationUnit is handed one or more Files, processed in the
// order given.
type File struct {
	pos
	Filename string
	Decls    []Decl
}

// ----------------------------------------------------------------------------
// Type expressions

// TypeExpr is a written type reference: the core never infers a type the
// user did not write.
type TypeExpr interface {
	Node
	typeExprNode()
}

// TypeRef names a primitive or a user TypeDef/Enum/Interface/Machine/
// MachineProto. Resolution (primitive vs. named vs. unknown) is the type
// Resolver collaborator's job, not this package's.
type TypeRef struct {
	pos
	Name string
}

func (*TypeRef) typeExprNode() {}

// ForeignTypeRef marks a type written with the language's (unimplemented)
// foreign-type syntax. The binder always rejects it with NotImplemented.
type ForeignTypeRef struct {
	pos
	Name string
}

func (*ForeignTypeRef) typeExprNode() {}

// ----------------------------------------------------------------------------
// Identifiers and paths

// Ident is a bare name reference: an event, event set, interface, machine,
// function, state group or state name used in a reference position.
type Ident struct {
	pos
	Name string
}

// StatePath is a group-qualified state name, `g1.g2.state`. Groups
// may be empty, in which case State resolves directly against the
// machine's own scope.
type StatePath struct {
	pos
	Groups []string
	State  string
}

// ----------------------------------------------------------------------------
// Annotations (always rejected, never implemented)

// AnnotationSet is recognized wherever the grammar allows one and always
// rejected by the stub pass with NotImplemented.
type AnnotationSet struct {
	pos
	Name string
}

func (*AnnotationSet) declNode() {}

// ----------------------------------------------------------------------------
// Events and event sets

// EventDecl declares a named event, optionally carrying a payload type and
// assume/assert cardinalities.
type EventDecl struct {
	pos
	Name    string
	Payload TypeExpr // nil => Null
	Assume  *int     // nil => absent (-1)
	Assert  *int     // nil => absent (-1)
}

func (*EventDecl) declNode() {}

// EventSetLit is an inline (possibly anonymous) event set literal: a
// parenthesized list of event name tokens.
type EventSetLit struct {
	pos
	Name   string // "" for anonymous
	Events []*Ident
}

func (*EventSetLit) declNode() {}

// EventsRef is either a bare reference to a declared EventSetLit (*Ident)
// or an inline anonymous *EventSetLit, used by InterfaceDecl and by a
// Machine's Receives/Sends/Observes slots.
type EventsRef interface {
	Node
	eventsRefNode()
}

func (*Ident) eventsRefNode()      {}
func (*EventSetLit) eventsRefNode() {}

// ----------------------------------------------------------------------------
// Enums

// EnumDecl declares a named enum; EnumElemDecl children are attached one at
// a time by the stub pass to whichever EnumDecl is innermost-enclosing.
type EnumDecl struct {
	pos
	Name  string
	Elems []*EnumElemDecl
}

func (*EnumDecl) declNode() {}

// EnumElemDecl is a single element of an enum, either plain (Value == nil)
// or explicitly numbered.
type EnumElemDecl struct {
	pos
	Name  string
	Value *int // nil => plain, running-count assignment
}

func (*EnumElemDecl) declNode() {}

// ----------------------------------------------------------------------------
// TypeDefs and Interfaces

// TypeDefDecl declares a named alias for a resolved type.
type TypeDefDecl struct {
	pos
	Name string
	RHS  TypeExpr
}

func (*TypeDefDecl) declNode() {}

// InterfaceDecl declares a receivable-events contract: either a reference
// to a previously/later declared EventSetLit, or an inline anonymous one.
type InterfaceDecl struct {
	pos
	Name    string
	Payload TypeExpr // nil => Null
	Events  EventsRef
}

func (*InterfaceDecl) declNode() {}

// ----------------------------------------------------------------------------
// Variables and parameters

// VariableDecl is a machine field or a function-local variable; which one
// it becomes is determined by where the stub pass encounters it, never by
// a flag on the node itself.
type VariableDecl struct {
	pos
	Name string
	Type TypeExpr
}

func (*VariableDecl) declNode() {}

// ParamDecl is a formal parameter inside a FunctionDecl/FunctionProtoDecl
// signature.
type ParamDecl struct {
	pos
	Name string
	Type TypeExpr
}

// ----------------------------------------------------------------------------
// Functions

// FunctionDecl is a named function, or — when Name is empty — an anonymous
// handler attached inline to a state slot or transition.
type FunctionDecl struct {
	pos
	Name       string
	Params     []*ParamDecl
	ReturnType TypeExpr // nil => Null
	Locals     []*VariableDecl
	Foreign    bool // bodyless foreign function; always NotImplemented
}

func (*FunctionDecl) declNode()    {}
func (*FunctionDecl) handlerNode() {}

// FunctionProtoDecl declares a top-level function prototype: a signature
// plus the machines it may construct.
type FunctionProtoDecl struct {
	pos
	Name       string
	Params     []*ParamDecl
	ReturnType TypeExpr
	Creates    []*Ident
}

func (*FunctionProtoDecl) declNode() {}

// Handler is either a reference to a previously/later declared named
// Function (*Ident) or an inline anonymous *FunctionDecl, used by state
// Entry/Exit/Action/transition slots.
type Handler interface {
	Node
	handlerNode()
}

func (*Ident) handlerNode() {}

// ----------------------------------------------------------------------------
// Machines and interfaces

// Temperature mirrors decl's WARM/HOT/COLD state temperature; re-declared
// here only because the syntax tree carries the literal token the parser
// saw, not the decl package's enum.
type Temperature int

const (
	TempWarm Temperature = iota
	TempHot
	TempCold
)

// MachineDecl declares an implementation (non-spec) or spec machine body.
// A machine's payload type is never written directly: it is always derived
// from its start state's entry handler return type.
type MachineDecl struct {
	pos
	Name       string
	IsSpec     bool
	Assume     *int
	Assert     *int
	Interfaces []*Ident
	Receives   EventsRef
	Sends      EventsRef
	Observes   EventsRef // mandatory when IsSpec
	Fields     []*VariableDecl
	Methods    []*FunctionDecl
	Groups     []*StateGroupDecl
	States     []*StateDecl
}

func (*MachineDecl) declNode() {}

// MachineProtoDecl declares a machine prototype: name and payload only.
type MachineProtoDecl struct {
	pos
	Name    string
	Payload TypeExpr
}

func (*MachineProtoDecl) declNode() {}

// ----------------------------------------------------------------------------
// State groups, states and actions

// StateGroupDecl nests States and further StateGroups arbitrarily deep.
type StateGroupDecl struct {
	pos
	Name   string
	States []*StateDecl
	Groups []*StateGroupDecl
}

func (*StateGroupDecl) declNode() {}

// StateDecl declares one state, its temperature, optional entry/exit
// handlers and its (Event -> action) handlers.
type StateDecl struct {
	pos
	Name        string
	Temperature Temperature
	IsStart     bool
	Entry       Handler
	Exit        Handler
	Actions     []*ActionDecl
}

func (*StateDecl) declNode() {}

// ActionKind distinguishes the five StateAction shapes: defer, ignore,
// goto, push, and do.
type ActionKind int

const (
	ActionDefer ActionKind = iota
	ActionIgnore
	ActionGoto
	ActionPush
	ActionDo
)

// ActionDecl is one (state, event-list) handler clause; it expands, during
// binding, into one decl.StateAction per listed event.
type ActionDecl struct {
	pos
	Events       []*Ident
	Kind         ActionKind
	Target       *StatePath // ActionGoto, ActionPush
	TransitionFn Handler    // ActionGoto only, optional
	Fn           Handler    // ActionDo only
}
