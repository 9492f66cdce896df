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

// Package fixture builds ast.File trees from a small YAML schema, standing
// in for a real parser in tests and the cmd/smldecl demo. Fixture nodes
// carry no source position (ast.Node's pos field is private to that
// package) — diagnostics against a fixture
// tree report an invalid Position, which is fine for the round-trip and
// table-driven tests this package exists to support.
package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"smlang.org/go/ast"
)

// Parse decodes one YAML document into an ast.File.
func Parse(filename string, src []byte) (*ast.File, error) {
	var doc fileSpec
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("fixture: %s: %w", filename, err)
	}
	b := &builder{filename: filename}
	return b.file(doc), nil
}

// ParseAll decodes one YAML document per src entry, preserving order.
func ParseAll(srcs map[string][]byte, order []string) ([]*ast.File, error) {
	files := make([]*ast.File, 0, len(order))
	for _, name := range order {
		f, err := Parse(name, srcs[name])
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

type builder struct {
	filename string
}

// ----------------------------------------------------------------------------
// YAML schema

type fileSpec struct {
	Decls []declSpec `yaml:"decls"`
}

// declSpec is a sum type: exactly one field should be set per entry. This
// mirrors how a hand-written fixture reads more than it mirrors any real
// grammar production.
type declSpec struct {
	Event         *eventSpec         `yaml:"event"`
	EventSet      *eventSetSpec      `yaml:"eventset"`
	Enum          *enumSpec          `yaml:"enum"`
	TypeDef       *typeDefSpec       `yaml:"typedef"`
	Interface     *interfaceSpec     `yaml:"interface"`
	MachineProto  *machineProtoSpec  `yaml:"machineproto"`
	FunctionProto *functionProtoSpec `yaml:"functionproto"`
	Machine       *machineSpec       `yaml:"machine"`
	Annotation    *annotationSpec    `yaml:"annotation"`
}

type eventSpec struct {
	Name    string `yaml:"name"`
	Payload string `yaml:"payload"`
	Assume  *int   `yaml:"assume"`
	Assert  *int   `yaml:"assert"`
}

type eventSetSpec struct {
	Name   string   `yaml:"name"`
	Events []string `yaml:"events"`
}

type enumSpec struct {
	Name  string         `yaml:"name"`
	Elems []enumElemSpec `yaml:"elems"`
}

type enumElemSpec struct {
	Name  string `yaml:"name"`
	Value *int   `yaml:"value"`
}

type typeDefSpec struct {
	Name string `yaml:"name"`
	RHS  string `yaml:"rhs"`
}

type interfaceSpec struct {
	Name    string        `yaml:"name"`
	Payload string        `yaml:"payload"`
	Events  eventsRefSpec `yaml:"events"`
}

type machineProtoSpec struct {
	Name    string `yaml:"name"`
	Payload string `yaml:"payload"`
}

type functionProtoSpec struct {
	Name       string      `yaml:"name"`
	Params     []paramSpec `yaml:"params"`
	ReturnType string      `yaml:"returnType"`
	Creates    []string    `yaml:"creates"`
}

type annotationSpec struct {
	Name string `yaml:"name"`
}

type paramSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// eventsRefSpec: Ref names a previously/later declared event set; Lit is an
// inline (possibly anonymous) literal. At most one should be set.
type eventsRefSpec struct {
	Ref string        `yaml:"ref"`
	Lit *eventSetSpec `yaml:"lit"`
}

// handlerSpec: Ref names a previously/later declared function; Inline gives
// an anonymous handler body.
type handlerSpec struct {
	Ref    string    `yaml:"ref"`
	Inline *funcSpec `yaml:"inline"`
}

type funcSpec struct {
	Name       string      `yaml:"name"`
	Params     []paramSpec `yaml:"params"`
	ReturnType string      `yaml:"returnType"`
	Locals     []varSpec   `yaml:"locals"`
	Foreign    bool        `yaml:"foreign"`
}

type varSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type machineSpec struct {
	Name       string           `yaml:"name"`
	Spec       bool             `yaml:"spec"`
	Assume     *int             `yaml:"assume"`
	Assert     *int             `yaml:"assert"`
	Interfaces []string         `yaml:"interfaces"`
	Receives   eventsRefSpec    `yaml:"receives"`
	Sends      eventsRefSpec    `yaml:"sends"`
	Observes   eventsRefSpec    `yaml:"observes"`
	Fields     []varSpec        `yaml:"fields"`
	Methods    []funcSpec       `yaml:"methods"`
	Groups     []stateGroupSpec `yaml:"groups"`
	States     []stateSpec      `yaml:"states"`
}

type stateGroupSpec struct {
	Name   string           `yaml:"name"`
	Groups []stateGroupSpec `yaml:"groups"`
	States []stateSpec      `yaml:"states"`
}

type stateSpec struct {
	Name        string       `yaml:"name"`
	Start       bool         `yaml:"start"`
	Temperature string       `yaml:"temperature"` // "", "hot", "cold"
	Entry       *handlerSpec `yaml:"entry"`
	Exit        *handlerSpec `yaml:"exit"`
	Actions     []actionSpec `yaml:"actions"`
}

type actionSpec struct {
	Events       []string       `yaml:"events"`
	Kind         string         `yaml:"kind"` // defer, ignore, goto, push, do
	Target       *statePathSpec `yaml:"target"`
	TransitionFn *handlerSpec   `yaml:"transitionFn"`
	Fn           *handlerSpec   `yaml:"fn"`
}

type statePathSpec struct {
	Groups []string `yaml:"groups"`
	State  string   `yaml:"state"`
}

// ----------------------------------------------------------------------------
// Builders: YAML spec -> ast

func (b *builder) file(doc fileSpec) *ast.File {
	f := &ast.File{Filename: b.filename}
	for _, d := range doc.Decls {
		f.Decls = append(f.Decls, b.decl(d))
	}
	return f
}

func (b *builder) decl(d declSpec) ast.Decl {
	switch {
	case d.Event != nil:
		return b.event(*d.Event)
	case d.EventSet != nil:
		return b.eventSetLit(*d.EventSet)
	case d.Enum != nil:
		return b.enum(*d.Enum)
	case d.TypeDef != nil:
		return b.typeDef(*d.TypeDef)
	case d.Interface != nil:
		return b.iface(*d.Interface)
	case d.MachineProto != nil:
		return b.machineProto(*d.MachineProto)
	case d.FunctionProto != nil:
		return b.functionProto(*d.FunctionProto)
	case d.Machine != nil:
		return b.machine(*d.Machine)
	case d.Annotation != nil:
		return &ast.AnnotationSet{Name: d.Annotation.Name}
	}
	panic("fixture: empty declSpec entry")
}

func (b *builder) typeExpr(s string) ast.TypeExpr {
	if s == "" {
		return nil
	}
	if name, ok := stripPrefix(s, "foreign:"); ok {
		return &ast.ForeignTypeRef{Name: name}
	}
	return &ast.TypeRef{Name: s}
}

func stripPrefix(s, prefix string) (string, bool) {
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):], true
	}
	return "", false
}

func (b *builder) ident(name string) *ast.Ident {
	return &ast.Ident{Name: name}
}

func (b *builder) event(s eventSpec) *ast.EventDecl {
	return &ast.EventDecl{
		Name:    s.Name,
		Payload: b.typeExpr(s.Payload),
		Assume:  s.Assume,
		Assert:  s.Assert,
	}
}

func (b *builder) eventSetLit(s eventSetSpec) *ast.EventSetLit {
	lit := &ast.EventSetLit{Name: s.Name}
	for _, e := range s.Events {
		lit.Events = append(lit.Events, b.ident(e))
	}
	return lit
}

func (b *builder) eventsRef(s eventsRefSpec) ast.EventsRef {
	switch {
	case s.Ref != "":
		return b.ident(s.Ref)
	case s.Lit != nil:
		return b.eventSetLit(*s.Lit)
	}
	return nil
}

func (b *builder) enum(s enumSpec) *ast.EnumDecl {
	d := &ast.EnumDecl{Name: s.Name}
	for _, e := range s.Elems {
		d.Elems = append(d.Elems, &ast.EnumElemDecl{Name: e.Name, Value: e.Value})
	}
	return d
}

func (b *builder) typeDef(s typeDefSpec) *ast.TypeDefDecl {
	return &ast.TypeDefDecl{Name: s.Name, RHS: b.typeExpr(s.RHS)}
}

func (b *builder) iface(s interfaceSpec) *ast.InterfaceDecl {
	return &ast.InterfaceDecl{
		Name:    s.Name,
		Payload: b.typeExpr(s.Payload),
		Events:  b.eventsRef(s.Events),
	}
}

func (b *builder) machineProto(s machineProtoSpec) *ast.MachineProtoDecl {
	return &ast.MachineProtoDecl{Name: s.Name, Payload: b.typeExpr(s.Payload)}
}

func (b *builder) params(ps []paramSpec) []*ast.ParamDecl {
	var out []*ast.ParamDecl
	for _, p := range ps {
		out = append(out, &ast.ParamDecl{Name: p.Name, Type: b.typeExpr(p.Type)})
	}
	return out
}

func (b *builder) functionProto(s functionProtoSpec) *ast.FunctionProtoDecl {
	d := &ast.FunctionProtoDecl{
		Name:       s.Name,
		Params:     b.params(s.Params),
		ReturnType: b.typeExpr(s.ReturnType),
	}
	for _, c := range s.Creates {
		d.Creates = append(d.Creates, b.ident(c))
	}
	return d
}

func (b *builder) locals(vs []varSpec) []*ast.VariableDecl {
	var out []*ast.VariableDecl
	for _, v := range vs {
		out = append(out, &ast.VariableDecl{Name: v.Name, Type: b.typeExpr(v.Type)})
	}
	return out
}

func (b *builder) function(s funcSpec) *ast.FunctionDecl {
	return &ast.FunctionDecl{
		Name:       s.Name,
		Params:     b.params(s.Params),
		ReturnType: b.typeExpr(s.ReturnType),
		Locals:     b.locals(s.Locals),
		Foreign:    s.Foreign,
	}
}

func (b *builder) handler(s *handlerSpec) ast.Handler {
	if s == nil {
		return nil
	}
	if s.Ref != "" {
		return b.ident(s.Ref)
	}
	if s.Inline != nil {
		return b.function(*s.Inline)
	}
	return nil
}

func (b *builder) machine(s machineSpec) *ast.MachineDecl {
	d := &ast.MachineDecl{
		Name:     s.Name,
		IsSpec:   s.Spec,
		Assume:   s.Assume,
		Assert:   s.Assert,
		Receives: b.eventsRef(s.Receives),
		Sends:    b.eventsRef(s.Sends),
		Observes: b.eventsRef(s.Observes),
		Fields:   b.locals(s.Fields),
	}
	for _, i := range s.Interfaces {
		d.Interfaces = append(d.Interfaces, b.ident(i))
	}
	for _, m := range s.Methods {
		d.Methods = append(d.Methods, b.function(m))
	}
	for _, g := range s.Groups {
		d.Groups = append(d.Groups, b.stateGroup(g))
	}
	for _, st := range s.States {
		d.States = append(d.States, b.state(st))
	}
	return d
}

func (b *builder) stateGroup(s stateGroupSpec) *ast.StateGroupDecl {
	d := &ast.StateGroupDecl{Name: s.Name}
	for _, g := range s.Groups {
		d.Groups = append(d.Groups, b.stateGroup(g))
	}
	for _, st := range s.States {
		d.States = append(d.States, b.state(st))
	}
	return d
}

func (b *builder) state(s stateSpec) *ast.StateDecl {
	d := &ast.StateDecl{
		Name:        s.Name,
		Temperature: temperature(s.Temperature),
		IsStart:     s.Start,
		Entry:       b.handler(s.Entry),
		Exit:        b.handler(s.Exit),
	}
	for _, a := range s.Actions {
		d.Actions = append(d.Actions, b.action(a))
	}
	return d
}

func temperature(s string) ast.Temperature {
	switch s {
	case "hot":
		return ast.TempHot
	case "cold":
		return ast.TempCold
	default:
		return ast.TempWarm
	}
}

func (b *builder) action(s actionSpec) *ast.ActionDecl {
	d := &ast.ActionDecl{Kind: actionKind(s.Kind)}
	for _, e := range s.Events {
		d.Events = append(d.Events, b.ident(e))
	}
	if s.Target != nil {
		d.Target = &ast.StatePath{Groups: s.Target.Groups, State: s.Target.State}
	}
	d.TransitionFn = b.handler(s.TransitionFn)
	d.Fn = b.handler(s.Fn)
	return d
}

func actionKind(s string) ast.ActionKind {
	switch s {
	case "ignore":
		return ast.ActionIgnore
	case "goto":
		return ast.ActionGoto
	case "push":
		return ast.ActionPush
	case "do":
		return ast.ActionDo
	default:
		return ast.ActionDefer
	}
}
