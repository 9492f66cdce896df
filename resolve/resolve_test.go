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
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	qt "github.com/go-quicktest/qt"

	"smlang.org/go/ast"
	"smlang.org/go/decl"
	"smlang.org/go/errors"
	"smlang.org/go/internal/fixture"
	"smlang.org/go/types"
)

func parseOne(t *testing.T, src string) []*ast.File {
	t.Helper()
	f, err := fixture.Parse("t.yaml", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	return []*ast.File{f}
}

func TestMinimalMachine(t *testing.T) {
	files := parseOne(t, `
decls:
  - event: {name: E}
  - machine:
      name: M
      states:
        - name: S
          start: true
          entry: {inline: {name: ""}}
`)
	g, errs := AnalyzeCompilationUnit(files, types.DefaultResolver{})
	qt.Assert(t, qt.IsNil(errs))

	e := g.Top.Get(decl.KindEvent, "E").(*decl.Event)
	qt.Assert(t, qt.IsTrue(e.Payload.IsNull()))

	m := g.Top.Get(decl.KindMachine, "M").(*decl.Machine)
	qt.Assert(t, qt.IsTrue(m.Payload.IsNull()))
	qt.Assert(t, qt.IsNotNil(m.StartState))
	qt.Assert(t, qt.Equals(m.StartState.Name(), "S"))
	qt.Assert(t, qt.HasLen(m.Fields, 0))
	qt.Assert(t, qt.HasLen(m.Methods, 0)) // anonymous entry never joins Methods

	s := m.StartState
	qt.Assert(t, qt.Equals(s.Temperature, decl.Warm))
	qt.Assert(t, qt.IsTrue(s.IsStart))
	qt.Assert(t, qt.IsNotNil(s.Entry))
}

func TestStartStateUniqueness(t *testing.T) {
	files := parseOne(t, `
decls:
  - machine:
      name: M
      states:
        - {name: A, start: true}
        - {name: B, start: true}
`)
	_, errs := AnalyzeCompilationUnit(files, types.DefaultResolver{})
	qt.Assert(t, qt.IsNotNil(errs))

	list, ok := errs.(errors.List)
	qt.Assert(t, qt.IsTrue(ok))
	var found *errors.DuplicateStartStateError
	for _, e := range list {
		if d, ok := e.(*errors.DuplicateStartStateError); ok {
			found = d
		}
	}
	qt.Assert(t, qt.IsNotNil(found))
	qt.Assert(t, qt.Equals(found.Machine.Name(), "M"))
	qt.Assert(t, qt.Equals(found.Conflicting.Name(), "B"))
}

func TestQualifiedTransition(t *testing.T) {
	files := parseOne(t, `
decls:
  - event: {name: E}
  - machine:
      name: M
      states:
        - name: A
          start: true
          actions:
            - {events: [E], kind: goto, target: {groups: [G1, G2], state: T}}
      groups:
        - name: G1
          groups:
            - name: G2
              states:
                - {name: T}
`)
	g, errs := AnalyzeCompilationUnit(files, types.DefaultResolver{})
	qt.Assert(t, qt.IsNil(errs))

	m := g.Top.Get(decl.KindMachine, "M").(*decl.Machine)
	a := m.StartState
	e := g.Top.Get(decl.KindEvent, "E").(*decl.Event)

	action := a.Actions[e]
	qt.Assert(t, qt.IsNotNil(action))
	qt.Assert(t, qt.Equals(action.Kind, decl.ActionGoto))
	qt.Assert(t, qt.IsNotNil(action.Target))
	qt.Assert(t, qt.Equals(action.Target.Name(), "T"))
}

func TestNamespaceConflictAcrossKinds(t *testing.T) {
	files := parseOne(t, `
decls:
  - typedef: {name: X, rhs: int}
  - machine:
      name: X
      states:
        - {name: S, start: true}
`)
	_, errs := AnalyzeCompilationUnit(files, types.DefaultResolver{})
	qt.Assert(t, qt.IsNotNil(errs))

	list, ok := errs.(errors.List)
	qt.Assert(t, qt.IsTrue(ok))
	var found *errors.DuplicateDeclarationError
	for _, e := range list {
		if d, ok := e.(*errors.DuplicateDeclarationError); ok {
			found = d
		}
	}
	qt.Assert(t, qt.IsNotNil(found))
	qt.Assert(t, qt.Equals(found.New.Kind(), decl.KindMachine))
	qt.Assert(t, qt.Equals(found.Existing.Kind(), decl.KindTypeDef))
}

func TestEventEnumElementConflict(t *testing.T) {
	files := parseOne(t, `
decls:
  - enum: {name: C, elems: [{name: A}]}
  - event: {name: A}
`)
	_, errs := AnalyzeCompilationUnit(files, types.DefaultResolver{})
	qt.Assert(t, qt.IsNotNil(errs))

	list, ok := errs.(errors.List)
	qt.Assert(t, qt.IsTrue(ok))
	var found *errors.DuplicateDeclarationError
	for _, e := range list {
		if d, ok := e.(*errors.DuplicateDeclarationError); ok {
			found = d
		}
	}
	qt.Assert(t, qt.IsNotNil(found))
	qt.Assert(t, qt.Equals(found.New.Kind(), decl.KindEvent))
	qt.Assert(t, qt.Equals(found.Existing.Kind(), decl.KindEnumElem))
}

func TestNumberedEnumWithGaps(t *testing.T) {
	files := parseOne(t, `
decls:
  - enum:
      name: E
      elems:
        - {name: X, value: 3}
        - {name: Y}
        - {name: Z, value: 10}
`)
	g, errs := AnalyzeCompilationUnit(files, types.DefaultResolver{})
	qt.Assert(t, qt.IsNil(errs))

	en := g.Top.Get(decl.KindEnum, "E").(*decl.Enum)
	byName := map[string]*decl.EnumElem{}
	for _, el := range en.Elems {
		byName[el.Name()] = el
	}
	qt.Assert(t, qt.Equals(byName["X"].Value, 3))
	qt.Assert(t, qt.Equals(byName["Y"].Value, 1))
	qt.Assert(t, qt.Equals(byName["Z"].Value, 10))
}

func TestZeroProgramUnitsLeavesOnlyBuiltinEvents(t *testing.T) {
	g, errs := AnalyzeCompilationUnit(nil, types.DefaultResolver{})
	qt.Assert(t, qt.IsNil(errs))

	all := g.Top.AllDecls()
	qt.Assert(t, qt.HasLen(all, 2))
	names := map[string]bool{}
	for _, d := range all {
		qt.Assert(t, qt.Equals(d.Kind(), decl.KindEvent))
		names[d.Name()] = true
	}
	qt.Assert(t, qt.IsTrue(names["halt"]))
	qt.Assert(t, qt.IsTrue(names["null"]))
}

func TestGroupPathOfLengthZeroResolvesAgainstMachineScope(t *testing.T) {
	files := parseOne(t, `
decls:
  - event: {name: E}
  - machine:
      name: M
      states:
        - name: A
          start: true
          actions:
            - {events: [E], kind: goto, target: {state: B}}
        - {name: B}
`)
	g, errs := AnalyzeCompilationUnit(files, types.DefaultResolver{})
	qt.Assert(t, qt.IsNil(errs))

	m := g.Top.Get(decl.KindMachine, "M").(*decl.Machine)
	e := g.Top.Get(decl.KindEvent, "E").(*decl.Event)
	action := m.StartState.Actions[e]
	qt.Assert(t, qt.IsNotNil(action))
	qt.Assert(t, qt.Equals(action.Target.Name(), "B"))
}

func TestNodeToDeclIsBidirectionalOverEveryDecl(t *testing.T) {
	files := parseOne(t, `
decls:
  - event: {name: E}
  - enum: {name: C, elems: [{name: A}]}
  - machine:
      name: M
      states:
        - {name: S, start: true}
`)
	g, errs := AnalyzeCompilationUnit(files, types.DefaultResolver{})
	qt.Assert(t, qt.IsNil(errs))

	for _, d := range g.FileDecls[files[0]] {
		got, ok := g.NodeToDecl[d.Node()]
		qt.Assert(t, qt.IsTrue(ok))
		qt.Assert(t, qt.Equals(got, d))
	}
}

func TestAnalysisIsIdempotentAcrossRuns(t *testing.T) {
	src := `
decls:
  - event: {name: E}
  - machine:
      name: M
      states:
        - name: S
          start: true
`
	g1, errs1 := AnalyzeCompilationUnit(parseOne(t, src), types.DefaultResolver{})
	qt.Assert(t, qt.IsNil(errs1))
	g2, errs2 := AnalyzeCompilationUnit(parseOne(t, src), types.DefaultResolver{})
	qt.Assert(t, qt.IsNil(errs2))

	m1 := g1.Top.Get(decl.KindMachine, "M").(*decl.Machine)
	m2 := g2.Top.Get(decl.KindMachine, "M").(*decl.Machine)
	qt.Assert(t, qt.Equals(m1.Name(), m2.Name()))
	qt.Assert(t, qt.Equals(m1.StartState.Name(), m2.StartState.Name()))
	qt.Assert(t, qt.Equals(m1.Payload, m2.Payload))
}

// graphShape renders a deterministic, order-sensitive structural summary
// of every top-level declaration in f, descending one level into a
// Machine's states and fields. Two analyses of the same source should
// produce byte-identical shapes.
func graphShape(g *Graph, f *ast.File) []string {
	var lines []string
	for _, d := range g.FileDecls[f] {
		lines = append(lines, fmt.Sprintf("%s %s", d.Kind(), d.Name()))
		m, ok := d.(*decl.Machine)
		if !ok {
			continue
		}
		if m.StartState != nil {
			lines = append(lines, fmt.Sprintf("  start=%s", m.StartState.Name()))
		}
		for _, s := range m.States {
			lines = append(lines, fmt.Sprintf("  state %s temp=%v start=%v", s.Name(), s.Temperature, s.IsStart))
		}
		for _, field := range m.Fields {
			lines = append(lines, fmt.Sprintf("  field %s", field.Name()))
		}
	}
	return lines
}

func TestDeterminism(t *testing.T) {
	src := `
decls:
  - event: {name: opened}
  - event: {name: closed}
  - eventset: {name: ES, events: [opened, closed]}
  - machine:
      name: Door
      receives: {ref: ES}
      fields:
        - {name: count, type: int}
      states:
        - name: Open
          start: true
          temperature: hot
          actions:
            - {events: [closed], kind: goto, target: {state: Closed}}
        - name: Closed
`
	g1, errs1 := AnalyzeCompilationUnit(parseOne(t, src), types.DefaultResolver{})
	qt.Assert(t, qt.IsNil(errs1))
	g2, errs2 := AnalyzeCompilationUnit(parseOne(t, src), types.DefaultResolver{})
	qt.Assert(t, qt.IsNil(errs2))

	want := graphShape(g1, firstFile(g1))
	got := graphShape(g2, firstFile(g2))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("analysis is not deterministic (-run1 +run2):\n%s", diff)
	}
}

// firstFile returns g's sole *ast.File key; both analyses in
// TestDeterminism parse one file each, so there is never more than one.
func firstFile(g *Graph) *ast.File {
	for f := range g.FileDecls {
		return f
	}
	return nil
}

func TestSpecMachineObservesIsFreshAnonymousSet(t *testing.T) {
	files := parseOne(t, `
decls:
  - event: {name: E}
  - machine:
      name: MSpec
      spec: true
      observes: {lit: {events: [E]}}
      states:
        - {name: S, start: true}
`)
	g, errs := AnalyzeCompilationUnit(files, types.DefaultResolver{})
	qt.Assert(t, qt.IsNil(errs))

	m := g.Top.Get(decl.KindSpecMachine, "MSpec").(*decl.Machine)
	qt.Assert(t, qt.IsNotNil(m.Observes))
	qt.Assert(t, qt.Equals(m.Observes.Name(), "MSpec$eventset"))
	qt.Assert(t, qt.IsTrue(m.Observes.Has("E")))
}

func TestSpecMachineObservesLiteralReportsMissingEventOnce(t *testing.T) {
	files := parseOne(t, `
decls:
  - machine:
      name: MSpec
      spec: true
      observes: {lit: {events: [Ghost]}}
      states:
        - {name: S, start: true}
`)
	_, errs := AnalyzeCompilationUnit(files, types.DefaultResolver{})
	qt.Assert(t, qt.IsNotNil(errs))

	list, ok := errs.(errors.List)
	qt.Assert(t, qt.IsTrue(ok))
	var missing []*errors.MissingEventError
	for _, e := range list {
		if me, ok := e.(*errors.MissingEventError); ok {
			missing = append(missing, me)
		}
	}
	qt.Assert(t, qt.HasLen(missing, 1))
	qt.Assert(t, qt.Equals(missing[0].Name, "Ghost"))
}
