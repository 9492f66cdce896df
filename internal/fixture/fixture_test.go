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

package fixture

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	qt "github.com/go-quicktest/qt"

	"smlang.org/go/ast"
)

func TestParseBuildsEventDecl(t *testing.T) {
	f, err := Parse("a.yaml", []byte(`
decls:
  - event: {name: opened, payload: int, assume: 1}
`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(f.Decls, 1))

	e, ok := f.Decls[0].(*ast.EventDecl)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(e.Name, "opened"))
	qt.Assert(t, qt.DeepEquals(e.Payload, ast.TypeExpr(&ast.TypeRef{Name: "int"})))
	qt.Assert(t, qt.IsNotNil(e.Assume))
	qt.Assert(t, qt.Equals(*e.Assume, 1))
	qt.Assert(t, qt.IsNil(e.Assert))
}

func TestParseBuildsForeignTypeRef(t *testing.T) {
	f, err := Parse("a.yaml", []byte(`
decls:
  - typedef: {name: X, rhs: "foreign:xml.Node"}
`))
	qt.Assert(t, qt.IsNil(err))

	td := f.Decls[0].(*ast.TypeDefDecl)
	ref, ok := td.RHS.(*ast.ForeignTypeRef)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ref.Name, "xml.Node"))
}

func TestParseBuildsNestedMachine(t *testing.T) {
	f, err := Parse("a.yaml", []byte(`
decls:
  - machine:
      name: Door
      spec: false
      fields:
        - {name: count, type: int}
      states:
        - name: Open
          start: true
          temperature: hot
          entry: {inline: {name: "", returnType: int}}
          actions:
            - {events: [close], kind: goto, target: {state: Closed}}
        - name: Closed
`))
	qt.Assert(t, qt.IsNil(err))

	m := f.Decls[0].(*ast.MachineDecl)
	qt.Assert(t, qt.Equals(m.Name, "Door"))
	qt.Assert(t, qt.HasLen(m.Fields, 1))
	qt.Assert(t, qt.Equals(m.Fields[0].Name, "count"))
	qt.Assert(t, qt.HasLen(m.States, 2))

	open := m.States[0]
	qt.Assert(t, qt.Equals(open.Temperature, ast.TempHot))
	qt.Assert(t, qt.IsTrue(open.IsStart))

	inline, ok := open.Entry.(*ast.FunctionDecl)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(inline.Name, ""))

	qt.Assert(t, qt.HasLen(open.Actions, 1))
	action := open.Actions[0]
	qt.Assert(t, qt.Equals(action.Kind, ast.ActionGoto))
	qt.Assert(t, qt.Equals(action.Target.State, "Closed"))
}

func TestParseAllPreservesOrder(t *testing.T) {
	srcs := map[string][]byte{
		"b.yaml": []byte("decls:\n  - event: {name: second}\n"),
		"a.yaml": []byte("decls:\n  - event: {name: first}\n"),
	}
	files, err := ParseAll(srcs, []string{"a.yaml", "b.yaml"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(files, 2))

	first := files[0].Decls[0].(*ast.EventDecl)
	second := files[1].Decls[0].(*ast.EventDecl)
	qt.Assert(t, qt.Equals(first.Name, "first"))
	qt.Assert(t, qt.Equals(second.Name, "second"))

	if diff := cmp.Diff("a.yaml", files[0].Filename); diff != "" {
		t.Fatalf("unexpected filename (-want +got):\n%s", diff)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse("bad.yaml", []byte("decls: [this is not a mapping"))
	qt.Assert(t, qt.IsNotNil(err))
}
