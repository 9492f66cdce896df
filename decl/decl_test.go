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

package decl

import (
	"testing"

	qt "github.com/go-quicktest/qt"

	"smlang.org/go/types"
)

var stubIntType = types.Type{Kind: types.Primitive, Name: "int"}

func TestEventSetIterationIsSortedByName(t *testing.T) {
	s := NewEventSet("Doors", nil)
	s.Add(NewEvent("close", nil))
	s.Add(NewEvent("open", nil))
	s.Add(NewEvent("ajar", nil))

	var names []string
	for _, e := range s.Events() {
		names = append(names, e.Name())
	}
	qt.Assert(t, qt.DeepEquals(names, []string{"ajar", "close", "open"}))
}

func TestEventSetAddIsIdempotentByName(t *testing.T) {
	s := NewEventSet("", nil)
	first := NewEvent("open", nil)
	second := NewEvent("open", nil)

	s.Add(first)
	s.Add(second)

	qt.Assert(t, qt.Equals(s.Len(), 1))
	qt.Assert(t, qt.Equals(s.Events()[0], second))
}

func TestAddElemReassignsExclusiveParent(t *testing.T) {
	red := NewEnum("Red", nil)
	blue := NewEnum("Blue", nil)
	elem := NewEnumElem("X", nil)

	red.AddElem(elem)
	qt.Assert(t, qt.Equals(elem.Parent, red))
	qt.Assert(t, qt.HasLen(red.Elems, 1))

	blue.AddElem(elem)
	qt.Assert(t, qt.Equals(elem.Parent, blue))
	qt.Assert(t, qt.HasLen(red.Elems, 0))
	qt.Assert(t, qt.HasLen(blue.Elems, 1))
}

func TestNewDispatchesOnKind(t *testing.T) {
	d := New(KindEvent, "open", nil)
	_, ok := d.(*Event)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(d.Kind(), KindEvent))
	qt.Assert(t, qt.Equals(d.Name(), "open"))
}

func TestNewMachinePicksKindFromIsSpec(t *testing.T) {
	m := NewMachine("Door", nil, false)
	qt.Assert(t, qt.Equals(m.Kind(), KindMachine))

	sm := NewMachine("DoorSpec", nil, true)
	qt.Assert(t, qt.Equals(sm.Kind(), KindSpecMachine))
	qt.Assert(t, qt.IsTrue(sm.IsSpec))
}

func TestFormalParameterAndVariableShareTypedName(t *testing.T) {
	v := NewVariable("count", nil, true)
	v.Type = stubIntType
	fp := FormalParameter{Name: "count", Type: stubIntType}

	var items []ITypedName = []ITypedName{v, fp}
	for _, it := range items {
		name, typ := it.TypedName()
		qt.Assert(t, qt.Equals(name, "count"))
		qt.Assert(t, qt.Equals(typ, stubIntType))
	}
}

func TestNewEventDefaultsAssumeAssertAbsent(t *testing.T) {
	e := NewEvent("open", nil)
	qt.Assert(t, qt.Equals(e.Assume, -1))
	qt.Assert(t, qt.Equals(e.Assert, -1))
	qt.Assert(t, qt.IsTrue(e.Payload.IsNull()))
}

func TestKindStringCoversAllKinds(t *testing.T) {
	for k := KindEvent; k <= KindVariable; k++ {
		qt.Assert(t, qt.Not(qt.Equals(k.String(), "?")))
	}
}
