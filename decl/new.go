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

import "smlang.org/go/ast"

// New creates an empty (stub) Declaration of the given kind, named name,
// with a back-reference to its defining syntax node n. Scope.Put is the
// only caller: this is the "creates the kind-specific declaration" half of
// insertion, the other half being the scope dictionary update.
func New(k Kind, name string, n ast.Node) Declaration {
	switch k {
	case KindEvent:
		return NewEvent(name, n)
	case KindEventSet:
		return NewEventSet(name, n)
	case KindEnum:
		return NewEnum(name, n)
	case KindEnumElem:
		return NewEnumElem(name, n)
	case KindTypeDef:
		return NewTypeDef(name, n)
	case KindInterface:
		return NewInterface(name, n)
	case KindMachine:
		return NewMachine(name, n, false)
	case KindSpecMachine:
		return NewMachine(name, n, true)
	case KindMachineProto:
		return NewMachineProto(name, n)
	case KindStateGroup:
		return NewStateGroup(name, n)
	case KindState:
		return NewState(name, n)
	case KindFunction:
		return NewFunction(name, n)
	case KindFunctionProto:
		return NewFunctionProto(name, n)
	case KindVariable:
		return NewVariable(name, n, false)
	default:
		return nil
	}
}
