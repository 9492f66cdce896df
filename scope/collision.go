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

package scope

import "smlang.org/go/decl"

// collisions is the namespace collision matrix: which kinds already
// occupying a name conflict with a newly inserted declaration of a given
// kind. It is indexed by the kind being *inserted*, not by the kind
// already present — the asymmetry (e.g. SpecMachine conflicts with
// Machine but Machine does not list SpecMachine) is intentional; do not
// "fix" it by making the table symmetric.
var collisions = map[decl.Kind][]decl.Kind{
	decl.KindTypeDef: {
		decl.KindTypeDef, decl.KindEnum, decl.KindInterface,
		decl.KindMachine, decl.KindMachineProto,
	},
	decl.KindEnum: {
		decl.KindEnum, decl.KindInterface, decl.KindTypeDef,
		decl.KindMachine, decl.KindMachineProto,
	},
	decl.KindEvent: {
		decl.KindEvent, decl.KindEnumElem,
	},
	decl.KindEventSet: {
		decl.KindEventSet,
	},
	decl.KindInterface: {
		decl.KindInterface, decl.KindEnum, decl.KindTypeDef,
		decl.KindMachine, decl.KindMachineProto,
	},
	decl.KindMachine: {
		decl.KindMachine, decl.KindInterface, decl.KindEnum, decl.KindTypeDef,
	},
	decl.KindMachineProto: {
		decl.KindMachineProto, decl.KindInterface, decl.KindEnum, decl.KindTypeDef,
	},
	decl.KindSpecMachine: {
		decl.KindMachine, decl.KindInterface, decl.KindEnum, decl.KindTypeDef,
	},
	decl.KindFunction: {
		decl.KindFunction,
	},
	decl.KindFunctionProto: {
		decl.KindFunctionProto,
	},
	decl.KindStateGroup: {
		decl.KindStateGroup,
	},
	decl.KindEnumElem: {
		decl.KindEnumElem, decl.KindEvent,
	},
	decl.KindVariable: {
		decl.KindVariable,
	},
	decl.KindState: {
		decl.KindState,
	},
}

// conflictsWith reports whether inserting a declaration of kind k should
// check the local dictionary of kind other for a name collision.
func conflictsWith(k, other decl.Kind) bool {
	for _, c := range collisions[k] {
		if c == other {
			return true
		}
	}
	return false
}

// kindsToCheck returns every kind whose local dictionary must be probed
// when inserting a declaration of kind k, including k itself if listed.
func kindsToCheck(k decl.Kind) []decl.Kind {
	return collisions[k]
}
