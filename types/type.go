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

// Package types holds the resolved type representation the binder attaches
// to events, interfaces, machines, functions and variables. Expression-level
// type checking inside function bodies is out of scope; this package only
// carries the result of resolving a type subtree to a named or primitive
// type.
package types

import (
	"fmt"

	"smlang.org/go/ast"
)

// Kind distinguishes the handful of type shapes the resolver needs to
// reason about. It never needs to infer a type the user did not write.
type Kind int

const (
	// Null is the default payload type for declarations that carry none.
	Null Kind = iota
	Primitive
	Named
	Foreign
)

// Type is a resolved PLanguageType: either the Null default, a primitive
// (int, string, bool, ...), a reference to a user TypeDef/Enum/Interface/
// Machine/MachineProto declaration, or a foreign type (recognized but
// rejected, see Resolver).
type Type struct {
	Kind Kind
	Name string // primitive spelling, or the referenced declaration's name
}

// NullType is the canonical zero-payload type.
var NullType = Type{Kind: Null}

func (t Type) String() string {
	switch t.Kind {
	case Null:
		return "null"
	case Primitive:
		return t.Name
	case Named:
		return t.Name
	case Foreign:
		return fmt.Sprintf("foreign<%s>", t.Name)
	default:
		return "?"
	}
}

// IsNull reports whether t is the default Null payload type.
func (t Type) IsNull() bool { return t.Kind == Null }

// Scope is the minimal surface the Resolver needs from a lexical scope to
// resolve a named type: a local-and-ancestor lookup by name, kind-agnostic
// from the resolver's point of view (the resolver only cares that *some*
// type-shaped declaration exists under that name; scope.Scope satisfies
// this via its own kind-partitioned lookup).
type Scope interface {
	// LookupType resolves name to a Type if a TypeDef, Enum, Interface,
	// Machine or MachineProto of that name is visible from this scope.
	LookupType(name string) (Type, bool)
}

// Resolver resolves a type subtree in the context of a scope. It is supplied
// by the caller; the core only ever calls it with the scope active at the
// point of reference.
type Resolver interface {
	Resolve(scope Scope, expr ast.TypeExpr) (Type, error)
}
