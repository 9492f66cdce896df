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

package types

import (
	"fmt"

	"smlang.org/go/ast"
)

// primitives is the fixed set of built-in primitive type names the default
// Resolver recognizes without a scope lookup.
var primitives = map[string]bool{
	"int": true, "uint": true, "float": true, "bool": true,
	"string": true, "bytes": true, "any": true,
}

// DefaultResolver is a minimal, reference type Resolver: a *ast.TypeRef
// resolves to a primitive if its name is one of the built-ins, else to a
// Named type if the scope has a TypeDef/Enum/Interface/Machine/MachineProto
// of that name, else it is an unresolved reference. A *ast.ForeignTypeRef
// always resolves to a Foreign type, which the binder rejects with
// NotImplemented — this package never rejects it itself, since recognizing
// foreign types is this package's job and rejecting them is the binder's.
type DefaultResolver struct{}

// Resolve implements Resolver.
func (DefaultResolver) Resolve(scope Scope, expr ast.TypeExpr) (Type, error) {
	switch x := expr.(type) {
	case nil:
		return NullType, nil
	case *ast.TypeRef:
		if primitives[x.Name] {
			return Type{Kind: Primitive, Name: x.Name}, nil
		}
		if t, ok := scope.LookupType(x.Name); ok {
			return t, nil
		}
		return Type{}, fmt.Errorf("undeclared type %q", x.Name)
	case *ast.ForeignTypeRef:
		return Type{Kind: Foreign, Name: x.Name}, nil
	default:
		return Type{}, fmt.Errorf("unsupported type expression %T", expr)
	}
}

var _ Resolver = DefaultResolver{}
