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
	"smlang.org/go/ast"
	"smlang.org/go/decl"
	"smlang.org/go/errors"
	"smlang.org/go/scope"
)

// resolveStatePath resolves a group-qualified state name, g1.g2.state.
// Lookup is strictly local at each step (Scope.Get, never Scope.Lookup) —
// group paths are absolute within the machine, never reaching an ancestor
// machine's scope.
func resolveStatePath(g *Graph, table *scope.Table, machineScope *scope.Scope, p *ast.StatePath) (*decl.State, errors.Error) {
	cur := machineScope
	for _, name := range p.Groups {
		d := cur.Get(decl.KindStateGroup, name)
		if d == nil {
			return nil, errors.MissingDeclaration(name, p)
		}
		h, ok := g.NodeToScope[d.Node()]
		if !ok {
			return nil, errors.MissingDeclaration(name, p)
		}
		cur = table.Scope(h)
	}
	d := cur.Get(decl.KindState, p.State)
	if d == nil {
		return nil, errors.MissingDeclaration(p.State, p)
	}
	return d.(*decl.State), nil
}
