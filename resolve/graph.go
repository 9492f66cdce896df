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

// Package resolve drives the two-pass declaration resolver: the stub pass
// creates declarations and scopes; the binding pass
// fills their attributes and resolves every reference. AnalyzeCompilationUnit
// is the package's sole entry point.
package resolve

import (
	"smlang.org/go/ast"
	"smlang.org/go/decl"
	"smlang.org/go/scope"
)

// Graph is the durable artifact of a successful analysis: the top-level
// scope, the bidirectional Node↔Declaration map, and the per-file
// declaration lists.
type Graph struct {
	Table *scope.Table
	Top   *scope.Scope

	// NodeToDecl is total over every declaration-producing node and
	// injective: nodeToDecl(d.sourceNode) == d for every d it produced.
	NodeToDecl map[ast.Node]decl.Declaration

	// NodeToScope records, for every scope-introducing node (the program
	// root is implicit in Top; each Machine/SpecMachine, StateGroup,
	// Function and anonymous handler), the handle of the scope it
	// introduces. The binding pass reconstructs its scope stack from this
	// map exactly as the stub pass built it.
	NodeToScope map[ast.Node]scope.Handle

	// FileDecls is "programDeclarations": every declaration produced while
	// processing a given file, in the order produced.
	FileDecls map[*ast.File][]decl.Declaration
}

// DeclNode returns d's originating syntax node — the implicit inverse of
// NodeToDecl.
func (g *Graph) DeclNode(d decl.Declaration) ast.Node {
	return d.Node()
}

func newGraph() *Graph {
	table := scope.NewTable()
	top := table.NewScope(scope.NoHandle)
	return &Graph{
		Table:       table,
		Top:         table.Scope(top),
		NodeToDecl:  map[ast.Node]decl.Declaration{},
		NodeToScope: map[ast.Node]scope.Handle{},
		FileDecls:   map[*ast.File][]decl.Declaration{},
	}
}
