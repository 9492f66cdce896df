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
	"smlang.org/go/errors"
	"smlang.org/go/types"
)

// AnalyzeCompilationUnit is the package's sole entry point: given
// already-parsed syntax trees and a type Resolver collaborator, it runs the
// stub pass, then the binding pass, and returns the resulting Graph.
//
// Files are processed in the order given; the built-in events "halt" and
// "null" are entered into the top-level scope before any file is visited.
//
// If the stub pass produces any error, the binding pass never runs — a
// tree with unresolved declaration identity cannot be safely bound — and
// the stub errors are returned alone, while still letting each pass
// collect every sibling error it finds for diagnostics.
func AnalyzeCompilationUnit(files []*ast.File, tr types.Resolver) (*Graph, errors.Error) {
	g := newGraph()
	addBuiltinEvents(g)

	st := newStubber(g)
	if errs := st.run(files); len(errs) > 0 {
		errs.Sort()
		return nil, errs
	}

	bd := newBinder(g, g.Table, tr)
	if errs := bd.run(files); len(errs) > 0 {
		errs.Sort()
		return nil, errs
	}

	return g, nil
}
