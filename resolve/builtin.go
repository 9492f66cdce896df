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

import "smlang.org/go/decl"

// builtinEventNames are the only two events permitted to have no
// originating syntax node. They are entered into the top-level
// scope before any file is visited.
var builtinEventNames = []string{"halt", "null"}

func addBuiltinEvents(g *Graph) {
	for _, name := range builtinEventNames {
		// nil node: they have no originating syntax node, so they are
		// deliberately absent from NodeToDecl (that map is total only over
		// declaration-producing *nodes*).
		g.Top.Put(decl.KindEvent, name, nil)
	}
}
