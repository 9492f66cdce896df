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

// Command smldecl is a small demonstration CLI for the resolver core: it
// loads one or more YAML fixture files (standing in for real source, see
// internal/fixture), runs AnalyzeCompilationUnit, and either reports errors
// or dumps the resulting declaration graph.
package main

import (
	"fmt"
	"os"

	"smlang.org/go/cmd/smldecl/cmd"
)

func main() {
	if err := cmd.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
