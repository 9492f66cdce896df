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

// Package cmd wires the smldecl subcommands onto a cobra.Command tree.
package cmd

import (
	"github.com/spf13/cobra"
)

// Root builds the smldecl command tree.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "smldecl",
		Short: "inspect the declaration graph of a state-machine source file",
	}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newDumpCmd())
	root.PersistentFlags().Bool("validate", false, "run the debug invariant validator after a successful analysis")
	return root
}
