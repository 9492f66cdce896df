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

package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"smlang.org/go/errors"
	"smlang.org/go/resolve"
	"smlang.org/go/types"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file.yaml>...",
		Short: "analyze fixture files and pretty-print every declaration found",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDump,
	}
}

func runDump(cmd *cobra.Command, args []string) error {
	files, err := loadFixtures(args)
	if err != nil {
		return err
	}

	g, aerr := resolve.AnalyzeCompilationUnit(files, types.DefaultResolver{})
	if aerr != nil {
		errors.Print(os.Stdout, aerr)
		return fmt.Errorf("analysis failed")
	}

	for _, f := range files {
		for _, d := range g.FileDecls[f] {
			fmt.Printf("%s %q: %# v\n", d.Kind(), d.Name(), pretty.Formatter(d))
		}
	}
	return nil
}
