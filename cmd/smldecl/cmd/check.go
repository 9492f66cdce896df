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

	"github.com/spf13/cobra"

	"smlang.org/go/ast"
	"smlang.org/go/errors"
	"smlang.org/go/internal/fixture"
	"smlang.org/go/resolve"
	"smlang.org/go/types"
	"smlang.org/go/validate"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.yaml>...",
		Short: "analyze one or more fixture files and report resolver errors",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	files, err := loadFixtures(args)
	if err != nil {
		return err
	}

	g, aerr := resolve.AnalyzeCompilationUnit(files, types.DefaultResolver{})
	if aerr != nil {
		errors.Print(os.Stdout, aerr)
		return fmt.Errorf("analysis failed")
	}

	fmt.Fprintf(os.Stdout, "ok: %d file(s) analyzed\n", len(files))

	if doValidate, _ := cmd.Flags().GetBool("validate"); doValidate {
		if fails := validate.Graph(g); len(fails) > 0 {
			for _, f := range fails {
				fmt.Fprintln(os.Stdout, f)
			}
			return fmt.Errorf("validator found %d invariant violation(s)", len(fails))
		}
		fmt.Fprintln(os.Stdout, "validator: no invariant violations")
	}
	return nil
}

func loadFixtures(paths []string) ([]*ast.File, error) {
	var files []*ast.File
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		f, err := fixture.Parse(p, data)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
