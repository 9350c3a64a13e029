// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macrowalk/macrowalk/analysis"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Parse a macro source without emulating it and print every side-effect-free constant expression found.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		doc, err := loadSingleStreamDoc(path)
		if err != nil {
			return err
		}
		opts, err := buildOptions()
		if err != nil {
			return err
		}

		ac := analysis.New(opts, "", doc)
		results, failures := ac.Scan()

		for _, pf := range failures {
			fmt.Printf("parse failed for %s:\n%s\n", pf.Stream.VBAFilename, pf.Errors.String())
		}
		for _, r := range results {
			fmt.Printf("%s:\n", r.Module)
			for _, e := range r.Expressions {
				fmt.Printf("  %s = %s\n", e.Source, e.Value.String())
			}
		}
		return nil
	},
}
