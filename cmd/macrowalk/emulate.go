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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macrowalk/macrowalk/analysis"
	"github.com/macrowalk/macrowalk/value"
)

var emulateCmd = &cobra.Command{
	Use:   "emulate <file>",
	Short: "Symbolically emulate a macro source file's entry points and print the action log.",
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
		dir := artifactDir
		if dir == "" {
			dir = defaultArtifactDir(path)
		}

		ac := analysis.New(opts, dir, doc)
		res, err := ac.Run(context.Background())
		if err != nil {
			return err
		}

		for _, pf := range res.ParseFailures {
			fmt.Printf("parse failed for %s:\n%s\n", pf.Stream.VBAFilename, pf.Errors.String())
		}
		for _, name := range res.Crashed {
			fmt.Printf("module %s crashed during emulation\n", name)
		}
		for _, er := range res.EntryResults {
			result := "(none)"
			if er.Result != nil && er.Result.Kind() != value.KindEmpty {
				result = er.Result.String()
			}
			if er.Err != nil {
				fmt.Printf("%s -> error: %v\n", er.Name, er.Err)
			} else {
				fmt.Printf("%s -> %s\n", er.Name, result)
			}
		}
		fmt.Println()
		fmt.Printf("%d action(s):\n", len(res.Actions))
		for _, a := range res.Actions {
			fmt.Printf("  %s\n", a.String())
		}
		return nil
	},
}
