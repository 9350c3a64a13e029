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

// repl.go is an interactive expression-scan session, grounded directly
// on the teacher's repl/repl.go: a chzyer/readline prompt loop handing
// each line to an evaluator and printing whatever comes back, with
// %exit (or EOF) ending the session.
package main

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/macrowalk/macrowalk/analysis"
	"github.com/macrowalk/macrowalk/docctx"
)

var replCmd = &cobra.Command{
	Use:   "repl [file]",
	Short: "Interactively evaluate VBA expressions, optionally against a loaded macro document.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := docctx.New()
		if len(args) == 1 {
			var err error
			doc, err = loadSingleStreamDoc(args[0])
			if err != nil {
				return err
			}
		}
		opts, err := buildOptions()
		if err != nil {
			return err
		}

		ac := analysis.New(opts, artifactDir, doc)
		session, failures := ac.NewREPLSession()
		for _, pf := range failures {
			fmt.Fprintf(os.Stderr, "parse failed for %s:\n%s\n", pf.Stream.VBAFilename, pf.Errors.String())
		}

		var c readline.Config
		c.Prompt = "macrowalk> "
		if err := c.Init(); err != nil {
			return fmt.Errorf("init readline: %w", err)
		}
		rl, err := readline.NewEx(&c)
		if err != nil {
			return fmt.Errorf("new readline: %w", err)
		}
		defer rl.Close()

		fmt.Println("macrowalk expression REPL")
		fmt.Println("%exit or EOF to quit.")
		fmt.Println()

		seenActions := 0
		for {
			line, err := rl.Readline()
			if err != nil {
				break
			}
			switch line {
			case "":
				continue
			case "%exit":
				return nil
			}
			v, err := session.Eval(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			fmt.Printf("%s\n", v.String())
			actions := session.ActionDescriptions()
			for _, desc := range actions[seenActions:] {
				fmt.Printf("  action: %s\n", desc)
			}
			seenActions = len(actions)
		}
		return nil
	},
}
