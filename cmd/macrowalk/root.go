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
	"flag"

	"github.com/spf13/cobra"

	"github.com/macrowalk/macrowalk/config"
)

var rootCmd = &cobra.Command{
	Use:           "macrowalk",
	Short:         "Static analysis and symbolic emulation of VBA macros.",
	Long:          "macrowalk parses and symbolically emulates a single VBA macro source, recording every observable side effect without performing it.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog reads its verbosity/output flags off the stdlib flag
		// package, which cobra's pflag never touches; initialize it
		// once here rather than letting glog's init-time defaults
		// silently win.
		flag.CommandLine.Parse(nil)
		if logLevel >= 2 {
			flag.Set("v", "2")
		} else if logLevel >= 1 {
			flag.Set("v", "1")
		}
		flag.Set("logtostderr", "true")
		return nil
	},
}

var (
	stripUseless       bool
	entryPoints        []string
	parallelParse      bool
	recursionLimit     int
	loopIterationLimit int
	packratCacheSize   int
	logLevel           int
	artifactDir        string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&stripUseless, "strip-useless", true, "strip useless Dim/no-op code before parsing")
	rootCmd.PersistentFlags().StringSliceVar(&entryPoints, "entry-points", nil, "explicit entry-point procedure names (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVar(&parallelParse, "parallel-parse", false, "parse independent macro streams concurrently")
	rootCmd.PersistentFlags().IntVar(&recursionLimit, "recursion-limit", 500, "call-stack recursion bound")
	rootCmd.PersistentFlags().IntVar(&loopIterationLimit, "loop-iteration-limit", 10000, "per-loop iteration bound")
	rootCmd.PersistentFlags().IntVar(&packratCacheSize, "packrat-cache-size", 4096, "parser memoization cache entry bound")
	rootCmd.PersistentFlags().IntVar(&logLevel, "log-level", 0, "glog verbosity (0 quiet, 1 info, 2 trace)")
	rootCmd.PersistentFlags().StringVar(&artifactDir, "artifact-dir", "", "directory for emulated file-write artifacts (default: <file>_artifacts)")

	rootCmd.AddCommand(emulateCmd, scanCmd, replCmd)
}

// buildOptions turns the bound persistent flags into a config.Options,
// the only contract between this CLI layer and the analysis package.
func buildOptions() (*config.Options, error) {
	return config.New(
		config.WithStripUseless(stripUseless),
		config.WithEntryPoints(entryPoints...),
		config.WithParallelParse(parallelParse),
		config.WithRecursionLimit(recursionLimit),
		config.WithLoopIterationLimit(loopIterationLimit),
		config.WithPackratCacheSize(packratCacheSize),
		config.WithLogLevel(logLevel),
	)
}
