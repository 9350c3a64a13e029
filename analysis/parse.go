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

package analysis

import (
	goruntime "runtime"
	"sync"

	"github.com/macrowalk/macrowalk/ast"
	"github.com/macrowalk/macrowalk/common"
	"github.com/macrowalk/macrowalk/docctx"
	"github.com/macrowalk/macrowalk/normalizer"
	"github.com/macrowalk/macrowalk/parser"
)

// parsedModule pairs a successfully parsed module with the stream it
// came from, so a later stage can still name its origin in logs.
type parsedModule struct {
	name string
	mod  *ast.Module
}

// streamParseResult is one worker's outcome for one stream, collected
// into a slice indexed by the stream's original position so ordering
// stays deterministic regardless of which goroutine finishes first.
type streamParseResult struct {
	stream docctx.Stream
	mod    *ast.Module
	errs   *common.Errors
}

// parseStreams normalizes and parses every stream in ac.Doc.Streams,
// splitting the outcome into modules that loaded cleanly and failures
// that did not. When ac.Opts.ParallelParse is set, streams are
// distributed across a worker pool sized to the machine's CPU count;
// per spec.md §9 each worker owns its own Parser (and therefore its
// own packrat cache) rather than sharing one across goroutines, since
// a shared memoization cache is not safe for concurrent use.
func (ac *AnalysisContext) parseStreams() ([]parsedModule, []ParseFailure) {
	streams := ac.Doc.Streams
	results := make([]streamParseResult, len(streams))

	workers := 1
	if ac.Opts.ParallelParse {
		if n := goruntime.NumCPU(); n > 1 {
			workers = n
		}
	}
	if workers > len(streams) {
		workers = len(streams)
	}

	parseOne := func(i int) {
		s := streams[i]
		text := normalizer.Normalize(s.Source, ac.Opts.StripUseless)
		src := common.NewTextSource(s.VBAFilename, text)
		mod, errs := parser.Parse(src, s.VBAFilename,
			parser.MaxRecursionDepth(ac.Opts.RecursionLimit),
			parser.PackratCacheSize(ac.Opts.PackratCacheSize))
		results[i] = streamParseResult{stream: s, mod: mod, errs: errs}
	}

	if workers <= 1 {
		for i := range streams {
			parseOne(i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					parseOne(i)
				}
			}()
		}
		for i := range streams {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	var modules []parsedModule
	var failures []ParseFailure
	for _, r := range results {
		if r.errs != nil && !r.errs.Empty() {
			failures = append(failures, ParseFailure{Stream: r.stream, Errors: r.errs})
			continue
		}
		modules = append(modules, parsedModule{name: r.stream.VBAFilename, mod: r.mod})
	}
	return modules, failures
}
