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

// Command macrowalk emulates a single VBA macro source file: it wires
// CLI flags onto config.Options and calls into the analysis package,
// nothing more. File-glob expansion and archive (OLE/ZIP) extraction
// are out of scope here; a caller wanting those hands macrowalk an
// already-extracted macro source.
package main

import (
	"os"

	"github.com/golang/glog"
)

func main() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		glog.Errorf("macrowalk: %v", err)
		os.Exit(1)
	}
}
