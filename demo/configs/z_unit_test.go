// Copyright 2025 Zintix Labs
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

package configs

import (
	"io/fs"
	"testing"

	"github.com/zintix-labs/payline/spec"
)

func TestDemoConfigsLoad(t *testing.T) {
	names, err := fs.Glob(FS, "*.yaml")
	if err != nil || len(names) == 0 {
		t.Fatalf("no demo configs: %v", err)
	}
	for _, n := range names {
		cfg, err := spec.LoadConfigFS(FS, n)
		if err != nil {
			t.Fatalf("%s: %v", n, err)
		}
		if cfg.Reels() == 0 || len(cfg.M) == 0 {
			t.Fatalf("%s: empty config", n)
		}
	}
}
