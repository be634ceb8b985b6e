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

package spec

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/payline/errs"
)

const testYAML = `
r: 3
w:
  - [100, 50, 40, 10, 5, 1]
  - [100, 50, 40, 10, 5, 1]
  - [100, 50, 40, 10, 5, 1]
m:
  - [0, 0, 0]
  - [1, 1, 1]
  - [0, 1, 2]
p:
  - [0, 0, 50]
  - [0, 0, 5]
  - [0, 2, 10]
  - [0, 0, 20]
  - [0, 0, 40]
  - [0, 0, 100]
wild:
  index: 0
`

func testConfig() *Config {
	return &Config{
		R: 3,
		W: [][]int{{1, 1}, {1, 1}, {1, 1}},
		M: [][]int{{0, 0, 0}, {2, 1, 0}},
		P: PayTable{{0, 0, 3}, {0, 1, 2}},
	}
}

func TestValidate(t *testing.T) {
	if err := testConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"nil rows", func(c *Config) { c.R = 0 }},
		{"no reels", func(c *Config) { c.W = nil }},
		{"short line", func(c *Config) { c.M = append(c.M, []int{0, 0}) }},
		{"long line", func(c *Config) { c.M[0] = []int{0, 0, 0, 0} }},
		{"row out of range", func(c *Config) { c.M[1][0] = 3 }},
		{"negative row", func(c *Config) { c.M[1][2] = -1 }},
		{"empty paytable", func(c *Config) { c.P = nil }},
		{"reel wider than paytable", func(c *Config) { c.W[2] = []int{1, 1, 1} }},
		{"wild without pay row", func(c *Config) { c.Wild = &Wild{Index: 5} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			tt.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatalf("expected config error")
			}
			if !errs.IsConfig(err) {
				t.Fatalf("expected ErrConfig kind, got %v", err)
			}
		})
	}

	var nilCfg *Config
	if !errs.IsConfig(nilCfg.Validate()) {
		t.Fatalf("nil config should be a config error")
	}
}

func TestPayTableLookup(t *testing.T) {
	p := PayTable{{0, 0, 5, 10, 20}, {0, -1, 3}}
	tests := []struct {
		sym, combo int
		want       int
		ok         bool
	}{
		{0, 0, 0, true},
		{0, 2, 0, true},
		{0, 3, 5, true},
		{0, 5, 20, true},
		{0, 6, 0, true},
		{1, 2, 0, true},
		{1, 3, 3, true},
		{2, 3, 0, false},
		{-1, 1, 0, false},
	}
	for _, tt := range tests {
		got, ok := p.Lookup(tt.sym, tt.combo)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%d,%d) = (%d,%v), want (%d,%v)", tt.sym, tt.combo, got, ok, tt.want, tt.ok)
		}
	}
	if p.MinCombo(0) != 3 || p.MinCombo(1) != 3 || p.MinCombo(9) != 0 {
		t.Fatalf("unexpected MinCombo")
	}
}

func TestConfigFromYAML(t *testing.T) {
	cfg, err := ConfigFromYAML([]byte(testYAML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.R != 3 || cfg.Reels() != 3 || len(cfg.M) != 3 || len(cfg.P) != 6 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if idx, ok := cfg.WildIndex(); !ok || idx != 0 {
		t.Fatalf("wild not decoded: %v %v", idx, ok)
	}

	if _, err := ConfigFromYAML([]byte("r: 3\nrows: 3\n")); !errs.IsConfig(err) {
		t.Fatalf("unknown field should be a config error, got %v", err)
	}
	if _, err := ConfigFromYAML([]byte("r: 3\nw: [[1,1]]\nm: [[0,0]]\np: [[1]]\n")); !errs.IsConfig(err) {
		t.Fatalf("line length mismatch should be a config error, got %v", err)
	}
}

func TestConfigFromJSON(t *testing.T) {
	js := `{"r":1,"w":[[1],[1]],"m":[[0,0]],"p":[[0,4]],"wild":{"index":0}}`
	cfg, err := ConfigFromJSON([]byte(js))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Reels() != 2 || cfg.Wild == nil {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if _, err := ConfigFromJSON([]byte(`{"r":1,"x":2}`)); !errs.IsConfig(err) {
		t.Fatalf("unknown field should be rejected, got %v", err)
	}
}

func TestLoadConfigCompressed(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	packed := enc.EncodeAll([]byte(testYAML), nil)
	_ = enc.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml.zst")
	if err := os.WriteFile(path, packed, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Reels() != 3 {
		t.Fatalf("unexpected reels: %d", cfg.Reels())
	}

	fsys := fstest.MapFS{
		"a.yml":      {Data: []byte(testYAML)},
		"b.toml":     {Data: []byte("r = 3")},
		"c.json.zst": {Data: []byte("not zstd")},
	}
	if _, err := LoadConfigFS(fsys, "a.yml"); err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if _, err := LoadConfigFS(fsys, "b.toml"); !errs.IsConfig(err) {
		t.Fatalf("unsupported extension should be a config error, got %v", err)
	}
	if _, err := LoadConfigFS(fsys, "c.json.zst"); !errs.IsConfig(err) {
		t.Fatalf("corrupt zstd should be a config error, got %v", err)
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); !errs.IsConfig(err) {
		t.Fatalf("missing file should be a config error, got %v", err)
	}
}
