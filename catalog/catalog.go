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

// Package catalog 把一或多個設定來源（fs.FS）索引成「檔名 -> 設定」的目錄。
//
// 來源必須是平的目錄（不含子目錄）；同名檔案出現在兩個來源時直接失敗。
package catalog

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/spec"
)

// Summary 目錄列表用的設定摘要
type Summary struct {
	Name  string `json:"name"`
	Reels int    `json:"reels"`
	Rows  int    `json:"rows"`
	Lines int    `json:"lines"`
	Wild  int    `json:"wild"` // -1 表示沒有
}

type Catalog struct {
	src   []fs.FS
	index map[string]int // name -> src index
	names []string       // 穩定排序
}

func New(src ...fs.FS) (*Catalog, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	c := &Catalog{src: src, index: make(map[string]int, 64)}
	for i, s := range src {
		if s == nil {
			return nil, errs.NewFatal(fmt.Sprintf("fs[%d] is nil", i))
		}
		err := fs.WalkDir(s, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == "." {
					return nil
				}
				return errs.NewFatal(fmt.Sprintf("config FS must be flat (no subdirectories): %q", path))
			}
			if !isConfigName(path) {
				return nil
			}
			if prev, ok := c.index[path]; ok {
				return errs.NewFatal(fmt.Sprintf("duplicate config %q in fs[%d] and fs[%d]", path, prev, i))
			}
			c.index[path] = i
			c.names = append(c.names, path)
			return nil
		})
		if err != nil {
			return nil, errs.Wrap(err, "can not create catalog")
		}
	}
	sort.Strings(c.names)
	return c, nil
}

func isConfigName(name string) bool {
	lower := strings.TrimSuffix(strings.ToLower(name), ".zst")
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")
}

// Names 回傳所有設定檔名（排序後）
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Resolve 依名稱找設定檔；可省略副檔名（依 .yaml、.yml、.json 及其 .zst 順序嘗試）。
func (c *Catalog) Resolve(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if _, ok := c.index[name]; ok {
		return name, true
	}
	for _, ext := range []string{".yaml", ".yml", ".json", ".yaml.zst", ".yml.zst", ".json.zst"} {
		if _, ok := c.index[name+ext]; ok {
			return name + ext, true
		}
	}
	return "", false
}

// Load 讀取並驗證設定
func (c *Catalog) Load(name string) (*spec.Config, error) {
	full, ok := c.Resolve(name)
	if !ok {
		return nil, errs.NewWarn(fmt.Sprintf("config %q not found in catalog", name))
	}
	return spec.LoadConfigFS(c.src[c.index[full]], full)
}

// Summaries 載入每份設定產生摘要；任一份不合法即回傳錯誤。
func (c *Catalog) Summaries() ([]Summary, error) {
	out := make([]Summary, 0, len(c.names))
	for _, n := range c.names {
		cfg, err := c.Load(n)
		if err != nil {
			return nil, errs.Wrap(err, n)
		}
		w, ok := cfg.WildIndex()
		if !ok {
			w = -1
		}
		out = append(out, Summary{Name: n, Reels: cfg.Reels(), Rows: cfg.R, Lines: len(cfg.M), Wild: w})
	}
	return out, nil
}
