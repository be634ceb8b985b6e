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

// Package demo 以內嵌的示範設定組出可直接跑的引擎，給 CLI 與範例使用。
package demo

import (
	"io/fs"
	"os"

	"github.com/zintix-labs/payline"
	"github.com/zintix-labs/payline/catalog"
	"github.com/zintix-labs/payline/demo/configs"
)

// NewCatalog 內嵌設定 + 選填的額外目錄
func NewCatalog(extraDirs ...string) (*catalog.Catalog, error) {
	src := []fs.FS{configs.FS}
	for _, d := range extraDirs {
		if d != "" {
			src = append(src, os.DirFS(d))
		}
	}
	return catalog.New(src...)
}

// NewEngine 依示範設定名稱建 Engine
func NewEngine(name string, opts ...payline.Option) (*payline.Engine, error) {
	cat, err := NewCatalog()
	if err != nil {
		return nil, err
	}
	cfg, err := cat.Load(name)
	if err != nil {
		return nil, err
	}
	return payline.NewEngine(cfg, opts...)
}

// NewSimulator 依示範設定名稱建固定 seed 的 Simulator
func NewSimulator(name string, seed int64, opts ...payline.Option) (*payline.Simulator, error) {
	eng, err := NewEngine(name, opts...)
	if err != nil {
		return nil, err
	}
	return payline.NewSimulatorWithSeed(name, eng, nil, seed)
}
