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
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/payline/errs"
	"gopkg.in/yaml.v3"
)

// ConfigFromYAML 讀取 YAML 設定並執行 Validate。
// 採嚴格解碼：多寫或拼錯欄位直接報錯，避免設定打錯字卻被默默忽略。
func ConfigFromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errs.WrapConfig(err, "failed to unmarshal yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errs.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// ConfigFromJSON 讀取 JSON 設定並執行 Validate
func ConfigFromJSON(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errs.WrapConfig(err, "failed to unmarshal json")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errs.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// LoadConfig 從檔案讀取設定，依副檔名決定格式：
//
//	.yaml / .yml / .json，可再加 .zst（zstd 壓縮），例如 game.yaml.zst
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapConfig(err, "read config file failed")
	}
	return decodeByName(path, data)
}

// LoadConfigFS 與 LoadConfig 相同，但從 fs.FS 讀取（embed 的 demo 設定）。
func LoadConfigFS(fsys fs.FS, name string) (*Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errs.WrapConfig(err, "read config file failed")
	}
	return decodeByName(name, data)
}

func decodeByName(name string, data []byte) (*Config, error) {
	if strings.HasSuffix(name, ".zst") {
		raw, err := decompress(data)
		if err != nil {
			return nil, err
		}
		data = raw
		name = strings.TrimSuffix(name, ".zst")
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return ConfigFromYAML(data)
	case ".json":
		return ConfigFromJSON(data)
	default:
		return nil, errs.Configf("unsupported config extension: %s", name)
	}
}

func decompress(data []byte) ([]byte, error) {
	zr, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errs.WrapConfig(err, "create zstd reader failed")
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, errs.WrapConfig(err, "read decompressed config failed")
	}
	return raw, nil
}
