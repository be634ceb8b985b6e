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

// Package logger 組裝引擎與 CLI 使用的 *slog.Logger。
//
// 兩種注入方式：
//   - 直接傳 *slog.Logger：用 New(mode) 或自行組裝。
//   - 傳 slog.Handler：用 FromHandler(h) 包起來，可與任何 slog handler 組合。
//
// AsyncHandler 可把任何 handler 變成非阻塞寫出，模擬器多 worker 時使用。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zintix-labs/payline/errs"
)

// LogMode 日誌模式
type LogMode uint8

const (
	ModeDev LogMode = iota
	ModeProd
	ModeSilence
)

var modeNames = map[string]LogMode{
	"dev":     ModeDev,
	"prod":    ModeProd,
	"silence": ModeSilence,
}

func (m LogMode) String() string {
	for k, v := range modeNames {
		if v == m {
			return k
		}
	}
	return "unknown"
}

// ParseMode 解析 CLI 帶入的模式字串（不分大小寫）
func ParseMode(s string) (LogMode, error) {
	m, ok := modeNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return ModeDev, errs.Warnf("unknown log mode %q (dev|prod|silence)", s)
	}
	return m, nil
}

// New 依模式預設值建立 *slog.Logger
func New(mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode, nil))
}

// NewTo 與 New 相同但寫到 w；silence 模式忽略 w。
func NewTo(w io.Writer, mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode, w))
}

// NewAsync 以模式預設值建 handler 後包一層 AsyncHandler。
// 呼叫端結束前需呼叫回傳 handler 的 Close 才能寫完緩衝中的紀錄。
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	ah := NewAsyncHandler(buildHandler(mode, nil), buf)
	return slog.New(ah), ah
}

// FromHandler 把 Handler 包成 *slog.Logger；h 為 nil 時用 dev 模式。
func FromHandler(h slog.Handler) *slog.Logger {
	if h == nil {
		h = buildHandler(ModeDev, nil)
	}
	return slog.New(h)
}

// Silent 回傳丟棄所有輸出的 logger，給沒有注入 logger 的呼叫端用。
func Silent() *slog.Logger {
	return slog.New(buildHandler(ModeSilence, nil))
}

func buildHandler(mode LogMode, w io.Writer) slog.Handler {
	switch mode {
	case ModeDev:
		if w == nil {
			w = os.Stderr
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	case ModeProd:
		if w == nil {
			w = os.Stdout
		}
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case ModeSilence:
		return slog.DiscardHandler
	default:
		if w == nil {
			w = os.Stderr
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}
