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

package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : Error 分級，使最上層理解問題嚴重程度
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(errlv ErrLevel) string {
	if str, ok := errLvMap[errlv]; ok {
		return str
	}
	return ""
}

// 錯誤種類的哨兵值，使用 errors.Is 判斷。
var (
	// ErrConfig 設定錯誤：線長與軸數不符、權重總和為 0、負權重、賠付表缺圖標...
	ErrConfig = errors.New("config error")
	// ErrRandomSource 亂數來源無法產出合法範圍的值
	ErrRandomSource = errors.New("random source error")
)

// E 是統一的錯誤型別。
// Message 為主訊息；Extra 為呼叫端可追加的額外上下文；
// Kind 為錯誤種類（ErrConfig / ErrRandomSource），可為 nil；
// Cause 可串接下層錯誤（wrap）。
type E struct {
	Message string
	Extra   string
	Kind    error
	Cause   error
	ErrLv   ErrLevel
}

// Error 實作 error 介面並回傳格式化後的錯誤訊息。
func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s", ErrLv(e.ErrLv))
	if e.Kind != nil {
		base += " kind=" + e.Kind.Error()
	}
	base += " " + e.Message
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

// Is 讓 errors.Is(err, ErrConfig) 直接比對 Kind。
func (e *E) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// New 依錯誤等級與訊息建立錯誤
func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E {
	return &E{Message: msg, ErrLv: Fatal}
}

func NewWarn(msg string) *E {
	return &E{Message: msg, ErrLv: Warn}
}

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

// Configf 建立設定錯誤（Fatal）。設定錯誤必須在源頭修正，不可在算分時繞過。
func Configf(format string, a ...any) *E {
	return &E{Message: fmt.Sprintf(format, a...), Kind: ErrConfig, ErrLv: Fatal}
}

// RandomSourcef 建立亂數來源錯誤（Fatal）。重抽與否由呼叫端決定。
func RandomSourcef(format string, a ...any) *E {
	return &E{Message: fmt.Sprintf(format, a...), Kind: ErrRandomSource, ErrLv: Fatal}
}

// NewWithExtra 與 New 相同，但可附加額外上下文字串（不影響主訊息）。
func NewWithExtra(errLv ErrLevel, msg string, extra string) *E {
	e := New(errLv, msg)
	e.Extra = extra
	return e
}

// Wrap 使用給定的訊息包裝底層錯誤，建立一個 *E。
//
// ErrLevel 規則：
//   - 若 cause 已經是 *E，則沿用其 ErrLv 與 Kind。
//   - 若 cause 不是本包定義的 *E（多半是標準庫或三方依賴錯誤），則 ErrLv 一律視為 Fatal。
func Wrap(cause error, msg string) *E {
	errLv := Fatal
	var kind error
	if e, ok := AsErr(cause); ok {
		errLv = e.ErrLv
		kind = e.Kind
	}
	r := New(errLv, msg)
	r.Kind = kind
	r.Cause = cause
	return r
}

// WrapConfig 把外部錯誤（yaml/json/io）包成設定錯誤。
func WrapConfig(cause error, msg string) *E {
	r := Wrap(cause, msg)
	r.Kind = ErrConfig
	r.ErrLv = Fatal
	return r
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

// IsConfig 回傳 err 是否屬於設定錯誤
func IsConfig(err error) bool { return errors.Is(err, ErrConfig) }

// IsRandomSource 回傳 err 是否屬於亂數來源錯誤
func IsRandomSource(err error) bool { return errors.Is(err, ErrRandomSource) }
