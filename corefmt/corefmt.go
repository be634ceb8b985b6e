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

// Package corefmt 把 PRNG 快照轉成可複製、可放進 JSON 的文字，以及反向解析。
package corefmt

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/zintix-labs/payline/errs"
)

func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeBase64URL(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.Wrap(err, "decode base64url failed")
	}
	return b, nil
}

func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errs.Wrap(err, "decode hex failed")
	}
	return b, nil
}

// EncodeSnap 快照的標準文字形式（base64url，無 padding）
func EncodeSnap(b []byte) string {
	return EncodeBase64URL(b)
}

// DecodeSnap 解析快照文字；"hex:" 前綴視為十六進位，其餘視為 base64url。
func DecodeSnap(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errs.NewWarn("empty snapshot")
	}
	if rest, ok := strings.CutPrefix(s, "hex:"); ok {
		return DecodeHex(rest)
	}
	return DecodeBase64URL(s)
}
