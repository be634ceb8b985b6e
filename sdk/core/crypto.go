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

package core

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/big"
)

// Crypto 以 crypto/rand 為底的亂數來源，供正式環境使用（不可預測、不可回放）。
//
// 讀取失敗時 IntN 回傳 -1 並記錄錯誤，上層取樣會把它視為亂數來源錯誤；
// 失敗後不會自動重試。
type Crypto struct {
	src io.Reader
	buf [8]byte
	err error
}

// NewCrypto 使用 crypto/rand.Reader 建立亂數來源。
func NewCrypto() *Crypto {
	return &Crypto{src: rand.Reader}
}

// NewCryptoFrom 使用指定 Reader 建立亂數來源（測試注入故障用）。
func NewCryptoFrom(r io.Reader) *Crypto {
	return &Crypto{src: r}
}

// Err 回傳最近一次讀取錯誤，無錯誤為 nil。
func (c *Crypto) Err() error { return c.err }

func (c *Crypto) Uint64() uint64 {
	if _, err := io.ReadFull(c.src, c.buf[:]); err != nil {
		c.err = err
		return 0
	}
	return binary.BigEndian.Uint64(c.buf[:])
}

func (c *Crypto) Float64() float64 {
	return float64(c.Uint64()<<11>>11) / (1 << 53)
}

func (c *Crypto) UintN(max uint) uint {
	if max == 0 {
		return 0
	}
	v, ok := c.bounded(uint64(max))
	if !ok {
		return 0
	}
	return uint(v)
}

// IntN 回傳 [0,max)；max <= 0 或讀取失敗回傳 -1
func (c *Crypto) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	v, ok := c.bounded(uint64(max))
	if !ok {
		return -1
	}
	return int(v)
}

func (c *Crypto) bounded(n uint64) (uint64, bool) {
	v, err := rand.Int(c.src, new(big.Int).SetUint64(n))
	if err != nil {
		c.err = err
		return 0, false
	}
	return v.Uint64(), true
}
