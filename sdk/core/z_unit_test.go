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
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestPCGDeterminism(t *testing.T) {
	c1 := Default().New(7)
	c2 := Default().New(7)
	for i := 0; i < 5; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("Uint64 mismatch at %d", i)
		}
	}
	if c1.IntN(10) != c2.IntN(10) {
		t.Fatalf("IntN mismatch")
	}
	if c1.UintN(10) != c2.UintN(10) {
		t.Fatalf("UintN mismatch")
	}
}

func TestPCGBounds(t *testing.T) {
	c := NewPCG(3)
	if got := c.IntN(0); got != -1 {
		t.Fatalf("IntN(0) should be -1, got %d", got)
	}
	if got := c.UintN(0); got != 0 {
		t.Fatalf("UintN(0) should be 0, got %d", got)
	}
	for _, n := range []int{1, 2, 7, 206, 1 << 20} {
		for i := 0; i < 1000; i++ {
			v := c.IntN(n)
			if v < 0 || v >= n {
				t.Fatalf("IntN(%d) out of range: %d", n, v)
			}
		}
	}
	for i := 0; i < 1000; i++ {
		f := c.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}

func TestPCGSnapshotRestore(t *testing.T) {
	c := NewPCG(11)
	c.Uint64()
	snap, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	want := []int{c.IntN(100), c.IntN(100), c.IntN(100)}

	r := NewPCG(999)
	if err := r.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := []int{r.IntN(100), r.IntN(100), r.IntN(100)}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("restored sequence differs at %d: %v vs %v", i, got, want)
		}
	}
}

func TestCryptoBounds(t *testing.T) {
	c := NewCrypto()
	for i := 0; i < 500; i++ {
		v := c.IntN(206)
		if v < 0 || v >= 206 {
			t.Fatalf("IntN out of range: %d", v)
		}
	}
	if c.Err() != nil {
		t.Fatalf("unexpected error: %v", c.Err())
	}
}

func TestCryptoFailure(t *testing.T) {
	c := NewCryptoFrom(bytes.NewReader(nil))
	if got := c.IntN(10); got != -1 {
		t.Fatalf("exhausted reader should yield -1, got %d", got)
	}
	if c.Err() == nil {
		t.Fatalf("expected recorded read error")
	}
	if c.Uint64() != 0 || !errors.Is(c.Err(), io.EOF) {
		t.Fatalf("Uint64 on failing reader should be 0 with io.EOF, got %v", c.Err())
	}
}
