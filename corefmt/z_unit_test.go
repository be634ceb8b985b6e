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

package corefmt

import (
	"bytes"
	"testing"

	"github.com/zintix-labs/payline/sdk/core"
)

func TestSnapRoundTrip(t *testing.T) {
	p := core.NewPCG(5)
	snap, err := p.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	for _, s := range []string{EncodeSnap(snap), "hex:" + EncodeHex(snap), " " + EncodeSnap(snap) + "\n"} {
		got, err := DecodeSnap(s)
		if err != nil {
			t.Fatalf("decode %q: %v", s, err)
		}
		if !bytes.Equal(got, snap) {
			t.Fatalf("decode %q mismatch", s)
		}
	}
	if err := core.NewPCG(0).Restore(snap); err != nil {
		t.Fatalf("decoded snapshot should restore: %v", err)
	}
}

func TestDecodeSnapErrors(t *testing.T) {
	for _, s := range []string{"", "hex:zz", "***"} {
		if _, err := DecodeSnap(s); err == nil {
			t.Fatalf("%q should fail", s)
		}
	}
}
