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

// Package perf 包裝 runtime/pprof，讓 CLI 以一個 flag 切換 profiling。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/payline/errs"
)

// DefaultDir pprof 檔案寫入路徑
const DefaultDir = "build/profiling"

// Mode profiling 種類
type Mode string

const (
	ModeNone   Mode = ""
	ModeCPU    Mode = "cpu"
	ModeHeap   Mode = "heap"
	ModeAllocs Mode = "allocs"
)

// ParseMode 驗證 -p 參數
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeNone, ModeCPU, ModeHeap, ModeAllocs:
		return m, nil
	}
	return ModeNone, errs.Warnf("unknown pprof mode %q ('', cpu, heap, allocs)", s)
}

// Run 依 mode 包住 exe 執行並把 profile 寫到 dir；exe 的錯誤優先回傳。
//
// Usage:
//
//	go run ./cmd/sim -p cpu
//	go tool pprof build/profiling/cpu.pprof
func Run(exe func() error, mode Mode, dir string) error {
	if mode == ModeNone {
		return exe()
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap(err, "create pprof dir")
	}
	switch mode {
	case ModeCPU:
		return cpu(exe, filepath.Join(dir, "cpu.pprof"))
	case ModeHeap:
		return after(exe, filepath.Join(dir, "heap.pprof"), func(f *os.File) error {
			// 讓快照貼近 live objects
			runtime.GC()
			return pprof.WriteHeapProfile(f)
		})
	case ModeAllocs:
		return after(exe, filepath.Join(dir, "allocs.pprof"), func(f *os.File) error {
			return pprof.Lookup("allocs").WriteTo(f, 0)
		})
	}
	return exe()
}

func cpu(exe func() error, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create cpu.pprof")
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "start cpu profile")
	}
	defer pprof.StopCPUProfile()
	return exe()
}

// after 先執行 exe，再寫出一次快照
func after(exe func() error, path string, write func(*os.File) error) error {
	if err := exe(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create "+filepath.Base(path))
	}
	defer f.Close()
	if err := write(f); err != nil {
		return errs.Wrap(err, "write "+filepath.Base(path))
	}
	return nil
}
