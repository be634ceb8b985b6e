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

// ops 是取代 Makefile 的開發腳本：go run scripts/ops.go [task]
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

func printColor(color, msg string) { fmt.Printf("%s%s%s\n", color, msg, colorReset) }

// task 一個腳本任務：依序執行的指令，以及輸出行的過濾方式
type task struct {
	desc   string
	cmds   [][]string
	filter func(line string) (string, bool)
}

// 只留 ok / FAIL 行
func summaryOnly(line string) (string, bool) {
	switch {
	case strings.HasPrefix(line, "ok"):
		return colorGreen + line + colorReset, true
	case strings.HasPrefix(line, "FAIL"), strings.HasPrefix(line, "---"):
		return colorRed + line + colorReset, true
	}
	return "", false
}

func dropNoTestFiles(line string) (string, bool) {
	if strings.Contains(line, "[no test files]") {
		return "", false
	}
	if s, ok := summaryOnly(line); ok {
		return s, true
	}
	return line, true
}

var tasks = map[string]task{
	"test": {
		desc:   "run all tests, print package summary",
		cmds:   [][]string{{"go", "clean", "-testcache"}, {"go", "test", "./...", "-cover", "-count=1"}},
		filter: summaryOnly,
	},
	"test-detail": {
		desc:   "run all tests verbose",
		cmds:   [][]string{{"go", "clean", "-testcache"}, {"go", "test", "./...", "-v", "-count=1"}},
		filter: dropNoTestFiles,
	},
	"prop": {
		desc:   "run combo property tests with more checks",
		cmds:   [][]string{{"go", "test", "./sdk/calc/", "-run", "Properties", "-count=1", "-rapid.checks=20000"}},
		filter: dropNoTestFiles,
	},
	"sim-check": {
		desc: "simulate every demo config briefly",
		cmds: [][]string{
			{"go", "run", "./cmd/sim", "-demo", "fruit_3x3", "-spins", "200000", "-worker", "4", "-seed", "1"},
			{"go", "run", "./cmd/sim", "-demo", "classic_5x3", "-spins", "200000", "-worker", "4", "-seed", "1", "-rows"},
		},
	},
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/ops.go [task]")
		for name, t := range tasks {
			fmt.Printf("  %-12s %s\n", name, t.desc)
		}
		os.Exit(1)
	}
	t, ok := tasks[os.Args[1]]
	if !ok {
		printColor(colorYellow, "Unknown task: "+os.Args[1])
		os.Exit(1)
	}
	printColor(colorGreen, "running "+os.Args[1])
	for _, c := range t.cmds {
		if err := run(c, t.filter); err != nil {
			printColor(colorRed, fmt.Sprintf("%s: %v", strings.Join(c, " "), err))
			os.Exit(1)
		}
	}
}

func run(args []string, filter func(string) (string, bool)) error {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	if filter == nil {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
	// stdout/stderr 合併，編譯錯誤也能看到
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		sc := bufio.NewScanner(pr)
		for sc.Scan() {
			if s, ok := filter(sc.Text()); ok {
				fmt.Println(s)
			}
		}
	}()
	err := cmd.Wait()
	pw.Close()
	<-done
	return err
}
