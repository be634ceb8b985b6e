package main

import (
	"log"

	"github.com/zintix-labs/payline/sdk/perf"
)

func main() {
	bindVar()
	if err := perf.Run(executeSimulator, cfg.pprofmode, ""); err != nil {
		log.Fatal(err)
	}
}
