package main

import (
	"context"
	"crypto/rand"
	"flag"
	"log"
	"math"
	"math/big"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/zintix-labs/payline"
	"github.com/zintix-labs/payline/demo"
	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/logger"
	"github.com/zintix-labs/payline/sdk/perf"
	"github.com/zintix-labs/payline/spec"
	"github.com/zintix-labs/payline/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	config    string
	demo      string
	dir       string
	worker    int
	spins     int
	seed      int64
	rows      bool
	format    string
	logmode   string
	pprofmode perf.Mode
}

func bindVar() {
	var pm string
	flag.StringVar(&cfg.config, "config", "", "config file (.yaml/.yml/.json, optional .zst)")
	flag.StringVar(&cfg.demo, "demo", "classic_5x3", "catalog config name, used when -config is empty")
	flag.StringVar(&cfg.dir, "dir", "", "extra config directory added to the catalog")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.IntVar(&cfg.spins, "spins", 1000000, "spins per worker")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for random number generator")
	flag.BoolVar(&cfg.rows, "rows", false, "sample every cell instead of one symbol per reel")
	flag.StringVar(&cfg.format, "format", "table", "report format: table, json, yaml")
	flag.StringVar(&cfg.logmode, "log", "silence", "log mode: dev, prod, silence")
	flag.StringVar(&pm, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()

	m, err := perf.ParseMode(pm)
	if err != nil {
		log.Fatal(err)
	}
	cfg.pprofmode = m

	// 未給 seed 或不合法 -> 隨機 seed
	if cfg.seed < 1 {
		seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			log.Fatal(err)
		}
		cfg.seed = seed.Int64()
	}
}

func (c *config) load() (*spec.Config, string, error) {
	if c.config != "" {
		sc, err := spec.LoadConfig(c.config)
		return sc, filepath.Base(c.config), err
	}
	cat, err := demo.NewCatalog(c.dir)
	if err != nil {
		return nil, "", err
	}
	sc, err := cat.Load(c.demo)
	return sc, c.demo, err
}

func (c *config) valid() error {
	if c.worker < 1 {
		return errs.NewWarn("value err : workers must > 0")
	}
	if c.spins < 1 {
		return errs.NewWarn("value err : spins must > 0")
	}
	return nil
}

func executeSimulator() error {
	if err := cfg.valid(); err != nil {
		return err
	}
	render, ok := stats.RenderByName(cfg.format)
	if !ok {
		return errs.Warnf("unknown format %q", cfg.format)
	}
	lm, err := logger.ParseMode(cfg.logmode)
	if err != nil {
		return err
	}
	lg, ah := logger.NewAsync(1024, lm)
	defer ah.Close()

	sc, name, err := cfg.load()
	if err != nil {
		return err
	}
	opts := []payline.Option{payline.WithLogger(lg)}
	if cfg.rows {
		opts = append(opts, payline.WithRowSampling())
	}
	eng, err := payline.NewEngine(sc, opts...)
	if err != nil {
		return err
	}
	s, err := payline.NewSimulatorWithSeed(name, eng, nil, cfg.seed)
	if err != nil {
		return err
	}
	table := cfg.format == "table"
	s.ShowPB = table

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if table {
		green := "\033[1;32m"
		reset := "\033[0m"
		p := message.NewPrinter(language.English)
		p.Printf("%s[WORKERS:%d] [CONFIG:%s] [MODE:%s] [SPINS:%d] [SEED:%d]%s\n", green, cfg.worker, name, eng.Mode(), cfg.worker*cfg.spins, cfg.seed, reset)
	}
	st, used, err := s.SimMP(ctx, cfg.spins, cfg.worker)
	if err != nil {
		return err
	}
	if table {
		st.StdOut(os.Stdout, used)
		return nil
	}
	return st.WriteWith(os.Stdout, render)
}
