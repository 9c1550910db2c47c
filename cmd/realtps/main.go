// Copyright 2026 The realtps Authors
// This file is part of the realtps library.
//
// The realtps library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The realtps library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the realtps library. If not, see <http://www.gnu.org/licenses/>.

// Command realtps is the multi-chain TPS ingestion pipeline's entry
// point: one binary, the job-runner steady state by default, plus
// one-shot subcommands useful for debugging a single chain.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"gopkg.in/urfave/cli.v1"

	"github.com/realtps/realtps/calculator"
	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/config"
	"github.com/realtps/realtps/importer"
	"github.com/realtps/realtps/internal/errs"
	"github.com/realtps/realtps/internal/rlog"
	"github.com/realtps/realtps/jobs"
	"github.com/realtps/realtps/pruner"
	"github.com/realtps/realtps/storage"

	_ "github.com/realtps/realtps/client/adapters/algorand"
	_ "github.com/realtps/realtps/client/adapters/bitcoin"
	_ "github.com/realtps/realtps/client/adapters/elrond"
	_ "github.com/realtps/realtps/client/adapters/ethers"
	_ "github.com/realtps/realtps/client/adapters/hedera"
	_ "github.com/realtps/realtps/client/adapters/icp"
	_ "github.com/realtps/realtps/client/adapters/near"
	_ "github.com/realtps/realtps/client/adapters/solana"
	_ "github.com/realtps/realtps/client/adapters/stellar"
	_ "github.com/realtps/realtps/client/adapters/substrate"
	_ "github.com/realtps/realtps/client/adapters/tendermint"
)

var logger = rlog.New("main")

var (
	chainFlag = cli.StringFlag{
		Name:  "chain",
		Usage: "restrict the command to a single configured chain",
	}
	rpcConfigFlag = cli.StringFlag{
		Name:  "rpc-config",
		Usage: "path to the chain RPC endpoint table",
		Value: "./rpc_config.toml",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "root directory for persisted block and TPS data",
		Value: "./data",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "enable debug-level logging",
	}
	dryRunFlag = cli.BoolFlag{
		Name:  "dry-run",
		Usage: "compute TPS but do not persist the result",
	}
)

var app = cli.NewApp()

func init() {
	app.Name = "realtps"
	app.Usage = "measure trailing transaction throughput across chains"
	app.Flags = []cli.Flag{rpcConfigFlag, dataDirFlag, verboseFlag}
	app.Action = runAction
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "run the steady-state import/calculate/prune scheduler (default)",
			Flags:  []cli.Flag{chainFlag},
			Action: runAction,
		},
		{
			Name:   "import",
			Usage:  "run one import pass for a chain and exit",
			Flags:  []cli.Flag{chainFlag},
			Action: importAction,
		},
		{
			Name:   "calculate",
			Usage:  "run one TPS calculation pass for a chain and exit",
			Flags:  []cli.Flag{chainFlag, dryRunFlag},
			Action: calculateAction,
		},
		{
			Name:   "remove",
			Usage:  "run one prune pass for a chain and exit",
			Flags:  []cli.Flag{chainFlag},
			Action: removeAction,
		},
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and opens storage, the work every
// subcommand needs before it can touch a chain.
func setup(c *cli.Context) (*config.Config, storage.Db, error) {
	rlog.Init(c.GlobalBool(verboseFlag.Name) || c.Bool(verboseFlag.Name))

	cfg, err := config.Load(c.GlobalString(rpcConfigFlag.Name))
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.NewFileDb(c.GlobalString(dataDirFlag.Name))
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// selectedChains resolves --chain, if given, to a single-element slice;
// otherwise every chain named in the RPC config file.
func selectedChains(c *cli.Context, cfg *config.Config) ([]chain.ID, error) {
	if name := c.String(chainFlag.Name); name != "" {
		id, err := chain.Parse(name)
		if err != nil {
			return nil, errs.Config("--chain: %v", err)
		}
		if _, err := cfg.For(id); err != nil {
			return nil, err
		}
		return []chain.ID{id}, nil
	}
	return cfg.IDs(), nil
}

func newAdapter(cfg *config.Config, id chain.ID) (client.Client, error) {
	cc, err := cfg.For(id)
	if err != nil {
		return nil, err
	}
	return client.New(id, cc)
}

// runAction is the steady-state scheduler: it seeds one Import job per
// chain plus a shared Calculate and Remove job, then runs forever.
func runAction(c *cli.Context) error {
	cfg, db, err := setup(c)
	if err != nil {
		return err
	}

	ids, err := selectedChains(c, cfg)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return errs.Config("no chains configured in %s", c.GlobalString(rpcConfigFlag.Name))
	}

	calc := calculator.New(db)
	prune := pruner.New(db)
	runner := jobs.NewRunner(len(ids) + 2)

	for _, id := range ids {
		cl, err := newAdapter(cfg, id)
		if err != nil {
			return err
		}
		im := importer.New(id, db, cl)
		runner.Seed(jobs.NewImportJob(id, im))
		logger.Info("configured chain", "chain", id)
	}
	runner.Seed(jobs.NewCalculateJob(ids, calc))
	runner.Seed(jobs.NewRemoveJob(ids, prune))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		logger.Info("shutting down")
		cancel()
	}()

	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func importAction(c *cli.Context) error {
	cfg, db, err := setup(c)
	if err != nil {
		return err
	}
	ids, err := selectedChains(c, cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()
	for _, id := range ids {
		cl, err := newAdapter(cfg, id)
		if err != nil {
			return err
		}
		if err := importer.New(id, db, cl).Sync(ctx); err != nil {
			return err
		}
	}
	return nil
}

func calculateAction(c *cli.Context) error {
	cfg, db, err := setup(c)
	if err != nil {
		return err
	}
	ids, err := selectedChains(c, cfg)
	if err != nil {
		return err
	}

	calc := calculator.New(db)
	dryRun := c.Bool(dryRunFlag.Name)
	for _, id := range ids {
		if !dryRun {
			if err := calc.Calculate(id); err != nil {
				return err
			}
			continue
		}
		if err := reportDryRun(db, id); err != nil {
			return err
		}
	}
	return nil
}

// reportDryRun recomputes TPS by delegating to the real Calculate pass
// against a dryRunDb wrapper around the real store: dry-run still reads
// the persisted block graph (it has to, to compute
// anything) but prints the figure instead of writing StoreTps, so
// repeated debugging runs never perturb stored state.
func reportDryRun(db storage.Db, id chain.ID) error {
	probe := &dryRunDb{Db: db}
	if err := calculator.New(probe).Calculate(id); err != nil {
		return err
	}
	fmt.Printf("%s: tps=%.4f\n", id, probe.lastTps)
	return nil
}

// dryRunDb wraps a real storage.Db, intercepting the two write calls
// Calculate makes so a dry run never mutates stored state.
type dryRunDb struct {
	storage.Db
	lastTps float64
}

func (d *dryRunDb) StoreTps(id chain.ID, tps float64) error {
	d.lastTps = tps
	return nil
}

func (d *dryRunDb) StoreCalculationLog(id chain.ID, log chain.CalculationLog) error {
	return nil
}

func removeAction(c *cli.Context) error {
	cfg, db, err := setup(c)
	if err != nil {
		return err
	}
	ids, err := selectedChains(c, cfg)
	if err != nil {
		return err
	}

	p := pruner.New(db)
	for _, id := range ids {
		if err := p.Prune(id); err != nil {
			return err
		}
	}
	return nil
}
