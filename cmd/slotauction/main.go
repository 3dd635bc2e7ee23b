// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/slotio/slot-auction/api"
	"github.com/slotio/slot-auction/auction"
	"github.com/slotio/slot-auction/logdb"
	"github.com/slotio/slot-auction/lvldb"
	"github.com/slotio/slot-auction/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "SlotAuction",
		Usage:     "Recurring sealed-duration auction for a display slot",
		Copyright: "2025 Slotio",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
		},
		Action: defaultAction,
	}
	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func defaultAction(ctx *cli.Context) error {
	initLogger(ctx.Int(verbosityFlag.Name))
	instanceID := uuid.New().String()
	slog.Info("starting slotauction", "version", fullVersion(), "instance", instanceID)

	cfg, err := loadConfig(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	era, err := cfg.era()
	if err != nil {
		return err
	}
	initCfg, err := cfg.initConfig()
	if err != nil {
		return err
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return errors.WithMessage(err, "create data dir")
	}

	stateDB, err := lvldb.New(filepath.Join(dataDir, "state.db"), lvldb.Options{})
	if err != nil {
		return errors.WithMessage(err, "open state db")
	}
	defer stateDB.Close()

	logDB, err := logdb.New(filepath.Join(dataDir, "logs.db"))
	if err != nil {
		return errors.WithMessage(err, "open log db")
	}
	defer logDB.Close()

	creator := state.NewCreator(stateDB)
	st, err := creator.NewState()
	if err != nil {
		return errors.WithMessage(err, "create state")
	}

	engine := auction.New(auction.Options{
		Era:   era,
		Owner: auction.SoloOwner{Addr: initCfg.Admin},
		Sink:  logDB,
	})

	if !engine.GetSettings(st).Launched {
		env := engine.NewEnv(st, initCfg.Admin, nil)
		if err := engine.Initialize(env, initCfg); err != nil && err != auction.ErrAlreadyInitialized {
			return errors.WithMessage(err, "initialize auction")
		}
		if err := st.Commit(); err != nil {
			return errors.WithMessage(err, "commit state")
		}
	}

	handler := api.New(engine, func() *state.State { return st }, logDB, ctx.String(apiCorsFlag.Name))
	srv := &http.Server{
		Addr:    ctx.String(apiAddrFlag.Name),
		Handler: handler,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("API service started", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case sig := <-handleExitSignal():
		slog.Info("exit signal received", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("api shutdown", "err", err)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.WithMessage(err, "api service")
		}
	}

	if err := st.Commit(); err != nil {
		return errors.WithMessage(err, "commit state")
	}
	slog.Info("slotauction stopped", "instance", instanceID)
	return nil
}
