//go:build linux

// Package main implements the remapd daemon entrypoint: flag parsing,
// signal-driven shutdown, and wiring the profile store into the
// orchestrator. The CLI itself stays minimal — flags only, no
// subcommands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbswitch/remapd/daemon"
	"github.com/kbswitch/remapd/profilestore"
	"github.com/kbswitch/remapd/xdg"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		configDir        string
		enableAppWatcher bool
		log              *logrus.Entry
		store            *profilestore.Store
		orch             *daemon.Orchestrator
		ctx              context.Context
		cancel           context.CancelFunc
		err              error
	)

	flag.StringVar(&configDir, "config-dir", "", "directory holding profile documents and the active pointer file (default: $XDG_CONFIG_HOME/remapd)")
	flag.BoolVar(&enableAppWatcher, "enable-app-watcher", false, "watch the active pointer file for external profile switches")
	flag.Parse()

	log = logrus.WithField("component", "remapd")

	if configDir == "" {
		configDir, err = xdg.ConfigDir("remapd")
		if err != nil {
			log.WithError(err).Fatal("failed to resolve default config directory")
		}
	}

	store, err = profilestore.New(configDir)
	if err != nil {
		log.WithError(err).Fatal("failed to open profile store")
	}

	orch = daemon.New(store, log)
	orch.EnableAppWatcher(enableAppWatcher)

	ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = orch.Setup(ctx, configDir)
	if err != nil {
		orch.Cleanup()
		log.WithError(err).Fatal("setup failed")
	}

	err = orch.Run(ctx)
	cleanupErr := orch.Cleanup()

	if cleanupErr != nil {
		log.WithError(cleanupErr).Warn("cleanup reported errors")
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "remapd:", err)
		os.Exit(1)
	}
}
