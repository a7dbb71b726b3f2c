// Command simbridged runs the legacy SimConnect bridge: it accepts client
// connections over TCP, translates their protocol to the live sim's UDP
// line protocol, and dispatches system/axis events between the two.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/mrlm-net/simbridge/pkg/bridge"
	"github.com/mrlm-net/simbridge/pkg/config"
	"github.com/mrlm-net/simbridge/pkg/simlink"
	"github.com/mrlm-net/simbridge/pkg/translate"
	"github.com/mrlm-net/simbridge/pkg/types"
)

var configPath = flag.String("config", "configs/simbridge.yaml", "path to the config file")

func main() {
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := run(logger, *configPath); err != nil {
		logger.Error("simbridged: fatal", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cache := types.NewSimCache()

	link, err := simlink.New(logger, cache, cfg.SimLink.RecvPort, cfg.SimLink.SendPort, cfg.SimLink.RemoteHost)
	if err != nil {
		return fmt.Errorf("start simlink: %w", err)
	}
	defer link.Close()

	dispatcher := bridge.NewDispatcher(logger, cache)

	acceptor := bridge.NewAcceptor(logger, cache, translate.Default, dispatcher)
	if err := acceptor.Listen(cfg.Listen.Address); err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Listen.Address, err)
	}
	defer acceptor.Close()

	logger.Info("simbridged: listening", "address", cfg.Listen.Address,
		"simlinkRecvPort", cfg.SimLink.RecvPort, "simlinkSendPort", cfg.SimLink.SendPort)

	var keepRunning atomic.Bool
	keepRunning.Store(true)
	alive := func() bool { return keepRunning.Load() }

	go link.Run(alive)
	go dispatcher.Run(alive)
	go acceptor.Run(alive)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("simbridged: shutting down")
	keepRunning.Store(false)
	return nil
}
