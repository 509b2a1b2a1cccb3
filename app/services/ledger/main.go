package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/opmana/powledger/app/services/ledger/handlers"
	"github.com/opmana/powledger/foundation/events"
	"github.com/opmana/powledger/foundation/ledger"
	"github.com/opmana/powledger/foundation/ledger/storage"
	"github.com/opmana/powledger/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("LEDGER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:120s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			APIHost         string        `conf:"default:0.0.0.0:8080"`
		}
		Ledger struct {
			Difficulty   int     `conf:"default:4"`
			MiningReward float64 `conf:"default:10"`
			MinerName    string  `conf:"default:miner1"`
			SnapshotPath string  `conf:"default:zledger/ledger.json"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Ledger Support

	// The ledger packages accept a function of this signature to allow the
	// application to log. These raw messages are also sent to any websocket
	// client connected through the events package.
	evts := events.New()
	defer evts.Shutdown()

	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s)
		evts.Send("%s", s)
	}

	// Reopen the ledger from its snapshot when one exists. The mining work
	// for genesis only happens on a fresh start.
	var lgr *ledger.Ledger
	switch _, statErr := os.Stat(cfg.Ledger.SnapshotPath); {
	case statErr == nil:
		log.Infow("startup", "status", "loading snapshot", "path", cfg.Ledger.SnapshotPath)

		lgr, err = storage.Load(cfg.Ledger.SnapshotPath, ev)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}

		// The snapshot codec trusts the persisted hashes verbatim, so the
		// chain has to be checked explicitly after any load.
		if err := lgr.Validate(); err != nil {
			return fmt.Errorf("snapshot failed chain validation: %w", err)
		}

	default:
		log.Infow("startup", "status", "mining genesis block", "difficulty", cfg.Ledger.Difficulty)

		lgr, err = ledger.New(ledger.Config{
			Difficulty:   cfg.Ledger.Difficulty,
			MiningReward: cfg.Ledger.MiningReward,
			EvHandler:    ev,
		})
		if err != nil {
			return fmt.Errorf("constructing ledger: %w", err)
		}
	}

	log.Infow("startup", "status", "ledger ready", "blocks", len(lgr.Chain()), "difficulty", lgr.Difficulty())

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Construct the mux for the API calls.
	mux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown:  shutdown,
		Log:       log,
		Ledger:    lgr,
		MinerName: cfg.Ledger.MinerName,
		Evts:      evts,
	})

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      mux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	go func() {
		log.Infow("startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}

		// Persist the ledger so the chain survives a restart.
		log.Infow("shutdown", "status", "saving snapshot", "path", cfg.Ledger.SnapshotPath)
		if err := storage.Save(cfg.Ledger.SnapshotPath, lgr); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}

	return nil
}
