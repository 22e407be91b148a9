package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"newswire/wirenorm/internal/classify"
	"newswire/wirenorm/internal/config"
	"newswire/wirenorm/internal/database"
	"newswire/wirenorm/internal/pipeline"
	"newswire/wirenorm/internal/rules"
	"newswire/wirenorm/internal/server"
	"newswire/wirenorm/internal/store"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func usage() {
	fmt.Println("Usage: wirenorm [command] [options]")
	fmt.Println("Commands: ingest, recompute, server")
	fmt.Println("\nFor command-specific options, use: wirenorm [command] -h")
}

func main() {
	cfg := config.DefaultConfig()

	ingestCmd := flag.NewFlagSet("ingest", flag.ExitOnError)
	ingestCmd.StringVar(&cfg.DBPath, "db", config.GetEnvString("WIRENORM_DB_PATH", config.DefaultDBPath),
		"Path to the SQLite database file (env: WIRENORM_DB_PATH)")
	ingestCmd.StringVar(&cfg.SpoolDir, "spool", config.GetEnvString("WIRENORM_SPOOL_DIR", config.DefaultSpoolDir),
		"Directory of spooled payload files, one JSON payload per file (env: WIRENORM_SPOOL_DIR)")
	ingestCmd.StringVar(&cfg.RulesPath, "rules", config.GetEnvString("WIRENORM_RULES_PATH", config.DefaultRulesPath),
		"Path to a YAML rules file; empty uses compiled-in rules (env: WIRENORM_RULES_PATH)")

	var ingestLogLevelStr string
	ingestCmd.StringVar(&ingestLogLevelStr, "log-level", config.GetEnvString("WIRENORM_LOG_LEVEL", config.DefaultLogLevel),
		"Log level: debug, info, warn, error (env: WIRENORM_LOG_LEVEL)")

	var intervalMinutes int
	ingestCmd.IntVar(&intervalMinutes, "interval", config.GetEnvInt("WIRENORM_INTERVAL", config.DefaultInterval),
		"Interval in minutes between ingest runs, 0 for one-shot mode (env: WIRENORM_INTERVAL)")

	ingestCmd.IntVar(&cfg.WorkerCount, "workers", config.GetEnvInt("WIRENORM_WORKER_COUNT", config.DefaultWorkerCount),
		"Number of worker goroutines for processing, 0 for CPU count (env: WIRENORM_WORKER_COUNT)")

	ingestCmd.IntVar(&cfg.RetentionDays, "retention", config.GetEnvInt("WIRENORM_RETENTION_DAYS", config.DefaultRetentionDays),
		"Number of days to retain records, 0 to keep forever (env: WIRENORM_RETENTION_DAYS)")

	recomputeCmd := flag.NewFlagSet("recompute", flag.ExitOnError)
	recomputeCmd.StringVar(&cfg.DBPath, "db", config.GetEnvString("WIRENORM_DB_PATH", config.DefaultDBPath),
		"Path to the SQLite database file (env: WIRENORM_DB_PATH)")
	recomputeCmd.StringVar(&cfg.RulesPath, "rules", config.GetEnvString("WIRENORM_RULES_PATH", config.DefaultRulesPath),
		"Path to a YAML rules file; empty uses compiled-in rules (env: WIRENORM_RULES_PATH)")

	var recomputeLogLevelStr string
	recomputeCmd.StringVar(&recomputeLogLevelStr, "log-level", config.GetEnvString("WIRENORM_LOG_LEVEL", config.DefaultLogLevel),
		"Log level: debug, info, warn, error (env: WIRENORM_LOG_LEVEL)")

	serverCmd := flag.NewFlagSet("server", flag.ExitOnError)
	serverCmd.StringVar(&cfg.DBPath, "db", config.GetEnvString("WIRENORM_DB_PATH", config.DefaultDBPath),
		"Path to the SQLite database file (env: WIRENORM_DB_PATH)")
	serverCmd.StringVar(&cfg.RulesPath, "rules", config.GetEnvString("WIRENORM_RULES_PATH", config.DefaultRulesPath),
		"Path to a YAML rules file; empty uses compiled-in rules (env: WIRENORM_RULES_PATH)")
	serverCmd.StringVar(&cfg.ServerHost, "host", config.GetEnvString("WIRENORM_HOST", config.DefaultServerHost),
		"Host to bind the server to (env: WIRENORM_HOST)")
	serverCmd.IntVar(&cfg.ServerPort, "port", config.GetEnvInt("WIRENORM_PORT", config.DefaultServerPort),
		"Port to listen on (env: WIRENORM_PORT)")

	var serverLogLevelStr string
	serverCmd.StringVar(&serverLogLevelStr, "log-level", config.GetEnvString("WIRENORM_LOG_LEVEL", config.DefaultLogLevel),
		"Log level: debug, info, warn, error (env: WIRENORM_LOG_LEVEL)")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ingest":
		ingestCmd.Parse(os.Args[2:])

		if level, err := zerolog.ParseLevel(ingestLogLevelStr); err == nil {
			cfg.LogLevel = level
		}
		cfg.Interval = time.Duration(intervalMinutes) * time.Minute
		zerolog.SetGlobalLevel(cfg.LogLevel)

		if err := runIngest(cfg); err != nil {
			log.Error().Err(err).Msg("Ingest failed")
			os.Exit(1)
		}

	case "recompute":
		recomputeCmd.Parse(os.Args[2:])

		if level, err := zerolog.ParseLevel(recomputeLogLevelStr); err == nil {
			cfg.LogLevel = level
		}
		zerolog.SetGlobalLevel(cfg.LogLevel)

		if err := runRecompute(cfg); err != nil {
			log.Error().Err(err).Msg("Recompute failed")
			os.Exit(1)
		}

	case "server":
		serverCmd.Parse(os.Args[2:])

		if level, err := zerolog.ParseLevel(serverLogLevelStr); err == nil {
			cfg.LogLevel = level
		}
		zerolog.SetGlobalLevel(cfg.LogLevel)

		if err := runServer(cfg); err != nil {
			log.Error().Err(err).Msg("Server failed")
			os.Exit(1)
		}

	case "-h", "--help", "help":
		usage()
		os.Exit(0)

	default:
		log.Error().Str("command", os.Args[1]).Msg("Unknown command")
		usage()
		os.Exit(1)
	}
}

// runIngest processes the spool directory either once or periodically based
// on configuration.
func runIngest(cfg *config.Config) error {
	if cfg.Interval <= 0 {
		log.Info().Msg("Running in one-shot mode")
	} else {
		log.Info().Int64("interval_minutes", int64(cfg.Interval.Minutes())).Msg("Running in periodic mode")
	}

	ruleSet, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	dbCfg := database.NewConfig(cfg.DBPath)
	db, err := database.NewDB(dbCfg)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("Failed to initialize database")
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	recordStore := store.New(db)
	pipe := pipeline.New(ruleSet, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-shutdown
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
	}()

	if err := runIngestCycle(ctx, recordStore, pipe, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("Ingest cycle canceled by shutdown signal")
			return nil
		}
		return err
	}

	if cfg.Interval <= 0 {
		log.Info().Msg("One-shot ingest completed, exiting")
		return nil
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	log.Info().
		Dur("interval", cfg.Interval).
		Time("next_run", time.Now().Add(cfg.Interval)).
		Msg("Waiting for next ingest cycle")

	for {
		select {
		case <-ticker.C:
			log.Info().Msg("Starting scheduled ingest cycle")

			if err := runIngestCycle(ctx, recordStore, pipe, cfg); err != nil {
				if errors.Is(err, context.Canceled) {
					log.Info().Msg("Ingest cycle canceled by shutdown signal")
					return nil
				}
				log.Error().Err(err).Msg("Ingest cycle failed")
				// Continue to the next cycle rather than exiting
			}

			log.Info().
				Time("next_run", time.Now().Add(cfg.Interval)).
				Msg("Waiting for next ingest cycle")

		case <-ctx.Done():
			log.Info().Msg("Shutting down periodic ingest")
			return nil
		}
	}
}

// runIngestCycle executes a single spool processing cycle.
func runIngestCycle(ctx context.Context, recordStore *store.Store, pipe *pipeline.Pipeline, cfg *config.Config) error {
	processor, err := pipeline.NewSpoolProcessor(recordStore, pipe, cfg.WorkerCount)
	if err != nil {
		return fmt.Errorf("failed to initialize spool processor: %w", err)
	}

	processCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	log.Info().
		Int("worker_count", processor.WorkerCount).
		Str("spool", cfg.SpoolDir).
		Msg("Starting ingest cycle")

	startTime := time.Now()
	err = processor.ProcessSpool(processCtx, cfg.SpoolDir)
	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Ingest cycle finished")

	if err != nil {
		return fmt.Errorf("ingest error: %w", err)
	}

	processed, duplicates, failures := processor.Stats()
	log.Info().
		Int64("processed", processed).
		Int64("duplicates", duplicates).
		Int64("failures", failures).
		Msg("Ingest stats")

	if cfg.RetentionDays > 0 {
		purgeCtx, purgeCancel := context.WithTimeout(ctx, 5*time.Minute)
		defer purgeCancel()

		purgedCount, purgeErr := processor.PurgeOldRecords(purgeCtx, cfg.RetentionDays)
		if purgeErr != nil {
			log.Error().Err(purgeErr).Msg("Failed to purge old records")
		} else if purgedCount > 0 {
			log.Info().Int64("purged_count", purgedCount).Msg("Purged old records")
		}
	}

	return nil
}

// runRecompute re-derives category codes for every stored record.
func runRecompute(cfg *config.Config) error {
	ruleSet, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	dbCfg := database.NewConfig(cfg.DBPath)
	db, err := database.NewDB(dbCfg)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("Failed to initialize database")
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	updated, err := pipeline.Recompute(ctx, store.New(db), pipeline.New(ruleSet, nil))
	log.Info().Int64("updated", updated).Msg("Recompute finished")
	return err
}

// runServer starts the read-only records API with the provided configuration.
func runServer(cfg *config.Config) error {
	ruleSet, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	dbCfg := database.NewConfig(cfg.DBPath)
	dbCfg.ReadOnly = true

	db, err := database.NewDB(dbCfg)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("Failed to initialize database")
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	engine := classify.NewEngine(ruleSet.Presets)
	return server.RunServer(store.New(db), engine, cfg.ListenAddr(), log.Logger, cfg.APIKey)
}
