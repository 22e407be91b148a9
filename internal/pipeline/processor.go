package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"newswire/wirenorm/internal/models"
	"newswire/wirenorm/internal/store"
)

// SpoolProcessor handles parallel processing of spooled payload files.
// One file is one message body; the filename stem is the item's external id.
// Re-running a spool directory is harmless because the writer's insert is
// idempotent on external id.
type SpoolProcessor struct {
	store       *store.Store
	pipeline    *Pipeline
	WorkerCount int

	payloadQueue chan payloadFile
	dbWriteQueue chan models.ProcessedRecord
	errorQueue   chan error

	workerWg   sync.WaitGroup
	processed  atomic.Int64
	duplicates atomic.Int64
	failures   atomic.Int64

	activeWorkers    atomic.Int32
	currentBatchSize atomic.Int32

	batchSize    int
	batchTimeout time.Duration
}

type payloadFile struct {
	path       string
	externalID string
}

const (
	defaultBatchSize    = 100
	defaultBatchTimeout = 2 * time.Second
)

// NewSpoolProcessor creates a spool processor using an existing store and
// per-item pipeline.
func NewSpoolProcessor(s *store.Store, p *Pipeline, workerCount int) (*SpoolProcessor, error) {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	if s == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if p == nil {
		return nil, fmt.Errorf("pipeline cannot be nil")
	}

	return &SpoolProcessor{
		store:        s,
		pipeline:     p,
		WorkerCount:  workerCount,
		payloadQueue: make(chan payloadFile, workerCount*2),
		dbWriteQueue: make(chan models.ProcessedRecord, workerCount*10),
		errorQueue:   make(chan error, workerCount),
		batchSize:    defaultBatchSize,
		batchTimeout: defaultBatchTimeout,
	}, nil
}

// ProcessSpool runs every payload file in dir through the pipeline in
// parallel and batch-writes the results. Per-item failures are reported and
// counted without aborting the run.
func (sp *SpoolProcessor) ProcessSpool(ctx context.Context, dir string) error {
	progressTicker := time.NewTicker(time.Minute)
	defer progressTicker.Stop()

	go func() {
		for {
			select {
			case <-progressTicker.C:
				log.Info().
					Int64("processed", sp.processed.Load()).
					Int64("duplicates", sp.duplicates.Load()).
					Int64("failures", sp.failures.Load()).
					Int32("active_workers", sp.activeWorkers.Load()).
					Int32("current_batch_size", sp.currentBatchSize.Load()).
					Int("payload_queue_size", len(sp.payloadQueue)).
					Int("db_write_queue_size", len(sp.dbWriteQueue)).
					Msg("Processing progress")
			case <-ctx.Done():
				return
			}
		}
	}()

	var processWg sync.WaitGroup

	errChan := make(chan error, 1)
	go func() {
		var firstErr error
		for err := range sp.errorQueue {
			if err == nil {
				continue
			}
			log.Error().Err(err).Msg("Item failed")
			// Only database errors are fatal for the run; item errors are
			// part of the partial-failure report.
			if firstErr == nil && strings.Contains(err.Error(), "database") {
				firstErr = err
			}
		}
		errChan <- firstErr
		close(errChan)
	}()

	processWg.Add(1)
	go func() {
		defer processWg.Done()
		for i := 0; i < sp.WorkerCount; i++ {
			sp.workerWg.Add(1)
			go sp.payloadWorker(ctx)
		}
		sp.workerWg.Wait()
		close(sp.dbWriteQueue)
		log.Info().Msg("All payload workers finished.")
	}()

	processWg.Add(1)
	go func() {
		defer processWg.Done()
		sp.databaseWriter(ctx)
		log.Info().Msg("Database writer finished.")
	}()

	files, err := listPayloadFiles(dir)
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("Failed to list spool directory")
		close(sp.payloadQueue)
		processWg.Wait()
		close(sp.errorQueue)
		if collectedErr := <-errChan; collectedErr != nil {
			return fmt.Errorf("failed to list spool: %w (additional error: %v)", err, collectedErr)
		}
		return fmt.Errorf("failed to list spool: %w", err)
	}
	log.Info().
		Int("payload_files", len(files)).
		Str("dir", dir).
		Msg("Loaded spooled payloads to process.")

queueLoop:
	for _, pf := range files {
		select {
		case sp.payloadQueue <- pf:
		case <-ctx.Done():
			log.Info().Err(ctx.Err()).Msg("Context cancelled during payload queuing")
			break queueLoop
		}
	}
	close(sp.payloadQueue)

	processWg.Wait()
	close(sp.errorQueue)

	finalErr := <-errChan
	return finalErr
}

// payloadWorker reads payload files, runs the per-item pipeline, and queues
// records for writing.
func (sp *SpoolProcessor) payloadWorker(ctx context.Context) {
	defer sp.workerWg.Done()
	sp.activeWorkers.Add(1)
	defer sp.activeWorkers.Add(-1)

	for {
		select {
		case pf, ok := <-sp.payloadQueue:
			if !ok {
				return
			}

			raw, err := os.ReadFile(pf.path)
			if err != nil {
				sp.failures.Add(1)
				sp.sendError(fmt.Errorf("failed to read payload %s: %w", pf.path, err))
				continue
			}

			rec, err := sp.pipeline.Process(raw, pf.externalID, "")
			if err != nil {
				sp.failures.Add(1)
				sp.sendError(err)
				continue
			}

			select {
			case sp.dbWriteQueue <- *rec:
			case <-ctx.Done():
				log.Info().
					Err(ctx.Err()).
					Str("external_id", rec.ExternalID).
					Msg("Worker cancelling during DB queueing")
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// databaseWriter batches records into insert-if-absent transactions.
func (sp *SpoolProcessor) databaseWriter(ctx context.Context) {
	batch := make([]models.ProcessedRecord, 0, sp.batchSize)
	ticker := time.NewTicker(sp.batchTimeout)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		inserted, duplicates, failed, err := sp.store.InsertBatch(ctx, batch)
		if err != nil {
			sp.sendError(fmt.Errorf("record writer: %w", err))
		}
		sp.processed.Add(int64(inserted))
		sp.duplicates.Add(int64(duplicates))
		sp.failures.Add(int64(failed))
		log.Info().
			Int("inserted", inserted).
			Int("duplicates", duplicates).
			Int("failed", failed).
			Msg("Batch written")
		batch = make([]models.ProcessedRecord, 0, sp.batchSize)
		sp.currentBatchSize.Store(0)
	}

	for {
		select {
		case rec, ok := <-sp.dbWriteQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, rec)
			sp.currentBatchSize.Store(int32(len(batch)))
			if len(batch) >= sp.batchSize {
				flush()
				ticker.Reset(sp.batchTimeout)
			}

		case <-ticker.C:
			flush()

		case <-ctx.Done():
			log.Info().Err(ctx.Err()).Msg("Record writer: context cancelled, writing final batch")
			flush()
			return
		}
	}
}

// sendError sends an error to the error queue without blocking.
func (sp *SpoolProcessor) sendError(err error) {
	if err == nil {
		return
	}
	select {
	case sp.errorQueue <- err:
	default:
		log.Error().Err(err).Msg("Error queue full, logging error instead of queuing")
	}
}

// Stats returns the run's counters.
func (sp *SpoolProcessor) Stats() (processed, duplicates, failures int64) {
	return sp.processed.Load(), sp.duplicates.Load(), sp.failures.Load()
}

// PurgeOldRecords removes records older than the retention window.
func (sp *SpoolProcessor) PurgeOldRecords(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("retentionDays must be positive")
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	log.Info().
		Time("cutoff", cutoff).
		Int("retention_days", retentionDays).
		Msg("Purging old records")

	purged, err := sp.store.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("rows_affected", purged).Msg("Purged old records.")
	return purged, nil
}

func listPayloadFiles(dir string) ([]payloadFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read spool directory: %w", err)
	}

	var files []payloadFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, payloadFile{
			path:       filepath.Join(dir, entry.Name()),
			externalID: strings.TrimSuffix(entry.Name(), ".json"),
		})
	}
	return files, nil
}
