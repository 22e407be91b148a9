// Package store is the persistence adapter for processed records. Writes are
// idempotent, keyed on external_id: inserting an id that already exists is a
// no-op reported to the caller, never an error.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"newswire/wirenorm/internal/database"
	"newswire/wirenorm/internal/models"
)

const insertRecordSQL = `
	INSERT INTO processed_records (external_id, supplier, content, category_codes)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(external_id) DO NOTHING;`

// Store provides record persistence over the shared database connection.
type Store struct {
	db *database.DB
}

// New creates a Store using an existing database connection.
func New(db *database.DB) *Store {
	return &Store{db: db}
}

// InsertIfAbsent writes a record unless one with the same external id already
// exists. Returns false when the record was a duplicate and no write
// occurred.
func (s *Store) InsertIfAbsent(ctx context.Context, rec *models.ProcessedRecord) (bool, error) {
	if err := rec.EncodeColumns(); err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx, insertRecordSQL,
		rec.ExternalID, rec.Supplier, rec.ContentRaw, rec.CategoryCodesRaw)
	if err != nil {
		return false, fmt.Errorf("failed to insert record %s: %w", rec.ExternalID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected for %s: %w", rec.ExternalID, err)
	}
	return affected > 0, nil
}

// InsertBatch writes a batch of records inside one transaction, returning the
// inserted and duplicate counts. Per-record failures are logged and counted
// as failures without aborting the batch.
func (s *Store) InsertBatch(ctx context.Context, batch []models.ProcessedRecord) (inserted, duplicates, failed int, err error) {
	if len(batch) == 0 {
		return 0, 0, 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, insertRecordSQL)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for i := range batch {
		rec := &batch[i]
		if encErr := rec.EncodeColumns(); encErr != nil {
			log.Error().Err(encErr).Str("external_id", rec.ExternalID).Msg("Failed to encode record")
			failed++
			continue
		}

		res, execErr := stmt.ExecContext(ctx,
			rec.ExternalID, rec.Supplier, rec.ContentRaw, rec.CategoryCodesRaw)
		if execErr != nil {
			log.Error().Err(execErr).Str("external_id", rec.ExternalID).Msg("Failed to insert record")
			failed++
			continue
		}

		affected, raErr := res.RowsAffected()
		if raErr != nil {
			log.Error().Err(raErr).Str("external_id", rec.ExternalID).Msg("Failed to get rows affected")
			failed++
			continue
		}
		if affected > 0 {
			inserted++
		} else {
			duplicates++
			log.Info().
				Str("external_id", rec.ExternalID).
				Str("supplier", rec.Supplier).
				Msg("Duplicate delivery, record already stored")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to commit batch: %w", err)
	}
	return inserted, duplicates, failed, nil
}

// ListRecords retrieves records ordered by creation for keyset pagination:
// either everything created after 'since', or everything after the
// (cursorTimestamp, cursorID) position.
func (s *Store) ListRecords(ctx context.Context, limit int, since *time.Time, cursorTimestamp *time.Time, cursorID *int64) ([]models.ProcessedRecord, error) {
	var records []models.ProcessedRecord
	var query string
	var args []any

	const baseQuery = `SELECT * FROM processed_records `
	const orderBy = ` ORDER BY created_at ASC, id ASC LIMIT ?`

	if cursorTimestamp != nil && cursorID != nil {
		query = baseQuery + `WHERE (created_at > ?) OR (created_at = ? AND id > ?)` + orderBy
		args = append(args, cursorTimestamp.UTC(), cursorTimestamp.UTC(), *cursorID, limit)
	} else if since != nil {
		query = baseQuery + `WHERE created_at > ?` + orderBy
		args = append(args, since.UTC(), limit)
	} else {
		return nil, fmt.Errorf("either 'since' or cursor parameters must be provided")
	}

	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.ProcessedRecord{}, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	for i := range records {
		if err := records[i].DecodeColumns(); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// FetchPage returns records with id greater than afterID, for batch passes
// over the whole table.
func (s *Store) FetchPage(ctx context.Context, afterID int64, limit int) ([]models.ProcessedRecord, error) {
	var records []models.ProcessedRecord
	err := s.db.SelectContext(ctx, &records,
		`SELECT * FROM processed_records WHERE id > ? ORDER BY id ASC LIMIT ?`,
		afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch record page: %w", err)
	}

	for i := range records {
		if err := records[i].DecodeColumns(); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// UpdateCategoryCodes rewrites a record's category codes in place, used by
// the recompute pass. Content is never touched.
func (s *Store) UpdateCategoryCodes(ctx context.Context, id int64, supplier string, codes []string) error {
	rec := models.ProcessedRecord{CategoryCodes: codes}
	if err := rec.EncodeColumns(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE processed_records
		SET supplier = ?, category_codes = ?, updated_at = ?
		WHERE id = ?`,
		supplier, rec.CategoryCodesRaw, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update category codes for record %d: %w", id, err)
	}
	return nil
}

// PurgeOlderThan removes records created before the cutoff and returns how
// many were deleted.
func (s *Store) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoffStr := cutoff.UTC().Format("2006-01-02 15:04:05")

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM processed_records WHERE created_at < ?", cutoffStr)
	if err != nil {
		return 0, fmt.Errorf("failed to purge old records: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Warn().Err(err).Msg("Could not get RowsAffected after purge")
		return 0, nil
	}
	return rowsAffected, nil
}
