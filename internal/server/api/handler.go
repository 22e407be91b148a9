// Package api serves processed records. Classification runs here, consumer
// side, at query time: every returned record carries the preset names it
// matches, and a preset filter narrows the result set.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/hlog"

	"newswire/wirenorm/internal/category"
	"newswire/wirenorm/internal/classify"
	"newswire/wirenorm/internal/models"
	"newswire/wirenorm/internal/server/pagination"
)

const defaultLimit = 100
const maxLimit = 1000
const iso8601Format = time.RFC3339

// RecordLister is the slice of the store the handler consumes.
type RecordLister interface {
	ListRecords(ctx context.Context, limit int, since *time.Time, cursorTimestamp *time.Time, cursorID *int64) ([]models.ProcessedRecord, error)
}

// ClassifiedRecord is a processed record plus the preset names it matches.
type ClassifiedRecord struct {
	models.ProcessedRecord
	Classifications []string `json:"classifications"`
}

// Response structure for the records endpoint
type Response struct {
	Items      []ClassifiedRecord `json:"items"`
	NextCursor *string            `json:"next_cursor,omitempty"`
}

// RecordsHandler holds dependencies for the records API handler.
type RecordsHandler struct {
	repo   RecordLister
	engine *classify.Engine
}

// NewRecordsHandler creates a new handler instance.
func NewRecordsHandler(repo RecordLister, engine *classify.Engine) *RecordsHandler {
	return &RecordsHandler{repo: repo, engine: engine}
}

// GetRecords handles requests to fetch processed records.
func (h *RecordsHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)
	log.Debug().Msg("Processing records request")

	ctx := r.Context()

	query := r.URL.Query()
	limitStr := query.Get("limit")
	sinceStr := query.Get("since")
	cursorStr := query.Get("cursor")
	presetFilter := query.Get("preset")

	limit := defaultLimit
	if limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit <= 0 || parsedLimit > maxLimit {
			log.Warn().Err(err).Str("limit", limitStr).Msg("Invalid 'limit' parameter value")
			http.Error(w, fmt.Sprintf("Invalid 'limit' parameter: must be between 1 and %d", maxLimit), http.StatusBadRequest)
			return
		}
		limit = parsedLimit
	}

	var since *time.Time
	var cursorTimestamp *time.Time
	var cursorID *int64

	if cursorStr != "" {
		ts, id, err := pagination.DecodeCursor(cursorStr)
		if err != nil {
			log.Warn().Err(err).Str("cursor", cursorStr).Msg("Invalid 'cursor' parameter")
			http.Error(w, "Invalid 'cursor' parameter", http.StatusBadRequest)
			return
		}
		cursorTimestamp = &ts
		cursorID = &id
	} else if sinceStr != "" {
		parsedSince, err := time.Parse(iso8601Format, sinceStr)
		if err != nil {
			log.Warn().Err(err).Str("since", sinceStr).Msg("Invalid 'since' parameter format")
			http.Error(w, "Invalid 'since' parameter: use RFC3339 format (e.g., 2026-08-01T15:00:00Z)", http.StatusBadRequest)
			return
		}
		utcSince := parsedSince.UTC()
		since = &utcSince
	} else {
		log.Warn().Msg("Missing required parameter: 'since' or 'cursor'")
		http.Error(w, "Missing required parameter: 'since' or 'cursor'", http.StatusBadRequest)
		return
	}

	records, err := h.repo.ListRecords(ctx, limit+1, since, cursorTimestamp, cursorID) // Fetch one extra
	if err != nil {
		errLogEvent := log.Error().Err(err)
		if since != nil {
			errLogEvent = errLogEvent.Time("since", *since)
		}
		errLogEvent.Str("cursor", cursorStr).Msg("Error fetching records from repository")

		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var nextCursorStr *string
	hasNextPage := len(records) > limit
	pageRecords := records
	if hasNextPage {
		pageRecords = records[:limit]
		if len(pageRecords) > 0 {
			lastRecord := pageRecords[len(pageRecords)-1]
			cursor := pagination.EncodeCursor(lastRecord.CreatedAt.UTC(), lastRecord.ID)
			nextCursorStr = &cursor
		}
	}

	items := make([]ClassifiedRecord, 0, len(pageRecords))
	for _, rec := range pageRecords {
		classifications := h.engine.Classify(classify.Record{
			CategoryCodes: rec.CategoryCodes,
			Supplier:      category.Supplier(rec.Supplier),
			Keywords:      rec.Content.Keywords,
		})
		if presetFilter != "" && !contains(classifications, presetFilter) {
			continue
		}
		items = append(items, ClassifiedRecord{ProcessedRecord: rec, Classifications: classifications})
	}

	response := Response{
		Items:      items,
		NextCursor: nextCursorStr,
	}

	jsonBytes, err := json.Marshal(response)
	if err != nil {
		log.Error().Err(err).Msg("Error marshaling JSON response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, writeErr := w.Write(jsonBytes); writeErr != nil {
		log.Error().Err(writeErr).Msg("Error writing JSON response body to client")
	}
	log.Debug().Int("bytes_written", len(jsonBytes)).Msg("Response completed")
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
