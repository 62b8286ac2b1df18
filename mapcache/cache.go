// Package mapcache turns a song details cache payload into canonical records
// and indexes them by hash and map id.
package mapcache

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"map-catalog/logging"
	"map-catalog/mapcache/mlookup"
	"map-catalog/mapcache/mrecord"
	"map-catalog/mapcache/mwire"
	"map-catalog/query/qshape"
)

type (
	// Cache is read-only once built and safe for concurrent readers.
	Cache struct {
		tables      *mlookup.Tables
		records     []mrecord.Record
		byHash      map[string]int
		byID        map[string]int
		lastUpdated int64
		total       uint32
		checksum    uint64
		report      Report
	}
	// Report counts what a load kept and what it skipped.
	Report struct {
		Decoded   int     `json:"decoded"`
		Failed    int     `json:"failed"`
		Malformed int     `json:"malformed"`
		Errors    []error `json:"-"`
	}
)

// Load reads an encoded payload, gzip-compressed or not, and decodes every
// record it can. Only an unreadable payload is an error; bad records are
// counted in the report.
func Load(bs []byte, logger logging.Logger) (*Cache, error) {
	logger = logging.OrNop(logger)
	payload, err := mwire.Decode(bs)
	if err != nil {
		Loads.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "Load error")
	}
	cache := New(payload)
	cache.checksum = xxhash.Sum64(bs)
	Loads.WithLabelValues("ok").Inc()
	DecodedRecords.WithLabelValues("ok").Add(float64(cache.report.Decoded))
	DecodedRecords.WithLabelValues("failed").Add(float64(cache.report.Failed))
	DecodedRecords.WithLabelValues("malformed").Add(float64(cache.report.Malformed))
	LastUpdatedSeconds.Set(float64(cache.lastUpdated))

	args := []any{
		"decoded", cache.report.Decoded,
		"failed", cache.report.Failed,
		"malformed", cache.report.Malformed,
		"last_updated", cache.lastUpdated,
		"checksum", cache.checksum,
	}
	if len(cache.report.Errors) > 0 {
		args = append(args, "first_error", cache.report.Errors[0].Error())
		logger.Warn("cache loaded with errors", args...)
	} else {
		logger.Info("cache loaded", args...)
	}
	return cache, nil
}

// New builds a cache from an already read payload.
func New(payload *mwire.Payload) *Cache {
	tables := mlookup.NewTables(payload.Uploaders, payload.DifficultyLabels)
	records, decodeReport := mrecord.DecodeAll(tables, payload.Songs)

	cache := Cache{
		tables:      tables,
		records:     records,
		byHash:      make(map[string]int, len(records)),
		byID:        make(map[string]int, len(records)),
		lastUpdated: payload.LastUpdated,
		total:       payload.Total,
		report: Report{
			Decoded:   decodeReport.Decoded,
			Failed:    decodeReport.Failed,
			Malformed: len(payload.Malformed),
			Errors:    append(append([]error{}, payload.Malformed...), decodeReport.Errors...),
		},
	}
	for i, record := range records {
		// first entry wins on duplicates
		if _, ok := cache.byHash[record.Hash]; !ok {
			cache.byHash[record.Hash] = i
		}
		if _, ok := cache.byID[record.ID]; !ok {
			cache.byID[record.ID] = i
		}
	}
	return &cache
}

func (r *Cache) Tables() *mlookup.Tables {
	return r.tables
}

// Records returns the decoded records in payload order. The slice is shared
// and must not be modified.
func (r *Cache) Records() []mrecord.Record {
	return r.records
}

func (r *Cache) Len() int {
	return len(r.records)
}

func (r *Cache) LastUpdated() int64 {
	return r.lastUpdated
}

// Total is the record count the payload claims, which may exceed Len.
func (r *Cache) Total() uint32 {
	return r.total
}

// Checksum fingerprints the payload bytes as read by Load, so a refresh that
// brings the same payload can be told apart from a new one. It is 0 for a
// cache built with New.
func (r *Cache) Checksum() uint64 {
	return r.checksum
}

func (r *Cache) Report() Report {
	return r.report
}

func (r *Cache) ByHash(hash string) (*mrecord.Record, bool) {
	i, ok := r.byHash[strings.ToLower(strings.TrimSpace(hash))]
	if !ok {
		return nil, false
	}
	return &r.records[i], true
}

func (r *Cache) ByID(id string) (*mrecord.Record, bool) {
	i, ok := r.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, false
	}
	return &r.records[i], true
}

// Enrich returns copies of locals with Details set from the cache. Locals
// that are not in the cache keep their current Details.
func (r *Cache) Enrich(locals []qshape.LocalRecord) []qshape.LocalRecord {
	return lo.Map(locals, func(local qshape.LocalRecord, _ int) qshape.LocalRecord {
		if details, ok := r.ByHash(local.Hash); ok {
			detailsCopy := *details
			local.Details = &detailsCopy
		}
		return local
	})
}

// CanonicalRecords wraps every record for the query engine.
func (r *Cache) CanonicalRecords() []qshape.Record {
	return lo.Map(r.records, func(record mrecord.Record, _ int) qshape.Record {
		return qshape.Canonical(record)
	})
}
