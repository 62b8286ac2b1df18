package query

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"map-catalog/logging"
	"map-catalog/query/qfilter"
	"map-catalog/query/qshape"
)

var ViewCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "catalog",
	Subsystem: "query",
	Name:      "view_cache_lookups",
}, []string{"result"})

const DefaultViewCacheSize = 50_000

// Engine runs requests over the same records repeatedly, as a search box
// does on every keystroke, keeping the normalized views of recently seen
// records. Views are keyed by record identity, so Purge must be called
// whenever the records behind a key change, e.g. after a cache refresh.
type Engine struct {
	views  *lru.Cache[string, qshape.View]
	logger logging.Logger
}

func NewEngine(size int, logger logging.Logger) (*Engine, error) {
	if size <= 0 {
		size = DefaultViewCacheSize
	}
	views, err := lru.New[string, qshape.View](size)
	if err != nil {
		return nil, errors.Wrapf(err, "NewEngine error: size %d", size)
	}
	return &Engine{
		views:  views,
		logger: logging.OrNop(logger),
	}, nil
}

// viewKey tells an enriched local record apart from the same record before
// enrichment. Records without identity get "" and are never cached.
func viewKey(record qshape.Record) string {
	key := record.Key()
	if key == "" {
		return ""
	}
	if local, ok := record.AsLocal(); ok && local.Details != nil {
		key += "+details"
	}
	return key
}

func (r *Engine) Entry(record qshape.Record) qshape.Entry {
	key := viewKey(record)
	if key == "" {
		return qshape.NewEntry(record)
	}
	if view, ok := r.views.Get(key); ok {
		ViewCacheLookups.WithLabelValues("hit").Inc()
		return qshape.Entry{Record: record, View: view}
	}
	ViewCacheLookups.WithLabelValues("miss").Inc()
	entry := qshape.NewEntry(record)
	r.views.Add(key, entry.View)
	return entry
}

func (r *Engine) Run(records []qshape.Record, request Request) Result {
	entries := make([]qshape.Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, r.Entry(record))
	}
	result := run(entries, request)
	r.logger.Debug(
		"query done",
		"total", result.Total,
		"matched", result.Matched,
		"returned", len(result.Records),
		"sort", result.SortKey,
	)
	return result
}

func (r *Engine) FilterAndSort(records []qshape.Record, spec qfilter.Spec, sortKey string, ascending bool) []qshape.Record {
	request := Request{Spec: spec, SortKey: sortKey, Ascending: ascending}
	return r.Run(records, request).Records
}

// Purge drops every cached view.
func (r *Engine) Purge() {
	r.views.Purge()
}

func (r *Engine) Len() int {
	return r.views.Len()
}

func init() {
	prometheus.MustRegister(ViewCacheLookups)
}
