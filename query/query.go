// Package query filters and orders catalog records of any shape.
package query

import (
	"github.com/samber/lo"

	"map-catalog/query/qfilter"
	"map-catalog/query/qshape"
	"map-catalog/query/qsort"
)

type (
	Request struct {
		Spec      qfilter.Spec `json:"spec" yaml:"spec"`
		Search    string       `json:"search,omitempty" yaml:"search,omitempty"`
		SortKey   string       `json:"sort,omitempty" yaml:"sort,omitempty"`
		Ascending bool         `json:"ascending" yaml:"ascending"`
		// Limit caps the number of returned records; 0 returns all of them.
		Limit int `json:"limit,omitempty" yaml:"limit,omitempty"`
	}
	Result struct {
		Records []qshape.Record `json:"records"`
		// Matched counts the records that passed the filter, before Limit.
		Matched int    `json:"matched"`
		Total   int    `json:"total"`
		SortKey string `json:"sort"`
	}
)

// FilterAndSort normalizes every record, keeps the ones spec matches and
// orders them by sortKey. Unknown keys sort by name. records is not modified.
func FilterAndSort(records []qshape.Record, spec qfilter.Spec, sortKey string, ascending bool) []qshape.Record {
	entries := qshape.NewEntries(records)
	return run(entries, Request{Spec: spec, SortKey: sortKey, Ascending: ascending}).Records
}

func run(entries []qshape.Entry, request Request) Result {
	matcher := qfilter.NewMatcher(request.Spec, request.Search)
	matched := lo.Filter(entries, func(entry qshape.Entry, _ int) bool {
		return matcher(entry.View)
	})
	sortKey := qsort.Maps.Resolve(request.SortKey)
	sorted := qsort.Maps.Sort(matched, sortKey, request.Ascending)
	if request.Limit > 0 && len(sorted) > request.Limit {
		sorted = sorted[:request.Limit]
	}
	return Result{
		Records: lo.Map(sorted, func(entry qshape.Entry, _ int) qshape.Record { return entry.Record }),
		Matched: len(matched),
		Total:   len(entries),
		SortKey: sortKey,
	}
}
