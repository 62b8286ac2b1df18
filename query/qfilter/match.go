package qfilter

import (
	"map-catalog/query/qshape"
)

// Matches reports whether view passes every dimension of spec. search
// overrides spec.Search when not empty.
func Matches(spec Spec, view qshape.View, search string) bool {
	return NewMatcher(spec, search)(view)
}

// NewMatcher folds the search text once and returns a predicate to run over
// many views.
func NewMatcher(spec Spec, search string) func(qshape.View) bool {
	folded := foldSearch(spec, search)
	return func(view qshape.View) bool {
		for _, predicate := range Predicates {
			if !predicate.Check(spec, view, folded) {
				return false
			}
		}
		return true
	}
}

// Rejecting names the first dimension view fails, or "" when it matches.
func Rejecting(spec Spec, view qshape.View, search string) string {
	folded := foldSearch(spec, search)
	for _, predicate := range Predicates {
		if !predicate.Check(spec, view, folded) {
			return predicate.Name
		}
	}
	return ""
}

func foldSearch(spec Spec, search string) string {
	if search == "" {
		search = spec.Search
	}
	return qshape.Fold(search)
}
