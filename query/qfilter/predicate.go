package qfilter

import (
	"strings"

	"github.com/samber/lo"

	"map-catalog/query/qshape"
)

type (
	// Predicate checks one dimension. Folded search text is passed along so
	// that it is folded once per pass, not once per record.
	Predicate struct {
		Name  string
		Check func(spec Spec, view qshape.View, search string) bool
	}
)

// Predicates lists every dimension in evaluation order: cheap checks first.
var Predicates = []Predicate{
	{Name: "enabled-tags", Check: fitEnabledTags},
	{Name: "excluded-tags", Check: fitExcludedTags},
	{Name: "min-nps", Check: fitMinNPS},
	{Name: "max-nps", Check: fitMaxNPS},
	{Name: "min-duration", Check: fitMinDuration},
	{Name: "max-duration", Check: fitMaxDuration},
	{Name: "noodle", Check: fitFlag(func(r Spec) bool { return r.Noodle }, func(v qshape.View) bool { return v.HasNoodle })},
	{Name: "me", Check: fitFlag(func(r Spec) bool { return r.MappingExtensions }, func(v qshape.View) bool { return v.HasMappingExtensions })},
	{Name: "cinema", Check: fitFlag(func(r Spec) bool { return r.Cinema }, func(v qshape.View) bool { return v.HasCinema })},
	{Name: "chroma", Check: fitFlag(func(r Spec) bool { return r.Chroma }, func(v qshape.View) bool { return v.HasChroma })},
	{Name: "full-spread", Check: fitFullSpread},
	{Name: "automapper", Check: fitFlag(func(r Spec) bool { return r.Automapper }, func(v qshape.View) bool { return v.IsAutomapper })},
	{Name: "ranked", Check: fitFlag(func(r Spec) bool { return r.Ranked }, func(v qshape.View) bool { return v.IsRanked || v.IsCommunityRanked })},
	{Name: "curated", Check: fitFlag(func(r Spec) bool { return r.Curated }, func(v qshape.View) bool { return v.IsCurated })},
	{Name: "verified", Check: fitFlag(func(r Spec) bool { return r.Verified }, func(v qshape.View) bool { return v.IsVerifiedUploader })},
	{Name: "search", Check: fitSearch},
}

func fitEnabledTags(spec Spec, view qshape.View, _ string) bool {
	if spec.EnabledTags.Len() == 0 {
		return true
	}
	if view.Tags.Len() == 0 {
		return false
	}
	for tag := range spec.EnabledTags {
		if !view.Tags.Has(tag) {
			return false
		}
	}
	return true
}

func fitExcludedTags(spec Spec, view qshape.View, _ string) bool {
	if spec.ExcludedTags.Len() == 0 || view.Tags.Len() == 0 {
		return true
	}
	for tag := range view.Tags {
		if spec.ExcludedTags.Has(tag) {
			return false
		}
	}
	return true
}

// fitMinNPS passes when any difficulty reaches the bound.
func fitMinNPS(spec Spec, view qshape.View, _ string) bool {
	if spec.MinNPS == nil {
		return true
	}
	return lo.SomeBy(view.DifficultyNPS, func(nps float64) bool { return nps >= *spec.MinNPS })
}

func fitMaxNPS(spec Spec, view qshape.View, _ string) bool {
	if spec.MaxNPS == nil {
		return true
	}
	return lo.SomeBy(view.DifficultyNPS, func(nps float64) bool { return nps <= *spec.MaxNPS })
}

func fitMinDuration(spec Spec, view qshape.View, _ string) bool {
	if spec.MinDuration == nil {
		return true
	}
	return view.HasDuration && view.Duration >= *spec.MinDuration
}

func fitMaxDuration(spec Spec, view qshape.View, _ string) bool {
	if spec.MaxDuration == nil {
		return true
	}
	return view.HasDuration && view.Duration <= *spec.MaxDuration
}

func fitFullSpread(spec Spec, view qshape.View, _ string) bool {
	return !spec.FullSpread || view.DifficultyCount >= FullSpreadCount
}

func fitFlag(wanted func(Spec) bool, has func(qshape.View) bool) func(Spec, qshape.View, string) bool {
	return func(spec Spec, view qshape.View, _ string) bool {
		return !wanted(spec) || has(view)
	}
}

func fitSearch(_ Spec, view qshape.View, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(view.Folded.Title, search) ||
		strings.Contains(view.Folded.SongAuthor, search) ||
		strings.Contains(view.Folded.LevelAuthor, search)
}
