// Package qfilter evaluates a filter Spec against a normalized record.
//
// A dimension left unset never rejects a record. A dimension that is set
// rejects a record that lacks the data needed to check it, with two
// exceptions: excluded tags pass a record without tags, and the status
// dimensions read their flag directly.
package qfilter

import (
	"map-catalog/mapcache/mtag"
)

type (
	// Spec is the persisted filter state. Boolean dimensions are off when
	// false; range bounds are off when nil, and a set bound is a constraint
	// even at zero.
	Spec struct {
		EnabledTags       mtag.Set `json:"enabled_tags,omitempty" yaml:"enabled_tags,omitempty"`
		ExcludedTags      mtag.Set `json:"excluded_tags,omitempty" yaml:"excluded_tags,omitempty"`
		MinNPS            *float64 `json:"min_nps,omitempty" yaml:"min_nps,omitempty"`
		MaxNPS            *float64 `json:"max_nps,omitempty" yaml:"max_nps,omitempty"`
		MinDuration       *uint32  `json:"min_duration,omitempty" yaml:"min_duration,omitempty"`
		MaxDuration       *uint32  `json:"max_duration,omitempty" yaml:"max_duration,omitempty"`
		Chroma            bool     `json:"chroma,omitempty" yaml:"chroma,omitempty"`
		Noodle            bool     `json:"noodle,omitempty" yaml:"noodle,omitempty"`
		MappingExtensions bool     `json:"me,omitempty" yaml:"me,omitempty"`
		Cinema            bool     `json:"cinema,omitempty" yaml:"cinema,omitempty"`
		FullSpread        bool     `json:"full_spread,omitempty" yaml:"full_spread,omitempty"`
		Automapper        bool     `json:"automapper,omitempty" yaml:"automapper,omitempty"`
		Ranked            bool     `json:"ranked,omitempty" yaml:"ranked,omitempty"`
		Curated           bool     `json:"curated,omitempty" yaml:"curated,omitempty"`
		Verified          bool     `json:"verified,omitempty" yaml:"verified,omitempty"`
		Search            string   `json:"search,omitempty" yaml:"search,omitempty"`
	}
)

// FullSpreadCount is the number of difficulties a full spread needs.
const FullSpreadCount = 5

// IsEmpty reports whether spec sets no dimension at all.
func (r Spec) IsEmpty() bool {
	return r.EnabledTags.Len() == 0 &&
		r.ExcludedTags.Len() == 0 &&
		r.MinNPS == nil &&
		r.MaxNPS == nil &&
		r.MinDuration == nil &&
		r.MaxDuration == nil &&
		!r.Chroma &&
		!r.Noodle &&
		!r.MappingExtensions &&
		!r.Cinema &&
		!r.FullSpread &&
		!r.Automapper &&
		!r.Ranked &&
		!r.Curated &&
		!r.Verified &&
		r.Search == ""
}

// Merge returns spec with every dimension set in other overriding it.
func (r Spec) Merge(other Spec) Spec {
	merged := r
	if other.EnabledTags.Len() > 0 {
		merged.EnabledTags = other.EnabledTags
	}
	if other.ExcludedTags.Len() > 0 {
		merged.ExcludedTags = other.ExcludedTags
	}
	if other.MinNPS != nil {
		merged.MinNPS = other.MinNPS
	}
	if other.MaxNPS != nil {
		merged.MaxNPS = other.MaxNPS
	}
	if other.MinDuration != nil {
		merged.MinDuration = other.MinDuration
	}
	if other.MaxDuration != nil {
		merged.MaxDuration = other.MaxDuration
	}
	merged.Chroma = merged.Chroma || other.Chroma
	merged.Noodle = merged.Noodle || other.Noodle
	merged.MappingExtensions = merged.MappingExtensions || other.MappingExtensions
	merged.Cinema = merged.Cinema || other.Cinema
	merged.FullSpread = merged.FullSpread || other.FullSpread
	merged.Automapper = merged.Automapper || other.Automapper
	merged.Ranked = merged.Ranked || other.Ranked
	merged.Curated = merged.Curated || other.Curated
	merged.Verified = merged.Verified || other.Verified
	if other.Search != "" {
		merged.Search = other.Search
	}
	return merged
}
