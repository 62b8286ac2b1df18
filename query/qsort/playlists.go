package qsort

import (
	"strings"

	"map-catalog/ds"
	"map-catalog/query/qshape"
)

type (
	// Playlist is the summary the playlist pickers sort. Duration and the NPS
	// bounds are zero when none of the maps carries them.
	Playlist struct {
		Title        string  `json:"title"`
		Author       string  `json:"author"`
		Path         string  `json:"path,omitempty"`
		NumberOfMaps int     `json:"number_of_maps"`
		Duration     uint32  `json:"duration,omitempty"`
		MinNPS       float64 `json:"min_nps,omitempty"`
		MaxNPS       float64 `json:"max_nps,omitempty"`
	}
)

const (
	PlaylistTitle          = "title"
	PlaylistAuthor         = "author"
	PlaylistNumberOfMaps   = "number-of-maps"
	PlaylistDuration       = "duration"
	PlaylistNotesPerSecond = "notes-per-second"
)

// NewPlaylist summarizes the maps of a playlist.
func NewPlaylist(title string, author string, entries []qshape.Entry) Playlist {
	playlist := Playlist{
		Title:        title,
		Author:       author,
		NumberOfMaps: len(entries),
	}
	first := true
	for _, entry := range entries {
		if entry.View.HasDuration {
			playlist.Duration += entry.View.Duration
		}
		for _, nps := range entry.View.DifficultyNPS {
			if first || nps < playlist.MinNPS {
				playlist.MinNPS = nps
			}
			if first || nps > playlist.MaxNPS {
				playlist.MaxNPS = nps
			}
			first = false
		}
	}
	return playlist
}

func comparePlaylistTitle(a, b Playlist) int {
	if result := CompareText(a.Title, b.Title); result != 0 {
		return result
	}
	return strings.Compare(a.Path, b.Path)
}

var Playlists = ds.MustSorter(ds.SorterOptions[Playlist]{
	DefaultKey:  PlaylistTitle,
	TiebreakKey: PlaylistTitle,
	Comparators: map[string]ds.Comparator[Playlist]{
		PlaylistTitle: comparePlaylistTitle,
		PlaylistAuthor: func(a, b Playlist) int {
			return CompareText(a.Author, b.Author)
		},
		PlaylistNumberOfMaps: func(a, b Playlist) int {
			return ds.CompareOrdered(a.NumberOfMaps, b.NumberOfMaps)
		},
		PlaylistDuration: func(a, b Playlist) int {
			return ds.CompareMissingLast(a.Duration, a.Duration > 0, b.Duration, b.Duration > 0, ds.CompareOrdered[uint32])
		},
		PlaylistNotesPerSecond: func(a, b Playlist) int {
			return ds.CompareMissingLast(a.MaxNPS, a.MaxNPS > 0, b.MaxNPS, b.MaxNPS > 0, ds.CompareOrdered[float64])
		},
	},
	Presence: map[string]func(Playlist) bool{
		PlaylistDuration:       func(p Playlist) bool { return p.Duration > 0 },
		PlaylistNotesPerSecond: func(p Playlist) bool { return p.MaxNPS > 0 },
	},
})
