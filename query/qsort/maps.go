package qsort

import (
	"strings"

	"map-catalog/ds"
	"map-catalog/query/qshape"
)

const (
	MapName         = "name"
	MapSongAuthor   = "song-author"
	MapMapAuthor    = "map-author"
	MapBPM          = "bpm"
	MapDuration     = "duration"
	MapLikes        = "likes"
	MapDateUploaded = "date-uploaded"
	MapNPS          = "nps"
)

// compareMapName is the tie-break: the title, then the record key, which is
// unique per record. Records without a key fall back to the authors; two of
// them with the same text keep their input order.
func compareMapName(a, b qshape.Entry) int {
	if result := CompareText(a.View.Text.Title, b.View.Text.Title); result != 0 {
		return result
	}
	if result := strings.Compare(a.Record.Key(), b.Record.Key()); result != 0 {
		return result
	}
	if result := strings.Compare(a.View.Text.SongAuthor, b.View.Text.SongAuthor); result != 0 {
		return result
	}
	return strings.Compare(a.View.Text.LevelAuthor, b.View.Text.LevelAuthor)
}

func hasDuration(e qshape.Entry) bool {
	return e.View.HasDuration
}

func hasStats(e qshape.Entry) bool {
	return e.View.HasStats
}

func hasNPS(e qshape.Entry) bool {
	return len(e.View.DifficultyNPS) > 0
}

func missingLast[V any](present func(qshape.Entry) bool, value func(qshape.Entry) V, compare ds.Comparator[V]) ds.Comparator[qshape.Entry] {
	return func(a, b qshape.Entry) int {
		return ds.CompareMissingLast(value(a), present(a), value(b), present(b), compare)
	}
}

var Maps = ds.MustSorter(ds.SorterOptions[qshape.Entry]{
	DefaultKey:  MapName,
	TiebreakKey: MapName,
	Comparators: map[string]ds.Comparator[qshape.Entry]{
		MapName: compareMapName,
		MapSongAuthor: func(a, b qshape.Entry) int {
			return CompareText(a.View.Text.SongAuthor, b.View.Text.SongAuthor)
		},
		MapMapAuthor: func(a, b qshape.Entry) int {
			return CompareText(a.View.Text.LevelAuthor, b.View.Text.LevelAuthor)
		},
		MapBPM: func(a, b qshape.Entry) int {
			return ds.CompareOrdered(a.View.BPM, b.View.BPM)
		},
		MapDuration: missingLast(
			hasDuration,
			func(e qshape.Entry) uint32 { return e.View.Duration },
			ds.CompareOrdered[uint32],
		),
		MapLikes: missingLast(
			hasStats,
			func(e qshape.Entry) uint32 { return e.View.UpVotes },
			ds.CompareOrdered[uint32],
		),
		MapDateUploaded: missingLast(
			hasStats,
			func(e qshape.Entry) int64 { return e.View.UploadedAt },
			ds.CompareOrdered[int64],
		),
		MapNPS: missingLast(
			hasNPS,
			func(e qshape.Entry) float64 { return e.View.MaxNPS },
			ds.CompareOrdered[float64],
		),
	},
	Presence: map[string]func(qshape.Entry) bool{
		MapDuration:     hasDuration,
		MapLikes:        hasStats,
		MapDateUploaded: hasStats,
		MapNPS:          hasNPS,
	},
})
