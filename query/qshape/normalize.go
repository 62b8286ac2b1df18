package qshape

import (
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"map-catalog/ds"
	"map-catalog/mapcache/mrecord"
	"map-catalog/mapcache/mtag"
)

type (
	// Entry pairs a record with its View so that filtering and sorting read
	// each record once.
	Entry struct {
		Record Record
		View   View
	}
)

func NewEntry(record Record) Entry {
	return Entry{Record: record, View: Normalize(record)}
}

func NewEntries(records []Record) []Entry {
	return lo.Map(records, func(record Record, _ int) Entry {
		return NewEntry(record)
	})
}

// Normalize extracts the View of record. It never fails: missing data yields
// the zero value of the matching View fields.
func Normalize(record Record) View {
	var view View
	switch record.kind {
	case KindLocal:
		view = normalizeLocal(record.local)
	case KindRemote:
		view = normalizeRemote(record.remote)
	case KindCanonical:
		view = normalizeCanonical(record.canonical)
	case KindUnknown:
		return View{}
	default:
		panic(ds.ErrUnreachableCode{Caller: "Normalize", Value: record.kind})
	}
	view.Folded = foldText(view.Text)
	view.MaxNPS = lo.Max(view.DifficultyNPS)
	return view
}

// normalizeCanonical uses the uploader for both authors: the cache carries no
// song author.
func normalizeCanonical(canonical *mrecord.Record) View {
	view := detailsView(canonical)
	view.Text = Text{
		Title:       canonical.Name,
		SongAuthor:  canonical.Uploader.Name,
		LevelAuthor: canonical.Uploader.Name,
	}
	return view
}

func normalizeLocal(local *LocalRecord) View {
	view := View{}
	if local.Details != nil {
		view = detailsView(local.Details)
	}
	view.Text = Text{
		Title:       local.Info.SongName,
		SongAuthor:  local.Info.SongAuthorName,
		LevelAuthor: local.Info.LevelAuthorName,
	}
	view.BPM = local.Info.BeatsPerMinute
	return view
}

// detailsView reads everything a canonical record knows, text excepted.
func detailsView(details *mrecord.Record) View {
	return View{
		Tags:                 mtag.NewSet(details.Tags...),
		Duration:             details.Duration,
		HasDuration:          details.Duration > 0,
		DifficultyNPS:        lo.Map(details.Difficulties, func(d mrecord.Difficulty, _ int) float64 { return d.NPS }),
		DifficultyCount:      len(details.Difficulties),
		HasChroma:            lo.SomeBy(details.Difficulties, func(d mrecord.Difficulty) bool { return d.Chroma }),
		HasCinema:            lo.SomeBy(details.Difficulties, func(d mrecord.Difficulty) bool { return d.Cinema }),
		HasNoodle:            lo.SomeBy(details.Difficulties, func(d mrecord.Difficulty) bool { return d.NE }),
		HasMappingExtensions: lo.SomeBy(details.Difficulties, func(d mrecord.Difficulty) bool { return d.ME }),
		IsAutomapper:         details.Automapper,
		IsRanked:             details.Ranked,
		IsCommunityRanked:    details.BLRanked,
		IsCurated:            details.Curated,
		IsVerifiedUploader:   details.Uploader.Verified,
		UpVotes:              details.UpVotes,
		UploadedAt:           details.UploadedAt,
		HasStats:             true,
	}
}

// normalizeRemote titles the record with the map name, falling back to the
// song name.
func normalizeRemote(remote *RemoteRecord) View {
	var diffs []RemoteDiff
	if len(remote.Versions) > 0 {
		diffs = remote.Versions[0].Diffs
	}
	return View{
		Tags:                 mtag.NewSet(mtag.ParseAll(remote.Tags)...),
		Duration:             remote.Metadata.Duration,
		HasDuration:          remote.Metadata.Duration > 0,
		DifficultyNPS:        lo.Map(diffs, func(d RemoteDiff, _ int) float64 { return d.NPS }),
		DifficultyCount:      len(diffs),
		HasChroma:            lo.SomeBy(diffs, func(d RemoteDiff) bool { return d.Chroma }),
		HasCinema:            lo.SomeBy(diffs, func(d RemoteDiff) bool { return d.Cinema }),
		HasNoodle:            lo.SomeBy(diffs, func(d RemoteDiff) bool { return d.NE }),
		HasMappingExtensions: lo.SomeBy(diffs, func(d RemoteDiff) bool { return d.ME }),
		IsAutomapper:         remote.Automapper,
		IsRanked:             remote.Ranked,
		IsCommunityRanked:    remote.BLRanked,
		IsCurated:            remote.Curator != nil,
		IsVerifiedUploader:   remote.Uploader.VerifiedMapper,
		Text: Text{
			Title:       lo.Ternary(remote.Name != "", remote.Name, remote.Metadata.SongName),
			SongAuthor:  remote.Metadata.SongAuthorName,
			LevelAuthor: remote.Metadata.LevelAuthorName,
		},
		BPM:        remote.Metadata.BPM,
		UpVotes:    remote.Stats.Upvotes,
		UploadedAt: parseUploaded(remote.Uploaded),
		HasStats:   true,
	}
}

// parseUploaded returns 0 for a missing or unreadable timestamp.
func parseUploaded(s string) int64 {
	if s == "" {
		return 0
	}
	uploaded, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0
	}
	return uploaded.Unix()
}

func foldText(text Text) Text {
	fold := cases.Fold()
	return Text{
		Title:       fold.String(text.Title),
		SongAuthor:  fold.String(text.SongAuthor),
		LevelAuthor: fold.String(text.LevelAuthor),
	}
}

// Fold case-folds s the way View.Folded is folded.
func Fold(s string) string {
	return cases.Fold().String(s)
}
