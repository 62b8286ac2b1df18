package qshape

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-catalog/mapcache/mdiff"
	"map-catalog/mapcache/mrecord"
	"map-catalog/mapcache/mtag"
)

func createCanonical() mrecord.Record {
	return mrecord.Record{
		ID:       "1a2b",
		Hash:     "0123456789abcdef0123456789abcdef01234567",
		Name:     "Étude",
		Duration: 150,
		Uploader: mrecord.Uploader{Name: "Timbo", ID: 2, Verified: true, Resolved: true},
		Tags:     []mtag.Tag{mtag.Tech, mtag.Dance},
		Ranked:   true,
		UpVotes:  40,
		Difficulties: []mrecord.Difficulty{
			{Difficulty: mdiff.Expert, Characteristic: mdiff.Standard, NPS: 3, Chroma: true},
			{Difficulty: mdiff.ExpertPlus, Characteristic: mdiff.Standard, NPS: 6, ME: true},
		},
	}
}

func createRemote() RemoteRecord {
	return RemoteRecord{
		ID:       "FF",
		Name:     "Remote map",
		BLRanked: true,
		Curator:  &RemoteUser{Name: "curator"},
		Uploader: RemoteUser{Name: "uploader", VerifiedMapper: true},
		Metadata: RemoteMetadata{
			BPM:             174,
			Duration:        200,
			SongName:        "Song",
			SongAuthorName:  "Artist",
			LevelAuthorName: "Mapper",
		},
		Stats:    RemoteStats{Upvotes: 12},
		Tags:     []string{"Tech", "speed", "not-a-tag"},
		Uploaded: "2022-04-15T05:20:00Z",
		Versions: []RemoteVersion{
			{Diffs: []RemoteDiff{{NPS: 8.5, NE: true}, {NPS: 4, Cinema: true}}},
			{Diffs: []RemoteDiff{{NPS: 99}}},
		},
	}
}

func TestNormalize_Canonical(t *testing.T) {
	view := Normalize(Canonical(createCanonical()))
	assert.Equal(t, mtag.NewSet(mtag.Tech, mtag.Dance), view.Tags)
	assert.True(t, view.HasDuration)
	assert.Equal(t, uint32(150), view.Duration)
	assert.Equal(t, []float64{3, 6}, view.DifficultyNPS)
	assert.Equal(t, 6.0, view.MaxNPS)
	assert.Equal(t, 2, view.DifficultyCount)
	assert.True(t, view.HasChroma)
	assert.True(t, view.HasMappingExtensions)
	assert.False(t, view.HasNoodle)
	assert.False(t, view.HasCinema)
	assert.True(t, view.IsRanked)
	assert.True(t, view.IsVerifiedUploader)
	assert.Equal(t, Text{Title: "Étude", SongAuthor: "Timbo", LevelAuthor: "Timbo"}, view.Text)
	assert.Equal(t, "étude", view.Folded.Title)
	assert.True(t, view.HasStats)
}

func TestNormalize_Local(t *testing.T) {
	local := LocalRecord{
		Hash: "ABC",
		Info: RawInfo{
			SongName:        "Local Song",
			SongAuthorName:  "Local Artist",
			LevelAuthorName: "Local Mapper",
			BeatsPerMinute:  128,
		},
	}

	bare := Normalize(Local(local))
	assert.Empty(t, bare.Tags)
	assert.False(t, bare.HasDuration)
	assert.Zero(t, bare.DifficultyCount)
	assert.False(t, bare.HasStats)
	assert.Equal(t, 128.0, bare.BPM)
	assert.Equal(t, "local artist", bare.Folded.SongAuthor)

	details := createCanonical()
	local.Details = &details
	enriched := Normalize(Local(local))
	assert.Equal(t, uint32(150), enriched.Duration)
	assert.Equal(t, 2, enriched.DifficultyCount)
	assert.True(t, enriched.HasStats)
	// text stays file-derived
	assert.Equal(t, "Local Song", enriched.Text.Title)
}

func TestNormalize_Remote(t *testing.T) {
	view := Normalize(Remote(createRemote()))
	assert.Equal(t, mtag.NewSet(mtag.Tech, mtag.Speed), view.Tags)
	assert.Equal(t, []float64{8.5, 4}, view.DifficultyNPS)
	assert.True(t, view.HasNoodle)
	assert.True(t, view.HasCinema)
	assert.False(t, view.HasChroma)
	assert.True(t, view.IsCommunityRanked)
	assert.True(t, view.IsCurated)
	assert.True(t, view.IsVerifiedUploader)
	assert.Equal(t, int64(1650000000), view.UploadedAt)
	assert.Equal(t, Text{Title: "Remote map", SongAuthor: "Artist", LevelAuthor: "Mapper"}, view.Text)

	unnamed := createRemote()
	unnamed.Name = ""
	assert.Equal(t, "Song", Normalize(Remote(unnamed)).Text.Title)

	noVersions := createRemote()
	noVersions.Versions = nil
	noVersions.Uploaded = "yesterday"
	view = Normalize(Remote(noVersions))
	assert.Zero(t, view.DifficultyCount)
	assert.Zero(t, view.UploadedAt)
}

func TestNormalize_Unknown(t *testing.T) {
	assert.Equal(t, View{}, Normalize(Record{}))
}

func TestRecord_Key(t *testing.T) {
	assert.Equal(t, "canonical:0123456789abcdef0123456789abcdef01234567", Canonical(createCanonical()).Key())
	assert.Equal(t, "remote:ff", Remote(createRemote()).Key())
	assert.Equal(t, "local:abc", Local(LocalRecord{Hash: "ABC"}).Key())
	assert.Equal(t, "local:/maps/x", Local(LocalRecord{Path: "/maps/x"}).Key())
	assert.Equal(t, "local:abc@/maps/x", Local(LocalRecord{Hash: "ABC", Path: "/maps/x"}).Key())
	assert.Equal(t, "", Record{}.Key())

	// no identity
	assert.Equal(t, "", Local(LocalRecord{}).Key())
	assert.Equal(t, "", Remote(RemoteRecord{}).Key())
	assert.Equal(t, "", Canonical(mrecord.Record{}).Key())
}

func TestRecord_JSON(t *testing.T) {
	records := []Record{
		Canonical(createCanonical()),
		Remote(createRemote()),
		Local(LocalRecord{Hash: "abc", Info: RawInfo{SongName: "x"}}),
	}
	bs, err := json.Marshal(records)
	require.NoError(t, err)

	decoded := make([]Record, 0)
	require.NoError(t, json.Unmarshal(bs, &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, KindCanonical, decoded[0].Kind())
	assert.Equal(t, KindRemote, decoded[1].Kind())
	local, ok := decoded[2].AsLocal()
	require.True(t, ok)
	assert.Equal(t, "x", local.Info.SongName)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"weird","record":{}}`), &Record{}))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "remote", KindRemote.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	kind, err := ParseKind("Local")
	require.NoError(t, err)
	assert.Equal(t, KindLocal, kind)
	_, err = ParseKind("unknown")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
