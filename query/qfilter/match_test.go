package qfilter

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"map-catalog/ds"
	"map-catalog/mapcache/mrecord"
	"map-catalog/mapcache/mtag"
	"map-catalog/query/qshape"
)

func createView(difficulties ...mrecord.Difficulty) qshape.View {
	return qshape.Normalize(qshape.Canonical(mrecord.Record{
		Hash:         "0123456789abcdef0123456789abcdef01234567",
		Name:         "Night Drive",
		Duration:     180,
		Uploader:     mrecord.Uploader{Name: "Mapper", Verified: true},
		Tags:         []mtag.Tag{mtag.Tech},
		Ranked:       true,
		Difficulties: difficulties,
	}))
}

// createSpecs returns one spec per dimension, each set so that it has to look
// at the record.
func createSpecs() map[string]Spec {
	return map[string]Spec{
		"enabled-tags":  {EnabledTags: mtag.NewSet(mtag.Tech)},
		"excluded-tags": {ExcludedTags: mtag.NewSet(mtag.Dance)},
		"min-nps":       {MinNPS: lo.ToPtr(1.0)},
		"max-nps":       {MaxNPS: lo.ToPtr(20.0)},
		"min-duration":  {MinDuration: lo.ToPtr(uint32(60))},
		"max-duration":  {MaxDuration: lo.ToPtr(uint32(600))},
		"noodle":        {Noodle: true},
		"me":            {MappingExtensions: true},
		"cinema":        {Cinema: true},
		"chroma":        {Chroma: true},
		"full-spread":   {FullSpread: true},
		"automapper":    {Automapper: true},
		"ranked":        {Ranked: true},
		"curated":       {Curated: true},
		"verified":      {Verified: true},
		"search":        {Search: "night"},
	}
}

func TestMatches_EmptySpec(t *testing.T) {
	assert.True(t, Matches(Spec{}, createView(), ""))
	assert.True(t, Matches(Spec{}, qshape.View{}, ""))
	assert.True(t, Spec{}.IsEmpty())
}

func TestMatches_EveryDimensionNamed(t *testing.T) {
	names := lo.Map(Predicates, func(p Predicate, _ int) string { return p.Name })
	assert.ElementsMatch(t, lo.Keys(createSpecs()), names)
	for name, spec := range createSpecs() {
		assert.False(t, spec.IsEmpty(), name)
	}
}

func TestMatches_AbsentFilterPasses(t *testing.T) {
	rich := qshape.View{
		Tags:                 mtag.NewSet(mtag.Tech),
		Duration:             180,
		HasDuration:          true,
		DifficultyNPS:        []float64{4},
		DifficultyCount:      5,
		HasChroma:            true,
		HasCinema:            true,
		HasNoodle:            true,
		HasMappingExtensions: true,
		IsAutomapper:         true,
		IsRanked:             true,
		IsCurated:            true,
		IsVerifiedUploader:   true,
		Folded:               qshape.Text{Title: "night drive"},
	}
	views := []qshape.View{
		rich,
		createView(),
		createView(mrecord.Difficulty{NPS: 4, Chroma: true}),
		{},
	}
	specs := createSpecs()
	full := Spec{}
	for _, spec := range specs {
		full = full.Merge(spec)
	}
	require.True(t, Matches(full, rich, ""))

	for _, view := range views {
		for name, spec := range specs {
			assert.True(t, Matches(Spec{}, view, ""), name)
			for otherName, other := range specs {
				if !Matches(spec.Merge(other), view, "") {
					continue
				}
				assert.True(t, Matches(spec, view, ""), "%s without %s", name, otherName)
				assert.True(t, Matches(other, view, ""), "%s without %s", otherName, name)
			}
		}
	}
}

func TestMatches_AbsentDataFails(t *testing.T) {
	view := createView()
	require.Zero(t, view.DifficultyCount)

	for _, spec := range []Spec{
		{MinNPS: lo.ToPtr(0.0)},
		{MaxNPS: lo.ToPtr(100.0)},
		{FullSpread: true},
		{Chroma: true},
		{Noodle: true},
		{MappingExtensions: true},
		{Cinema: true},
	} {
		assert.False(t, Matches(spec, view, ""), ds.DumpJSON(spec))
	}

	bare := qshape.Normalize(qshape.Local(qshape.LocalRecord{Hash: "abc"}))
	assert.False(t, Matches(Spec{MinDuration: lo.ToPtr(uint32(0))}, bare, ""))
	assert.False(t, Matches(Spec{MaxDuration: lo.ToPtr(uint32(600))}, bare, ""))
}

func TestMatches_Tags(t *testing.T) {
	tech := createView()
	none := qshape.View{}
	enabled := Spec{EnabledTags: mtag.NewSet(mtag.Tech)}
	excluded := Spec{ExcludedTags: mtag.NewSet(mtag.Tech)}

	assert.True(t, Matches(enabled, tech, ""))
	assert.False(t, Matches(excluded, tech, ""))
	assert.False(t, Matches(enabled, none, ""))
	assert.True(t, Matches(excluded, none, ""))

	both := Spec{EnabledTags: mtag.NewSet(mtag.Tech, mtag.Dance)}
	assert.False(t, Matches(both, tech, ""))
	assert.Equal(t, "enabled-tags", Rejecting(both, tech, ""))
}

func TestMatches_NPS(t *testing.T) {
	view := createView(mrecord.Difficulty{NPS: 3}, mrecord.Difficulty{NPS: 6})
	assert.True(t, Matches(Spec{MinNPS: lo.ToPtr(5.0)}, view, ""))
	assert.True(t, Matches(Spec{MinNPS: lo.ToPtr(6.0)}, view, ""))
	assert.False(t, Matches(Spec{MinNPS: lo.ToPtr(6.5)}, view, ""))
	assert.True(t, Matches(Spec{MaxNPS: lo.ToPtr(4.0)}, view, ""))
	assert.False(t, Matches(Spec{MaxNPS: lo.ToPtr(2.0)}, view, ""))
	// the bounds may be met by different difficulties
	assert.True(t, Matches(Spec{MinNPS: lo.ToPtr(5.0), MaxNPS: lo.ToPtr(4.0)}, view, ""))
}

func TestMatches_Duration(t *testing.T) {
	view := createView()
	assert.True(t, Matches(Spec{MinDuration: lo.ToPtr(uint32(180))}, view, ""))
	assert.False(t, Matches(Spec{MinDuration: lo.ToPtr(uint32(181))}, view, ""))
	assert.True(t, Matches(Spec{MaxDuration: lo.ToPtr(uint32(180))}, view, ""))
	assert.False(t, Matches(Spec{MaxDuration: lo.ToPtr(uint32(179))}, view, ""))
}

func TestMatches_FullSpread(t *testing.T) {
	four := createView(lo.Times(4, func(int) mrecord.Difficulty { return mrecord.Difficulty{} })...)
	five := createView(lo.Times(5, func(int) mrecord.Difficulty { return mrecord.Difficulty{} })...)
	assert.False(t, Matches(Spec{FullSpread: true}, four, ""))
	assert.True(t, Matches(Spec{FullSpread: true}, five, ""))
}

func TestMatches_Status(t *testing.T) {
	view := createView()
	assert.True(t, Matches(Spec{Ranked: true}, view, ""))
	assert.True(t, Matches(Spec{Verified: true}, view, ""))
	assert.False(t, Matches(Spec{Curated: true}, view, ""))
	assert.False(t, Matches(Spec{Automapper: true}, view, ""))

	community := qshape.View{IsCommunityRanked: true}
	assert.True(t, Matches(Spec{Ranked: true}, community, ""))
}

func TestMatches_Search(t *testing.T) {
	view := qshape.Normalize(qshape.Local(qshape.LocalRecord{
		Info: qshape.RawInfo{
			SongName:        "Straße",
			SongAuthorName:  "DJ Ünder",
			LevelAuthorName: "Someone",
		},
	}))
	assert.True(t, Matches(Spec{}, view, "STRASSE"))
	assert.True(t, Matches(Spec{}, view, "ünder"))
	assert.True(t, Matches(Spec{}, view, "some"))
	assert.False(t, Matches(Spec{}, view, "nothing"))
	assert.True(t, Matches(Spec{Search: "one"}, view, ""))
	// the argument overrides the spec
	assert.False(t, Matches(Spec{Search: "one"}, view, "nothing"))
}

func TestSpec_YAML(t *testing.T) {
	input := `
enabled_tags: [tech, speed]
min_nps: 0
max_duration: 240
chroma: true
search: drive
`
	spec := Spec{}
	require.NoError(t, yaml.Unmarshal([]byte(input), &spec))
	assert.Equal(t, mtag.NewSet(mtag.Tech, mtag.Speed), spec.EnabledTags)
	require.NotNil(t, spec.MinNPS)
	assert.Equal(t, 0.0, *spec.MinNPS)
	assert.Nil(t, spec.MaxNPS)
	assert.Equal(t, uint32(240), *spec.MaxDuration)
	assert.True(t, spec.Chroma)
	assert.Equal(t, "drive", spec.Search)
}

func TestSpec_Merge(t *testing.T) {
	base := Spec{MinNPS: lo.ToPtr(2.0), Chroma: true, Search: "a"}
	merged := base.Merge(Spec{MinNPS: lo.ToPtr(4.0), Ranked: true})
	assert.Equal(t, 4.0, *merged.MinNPS)
	assert.True(t, merged.Chroma)
	assert.True(t, merged.Ranked)
	assert.Equal(t, "a", merged.Search)
	assert.Equal(t, 2.0, *base.MinNPS)
}
