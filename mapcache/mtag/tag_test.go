package mtag

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFromCode(t *testing.T) {
	expectedValues := map[Code]Tag{
		1:  Dance,
		15: JRock,
		36: ClassicalOrchestral,
		37: Accuracy,
		43: Tech,
	}
	for code, tag := range expectedValues {
		result, ok := FromCode(code)
		assert.True(t, ok)
		assert.Equal(t, tag, result)
	}

	for _, code := range []Code{CodeUnknown, 44, -1, 1000} {
		_, ok := FromCode(code)
		assert.False(t, ok, "code %d", code)
	}
}

func TestFromCodes_DropsUnknown(t *testing.T) {
	tags := FromCodes([]Code{1, 0, 43, 99})
	assert.Equal(t, []Tag{Dance, Tech}, tags)
	assert.Empty(t, FromCodes(nil))
}

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 43)
	assert.Equal(t, Dance, all[0])
	assert.Equal(t, Tech, all[42])
	assert.Len(t, lo.Uniq(all), 43)
}

func TestFamily(t *testing.T) {
	assert.Equal(t, FamilyStyle, Dance.Family())
	assert.Equal(t, FamilyStyle, ClassicalOrchestral.Family())
	assert.Equal(t, FamilyType, Accuracy.Family())
	assert.Equal(t, FamilyType, Tech.Family())
	assert.Equal(t, FamilyUnknown, Tag("polka").Family())

	assert.Len(t, OfFamily(FamilyStyle), 36)
	assert.Len(t, OfFamily(FamilyType), 7)
}

func TestParse(t *testing.T) {
	tag, ok := Parse(" Dance-Style ")
	assert.True(t, ok)
	assert.Equal(t, Dancestyle, tag)

	_, ok = Parse("polka")
	assert.False(t, ok)

	assert.Equal(t, []Tag{Tech, Anime}, ParseAll([]string{"tech", "polka", "anime"}))
}

func TestSet_JSON(t *testing.T) {
	set := NewSet(Tech, Dance, Tag("polka"))
	bs, err := json.Marshal(set)
	require.NoError(t, err)
	assert.Equal(t, `["dance","tech","polka"]`, string(bs))

	parsed := Set{}
	require.NoError(t, json.Unmarshal([]byte(`["TECH","polka"]`), &parsed))
	assert.True(t, parsed.Has(Tech))
	assert.True(t, parsed.Has(Tag("polka")))
	assert.Equal(t, 2, parsed.Len())
}

func TestSet_YAML(t *testing.T) {
	type holder struct {
		Tags Set `yaml:"tags"`
	}
	h := holder{}
	require.NoError(t, yaml.Unmarshal([]byte("tags: [anime, accuracy]\n"), &h))
	assert.Equal(t, NewSet(Anime, Accuracy), h.Tags)

	bs, err := yaml.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, "tags:\n    - anime\n    - accuracy\n", string(bs))
}
