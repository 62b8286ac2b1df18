package mwire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"map-catalog/mapcache/mlookup"
	"map-catalog/mapcache/mrecord"
	"map-catalog/mapcache/mtag"
)

func createPayload() Payload {
	return Payload{
		Songs: []mrecord.Compact{
			{
				IDInt:       0x1a2b,
				HashIndices: []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0, 1, 2, 3, 4, 5, 6, 7},
				Name:        "Song A",
				Duration:    120,
				UploaderRef: mrecord.UploaderRef{Index: 1, Verified: true},
				UploadedAt:  1650000000,
				Tags:        []mtag.Code{1, 42},
				Ranked:      true,
				UpVotes:     900,
				DownVotes:   12,
				Downloads:   30000,
				Difficulties: []mrecord.CompactDifficulty{
					{
						Difficulty:     5,
						Characteristic: 1,
						LabelIndex:     0,
						StarsT100:      733,
						NJST100:        1800,
						NPST100:        512,
						OffsetT100:     -25,
						Chroma:         true,
						Notes:          1000,
						Bombs:          4,
					},
				},
			},
			{
				IDInt:       0xff,
				HashIndices: []uint32{15},
				Name:        "Song B",
				Automapper:  true,
			},
		},
		LastUpdated: 1700000000,
		Total:       2,
		Uploaders: mlookup.Uploaders{
			Names: []string{"Alice", "Timbo"},
			IDs:   []int32{11, -2},
		},
		DifficultyLabels: []string{"Lore"},
	}
}

func TestEncodeDecode(t *testing.T) {
	payload := createPayload()
	decoded, err := Decode(Encode(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, *decoded)
}

func TestEncodeDecode_Gzip(t *testing.T) {
	payload := createPayload()
	compressed, err := EncodeGzip(payload)
	require.NoError(t, err)
	assert.True(t, IsGzip(compressed))
	assert.False(t, IsGzip(Encode(payload)))

	decoded, err := Decode(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, *decoded)
}

func TestDecode_Empty(t *testing.T) {
	decoded, err := Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, decoded.Songs)
	assert.Empty(t, decoded.Malformed)
}

func TestDecode_UnpackedRepeated(t *testing.T) {
	var song []byte
	song = protowire.AppendTag(song, FieldSongTags, protowire.VarintType)
	song = protowire.AppendVarint(song, 3)
	song = protowire.AppendTag(song, FieldSongTags, protowire.VarintType)
	song = protowire.AppendVarint(song, 40)

	var bs []byte
	bs = protowire.AppendTag(bs, FieldCacheSongs, protowire.BytesType)
	bs = protowire.AppendBytes(bs, song)

	decoded, err := Decode(bs)
	require.NoError(t, err)
	require.Len(t, decoded.Songs, 1)
	assert.Equal(t, []mtag.Code{3, 40}, decoded.Songs[0].Tags)
}

func TestDecode_UnknownFieldsSkipped(t *testing.T) {
	bs := Encode(createPayload())
	bs = protowire.AppendTag(bs, 99, protowire.BytesType)
	bs = protowire.AppendString(bs, "future")
	bs = protowire.AppendTag(bs, 100, protowire.Fixed32Type)
	bs = protowire.AppendFixed32(bs, 7)

	decoded, err := Decode(bs)
	require.NoError(t, err)
	assert.Len(t, decoded.Songs, 2)
}

func TestDecode_MalformedSongSkipped(t *testing.T) {
	payload := createPayload()

	// song name written as a varint
	var bad []byte
	bad = protowire.AppendTag(bad, FieldSongName, protowire.VarintType)
	bad = protowire.AppendVarint(bad, 1)

	var bs []byte
	bs = protowire.AppendTag(bs, FieldCacheSongs, protowire.BytesType)
	bs = protowire.AppendBytes(bs, EncodeSong(payload.Songs[0]))
	bs = protowire.AppendTag(bs, FieldCacheSongs, protowire.BytesType)
	bs = protowire.AppendBytes(bs, bad)
	bs = protowire.AppendTag(bs, FieldCacheSongs, protowire.BytesType)
	bs = protowire.AppendBytes(bs, EncodeSong(payload.Songs[1]))

	decoded, err := Decode(bs)
	require.NoError(t, err)
	assert.Equal(t, payload.Songs, decoded.Songs)
	require.Len(t, decoded.Malformed, 1)

	songErr := SongError{}
	require.ErrorAs(t, decoded.Malformed[0], &songErr)
	assert.Equal(t, 1, songErr.Index)
	assert.ErrorIs(t, decoded.Malformed[0], ErrWireType)
}

func TestDecode_Truncated(t *testing.T) {
	bs := Encode(createPayload())
	_, err := Decode(bs[:len(bs)-3])
	assert.Error(t, err)

	_, err = Decode([]byte{0x1f, 0x8b, 0x00})
	assert.Error(t, err)
}

func TestEncodeSong_OmitsZeroValues(t *testing.T) {
	// only the uploader reference message is written
	bs := EncodeSong(mrecord.Compact{})
	expected := protowire.AppendTag(nil, FieldSongUploaderRef, protowire.BytesType)
	expected = protowire.AppendBytes(expected, nil)
	assert.Equal(t, expected, bs)
}

func TestEncodeDifficulty_ClampsUnsignedFields(t *testing.T) {
	bs := EncodeDifficulty(mrecord.CompactDifficulty{
		StarsT100:   -250,
		NJST100:     1e12,
		NPST100:     401.6,
		OffsetT100:  -30,
		StarsBLT100: -0.2,
	})
	decoded, err := DecodeDifficulty(bs)
	require.NoError(t, err)
	assert.Zero(t, decoded.StarsT100)
	assert.Zero(t, decoded.StarsBLT100)
	assert.Equal(t, float64(math.MaxUint32), decoded.NJST100)
	assert.Equal(t, 402.0, decoded.NPST100)
	// signed field stays negative
	assert.Equal(t, -30.0, decoded.OffsetT100)
}
