package mwire

import (
	"bytes"
	"math"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"map-catalog/mapcache/mrecord"
)

// Encode writes payload in the layout Decode reads. Scalars holding their
// zero value are omitted and repeated scalars are packed. Malformed is not
// written.
func Encode(payload Payload) []byte {
	var bs []byte
	for _, song := range payload.Songs {
		bs = appendMessage(bs, FieldCacheSongs, EncodeSong(song))
	}
	bs = appendVarint(bs, FieldCacheLastUpdated, uint64(payload.LastUpdated))
	bs = appendVarint(bs, FieldCacheTotal, uint64(payload.Total))

	var uploaders []byte
	for _, name := range payload.Uploaders.Names {
		uploaders = appendString(uploaders, FieldUploadersNames, name)
	}
	uploaders = appendPacked(uploaders, FieldUploadersIDs, payload.Uploaders.IDs)
	if len(uploaders) > 0 {
		bs = appendMessage(bs, FieldCacheUploaders, uploaders)
	}

	for _, label := range payload.DifficultyLabels {
		bs = appendString(bs, FieldCacheDifficultyLabels, label)
	}
	return bs
}

// EncodeGzip is Encode followed by gzip compression.
func EncodeGzip(payload Payload) ([]byte, error) {
	return Deflate(Encode(payload))
}

func Deflate(bs []byte) ([]byte, error) {
	buffer := bytes.Buffer{}
	writer := gzip.NewWriter(&buffer)
	if _, err := writer.Write(bs); err != nil {
		return nil, errors.Wrap(err, "Deflate error: write")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "Deflate error: close")
	}
	return buffer.Bytes(), nil
}

func EncodeSong(song mrecord.Compact) []byte {
	var bs []byte
	bs = appendVarint(bs, FieldSongIDInt, uint64(song.IDInt))
	bs = appendPacked(bs, FieldSongHashIndices, song.HashIndices)
	bs = appendString(bs, FieldSongName, song.Name)
	bs = appendVarint(bs, FieldSongDuration, uint64(song.Duration))

	var ref []byte
	ref = appendVarint(ref, FieldRefIndex, uint64(song.UploaderRef.Index))
	ref = appendBool(ref, FieldRefVerified, song.UploaderRef.Verified)
	bs = appendMessage(bs, FieldSongUploaderRef, ref)

	bs = appendVarint(bs, FieldSongUploadedAt, uint64(song.UploadedAt))
	bs = appendPacked(bs, FieldSongTags, song.Tags)
	bs = appendBool(bs, FieldSongRanked, song.Ranked)
	bs = appendBool(bs, FieldSongQualified, song.Qualified)
	bs = appendBool(bs, FieldSongCurated, song.Curated)
	bs = appendBool(bs, FieldSongBLRanked, song.BLRanked)
	bs = appendBool(bs, FieldSongBLQualified, song.BLQualified)
	bs = appendVarint(bs, FieldSongUpVotes, uint64(song.UpVotes))
	bs = appendVarint(bs, FieldSongDownVotes, uint64(song.DownVotes))
	bs = appendVarint(bs, FieldSongDownloads, uint64(song.Downloads))
	bs = appendBool(bs, FieldSongAutomapper, song.Automapper)
	for _, difficulty := range song.Difficulties {
		bs = appendMessage(bs, FieldSongDifficulties, EncodeDifficulty(difficulty))
	}
	return bs
}

func EncodeDifficulty(d mrecord.CompactDifficulty) []byte {
	var bs []byte
	bs = appendVarint(bs, FieldDiffDifficulty, uint64(d.Difficulty))
	bs = appendVarint(bs, FieldDiffCharacteristic, uint64(d.Characteristic))
	bs = appendVarint(bs, FieldDiffLabelIndex, uint64(d.LabelIndex))
	bs = appendVarint(bs, FieldDiffStarsT100, roundUnsigned(d.StarsT100))
	bs = appendVarint(bs, FieldDiffStarsBLT100, roundUnsigned(d.StarsBLT100))
	bs = appendVarint(bs, FieldDiffNJST100, roundUnsigned(d.NJST100))
	bs = appendVarint(bs, FieldDiffNPST100, roundUnsigned(d.NPST100))
	bs = appendVarint(bs, FieldDiffOffsetT100, protowire.EncodeZigZag(roundScaled(d.OffsetT100)))
	bs = appendBool(bs, FieldDiffChroma, d.Chroma)
	bs = appendBool(bs, FieldDiffCinema, d.Cinema)
	bs = appendBool(bs, FieldDiffME, d.ME)
	bs = appendBool(bs, FieldDiffNE, d.NE)
	bs = appendVarint(bs, FieldDiffBombs, uint64(d.Bombs))
	bs = appendVarint(bs, FieldDiffNotes, uint64(d.Notes))
	bs = appendVarint(bs, FieldDiffObstacles, uint64(d.Obstacles))
	return bs
}

func roundScaled(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// roundUnsigned rounds an unsigned *T100 field, clamping to the range of the
// uint32 it is read back into.
func roundUnsigned(v float64) uint64 {
	rounded := roundScaled(v)
	switch {
	case rounded < 0:
		return 0
	case rounded > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint64(rounded)
	}
}

func appendVarint(bs []byte, number protowire.Number, v uint64) []byte {
	if v == 0 {
		return bs
	}
	bs = protowire.AppendTag(bs, number, protowire.VarintType)
	return protowire.AppendVarint(bs, v)
}

func appendBool(bs []byte, number protowire.Number, v bool) []byte {
	return appendVarint(bs, number, protowire.EncodeBool(v))
}

func appendString(bs []byte, number protowire.Number, v string) []byte {
	if v == "" {
		return bs
	}
	bs = protowire.AppendTag(bs, number, protowire.BytesType)
	return protowire.AppendString(bs, v)
}

// appendMessage writes message even when it is empty, so repeated messages
// keep their count.
func appendMessage(bs []byte, number protowire.Number, message []byte) []byte {
	bs = protowire.AppendTag(bs, number, protowire.BytesType)
	return protowire.AppendBytes(bs, message)
}

func appendPacked[T ~int32 | ~uint32](bs []byte, number protowire.Number, vs []T) []byte {
	if len(vs) == 0 {
		return bs
	}
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, uint64(v))
	}
	bs = protowire.AppendTag(bs, number, protowire.BytesType)
	return protowire.AppendBytes(bs, packed)
}
