package mwire

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"map-catalog/mapcache/mrecord"
)

// IsGzip reports whether bs starts with the gzip magic number.
func IsGzip(bs []byte) bool {
	return bytes.HasPrefix(bs, GzipMagicNumber)
}

func Inflate(bs []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(bs))
	if err != nil {
		return nil, errors.Wrap(err, "Inflate error: gzip header")
	}
	defer reader.Close()

	inflated, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "Inflate error: gzip body")
	}
	return inflated, nil
}

// Decode reads a cache payload. Compressed input is detected by its magic
// number. A song message that cannot be read is recorded in
// Payload.Malformed and skipped; any other malformed field fails the whole
// payload.
func Decode(bs []byte) (*Payload, error) {
	if IsGzip(bs) {
		inflated, err := Inflate(bs)
		if err != nil {
			return nil, errors.Wrap(err, "Decode error")
		}
		bs = inflated
	}

	payload := Payload{}
	songIndex := 0
	readSong := func(songBytes []byte) error {
		song, err := DecodeSong(songBytes)
		if err != nil {
			payload.Malformed = append(payload.Malformed, SongError{Index: songIndex, Err: err})
		} else {
			payload.Songs = append(payload.Songs, *song)
		}
		songIndex++
		return nil
	}
	readUploaders := func(uploadersBytes []byte) error {
		instructions := []Instruction{
			{
				Number: FieldUploadersNames,
				Key:    "names",
				Read:   CreateStringAppendFunction(&payload.Uploaders.Names),
			},
			{
				Number: FieldUploadersIDs,
				Key:    "ids",
				Read:   CreateRepeatedVarintReadFunction(&payload.Uploaders.IDs),
			},
		}
		return ExecuteInstructions(uploadersBytes, instructions)
	}

	instructions := []Instruction{
		{
			Number: FieldCacheSongs,
			Key:    "songs",
			Read:   CreateMessageReadFunction(readSong),
		},
		{
			Number: FieldCacheLastUpdated,
			Key:    "last_updated",
			Read:   CreateVarintReadFunction(&payload.LastUpdated),
		},
		{
			Number: FieldCacheTotal,
			Key:    "total",
			Read:   CreateVarintReadFunction(&payload.Total),
		},
		{
			Number: FieldCacheUploaders,
			Key:    "uploaders",
			Read:   CreateMessageReadFunction(readUploaders),
		},
		{
			Number: FieldCacheDifficultyLabels,
			Key:    "difficulty_labels",
			Read:   CreateStringAppendFunction(&payload.DifficultyLabels),
		},
	}
	if err := ExecuteInstructions(bs, instructions); err != nil {
		return nil, errors.Wrap(err, "Decode error")
	}
	return &payload, nil
}

// DecodeSong reads one SongDetails message.
func DecodeSong(bs []byte) (*mrecord.Compact, error) {
	song := mrecord.Compact{}
	readRef := func(refBytes []byte) error {
		instructions := []Instruction{
			{
				Number: FieldRefIndex,
				Key:    "index",
				Read:   CreateVarintReadFunction(&song.UploaderRef.Index),
			},
			{
				Number: FieldRefVerified,
				Key:    "verified",
				Read:   CreateBoolReadFunction(&song.UploaderRef.Verified),
			},
		}
		return ExecuteInstructions(refBytes, instructions)
	}
	readDifficulty := func(difficultyBytes []byte) error {
		difficulty, err := DecodeDifficulty(difficultyBytes)
		if err != nil {
			return err
		}
		song.Difficulties = append(song.Difficulties, *difficulty)
		return nil
	}

	instructions := []Instruction{
		{Number: FieldSongIDInt, Key: "id_int", Read: CreateVarintReadFunction(&song.IDInt)},
		{Number: FieldSongHashIndices, Key: "hash_indices", Read: CreateRepeatedVarintReadFunction(&song.HashIndices)},
		{Number: FieldSongName, Key: "name", Read: CreateStringReadFunction(&song.Name)},
		{Number: FieldSongDuration, Key: "duration", Read: CreateVarintReadFunction(&song.Duration)},
		{Number: FieldSongUploaderRef, Key: "uploader_ref", Read: CreateMessageReadFunction(readRef)},
		{Number: FieldSongUploadedAt, Key: "uploaded_at", Read: CreateVarintReadFunction(&song.UploadedAt)},
		{Number: FieldSongTags, Key: "tags", Read: CreateRepeatedVarintReadFunction(&song.Tags)},
		{Number: FieldSongRanked, Key: "ranked", Read: CreateBoolReadFunction(&song.Ranked)},
		{Number: FieldSongQualified, Key: "qualified", Read: CreateBoolReadFunction(&song.Qualified)},
		{Number: FieldSongCurated, Key: "curated", Read: CreateBoolReadFunction(&song.Curated)},
		{Number: FieldSongBLRanked, Key: "bl_ranked", Read: CreateBoolReadFunction(&song.BLRanked)},
		{Number: FieldSongBLQualified, Key: "bl_qualified", Read: CreateBoolReadFunction(&song.BLQualified)},
		{Number: FieldSongUpVotes, Key: "up_votes", Read: CreateVarintReadFunction(&song.UpVotes)},
		{Number: FieldSongDownVotes, Key: "down_votes", Read: CreateVarintReadFunction(&song.DownVotes)},
		{Number: FieldSongDownloads, Key: "downloads", Read: CreateVarintReadFunction(&song.Downloads)},
		{Number: FieldSongAutomapper, Key: "automapper", Read: CreateBoolReadFunction(&song.Automapper)},
		{Number: FieldSongDifficulties, Key: "difficulties", Read: CreateMessageReadFunction(readDifficulty)},
	}
	if err := ExecuteInstructions(bs, instructions); err != nil {
		return nil, errors.Wrap(err, "DecodeSong error")
	}
	return &song, nil
}

// DecodeDifficulty reads one Difficulty message.
func DecodeDifficulty(bs []byte) (*mrecord.CompactDifficulty, error) {
	d := mrecord.CompactDifficulty{}
	instructions := []Instruction{
		{Number: FieldDiffDifficulty, Key: "difficulty", Read: CreateVarintReadFunction(&d.Difficulty)},
		{Number: FieldDiffCharacteristic, Key: "characteristic", Read: CreateVarintReadFunction(&d.Characteristic)},
		{Number: FieldDiffLabelIndex, Key: "label_index", Read: CreateVarintReadFunction(&d.LabelIndex)},
		{Number: FieldDiffStarsT100, Key: "stars_t100", Read: CreateScaledReadFunction(&d.StarsT100)},
		{Number: FieldDiffStarsBLT100, Key: "stars_bl_t100", Read: CreateScaledReadFunction(&d.StarsBLT100)},
		{Number: FieldDiffNJST100, Key: "njs_t100", Read: CreateScaledReadFunction(&d.NJST100)},
		{Number: FieldDiffNPST100, Key: "nps_t100", Read: CreateScaledReadFunction(&d.NPST100)},
		{Number: FieldDiffOffsetT100, Key: "offset_t100", Read: CreateZigZagScaledReadFunction(&d.OffsetT100)},
		{Number: FieldDiffChroma, Key: "chroma", Read: CreateBoolReadFunction(&d.Chroma)},
		{Number: FieldDiffCinema, Key: "cinema", Read: CreateBoolReadFunction(&d.Cinema)},
		{Number: FieldDiffME, Key: "me", Read: CreateBoolReadFunction(&d.ME)},
		{Number: FieldDiffNE, Key: "ne", Read: CreateBoolReadFunction(&d.NE)},
		{Number: FieldDiffBombs, Key: "bombs", Read: CreateVarintReadFunction(&d.Bombs)},
		{Number: FieldDiffNotes, Key: "notes", Read: CreateVarintReadFunction(&d.Notes)},
		{Number: FieldDiffObstacles, Key: "obstacles", Read: CreateVarintReadFunction(&d.Obstacles)},
	}
	if err := ExecuteInstructions(bs, instructions); err != nil {
		return nil, errors.Wrap(err, "DecodeDifficulty error")
	}
	return &d, nil
}
