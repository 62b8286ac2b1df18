// Package mwire reads and writes the song details cache payload: an optionally
// gzip-compressed protobuf message. The schema is walked field by field with
// protowire, so no generated code is involved.
package mwire

import (
	"google.golang.org/protobuf/encoding/protowire"

	"map-catalog/mapcache/mlookup"
	"map-catalog/mapcache/mrecord"
)

type (
	Payload struct {
		Songs            []mrecord.Compact `json:"songs"`
		LastUpdated      int64             `json:"last_updated"`
		Total            uint32            `json:"total"`
		Uploaders        mlookup.Uploaders `json:"uploaders"`
		DifficultyLabels []string          `json:"difficulty_labels"`
		// Malformed holds one SongError per song message that could not be read.
		Malformed []error `json:"-"`
	}
	Instruction struct {
		Number protowire.Number
		Key    string
		Read   ReadFunction
	}
	// ReadFunction consumes the value of one field and returns the number of
	// bytes it used.
	ReadFunction func(typ protowire.Type, bs []byte) (int, error)
)

// Field numbers of the SongDetailsCache message.
const (
	FieldCacheSongs            = protowire.Number(1)
	FieldCacheLastUpdated      = protowire.Number(2)
	FieldCacheTotal            = protowire.Number(3)
	FieldCacheUploaders        = protowire.Number(4)
	FieldCacheDifficultyLabels = protowire.Number(5)
)

// Field numbers of the UploadersList message.
const (
	FieldUploadersNames = protowire.Number(1)
	FieldUploadersIDs   = protowire.Number(2)
)

// Field numbers of the SongDetails message.
const (
	FieldSongIDInt        = protowire.Number(1)
	FieldSongHashIndices  = protowire.Number(2)
	FieldSongName         = protowire.Number(3)
	FieldSongDuration     = protowire.Number(4)
	FieldSongUploaderRef  = protowire.Number(5)
	FieldSongUploadedAt   = protowire.Number(6)
	FieldSongTags         = protowire.Number(7)
	FieldSongRanked       = protowire.Number(8)
	FieldSongQualified    = protowire.Number(9)
	FieldSongCurated      = protowire.Number(10)
	FieldSongBLRanked     = protowire.Number(11)
	FieldSongBLQualified  = protowire.Number(12)
	FieldSongUpVotes      = protowire.Number(13)
	FieldSongDownVotes    = protowire.Number(14)
	FieldSongDownloads    = protowire.Number(15)
	FieldSongAutomapper   = protowire.Number(16)
	FieldSongDifficulties = protowire.Number(17)
)

// Field numbers of the UploaderRef message.
const (
	FieldRefIndex    = protowire.Number(1)
	FieldRefVerified = protowire.Number(2)
)

// Field numbers of the Difficulty message.
const (
	FieldDiffDifficulty     = protowire.Number(1)
	FieldDiffCharacteristic = protowire.Number(2)
	FieldDiffLabelIndex     = protowire.Number(3)
	FieldDiffStarsT100      = protowire.Number(4)
	FieldDiffStarsBLT100    = protowire.Number(5)
	FieldDiffNJST100        = protowire.Number(6)
	FieldDiffNPST100        = protowire.Number(7)
	FieldDiffOffsetT100     = protowire.Number(8)
	FieldDiffChroma         = protowire.Number(9)
	FieldDiffCinema         = protowire.Number(10)
	FieldDiffME             = protowire.Number(11)
	FieldDiffNE             = protowire.Number(12)
	FieldDiffBombs          = protowire.Number(13)
	FieldDiffNotes          = protowire.Number(14)
	FieldDiffObstacles      = protowire.Number(15)
)

var GzipMagicNumber = []byte{0x1f, 0x8b}
