package mrecord

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"map-catalog/mapcache/mdiff"
	"map-catalog/mapcache/mlookup"
	"map-catalog/mapcache/mtag"
)

type (
	// Report summarizes a DecodeAll pass.
	Report struct {
		Decoded int     `json:"decoded"`
		Failed  int     `json:"failed"`
		Errors  []error `json:"-"`
	}
)

// Unscale undoes the two-decimal fixed-point encoding. Halves round towards
// positive infinity.
func Unscale(raw float64) float64 {
	return math.Floor(raw+0.5) / ScaleFactor
}

func DecodeHash(hashIndices []uint32) (string, error) {
	if len(hashIndices) != HashLength {
		err := errors.Wrapf(
			ErrHashLength, `DecodeHash error: expected %d indices; got %d`,
			HashLength, len(hashIndices),
		)
		return "", err
	}
	bs := make([]byte, HashLength)
	for i, index := range hashIndices {
		if index >= uint32(len(hashChars)) {
			err := errors.Wrapf(
				ErrHashIndex, `DecodeHash error: index %d at position %d`,
				index, i,
			)
			return "", err
		}
		bs[i] = hashChars[index]
	}
	return string(bs), nil
}

// DecodeMapID turns the numeric form of a map key back into its hex form.
func DecodeMapID(idInt uint32) string {
	return strconv.FormatUint(uint64(idInt), 16)
}

func DecodeUploader(tables *mlookup.Tables, ref UploaderRef) Uploader {
	name, okName := tables.UploaderName(int(ref.Index))
	id, okID := tables.UploaderID(int(ref.Index))
	return Uploader{
		Name:     name,
		ID:       id,
		Verified: ref.Verified,
		Resolved: okName && okID,
	}
}

func DecodeDifficulty(tables *mlookup.Tables, compact CompactDifficulty) Difficulty {
	label, _ := tables.DifficultyLabel(int(compact.LabelIndex))
	return Difficulty{
		Difficulty:     mdiff.LabelFromCode(compact.Difficulty),
		Characteristic: mdiff.CharacteristicFromCode(compact.Characteristic),
		Label:          label,
		Stars:          Unscale(compact.StarsT100),
		StarsBL:        Unscale(compact.StarsBLT100),
		NJS:            Unscale(compact.NJST100),
		NPS:            Unscale(compact.NPST100),
		Offset:         Unscale(compact.OffsetT100),
		Chroma:         compact.Chroma,
		Cinema:         compact.Cinema,
		ME:             compact.ME,
		NE:             compact.NE,
		Bombs:          compact.Bombs,
		Notes:          compact.Notes,
		Obstacles:      compact.Obstacles,
	}
}

// Decode resolves one compact record against the lookup tables. It fails only
// on a nil record or an invalid hash; unknown enum codes and table misses
// degrade to their documented defaults.
func Decode(tables *mlookup.Tables, compact *Compact) (*Record, error) {
	if compact == nil {
		return nil, errors.WithStack(ErrNilRecord)
	}
	hash, err := DecodeHash(compact.HashIndices)
	if err != nil {
		err := errors.Wrapf(err, `Decode error: record "%s"`, DecodeMapID(compact.IDInt))
		return nil, err
	}

	record := Record{
		ID:          DecodeMapID(compact.IDInt),
		Hash:        hash,
		Name:        compact.Name,
		Duration:    compact.Duration,
		Uploader:    DecodeUploader(tables, compact.UploaderRef),
		UploadedAt:  compact.UploadedAt,
		Tags:        mtag.FromCodes(compact.Tags),
		Ranked:      compact.Ranked,
		Qualified:   compact.Qualified,
		Curated:     compact.Curated,
		BLRanked:    compact.BLRanked,
		BLQualified: compact.BLQualified,
		UpVotes:     compact.UpVotes,
		DownVotes:   compact.DownVotes,
		Downloads:   compact.Downloads,
		Automapper:  compact.Automapper,
	}
	record.Difficulties = lo.Map(
		compact.Difficulties,
		func(difficulty CompactDifficulty, _ int) Difficulty {
			return DecodeDifficulty(tables, difficulty)
		},
	)
	return &record, nil
}

// DecodeAll decodes every record it can. A failing record is skipped and
// reported; it never stops the rest of the batch.
func DecodeAll(tables *mlookup.Tables, compacts []Compact) ([]Record, Report) {
	records := make([]Record, 0, len(compacts))
	report := Report{}
	for i := range compacts {
		record, err := Decode(tables, &compacts[i])
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, DecodeError{
				Index: i,
				IDInt: compacts[i].IDInt,
				Err:   err,
			})
			continue
		}
		report.Decoded++
		records = append(records, *record)
	}
	return records, report
}
