// Package mrecord decodes the compact records of the song details cache into
// canonical map records.
package mrecord

import (
	"map-catalog/mapcache/mdiff"
	"map-catalog/mapcache/mtag"
)

type (
	// Compact is one catalog entry as stored in the cache payload: strings are
	// replaced by table indices and decimals by integers scaled by 100.
	Compact struct {
		IDInt        uint32              `json:"id_int"`
		HashIndices  []uint32            `json:"hash_indices"`
		Name         string              `json:"name"`
		Duration     uint32              `json:"duration"`
		UploaderRef  UploaderRef         `json:"uploader_ref"`
		UploadedAt   int64               `json:"uploaded_at"`
		Tags         []mtag.Code         `json:"tags"`
		Ranked       bool                `json:"ranked"`
		Qualified    bool                `json:"qualified"`
		Curated      bool                `json:"curated"`
		BLRanked     bool                `json:"bl_ranked"`
		BLQualified  bool                `json:"bl_qualified"`
		UpVotes      uint32              `json:"up_votes"`
		DownVotes    uint32              `json:"down_votes"`
		Downloads    uint32              `json:"downloads"`
		Automapper   bool                `json:"automapper"`
		Difficulties []CompactDifficulty `json:"difficulties"`
	}
	UploaderRef struct {
		Index    uint32 `json:"index"`
		Verified bool   `json:"verified"`
	}
	CompactDifficulty struct {
		Difficulty     mdiff.Code `json:"difficulty"`
		Characteristic mdiff.Code `json:"characteristic"`
		LabelIndex     uint32     `json:"label_index"`
		StarsT100      float64    `json:"stars_t100"`
		StarsBLT100    float64    `json:"stars_bl_t100"`
		NJST100        float64    `json:"njs_t100"`
		NPST100        float64    `json:"nps_t100"`
		OffsetT100     float64    `json:"offset_t100"`
		Chroma         bool       `json:"chroma"`
		Cinema         bool       `json:"cinema"`
		ME             bool       `json:"me"`
		NE             bool       `json:"ne"`
		Bombs          uint32     `json:"bombs"`
		Notes          uint32     `json:"notes"`
		Obstacles      uint32     `json:"obstacles"`
	}

	// Record is the canonical, fully resolved form of a catalog entry.
	Record struct {
		ID           string       `json:"id"`
		Hash         string       `json:"hash"`
		Name         string       `json:"name"`
		Duration     uint32       `json:"duration"`
		Uploader     Uploader     `json:"uploader"`
		UploadedAt   int64        `json:"uploaded_at"`
		Tags         []mtag.Tag   `json:"tags"`
		Ranked       bool         `json:"ranked"`
		Qualified    bool         `json:"qualified"`
		Curated      bool         `json:"curated"`
		BLRanked     bool         `json:"bl_ranked"`
		BLQualified  bool         `json:"bl_qualified"`
		UpVotes      uint32       `json:"up_votes"`
		DownVotes    uint32       `json:"down_votes"`
		Downloads    uint32       `json:"downloads"`
		Automapper   bool         `json:"automapper"`
		Difficulties []Difficulty `json:"difficulties"`
	}
	// Uploader fields are left empty when the uploader table has no entry for
	// the referenced index; Resolved tells the two cases apart.
	Uploader struct {
		Name     string `json:"name,omitempty"`
		ID       int32  `json:"id,omitempty"`
		Verified bool   `json:"verified"`
		Resolved bool   `json:"-"`
	}
	Difficulty struct {
		Difficulty     mdiff.Label          `json:"difficulty"`
		Characteristic mdiff.Characteristic `json:"characteristic"`
		Label          string               `json:"label,omitempty"`
		Stars          float64              `json:"stars"`
		StarsBL        float64              `json:"stars_bl"`
		NJS            float64              `json:"njs"`
		NPS            float64              `json:"nps"`
		Offset         float64              `json:"offset"`
		Chroma         bool                 `json:"chroma"`
		Cinema         bool                 `json:"cinema"`
		ME             bool                 `json:"me"`
		NE             bool                 `json:"ne"`
		Bombs          uint32               `json:"bombs"`
		Notes          uint32               `json:"notes"`
		Obstacles      uint32               `json:"obstacles"`
	}
)

const (
	// HashLength is the number of hex nibbles of a map content hash.
	HashLength = 40
	// ScaleFactor is the fixed-point scale of every *T100 field.
	ScaleFactor = 100
)

// hashChars is the alphabet hash indices point into.
var hashChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
