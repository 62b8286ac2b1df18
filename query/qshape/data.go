// Package qshape holds the three record shapes the query engine accepts and
// reduces each of them to the same View.
package qshape

import (
	"map-catalog/mapcache/mrecord"
	"map-catalog/mapcache/mtag"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindLocal
	KindRemote
	KindCanonical
)

type (
	// LocalRecord is an installed map: its parsed info file plus, once the
	// cache is loaded, the matching canonical record.
	LocalRecord struct {
		Hash    string          `json:"hash"`
		Path    string          `json:"path,omitempty"`
		Info    RawInfo         `json:"info"`
		Details *mrecord.Record `json:"details,omitempty"`
	}
	RawInfo struct {
		SongName        string  `json:"_songName"`
		SongSubName     string  `json:"_songSubName,omitempty"`
		SongAuthorName  string  `json:"_songAuthorName"`
		LevelAuthorName string  `json:"_levelAuthorName"`
		BeatsPerMinute  float64 `json:"_beatsPerMinute"`
	}

	// RemoteRecord is a map detail as returned by the online catalog.
	RemoteRecord struct {
		ID         string          `json:"id"`
		Name       string          `json:"name"`
		Automapper bool            `json:"automapper"`
		Ranked     bool            `json:"ranked"`
		Qualified  bool            `json:"qualified"`
		BLRanked   bool            `json:"blRanked"`
		Curator    *RemoteUser     `json:"curator,omitempty"`
		Uploader   RemoteUser      `json:"uploader"`
		Metadata   RemoteMetadata  `json:"metadata"`
		Stats      RemoteStats     `json:"stats"`
		Tags       []string        `json:"tags,omitempty"`
		Uploaded   string          `json:"uploaded,omitempty"`
		Versions   []RemoteVersion `json:"versions"`
	}
	RemoteUser struct {
		ID             int32  `json:"id"`
		Name           string `json:"name"`
		VerifiedMapper bool   `json:"verifiedMapper"`
	}
	RemoteMetadata struct {
		BPM             float64 `json:"bpm"`
		Duration        uint32  `json:"duration"`
		SongName        string  `json:"songName"`
		SongSubName     string  `json:"songSubName,omitempty"`
		SongAuthorName  string  `json:"songAuthorName"`
		LevelAuthorName string  `json:"levelAuthorName"`
	}
	RemoteStats struct {
		Downloads uint32 `json:"downloads"`
		Upvotes   uint32 `json:"upvotes"`
		Downvotes uint32 `json:"downvotes"`
	}
	RemoteVersion struct {
		Hash  string       `json:"hash"`
		Diffs []RemoteDiff `json:"diffs"`
	}
	RemoteDiff struct {
		Difficulty     string  `json:"difficulty"`
		Characteristic string  `json:"characteristic"`
		NJS            float64 `json:"njs"`
		NPS            float64 `json:"nps"`
		Notes          uint32  `json:"notes"`
		Bombs          uint32  `json:"bombs"`
		Obstacles      uint32  `json:"obstacles"`
		Chroma         bool    `json:"chroma"`
		Cinema         bool    `json:"cinema"`
		ME             bool    `json:"me"`
		NE             bool    `json:"ne"`
	}

	// View is what the filters and sorters read. Tags is empty when the
	// record carries no tag data; HasDuration is false when the duration is
	// unknown or zero.
	View struct {
		Tags                 mtag.Set
		Duration             uint32
		HasDuration          bool
		DifficultyNPS        []float64
		DifficultyCount      int
		HasChroma            bool
		HasCinema            bool
		HasNoodle            bool
		HasMappingExtensions bool
		IsAutomapper         bool
		IsRanked             bool
		IsCommunityRanked    bool
		IsCurated            bool
		IsVerifiedUploader   bool
		Text                 Text
		// Folded is Text case-folded for search.
		Folded Text

		BPM        float64
		UpVotes    uint32
		UploadedAt int64
		// HasStats is false for a local record that has not been enriched,
		// whose vote and upload data are unknown.
		HasStats bool
		MaxNPS   float64
	}
	Text struct {
		Title       string
		SongAuthor  string
		LevelAuthor string
	}
)
