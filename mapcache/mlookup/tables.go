// Package mlookup holds the dictionaries that compact records reference by
// index: the uploader list and the difficulty label list.
//
// Tables are built once when a cache payload is read and are read-only
// afterwards, so a single *Tables can be shared by concurrent decoders.
package mlookup

type (
	Uploaders struct {
		Names []string `json:"names"`
		IDs   []int32  `json:"ids"`
	}
	Tables struct {
		uploaders Uploaders
		labels    []string
	}
)

// NewTables copies its inputs so later changes by the caller cannot leak
// into decoding.
func NewTables(uploaders Uploaders, difficultyLabels []string) *Tables {
	return &Tables{
		uploaders: Uploaders{
			Names: append([]string(nil), uploaders.Names...),
			IDs:   append([]int32(nil), uploaders.IDs...),
		},
		labels: append([]string(nil), difficultyLabels...),
	}
}

// Empty returns tables where every lookup misses.
func Empty() *Tables {
	return &Tables{}
}

// UploaderName returns false when index is outside the name list.
func (r *Tables) UploaderName(index int) (string, bool) {
	if r == nil || index < 0 || index >= len(r.uploaders.Names) {
		return "", false
	}
	return r.uploaders.Names[index], true
}

// UploaderID returns false when index is outside the id list. The id list is
// looked up independently of the name list.
func (r *Tables) UploaderID(index int) (int32, bool) {
	if r == nil || index < 0 || index >= len(r.uploaders.IDs) {
		return 0, false
	}
	return r.uploaders.IDs[index], true
}

func (r *Tables) DifficultyLabel(index int) (string, bool) {
	if r == nil || index < 0 || index >= len(r.labels) {
		return "", false
	}
	return r.labels[index], true
}

func (r *Tables) NumUploaders() int {
	if r == nil {
		return 0
	}
	return len(r.uploaders.Names)
}

func (r *Tables) NumDifficultyLabels() int {
	if r == nil {
		return 0
	}
	return len(r.labels)
}

// Uploaders returns a copy of the uploader list.
func (r *Tables) Uploaders() Uploaders {
	if r == nil {
		return Uploaders{}
	}
	return Uploaders{
		Names: append([]string(nil), r.uploaders.Names...),
		IDs:   append([]int32(nil), r.uploaders.IDs...),
	}
}

// DifficultyLabels returns a copy of the label list.
func (r *Tables) DifficultyLabels() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.labels...)
}
