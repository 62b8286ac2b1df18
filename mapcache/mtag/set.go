package mtag

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Set is a tag set serialized as a list of slugs.
//
// A nil Set and an empty Set are both "no tags".
type Set map[Tag]struct{}

func NewSet(tags ...Tag) Set {
	set := make(Set, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

func (r Set) Has(tag Tag) bool {
	_, ok := r[tag]
	return ok
}

func (r Set) Len() int {
	return len(r)
}

// Slice returns the tags ordered by code, unknown slugs last in lexical order.
func (r Set) Slice() []Tag {
	tags := make([]Tag, 0, len(r))
	for tag := range r {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		ci, cj := tags[i].Code(), tags[j].Code()
		switch {
		case ci == CodeUnknown && cj == CodeUnknown:
			return tags[i] < tags[j]
		case ci == CodeUnknown:
			return false
		case cj == CodeUnknown:
			return true
		}
		return ci < cj
	})
	return tags
}

func (r Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Slice())
}

func (r *Set) UnmarshalJSON(bs []byte) error {
	tags := make([]Tag, 0)
	if err := json.Unmarshal(bs, &tags); err != nil {
		return errors.Wrap(err, "Set.UnmarshalJSON error")
	}
	*r = fromSlugs(tags)
	return nil
}

func (r Set) MarshalYAML() (any, error) {
	return r.Slice(), nil
}

func (r *Set) UnmarshalYAML(node *yaml.Node) error {
	tags := make([]Tag, 0)
	if err := node.Decode(&tags); err != nil {
		return errors.Wrap(err, "Set.UnmarshalYAML error")
	}
	*r = fromSlugs(tags)
	return nil
}

// fromSlugs normalizes known slugs and keeps unknown ones verbatim.
func fromSlugs(tags []Tag) Set {
	set := make(Set, len(tags))
	for _, tag := range tags {
		if parsed, ok := Parse(string(tag)); ok {
			tag = parsed
		}
		set[tag] = struct{}{}
	}
	return set
}
