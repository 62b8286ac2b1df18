package mtag

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// FromCode returns the tag of a compact code. Unknown codes return false.
func FromCode(code Code) (Tag, bool) {
	tag, ok := tagByCode[code]
	return tag, ok
}

// FromCodes maps every code and silently drops the ones without a tag.
func FromCodes(codes []Code) []Tag {
	tags := make([]Tag, 0, len(codes))
	for _, code := range codes {
		if tag, ok := FromCode(code); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Parse reads a tag slug as served by the remote catalog.
func Parse(s string) (Tag, bool) {
	tag := Tag(strings.ToLower(strings.TrimSpace(s)))
	_, ok := codeByTag[tag]
	return tag, ok
}

// ParseAll keeps only the slugs Parse recognizes.
func ParseAll(ss []string) []Tag {
	tags := make([]Tag, 0, len(ss))
	for _, s := range ss {
		if tag, ok := Parse(s); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (r Tag) Code() Code {
	return codeByTag[r]
}

func (r Tag) Family() Family {
	family, ok := familyByTag[r]
	if !ok {
		return FamilyUnknown
	}
	return family
}

func (r Tag) Valid() bool {
	_, ok := codeByTag[r]
	return ok
}

// All returns every known tag ordered by code.
func All() []Tag {
	codes := lo.Keys(tagByCode)
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return lo.Map(
		codes,
		func(code Code, _ int) Tag {
			return tagByCode[code]
		},
	)
}

// OfFamily returns the tags of one family ordered by code.
func OfFamily(family Family) []Tag {
	return lo.Filter(
		All(),
		func(tag Tag, _ int) bool {
			return tag.Family() == family
		},
	)
}
