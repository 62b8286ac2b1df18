package ds

import (
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type (
	// Comparator returns a negative number, zero or a positive number when a
	// sorts before, together with or after b.
	Comparator[T any] func(a, b T) int
	// SorterOptions configures a Sorter. TiebreakKey must name a comparator
	// that only returns 0 for identical entities. Presence is optional: for a
	// key listed there, entities without the field are placed after the others
	// whatever the direction.
	SorterOptions[T any] struct {
		DefaultKey  string
		TiebreakKey string
		Comparators map[string]Comparator[T]
		Presence    map[string]func(T) bool
	}
	// Sorter is a registry of named comparators sharing one tie-break. It
	// holds no per-call state and is safe for concurrent use.
	Sorter[T any] struct {
		defaultKey  string
		tiebreakKey string
		comparators map[string]Comparator[T]
		presence    map[string]func(T) bool
	}
)

var (
	ErrUnknownDefaultKey  = errors.New("default key has no comparator")
	ErrUnknownTiebreakKey = errors.New("tie-break key has no comparator")
)

func NewSorter[T any](options SorterOptions[T]) (*Sorter[T], error) {
	if _, ok := options.Comparators[options.DefaultKey]; !ok {
		return nil, errors.Wrapf(ErrUnknownDefaultKey, `NewSorter error: key "%s"`, options.DefaultKey)
	}
	if _, ok := options.Comparators[options.TiebreakKey]; !ok {
		return nil, errors.Wrapf(ErrUnknownTiebreakKey, `NewSorter error: key "%s"`, options.TiebreakKey)
	}
	comparators := make(map[string]Comparator[T], len(options.Comparators))
	for key, comparator := range options.Comparators {
		comparators[key] = comparator
	}
	presence := make(map[string]func(T) bool, len(options.Presence))
	for key, present := range options.Presence {
		presence[key] = present
	}
	return &Sorter[T]{
		defaultKey:  options.DefaultKey,
		tiebreakKey: options.TiebreakKey,
		comparators: comparators,
		presence:    presence,
	}, nil
}

// MustSorter is NewSorter for package-level registries.
func MustSorter[T any](options SorterOptions[T]) *Sorter[T] {
	sorter, err := NewSorter(options)
	if err != nil {
		panic(err)
	}
	return sorter
}

func (r *Sorter[T]) DefaultKey() string {
	return r.defaultKey
}

func (r *Sorter[T]) TiebreakKey() string {
	return r.tiebreakKey
}

// Keys lists the registered keys in lexical order.
func (r *Sorter[T]) Keys() []string {
	keys := make([]string, 0, len(r.comparators))
	for key := range r.comparators {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Resolve maps unknown keys to the default key.
func (r *Sorter[T]) Resolve(key string) string {
	if _, ok := r.comparators[key]; ok {
		return key
	}
	return r.defaultKey
}

func (r *Sorter[T]) DefaultComparator() Comparator[T] {
	return r.Comparator(r.defaultKey)
}

// Comparator returns the comparator of key, or of the default key when key is
// unknown, falling back to the tie-break on equality. The tie-break itself is
// returned unwrapped.
func (r *Sorter[T]) Comparator(key string) Comparator[T] {
	return r.Directed(key, true)
}

// Directed is Comparator with the primary order reversed when ascending is
// false. The tie-break always stays ascending.
func (r *Sorter[T]) Directed(key string, ascending bool) Comparator[T] {
	key = r.Resolve(key)
	primary := normalized(r.comparators[key])
	if !ascending {
		primary = reversed(primary)
	}
	if key == r.tiebreakKey {
		return primary
	}
	tiebreak := normalized(r.comparators[r.tiebreakKey])
	return func(a, b T) int {
		if result := primary(a, b); result != 0 {
			return result
		}
		return tiebreak(a, b)
	}
}

// Sort returns a sorted copy of ts. The sort is stable, O(n log n), and
// places entities missing the key's field last when the key has a presence
// function.
func (r *Sorter[T]) Sort(ts []T, key string, ascending bool) []T {
	key = r.Resolve(key)
	comparator := r.Directed(key, ascending)
	present, ok := r.presence[key]
	if !ok {
		result := ShallowCopy(ts)
		slices.SortStableFunc(result, lessFunc(comparator))
		return result
	}

	withField := make([]T, 0, len(ts))
	withoutField := make([]T, 0)
	for _, t := range ts {
		if present(t) {
			withField = append(withField, t)
		} else {
			withoutField = append(withoutField, t)
		}
	}
	slices.SortStableFunc(withField, lessFunc(comparator))
	slices.SortStableFunc(withoutField, lessFunc(r.Comparator(r.tiebreakKey)))
	return append(withField, withoutField...)
}

// CompareOrdered is the natural order of T as a Comparator.
func CompareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareMissingLast orders entities that have a value before the ones that
// do not, and compares the values otherwise.
func CompareMissingLast[V any](a V, aOK bool, b V, bOK bool, compare Comparator[V]) int {
	switch {
	case !aOK && !bOK:
		return 0
	case !aOK:
		return 1
	case !bOK:
		return -1
	default:
		return compare(a, b)
	}
}

func Sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func normalized[T any](comparator Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		return Sign(comparator(a, b))
	}
}

func reversed[T any](comparator Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		return comparator(b, a)
	}
}

func lessFunc[T any](comparator Comparator[T]) func(a, b T) bool {
	return func(a, b T) bool {
		return comparator(a, b) < 0
	}
}
