package pack

import (
	_ "embed"
	"errors"
	"sort"
)

// DefaultPackName is the file name the bundled starter pack is seeded
// under. Seeding never overwrites an existing source with this name.
const DefaultPackName = "example_flash_cards.json"

//go:embed example_flash_cards.json
var defaultPack []byte

// LoadFailure records one source that could not be ingested. Failures
// are collected, not raised, so one bad pack never blocks the rest.
type LoadFailure struct {
	Source string
	Err    error
}

// Store owns a category table built from zero or more pack sources.
// Loads are not synchronized; callers that load after sessions exist
// must serialize access themselves.
type Store struct {
	categories CategoryTable
}

func NewStore() *Store {
	return &Store{categories: make(CategoryTable)}
}

// LoadFromSource merges one pack document into the table. The merge is
// all-or-nothing: a parse failure leaves the table untouched. A
// category name that already exists is overwritten whole, last loaded
// wins. Returns how many categories this source contributed.
func (s *Store) LoadFromSource(source string, data []byte) (int, error) {
	table, err := ParsePack(data)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Source = source
		}
		return 0, err
	}

	return s.Merge(table), nil
}

// Merge applies the overwrite rule for an already-parsed table:
// every category in table replaces any same-named category whole.
// Returns the number of categories merged.
func (s *Store) Merge(table CategoryTable) int {
	for name, set := range table {
		s.categories[name] = set
	}
	return len(table)
}

// LoadAll ingests every source the storage lists, each independently.
// The returned error covers listing only; per-source problems land in
// failures. Zero valid sources is a valid (empty) outcome.
func (s *Store) LoadAll(storage Storage) (int, []LoadFailure, error) {
	ids, err := storage.List()
	if err != nil {
		return 0, nil, err
	}

	loaded := 0
	var failures []LoadFailure
	for _, id := range ids {
		data, err := storage.Read(id)
		if err != nil {
			failures = append(failures, LoadFailure{Source: id, Err: err})
			continue
		}
		count, err := s.LoadFromSource(id, data)
		if err != nil {
			failures = append(failures, LoadFailure{Source: id, Err: err})
			continue
		}
		loaded += count
	}
	return loaded, failures, nil
}

// EnsureDefaultPack seeds the bundled starter pack into storage when no
// source with its name exists yet. Best effort: listing or write
// problems are swallowed, a missing starter pack is never fatal.
func (s *Store) EnsureDefaultPack(storage Storage) {
	ids, err := storage.List()
	if err != nil {
		return
	}
	for _, id := range ids {
		if id == DefaultPackName {
			return
		}
	}
	_ = storage.Write(DefaultPackName, defaultPack)
}

// Snapshot returns a read view of the table. The map is copied so a
// later load does not mutate what a front-end is rendering; question
// sets are shared and treated as read-only by every consumer.
func (s *Store) Snapshot() CategoryTable {
	view := make(CategoryTable, len(s.categories))
	for name, set := range s.categories {
		view[name] = set
	}
	return view
}

// CategoryNames returns the category names sorted, the order front-ends
// present them in.
func (s *Store) CategoryNames() []string {
	names := make([]string, 0, len(s.categories))
	for name := range s.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) Len() int {
	return len(s.categories)
}
