package collections

import "errors"

// Sentinel errors used by collection operators.
//
// Operators never report absence through errors; these cover caller contract
// violations only, surfaced as panics by the typed operators so they are not
// masked.
var (
	// ErrInvalidChunkSize is raised when Chunk is called with size < 1.
	ErrInvalidChunkSize = errors.New("collections: chunk size must be greater than 0")

	// ErrNotComparable is raised by Natural when two values have no natural
	// ordering (e.g. a struct and a string).
	ErrNotComparable = errors.New("collections: values are not naturally comparable")

	// ErrInvalidSeed is returned by NewSeededShuffler for an empty seed.
	ErrInvalidSeed = errors.New("collections: shuffle seed must not be empty")
)
