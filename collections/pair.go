package collections

import "fmt"

// Pair is one key/value entry of a sequence, as returned by
// [Collection.Pairs].
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// String returns a human-readable representation: "key => value".
func (p Pair[K, V]) String() string {
	return fmt.Sprintf("%v => %v", p.Key, p.Value)
}
