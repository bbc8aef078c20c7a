package collections

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// Shuffler is the entropy source used by [Shuffle]. It must apply a uniform
// random permutation of n elements through swap.
//
// *math/rand.Rand and *math/rand/v2.Rand satisfy it directly.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// ShufflerFunc adapts a plain function such as rand.Shuffle to [Shuffler].
type ShufflerFunc func(n int, swap func(i, j int))

// Shuffle calls f(n, swap).
func (f ShufflerFunc) Shuffle(n int, swap func(i, j int)) { f(n, swap) }

// DefaultShuffler uses the process-wide math/rand/v2 source.
var DefaultShuffler Shuffler = ShufflerFunc(rand.Shuffle)

// SeededShuffler produces the same permutation for the same seed and length.
// It runs a Fisher–Yates shuffle driven by a ChaCha20 keystream whose key is
// the BLAKE2b-256 digest of the seed.
//
// A SeededShuffler is stateful: successive Shuffle calls continue the
// keystream. It is not safe for concurrent use.
type SeededShuffler struct {
	stream *chacha20.Cipher
	buf    [8]byte
}

// NewSeededShuffler creates a deterministic shuffler from seed.
// Returns [ErrInvalidSeed] for an empty seed.
func NewSeededShuffler(seed []byte) (*SeededShuffler, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	key := blake2b.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	stream, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, err
	}
	return &SeededShuffler{stream: stream}, nil
}

// Shuffle permutes n elements via swap.
func (s *SeededShuffler) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, s.intn(i+1))
	}
}

func (s *SeededShuffler) uint64() uint64 {
	clear(s.buf[:])
	s.stream.XORKeyStream(s.buf[:], s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}

// intn returns a uniform value in [0, n) by rejection sampling.
func (s *SeededShuffler) intn(n int) int {
	bound := uint64(n)
	limit := math.MaxUint64 - math.MaxUint64%bound
	for {
		if v := s.uint64(); v < limit {
			return int(v % bound)
		}
	}
}
