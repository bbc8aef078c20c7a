package chain_test

import (
	"bytes"
	"errors"
	"iter"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-lazy-collections/access"
	"github.com/hasbyte1/go-lazy-collections/chain"
	"github.com/hasbyte1/go-lazy-collections/collections"
)

// counting is a lazy producer over items that records how many pairs have
// been pulled.
func counting(pulled *int, items ...any) *collections.Lazy[any, any] {
	i := 0
	return collections.FromFunc(func() (any, any, bool) {
		if i >= len(items) {
			return nil, nil, false
		}
		*pulled++
		i++
		return i - 1, items[i-1], true
	})
}

func values(t *testing.T, w *chain.Wrapper) []any {
	t.Helper()
	out, err := w.AsArray()
	require.NoError(t, err)
	return out.Values()
}

// ─────────────────────────────────────────────────────────────────────────────
// Construction
// ─────────────────────────────────────────────────────────────────────────────

func TestWrap_Inputs(t *testing.T) {
	tests := []struct {
		name  string
		input any
		keys  []any
		vals  []any
	}{
		{"nil", nil, []any{}, []any{}},
		{"any slice", []any{"a", 1}, []any{0, 1}, []any{"a", 1}},
		{"typed slice", []int{4, 5}, []any{0, 1}, []any{4, 5}},
		{"array", [2]string{"x", "y"}, []any{0, 1}, []any{"x", "y"}},
		{"string map", map[string]any{"b": 2, "a": 1}, []any{"a", "b"}, []any{1, 2}},
		{"typed map", map[int]string{3: "c", 1: "a"}, []any{1, 3}, []any{"a", "c"}},
		{"typed collection", collections.FromMap(map[string]int{"k": 9}), []any{"k"}, []any{9}},
		{"lazy", collections.Range(1, 3), []any{0, 1, 2}, []any{1, 2, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := chain.Wrap(tc.input).AsArray()
			require.NoError(t, err)
			assert.Equal(t, tc.keys, append([]any{}, out.Keys()...))
			assert.Equal(t, tc.vals, append([]any{}, out.Values()...))
		})
	}
}

func TestWrap_Iterators(t *testing.T) {
	seq := func(yield func(any) bool) {
		for _, s := range []string{"p", "q"} {
			if !yield(s) {
				return
			}
		}
	}
	assert.Equal(t, []any{"p", "q"}, values(t, chain.Wrap(iter.Seq[any](seq))))
	assert.Equal(t, []any{"p", "q"}, values(t, chain.Wrap(seq)))

	seq2 := func(yield func(any, any) bool) {
		yield("k", "v")
	}
	out, err := chain.Wrap(iter.Seq2[any, any](seq2)).AsArray()
	require.NoError(t, err)
	assert.Equal(t, map[any]any{"k": "v"}, out.ToMap())
}

func TestWrap_Unsupported(t *testing.T) {
	w := chain.Wrap(42)
	assert.ErrorIs(t, w.Err(), chain.ErrInvalidArgument)
	_, err := w.Count()
	assert.ErrorIs(t, err, chain.ErrInvalidArgument)
}

func TestWrap_DoesNotTraverse(t *testing.T) {
	var pulled int
	chain.Wrap(counting(&pulled, 1, 2, 3))
	assert.Equal(t, 0, pulled)
}

func TestOf(t *testing.T) {
	n, err := chain.Of[int, int](collections.New(1, 2, 3)).Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestWrapper_IsSequence(t *testing.T) {
	w := chain.Wrap([]int{1, 2, 3}).Reverse()
	assert.Equal(t, 3, collections.Count[any, any](w))

	rewrapped := chain.Wrap(chain.Wrap([]int{1, 2}).Reverse())
	assert.Equal(t, []any{2, 1}, values(t, rewrapped))
}

// ─────────────────────────────────────────────────────────────────────────────
// Dispatch
// ─────────────────────────────────────────────────────────────────────────────

func TestCall_ChainableReturnsWrapper(t *testing.T) {
	w := chain.Wrap([]int{1, 2, 3})
	out, err := w.Call("reverse")
	require.NoError(t, err)
	assert.Same(t, w, out)
	assert.Equal(t, []any{3, 2, 1}, values(t, w))
}

func TestCall_TerminalReturnsValue(t *testing.T) {
	out, err := chain.Wrap([]int{1, 2, 3}).Call("count")
	require.NoError(t, err)
	assert.Equal(t, 3, out)

	arr, err := chain.Wrap([]int{1}).Call("asArray")
	require.NoError(t, err)
	assert.IsType(t, &collections.Collection[any, any]{}, arr)
}

func TestCall_CaseInsensitive(t *testing.T) {
	out, err := chain.Wrap([]int{1, 2}).Call("AsArray")
	require.NoError(t, err)
	assert.Equal(t, 2, out.(*collections.Collection[any, any]).Count())
}

func TestCall_Unsupported(t *testing.T) {
	_, err := chain.Wrap([]int{1}).Call("frobnicate")
	assert.ErrorIs(t, err, chain.ErrUnsupportedOperation)
	assert.Contains(t, err.Error(), `"frobnicate"`)
}

func TestFluent_StickyError(t *testing.T) {
	calls := 0
	w := chain.Wrap([]int{1, 2, 3}).
		Chunk(0).
		Map(func(v any) any { calls++; return v })
	assert.ErrorIs(t, w.Err(), collections.ErrInvalidChunkSize)
	assert.Equal(t, 0, calls)
	_, err := w.Sum()
	assert.ErrorIs(t, err, collections.ErrInvalidChunkSize)
}

func TestFluent_InvalidCallback(t *testing.T) {
	w := chain.Wrap([]int{1}).Map("not a func")
	assert.ErrorIs(t, w.Err(), chain.ErrInvalidArgument)
}

func TestDispatch(t *testing.T) {
	out, err := chain.Dispatch(chain.DefaultConfig(), "sum", collections.New[any](1, 2).Erased())
	require.NoError(t, err)
	assert.Equal(t, int64(3), out)
}

func TestCall_LogsDispatch(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	cfg := chain.DefaultConfig()
	cfg.Logger = &log

	_, err := chain.New(cfg, []int{1}).Map(func(v any) any { return v }).Count()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"op":"map"`)
	assert.Contains(t, buf.String(), `"op":"count"`)
	assert.Contains(t, buf.String(), `"terminal":true`)
}

// ─────────────────────────────────────────────────────────────────────────────
// Operators
// ─────────────────────────────────────────────────────────────────────────────

func TestMapFilter_Lazy(t *testing.T) {
	var pulled int
	w := chain.Wrap(counting(&pulled, 1, 2, 3, 4, 5, 6)).
		Map(func(v, k any) any { return v.(int) * 10 }).
		Filter(func(v any) bool { return v.(int) > 20 }).
		Slice(0, 2)
	require.NoError(t, w.Err())
	assert.Equal(t, 0, pulled)

	assert.Equal(t, []any{30, 40}, values(t, w))
	assert.Equal(t, 4, pulled)
}

func TestFilter_DefaultTruthy(t *testing.T) {
	out, err := chain.Wrap([]any{0, 1, "", "a", nil, false}).Filter().AsArray()
	require.NoError(t, err)
	assert.Equal(t, []any{1, 3}, out.Keys())
}

func TestKeysValues(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1}
	assert.Equal(t, []any{"a", "b"}, values(t, chain.Wrap(m).Keys()))
	assert.Equal(t, []any{1, 2}, values(t, chain.Wrap(m).Values()))
}

func TestChunk(t *testing.T) {
	out, err := chain.Wrap([]int{1, 2, 3, 4}).Chunk(2).AsArray()
	require.NoError(t, err)
	require.Equal(t, 2, out.Count())
	first, _ := out.Get(0)
	second, _ := out.Get(1)
	assert.Equal(t, []any{1, 2}, first.(*collections.Collection[int, any]).Values())
	assert.Equal(t, []any{3, 4}, second.(*collections.Collection[int, any]).Values())
}

func TestChunk_SizeLargerThanInput(t *testing.T) {
	out, err := chain.Wrap([]int{1, 2, 3}).Chunk(math.MaxInt).AsArray()
	require.NoError(t, err)
	require.Equal(t, 1, out.Count())
	chunk, _ := out.Get(0)
	assert.Equal(t, []any{1, 2, 3}, chunk.(*collections.Collection[int, any]).Values())
}

func TestChunkPreserve(t *testing.T) {
	out, err := chain.Wrap(map[string]int{"a": 1, "b": 2, "c": 3}).ChunkPreserve(2).AsArray()
	require.NoError(t, err)
	last, _ := out.Get(1)
	assert.Equal(t, []any{"c"}, last.(*collections.Collection[any, any]).Keys())
}

func TestSlice(t *testing.T) {
	assert.Equal(t, []any{2, 3}, values(t, chain.Wrap([]int{1, 2, 3}).Slice(-2, 2)))
	assert.Equal(t, []any{2, 3}, values(t, chain.Wrap([]int{1, 2, 3}).Slice(1)))

	out, err := chain.Wrap([]int{1, 2, 3}).SlicePreserve(1).AsArray()
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, out.Keys())

	dyn := chain.Wrap([]int{1, 2, 3, 4})
	_, err = dyn.Call("slice", 1, nil, true)
	require.NoError(t, err)
	assert.Equal(t, []any{2, 3, 4}, values(t, dyn))
}

func TestReverse(t *testing.T) {
	assert.Equal(t, []any{3, 2, 1}, values(t, chain.Wrap([]int{1, 2, 3}).Reverse()))

	twice, err := chain.Wrap(map[string]int{"a": 1, "b": 2}).ReversePreserve().ReversePreserve().AsArray()
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, twice.Keys())
}

func TestSort(t *testing.T) {
	assert.Equal(t, []any{1, 2, 3}, values(t, chain.Wrap([]int{2, 3, 1}).Sort()))

	desc := func(a, b any) bool { return a.(int) > b.(int) }
	assert.Equal(t, []any{3, 2, 1}, values(t, chain.Wrap([]int{2, 3, 1}).Sort(desc)))

	cmp := func(a, b any) int { return len(a.(string)) - len(b.(string)) }
	assert.Equal(t, []any{"c", "bb", "aaa"}, values(t, chain.Wrap([]string{"aaa", "c", "bb"}).Sort(cmp)))
}

func TestKSort(t *testing.T) {
	src := collections.Empty[int, bool]()
	src.Put(1, true)
	src.Put(3, true)
	src.Put(2, true)
	out, err := chain.Wrap(src).KSort().AsArray()
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, out.Keys())
}

func TestUnique_ComparesStringForms(t *testing.T) {
	out, err := chain.Wrap([]any{1, "1", 2, "a", "a"}).Unique().AsArray()
	require.NoError(t, err)
	assert.Equal(t, []any{0, 2, 3}, out.Keys())
	assert.Equal(t, []any{1, 2, "a"}, out.Values())
}

func TestShuffle_Seeded(t *testing.T) {
	shuffle := func() []any {
		src, err := collections.NewSeededShuffler([]byte("chain"))
		require.NoError(t, err)
		return values(t, chain.Wrap(collections.Range(1, 20)).Shuffle(src))
	}
	a, b := shuffle(), shuffle()
	assert.Equal(t, a, b)
	assert.Len(t, a, 20)
}

func TestShuffle_ConfiguredSource(t *testing.T) {
	reverse := collections.ShufflerFunc(func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	})
	cfg := chain.DefaultConfig()
	cfg.Shuffler = reverse
	assert.Equal(t, []any{3, 2, 1}, values(t, chain.New(cfg, []int{1, 2, 3}).Shuffle()))
}

func TestTap(t *testing.T) {
	var seen int
	w := chain.Wrap(collections.Range(1, 4)).Tap(func(c *collections.Collection[any, any]) {
		seen = c.Count()
	})
	require.NoError(t, w.Err())
	assert.Equal(t, 4, seen)
	sum, err := w.Sum()
	require.NoError(t, err)
	assert.Equal(t, int64(10), sum)
}

func TestReduce(t *testing.T) {
	out, err := chain.Wrap([]int{2, 3, 4}).Reduce(func(acc, v any) any { return acc.(int) - v.(int) }, 1)
	require.NoError(t, err)
	assert.Equal(t, -8, out)
}

func TestMinMax(t *testing.T) {
	lo, err := chain.Wrap([]int{4, 1, 9}).Min()
	require.NoError(t, err)
	assert.Equal(t, 1, lo)

	hi, err := chain.Wrap([]float64{4, 1.5, 9.25}).Max()
	require.NoError(t, err)
	assert.Equal(t, 9.25, hi)

	empty, err := chain.Wrap(nil).Max()
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestSum(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"ints", []int{1, 2, 3}, int64(6)},
		{"widens to float", []any{1, 2.5}, 3.5},
		{"numeric strings", []any{1, "12"}, int64(13)},
		{"nil is zero", []any{nil, 4}, int64(4)},
		{"empty", nil, int64(0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := chain.Wrap(tc.input).Sum()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSum_NotNumeric(t *testing.T) {
	_, err := chain.Wrap([]any{1, struct{}{}}).Sum()
	assert.True(t, errors.Is(err, chain.ErrNotNumeric))
}

func TestImplode(t *testing.T) {
	s, err := chain.Wrap([]int{1, 2, 3}).Implode(",")
	require.NoError(t, err)
	assert.Equal(t, "1,2,3", s)

	s, err = chain.Wrap([]string{"a", "b"}).Implode("", func(v any) string { return "<" + v.(string) + ">" })
	require.NoError(t, err)
	assert.Equal(t, "<a><b>", s)
}

func TestIn(t *testing.T) {
	w := func() *chain.Wrapper { return chain.Wrap([]any{1, "2", 3}) }

	found, err := w().In(2)
	require.NoError(t, err)
	assert.True(t, found, "loose by default")

	found, err = w().In(2, true)
	require.NoError(t, err)
	assert.False(t, found)

	cfg := chain.DefaultConfig()
	cfg.Strict = true
	found, err = chain.New(cfg, []any{1, "2"}).In(2)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = chain.New(cfg, []any{1, "2"}).In("2")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestIn_ShortCircuits(t *testing.T) {
	var pulled int
	found, err := chain.Wrap(counting(&pulled, 1, 2, 3, 4)).In(2)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, pulled)
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessor paths as callbacks
// ─────────────────────────────────────────────────────────────────────────────

type user struct {
	Name string
	Age  int
}

func (u user) Initial() string { return u.Name[:1] }

func TestAccessPath_AsCallback(t *testing.T) {
	users := []user{{"cid", 41}, {"ann", 30}, {"bob", 25}}

	names := values(t, chain.Wrap(users).Map(access.New().Property("Name")))
	assert.Equal(t, []any{"cid", "ann", "bob"}, names)

	byAge := values(t, chain.Wrap(users).Sort(access.New().Property("Age")).Map(access.New().Call("Initial")))
	assert.Equal(t, []any{"b", "a", "c"}, byAge)

	oldest, err := chain.Wrap(users).Max(access.New().Property("Age"))
	require.NoError(t, err)
	assert.Equal(t, users[0], oldest)
}

func TestAccessPath_FilterSkipsAbsent(t *testing.T) {
	rows := []any{
		map[string]any{"tags": []string{"go"}},
		map[string]any{},
		nil,
		map[string]any{"tags": []string{}},
	}
	out, err := chain.Wrap(rows).Filter(access.New().Index("tags")).AsArray()
	require.NoError(t, err)
	assert.Equal(t, []any{0}, out.Keys())
}
