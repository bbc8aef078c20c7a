// Package chain wraps a sequence so collection operators can be invoked by
// name and chained fluently.
//
// A [Wrapper] holds one collections.Sequence[any, any]. Each operator call
// looks the name up in a registry, passes the held sequence as the first
// argument and either replaces the held sequence with the result or, for a
// terminal operator, returns the result:
//
//	out, err := chain.Wrap([]int{5, 3, 8, 1}).
//	    Filter(func(v any) bool { return v.(int) > 2 }).
//	    Sort().
//	    AsArray()
//	// out → [3 5 8]
//
// The same dispatch is available dynamically through [Wrapper.Call], and new
// operators can be added with [Register] and [RegisterTerminal]:
//
//	w := chain.Wrap(collections.Range(1, 10))
//	w.Call("chunk", 3)
//	n, _ := w.Call("count") // → 4
//
// Values travel as any, so the built-in operators use dynamic defaults:
// natural ordering for sort/min/max, string comparison for unique, loose
// equality for in (see [Config.Strict]) and numeric widening for sum.
// Callbacks may be plain funcs or any [Applier], such as an access.Path.
package chain
