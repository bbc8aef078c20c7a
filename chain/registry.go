package chain

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/hasbyte1/go-lazy-collections/collections"
)

// OperatorFunc is the function signature for a registered operator.
//
// in is the sequence currently held by the wrapper and args are the call
// arguments that follow it. A non-terminal operator returns the sequence that
// replaces in; a terminal operator returns the value that ends the chain.
type OperatorFunc func(cfg *Config, in collections.Sequence[any, any], args ...any) (any, error)

type operator struct {
	fn       OperatorFunc
	terminal bool
}

// registry is the package-level, goroutine-safe operator store. Names are
// stored lower-cased.
var registry struct {
	mu  sync.RWMutex
	ops map[string]operator
}

func init() {
	ResetOperators()
}

// Register adds a named, chainable operator to the global registry. If an
// operator with that name already exists it is replaced. Lookups ignore case.
// Safe to call from multiple goroutines.
//
// Example – register an operator that keeps only even integers:
//
//	chain.Register("evens", func(_ *chain.Config, in collections.Sequence[any, any], _ ...any) (any, error) {
//	    return collections.Filter(in, func(v, _ any) bool {
//	        n, ok := v.(int)
//	        return ok && n%2 == 0
//	    }), nil
//	})
//
//	w, _ := chain.Wrap([]int{1, 2, 3, 4}).Call("evens")
func Register(name string, fn OperatorFunc) {
	store(name, operator{fn: fn})
}

// RegisterTerminal adds a named operator whose result ends the chain and is
// returned to the caller as is, even when it is itself a sequence.
func RegisterTerminal(name string, fn OperatorFunc) {
	store(name, operator{fn: fn, terminal: true})
}

func store(name string, op operator) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.ops[strings.ToLower(name)] = op
}

// HasOperator reports whether an operator with the given name is registered.
func HasOperator(name string) bool {
	_, ok := lookup(name)
	return ok
}

// Operators returns the registered operator names in ascending order.
func Operators() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.ops))
	for name := range registry.ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResetOperators removes every custom operator and restores the built-ins.
// Intended for use in tests.
func ResetOperators() {
	ops := make(map[string]operator, len(builtins))
	for name, op := range builtins {
		ops[name] = op
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.ops = ops
}

func lookup(name string) (operator, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	op, ok := registry.ops[strings.ToLower(name)]
	return op, ok
}

// Dispatch calls the named operator with in and args outside of any wrapper.
// Returns (nil, ErrUnsupportedOperation) if no operator is registered under
// name.
func Dispatch(cfg Config, name string, in collections.Sequence[any, any], args ...any) (any, error) {
	op, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperation, name)
	}
	return op.fn(&cfg, in, args...)
}
