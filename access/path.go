package access

import (
	"slices"
	"strings"
)

// Path is a recorded chain of property, index and call steps that is applied
// later to a subject.
//
// The builder methods append a step and return the same path, so a path is
// written the way the access would be:
//
//	city := access.New().Property("User").Index("address").Call("City")
//	city.Apply(order) // order.User["address"].City(), or nil
//
// Applying a path never fails. As soon as a step yields nil, or the subject
// is nil, the remaining steps are skipped and Apply returns nil.
//
// A path may be applied any number of times, to any number of subjects.
// Building it is not safe for concurrent use; applying it is.
type Path struct {
	steps []Step
}

// New returns an empty path. Applied to a subject, an empty path returns
// that subject unchanged.
func New() *Path {
	return &Path{}
}

// Of returns a path made of steps.
func Of(steps ...Step) *Path {
	return &Path{steps: slices.Clone(steps)}
}

// Property appends a step reading member name.
func (p *Path) Property(name string) *Path {
	p.steps = append(p.steps, PropertyStep(name))
	return p
}

// Index appends a step reading element key.
func (p *Path) Index(key any) *Path {
	p.steps = append(p.steps, IndexStep(key))
	return p
}

// Call appends a step invoking method name with args. args are captured now
// and passed on every application.
func (p *Path) Call(name string, args ...any) *Path {
	p.steps = append(p.steps, CallStep(name, args...))
	return p
}

// Apply folds the steps over subject from left to right.
func (p *Path) Apply(subject any) any {
	cur := subject
	for i, step := range p.steps {
		if isNil(cur) {
			if i > 0 {
				logger().Trace().
					Int("step", i).
					Str("path", p.String()).
					Msg("short-circuit on nil")
			}
			return nil
		}
		cur = step.Resolve(cur)
	}
	if len(p.steps) > 0 && isNil(cur) {
		return nil
	}
	return cur
}

// Func returns Apply as a plain function, for APIs that take callbacks.
func (p *Path) Func() func(any) any {
	return p.Apply
}

// Steps returns a copy of the recorded steps.
func (p *Path) Steps() []Step { return slices.Clone(p.steps) }

// Len returns the number of recorded steps.
func (p *Path) Len() int { return len(p.steps) }

// String renders the path in dot notation, e.g. `user.items[0].Name()`.
func (p *Path) String() string {
	var b strings.Builder
	for _, s := range p.steps {
		b.WriteString(s.String())
	}
	return strings.TrimPrefix(b.String(), ".")
}
