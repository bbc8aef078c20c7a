package access

import (
	"fmt"
	"strings"
)

// Kind identifies what a [Step] does.
type Kind int

const (
	// PropertyKind reads a named member: a struct field, a string map entry or
	// whatever a [PropertyReader] reports.
	PropertyKind Kind = iota
	// IndexKind reads an element by key or position.
	IndexKind
	// CallKind invokes a named method with the recorded arguments.
	CallKind
)

func (k Kind) String() string {
	switch k {
	case PropertyKind:
		return "property"
	case IndexKind:
		return "index"
	case CallKind:
		return "call"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Step is one recorded access. Name is set for property and call steps, Key
// for index steps and Args for call steps.
type Step struct {
	Kind Kind
	Name string
	Key  any
	Args []any
}

// PropertyStep returns a step reading member name.
func PropertyStep(name string) Step { return Step{Kind: PropertyKind, Name: name} }

// IndexStep returns a step reading element key.
func IndexStep(key any) Step { return Step{Kind: IndexKind, Key: key} }

// CallStep returns a step invoking method name with args.
func CallStep(name string, args ...any) Step {
	return Step{Kind: CallKind, Name: name, Args: args}
}

// Resolve applies the step to a non-nil subject. Absent targets resolve to
// nil.
func (s Step) Resolve(subject any) any {
	switch s.Kind {
	case PropertyKind:
		return property(subject, s.Name)
	case IndexKind:
		return index(subject, s.Key)
	case CallKind:
		return call(subject, s.Name, s.Args)
	}
	return nil
}

// String renders the step in the dot notation accepted by [Parse].
func (s Step) String() string {
	switch s.Kind {
	case PropertyKind:
		return "." + s.Name
	case IndexKind:
		if str, ok := s.Key.(string); ok {
			return fmt.Sprintf("[%q]", str)
		}
		return fmt.Sprintf("[%v]", s.Key)
	case CallKind:
		args := make([]string, len(s.Args))
		for i, a := range s.Args {
			args[i] = fmt.Sprintf("%#v", a)
		}
		return "." + s.Name + "(" + strings.Join(args, ", ") + ")"
	}
	return s.Kind.String()
}
