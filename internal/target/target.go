package target

import (
	"fmt"
	"slices"
)

// Target describes the machine the compiled module is meant for. Only the
// word size matters to the front end: it fixes pointer sizes and which
// integer type is used for registers.
type Target struct {
	Key      string
	Name     string
	WordSize int
}

const DefaultKey = "64-bit"

var targets = []Target{
	{Key: "32-bit", Name: "32-bit x86", WordSize: 4},
	{Key: "64-bit", Name: "64-bit x86-64", WordSize: 8},
}

func Lookup(key string) (Target, error) {
	for _, t := range targets {
		if t.Key == key {
			return t, nil
		}
	}

	return Target{}, fmt.Errorf("unknown target %q, available: %v", key, Keys())
}

func Default() Target {
	t, _ := Lookup(DefaultKey)
	return t
}

func Targets() []Target {
	return slices.Clone(targets)
}

func Keys() []string {
	keys := make([]string, len(targets))
	for i, t := range targets {
		keys[i] = t.Key
	}

	return keys
}

func (t Target) String() string {
	return fmt.Sprintf("%s (%s, word size %d)", t.Key, t.Name, t.WordSize)
}
