package lathe

import (
	"fmt"
	"strings"
)

type Operation int

const (
	Boring Operation = iota
	Facing
	FaceBoring
	Turning
	Drilling
)

var operationNames = map[Operation]string{
	Boring:     "boring",
	Facing:     "facing",
	FaceBoring: "faceboring",
	Turning:    "turning",
	Drilling:   "drilling",
}

func ParseOperation(name string) (Operation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for op, n := range operationNames {
		if n == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

func (op Operation) String() string {
	if n, ok := operationNames[op]; ok {
		return n
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// Supported reports whether a toolpath generator exists for op.
func (op Operation) Supported() bool {
	_, ok := strategies[op]
	return ok
}

// Operations lists every known operation in declaration order.
func Operations() []Operation {
	return []Operation{Boring, Facing, FaceBoring, Turning, Drilling}
}
