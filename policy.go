package handoff

import (
	"fmt"
	"strconv"
	"strings"
)

type policyKind int

const (
	policyUnset policyKind = iota
	policySingle
	policyFixed
	policyUnbounded
)

// Policy is the capacity policy of a buffer: a single slot, a fixed number of slots or no
// bound at all. The zero value is invalid.
type Policy struct {
	kind     policyKind
	capacity int
}

// Single returns the policy of a buffer that holds at most one item.
func Single() Policy {
	return Policy{kind: policySingle, capacity: 1}
}

// Fixed returns the policy of a buffer that holds at most n items. A non-positive n is
// reported by [New].
func Fixed(n int) Policy {
	return Policy{kind: policyFixed, capacity: n}
}

// Unbounded returns the policy of a buffer whose puts never block.
func Unbounded() Policy {
	return Policy{kind: policyUnbounded}
}

// ParsePolicy parses the textual form produced by [Policy.String]: "single", "fixed:N" or
// "unbounded".
func ParsePolicy(s string) (Policy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "single":
		return Single(), nil
	case s == "unbounded":
		return Unbounded(), nil
	case strings.HasPrefix(s, "fixed:"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "fixed:"))
		if err != nil {
			return Policy{}, &ConfigError{Field: "policy", Reason: fmt.Sprintf("has invalid capacity in %q", s)}
		}
		p := Fixed(n)
		if err := p.validate(); err != nil {
			return Policy{}, err
		}
		return p, nil
	default:
		return Policy{}, &ConfigError{Field: "policy", Reason: fmt.Sprintf("is unknown: %q", s)}
	}
}

// Capacity returns the maximum number of held items and whether the policy is bounded at all.
func (p Policy) Capacity() (int, bool) {
	if p.kind == policyUnbounded {
		return 0, false
	}
	return p.capacity, true
}

func (p Policy) String() string {
	switch p.kind {
	case policySingle:
		return "single"
	case policyFixed:
		return "fixed:" + strconv.Itoa(p.capacity)
	case policyUnbounded:
		return "unbounded"
	default:
		return "unset"
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler] so policies can be read from config
// files.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Policy) MarshalText() ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

func (p Policy) validate() error {
	switch p.kind {
	case policyUnset:
		return &ConfigError{Field: "policy", Reason: "is not set"}
	case policyFixed:
		if p.capacity < 1 {
			return &ConfigError{Field: "capacity", Reason: "can't be < 1"}
		}
	}
	return nil
}
