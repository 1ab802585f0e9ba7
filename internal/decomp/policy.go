package decomp

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"spvdecomp/internal/diag"
)

// Policy decides, per error kind, whether a resolution failure aborts the run
// or is rendered as an inline "[error: ...]" placeholder with an Error
// diagnostic. Structural violations raised while building a module always
// abort; the policy only applies to rendering.
type Policy struct {
	name    string
	degrade map[Kind]bool
}

// Strict escalates every kind.
func Strict() Policy { return Policy{name: "strict"} }

// Lenient degrades resolution failures and keeps structural violations fatal.
func Lenient() Policy {
	return Policy{name: "lenient", degrade: map[Kind]bool{
		KindMissingID:              true,
		KindTypeMismatch:           true,
		KindUnexpectedStorageClass: true,
	}}
}

// ParsePolicy builds a policy from its name and an optional explicit list of
// degraded kinds, which replaces the named policy's set when non-empty.
func ParsePolicy(name string, degrade []string) (Policy, error) {
	var p Policy
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "strict":
		p = Strict()
	case "lenient":
		p = Lenient()
	default:
		return Policy{}, fmt.Errorf("unknown error policy %q (want strict or lenient)", name)
	}
	if len(degrade) == 0 {
		return p, nil
	}
	p.degrade = make(map[Kind]bool, len(degrade))
	for _, n := range degrade {
		k, err := ParseKind(strings.TrimSpace(n))
		if err != nil {
			return Policy{}, err
		}
		p.degrade[k] = true
	}
	return p, nil
}

// Degrades reports whether failures of kind k are rendered as placeholders.
func (p Policy) Degrades(k Kind) bool { return p.degrade[k] }

func (p Policy) String() string {
	name := p.name
	if name == "" {
		name = "strict"
	}
	if len(p.degrade) == 0 {
		return name
	}
	kinds := make([]string, 0, len(p.degrade))
	for k, on := range p.degrade {
		if on {
			kinds = append(kinds, k.String())
		}
	}
	sort.Strings(kinds)
	return name + "(" + strings.Join(kinds, ",") + ")"
}

// apply turns a degradable engine error into a placeholder and an Error
// diagnostic. Any other error is returned unchanged.
func (p Policy) apply(rep diag.Reporter, at diag.Span, err error) (string, error) {
	var e *Error
	if !errors.As(err, &e) || !p.Degrades(e.Kind) {
		return "", err
	}
	if e.ID != 0 {
		at.ID = e.ID
	}
	diag.ReportError(rep, e.DiagCode(), at, e.Error()).Emit()
	return "[error: " + e.Error() + "]", nil
}
