package decomp

import (
	"fmt"
	"sort"
)

// Dialect selects the statement keywords of the rendered pseudo-source.
type Dialect struct {
	Name string
	// declare and bind are the statement prefixes before the "=" or ";".
	declare string
	bind    string
}

var (
	// Rust renders "let mut x: T;" and "let y = x;".
	Rust = Dialect{Name: "rust", declare: "let mut", bind: "let"}
	// Neutral renders "declare mutable x: T;" and "bind y = x;".
	Neutral = Dialect{Name: "neutral", declare: "declare mutable", bind: "bind"}
)

var dialects = map[string]Dialect{
	Rust.Name:    Rust,
	Neutral.Name: Neutral,
}

// LookupDialect resolves a dialect by name; the empty name selects Rust.
func LookupDialect(name string) (Dialect, error) {
	if name == "" {
		return Rust, nil
	}
	d, ok := dialects[name]
	if !ok {
		return Dialect{}, fmt.Errorf("unknown dialect %q (available: %v)", name, DialectNames())
	}
	return d, nil
}

// DialectNames lists the registered dialects.
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d Dialect) orDefault() Dialect {
	if d.declare == "" {
		return Rust
	}
	return d
}

func (d Dialect) declareStmt(name, typ, init string) string {
	if init != "" {
		return d.declare + " " + name + ": " + typ + " = " + init + ";"
	}
	return d.declare + " " + name + ": " + typ + ";"
}

func (d Dialect) bindStmt(name, value string) string {
	return d.bind + " " + name + " = " + value + ";"
}
