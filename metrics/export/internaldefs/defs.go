package internaldefs

import (
	"strings"
	"sync"

	goStats "github.com/MrEthical07/goStats"
)

// Prefix namespaces every exported metric.
const Prefix = "gostats_"

// Def is one catalog entry with its exported name.
type Def struct {
	ID      goStats.MetricID
	Name    string // exported name
	Catalog string // dotted catalog name
	Kind    goStats.CounterKind
	Help    string
}

// ReporterDropped is exported next to the catalog so operators can see
// snapshots lost to a slow sink.
var ReporterDropped = Def{
	Name: Prefix + "reporter_dropped_snapshots_total",
	Kind: goStats.KindMonotonic,
	Help: "Snapshots dropped because the reporter queue was full.",
}

var (
	defsOnce sync.Once
	defs     []Def
)

// Defs returns the exported definitions in catalog order.
func Defs() []Def {
	defsOnce.Do(func() {
		catalog := goStats.Catalog()
		defs = make([]Def, len(catalog))
		for i, d := range catalog {
			defs[i] = Def{
				ID:      d.ID,
				Name:    ExportName(d.Name, d.Kind),
				Catalog: d.Name,
				Kind:    d.Kind,
				Help:    d.Help,
			}
		}
	})
	out := make([]Def, len(defs))
	copy(out, defs)
	return out
}

// ExportName turns a dotted catalog name into a prefixed snake_case name.
// Monotonic counters always end in _total.
func ExportName(name string, kind goStats.CounterKind) string {
	var b strings.Builder
	b.Grow(len(Prefix) + len(name) + len("_total"))
	b.WriteString(Prefix)
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if kind == goStats.KindMonotonic && !strings.HasSuffix(out, "_total") {
		out += "_total"
	}
	return out
}
