package internaldefs

import (
	"testing"

	goStats "github.com/MrEthical07/goStats"
)

func TestExportName(t *testing.T) {
	cases := []struct {
		name string
		kind goStats.CounterKind
		want string
	}{
		{"notifications_config.create.total", goStats.KindMonotonic, "gostats_notifications_config_create_total"},
		{"notifications_config.create.count", goStats.KindRolling, "gostats_notifications_config_create_count"},
		{"notifications.message_destination.slack", goStats.KindMonotonic, "gostats_notifications_message_destination_slack_total"},
		{"exception.io", goStats.KindRolling, "gostats_exception_io"},
	}
	for _, tc := range cases {
		if got := ExportName(tc.name, tc.kind); got != tc.want {
			t.Fatalf("ExportName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDefsCoverCatalogWithUniqueNames(t *testing.T) {
	catalog := goStats.Catalog()
	defs := Defs()
	if len(defs) != len(catalog) {
		t.Fatalf("expected %d defs, got %d", len(catalog), len(defs))
	}

	seen := make(map[string]string, len(defs))
	for i, d := range defs {
		if d.ID != catalog[i].ID || d.Catalog != catalog[i].Name {
			t.Fatalf("def %d out of catalog order: %+v", i, d)
		}
		if prev, dup := seen[d.Name]; dup {
			t.Fatalf("exported name %q used by %q and %q", d.Name, prev, d.Catalog)
		}
		seen[d.Name] = d.Catalog
	}
	if _, dup := seen[ReporterDropped.Name]; dup {
		t.Fatalf("reporter dropped metric collides with a catalog metric")
	}
}

func TestDefsReturnsCopy(t *testing.T) {
	a := Defs()
	a[0].Name = "mutated"
	if Defs()[0].Name == "mutated" {
		t.Fatal("Defs exposed its backing slice")
	}
}
