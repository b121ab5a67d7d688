package goStats

import (
	"errors"
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	defs := Catalog()
	if err := ValidateCatalog(defs); err != nil {
		t.Fatalf("built-in catalog invalid: %v", err)
	}
	if len(defs) != int(metricIDCount) {
		t.Fatalf("expected %d catalog entries, got %d", metricIDCount, len(defs))
	}
	for i, def := range defs {
		if def.ID != MetricID(i) {
			t.Fatalf("entry %d (%s) has id %d; catalog must follow id order", i, def.Name, def.ID)
		}
		if def.Help == "" {
			t.Fatalf("%s has no help text", def.Name)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	a := Catalog()
	a[0].Name = "mutated"
	if Catalog()[0].Name == "mutated" {
		t.Fatal("Catalog exposed the built-in table")
	}
}

func TestCatalogKinds(t *testing.T) {
	kinds := map[MetricID]CounterKind{
		MetricRequestTotal:            KindMonotonic,
		MetricRequestCount:            KindRolling,
		MetricConfigCreateTotal:       KindMonotonic,
		MetricConfigCreateCount:       KindRolling,
		MetricMessageDestinationSlack: KindMonotonic,
		MetricSendTestMessageCount:    KindRolling,
		MetricSecurityUserError:       KindRolling,
	}
	defs := Catalog()
	for id, want := range kinds {
		if got := defs[id].Kind; got != want {
			t.Fatalf("%s: expected %s, got %s", defs[id].Name, want, got)
		}
	}
}

func TestValidateCatalogRejects(t *testing.T) {
	cases := []struct {
		name string
		defs []MetricDef
		want error
	}{
		{
			name: "empty name",
			defs: []MetricDef{{ID: 0, Name: ""}},
			want: ErrInvalidMetricName,
		},
		{
			name: "empty segment",
			defs: []MetricDef{{ID: 0, Name: "a..b"}},
			want: ErrInvalidMetricName,
		},
		{
			name: "trailing delimiter",
			defs: []MetricDef{{ID: 0, Name: "a.b."}},
			want: ErrInvalidMetricName,
		},
		{
			name: "unknown kind",
			defs: []MetricDef{{ID: 0, Name: "a", Kind: CounterKind(9)}},
			want: ErrInvalidMetricName,
		},
		{
			name: "duplicate name",
			defs: []MetricDef{{ID: 0, Name: "a.b"}, {ID: 1, Name: "a.b"}},
			want: ErrDuplicateMetric,
		},
		{
			name: "duplicate id",
			defs: []MetricDef{{ID: 3, Name: "a.b"}, {ID: 3, Name: "a.c"}},
			want: ErrDuplicateMetricID,
		},
		{
			name: "prefix collision",
			defs: []MetricDef{{ID: 0, Name: "a.b"}, {ID: 1, Name: "a.b.c"}},
			want: ErrNameCollision,
		},
		{
			name: "prefix collision listed first",
			defs: []MetricDef{{ID: 0, Name: "x.y.z"}, {ID: 1, Name: "x"}},
			want: ErrNameCollision,
		},
	}

	for _, tc := range cases {
		if err := ValidateCatalog(tc.defs); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestValidateCatalogAllowsSharedTextPrefix(t *testing.T) {
	// "ab" is a text prefix of "ab_c" and "a" of "ab.c", but neither is a
	// segment prefix, so nesting is unambiguous.
	defs := []MetricDef{
		{ID: 0, Name: "ab"},
		{ID: 1, Name: "ab_c"},
		{ID: 2, Name: "a"},
		{ID: 3, Name: "abc.d"},
	}
	if err := ValidateCatalog(defs); err != nil {
		t.Fatalf("expected valid table, got %v", err)
	}
}
