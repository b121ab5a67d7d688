package goStats

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newDefsRegistry(t *testing.T, defs []MetricDef) *Registry {
	t.Helper()
	reg, err := NewRegistryFromDefs(defs, MetricsConfig{Enabled: true, RollingWindow: time.Minute}, WithClock(newManualClock()))
	if err != nil {
		t.Fatalf("NewRegistryFromDefs failed: %v", err)
	}
	return reg
}

func TestCollectFlatTwoIndependentNames(t *testing.T) {
	reg := newDefsRegistry(t, []MetricDef{
		{ID: 0, Name: "x.total", Kind: KindMonotonic},
		{ID: 1, Name: "y.count", Kind: KindMonotonic},
	})
	reg.Add(0, 3)
	reg.Add(1, 7)

	want := map[string]int64{"x.total": 3, "y.count": 7}
	if got := reg.CollectFlat(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCollectNestedSharedPrefix(t *testing.T) {
	reg := newDefsRegistry(t, []MetricDef{
		{ID: 0, Name: "a.b.c", Kind: KindMonotonic},
		{ID: 1, Name: "a.b.d", Kind: KindMonotonic},
	})
	reg.Add(0, 2)
	reg.Add(1, 5)

	want := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": int64(2), "d": int64(5)},
		},
	}
	if got := reg.CollectNested(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	raw, err := reg.NestedJSON()
	if err != nil {
		t.Fatalf("NestedJSON failed: %v", err)
	}
	if string(raw) != `{"a":{"b":{"c":2,"d":5}}}` {
		t.Fatalf("unexpected nested JSON %s", raw)
	}
}

func TestCollectNestedRoundTripsThroughFlatten(t *testing.T) {
	reg, clock := newTestRegistry(t, true)
	for i, def := range reg.Defs() {
		reg.Add(def.ID, int64(i+1))
	}
	clock.Advance(time.Minute)

	flat := reg.CollectFlat()
	back, err := Flatten(reg.CollectNested())
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if !reflect.DeepEqual(flat, back) {
		t.Fatalf("round trip mismatch:\nflat=%v\nback=%v", flat, back)
	}
}

func TestNestedJSONRoundTripsThroughDecodedJSON(t *testing.T) {
	reg, _ := newTestRegistry(t, true)
	reg.Add(MetricMessageDestinationSNS, 11)

	raw, err := reg.NestedJSON()
	if err != nil {
		t.Fatalf("NestedJSON failed: %v", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var nested map[string]any
	if err := dec.Decode(&nested); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	back, err := Flatten(nested)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if !reflect.DeepEqual(back, reg.CollectFlat()) {
		t.Fatal("decoded nested JSON did not flatten back to the flat snapshot")
	}

	// Plain float64 decoding works for integral values too.
	var floats map[string]any
	if err := json.Unmarshal(raw, &floats); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	back, err = Flatten(floats)
	if err != nil {
		t.Fatalf("Flatten of float64 values failed: %v", err)
	}
	if back["notifications.message_destination.sns"] != 11 {
		t.Fatalf("expected sns=11, got %d", back["notifications.message_destination.sns"])
	}
}

func TestCollectPreservesCatalogOrder(t *testing.T) {
	reg, _ := newTestRegistry(t, true)
	values := reg.Collect()
	defs := Catalog()
	if len(values) != len(defs) {
		t.Fatalf("expected %d values, got %d", len(defs), len(values))
	}
	for i, v := range values {
		if v.ID != defs[i].ID || v.Name != defs[i].Name || v.Kind != defs[i].Kind {
			t.Fatalf("value %d out of order: %+v", i, v)
		}
	}
}

func TestFlatJSONHasEveryName(t *testing.T) {
	reg, _ := newTestRegistry(t, true)
	raw, err := reg.FlatJSON()
	if err != nil {
		t.Fatalf("FlatJSON failed: %v", err)
	}
	var flat map[string]int64
	if err := json.Unmarshal(raw, &flat); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, def := range Catalog() {
		if _, ok := flat[def.Name]; !ok {
			t.Fatalf("flat JSON missing %s", def.Name)
		}
	}
}

func TestSnapshotStampsIDAndTime(t *testing.T) {
	reg, _ := newTestRegistry(t, true)
	before := time.Now().UTC()
	a := reg.Snapshot()
	b := reg.Snapshot()

	if _, err := uuid.Parse(a.ID); err != nil {
		t.Fatalf("snapshot id is not a UUID: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("expected distinct snapshot ids")
	}
	if a.TakenAt.Before(before) || a.TakenAt.Location() != time.UTC {
		t.Fatalf("unexpected TakenAt %v", a.TakenAt)
	}
	if len(a.Values) != reg.Len() {
		t.Fatalf("expected %d values, got %d", reg.Len(), len(a.Values))
	}

	nested, err := a.Nested()
	if err != nil {
		t.Fatalf("Nested failed: %v", err)
	}
	if _, ok := nested["notifications_config"]; !ok {
		t.Fatal("expected notifications_config object in nested snapshot")
	}
}

func TestUnflattenRejectsCollisions(t *testing.T) {
	cases := []map[string]int64{
		{"a.b": 1, "a.b.c": 2},
		{"a": 1, "a.b": 2},
	}
	for _, flat := range cases {
		if _, err := Unflatten(flat); !errors.Is(err, ErrNameCollision) {
			t.Fatalf("%v: expected ErrNameCollision, got %v", flat, err)
		}
	}
}

func TestUnflattenRejectsEmptySegments(t *testing.T) {
	for _, name := range []string{"", ".a", "a.", "a..b"} {
		if _, err := Unflatten(map[string]int64{name: 1}); !errors.Is(err, ErrInvalidMetricName) {
			t.Fatalf("%q: expected ErrInvalidMetricName, got %v", name, err)
		}
	}
}

func TestUnflattenSingleSegment(t *testing.T) {
	got, err := Unflatten(map[string]int64{"request_total": 4})
	if err != nil {
		t.Fatalf("Unflatten failed: %v", err)
	}
	if got["request_total"] != int64(4) {
		t.Fatalf("expected top-level value, got %v", got)
	}
}

func TestFlattenRejectsInvalidInput(t *testing.T) {
	cases := map[string]map[string]any{
		"dotted key":    {"a.b": int64(1)},
		"empty key":     {"": int64(1)},
		"empty object":  {"a": map[string]any{}},
		"fraction":      {"a": 1.5},
		"string value":  {"a": "1"},
		"bad number":    {"a": json.Number("1.25")},
		"nested string": {"a": map[string]any{"b": true}},
	}
	for name, nested := range cases {
		if _, err := Flatten(nested); !errors.Is(err, ErrInvalidSnapshot) {
			t.Fatalf("%s: expected ErrInvalidSnapshot, got %v", name, err)
		}
	}
}
