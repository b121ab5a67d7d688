package goStats

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MetricValue is one entry of an ordered collection.
type MetricValue struct {
	ID    MetricID
	Name  string
	Kind  CounterKind
	Value int64
}

// Snapshot is a point-in-time read of every catalog counter.
//
// Values are read one counter at a time, so a snapshot taken while requests
// are in flight may mix moments across metrics. That is fine for dashboards
// and not meant for accounting.
type Snapshot struct {
	ID      string           `json:"id"`
	TakenAt time.Time        `json:"taken_at"`
	Values  map[string]int64 `json:"values"`
}

// Nested expands the snapshot values on [NameDelimiter].
func (s Snapshot) Nested() (map[string]any, error) {
	return Unflatten(s.Values)
}

// Collect reads every counter in catalog order.
func (r *Registry) Collect() []MetricValue {
	out := make([]MetricValue, len(r.defs))
	for i, def := range r.defs {
		out[i] = MetricValue{
			ID:    def.ID,
			Name:  def.Name,
			Kind:  def.Kind,
			Value: r.counters[i].Value(),
		}
	}
	return out
}

// CollectFlat maps every full metric name to its current value.
func (r *Registry) CollectFlat() map[string]int64 {
	out := make(map[string]int64, len(r.defs))
	for i, def := range r.defs {
		out[def.Name] = r.counters[i].Value()
	}
	return out
}

// CollectNested returns CollectFlat expanded into one object level per name
// segment. The catalog was validated at construction, so expansion cannot fail.
func (r *Registry) CollectNested() map[string]any {
	nested, err := Unflatten(r.CollectFlat())
	if err != nil {
		panic(fmt.Errorf("goStats: validated catalog failed to unflatten: %w", err))
	}
	return nested
}

// Snapshot takes a flat snapshot stamped with a fresh ID.
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		ID:      uuid.NewString(),
		TakenAt: time.Now().UTC(),
		Values:  r.CollectFlat(),
	}
}

// FlatJSON renders CollectFlat as a single-level JSON object with sorted keys.
func (r *Registry) FlatJSON() ([]byte, error) {
	return json.Marshal(r.CollectFlat())
}

// NestedJSON renders CollectNested. For example {"a.b.c_d": 2} becomes
// {"a":{"b":{"c_d":2}}}.
func (r *Registry) NestedJSON() ([]byte, error) {
	return json.Marshal(r.CollectNested())
}

// Unflatten splits every key on [NameDelimiter] and builds one nested map
// per segment, with the last segment holding the value.
//
// It returns [ErrNameCollision] instead of overwriting when one key is a
// dot-prefix of another, and [ErrInvalidMetricName] for empty segments.
func Unflatten(flat map[string]int64) (map[string]any, error) {
	root := make(map[string]any)

	for name, value := range flat {
		if err := validateName(name); err != nil {
			return nil, err
		}
		segments := strings.Split(name, NameDelimiter)
		node := root
		for depth, seg := range segments[:len(segments)-1] {
			next, exists := node[seg]
			if !exists {
				child := make(map[string]any)
				node[seg] = child
				node = child
				continue
			}
			child, isMap := next.(map[string]any)
			if !isMap {
				return nil, fmt.Errorf("%w: %q is a prefix of %q",
					ErrNameCollision, strings.Join(segments[:depth+1], NameDelimiter), name)
			}
			node = child
		}

		leaf := segments[len(segments)-1]
		if _, exists := node[leaf]; exists {
			return nil, fmt.Errorf("%w: %q is a prefix of another name", ErrNameCollision, name)
		}
		node[leaf] = value
	}

	return root, nil
}

// Flatten is the inverse of Unflatten. It accepts the integer types Unflatten
// produces as well as integral float64 and json.Number values from decoded JSON.
func Flatten(nested map[string]any) (map[string]int64, error) {
	out := make(map[string]int64)
	if err := flattenInto(out, "", nested); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out map[string]int64, prefix string, node map[string]any) error {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == "" || strings.Contains(k, NameDelimiter) {
			return fmt.Errorf("%w: key %q under %q", ErrInvalidSnapshot, k, prefix)
		}
		name := k
		if prefix != "" {
			name = prefix + NameDelimiter + k
		}

		switch v := node[k].(type) {
		case map[string]any:
			if len(v) == 0 {
				return fmt.Errorf("%w: empty object at %q", ErrInvalidSnapshot, name)
			}
			if err := flattenInto(out, name, v); err != nil {
				return err
			}
		case int64:
			out[name] = v
		case int:
			out[name] = int64(v)
		case float64:
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %q is not an integer", ErrInvalidSnapshot, name)
			}
			out[name] = int64(v)
		case json.Number:
			n, err := v.Int64()
			if err != nil {
				return fmt.Errorf("%w: %q: %v", ErrInvalidSnapshot, name, err)
			}
			out[name] = n
		default:
			return fmt.Errorf("%w: %q has unsupported type %T", ErrInvalidSnapshot, name, v)
		}
	}

	return nil
}
