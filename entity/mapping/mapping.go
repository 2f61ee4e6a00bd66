package mapping

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var ErrKeyNotFound = errors.New("mapping key not found")

type Axis uint8

const (
	X Axis = iota
	Y
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

func UnmarshalAxis(text string) (Axis, error) {
	switch text {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	default:
		return 0, fmt.Errorf("invalid axis: %q", text)
	}
}

// Key identifies the coefficients that map a coordinate on plane From to
// the Axis coordinate on plane To.
type Key struct {
	From int
	To   int
	Axis Axis
}

func (k Key) String() string {
	return fmt.Sprintf("%d_%d_%s", k.From, k.To, k.Axis)
}

// ParseKey parses the "<from>_<to>_<axis>" form, e.g. "0_1_x".
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("invalid mapping key %q: want <from>_<to>_<axis>", s)
	}
	from, err := strconv.Atoi(parts[0])
	if err != nil || from < 0 {
		return Key{}, fmt.Errorf("invalid mapping key %q: bad source plane", s)
	}
	to, err := strconv.Atoi(parts[1])
	if err != nil || to < 0 {
		return Key{}, fmt.Errorf("invalid mapping key %q: bad target plane", s)
	}
	axis, err := UnmarshalAxis(parts[2])
	if err != nil {
		return Key{}, fmt.Errorf("invalid mapping key %q: %w", s, err)
	}
	key := Key{From: from, To: to, Axis: axis}
	// Only the canonical spelling names a key: no leading zeros or signs.
	if key.String() != s {
		return Key{}, fmt.Errorf("invalid mapping key %q: want %q", s, key)
	}
	return key, nil
}

// Coefficients is the affine triple [c0, c1, c2]: coord = c0 + c1*x + c2*y.
type Coefficients [3]float64

func (c Coefficients) Apply(x, y float64) float64 {
	return c[0] + c[1]*x + c[2]*y
}

// Table is an immutable set of plane-to-plane coefficients.
type Table struct {
	entries map[Key]Coefficients
}

func NewTable(entries map[Key]Coefficients) *Table {
	t := &Table{entries: make(map[Key]Coefficients, len(entries))}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// NewTableFromNames builds a table from "<from>_<to>_<axis>" keyed entries.
func NewTableFromNames(entries map[string][]float64) (*Table, error) {
	t := &Table{entries: make(map[Key]Coefficients, len(entries))}
	for name, values := range entries {
		key, err := ParseKey(name)
		if err != nil {
			return nil, err
		}
		if _, ok := t.entries[key]; ok {
			return nil, fmt.Errorf("duplicate mapping key %q", name)
		}
		if len(values) != 3 {
			return nil, fmt.Errorf("mapping %q: want 3 coefficients, got %d", name, len(values))
		}
		t.entries[key] = Coefficients{values[0], values[1], values[2]}
	}
	return t, nil
}

func (t *Table) Lookup(key Key) (Coefficients, error) {
	c, ok := t.entries[key]
	if !ok {
		return Coefficients{}, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return c, nil
}

// Get looks a coefficient triple up by its string name. Names that do not
// parse are reported as not found.
func (t *Table) Get(name string) (Coefficients, error) {
	key, err := ParseKey(name)
	if err != nil {
		return Coefficients{}, fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	return t.Lookup(key)
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Keys returns the keys ordered by source plane, target plane and axis.
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if a.From != b.From {
			return a.From - b.From
		}
		if a.To != b.To {
			return a.To - b.To
		}
		return int(a.Axis) - int(b.Axis)
	})
	return keys
}

// Planes returns one more than the highest plane index referenced.
func (t *Table) Planes() int {
	n := 0
	for k := range t.entries {
		n = max(n, k.From+1, k.To+1)
	}
	return n
}

// Names returns the table keyed by string name, suitable for encoding.
func (t *Table) Names() map[string][]float64 {
	out := make(map[string][]float64, len(t.entries))
	for k, v := range t.entries {
		out[k.String()] = []float64{v[0], v[1], v[2]}
	}
	return out
}

func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}
	for k, v := range t.entries {
		if w, ok := other.entries[k]; !ok || w != v {
			return false
		}
	}
	return true
}
