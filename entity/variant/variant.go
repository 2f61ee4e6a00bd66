package variant

import (
	"fmt"

	"github.com/AnkushinDaniil/multiplane/entity/mapping"
)

// Variant names one of the registered plane mapping tables.
type Variant uint8

const (
	// SmallOffset shifts plane 1 by (2, 5) pixels relative to plane 0.
	SmallOffset Variant = iota
	// XFlip mirrors plane 1 in x about 151 pixels.
	XFlip
)

const Default = SmallOffset

// All lists the registered variants in declaration order.
var All = []Variant{SmallOffset, XFlip}

func (v Variant) String() string {
	switch v {
	case SmallOffset:
		return "small-offset"
	case XFlip:
		return "x-flip"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

func UnmarshalText(text string) (Variant, error) {
	switch text {
	case "small-offset":
		return SmallOffset, nil
	case "x-flip":
		return XFlip, nil
	default:
		return 0, fmt.Errorf("invalid mapping variant: %q", text)
	}
}

// Table builds a fresh copy of the variant's mapping table.
func Table(v Variant) (*mapping.Table, error) {
	switch v {
	case SmallOffset:
		return mapping.NewTable(map[mapping.Key]mapping.Coefficients{
			{From: 0, To: 0, Axis: mapping.X}: {0.0, 1.0, 0.0},
			{From: 0, To: 0, Axis: mapping.Y}: {0.0, 0.0, 1.0},
			{From: 0, To: 1, Axis: mapping.X}: {2.0, 1.0, 0.0},
			{From: 0, To: 1, Axis: mapping.Y}: {5.0, 0.0, 1.0},
			{From: 1, To: 0, Axis: mapping.X}: {-2.0, 1.0, 0.0},
			{From: 1, To: 0, Axis: mapping.Y}: {-5.0, 0.0, 1.0},
		}), nil
	case XFlip:
		return mapping.NewTable(map[mapping.Key]mapping.Coefficients{
			{From: 0, To: 0, Axis: mapping.X}: {0.0, 1.0, 0.0},
			{From: 0, To: 0, Axis: mapping.Y}: {0.0, 0.0, 1.0},
			{From: 0, To: 1, Axis: mapping.X}: {302.0, -1.0, 0.0},
			{From: 0, To: 1, Axis: mapping.Y}: {5.0, 0.0, 1.0},
			{From: 1, To: 0, Axis: mapping.X}: {302.0, -1.0, 0.0},
			{From: 1, To: 0, Axis: mapping.Y}: {-5.0, 0.0, 1.0},
		}), nil
	default:
		return nil, fmt.Errorf("unregistered mapping variant: %s", v)
	}
}
