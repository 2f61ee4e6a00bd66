package psfmodel

import "fmt"

// Model is the optical model used to simulate and fit emitters.
type Model uint8

const (
	PSFFFT Model = iota
	PupilFn
	Spline
)

var All = []Model{PSFFFT, PupilFn, Spline}

func (m Model) String() string {
	switch m {
	case PSFFFT:
		return "psf-fft"
	case PupilFn:
		return "pupil-fn"
	case Spline:
		return "spline"
	default:
		return fmt.Sprintf("Model(%d)", uint8(m))
	}
}

func UnmarshalText(text string) (Model, error) {
	switch text {
	case "psf-fft":
		return PSFFFT, nil
	case "pupil-fn":
		return PupilFn, nil
	case "spline":
		return Spline, nil
	default:
		return 0, fmt.Errorf("invalid psf model: %q", text)
	}
}
