// Package settings holds the parameters of the multiplane simulations.
//
// Background photons are per plane, total photons are divided across all
// the planes.
package settings

import (
	"fmt"
	"slices"

	"github.com/AnkushinDaniil/multiplane/entity/mapping"
	"github.com/AnkushinDaniil/multiplane/entity/psfmodel"
	"github.com/AnkushinDaniil/multiplane/entity/variant"
)

// PhotonRange is one photon count range tried per simulation run.
type PhotonRange struct {
	Min int
	Max int
}

// Settings is built once by one of the Load functions and never changes
// afterwards. It is safe for concurrent readers.
type Settings struct {
	cameraGain         float64
	cameraOffset       float64
	cameraVariance     float64
	independentHeights int
	iterations         int
	margin             int
	nFrames            int
	nx                 int
	ny                 int
	photons            []PhotonRange
	pixelSize          float64 // nanometers
	psfSize            int     // pixels
	pupilFn            [][3]float64
	testZOffset        float64 // microns
	testZRange         float64 // microns
	tolerance          float64
	xSize              int
	ySize              int
	zPlanes            []float64 // microns
	zValue             []float64 // microns

	psfZRange     float64
	psfZStep      float64
	pupilFnZRange float64
	splineZRange  float64

	variant  variant.Variant
	custom   bool
	mappings *mapping.Table
}

// Load returns the default settings with the default mapping variant.
func Load() *Settings {
	s, err := LoadVariant(variant.Default)
	if err != nil {
		panic(err)
	}
	return s
}

// LoadVariant returns the default settings with the mapping table of v.
func LoadVariant(v variant.Variant) (*Settings, error) {
	table, err := variant.Table(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load mapping table: %w", err)
	}
	s := defaults()
	s.variant = v
	s.mappings = table
	return s, nil
}

func defaults() *Settings {
	return &Settings{
		cameraGain:         1.0,
		cameraOffset:       100.0,
		cameraVariance:     1.0,
		independentHeights: 0,
		iterations:         20,
		margin:             1,
		nFrames:            10,
		nx:                 14,
		ny:                 9,
		photons:            []PhotonRange{{Min: 10, Max: 500}, {Min: 10, Max: 1000}},
		pixelSize:          100.0,
		psfSize:            30,
		pupilFn:            [][3]float64{},
		testZOffset:        0.0,
		testZRange:         0.300,
		tolerance:          0.3,
		xSize:              300,
		ySize:              200,
		zPlanes:            []float64{-0.250, 0.250},
		zValue:             []float64{-0.3, 0.0, 0.3},

		psfZRange:     0.6,
		psfZStep:      0.2,
		pupilFnZRange: 0.75,
		splineZRange:  0.75,
	}
}

func (s *Settings) CameraGain() float64     { return s.cameraGain }
func (s *Settings) CameraOffset() float64   { return s.cameraOffset }
func (s *Settings) CameraVariance() float64 { return s.cameraVariance }

// IndependentHeightsFlag is the 0/1 flag the fitters take.
func (s *Settings) IndependentHeightsFlag() int { return s.independentHeights }

// IndependentHeights reports whether z is fit independently per plane.
func (s *Settings) IndependentHeights() bool { return s.independentHeights != 0 }

func (s *Settings) Iterations() int { return s.iterations }
func (s *Settings) Margin() int     { return s.margin }
func (s *Settings) NFrames() int    { return s.nFrames }
func (s *Settings) NX() int         { return s.nx }
func (s *Settings) NY() int         { return s.ny }

func (s *Settings) Photons() []PhotonRange { return slices.Clone(s.photons) }

func (s *Settings) PixelSize() float64 { return s.pixelSize }
func (s *Settings) PSFSize() int       { return s.psfSize }

func (s *Settings) PupilFn() [][3]float64 { return slices.Clone(s.pupilFn) }

func (s *Settings) TestZOffset() float64 { return s.testZOffset }
func (s *Settings) TestZRange() float64  { return s.testZRange }
func (s *Settings) Tolerance() float64   { return s.tolerance }
func (s *Settings) XSize() int           { return s.xSize }
func (s *Settings) YSize() int           { return s.ySize }

func (s *Settings) ZPlanes() []float64 { return slices.Clone(s.zPlanes) }
func (s *Settings) ZValue() []float64  { return slices.Clone(s.zValue) }

func (s *Settings) PSFZRange() float64     { return s.psfZRange }
func (s *Settings) PSFZStep() float64      { return s.psfZStep }
func (s *Settings) PupilFnZRange() float64 { return s.pupilFnZRange }
func (s *Settings) SplineZRange() float64  { return s.splineZRange }

// ZRange returns the z sampling range used when building PSFs of model m.
func (s *Settings) ZRange(m psfmodel.Model) (float64, error) {
	switch m {
	case psfmodel.PSFFFT:
		return s.psfZRange, nil
	case psfmodel.PupilFn:
		return s.pupilFnZRange, nil
	case psfmodel.Spline:
		return s.splineZRange, nil
	default:
		return 0, fmt.Errorf("no z range for psf model %s", m)
	}
}

// Variant is the active mapping variant. Custom reports whether the table
// was replaced by one from a settings file.
func (s *Settings) Variant() variant.Variant { return s.variant }
func (s *Settings) Custom() bool             { return s.custom }

// Planes is the number of imaging planes.
func (s *Settings) Planes() int { return len(s.zPlanes) }

// Mappings returns the active table. Tables are immutable.
func (s *Settings) Mappings() *mapping.Table { return s.mappings }

// Mapping returns the coefficients for key, or an error wrapping
// mapping.ErrKeyNotFound.
func (s *Settings) Mapping(key mapping.Key) (mapping.Coefficients, error) {
	return s.mappings.Lookup(key)
}

// MappingByName is Mapping for "<from>_<to>_<axis>" names such as "0_1_x".
func (s *Settings) MappingByName(name string) (mapping.Coefficients, error) {
	return s.mappings.Get(name)
}

// Validate checks the settings for values no simulation can run with.
func (s *Settings) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"iterations", s.iterations},
		{"n_frames", s.nFrames},
		{"nx", s.nx},
		{"ny", s.ny},
		{"psf_size", s.psfSize},
		{"x_size", s.xSize},
		{"y_size", s.ySize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}
	if s.margin < 0 {
		return fmt.Errorf("margin must be non-negative, got %d", s.margin)
	}
	if 2*s.margin >= s.xSize || 2*s.margin >= s.ySize {
		return fmt.Errorf("margin %d leaves no room in a %dx%d image", s.margin, s.xSize, s.ySize)
	}
	if s.independentHeights != 0 && s.independentHeights != 1 {
		return fmt.Errorf("independent_heights must be 0 or 1, got %d", s.independentHeights)
	}
	if !(s.pixelSize > 0) {
		return fmt.Errorf("pixel_size must be positive, got %f", s.pixelSize)
	}
	if !(s.tolerance > 0) {
		return fmt.Errorf("tolerance must be positive, got %f", s.tolerance)
	}
	if !(s.psfZStep > 0) {
		return fmt.Errorf("psf_z_step must be positive, got %f", s.psfZStep)
	}
	if len(s.photons) == 0 {
		return fmt.Errorf("photons must list at least one range")
	}
	for i, p := range s.photons {
		if p.Min < 0 || p.Min > p.Max {
			return fmt.Errorf("photons[%d]: invalid range [%d, %d]", i, p.Min, p.Max)
		}
	}
	if len(s.zPlanes) == 0 {
		return fmt.Errorf("z_planes must list at least one plane")
	}

	// Plane 0 is the reference; every other plane maps to and from it.
	for plane := 1; plane < len(s.zPlanes); plane++ {
		for _, pair := range [][2]int{{0, plane}, {plane, 0}} {
			if _, err := s.mappings.Transform(pair[0], pair[1]); err != nil {
				return fmt.Errorf("mappings: %w", err)
			}
		}
	}
	return nil
}
