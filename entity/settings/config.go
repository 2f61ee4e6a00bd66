package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AnkushinDaniil/multiplane/entity/mapping"
	"github.com/AnkushinDaniil/multiplane/entity/variant"
)

// VariantEnv overrides the mapping variant named in the settings file.
const VariantEnv = "MULTIPLANE_MAPPING_VARIANT"

// File is the on-disk form of the settings. Omitted fields keep their
// defaults, so partial files are fine.
type File struct {
	CameraGain         *float64             `json:"camera_gain,omitempty" yaml:"camera_gain,omitempty"`
	CameraOffset       *float64             `json:"camera_offset,omitempty" yaml:"camera_offset,omitempty"`
	CameraVariance     *float64             `json:"camera_variance,omitempty" yaml:"camera_variance,omitempty"`
	IndependentHeights *int                 `json:"independent_heights,omitempty" yaml:"independent_heights,omitempty"`
	Iterations         *int                 `json:"iterations,omitempty" yaml:"iterations,omitempty"`
	Margin             *int                 `json:"margin,omitempty" yaml:"margin,omitempty"`
	NFrames            *int                 `json:"n_frames,omitempty" yaml:"n_frames,omitempty"`
	NX                 *int                 `json:"nx,omitempty" yaml:"nx,omitempty"`
	NY                 *int                 `json:"ny,omitempty" yaml:"ny,omitempty"`
	Photons            [][2]int             `json:"photons,omitempty" yaml:"photons,omitempty"`
	PixelSize          *float64             `json:"pixel_size,omitempty" yaml:"pixel_size,omitempty"`
	PSFSize            *int                 `json:"psf_size,omitempty" yaml:"psf_size,omitempty"`
	PupilFn            [][]float64          `json:"pupil_fn,omitempty" yaml:"pupil_fn,omitempty"`
	TestZOffset        *float64             `json:"test_z_offset,omitempty" yaml:"test_z_offset,omitempty"`
	TestZRange         *float64             `json:"test_z_range,omitempty" yaml:"test_z_range,omitempty"`
	Tolerance          *float64             `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	XSize              *int                 `json:"x_size,omitempty" yaml:"x_size,omitempty"`
	YSize              *int                 `json:"y_size,omitempty" yaml:"y_size,omitempty"`
	ZPlanes            []float64            `json:"z_planes,omitempty" yaml:"z_planes,omitempty"`
	ZValue             []float64            `json:"z_value,omitempty" yaml:"z_value,omitempty"`
	PSFZRange          *float64             `json:"psf_z_range,omitempty" yaml:"psf_z_range,omitempty"`
	PSFZStep           *float64             `json:"psf_z_step,omitempty" yaml:"psf_z_step,omitempty"`
	PupilFnZRange      *float64             `json:"pupilfn_z_range,omitempty" yaml:"pupilfn_z_range,omitempty"`
	SplineZRange       *float64             `json:"spline_z_range,omitempty" yaml:"spline_z_range,omitempty"`
	MappingVariant     string               `json:"mapping_variant,omitempty" yaml:"mapping_variant,omitempty"`
	Mappings           map[string][]float64 `json:"mappings,omitempty" yaml:"mappings,omitempty"`
}

// LoadConfig loads the settings in order: defaults, the YAML file at path
// (skipped when path is empty), then the environment. The result is
// validated.
func LoadConfig(path string) (*Settings, error) {
	f := &File{}
	if path != "" {
		var err error
		f, err = ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	if v := os.Getenv(VariantEnv); v != "" {
		f.MappingVariant = v
	}
	return f.Settings()
}

// LoadFromFile loads the settings from a YAML file without consulting the
// environment.
func LoadFromFile(path string) (*Settings, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Settings()
}

// ReadFile parses a YAML settings file without applying it.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return f, nil
}

// Settings applies f over the defaults and validates the result.
func (f *File) Settings() (*Settings, error) {
	v := variant.Default
	if f.MappingVariant != "" {
		var err error
		v, err = variant.UnmarshalText(f.MappingVariant)
		if err != nil {
			return nil, err
		}
	}
	s, err := LoadVariant(v)
	if err != nil {
		return nil, err
	}

	set(&s.cameraGain, f.CameraGain)
	set(&s.cameraOffset, f.CameraOffset)
	set(&s.cameraVariance, f.CameraVariance)
	set(&s.independentHeights, f.IndependentHeights)
	set(&s.iterations, f.Iterations)
	set(&s.margin, f.Margin)
	set(&s.nFrames, f.NFrames)
	set(&s.nx, f.NX)
	set(&s.ny, f.NY)
	set(&s.pixelSize, f.PixelSize)
	set(&s.psfSize, f.PSFSize)
	set(&s.testZOffset, f.TestZOffset)
	set(&s.testZRange, f.TestZRange)
	set(&s.tolerance, f.Tolerance)
	set(&s.xSize, f.XSize)
	set(&s.ySize, f.YSize)
	set(&s.psfZRange, f.PSFZRange)
	set(&s.psfZStep, f.PSFZStep)
	set(&s.pupilFnZRange, f.PupilFnZRange)
	set(&s.splineZRange, f.SplineZRange)

	if f.Photons != nil {
		s.photons = make([]PhotonRange, len(f.Photons))
		for i, p := range f.Photons {
			s.photons[i] = PhotonRange{Min: p[0], Max: p[1]}
		}
	}
	if f.PupilFn != nil {
		s.pupilFn = make([][3]float64, len(f.PupilFn))
		for i, p := range f.PupilFn {
			if len(p) != 3 {
				return nil, fmt.Errorf("pupil_fn[%d]: want 3 values, got %d", i, len(p))
			}
			s.pupilFn[i] = [3]float64{p[0], p[1], p[2]}
		}
	}
	if f.ZPlanes != nil {
		s.zPlanes = append([]float64{}, f.ZPlanes...)
	}
	if f.ZValue != nil {
		s.zValue = append([]float64{}, f.ZValue...)
	}
	if f.Mappings != nil {
		table, err := mapping.NewTableFromNames(f.Mappings)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mappings: %w", err)
		}
		s.custom = !table.Equal(s.mappings)
		s.mappings = table
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// File returns the settings in their on-disk form, every field set.
func (s *Settings) File() *File {
	f := &File{
		CameraGain:         ptr(s.cameraGain),
		CameraOffset:       ptr(s.cameraOffset),
		CameraVariance:     ptr(s.cameraVariance),
		IndependentHeights: ptr(s.independentHeights),
		Iterations:         ptr(s.iterations),
		Margin:             ptr(s.margin),
		NFrames:            ptr(s.nFrames),
		NX:                 ptr(s.nx),
		NY:                 ptr(s.ny),
		Photons:            make([][2]int, len(s.photons)),
		PixelSize:          ptr(s.pixelSize),
		PSFSize:            ptr(s.psfSize),
		PupilFn:            make([][]float64, len(s.pupilFn)),
		TestZOffset:        ptr(s.testZOffset),
		TestZRange:         ptr(s.testZRange),
		Tolerance:          ptr(s.tolerance),
		XSize:              ptr(s.xSize),
		YSize:              ptr(s.ySize),
		ZPlanes:            s.ZPlanes(),
		ZValue:             s.ZValue(),
		PSFZRange:          ptr(s.psfZRange),
		PSFZStep:           ptr(s.psfZStep),
		PupilFnZRange:      ptr(s.pupilFnZRange),
		SplineZRange:       ptr(s.splineZRange),
		MappingVariant:     s.variant.String(),
		Mappings:           s.mappings.Names(),
	}
	for i, p := range s.photons {
		f.Photons[i] = [2]int{p.Min, p.Max}
	}
	for i, p := range s.pupilFn {
		f.PupilFn[i] = []float64{p[0], p[1], p[2]}
	}
	return f
}

func ptr[T any](v T) *T { return &v }

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
