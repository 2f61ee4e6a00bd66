package entity

import (
	"errors"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/AnkushinDaniil/multiplane/entity/mapping"
	"github.com/AnkushinDaniil/multiplane/entity/settings"
)

type Point struct {
	X float64
	Y float64
}

// Layout is the nx by ny emitter grid of one simulated frame, as seen on
// every imaging plane. Plane 0 holds the grid itself.
type Layout struct {
	zPlanes []float64
	planes  [][]Point
}

func NewLayout(s *settings.Settings) (*Layout, error) {
	if s == nil {
		return nil, errors.New("settings are nil")
	}
	xs, ys := grid(s)

	l := &Layout{
		zPlanes: s.ZPlanes(),
		planes:  make([][]Point, s.Planes()),
	}
	for plane := range l.planes {
		px, py, err := toPlane(s.Mappings(), plane, xs, ys)
		if err != nil {
			return nil, fmt.Errorf("failed to map emitters to plane %d: %w", plane, err)
		}
		l.planes[plane] = make([]Point, len(px))
		for i := range px {
			l.planes[plane][i] = Point{X: px[i], Y: py[i]}
		}
	}
	return l, nil
}

// grid spreads nx by ny emitters evenly over the image inside the margin.
func grid(s *settings.Settings) ([]float64, []float64) {
	margin := float64(s.Margin())
	dx := (float64(s.XSize()) - 2*margin) / float64(s.NX())
	dy := (float64(s.YSize()) - 2*margin) / float64(s.NY())

	xs := make([]float64, 0, s.NX()*s.NY())
	ys := make([]float64, 0, s.NX()*s.NY())
	for j := range s.NY() {
		for i := range s.NX() {
			xs = append(xs, margin+(float64(i)+0.5)*dx)
			ys = append(ys, margin+(float64(j)+0.5)*dy)
		}
	}
	return xs, ys
}

func toPlane(table *mapping.Table, plane int, xs, ys []float64) ([]float64, []float64, error) {
	tr, err := table.Transform(0, plane)
	if err != nil {
		// Tables may leave out the identity for the reference plane.
		if plane == 0 && errors.Is(err, mapping.ErrKeyNotFound) {
			return xs, ys, nil
		}
		return nil, nil, err
	}
	return tr.ApplyAll(xs, ys)
}

func (l *Layout) Planes() int {
	return len(l.planes)
}

func (l *Layout) Points(plane int) []Point {
	return append([]Point{}, l.planes[plane]...)
}

func (l *Layout) Name(plane int) string {
	return fmt.Sprintf("Plane %d (z = %.3f um)", plane, l.zPlanes[plane])
}

func (l *Layout) Data(plane int) []opts.ScatterData {
	data := make([]opts.ScatterData, len(l.planes[plane]))
	for i, p := range l.planes[plane] {
		data[i] = opts.ScatterData{Value: []float64{p.X, p.Y}}
	}
	return data
}
