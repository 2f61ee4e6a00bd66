package mapping

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Transform is the affine map between two planes in homogeneous form:
//
//	[x']   [c1x c2x c0x] [x]
//	[y'] = [c1y c2y c0y] [y]
//	[1 ]   [0   0   1  ] [1]
type Transform struct {
	From   int
	To     int
	matrix *mat.Dense
}

// Transform builds the plane from -> to transform out of its x and y triples.
func (t *Table) Transform(from, to int) (*Transform, error) {
	cx, err := t.Lookup(Key{From: from, To: to, Axis: X})
	if err != nil {
		return nil, err
	}
	cy, err := t.Lookup(Key{From: from, To: to, Axis: Y})
	if err != nil {
		return nil, err
	}
	return &Transform{
		From: from,
		To:   to,
		matrix: mat.NewDense(3, 3, []float64{
			cx[1], cx[2], cx[0],
			cy[1], cy[2], cy[0],
			0, 0, 1,
		}),
	}, nil
}

func (tr *Transform) Apply(x, y float64) (float64, float64) {
	var out mat.VecDense
	out.MulVec(tr.matrix, mat.NewVecDense(3, []float64{x, y, 1}))
	return out.AtVec(0), out.AtVec(1)
}

// ApplyAll maps every point in xs, ys.
func (tr *Transform) ApplyAll(xs, ys []float64) ([]float64, []float64, error) {
	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("coordinate length mismatch: %d x, %d y", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return []float64{}, []float64{}, nil
	}
	points := mat.NewDense(3, len(xs), nil)
	for i := range xs {
		points.Set(0, i, xs[i])
		points.Set(1, i, ys[i])
		points.Set(2, i, 1)
	}
	var mapped mat.Dense
	mapped.Mul(tr.matrix, points)

	outX := make([]float64, len(xs))
	outY := make([]float64, len(ys))
	for i := range xs {
		outX[i] = mapped.At(0, i)
		outY[i] = mapped.At(1, i)
	}
	return outX, outY, nil
}

// Inverse returns the to -> from transform.
func (tr *Transform) Inverse() (*Transform, error) {
	var inv mat.Dense
	if err := inv.Inverse(tr.matrix); err != nil {
		return nil, fmt.Errorf("failed to invert plane %d -> %d transform: %w", tr.From, tr.To, err)
	}
	return &Transform{From: tr.To, To: tr.From, matrix: &inv}, nil
}

// Coefficients returns the x and y triples the transform was built from.
func (tr *Transform) Coefficients() (Coefficients, Coefficients) {
	m := tr.matrix
	return Coefficients{m.At(0, 2), m.At(0, 0), m.At(0, 1)},
		Coefficients{m.At(1, 2), m.At(1, 0), m.At(1, 1)}
}
