package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/multiplane/entity/mapping"
)

func TestUnmarshalText(t *testing.T) {
	t.Parallel()

	for _, v := range All {
		got, err := UnmarshalText(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := UnmarshalText("y-flip")
	assert.Error(t, err)
	assert.Equal(t, SmallOffset, Default)
}

func TestTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		variant Variant
		key     string
		want    mapping.Coefficients
	}{
		{SmallOffset, "0_1_x", mapping.Coefficients{2, 1, 0}},
		{SmallOffset, "1_0_y", mapping.Coefficients{-5, 0, 1}},
		{XFlip, "0_1_x", mapping.Coefficients{302, -1, 0}},
		{XFlip, "1_0_x", mapping.Coefficients{302, -1, 0}},
		{XFlip, "1_0_y", mapping.Coefficients{-5, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String()+"/"+tt.key, func(t *testing.T) {
			t.Parallel()
			table, err := Table(tt.variant)
			require.NoError(t, err)
			assert.Equal(t, 6, table.Len())

			got, err := table.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableUnregistered(t *testing.T) {
	t.Parallel()
	_, err := Table(Variant(42))
	assert.Error(t, err)
	assert.Equal(t, "Variant(42)", Variant(42).String())
}

func TestVariantsRoundTrip(t *testing.T) {
	t.Parallel()

	// Mapping into plane 1 and back lands on the starting point in every variant.
	for _, v := range All {
		table, err := Table(v)
		require.NoError(t, err)

		there, err := table.Transform(0, 1)
		require.NoError(t, err)
		back, err := table.Transform(1, 0)
		require.NoError(t, err)

		x, y := back.Apply(there.Apply(123, 45))
		assert.InDelta(t, 123.0, x, 1e-9, v.String())
		assert.InDelta(t, 45.0, y, 1e-9, v.String())
	}
}
