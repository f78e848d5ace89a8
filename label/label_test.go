package label_test

import (
	"testing"

	"github.com/heomkit/heom/label"
	"github.com/stretchr/testify/require"
)

func TestEnumerateCardinality(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		dims []int
		tier int
		want int
	}{
		{"uncapped_5x4_tier3", []int{4, 4, 4, 4, 4}, 3, 56},
		{"capped_fermionic_4x2_tier4", []int{2, 2, 2, 2}, 4, 16},
		{"tier_zero", []int{3, 3}, 0, 1},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tbl, err := label.Enumerate(tc.dims, tc.tier)
			require.NoError(t, err)
			require.Equal(t, tc.want, tbl.Len())
			require.Equal(t, tc.want, label.Count(tc.dims, tc.tier))
		})
	}
}

func TestBijectionRoundTrip(t *testing.T) {
	t.Parallel()

	tbl, err := label.Enumerate([]int{4, 4, 4}, 3)
	require.NoError(t, err)

	for idx := 0; idx < tbl.Len(); idx++ {
		lbl := tbl.Label(idx)
		gotIdx, ok := tbl.Index(lbl)
		require.True(t, ok)
		require.Equal(t, idx, gotIdx)
	}
}

func TestEnumerateRejectsZeroTerms(t *testing.T) {
	t.Parallel()

	_, err := label.Enumerate(nil, 3)
	require.ErrorIs(t, err, label.ErrNoTerms)
}

func TestEnumerateRejectsNegativeTier(t *testing.T) {
	t.Parallel()

	_, err := label.Enumerate([]int{3, 3}, -1)
	require.ErrorIs(t, err, label.ErrNegativeTier)
}

func TestEnumerateCanonicalOrder(t *testing.T) {
	t.Parallel()

	tbl, err := label.Enumerate([]int{3, 3}, 2)
	require.NoError(t, err)

	want := []label.Label{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1},
		{2, 0},
	}
	require.Len(t, tbl.Label(0), 2)
	for i, w := range want {
		require.Equal(t, w, tbl.Label(i), "index %d", i)
	}
}
