package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveCollinear(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   Points
		exp  Points
	}{
		{
			name: "short",
			in:   Points{NewPoint(0, 0), NewPoint(5, 5)},
			exp:  Points{NewPoint(0, 0), NewPoint(5, 5)},
		},
		{
			name: "vertical_run",
			in:   Points{NewPoint(0, 0), NewPoint(0, 10), NewPoint(0.5, 20), NewPoint(0, 30)},
			exp:  Points{NewPoint(0, 0), NewPoint(0, 30)},
		},
		{
			name: "elbow_kept",
			in:   Points{NewPoint(0, 0), NewPoint(0, 10), NewPoint(10, 10)},
			exp:  Points{NewPoint(0, 0), NewPoint(0, 10), NewPoint(10, 10)},
		},
		{
			name: "horizontal_then_elbow",
			in:   Points{NewPoint(0, 0), NewPoint(5, 0), NewPoint(10, 0), NewPoint(10, 20)},
			exp:  Points{NewPoint(0, 0), NewPoint(10, 0), NewPoint(10, 20)},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.exp, RemoveCollinear(tc.in))
		})
	}
}

func TestSnapOrthogonal(t *testing.T) {
	t.Parallel()

	in := Points{NewPoint(0, 0), NewPoint(40, 50), NewPoint(40, 100)}

	vertical := SnapOrthogonal(in, true)
	assert.Equal(t, Points{NewPoint(0, 0), NewPoint(0, 50), NewPoint(40, 50), NewPoint(40, 100)}, vertical)

	horizontal := SnapOrthogonal(in, false)
	assert.Equal(t, Points{NewPoint(0, 0), NewPoint(40, 0), NewPoint(40, 100)}, horizontal)

	assert.True(t, vertical.IsOrthogonal())
	assert.True(t, horizontal.IsOrthogonal())
	assert.Equal(t, Points{NewPoint(0, 0), NewPoint(40, 50), NewPoint(40, 100)}, in, "input must not be mutated")
}

func TestSnapOrthogonalZigZag(t *testing.T) {
	t.Parallel()

	in := Points{
		NewPoint(10, 10),
		NewPoint(37, 63),
		NewPoint(81, 90),
		NewPoint(12, 140),
		NewPoint(12.4, 200),
	}
	for _, verticalFirst := range []bool{true, false} {
		out := SnapOrthogonal(in, verticalFirst)
		assert.True(t, out.IsOrthogonal(), out.ToString())
		assert.Equal(t, in[0], out[0])
		assert.Equal(t, in[len(in)-1], out[len(out)-1])
		for i := 1; i < len(out)-1; i++ {
			a, b, c := out[i-1], out[i], out[i+1]
			sameX := math.Abs(a.X-b.X) < 1 && math.Abs(b.X-c.X) < 1
			sameY := math.Abs(a.Y-b.Y) < 1 && math.Abs(b.Y-c.Y) < 1
			assert.False(t, sameX || sameY, "collinear triple at %d in %s", i, out.ToString())
		}
	}
}

func TestSnapOrthogonalDrift(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   Points
	}{
		{
			name: "vertical_drift",
			in:   Points{NewPoint(0, 0), NewPoint(0.9, 10), NewPoint(1.8, 20), NewPoint(2.7, 30)},
		},
		{
			name: "horizontal_drift",
			in:   Points{NewPoint(0, 0), NewPoint(10, -0.9), NewPoint(20, -1.8), NewPoint(30, -2.7), NewPoint(40, -3.6)},
		},
		{
			name: "drift_then_elbow",
			in:   Points{NewPoint(0, 0), NewPoint(0.6, 10), NewPoint(1.2, 20), NewPoint(50, 20.5), NewPoint(50.8, 60)},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			for _, verticalFirst := range []bool{true, false} {
				out := SnapOrthogonal(tc.in, verticalFirst)
				assert.True(t, out.IsOrthogonal(), out.ToString())
				assert.Equal(t, tc.in[0], out[0])
				assert.Equal(t, tc.in[len(tc.in)-1], out[len(out)-1])
				for i := 1; i < len(out); i++ {
					dx := math.Abs(out[i].X - out[i-1].X)
					dy := math.Abs(out[i].Y - out[i-1].Y)
					assert.True(t, dx < AXIS_TOLERANCE || dy < AXIS_TOLERANCE, "diagonal segment %d in %s", i, out.ToString())
				}
			}
		})
	}
}

func TestClipToDiamond(t *testing.T) {
	t.Parallel()

	b := NewBox(NewPoint(0, 0), 80, 40)
	c := b.Center()
	for _, p := range []Point{
		NewPoint(40, 100),
		NewPoint(-50, 20),
		NewPoint(100, -30),
		NewPoint(45, 22),
	} {
		clipped := ClipToDiamond(p, b)
		taxicab := math.Abs(clipped.X-c.X)/40 + math.Abs(clipped.Y-c.Y)/20
		assert.InDelta(t, 1, taxicab, 1e-9, "%s -> %s", p.ToString(), clipped.ToString())
	}

	near := NewPoint(40.2, 19.8)
	assert.Equal(t, near, ClipToDiamond(near, b))
}

func TestClipToCircle(t *testing.T) {
	t.Parallel()

	c := NewPoint(50, 50)
	for _, p := range []Point{NewPoint(50, 200), NewPoint(-10, 30), NewPoint(51, 51)} {
		clipped := ClipToCircle(p, c, 20)
		assert.InDelta(t, 20, clipped.DistanceTo(c), 1e-9)
	}

	near := NewPoint(50.1, 50.2)
	assert.Equal(t, near, ClipToCircle(near, c, 20))
}

func TestClipEndpointsToBoxes(t *testing.T) {
	t.Parallel()

	src := NewBox(NewPoint(0, 0), 100, 40)
	dst := NewBox(NewPoint(200, 100), 100, 40)

	testCases := []struct {
		name string
		in   Points
		exp  Points
	}{
		{
			name: "two_points_vertical",
			in:   Points{NewPoint(250, 20), NewPoint(250, 120)},
			exp:  Points{NewPoint(250, 40), NewPoint(250, 100)},
		},
		{
			name: "two_points_horizontal",
			in:   Points{NewPoint(50, 120), NewPoint(250, 120)},
			exp:  Points{NewPoint(100, 120), NewPoint(200, 120)},
		},
		{
			name: "two_points_source_overshoot",
			in:   Points{NewPoint(50, 40.163), NewPoint(50, 100)},
			exp:  Points{NewPoint(50, 40), NewPoint(50, 100)},
		},
		{
			name: "strictly_vertical_both_ends",
			in:   Points{NewPoint(50, 20), NewPoint(50, 70), NewPoint(240, 70), NewPoint(240, 120)},
			exp:  Points{NewPoint(50, 40), NewPoint(50, 70), NewPoint(250, 70), NewPoint(250, 100)},
		},
		{
			name: "strictly_horizontal_target",
			in:   Points{NewPoint(50, 20), NewPoint(50, 130), NewPoint(260, 130)},
			exp:  Points{NewPoint(50, 40), NewPoint(50, 120), NewPoint(200, 120)},
		},
		{
			name: "primarily_vertical_within_span",
			in:   Points{NewPoint(50, 20), NewPoint(50, 70), NewPoint(220, 70), NewPoint(230, 120)},
			exp:  Points{NewPoint(50, 40), NewPoint(50, 70), NewPoint(220, 70), NewPoint(220, 100)},
		},
		{
			name: "primarily_vertical_outside_span",
			in:   Points{NewPoint(50, 20), NewPoint(50, 70), NewPoint(190, 70), NewPoint(200, 120)},
			exp:  Points{NewPoint(50, 40), NewPoint(50, 70), NewPoint(250, 70), NewPoint(250, 100)},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ClipEndpointsToBoxes(tc.in, &src, &dst)
			assert.Equal(t, tc.exp, got)
		})
	}
}

func TestClipEndpointsToBoxesNil(t *testing.T) {
	t.Parallel()

	in := Points{NewPoint(50, 20), NewPoint(50, 70), NewPoint(240, 70), NewPoint(240, 120)}
	assert.Equal(t, in, ClipEndpointsToBoxes(in, nil, nil))
	assert.Equal(t, Points{NewPoint(1, 1)}, ClipEndpointsToBoxes(Points{NewPoint(1, 1)}, nil, nil))
}
