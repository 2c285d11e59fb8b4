package motionplan

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/quotientplan/bundleplan/statespace"
)

func TestKRRTStarConstantMatchesFormula(t *testing.T) {
	got := kRRTStarConstant(2)
	want := math.Pow(2, 3) * math.E * 1.5
	test.That(t, got, test.ShouldAlmostEqual, want)
}

func TestNeighborSetSizeGrowsWithVertexCount(t *testing.T) {
	small := neighborSetSize(2, 5)
	large := neighborSetSize(2, 500)
	test.That(t, large > small, test.ShouldBeTrue)
	test.That(t, small >= 1, test.ShouldBeTrue)
}

func TestNeighborSetRadiusClampsToMaxDistance(t *testing.T) {
	r := neighborSetRadius(2, 1000000, 1.0, 0.1)
	test.That(t, r, test.ShouldBeLessThanOrEqualTo, 0.1)
}

func TestNeighborSetRadiusAtZeroVerticesIsMaxDistance(t *testing.T) {
	r := neighborSetRadius(2, 0, 1.0, 0.5)
	test.That(t, r, test.ShouldAlmostEqual, 0.5)
}

func TestGrowQRRTStarProducesConnectedTree(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{10, 10}, nil)
	start, err := lvl.AddStart(statespace.RealVectorState{0, 0})
	test.That(t, err, test.ShouldBeNil)
	_ = start

	for i := 0; i < 300; i++ {
		GrowQRRTStar(lvl, nil)
	}
	test.That(t, lvl.nn.size() > 1, test.ShouldBeTrue)
	for _, c := range lvl.nn.list() {
		if c.isStart {
			continue
		}
		test.That(t, c.parent, test.ShouldNotEqual, sentinelIndex)
	}
}
