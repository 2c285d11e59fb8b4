package motionplan

import (
	"testing"

	"go.viam.com/test"

	"github.com/quotientplan/bundleplan/statespace"
)

func TestGrowSQMPBuildsSparseSpanner(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{10, 10}, nil)
	_, err := lvl.AddStart(statespace.RealVectorState{0, 0})
	test.That(t, err, test.ShouldBeNil)
	_, err = lvl.AddGoal(statespace.RealVectorState{9, 9})
	test.That(t, err, test.ShouldBeNil)

	opts, err2 := NewDefaultSQMPOptions(nil)
	test.That(t, err2, test.ShouldBeNil)
	for i := 0; i < 1500; i++ {
		GrowSQMP(lvl, nil, opts)
	}
	test.That(t, lvl.sparse, test.ShouldNotBeNil)
	test.That(t, lvl.sparseNN.size() > 0, test.ShouldBeTrue)
	test.That(t, lvl.sparseNN.size() <= lvl.nn.size(), test.ShouldBeTrue)
}

func TestTrySparsifyFirstConfigurationBecomesRepresentative(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{10, 10}, nil)
	opts, err := NewDefaultSQMPOptions(nil)
	test.That(t, err, test.ShouldBeNil)

	c := lvl.arena.add(statespace.RealVectorState{5, 5})
	lvl.nn.add(c)
	trySparsify(lvl, c, opts)

	test.That(t, c.representativeIndex, test.ShouldEqual, c.index)
	test.That(t, lvl.sparseNN.size(), test.ShouldEqual, 1)
}
