package spatialindex

import (
	"testing"

	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// two segments along latitude -7: 0 <-> 1 two way, 1 -> 2 oneway.
func newSnapGraph() *da.Graph {
	gb := da.NewGraphBuilder()
	gb.AddVertex(-7.0, 110.0)
	gb.AddVertex(-7.0, 110.01)
	gb.AddVertex(-7.0, 110.02)
	gb.AddBidirectionalEdge(0, 1, 100, 0)
	gb.AddEdge(1, 2, 80, 0)
	return gb.Build()
}

func TestBuildIndexesEverySegmentOnce(t *testing.T) {
	g := newSnapGraph()
	rt := NewRtree()
	rt.Build(g, 0.05, zap.NewNop())
	assert.Equal(t, 2, rt.Len())
}

func TestSnap(t *testing.T) {
	g := newSnapGraph()
	rt := NewRtree()
	rt.Build(g, 0.05, zap.NewNop())

	tests := []struct {
		name           string
		lat, lon       float64
		u, v           da.Index
		ratio          float64
		reverseEnabled bool
	}{
		{"two way segment", -6.9995, 110.0025, 0, 1, 0.25, true},
		{"oneway segment", -7.0004, 110.015, 1, 2, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := rt.Snap(tt.lat, tt.lon, 0.2)
			require.NoError(t, err)
			assert.Equal(t, tt.u, p.U)
			assert.Equal(t, tt.v, p.V)
			assert.InDelta(t, tt.ratio, p.Ratio, 0.01)
			assert.True(t, p.ForwardEnabled())
			assert.Equal(t, tt.reverseEnabled, p.ReverseEnabled())
			assert.InDelta(t, -7.0, p.Lat, 1e-4)
		})
	}
}

func TestSnapTooFar(t *testing.T) {
	g := newSnapGraph()
	rt := NewRtree()
	rt.Build(g, 0.05, zap.NewNop())

	_, err := rt.Snap(-6.0, 111.0, 0.2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoNearbySegment)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
}
