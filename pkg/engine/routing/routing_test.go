package routing

import (
	"context"
	"errors"
	"testing"

	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingObserver struct {
	iterations []IterationStats
	dropped    map[da.Index]DropReason
	done       []QueryStats
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{dropped: make(map[da.Index]DropReason)}
}

func (o *recordingObserver) OnIteration(stats IterationStats) {
	o.iterations = append(o.iterations, stats)
}

func (o *recordingObserver) OnCandidateDropped(c da.Index, reason DropReason) {
	o.dropped[c] = reason
}

func (o *recordingObserver) OnQueryDone(stats QueryStats) {
	o.done = append(o.done, stats)
}

func newTestFacade(t *testing.T, g *da.Graph) Facade {
	t.Helper()
	cache, err := lru.New[PUCacheKey, []da.Index](1024)
	require.NoError(t, err)
	return NewGraphFacade(g, NewPathUnpacker(g, cache))
}

const (
	vS0 da.Index = iota
	vS
	vA
	vB1
	vB2
	vC
	vT
	vT0
)

/*
newThetaGraph. three disjoint oneway paths from s to t:

	s -> a -> t            3 + 8     = 11
	s -> b1 -> b2 -> t     4 + 2 + 4 = 10 (optimal)
	s -> c -> t            1 + 11    = 12

the source snaps to the end of segment s0->s, the target to the start of segment t->t0.
no partition, the query runs on level 0 only.
*/
func newThetaGraph(t *testing.T) (*da.Graph, da.PhantomNodes) {
	t.Helper()
	gb := da.NewGraphBuilder()
	for i := 0; i < 8; i++ {
		gb.AddVertex(-7.0, 110.0+0.001*float64(i))
	}
	gb.AddEdge(vS0, vS, 50, 100)
	gb.AddEdge(vS, vA, 3, 100)
	gb.AddEdge(vA, vT, 8, 100)
	gb.AddEdge(vS, vB1, 4, 100)
	gb.AddEdge(vB1, vB2, 2, 100)
	gb.AddEdge(vB2, vT, 4, 100)
	gb.AddEdge(vS, vC, 1, 100)
	gb.AddEdge(vC, vT, 11, 100)
	gb.AddEdge(vT, vT0, 1, 100)
	g := gb.Build()

	source := da.NewPhantomNode(g, g.FindEdge(vS0, vS), 1.0, -7.0, 110.001)
	target := da.NewPhantomNode(g, g.FindEdge(vT, vT0), 0.0, -7.0, 110.006)
	return g, da.NewPhantomNodes(source, target)
}

func TestShortestPathThetaGraph(t *testing.T) {
	g, phantoms := newThetaGraph(t)
	facade := newTestFacade(t, g)

	result, err := ShortestPathSearch(context.Background(), facade, NewQueryHeaps(g.NumberOfVertices()), phantoms, nil)
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Len(t, result.Routes, 1)

	primary := result.Primary()
	assert.Equal(t, da.Weight(10), primary.Weight)
	assert.Equal(t, []da.Index{vS, vB1, vB2, vT}, primary.Vertices)
	assert.Equal(t, []da.Index{g.FindEdge(vS0, vS), g.FindEdge(vS, vB1)}, primary.ForwardPath)
	assert.Equal(t, []da.Index{g.FindEdge(vB1, vB2), g.FindEdge(vB2, vT), g.FindEdge(vT, vT0)}, primary.ReversePath)
	assert.InDelta(t, 300.0, primary.Distance, 1e-9)
	assert.Equal(t, 1.0, primary.Stretch)
	assert.Empty(t, result.Alternatives())
}

func TestAlternativePathSearchThetaGraph(t *testing.T) {
	g, phantoms := newThetaGraph(t)
	facade := newTestFacade(t, g)

	params := DefaultAlternativeParams()
	params.OverlapFactor = 2.5
	params.MaxStretch = 1.5

	observer := newRecordingObserver()
	result, err := AlternativePathSearch(context.Background(), facade, NewQueryHeaps(g.NumberOfVertices()),
		phantoms, params, observer)
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Len(t, result.Routes, 3)

	assert.Equal(t, da.Weight(10), result.Routes[0].Weight)
	assert.Equal(t, vB1, result.Routes[0].Via)

	alternatives := result.Alternatives()
	assert.Equal(t, vA, alternatives[0].Via)
	assert.Equal(t, da.Weight(11), alternatives[0].Weight)
	assert.InDelta(t, 1.1, alternatives[0].Stretch, 1e-9)
	assert.InDelta(t, 0.5, alternatives[0].Overlap, 1e-9)
	assert.Equal(t, []da.Index{vS, vA, vT}, alternatives[0].Vertices)

	assert.Equal(t, vC, alternatives[1].Via)
	assert.Equal(t, da.Weight(12), alternatives[1].Weight)
	assert.InDelta(t, 1.2, alternatives[1].Stretch, 1e-9)

	// b2, s and t tie with a settled route and are filtered as duplicates
	require.Len(t, observer.done, 1)
	assert.Equal(t, 6, observer.done[0].UniqueCandidates)
	assert.Equal(t, 2, observer.done[0].Alternatives)
	assert.Equal(t, 0, observer.done[0].Dropped)
}

func TestAlternativePathSearchDropsUnsettledCandidates(t *testing.T) {
	g, phantoms := newThetaGraph(t)
	facade := newTestFacade(t, g)

	observer := newRecordingObserver()
	result, err := AlternativePathSearch(context.Background(), facade, NewQueryHeaps(g.NumberOfVertices()),
		phantoms, DefaultAlternativeParams(), observer)
	require.NoError(t, err)
	require.True(t, result.Found)

	// the reverse search stops before settling c
	require.Len(t, result.Alternatives(), 1)
	assert.Equal(t, vA, result.Alternatives()[0].Via)
	assert.Equal(t, DROP_NOT_SETTLED, observer.dropped[vC])
	assert.Equal(t, 1, result.Stats.Dropped)
}

func TestAlternativePathSearchMaxAlternatives(t *testing.T) {
	g, phantoms := newThetaGraph(t)
	facade := newTestFacade(t, g)

	params := DefaultAlternativeParams()
	params.OverlapFactor = 2.5
	params.MaxStretch = 1.5

	for _, k := range []int{0, 1, 2, 3} {
		result, err := AlternativePathSearch(context.Background(), facade, NewQueryHeaps(g.NumberOfVertices()),
			phantoms, params.WithMaxAlternatives(k), nil)
		require.NoError(t, err)
		want := k
		if want > 2 {
			want = 2
		}
		assert.Len(t, result.Alternatives(), want, "k=%d", k)
	}
}

func TestAlternativePathSearchStretchFilter(t *testing.T) {
	g, phantoms := newThetaGraph(t)
	facade := newTestFacade(t, g)

	params := DefaultAlternativeParams()
	params.OverlapFactor = 2.5
	params.MaxStretch = 1.15

	observer := newRecordingObserver()
	result, err := AlternativePathSearch(context.Background(), facade, NewQueryHeaps(g.NumberOfVertices()),
		phantoms, params, observer)
	require.NoError(t, err)
	require.Len(t, result.Alternatives(), 1)
	assert.Equal(t, vA, result.Alternatives()[0].Via)
	assert.Equal(t, DROP_STRETCH, observer.dropped[vC])
}

func TestOverlapFactorCandidateMonotonicity(t *testing.T) {
	g, phantoms := newThetaGraph(t)
	facade := newTestFacade(t, g)

	previous := -1
	for _, factor := range []float64{1.0, 1.66, 2.5} {
		params := DefaultAlternativeParams()
		params.OverlapFactor = factor
		result, err := AlternativePathSearch(context.Background(), facade, NewQueryHeaps(g.NumberOfVertices()),
			phantoms, params, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Stats.RawCandidates, previous, "factor %v", factor)
		assert.LessOrEqual(t, result.Stats.UniqueCandidates, result.Stats.RawCandidates)
		previous = result.Stats.RawCandidates
	}
}

func TestMeetingWeightNeverIncreases(t *testing.T) {
	g, phantoms := newThetaGraph(t)
	facade := newTestFacade(t, g)

	params := DefaultAlternativeParams()
	params.OverlapFactor = 2.5
	observer := newRecordingObserver()
	_, err := AlternativePathSearch(context.Background(), facade, NewQueryHeaps(g.NumberOfVertices()),
		phantoms, params, observer)
	require.NoError(t, err)

	require.NotEmpty(t, observer.iterations)
	for i := 1; i < len(observer.iterations); i++ {
		assert.LessOrEqual(t, observer.iterations[i].Weight, observer.iterations[i-1].Weight)
	}
	assert.Equal(t, da.Weight(10), observer.iterations[len(observer.iterations)-1].Weight)
}

func TestDisconnectedGraphHasNoRoute(t *testing.T) {
	gb := da.NewGraphBuilder()
	for i := 0; i < 4; i++ {
		gb.AddVertex(-7.0, 110.0+0.001*float64(i))
	}
	gb.AddBidirectionalEdge(0, 1, 10, 100)
	gb.AddBidirectionalEdge(2, 3, 10, 100)
	g := gb.Build()

	phantoms := da.NewPhantomNodes(
		da.NewPhantomNode(g, g.FindEdge(0, 1), 0.5, -7.0, 110.0005),
		da.NewPhantomNode(g, g.FindEdge(2, 3), 0.5, -7.0, 110.0025),
	)

	result, err := AlternativePathSearch(context.Background(), newTestFacade(t, g),
		NewQueryHeaps(g.NumberOfVertices()), phantoms, DefaultAlternativeParams(), nil)
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Nil(t, result.Primary())
	assert.Empty(t, result.Routes)
	assert.Equal(t, 0, result.Stats.UniqueCandidates)

	cache, err := lru.New[PUCacheKey, []da.Index](16)
	require.NoError(t, err)
	engine := NewMLDRoutingEngine(g, zap.NewNop(), cache, DefaultAlternativeParams())
	_, err = engine.ShortestPath(context.Background(), phantoms)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRoute))
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
}

func newSingleEdgeGraph() *da.Graph {
	gb := da.NewGraphBuilder()
	gb.AddVertex(-7.0, 110.0)
	gb.AddVertex(-7.0, 110.01)
	gb.AddBidirectionalEdge(0, 1, 100, 1000)
	return gb.Build()
}

func TestTrivialNetworkDirectRoute(t *testing.T) {
	g := newSingleEdgeGraph()
	forwardEdge := g.FindEdge(0, 1)

	tests := []struct {
		name         string
		sourceRatio  float64
		targetRatio  float64
		expectedEdge da.Index
	}{
		{"target ahead", 0.2, 0.7, forwardEdge},
		{"target behind", 0.7, 0.2, g.FindEdge(1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phantoms := da.NewPhantomNodes(
				da.NewPhantomNode(g, forwardEdge, tt.sourceRatio, -7.0, 110.0),
				da.NewPhantomNode(g, forwardEdge, tt.targetRatio, -7.0, 110.0),
			)
			observer := newRecordingObserver()
			result, err := AlternativePathSearch(context.Background(), newTestFacade(t, g),
				NewQueryHeaps(g.NumberOfVertices()), phantoms, DefaultAlternativeParams(), observer)
			require.NoError(t, err)
			require.True(t, result.Found)
			require.Len(t, result.Routes, 1)

			primary := result.Primary()
			assert.Equal(t, da.Weight(50), primary.Weight)
			assert.Equal(t, da.INVALID_VERTEX_ID, primary.Via)
			assert.Equal(t, []da.Index{tt.expectedEdge}, primary.Edges())
			assert.InDelta(t, 500.0, primary.Distance, 1e-6)
			assert.Equal(t, 0, result.Stats.UniqueCandidates)
		})
	}
}

func TestSegmentUTurnDetection(t *testing.T) {
	g := newSingleEdgeGraph()
	forwardEdge := g.FindEdge(0, 1)
	facade := newTestFacade(t, g)

	phantoms := da.NewPhantomNodes(
		da.NewPhantomNode(g, forwardEdge, 0.2, -7.0, 110.0),
		da.NewPhantomNode(g, forwardEdge, 0.7, -7.0, 110.0),
	)
	heaps := NewQueryHeaps(g.NumberOfVertices())
	bs := &bidirectionalSearch{sc: newStepContext(facade, phantoms), heaps: heaps, phantoms: phantoms}
	bs.initializeHeaps()

	assert.True(t, bs.sc.directAllowed)
	assert.True(t, bs.sc.isSegmentUTurn(1, heaps.Forward, heaps.Reverse))
	assert.True(t, bs.sc.isSegmentUTurn(0, heaps.Forward, heaps.Reverse))

	// source and target on different segments: meeting at a shared seed is a real route
	gb := da.NewGraphBuilder()
	for i := 0; i < 3; i++ {
		gb.AddVertex(-7.0, 110.0+0.001*float64(i))
	}
	gb.AddBidirectionalEdge(0, 1, 10, 100)
	gb.AddBidirectionalEdge(1, 2, 10, 100)
	g2 := gb.Build()
	phantoms2 := da.NewPhantomNodes(
		da.NewPhantomNode(g2, g2.FindEdge(0, 1), 0.5, -7.0, 110.0),
		da.NewPhantomNode(g2, g2.FindEdge(1, 2), 0.5, -7.0, 110.0),
	)
	heaps2 := NewQueryHeaps(g2.NumberOfVertices())
	bs2 := &bidirectionalSearch{sc: newStepContext(newTestFacade(t, g2), phantoms2), heaps: heaps2,
		phantoms: phantoms2}
	bs2.initializeHeaps()
	assert.False(t, bs2.sc.directAllowed)
	assert.False(t, bs2.sc.isSegmentUTurn(1, heaps2.Forward, heaps2.Reverse))

	result, err := ShortestPathSearch(context.Background(), newTestFacade(t, g2), NewQueryHeaps(3), phantoms2, nil)
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, da.Weight(10), result.Primary().Weight)
	assert.Equal(t, da.Index(1), result.Primary().Via)
}

func TestDedupCandidates(t *testing.T) {
	tests := []struct {
		name  string
		input []da.Index
		want  []da.Index
	}{
		{"empty", []da.Index{}, []da.Index{}},
		{"single", []da.Index{4}, []da.Index{4}},
		{"repeated", []da.Index{5, 5, 5, 2, 2, 9}, []da.Index{2, 5, 9}},
		{"unsorted", []da.Index{9, 1, 7, 1, 3}, []da.Index{1, 3, 7, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dedupCandidates(append([]da.Index{}, tt.input...))
			assert.Equal(t, tt.want, got)
			again := dedupCandidates(append([]da.Index{}, got...))
			assert.Equal(t, got, again)
		})
	}
}

func TestSearchCancelled(t *testing.T) {
	g, phantoms := newThetaGraph(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AlternativePathSearch(ctx, newTestFacade(t, g), NewQueryHeaps(g.NumberOfVertices()), phantoms,
		DefaultAlternativeParams(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestParamsNormalize(t *testing.T) {
	p := AlternativeParams{OverlapFactor: 0.5, MaxAlternatives: -2}.normalize()
	def := DefaultAlternativeParams()
	assert.Equal(t, 1.0, p.OverlapFactor)
	assert.Equal(t, 0, p.MaxAlternatives)
	assert.Equal(t, def.MaxStretch, p.MaxStretch)
	assert.Equal(t, def.MaxOverlap, p.MaxOverlap)
	assert.Equal(t, def.MaxSimilarity, p.MaxSimilarity)
}
