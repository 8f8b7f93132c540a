package osmparser

import (
	"context"
	"testing"

	"github.com/lintang-b-s/navigatorx-mld/pkg"
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sliceScanner struct {
	objects []osm.Object
	i       int
}

func (s *sliceScanner) Scan() bool {
	s.i++
	return s.i <= len(s.objects)
}

func (s *sliceScanner) Object() osm.Object {
	return s.objects[s.i-1]
}

func (s *sliceScanner) Err() error   { return nil }
func (s *sliceScanner) Close() error { return nil }

func opener(objects []osm.Object) func() (objectScanner, error) {
	return func() (objectScanner, error) {
		return &sliceScanner{objects: objects}, nil
	}
}

func newNode(id int64, lat, lon float64, tags ...osm.Tag) *osm.Node {
	return &osm.Node{ID: osm.NodeID(id), Lat: lat, Lon: lon, Tags: osm.Tags(tags)}
}

func newWay(id int64, nodes []int64, tags ...osm.Tag) *osm.Way {
	wn := make(osm.WayNodes, 0, len(nodes))
	for _, n := range nodes {
		wn = append(wn, osm.WayNode{ID: osm.NodeID(n)})
	}
	return &osm.Way{ID: osm.WayID(id), Nodes: wn, Tags: osm.Tags(tags)}
}

func TestParseSplitsWaysAtJunctions(t *testing.T) {
	objects := []osm.Object{
		newNode(1, -7.700, 110.300),
		newNode(2, -7.700, 110.301),
		newNode(3, -7.700, 110.302),
		newNode(4, -7.701, 110.301),
		newNode(5, -7.700, 110.303),
		newNode(6, -7.702, 110.300),
		newWay(10, []int64{1, 2, 3}, osm.Tag{Key: "highway", Value: "primary"}),
		newWay(11, []int64{2, 4}, osm.Tag{Key: "highway", Value: "residential"}, osm.Tag{Key: "oneway", Value: "yes"}),
		newWay(12, []int64{3, 5}, osm.Tag{Key: "highway", Value: "tertiary"}, osm.Tag{Key: "oneway", Value: "-1"}),
		newWay(13, []int64{1, 6}, osm.Tag{Key: "highway", Value: "footway"}),
	}

	p := NewOSMParser(zap.NewNop())
	g, err := p.parse(context.Background(), opener(objects))
	require.NoError(t, err)

	assert.Equal(t, 5, g.NumberOfVertices())
	assert.Equal(t, 6, g.NumberOfEdges())

	_, ok := p.VertexOf(6)
	assert.False(t, ok)

	v := func(id int64) da.Index {
		idx, ok := p.VertexOf(id)
		require.True(t, ok)
		return idx
	}
	assert.NotEqual(t, da.INVALID_EDGE_ID, g.FindEdge(v(1), v(2)))
	assert.NotEqual(t, da.INVALID_EDGE_ID, g.FindEdge(v(2), v(1)))
	assert.NotEqual(t, da.INVALID_EDGE_ID, g.FindEdge(v(2), v(4)))
	assert.Equal(t, da.INVALID_EDGE_ID, g.FindEdge(v(4), v(2)))
	assert.NotEqual(t, da.INVALID_EDGE_ID, g.FindEdge(v(5), v(3)))
	assert.Equal(t, da.INVALID_EDGE_ID, g.FindEdge(v(3), v(5)))
	assert.Equal(t, 0, g.OutDegree(v(4)))

	e := g.GetOutEdge(g.FindEdge(v(1), v(2)))
	assert.InDelta(t, 110.3, e.GetLength(), 1.0)
	assert.Equal(t, travelWeight(e.GetLength(), pkg.DefaultSpeed(pkg.PRIMARY)), e.GetWeight())
}

func TestParseBarrierDisconnectsWay(t *testing.T) {
	objects := []osm.Object{
		newNode(1, -7.700, 110.300),
		newNode(2, -7.700, 110.301, osm.Tag{Key: "barrier", Value: "gate"}, osm.Tag{Key: "access", Value: "no"}),
		newNode(3, -7.700, 110.302),
		newWay(10, []int64{1, 2, 3}, osm.Tag{Key: "highway", Value: "service"}),
	}

	p := NewOSMParser(zap.NewNop())
	g, err := p.parse(context.Background(), opener(objects))
	require.NoError(t, err)

	assert.Equal(t, 4, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())

	v1, _ := p.VertexOf(1)
	v2, _ := p.VertexOf(2)
	v3, _ := p.VertexOf(3)
	assert.NotEqual(t, da.INVALID_EDGE_ID, g.FindEdge(v1, v2))
	assert.Equal(t, da.INVALID_EDGE_ID, g.FindEdge(v2, v3))
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewOSMParser(zap.NewNop()).parse(ctx, opener([]osm.Object{newNode(1, 0, 0)}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWayDirection(t *testing.T) {
	tests := []struct {
		name     string
		tags     []osm.Tag
		forward  bool
		backward bool
	}{
		{"two way", []osm.Tag{{Key: "highway", Value: "primary"}}, true, true},
		{"oneway yes", []osm.Tag{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "yes"}}, true, false},
		{"oneway reverse", []osm.Tag{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "-1"}}, false, true},
		{"roundabout", []osm.Tag{{Key: "highway", Value: "primary"}, {Key: "junction", Value: "roundabout"}}, true, false},
		{"motorway", []osm.Tag{{Key: "highway", Value: "motorway"}}, true, false},
		{"motorway both ways", []osm.Tag{{Key: "highway", Value: "motorway"}, {Key: "oneway", Value: "no"}}, true, true},
		{"vehicle forward no", []osm.Tag{{Key: "highway", Value: "primary"}, {Key: "vehicle:forward", Value: "no"}}, false, true},
		{"motor vehicle backward no", []osm.Tag{{Key: "highway", Value: "primary"}, {Key: "motor_vehicle:backward", Value: "no"}}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forward, backward := wayDirection(newWay(1, []int64{1, 2}, tt.tags...))
			assert.Equal(t, tt.forward, forward)
			assert.Equal(t, tt.backward, backward)
		})
	}
}

func TestParseMaxSpeed(t *testing.T) {
	tests := []struct {
		value string
		speed float64
		ok    bool
	}{
		{"50", 50, true},
		{"50 km/h", 50, true},
		{"30 mph", 48.2802, true},
		{"10 knots", 18.52, true},
		{"none", 0, false},
		{"", 0, false},
		{"-5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			speed, ok := parseMaxSpeed(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.speed, speed, 1e-4)
		})
	}
}

func TestNewWayInfo(t *testing.T) {
	info := newWayInfo(newWay(7, []int64{1, 2},
		osm.Tag{Key: "highway", Value: "secondary"},
		osm.Tag{Key: "junction", Value: "circular"},
		osm.Tag{Key: "maxspeed", Value: "40"}))

	assert.Equal(t, int64(7), info.id)
	assert.True(t, info.roundabout)
	assert.True(t, info.forward)
	assert.False(t, info.backward)
	assert.InDelta(t, 40*pkg.NERF_MAXSPEED_OSM, info.speed, 1e-9)

	info = newWayInfo(newWay(8, []int64{1, 2}, osm.Tag{Key: "highway", Value: "secondary"}))
	assert.InDelta(t, pkg.DefaultSpeed(pkg.SECONDARY), info.speed, 1e-9)
}

func TestAcceptOsmWay(t *testing.T) {
	assert.True(t, acceptOsmWay(newWay(1, []int64{1, 2}, osm.Tag{Key: "highway", Value: "residential"})))
	assert.True(t, acceptOsmWay(newWay(1, []int64{1, 2}, osm.Tag{Key: "junction", Value: "roundabout"})))
	assert.False(t, acceptOsmWay(newWay(1, []int64{1, 2}, osm.Tag{Key: "highway", Value: "footway"})))
	assert.False(t, acceptOsmWay(newWay(1, []int64{1}, osm.Tag{Key: "highway", Value: "primary"})))
	assert.False(t, acceptOsmWay(newWay(1, []int64{1, 2}, osm.Tag{Key: "highway", Value: "primary"},
		osm.Tag{Key: "access", Value: "private"})))
}

func TestTravelWeight(t *testing.T) {
	// 1 km at 36 km/h is 100 s
	assert.Equal(t, da.Weight(1000), travelWeight(1000, 36))
	assert.Equal(t, da.Weight(1), travelWeight(0, 36))
}
