package spatialindex

import (
	"errors"
	"math"

	"github.com/lintang-b-s/navigatorx-mld/pkg"
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/geo"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var ErrNoNearbySegment = errors.New("no road segment near the query point")

type Rtree struct {
	tr    *rtree.RTreeG[SegmentEntry]
	graph *da.Graph
}

// SegmentEntry. one road segment u-v, keyed by the edge u->v. the twin edge v->u, if any, is not indexed
// separately.
type SegmentEntry struct {
	edgeId da.Index
}

func (se SegmentEntry) GetEdgeId() da.Index {
	return se.edgeId
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[SegmentEntry]
	return &Rtree{
		tr: &tr,
	}
}

// Build. build r-tree, with each leaf having bounding box with radius boundingBoxRadius (in km)
// around both segment endpoints.
func (rt *Rtree) Build(graph *da.Graph, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.graph = graph
	indexed := 0

	graph.ForOutEdges(func(e *da.OutEdge) {
		from, to := e.GetTail(), e.GetHead()
		if from > to && graph.FindEdge(to, from) != da.INVALID_EDGE_ID {
			return
		}

		fromLat, fromLon := graph.GetVertexCoordinates(from)
		toLat, toLon := graph.GetVertexCoordinates(to)
		lowerFrom, upperFrom := geo.BoundingBox(fromLat, fromLon, boundingBoxRadius)
		lowerTo, upperTo := geo.BoundingBox(toLat, toLon, boundingBoxRadius)

		minLat := math.Min(lowerFrom.Lat, lowerTo.Lat)
		minLon := math.Min(lowerFrom.Lon, lowerTo.Lon)
		maxLat := math.Max(upperFrom.Lat, upperTo.Lat)
		maxLon := math.Max(upperFrom.Lon, upperTo.Lon)

		rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, SegmentEntry{edgeId: e.GetEdgeId()})
		indexed++
	})

	log.Info("R-tree spatial index built.", zap.Int("segments", indexed))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius search for at most MAX_SNAP_CANDIDATE segments within radius (in km) from the query point
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []SegmentEntry {
	lower, upper := geo.BoundingBox(qLat, qLon, radius)

	results := make([]SegmentEntry, 0, 10)
	rt.tr.Search([2]float64{lower.Lon, lower.Lat}, [2]float64{upper.Lon, upper.Lat},
		func(min, max [2]float64, data SegmentEntry) bool {
			results = append(results, data)
			return len(results) < pkg.MAX_SNAP_CANDIDATE
		})
	return results
}

/*
Snap. snap the query point onto the closest indexed segment within radius (km). the point is projected
onto every candidate segment (s2 great circle projection), the segment with the smallest perpendicular
distance wins. the resulting phantom node splits the segment weights at the projection ratio.
*/
func (rt *Rtree) Snap(lat, lon, radius float64) (da.PhantomNode, error) {
	candidates := rt.SearchWithinRadius(lat, lon, radius)
	if len(candidates) == 0 {
		return da.PhantomNode{}, util.WrapErrorf(ErrNoNearbySegment, util.ErrBadParamInput,
			"no road segment within %.3f km of %f,%f", radius, lat, lon)
	}

	query := geo.NewCoordinate(lat, lon)
	bestEdge, bestRatio, bestDist := da.INVALID_EDGE_ID, 0.0, math.Inf(1)
	var bestPoint geo.Coordinate
	for _, c := range candidates {
		e := rt.graph.GetOutEdge(c.edgeId)
		aLat, aLon := rt.graph.GetVertexCoordinates(e.GetTail())
		bLat, bLon := rt.graph.GetVertexCoordinates(e.GetHead())
		a, b := geo.NewCoordinate(aLat, aLon), geo.NewCoordinate(bLat, bLon)

		projection, ratio := geo.ProjectPointToSegment(a, b, query)
		dist := geo.CalculateHaversineDistance(lat, lon, projection.Lat, projection.Lon)
		if dist < bestDist || (dist == bestDist && c.edgeId < bestEdge) {
			bestEdge, bestRatio, bestDist, bestPoint = c.edgeId, ratio, dist, projection
		}
	}

	return da.NewPhantomNode(rt.graph, bestEdge, bestRatio, bestPoint.Lat, bestPoint.Lon), nil
}
