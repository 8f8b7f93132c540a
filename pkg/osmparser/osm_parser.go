package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"

	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

// OsmParser. builds the road network graph from an openstreetmap pbf extract. ways are split at junction
// nodes, so graph vertices are the junctions and the way endpoints.
type OsmParser struct {
	logger *zap.Logger

	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]nodeCoord
	barrierNodes    map[int64]struct{}
	nodeIDMap       map[int64]da.Index
	maxNodeID       int64

	edgeSet map[[2]da.Index]struct{}
	gb      *da.GraphBuilder
}

func NewOSMParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		logger:          logger,
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]nodeCoord),
		barrierNodes:    make(map[int64]struct{}),
		nodeIDMap:       make(map[int64]da.Index),
		edgeSet:         make(map[[2]da.Index]struct{}),
		gb:              da.NewGraphBuilder(),
	}
}

func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*da.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	open := func() (objectScanner, error) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		// must not be parallel
		return osmpbf.New(ctx, f, 0), nil
	}
	return p.parse(ctx, open)
}

/*
parse. two scans over the extract:

 1. ways: mark every node of an accepted way as END, BETWEEN or JUNCTION node.
 2. nodes and ways: keep the coordinates of way nodes and the barrier nodes, collect the accepted ways.

the collected ways are turned into edges afterwards, so the result does not depend on the object order
of the file.
*/
func (p *OsmParser) parse(ctx context.Context, open func() (objectScanner, error)) (*da.Graph, error) {
	scanner, err := open()
	if err != nil {
		return nil, err
	}
	countWays := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			scanner.Close()
			return nil, ctx.Err()
		}
		way, ok := scanner.Object().(*osm.Way)
		if !ok || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for i, wn := range way.Nodes {
			id := int64(wn.ID)
			if _, ok := p.wayNodeMap[id]; !ok {
				if i == 0 || i == len(way.Nodes)-1 {
					p.wayNodeMap[id] = END_NODE
				} else {
					p.wayNodeMap[id] = BETWEEN_NODE
				}
			} else {
				p.wayNodeMap[id] = JUNCTION_NODE
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("scanning openstreetmap ways: %w", err)
	}
	scanner.Close()

	scanner, err = open()
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	ways := make([]acceptedWay, 0, countWays)
	countNodes := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if (countNodes+1)%500000 == 0 {
				p.logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++
			p.maxNodeID = max(p.maxNodeID, int64(o.ID))

			if _, ok := p.wayNodeMap[int64(o.ID)]; !ok {
				continue
			}
			p.acceptedNodeMap[int64(o.ID)] = nodeCoord{lat: o.Lat, lon: o.Lon}
			if _, ok := acceptedBarrierType[o.Tags.Find("barrier")]; ok && o.Tags.Find("access") == "no" {
				p.barrierNodes[int64(o.ID)] = struct{}{}
			}
		case *osm.Way:
			if !acceptOsmWay(o) {
				continue
			}
			nodes := make([]int64, 0, len(o.Nodes))
			for _, wn := range o.Nodes {
				nodes = append(nodes, int64(wn.ID))
			}
			ways = append(ways, acceptedWay{nodes: nodes, info: newWayInfo(o)})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning openstreetmap nodes: %w", err)
	}

	for i, way := range ways {
		if (i+1)%100000 == 0 {
			p.logger.Sugar().Infof("processing openstreetmap ways: %d...", i+1)
		}
		p.processWay(way)
	}

	graph := p.gb.Build()
	p.logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	p.logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())
	return graph, nil
}

// VertexOf. graph vertex of an osm node, if the node became one.
func (p *OsmParser) VertexOf(osmNodeID int64) (da.Index, bool) {
	v, ok := p.nodeIDMap[osmNodeID]
	return v, ok
}

func (p *OsmParser) isJunctionNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE
}

func (p *OsmParser) processWay(way acceptedWay) {
	if !way.info.forward && !way.info.backward {
		return
	}
	segment := make([]node, 0, len(way.nodes))
	for i, id := range way.nodes {
		coord, ok := p.acceptedNodeMap[id]
		if !ok {
			// node outside of the extract
			if len(segment) > 1 {
				p.processSegment(segment, way.info)
			}
			segment = segment[:0]
			continue
		}
		nodeData := node{id: id, coord: coord}
		segment = append(segment, nodeData)
		if i > 0 && p.isJunctionNode(id) {
			p.processSegment(segment, way.info)
			segment = []node{nodeData}
		}
	}
	if len(segment) > 1 {
		p.processSegment(segment, way.info)
	}
}

func (p *OsmParser) processSegment(segment []node, info wayInfo) {
	switch {
	case len(segment) < 2:
		return
	case len(segment) == 2 && segment[0].id == segment[1].id:
		return
	case len(segment) > 2 && segment[0].id == segment[len(segment)-1].id:
		// closed way without other junctions, cut it in two
		p.splitAtBarriers(segment[:len(segment)-1], info)
		p.splitAtBarriers(segment[len(segment)-2:], info)
	default:
		p.splitAtBarriers(segment, info)
	}
}

// splitAtBarriers. a blocking barrier ends the current edge, the next edge starts from a copy of the barrier
// node so both sides stay disconnected.
func (p *OsmParser) splitAtBarriers(segment []node, info wayInfo) {
	waySegment := make([]node, 0, len(segment))
	for _, nodeData := range segment {
		if _, ok := p.barrierNodes[nodeData.id]; !ok {
			waySegment = append(waySegment, nodeData)
			continue
		}
		if len(waySegment) != 0 {
			waySegment = append(waySegment, nodeData)
			p.addEdge(waySegment, info)
			waySegment = waySegment[:0:0]
		}
		waySegment = append(waySegment, p.copyNode(nodeData))
	}
	if len(waySegment) > 1 {
		p.addEdge(waySegment, info)
	}
}

func (p *OsmParser) copyNode(nodeData node) node {
	p.maxNodeID++
	p.acceptedNodeMap[p.maxNodeID] = nodeData.coord
	return node{id: p.maxNodeID, coord: nodeData.coord}
}

func (p *OsmParser) vertexOf(n node) da.Index {
	if v, ok := p.nodeIDMap[n.id]; ok {
		return v
	}
	v := p.gb.AddVertex(n.coord.lat, n.coord.lon)
	p.nodeIDMap[n.id] = v
	return v
}

func (p *OsmParser) addEdge(segment []node, info wayInfo) {
	from, to := segment[0], segment[len(segment)-1]
	if from.id == to.id {
		return
	}

	distance := 0.0
	for i := 1; i < len(segment); i++ {
		distance += geo.CalculateHaversineDistance(segment[i-1].coord.lat, segment[i-1].coord.lon,
			segment[i].coord.lat, segment[i].coord.lon)
	}
	distanceInMeter := distance * 1000
	weight := travelWeight(distanceInMeter, info.speed)

	u, v := p.vertexOf(from), p.vertexOf(to)
	if info.forward {
		p.addDirectedEdge(u, v, weight, distanceInMeter)
	}
	if info.backward {
		p.addDirectedEdge(v, u, weight, distanceInMeter)
	}
}

func (p *OsmParser) addDirectedEdge(u, v da.Index, weight da.Weight, dist float64) {
	key := [2]da.Index{u, v}
	if _, ok := p.edgeSet[key]; ok {
		return
	}
	p.edgeSet[key] = struct{}{}
	p.gb.AddEdge(u, v, weight, dist)
}
