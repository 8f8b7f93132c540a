package datastructure

// PhantomNode. a query endpoint snapped onto the segment U-V.
// ForwardEdge is the edge U->V and ForwardWeight the cost from U to the snapped point along it.
// ReverseEdge is the edge V->U and ReverseWeight the cost from V to the snapped point along it.
// a direction whose edge is INVALID_EDGE_ID is disabled (oneway segment).
type PhantomNode struct {
	U, V          Index
	ForwardEdge   Index
	ReverseEdge   Index
	ForwardWeight Weight
	ReverseWeight Weight
	// total weight of the forward / reverse edge
	ForwardTotal Weight
	ReverseTotal Weight
	Lat, Lon     float64
	Ratio        float64 // position of the snapped point on U-V, 0 at U, 1 at V
}

func (p PhantomNode) ForwardEnabled() bool {
	return p.ForwardEdge != INVALID_EDGE_ID
}

func (p PhantomNode) ReverseEnabled() bool {
	return p.ReverseEdge != INVALID_EDGE_ID
}

func (p PhantomNode) IsValid() bool {
	return p.ForwardEnabled() || p.ReverseEnabled()
}

// SameSegment. both phantoms lie on the same undirected segment.
func (p PhantomNode) SameSegment(o PhantomNode) bool {
	return p.U == o.U && p.V == o.V
}

// NewPhantomNode. snap a point at ratio along the segment u-v of the graph. the reverse direction is
// enabled only when the graph holds an edge v->u.
func NewPhantomNode(g *Graph, forwardEdge Index, ratio, lat, lon float64) PhantomNode {
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	fe := g.GetOutEdge(forwardEdge)
	p := PhantomNode{
		U:           fe.tail,
		V:           fe.head,
		ForwardEdge: forwardEdge,
		ReverseEdge: g.FindEdge(fe.head, fe.tail),
		Lat:         lat,
		Lon:         lon,
		Ratio:       ratio,
	}
	p.ForwardTotal = fe.weight
	p.ForwardWeight = Weight(float64(fe.weight)*ratio + 0.5)
	if p.ReverseEnabled() {
		re := g.GetOutEdge(p.ReverseEdge)
		p.ReverseTotal = re.weight
		p.ReverseWeight = Weight(float64(re.weight)*(1-ratio) + 0.5)
	}
	return p
}

// PhantomNodes. source and target of one query.
type PhantomNodes struct {
	Source PhantomNode
	Target PhantomNode
}

func NewPhantomNodes(source, target PhantomNode) PhantomNodes {
	return PhantomNodes{Source: source, Target: target}
}

// NeedsLoopForward. source and target on the same segment with the target behind the source in the
// forward direction: a forward route has to leave the segment and come back.
func (pn PhantomNodes) NeedsLoopForward() bool {
	s, t := pn.Source, pn.Target
	return s.SameSegment(t) && s.ForwardEnabled() && t.ForwardEnabled() &&
		s.ForwardWeight > t.ForwardWeight
}

// NeedsLoopBackward. the same for the reverse direction of the segment.
func (pn PhantomNodes) NeedsLoopBackward() bool {
	s, t := pn.Source, pn.Target
	return s.SameSegment(t) && s.ReverseEnabled() && t.ReverseEnabled() &&
		s.ReverseWeight > t.ReverseWeight
}

// DirectWeight. weight of driving from source to target without leaving their shared segment,
// INVALID_WEIGHT if they are on different segments or no direction allows it. the returned edge is the
// segment edge the direct route drives on.
func (pn PhantomNodes) DirectWeight() (Weight, Index) {
	s, t := pn.Source, pn.Target
	if !s.SameSegment(t) {
		return INVALID_WEIGHT, INVALID_EDGE_ID
	}
	best, edge := INVALID_WEIGHT, INVALID_EDGE_ID
	if s.ForwardEnabled() && t.ForwardEnabled() && !pn.NeedsLoopForward() {
		best, edge = t.ForwardWeight-s.ForwardWeight, s.ForwardEdge
	}
	if s.ReverseEnabled() && t.ReverseEnabled() && !pn.NeedsLoopBackward() {
		if w := t.ReverseWeight - s.ReverseWeight; w < best {
			best, edge = w, s.ReverseEdge
		}
	}
	return best, edge
}
