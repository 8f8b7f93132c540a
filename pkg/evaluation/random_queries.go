package evaluation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
)

// Query. source and target snapped at a ratio along a base edge.
type Query struct {
	SourceEdge  da.Index
	SourceRatio float64
	TargetEdge  da.Index
	TargetRatio float64
}

// GenerateRandomQueries. n queries between uniformly drawn edges, reproducible for a fixed seed.
func GenerateRandomQueries(g *da.Graph, n int, seed int64) []Query {
	if g.NumberOfEdges() == 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	queries := make([]Query, 0, n)
	for i := 0; i < n; i++ {
		queries = append(queries, Query{
			SourceEdge:  da.Index(rng.Intn(g.NumberOfEdges())),
			SourceRatio: util.RoundFloat(rng.Float64(), 4),
			TargetEdge:  da.Index(rng.Intn(g.NumberOfEdges())),
			TargetRatio: util.RoundFloat(rng.Float64(), 4),
		})
	}
	return queries
}

// Phantoms. source and target of the query on g.
func (q Query) Phantoms(g *da.Graph) da.PhantomNodes {
	return da.NewPhantomNodes(phantomAt(g, q.SourceEdge, q.SourceRatio), phantomAt(g, q.TargetEdge, q.TargetRatio))
}

func phantomAt(g *da.Graph, edge da.Index, ratio float64) da.PhantomNode {
	e := g.GetOutEdge(edge)
	uLat, uLon := g.GetVertexCoordinates(e.GetTail())
	vLat, vLon := g.GetVertexCoordinates(e.GetHead())
	return da.NewPhantomNode(g, edge, ratio, uLat+(vLat-uLat)*ratio, uLon+(vLon-uLon)*ratio)
}

// WriteQueries. one query per line: sourceEdge sourceRatio targetEdge targetRatio
func WriteQueries(w io.Writer, queries []Query) error {
	bw := bufio.NewWriter(w)
	for _, q := range queries {
		fmt.Fprintf(bw, "%d %s %d %s\n", q.SourceEdge, strconv.FormatFloat(q.SourceRatio, 'f', -1, 64),
			q.TargetEdge, strconv.FormatFloat(q.TargetRatio, 'f', -1, 64))
	}
	return bw.Flush()
}

func WriteQueriesFile(filename string, queries []Query) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteQueries(f, queries)
}

// ReadQueries. queries written by WriteQueries. edges outside of g are rejected.
func ReadQueries(r io.Reader, g *da.Graph) ([]Query, error) {
	br := bufio.NewReader(r)
	queries := make([]Query, 0)
	for lineNo := 1; ; lineNo++ {
		line, err := util.ReadLine(br)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		q, err := parseQuery(line)
		if err != nil {
			return nil, fmt.Errorf("query line %d: %w", lineNo, err)
		}
		if int(q.SourceEdge) >= g.NumberOfEdges() || int(q.TargetEdge) >= g.NumberOfEdges() {
			return nil, fmt.Errorf("query line %d: edge out of range", lineNo)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

func ReadQueriesFile(filename string, g *da.Graph) ([]Query, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadQueries(f, g)
}

func parseQuery(line string) (Query, error) {
	ff := strings.Fields(line)
	if len(ff) != 4 {
		return Query{}, fmt.Errorf("expected 4 fields, got %d", len(ff))
	}
	s, err := da.ParseIndex(ff[0])
	if err != nil {
		return Query{}, err
	}
	sr, err := strconv.ParseFloat(ff[1], 64)
	if err != nil {
		return Query{}, err
	}
	t, err := da.ParseIndex(ff[2])
	if err != nil {
		return Query{}, err
	}
	tr, err := strconv.ParseFloat(ff[3], 64)
	if err != nil {
		return Query{}, err
	}
	return Query{SourceEdge: s, SourceRatio: sr, TargetEdge: t, TargetRatio: tr}, nil
}
