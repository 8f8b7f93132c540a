package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
)

/*
graph file layout (bzip2 compressed text):

	numVertices numEdges numLevels
	lat lon                        (numVertices lines)
	tail head weight dist          (numEdges lines, edge id order)
	numCells                       (numLevels lines, level 1 first)
	cellNumber                     (numVertices lines)
	numWeights
	w0 w1 ... wk                   (shortcut weights, one line)

the in-edges and the cell boundaries are rebuilt on read.
*/

func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	if err := g.WriteText(bz); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

// WriteText. write the uncompressed graph text.
func (g *Graph) WriteText(out io.Writer) error {
	w := bufio.NewWriter(out)

	numLevels := g.NumberOfLevels()
	fmt.Fprintf(w, "%d %d %d\n", g.NumberOfVertices(), g.NumberOfEdges(), numLevels)

	for vId := 0; vId < g.NumberOfVertices(); vId++ {
		v := g.vertices[vId]
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)
		fmt.Fprintf(w, "%s %s\n", latF, lonF)
	}

	for _, e := range g.outEdges {
		distF := strconv.FormatFloat(e.dist, 'f', -1, 64)
		fmt.Fprintf(w, "%d %d %d %s\n", e.tail, e.head, e.weight, distF)
	}

	if numLevels > 0 {
		for l := 1; l <= numLevels; l++ {
			fmt.Fprintf(w, "%d\n", g.mlp.GetNumberOfCellsInLevel(l))
		}
		for vId := 0; vId < g.NumberOfVertices(); vId++ {
			fmt.Fprintf(w, "%d\n", g.mlp.GetCellNumber(Index(vId)))
		}

		weights := []Weight{}
		if g.cells != nil {
			weights = g.cells.GetWeights()
		}
		fmt.Fprintf(w, "%d\n", len(weights))
		for i, wt := range weights {
			fmt.Fprintf(w, "%d", wt)
			if i < len(weights)-1 {
				fmt.Fprintf(w, " ")
			}
		}
		fmt.Fprintf(w, "\n")
	}

	return w.Flush()
}

func fields(s string) []string {
	return strings.Fields(s)
}

func ParseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	return ReadGraphFrom(bz)
}

// ReadGraphFrom. read the uncompressed graph text written by WriteText.
func ReadGraphFrom(in io.Reader) (*Graph, error) {
	br := bufio.NewReaderSize(in, 1<<16)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}

	tokens := fields(line)
	if len(tokens) != 3 {
		return nil, fmt.Errorf("graph header: expected 3 fields, got %d", len(tokens))
	}

	numVertices, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, err
	}
	numLevels, err := strconv.Atoi(tokens[2])
	if err != nil {
		return nil, err
	}

	gb := NewGraphBuilder()
	for i := 0; i < int(numVertices); i++ {
		vertexLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		tokens = fields(vertexLine)
		if len(tokens) != 2 {
			return nil, fmt.Errorf("vertex %d: expected 2 fields, got %d", i, len(tokens))
		}
		lat, err := strconv.ParseFloat(tokens[0], 64)
		if err != nil {
			return nil, err
		}
		lon, err := strconv.ParseFloat(tokens[1], 64)
		if err != nil {
			return nil, err
		}
		gb.AddVertex(lat, lon)
	}

	for i := 0; i < int(numEdges); i++ {
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		tokens = fields(edgeLine)
		if len(tokens) != 4 {
			return nil, fmt.Errorf("edge %d: expected 4 fields, got %d", i, len(tokens))
		}
		tail, err := ParseIndex(tokens[0])
		if err != nil {
			return nil, err
		}
		head, err := ParseIndex(tokens[1])
		if err != nil {
			return nil, err
		}
		weight, err := strconv.ParseInt(tokens[2], 10, 64)
		if err != nil {
			return nil, err
		}
		dist, err := strconv.ParseFloat(tokens[3], 64)
		if err != nil {
			return nil, err
		}
		if tail >= numVertices || head >= numVertices {
			return nil, fmt.Errorf("edge %d: endpoint out of range", i)
		}
		gb.AddEdge(tail, head, Weight(weight), dist)
	}

	// edges were written in edge id order, so Build reproduces the same ids
	g := gb.Build()
	if numLevels == 0 {
		return g, nil
	}

	mlp := NewMultilevelPartition(numLevels, int(numVertices))
	for l := 1; l <= numLevels; l++ {
		cellLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		numCells, err := strconv.Atoi(strings.TrimSpace(cellLine))
		if err != nil {
			return nil, err
		}
		mlp.SetNumberOfCellsInLevel(l, numCells)
	}
	if err := mlp.ComputeBitmap(); err != nil {
		return nil, err
	}

	for i := 0; i < int(numVertices); i++ {
		cnLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		cellNumber, err := strconv.ParseUint(strings.TrimSpace(cnLine), 10, 64)
		if err != nil {
			return nil, err
		}
		mlp.setCellNumber(Index(i), Pv(cellNumber))
	}
	g.SetPartition(mlp)

	cells := NewCellStorage(g, mlp)
	g.SetCellStorage(cells)

	line, err = util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	numWeights, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}
	line, err = util.ReadLine(br)
	if err != nil && numWeights > 0 {
		return nil, err
	}
	tokens = fields(line)
	if len(tokens) != numWeights {
		return nil, fmt.Errorf("expected %d shortcut weights, got %d", numWeights, len(tokens))
	}
	weights := make([]Weight, numWeights)
	for i, tok := range tokens {
		wt, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, err
		}
		weights[i] = Weight(wt)
	}
	if err := cells.SetWeights(weights); err != nil {
		return nil, err
	}

	return g, nil
}
