package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/geo"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
)

const fieldSeparator = "\t"

// WriteGraph. write nodes and edges with their raw attributes into a bzip2 compressed text file.
// weights and usage counters are not written, weights are derived again after ReadGraph.
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

	if err := g.writeGraphText(bz); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

func (g *Graph) writeGraphText(out io.Writer) error {
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "%d %d\n", g.NumberOfVertices(), g.NumberOfEdges())

	for _, v := range g.nodes {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", v.id, v.externalId,
			strconv.FormatFloat(v.lat, 'f', -1, 64), strconv.FormatFloat(v.lon, 'f', -1, 64))
	}

	for _, e := range g.edges {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%s\n", e.from, e.to,
			strconv.FormatFloat(e.length, 'f', -1, 64), e.rawMaxSpeed.Encode(), e.highwayType,
			geo.PolylineFromCoords(e.geometry))
	}

	return w.Flush()
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

	return readGraphText(bz)
}

func readGraphText(in io.Reader) (*Graph, error) {
	br := bufio.NewReader(in)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}

	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("invalid graph header: %q", line)
	}

	numVertices, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, err
	}

	g := NewGraphWithSize(numVertices, numEdges)

	for i := 0; i < numVertices; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		ff := strings.Split(line, fieldSeparator)
		if len(ff) != 4 {
			return nil, fmt.Errorf("node %d: expected 4 fields, got %d", i, len(ff))
		}
		externalId, err := strconv.ParseInt(ff[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		lat, err := strconv.ParseFloat(ff[2], 64)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		lon, err := strconv.ParseFloat(ff[3], 64)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if id := g.AddNode(externalId, lat, lon); strconv.Itoa(int(id)) != ff[0] {
			return nil, fmt.Errorf("node %d: duplicate or out of order node id %s", i, ff[0])
		}
	}

	for i := 0; i < numEdges; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		if err := g.parseEdge(line); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}

	return g, nil
}

func (g *Graph) parseEdge(line string) error {
	ff := strings.Split(line, fieldSeparator)
	if len(ff) != 6 {
		return fmt.Errorf("expected 6 fields, got %d", len(ff))
	}
	from, err := ParseIndex(ff[0])
	if err != nil {
		return err
	}
	to, err := ParseIndex(ff[1])
	if err != nil {
		return err
	}
	length, err := strconv.ParseFloat(ff[2], 64)
	if err != nil {
		return err
	}
	hwType, err := strconv.ParseUint(ff[4], 10, 8)
	if err != nil {
		return err
	}
	geometry, err := geo.CoordsFromPolyline(ff[5])
	if err != nil {
		return err
	}

	_, err = g.AddEdge(from, to, length, DecodeRawMaxSpeed(ff[3]), pkg.OsmHighwayType(hwType), geometry)
	return err
}

func ParseIndex(s string) (Index, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return INVALID_VERTEX_ID, err
	}
	return Index(v), nil
}
