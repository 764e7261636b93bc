package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

// WriteGraph serializes the graph into a bzip2-compressed text file:
// a header line, one line per vertex, then one block per arc with its
// parallel variants and their road names.
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
	defer bz.Close()

	w := bufio.NewWriter(bz)
	defer w.Flush()

	numArcs := 0
	for _, arcs := range g.outArcs {
		numArcs += len(arcs)
	}

	fmt.Fprintf(w, "%d %d %d\n", len(g.vertices), g.numEdges, numArcs)

	for _, v := range g.vertices {
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)
		fmt.Fprintf(w, "%s %s\n", latF, lonF)
	}

	for u, arcs := range g.outArcs {
		for _, arc := range arcs {
			fmt.Fprintf(w, "%d %d %d\n", u, arc.neighbor, len(arc.variants))
			for _, variant := range arc.variants {
				lengthF := strconv.FormatFloat(variant.length, 'f', -1, 64)
				timeF := strconv.FormatFloat(variant.travelTime, 'f', -1, 64)
				fmt.Fprintf(w, "%s %s %d\n", lengthF, timeF, len(variant.names))
				for _, name := range variant.names {
					fmt.Fprintf(w, "%s\n", name)
				}
			}
		}
	}

	return nil
}

// ReadGraph loads a graph previously written by WriteGraph.
func ReadGraph(filename string) (*Graph, error) {
	f, err := os.OpenFile(filename, os.O_RDONLY, 0644)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := readLine(br)
	if err != nil {
		return nil, err
	}
	header := strings.Fields(line)
	if len(header) != 3 {
		return nil, fmt.Errorf("invalid graph header: %q", line)
	}

	numVertices, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, err
	}
	numArcs, err := strconv.Atoi(header[2])
	if err != nil {
		return nil, err
	}

	g := NewGraphWithSize(numVertices)

	for i := 0; i < numVertices; i++ {
		line, err = readLine(br)
		if err != nil {
			return nil, err
		}
		ff := strings.Fields(line)
		if len(ff) != 2 {
			return nil, fmt.Errorf("invalid vertex line: %q", line)
		}
		lat, err := strconv.ParseFloat(ff[0], 64)
		if err != nil {
			return nil, err
		}
		lon, err := strconv.ParseFloat(ff[1], 64)
		if err != nil {
			return nil, err
		}
		g.AddVertex(lat, lon)
	}

	for i := 0; i < numArcs; i++ {
		line, err = readLine(br)
		if err != nil {
			return nil, err
		}
		ff := strings.Fields(line)
		if len(ff) != 3 {
			return nil, fmt.Errorf("invalid arc line: %q", line)
		}
		tail, err := strconv.Atoi(ff[0])
		if err != nil {
			return nil, err
		}
		head, err := strconv.Atoi(ff[1])
		if err != nil {
			return nil, err
		}
		numVariants, err := strconv.Atoi(ff[2])
		if err != nil {
			return nil, err
		}

		for v := 0; v < numVariants; v++ {
			line, err = readLine(br)
			if err != nil {
				return nil, err
			}
			vf := strings.Fields(line)
			if len(vf) != 3 {
				return nil, fmt.Errorf("invalid variant line: %q", line)
			}
			length, err := strconv.ParseFloat(vf[0], 64)
			if err != nil {
				return nil, err
			}
			travelTime, err := strconv.ParseFloat(vf[1], 64)
			if err != nil {
				return nil, err
			}
			numNames, err := strconv.Atoi(vf[2])
			if err != nil {
				return nil, err
			}
			names := make([]string, 0, numNames)
			for n := 0; n < numNames; n++ {
				name, err := readLine(br)
				if err != nil {
					return nil, err
				}
				names = append(names, name)
			}
			g.AddEdge(Index(tail), Index(head), NewEdgeVariant(length, travelTime, names...))
		}
	}

	return g, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
		} else {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
