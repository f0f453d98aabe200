package osmparser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/navigatorx-lite/pkg/graph"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

var ValidRoadType = map[string]bool{
	"motorway":       true,
	"trunk":          true,
	"primary":        true,
	"secondary":      true,
	"tertiary":       true,
	"unclassified":   true,
	"residential":    true,
	"motorway_link":  true,
	"trunk_link":     true,
	"primary_link":   true,
	"secondary_link": true,
	"tertiary_link":  true,
	"living_street":  true,
	"road":           true,
	"service":        true,
}

type OsmParser struct {
	builder *graph.Builder

	countNodes       int
	countWays        int
	countSkippedWays int
}

func NewOSMParser() *OsmParser {
	return &OsmParser{
		builder: graph.NewBuilder(),
	}
}

// Parse read an .osm/.xml or .pbf extract and build the frozen road graph.
func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*graph.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, fmt.Errorf("open map file %s: %w", mapFile, err)
	}
	defer f.Close()

	var scanner osm.Scanner
	switch strings.ToLower(filepath.Ext(mapFile)) {
	case ".pbf":
		// must not be parallel, nodes have to be added before the ways that use them
		scanner = osmpbf.New(ctx, f, 1)
	default:
		scanner = osmxml.New(ctx, f)
	}
	return p.ParseScanner(scanner)
}

// ParseReader build the road graph from osm xml.
func (p *OsmParser) ParseReader(ctx context.Context, r io.Reader) (*graph.Graph, error) {
	return p.ParseScanner(osmxml.New(ctx, r))
}

// ParseScanner single pass over the osm objects: every node becomes a vertex, every accepted
// highway way is committed as a chain of road segments. the graph is finalized at the end.
func (p *OsmParser) ParseScanner(scanner osm.Scanner) (*graph.Graph, error) {
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if err := p.builder.AddVertex(int64(o.ID), o.Lon, o.Lat); err != nil {
				return nil, err
			}
			p.countNodes++
			if p.countNodes%500000 == 0 {
				log.Printf("reading openstreetmap nodes: %d...", p.countNodes)
			}
		case *osm.Way:
			if err := p.processWay(o); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan osm objects: %w", err)
	}

	log.Printf("openstreetmap nodes: %d, road ways: %d, ways skipped (unknown nodes): %d",
		p.countNodes, p.countWays, p.countSkippedWays)

	return p.builder.Finalize()
}

func (p *OsmParser) processWay(way *osm.Way) error {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return nil
	}

	p.builder.BeginWay()
	for _, node := range way.Nodes {
		p.builder.AppendToWay(int64(node.ID))
	}

	err := p.builder.CommitWay()
	switch {
	case errors.Is(err, graph.ErrUnknownVertex):
		// clipped extracts reference nodes outside the bounding box
		p.countSkippedWays++
		return nil
	case err != nil:
		return err
	}

	p.countWays++
	if p.countWays%50000 == 0 {
		log.Printf("processing openstreetmap ways: %d...", p.countWays)
	}
	return nil
}

func acceptOsmWay(way *osm.Way) bool {
	return ValidRoadType[way.Tags.Find("highway")]
}

func (p *OsmParser) SkippedWays() int {
	return p.countSkippedWays
}
