package osmparser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/navigatorx-lite/pkg/graph"
	"github.com/stretchr/testify/assert"
)

const sampleOsm = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="0.0" lon="0.0"/>
  <node id="2" lat="0.0" lon="1.0"/>
  <node id="3" lat="1.0" lon="0.0"/>
  <node id="4" lat="1.0" lon="1.0"/>
  <node id="5" lat="2.0" lon="2.0"/>
  <node id="6" lat="3.0" lon="3.0"/>
  <way id="100">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="4"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="101">
    <nd ref="1"/>
    <nd ref="3"/>
    <tag k="highway" v="primary"/>
  </way>
  <way id="102">
    <nd ref="5"/>
    <nd ref="6"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="103">
    <nd ref="4"/>
    <nd ref="999"/>
    <tag k="highway" v="service"/>
  </way>
  <way id="104">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="building" v="yes"/>
  </way>
</osm>`

func TestParseReader(t *testing.T) {
	p := NewOSMParser()
	g, err := p.ParseReader(context.Background(), strings.NewReader(sampleOsm))
	assert.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3, 4}, g.Vertices())
	assert.Equal(t, 3, g.NumEdges())
	assert.Equal(t, 1, p.SkippedWays())

	neighbors, err := g.Neighbors(1)
	assert.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, neighbors)

	// way 103 was skipped as a whole
	neighbors, err = g.Neighbors(4)
	assert.NoError(t, err)
	assert.Equal(t, []int64{2}, neighbors)

	coord, err := g.Coordinates(2)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, coord.Lon)
	assert.Equal(t, 0.0, coord.Lat)
}

func TestParseDuplicateNode(t *testing.T) {
	data := `<osm version="0.6">
  <node id="1" lat="0.0" lon="0.0"/>
  <node id="1" lat="1.0" lon="1.0"/>
</osm>`
	_, err := NewOSMParser().ParseReader(context.Background(), strings.NewReader(data))
	assert.True(t, errors.Is(err, graph.ErrDuplicateVertex))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.osm")
	assert.NoError(t, os.WriteFile(path, []byte(sampleOsm), 0o644))

	g, err := NewOSMParser().Parse(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 4, g.NumVertices())

	_, err = NewOSMParser().Parse(context.Background(), filepath.Join(t.TempDir(), "missing.osm"))
	assert.Error(t, err)
}
