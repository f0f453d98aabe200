package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/lintang-b-s/navigatorx-lite/pkg/config"
	"github.com/lintang-b-s/navigatorx-lite/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-lite/pkg/osmparser"
	"github.com/lintang-b-s/navigatorx-lite/pkg/snap"
)

var (
	mapFile    = flag.String("f", "", "openstreeetmap file (.osm, .xml or .pbf) for the road network graph")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	srcLat     = flag.Float64("srclat", 0, "optional query: source latitude")
	srcLon     = flag.Float64("srclon", 0, "optional query: source longitude")
	dstLat     = flag.Float64("dstlat", 0, "optional query: destination latitude")
	dstLon     = flag.Float64("dstlon", 0, "optional query: destination longitude")
	query      = flag.Bool("query", false, "run one shortest path query after building the graph")
)

// build the road graph of an osm extract and print its stats. with -query also snap & route once,
// handy to check an extract before serving it with cmd/engine.
func main() {
	config.LoadEnv()
	flag.Parse()
	if *mapFile == "" {
		*mapFile = config.GetString("NAVIGATORX_MAP_FILE", "solo_jogja.osm.pbf")
	}

	if *cpuprofile != "" {
		// ./bin/navigatorx-preprocessing -f=solo_jogja.osm.pbf -cpuprofile=navigatorxcpu.prof
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	start := time.Now()
	log.Printf("reading osm file %s", *mapFile)
	osmParser := osmparser.NewOSMParser()
	g, err := osmParser.Parse(context.Background(), *mapFile)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("vertices: %d\nedges: %d\nconnected components: %d\nways skipped: %d\nbuild time: %v\n",
		g.NumVertices(), g.NumEdges(), g.NumComponents(), osmParser.SkippedWays(), time.Since(start))

	if !*query {
		return
	}

	start = time.Now()
	locator := snap.NewRoadSnapper(g)
	log.Printf("r-tree built in %v", time.Since(start))

	rt := routingalgorithm.NewRouteAlgorithm(g, locator)
	start = time.Now()
	path, err := rt.ShortestPath(context.Background(), *srcLon, *srcLat, *dstLon, *dstLat)
	if err != nil {
		log.Printf("shortest path: %v", err)
		return
	}
	fmt.Printf("route: %d vertices, query time: %v\n%v\n", len(path), time.Since(start), path)
}
