package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/lintang-b-s/navigatorx-lite/pkg/config"
	"github.com/lintang-b-s/navigatorx-lite/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-lite/pkg/kv"
	"github.com/lintang-b-s/navigatorx-lite/pkg/osmparser"
	"github.com/lintang-b-s/navigatorx-lite/pkg/server/rest"
	"github.com/lintang-b-s/navigatorx-lite/pkg/server/rest/service"
	"github.com/lintang-b-s/navigatorx-lite/pkg/snap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 10 * time.Second

var (
	listenAddr  *string
	mapFile     *string
	locatorType *string
	useFibHeap  *bool
	useCache    *bool
	cacheTTL    *time.Duration
	memprofile  *string
)

// parseFlags flags default to the NAVIGATORX_* environment variables (.env is loaded first).
func parseFlags() {
	config.LoadEnv()

	listenAddr = flag.String("listenaddr", config.GetString("NAVIGATORX_LISTEN_ADDR", ":5000"), "server listen address")
	mapFile = flag.String("f", config.GetString("NAVIGATORX_MAP_FILE", "solo_jogja.osm.pbf"), "openstreeetmap file (.osm, .xml or .pbf) for the road network graph")
	locatorType = flag.String("locator", config.GetString("NAVIGATORX_LOCATOR", "rtree"), "nearest vertex locator: rtree or linear")
	useFibHeap = flag.Bool("fibheap", config.GetBool("NAVIGATORX_FIBONACCI_HEAP", false), "use fibonacci heap as a* frontier")
	useCache = flag.Bool("cache", config.GetBool("NAVIGATORX_ROUTE_CACHE", true), "cache shortest path results in an in-memory badger db")
	cacheTTL = flag.Duration("cachettl", config.GetDuration("NAVIGATORX_ROUTE_CACHE_TTL", 30*time.Minute), "route cache ttl")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")

	flag.Parse()
}

func main() {
	parseFlags()

	log.Printf("reading osm file %s", *mapFile)
	osmParser := osmparser.NewOSMParser()
	g, err := osmParser.Parse(context.Background(), *mapFile)
	if err != nil {
		log.Fatal(err)
	}
	recordMemProfile(memprofile, "load_graph")

	var locator routingalgorithm.Locator
	switch *locatorType {
	case "linear":
		locator = snap.NewLinearLocator(g)
	default:
		locator = snap.NewRoadSnapper(g)
	}

	opts := []routingalgorithm.Option{}
	if *useFibHeap {
		opts = append(opts, routingalgorithm.WithFibonacciHeap())
	}
	routingAlgorithm := routingalgorithm.NewRouteAlgorithm(g, locator, opts...)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := rest.NewMetrics(reg)

	var routeCache service.RouteCache
	if *useCache {
		db, err := kv.OpenInMemory()
		if err != nil {
			log.Fatal(err)
		}
		cache := kv.NewRouteCache(db, *cacheTTL)
		defer cache.Close()
		routeCache = cache
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	navigatorSvc := service.NewNavigationService(g, locator, routingAlgorithm, routeCache, m)
	recordMemProfile(memprofile, "service_init")

	rest.NavigatorRouter(r, navigatorSvc)

	fmt.Printf("\nA* shortest path ready!! %d vertices, %d edges", g.NumVertices(), g.NumEdges())
	fmt.Printf("\nserver started at %s\n", *listenAddr)

	srv := &http.Server{Addr: *listenAddr, Handler: r}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("error shutting down server: %v", err)
	}
}

func recordMemProfile(memprofile *string, name string) {
	if *memprofile != "" {
		path := strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
		f, err := os.Create(path)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
