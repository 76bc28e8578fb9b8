package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	httpadapter "skytraffic/internal/adapter/http"
	metricsinmem "skytraffic/internal/adapter/metrics/inmemory"
	gormrepo "skytraffic/internal/adapter/repo/gorm"
	memoryrepo "skytraffic/internal/adapter/repo/memory"
	"skytraffic/internal/app/archive"
	"skytraffic/internal/app/dispatch"
	"skytraffic/internal/app/exchange"
	"skytraffic/internal/app/ports"
	"skytraffic/internal/app/simulation"
	"skytraffic/internal/app/traffic"
	"skytraffic/internal/domain/airspace"
	"skytraffic/migrations"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"
)

const defaultListenAddr = "localhost:3000"

type config struct {
	ListenAddr      string
	Simulation      simulation.Config
	SnapshotTimeout time.Duration
	Workers         int
	DSN             string
	MigrationsDir   string
	LogLevel        string
	Profile         string
	MetricsEvery    time.Duration
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("skytraffic: %v", err)
	}
}

// run owns every deferred cleanup so a failing startup still stops the
// profiler and closes the archive database before main exits.
func run() error {
	cfg := loadConfig()
	hlog.SetLevel(logLevel(cfg.LogLevel))
	if p := startProfile(cfg.Profile); p != nil {
		defer p.Stop()
	}

	metrics := metricsinmem.NewRecorder()
	ex := exchange.New(exchange.Config{Timeout: cfg.SnapshotTimeout})

	var archiver *archive.Archiver
	deps := simulation.Deps{Exchange: ex, Metrics: metrics}
	if cfg.Simulation.ArchiveEvery > 0 {
		repo, closeRepo, err := buildTrackRepo(cfg)
		if err != nil {
			return err
		}
		defer closeRepo()
		archiver = archive.New(repo, metrics, archive.Config{})
		deps.Archive = archiver
	}

	engine, err := simulation.New(cfg.Simulation, deps)
	if err != nil {
		return fmt.Errorf("build simulation: %w", err)
	}

	h := httpadapter.Handler{
		TrafficUC:  traffic.UseCase{Snapshots: ex, Metrics: metrics},
		Dispatcher: dispatch.New(dispatch.Config{Name: "traffic", Workers: cfg.Workers}),
		Metrics:    metrics,
	}
	s := server.New(
		server.WithHostPorts(cfg.ListenAddr),
		server.WithExitWaitTime(2*time.Second),
		server.WithDisablePrintRoute(true),
	)
	h.RegisterRoutes(s)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return engine.Run(gctx) })
	if archiver != nil {
		g.Go(func() error { return archiver.Run(gctx) })
	}
	g.Go(func() error {
		reportMetrics(gctx, metrics, cfg.MetricsEvery)
		return nil
	})
	g.Go(func() error {
		hlog.Infof("skytraffic listening on %s (%d workers, snapshot timeout %s)", cfg.ListenAddr, cfg.Workers, cfg.SnapshotTimeout)
		if err := s.Run(); err != nil && gctx.Err() == nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	hlog.Infof("skytraffic stopped: %+v", metrics.Snapshot())
	return err
}

func loadConfig() config {
	sim := simulation.DefaultConfig()
	sim.Grid = airspace.Grid{
		Width:  intEnv("AIRSPACE_GRID_WIDTH", sim.Grid.Width),
		Height: intEnv("AIRSPACE_GRID_HEIGHT", sim.Grid.Height),
	}
	sim.MinFlights = intEnv("AIRSPACE_MIN_FLIGHTS", sim.MinFlights)
	sim.MaxFlights = intEnv("AIRSPACE_MAX_FLIGHTS", sim.MaxFlights)
	sim.TickInterval = time.Duration(intEnv("AIRSPACE_TICK_MS", int(sim.TickInterval.Milliseconds()))) * time.Millisecond
	sim.TraceMap = boolEnv("AIRSPACE_TRACE_MAP", false)
	if seed := strings.TrimSpace(os.Getenv("AIRSPACE_SEED")); seed != "" {
		if n, err := strconv.ParseUint(seed, 10, 64); err == nil {
			sim.Rand = rand.New(rand.NewPCG(n, n))
		}
	}

	dsn := strings.TrimSpace(os.Getenv("AIRSPACE_DB_DSN"))
	archiveDefault := 0
	if dsn != "" {
		archiveDefault = 10
	}
	sim.ArchiveEvery = intEnv("AIRSPACE_ARCHIVE_EVERY", archiveDefault)

	return config{
		ListenAddr:      stringEnv("AIRSPACE_LISTEN_ADDR", defaultListenAddr),
		Simulation:      sim,
		SnapshotTimeout: time.Duration(intEnv("AIRSPACE_SNAPSHOT_TIMEOUT_MS", int(exchange.DefaultTimeout.Milliseconds()))) * time.Millisecond,
		Workers:         intEnv("AIRSPACE_WORKERS", dispatch.DefaultWorkers),
		DSN:             dsn,
		MigrationsDir:   strings.TrimSpace(os.Getenv("AIRSPACE_MIGRATIONS_DIR")),
		LogLevel:        stringEnv("AIRSPACE_LOG_LEVEL", "info"),
		Profile:         strings.TrimSpace(os.Getenv("AIRSPACE_PROFILE")),
		MetricsEvery:    time.Duration(intEnv("AIRSPACE_METRICS_EVERY_S", 60)) * time.Second,
	}
}

func buildTrackRepo(cfg config) (ports.TrackRepository, func(), error) {
	if cfg.DSN == "" {
		hlog.Infof("archive: no AIRSPACE_DB_DSN, keeping recent snapshots in memory")
		return memoryrepo.NewTrackRepo(memoryrepo.NewStore(memoryrepo.DefaultCapacity)), func() {}, nil
	}
	db, err := gormrepo.OpenPostgres(cfg.DSN, gormrepo.Options{MaxOpenConns: 4, ConnMaxLifetime: 30 * time.Minute})
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := gormrepo.Close(db); err != nil {
			hlog.Warnf("archive: close postgres: %v", err)
		}
	}
	applied, err := gormrepo.ApplyMigrations(context.Background(), db, migrationsFS(cfg.MigrationsDir))
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}
	hlog.Infof("archive: postgres ready, %d migrations applied", applied)
	return gormrepo.NewTrackRepo(db), closeDB, nil
}

func migrationsFS(dir string) fs.FS {
	if dir == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

func reportMetrics(ctx context.Context, metrics *metricsinmem.Recorder, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hlog.Infof("metrics: %+v", metrics.Snapshot())
		}
	}
}

func startProfile(mode string) interface{ Stop() } {
	switch strings.ToLower(mode) {
	case "":
		return nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		hlog.Warnf("unknown AIRSPACE_PROFILE %q, profiling disabled", mode)
		return nil
	}
}

func logLevel(raw string) hlog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return hlog.LevelDebug
	case "warn":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	default:
		return hlog.LevelInfo
	}
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
