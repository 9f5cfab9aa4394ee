package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	corecfg "github.com/salesdash-lab/salesdash/internal/core/config"
	"github.com/salesdash-lab/salesdash/internal/core/sales"
	"github.com/salesdash-lab/salesdash/internal/core/storage"
	"github.com/salesdash-lab/salesdash/internal/core/storage/postgres"
	"github.com/salesdash-lab/salesdash/internal/ingestion"
	"github.com/salesdash-lab/salesdash/internal/migrations"
	"github.com/salesdash-lab/salesdash/internal/palette"
	"github.com/salesdash-lab/salesdash/internal/projection"
	"github.com/salesdash-lab/salesdash/internal/selection"
	"github.com/salesdash-lab/salesdash/internal/server"
)

func main() {
	configPath := flag.String("config", "salesdash.yaml", "Path to configuration file")
	importPath := flag.String("import", "", "Import a CSV or XLSX file into PostgreSQL and exit")
	replace := flag.Bool("replace", false, "With -import, delete existing rows first")
	flag.Parse()

	_ = godotenv.Load()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.Log.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	slog.Info("Loaded config", "source", cfg.Source.Type, "log_level", level)

	if *importPath != "" {
		if err := runImport(cfg, *importPath, *replace); err != nil {
			slog.Error("Import failed", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownTimeout, err := cfg.Server.ShutdownTimeoutDuration()
	if err != nil {
		slog.Error("Invalid shutdown timeout", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Palette
	pal := palette.Builtin()
	if cfg.Dashboard.PalettePath != "" {
		pal, err = palette.LoadFile(cfg.Dashboard.PalettePath)
		if err != nil {
			slog.Error("Failed to load palette", "error", err)
			os.Exit(1)
		}
	}

	// 3. Initialize Dataset Source
	var (
		source ingestion.Source
		db     *sql.DB
	)
	switch cfg.Source.Type {
	case corecfg.SourcePostgres:
		adapter, err := openPostgres(cfg)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer adapter.Close()
		source = adapter
		db = adapter.DB()
	default:
		source = fileSource(cfg.Source.Type, cfg.Source.Path, cfg.Source.Sheet)
	}

	// 4. Initialize Ingestion (one-time load)
	holder := ingestion.NewHolder()
	loader := ingestion.NewLoader(source, cfg.Columns, holder.Hooks())

	// 5. Initialize Projection (query API)
	projectionSvc := projection.NewService(holder, pal, projection.Options{
		SummaryLimit: cfg.Dashboard.SummaryLimit,
		LabelMaxLen:  cfg.Dashboard.LabelMaxLen,
		CacheSize:    cfg.Dashboard.ViewCacheSize,
	})

	// 6. Initialize Selection Sessions
	sessions := selection.NewHandler(
		selection.NewStore(cfg.Dashboard.MaxSessions),
		projectionSvc,
		selection.Defaults{
			Categories: cfg.Dashboard.DefaultCategories,
			Warehouses: cfg.Dashboard.DefaultWarehouses,
		},
	)

	// 7. Initialize Server
	var health server.HealthChecker
	if db != nil {
		health = db
	}
	srv := server.New(server.Options{
		Addr:            fmtAddr(cfg.Server.Host, cfg.Server.Port),
		Mode:            cfg.Server.Mode,
		MaxBodyBytes:    int64(cfg.Server.MaxBodySizeMB) << 20,
		ShutdownTimeout: shutdownTimeout,
	}, holder, health)
	holder.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)
	sessions.RegisterRoutes(srv.Engine)

	// 8. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The server answers 503 on data routes until the load finishes.
	go func() {
		if _, err := loader.Run(ctx); err != nil {
			slog.Error("Dataset unavailable", "error", err)
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// openPostgres connects, migrates and returns the record adapter.
func openPostgres(cfg *corecfg.Config) (*postgres.Adapter, error) {
	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, err
	}
	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return postgres.NewAdapterWithDB(db, cfg.Columns)
}

// fileSource picks the reader for a data file. An empty kind is inferred
// from the file extension.
func fileSource(kind, path, sheet string) ingestion.Source {
	if kind == "" {
		kind = corecfg.SourceCSV
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			kind = corecfg.SourceXLSX
		}
	}
	if kind == corecfg.SourceXLSX {
		return ingestion.XLSXSource{Path: path, Sheet: sheet}
	}
	return ingestion.CSVSource{Path: path}
}

func runImport(cfg *corecfg.Config, path string, replace bool) error {
	if err := cfg.Database.Validate(); err != nil {
		return err
	}

	adapter, err := openPostgres(cfg)
	if err != nil {
		return err
	}
	defer adapter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := fileSource("", path, cfg.Source.Sheet)
	records, err := src.Records(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", src.Name(), err)
	}

	n, err := importInto(ctx, adapter, records, replace)
	if err != nil {
		return err
	}
	slog.Info("Import complete", "source", src.Name(), "records", n, "replace", replace)
	return nil
}

func importInto(ctx context.Context, store storage.RecordStore, records []sales.RawRecord, replace bool) (int64, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("no records to import")
	}
	return store.ImportRecords(ctx, records, replace)
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
