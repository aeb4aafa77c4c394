package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/alexivanou/geoweather/internal/config"
	"github.com/alexivanou/geoweather/internal/database"
	"github.com/alexivanou/geoweather/internal/stats"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

func main() {
	server := flag.String("url", "", "Base URL of a running server; when empty the gazetteer database is inspected directly")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	var statistics *stats.Stats
	if *server != "" {
		statistics, err = fetchRemote(ctx, *server, cfg.Upstream.Timeout)
	} else {
		statistics, err = collectLocal(ctx, cfg, logger)
	}
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	outputFormat := os.Getenv("OUTPUT_FORMAT")
	if outputFormat == "" {
		outputFormat = "json"
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(statistics); err != nil {
			logger.Fatal("Failed to encode statistics", zap.Error(err))
		}
	case "text", "human":
		printHumanReadable(statistics)
	default:
		logger.Fatal("Unknown output format", zap.String("format", outputFormat))
	}
}

func collectLocal(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stats.Stats, error) {
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	logger.Info("Collecting statistics...", zap.String("db_type", string(cfg.DB.Type)))
	return stats.NewCollector(db, cfg.DB, nil, nil).Collect(ctx)
}

func fetchRemote(ctx context.Context, baseURL string, timeout time.Duration) (*stats.Stats, error) {
	var out stats.Stats
	resp, err := resty.New().
		SetTimeout(timeout).
		R().
		SetContext(ctx).
		SetResult(&out).
		Get(strings.TrimRight(baseURL, "/") + "/api/v1/stats")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stats endpoint returned %s", resp.Status())
	}
	return &out, nil
}

func printHumanReadable(s *stats.Stats) {
	fmt.Println("=== Application Statistics ===")
	fmt.Printf("Timestamp: %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println()

	fmt.Println("--- Memory Statistics ---")
	fmt.Printf("Allocated:        %s\n", formatBytes(s.Memory.Alloc))
	fmt.Printf("Total Allocated:  %s\n", formatBytes(s.Memory.TotalAlloc))
	fmt.Println()

	fmt.Println("--- Lookups ---")
	fmt.Printf("Total:           %d\n", s.Lookups.Total)
	fmt.Printf("Displayed:       %d\n", s.Lookups.Displayed)
	fmt.Printf("Not found:       %d\n", s.Lookups.NotFound)
	fmt.Printf("Failed:          %d\n", s.Lookups.Failed)
	fmt.Printf("Superseded:      %d\n", s.Lookups.Superseded)
	fmt.Printf("Active sessions: %d\n", s.Sessions)
	fmt.Println()

	if s.Database != nil {
		fmt.Println("--- Gazetteer ---")
		fmt.Printf("Type:            %s\n", s.Database.Type)
		fmt.Printf("Total Records:   %d\n", s.Database.TotalRecords)
		fmt.Println()
		fmt.Println("Table Statistics:")
		for _, ts := range s.Database.TableStats {
			fmt.Printf("  %-25s: %10d rows", ts.Name, ts.RowCount)
			if ts.SizeBytes > 0 {
				fmt.Printf(" (%s)", formatBytes(uint64(ts.SizeBytes)))
			}
			fmt.Println()
		}
		fmt.Println()
	}

	fmt.Println("--- Runtime Statistics ---")
	fmt.Printf("Goroutines:      %d\n", s.Runtime.NumGoroutines)
	fmt.Printf("Uptime:          %ds\n", s.Runtime.UptimeSeconds)
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
