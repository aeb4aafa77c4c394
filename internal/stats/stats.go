package stats

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/alexivanou/geoweather/internal/config"
	"github.com/alexivanou/geoweather/internal/model"
	"github.com/jmoiron/sqlx"
)

type Stats struct {
	Timestamp time.Time         `json:"timestamp"`
	Memory    MemoryStats       `json:"memory"`
	Runtime   RuntimeStats      `json:"runtime"`
	Lookups   model.LookupStats `json:"lookups"`
	Sessions  int               `json:"active_sessions"`
	Database  *DatabaseStats    `json:"gazetteer,omitempty"`
}

type MemoryStats struct {
	Alloc        uint64 `json:"alloc"`
	TotalAlloc   uint64 `json:"total_alloc"`
	Sys          uint64 `json:"sys"`
	NumGC        uint32 `json:"num_gc"`
	HeapAlloc    uint64 `json:"heap_alloc"`
	HeapSys      uint64 `json:"heap_sys"`
	HeapInuse    uint64 `json:"heap_inuse"`
	HeapReleased uint64 `json:"heap_released"`
}

type DatabaseStats struct {
	Type         string      `json:"type"`
	TotalRecords int64       `json:"total_records"`
	SizeBytes    int64       `json:"size_bytes"`
	TableStats   []TableStat `json:"table_stats"`
}

type TableStat struct {
	Name      string `json:"name"`
	RowCount  int64  `json:"row_count"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

type RuntimeStats struct {
	NumGoroutines int   `json:"num_goroutines"`
	NumCPU        int   `json:"num_cpu"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// LookupSource reports search counters
type LookupSource interface {
	LookupStats() model.LookupStats
}

// SessionCounter reports the number of live display sessions
type SessionCounter interface {
	Len() int
}

type Collector struct {
	db         *sqlx.DB
	config     config.DBConfig
	lookups    LookupSource
	sessions   SessionCounter
	startTime  time.Time
	cachedMem  *MemoryStats
	cacheTime  time.Time
	cacheMutex sync.RWMutex
}

var (
	memStatsCacheDuration = 5 * time.Second
	gazetteerTables       = []string{"countries", "regions", "cities"}
)

// NewCollector creates a collector. db may be nil when the gazetteer is
// disabled; sessions may be nil outside the HTTP server.
func NewCollector(db *sqlx.DB, cfg config.DBConfig, lookups LookupSource, sessions SessionCounter) *Collector {
	return &Collector{
		db:        db,
		config:    cfg,
		lookups:   lookups,
		sessions:  sessions,
		startTime: time.Now(),
	}
}

func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		Timestamp: time.Now(),
	}

	stats.Memory = c.collectMemoryStats()
	stats.Runtime = c.collectRuntimeStats()

	if c.lookups != nil {
		stats.Lookups = c.lookups.LookupStats()
	}
	if c.sessions != nil {
		stats.Sessions = c.sessions.Len()
	}

	if c.db != nil {
		dbStats, err := c.collectDatabaseStats(ctx)
		if err != nil {
			return nil, err
		}
		stats.Database = dbStats
	}

	return stats, nil
}

func (c *Collector) collectMemoryStats() MemoryStats {
	c.cacheMutex.RLock()
	if c.cachedMem != nil && time.Since(c.cacheTime) < memStatsCacheDuration {
		mem := *c.cachedMem
		c.cacheMutex.RUnlock()
		return mem
	}
	c.cacheMutex.RUnlock()

	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	mem := MemoryStats{
		Alloc:        m.Alloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		HeapInuse:    m.HeapInuse,
		HeapReleased: m.HeapReleased,
	}

	c.cachedMem = &mem
	c.cacheTime = time.Now()

	return mem
}

func (c *Collector) collectDatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	stats := &DatabaseStats{
		Type:       string(c.config.Type),
		TableStats: []TableStat{},
	}

	if totalSize, err := c.getDatabaseSize(ctx); err == nil {
		stats.SizeBytes = totalSize
	}

	for _, table := range gazetteerTables {
		stat, err := c.getTableStat(ctx, table)
		if err != nil {
			// table not migrated yet
			continue
		}
		stats.TableStats = append(stats.TableStats, *stat)
		stats.TotalRecords += stat.RowCount
	}

	return stats, nil
}

func (c *Collector) getDatabaseSize(ctx context.Context) (int64, error) {
	var size int64
	var err error

	if c.config.Type == config.DBTypePostgreSQL {
		err = c.db.GetContext(ctx, &size, "SELECT pg_database_size(current_database())")
	} else {
		err = c.db.GetContext(ctx, &size, "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
	}

	if err != nil {
		return 0, err
	}
	return size, nil
}

func (c *Collector) getTableStat(ctx context.Context, tableName string) (*TableStat, error) {
	stat := &TableStat{Name: tableName}

	var count int64
	if err := c.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+tableName); err != nil {
		return nil, err
	}
	stat.RowCount = count

	if c.config.Type == config.DBTypePostgreSQL {
		var size int64
		err := c.db.GetContext(ctx, &size, `SELECT COALESCE(pg_total_relation_size($1::regclass), 0)`, tableName)
		if err == nil {
			stat.SizeBytes = size
		}
	} else {
		// dbstat is only present when SQLite was built with it
		var size int64
		_ = c.db.GetContext(ctx, &size, `SELECT COALESCE(SUM(pgsize), 0) FROM dbstat WHERE name = ?`, tableName)
		stat.SizeBytes = size
	}

	return stat, nil
}

func (c *Collector) collectRuntimeStats() RuntimeStats {
	uptime := time.Since(c.startTime).Seconds()
	return RuntimeStats{
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		UptimeSeconds: int64(uptime),
	}
}
