package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Faultbox/solarfarm/internal/logger"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver is returned by Open for anything but sqlite or postgres.
var ErrUnknownDriver = errors.New("unknown telemetry driver")

// Store persists samples through gorm.
type Store struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

// Summary aggregates every stored sample.
type Summary struct {
	Samples     int64
	AvgPowerKW  float64
	PeakPowerKW float64
	MinBattery  float64
	MaxBattery  float64
}

// Open connects to the database and migrates the sample table. An empty
// sqlite DSN opens a private in-memory database.
func Open(driver, dsn string) (*Store, error) {
	gcfg := &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = ":memory:"
		}
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql interface: %w", err)
	}
	if driver == DriverSQLite {
		// Every pooled connection to :memory: would get its own database.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(4)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := db.AutoMigrate(&Sample{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate samples: %w", err)
	}

	logger.Info("telemetry store ready", zap.String("driver", driver))
	return &Store{db: db, sqlDB: sqlDB}, nil
}

// Record stores one sample. The ID is assigned by the database.
func (s *Store) Record(ctx context.Context, sample Sample) error {
	sample.ID = 0
	return s.db.WithContext(ctx).Create(&sample).Error
}

// RecordBatch stores samples in batches of CreateBatchSize.
func (s *Store) RecordBatch(ctx context.Context, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}
	for i := range samples {
		samples[i].ID = 0
	}
	return s.db.WithContext(ctx).Create(&samples).Error
}

// Recent returns up to n samples, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Sample, error) {
	var out []Sample
	err := s.db.WithContext(ctx).
		Order("recorded_at DESC").
		Order("id DESC").
		Limit(n).
		Find(&out).Error
	return out, err
}

// Summarize aggregates every stored sample.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.WithContext(ctx).
		Model(&Sample{}).
		Select(`COUNT(*) AS samples,
			COALESCE(AVG(power_kw), 0) AS avg_power_kw,
			COALESCE(MAX(power_kw), 0) AS peak_power_kw,
			COALESCE(MIN(battery_kwh), 0) AS min_battery,
			COALESCE(MAX(battery_kwh), 0) AS max_battery`).
		Scan(&sum).Error
	return sum, err
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.sqlDB.Close()
}
