package config

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"seapass-backend/models"

	mysqldriver "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq" // postgres driver
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SeedDatabase inserts the hotel catalogue when the table is empty.
func SeedDatabase(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Hotel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Debug("hotels already seeded", "count", count)
		return nil
	}

	hotels := []models.Hotel{
		{Name: "Copacabana Palace", City: "Rio de Janeiro", Price: 2500, Rating: 4.9},
		{Name: "Fasano São Paulo", City: "São Paulo", Price: 1800, Rating: 4.8},
		{Name: "Pestana Bahia Lodge", City: "Salvador", Price: 950, Rating: 4.5},
		{Name: "Hotel Ponta Negra", City: "Manaus", Price: 620, Rating: 4.2},
	}
	if err := db.Create(&hotels).Error; err != nil {
		return fmt.Errorf("seed hotels: %w", err)
	}
	slog.Info("hotels seeded", "count", len(hotels))
	return nil
}

func mysqlDSNFromURL(raw string, timeout time.Duration) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	pass, _ := u.User.Password()

	cfg := mysqldriver.NewConfig()
	cfg.User = u.User.Username()
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(u.Hostname(), port)
	cfg.DBName = dbName
	cfg.Timeout = timeout
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	cfg.Params = map[string]string{}
	for k := range q {
		switch k {
		case "parseTime", "loc":
			// pinned: DATE columns must round-trip without a zone shift
		default:
			cfg.Params[k] = q.Get(k)
		}
	}
	return cfg.FormatDSN(), nil
}

// DSN builds the driver-specific connection string.
func (c DBConfig) DSN() (string, error) {
	switch c.Driver {
	case DriverPostgres:
		if c.URL != "" {
			return c.URL, nil
		}
		return c.postgresURL(), nil

	case DriverMySQL:
		if c.URL != "" {
			if strings.HasPrefix(c.URL, "mysql://") {
				return mysqlDSNFromURL(c.URL, c.ConnectTimeout)
			}
			return c.URL, nil
		}
		cfg := mysqldriver.NewConfig()
		cfg.User = c.User
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.Host, c.Port)
		cfg.DBName = c.Name
		cfg.Timeout = c.ConnectTimeout
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		cfg.Params = map[string]string{"charset": "utf8mb4"}
		return cfg.FormatDSN(), nil
	}
	return "", fmt.Errorf("unsupported driver %q", c.Driver)
}

// postgresURL renders the discrete DB_* settings as a postgres:// URL so
// empty or space-bearing values survive lib/pq's parser.
func (c DBConfig) postgresURL() string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}

	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if secs := int(c.ConnectTimeout.Seconds()); secs > 0 {
		q.Set("connect_timeout", strconv.Itoa(secs))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func gormLogLevel(s string) logger.LogLevel {
	switch s {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func openDialector(c DBConfig, dsn string) (gorm.Dialector, error) {
	if c.Driver == DriverPostgres {
		// lib/pq owns the pool; gorm only speaks the dialect on top of it
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		return postgres.New(postgres.Config{Conn: sqlDB}), nil
	}
	return mysql.Open(dsn), nil
}

// ConnectDatabase opens the process-wide pool, verifies it answers and
// prepares the schema. The caller owns the returned handle and must close
// its *sql.DB on shutdown.
func ConnectDatabase(ctx context.Context, c DBConfig) (*gorm.DB, error) {
	dsn, err := c.DSN()
	if err != nil {
		return nil, err
	}

	dialector, err := openDialector(c, dsn)
	if err != nil {
		return nil, &models.ConnectionError{Op: "open", Err: err}
	}

	newLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(c.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, &models.ConnectionError{Op: "open", Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &models.ConnectionError{Op: "open", Err: err}
	}
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, c.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, &models.ConnectionError{Op: "ping", Err: err}
	}

	if c.AutoMigrate {
		// parent -> child
		if err := db.AutoMigrate(
			&models.User{},
			&models.Hotel{},
			&models.Reservation{},
		); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	if c.Seed {
		if err := SeedDatabase(db); err != nil {
			slog.Warn("seeding failed", "error", err)
		}
	}

	return db, nil
}
