package sqlstorage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/lomoval/otus-golang/pocketcal/internal/kv"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	log "github.com/sirupsen/logrus"
)

var ErrConnectionFailed = errors.New("failed to connect")

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

const schema = "CREATE TABLE IF NOT EXISTS kv_items (" +
	"item_key TEXT PRIMARY KEY, " +
	"item_value TEXT NOT NULL)"

type Config struct {
	Driver string
	// DSN is used as is when set, otherwise a postgres DSN is built from the fields below.
	DSN      string
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

type Storage struct {
	driver string
	dsn    string
	db     *sqlx.DB
}

func New(config Config) *Storage {
	driver := config.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	dsn := config.DSN
	if dsn == "" && driver == DriverPostgres {
		dsn = fmt.Sprintf(
			"sslmode=disable host=%s port=%d dbname=%s user=%s password=%s",
			config.Host, config.Port, config.Database, config.Username, config.Password)
	}
	return &Storage{driver: driver, dsn: dsn}
}

func (s *Storage) Connect(ctx context.Context) error {
	db, err := sqlx.ConnectContext(ctx, s.driver, s.dsn)
	if err != nil {
		log.Errorf("failed to connect: %v", err)
		return ErrConnectionFailed
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to prepare schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *Storage) Close(_ context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if s.db == nil {
		return "", false, kv.ErrNotConnected
	}
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind("SELECT item_value FROM kv_items WHERE item_key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value string) error {
	if s.db == nil {
		return kv.ErrNotConnected
	}
	_, err := s.db.ExecContext(
		ctx,
		s.db.Rebind("INSERT INTO kv_items(item_key, item_value) VALUES(?, ?) "+
			"ON CONFLICT(item_key) DO UPDATE SET item_value = excluded.item_value"),
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}
