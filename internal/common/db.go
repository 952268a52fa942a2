package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// DBConfig holds everything needed to open the storage connection. The
// connection parameters come from the parameter store, the pool settings from
// the local configuration.
type DBConfig struct {
	Driver   Driver
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// DB is the shared storage handle. It is opened once at startup and passed to
// every service; the embedded *sql.DB is safe for concurrent use.
type DB struct {
	*sql.DB
	driver Driver
}

func NewDB(cfg DBConfig) (*DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := connectDB(string(cfg.Driver), dsn, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.MaxIdleTime)
	if err != nil {
		return nil, err
	}

	return &DB{DB: db, driver: cfg.Driver}, nil
}

// WrapDB attaches a dialect to an already opened handle.
func WrapDB(db *sql.DB, driver Driver) *DB {
	return &DB{DB: db, driver: driver}
}

func buildDSN(cfg DBConfig) (string, error) {
	switch cfg.Driver {
	case DriverPostgres:
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}

		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     net.JoinHostPort(cfg.Host, cfg.Port),
			Path:     cfg.Name,
			RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
		}
		return u.String(), nil
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
		mc.DBName = cfg.Name
		mc.ParseTime = true
		mc.Loc = time.UTC
		// report matched rows, not changed rows, so a no-op UPDATE still counts
		mc.ClientFoundRows = true
		return mc.FormatDSN(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// connectDB connects to the database and returns the connection
func connectDB(driver, dsn string, maxOpenConns int, maxIdleConns int, maxIdleTime time.Duration) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// CloseDB closes the database connection
func CloseDB(db *DB) error {
	return db.Close()
}

func (db *DB) Driver() Driver {
	return db.driver
}

// Rebind rewrites ? placeholders into the driver's bind syntax. Placeholders
// inside single-quoted literals are left alone.
func (db *DB) Rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// Quote quotes an identifier. Needed for "user", which is reserved in both dialects.
func (db *DB) Quote(ident string) string {
	if db.driver == DriverMySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// InsertID runs an INSERT written with ? placeholders and returns the id the
// database generated for column.
func (db *DB) InsertID(ctx context.Context, query, column string, args ...any) (int, error) {
	if db.driver == DriverPostgres {
		var id int
		err := db.QueryRowContext(ctx, db.Rebind(query)+" RETURNING "+column, args...).Scan(&id)
		if err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(id), nil
}

// UniqueViolation reports whether err is a unique constraint violation and,
// if so, the name of the violated constraint.
func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" {
			return pqErr.Constraint, true
		}
		return "", false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number == 1062 {
			return mysqlKeyName(myErr.Message), true
		}
	}

	return "", false
}

// mysqlKeyName extracts the key from "Duplicate entry 'x' for key 'blog.blog_blog_name_key'".
// MySQL 8 prefixes the key with the table name, older servers do not.
func mysqlKeyName(msg string) string {
	const marker = "for key '"
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return ""
	}

	key := strings.TrimSuffix(msg[i+len(marker):], "'")
	if j := strings.LastIndex(key, "."); j >= 0 {
		key = key[j+1:]
	}

	return key
}
