package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/doeshing/healthcheck/internal/domain"
	"github.com/doeshing/healthcheck/internal/pkg/dburl"
	"github.com/doeshing/healthcheck/internal/ports"
)

const listUsersQuery = `SELECT id, email, full_name FROM users ORDER BY id`

// Store opens application databases by URL. SQLite files are resolved
// relative to the project root; Postgres goes through pgx.
type Store struct {
	root   string
	dialer net.Dialer
}

// NewStore creates a store rooted at the project directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Ping implements ports.DatabaseProbe. Schemes without a registered driver
// fall back to a TCP reachability check.
func (s *Store) Ping(ctx context.Context, rawURL string) error {
	info, err := dburl.Parse(rawURL)
	if err != nil {
		return err
	}
	if info.Driver == "" {
		addr, err := info.Address()
		if err != nil {
			return err
		}
		conn, err := s.dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return scrub(rawURL, err)
		}
		return conn.Close()
	}

	db, err := s.open(info)
	if err != nil {
		return scrub(rawURL, err)
	}
	defer db.Close()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return scrub(rawURL, err)
	}
	return nil
}

// ListUsers implements ports.UserLister.
func (s *Store) ListUsers(ctx context.Context, rawURL string) ([]domain.User, error) {
	info, err := dburl.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if info.Driver == "" {
		return nil, fmt.Errorf("no driver for %s URLs", info.Scheme)
	}
	db, err := s.open(info)
	if err != nil {
		return nil, scrub(rawURL, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, listUsersQuery)
	if err != nil {
		return nil, scrub(rawURL, err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var id string
		var email, fullName sql.NullString
		if err := rows.Scan(&id, &email, &fullName); err != nil {
			return nil, err
		}
		users = append(users, domain.User{ID: id, Email: email.String, FullName: fullName.String})
	}
	return users, rows.Err()
}

func (s *Store) open(info dburl.Info) (*sql.DB, error) {
	dsn := info.DSN
	if info.Driver == dburl.DriverSQLite && dsn != ":memory:" {
		if !filepath.IsAbs(dsn) {
			dsn = filepath.Join(s.root, dsn)
		}
		// opening a missing file would create an empty database
		if _, err := os.Stat(dsn); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("sqlite database %s does not exist", dsn)
			}
			return nil, err
		}
	}
	return sql.Open(info.Driver, dsn)
}

// scrub removes the URL password from driver errors.
func scrub(rawURL string, err error) error {
	u, parseErr := url.Parse(rawURL)
	if parseErr != nil || u.User == nil {
		return err
	}
	pw, ok := u.User.Password()
	if !ok || pw == "" || !strings.Contains(err.Error(), pw) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), pw, "****"))
}

var (
	_ ports.DatabaseProbe = (*Store)(nil)
	_ ports.UserLister    = (*Store)(nil)
)
