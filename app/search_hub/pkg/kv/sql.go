package kv

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_entries (
	entry_key   TEXT PRIMARY KEY,
	entry_value TEXT NOT NULL
)`

// SQL 基于 database/sql 的 backend，支持 sqlite (modernc) 与 postgres (lib/pq)
type SQL struct {
	db      *sql.DB
	dialect string
}

var _ Backend = (*SQL)(nil)

// OpenSQL 打开数据库并确保表存在
func OpenSQL(driver, dsn string) (*SQL, error) {
	switch driver {
	case "sqlite":
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
	case "postgres":
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if driver == "sqlite" {
		// sqlite 只允许单写者
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQL{db: db, dialect: driver}, nil
}

func ensureDir(dsn string) error {
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// rebind 将 ? 占位符替换为 postgres 的 $n
func (s *SQL) rebind(query string) string {
	if s.dialect != "postgres" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *SQL) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(s.rebind(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`), key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQL) Set(key, value string) error {
	_, err := s.db.Exec(s.rebind(`INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?)
		ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value`), key, value)
	return err
}

func (s *SQL) Delete(key string) error {
	_, err := s.db.Exec(s.rebind(`DELETE FROM kv_entries WHERE entry_key = ?`), key)
	return err
}

func (s *SQL) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query(s.rebind(`SELECT entry_key FROM kv_entries WHERE substr(entry_key, 1, ?) = ? ORDER BY entry_key`),
		utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQL) Close() error {
	return s.db.Close()
}

// Open 按 driver 创建 backend
func Open(driver, dsn string) (Backend, error) {
	switch driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite", "postgres":
		return OpenSQL(driver, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", driver)
	}
}
