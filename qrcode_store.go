package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

var (
	errDatabaseNotFound    = errors.New("banco de dados não encontrado")
	errInvalidQRCodeID     = errors.New("ID inválido")
	errQRCodeNotFound      = errors.New("não encontrado")
	errInvalidQRCodeRecord = errors.New("formato de banco inválido")
)

// Positions in a qrcode row. Column names differ between line databases.
const (
	qrColumnJobKey = 1
	qrColumnCarro  = 3
	qrColumnMaco   = 4
	qrColumnText   = 6
	qrMinColumns   = 7
)

const missingFieldLabel = "N/A"

type qrRecord struct {
	ID     int
	JobKey string
	Carro  string
	Maco   string
	Text   string
}

type qrLookup interface {
	Lookup(id string) (qrRecord, error)
}

// unavailableLookup fails every lookup with the error that kept the database
// from opening.
type unavailableLookup struct {
	err error
}

func (u unavailableLookup) Lookup(string) (qrRecord, error) {
	return qrRecord{}, u.err
}

type qrcodeStore struct {
	db *sql.DB
}

func openQRCodeStore(path string) (*qrcodeStore, error) {
	path = strings.TrimSpace(path)
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if stat, err := os.Stat(abs); err != nil || stat.IsDir() {
		return nil, fmt.Errorf("%w em: %s", errDatabaseNotFound, abs)
	}
	db, err := sql.Open("sqlite", abs)
	if err != nil {
		return nil, err
	}
	return &qrcodeStore{db: db}, nil
}

func (s *qrcodeStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lookup fetches the bundle row with the given numeric ID.
func (s *qrcodeStore) Lookup(id string) (qrRecord, error) {
	if s == nil || s.db == nil {
		return qrRecord{}, errDatabaseNotFound
	}
	n, err := parseQRCodeID(id)
	if err != nil {
		return qrRecord{}, err
	}

	rows, err := s.db.Query(`SELECT * FROM qrcode WHERE ID = ?`, n)
	if err != nil {
		return qrRecord{}, fmt.Errorf("consultar qrcode %d: %w", n, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return qrRecord{}, err
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return qrRecord{}, err
		}
		return qrRecord{}, fmt.Errorf("ID %d %w", n, errQRCodeNotFound)
	}
	if len(cols) < qrMinColumns {
		return qrRecord{}, errInvalidQRCodeRecord
	}

	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return qrRecord{}, fmt.Errorf("ler qrcode %d: %w", n, err)
	}

	return qrRecord{
		ID:     n,
		JobKey: fieldOrMissing(values[qrColumnJobKey]),
		Carro:  fieldOrMissing(values[qrColumnCarro]),
		Maco:   fieldOrMissing(values[qrColumnMaco]),
		Text:   values[qrColumnText].String,
	}, nil
}

func parseQRCodeID(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidQRCodeID, raw)
	}
	return n, nil
}

func fieldOrMissing(v sql.NullString) string {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return missingFieldLabel
	}
	return v.String
}
