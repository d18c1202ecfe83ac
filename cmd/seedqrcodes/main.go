package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

// bundleFixture is one row of the qrcode table. Column order matters: the
// checklist reads rows positionally.
type bundleFixture struct {
	ID      int    `yaml:"id"`
	JobKey  string `yaml:"job_key"`
	Created string `yaml:"created"`
	Carro   string `yaml:"carro"`
	Maco    string `yaml:"maco"`
	Linha   string `yaml:"linha"`
	Texto   string `yaml:"texto"`
}

type fixtureFile struct {
	Bundles []bundleFixture `yaml:"bundles"`
}

func main() {
	var dbPath string
	var inputPath string
	flag.StringVar(&dbPath, "db", "banco_qrcode.db", "SQLite database to create or update")
	flag.StringVar(&inputPath, "in", "", "yaml file with a bundles list (required)")
	flag.Parse()

	if inputPath == "" {
		exit(errors.New("missing --in path"))
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		exit(err)
	}
	var fixtures fixtureFile
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		exit(fmt.Errorf("parse %s: %w", inputPath, err))
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		exit(err)
	}
	defer db.Close()

	if err := migrate(db); err != nil {
		exit(err)
	}
	if err := upsert(db, fixtures.Bundles); err != nil {
		exit(err)
	}
	fmt.Printf("%d bundles written to %s\n", len(fixtures.Bundles), dbPath)
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "seedqrcodes: %v\n", err)
	os.Exit(1)
}

func migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS qrcode (
			ID INTEGER PRIMARY KEY,
			job_key TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			carro TEXT NOT NULL DEFAULT '',
			maco TEXT NOT NULL DEFAULT '',
			linha TEXT NOT NULL DEFAULT '',
			texto TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("qrcode migration failed: %w", err)
		}
	}
	return nil
}

func upsert(db *sql.DB, bundles []bundleFixture) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO qrcode (ID, job_key, created_at, carro, maco, linha, texto)
		VALUES (?, ?, COALESCE(NULLIF(?, ''), CURRENT_TIMESTAMP), ?, ?, ?, ?)
		ON CONFLICT(ID) DO UPDATE SET
			job_key = excluded.job_key,
			carro = excluded.carro,
			maco = excluded.maco,
			linha = excluded.linha,
			texto = excluded.texto`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, b := range bundles {
		if b.ID <= 0 {
			_ = tx.Rollback()
			return fmt.Errorf("bundle without a positive id: %+v", b)
		}
		if _, err := stmt.Exec(b.ID, b.JobKey, b.Created, b.Carro, b.Maco, b.Linha, b.Texto); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("write bundle %d: %w", b.ID, err)
		}
	}
	return tx.Commit()
}
