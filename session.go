package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// scanSession is the state of one scanned bundle. A new one replaces the old
// on every scan.
type scanSession struct {
	ID        string
	Record    qrRecord
	Apps      []application
	Checklist *checklist
	StartedAt time.Time
}

func newScanSession(record qrRecord, catalog stationCatalog, now time.Time) *scanSession {
	apps := parsePayload(record.Text)
	groups := aggregateApplications(apps, catalog.Stations, catalog.Cables)
	return &scanSession{
		ID:        uuid.NewString(),
		Record:    record,
		Apps:      apps,
		Checklist: newChecklist(groups),
		StartedAt: now,
	}
}

func (s *scanSession) InfoLine() string {
	return fmt.Sprintf("Carro: %s | Job Key: %s | Maço: %s", s.Record.Carro, s.Record.JobKey, s.Record.Maco)
}

func (s *scanSession) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	return now.Sub(s.StartedAt)
}
