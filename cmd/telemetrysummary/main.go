package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

type checklistEvent struct {
	SessionID string            `json:"session_id"`
	ScanID    string            `json:"scan_id"`
	Operator  string            `json:"operator"`
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	QRCodeID  int               `json:"qrcode_id"`
	Station   string            `json:"station"`
	Extra     map[string]string `json:"extra"`
}

type bundleSummary struct {
	ScanID      string    `json:"scan_id"`
	QRCodeID    int       `json:"qrcode_id"`
	Operator    string    `json:"operator,omitempty"`
	LoadedAt    time.Time `json:"loaded_at"`
	FinalizedAt time.Time `json:"finalized_at"`
	DurationSec float64   `json:"duration_sec,omitempty"`
	Completions int       `json:"completions"`
	Reopens     int       `json:"reopens"`
	Finalized   bool      `json:"finalized"`
}

type stationSummary struct {
	Station        string  `json:"station"`
	Completions    int     `json:"completions"`
	Reopens        int     `json:"reopens"`
	MedianSecToOK  float64 `json:"median_sec_to_complete"`
	secondsToMarks []float64
}

type telemetryReport struct {
	Source        string           `json:"source"`
	Lines         int              `json:"lines"`
	Skipped       int              `json:"skipped"`
	ScanFailures  int              `json:"scan_failures"`
	Bundles       []bundleSummary  `json:"bundles"`
	Stations      []stationSummary `json:"stations"`
	MedianBundleS float64          `json:"median_bundle_sec"`
}

func main() {
	var inputPath string
	var outputPath string
	flag.StringVar(&inputPath, "in", "", "telemetry JSONL path (required)")
	flag.StringVar(&outputPath, "out", "", "output JSON path (optional, defaults to stdout)")
	flag.Parse()

	if inputPath == "" {
		exit(errors.New("missing --in path"))
	}

	file, err := os.Open(inputPath)
	if err != nil {
		exit(err)
	}
	defer file.Close()

	report, err := buildReport(inputPath, file)
	if err != nil {
		exit(fmt.Errorf("parse telemetry: %w", err))
	}

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		exit(fmt.Errorf("encode report: %w", err))
	}

	if outputPath == "" {
		fmt.Println(string(encoded))
		return
	}
	if err := os.WriteFile(outputPath, append(encoded, '\n'), 0o644); err != nil {
		exit(fmt.Errorf("write output: %w", err))
	}
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "telemetrysummary: %v\n", err)
	os.Exit(1)
}

func buildReport(source string, r io.Reader) (telemetryReport, error) {
	report := telemetryReport{Source: source}
	bundles := map[string]*bundleSummary{}
	var order []string
	stations := map[string]*stationSummary{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		report.Lines++
		var ev checklistEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			report.Skipped++
			continue
		}
		if ev.Event == "scan_failed" {
			report.ScanFailures++
			continue
		}
		if ev.ScanID == "" {
			report.Skipped++
			continue
		}

		bundle, ok := bundles[ev.ScanID]
		if !ok {
			bundle = &bundleSummary{
				ScanID:   ev.ScanID,
				QRCodeID: ev.QRCodeID,
				Operator: ev.Operator,
			}
			bundles[ev.ScanID] = bundle
			order = append(order, ev.ScanID)
		}

		switch ev.Event {
		case "scan_loaded":
			bundle.LoadedAt = ev.Timestamp
		case "station_completed":
			bundle.Completions++
			st := stationFor(stations, ev.Station)
			st.Completions++
			if !bundle.LoadedAt.IsZero() {
				st.secondsToMarks = append(st.secondsToMarks, ev.Timestamp.Sub(bundle.LoadedAt).Seconds())
			}
		case "station_reopened":
			bundle.Reopens++
			stationFor(stations, ev.Station).Reopens++
		case "bundle_finalized":
			bundle.Finalized = true
			bundle.FinalizedAt = ev.Timestamp
			if !bundle.LoadedAt.IsZero() {
				bundle.DurationSec = ev.Timestamp.Sub(bundle.LoadedAt).Seconds()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return report, err
	}

	var durations []float64
	for _, id := range order {
		b := bundles[id]
		report.Bundles = append(report.Bundles, *b)
		if b.Finalized {
			durations = append(durations, b.DurationSec)
		}
	}
	report.MedianBundleS = computeMedian(durations)

	for _, st := range stations {
		st.MedianSecToOK = computeMedian(st.secondsToMarks)
		report.Stations = append(report.Stations, *st)
	}
	sort.Slice(report.Stations, func(i, j int) bool {
		return report.Stations[i].Station < report.Stations[j].Station
	})
	return report, nil
}

func stationFor(stations map[string]*stationSummary, id string) *stationSummary {
	st, ok := stations[id]
	if !ok {
		st = &stationSummary{Station: id}
		stations[id] = st
	}
	return st
}

func computeMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
