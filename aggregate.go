package main

import (
	"sort"
	"strings"
)

const unknownCableLabel = "Cabo desconhecido"

type stationConfig struct {
	ID        string
	Name      string
	Terminals []string
}

func (s stationConfig) hasTerminal(terminal string) bool {
	for _, t := range s.Terminals {
		if t == terminal {
			return true
		}
	}
	return false
}

type cableCount struct {
	Code        string
	HasCode     bool
	Description string
	Count       int
}

type terminalGroup struct {
	Terminal string
	Total    int
	Cables   []cableCount
}

type stationGroup struct {
	StationID   string
	StationName string
	Terminals   []terminalGroup
}

// Title is the header shown for the station, "P1 - Prensa 1" or just "P1".
func (g stationGroup) Title() string {
	if strings.TrimSpace(g.StationName) == "" {
		return g.StationID
	}
	return g.StationID + " - " + g.StationName
}

// Total sums the terminal totals of the station.
func (g stationGroup) Total() int {
	total := 0
	for _, t := range g.Terminals {
		total += t.Total
	}
	return total
}

// aggregateApplications groups applications by press station and terminal.
// A terminal listed by several stations is counted in each of them. Stations
// sharing an id collapse to the last one configured. Stations with nothing to
// apply are left out and the result is ordered by station id.
func aggregateApplications(apps []application, stations []stationConfig, cables map[string]string) []stationGroup {
	byID := make(map[string]stationGroup, len(stations))
	for _, station := range stations {
		var subset []application
		for _, app := range apps {
			if station.hasTerminal(app.Terminal) {
				subset = append(subset, app)
			}
		}
		byID[station.ID] = stationGroup{
			StationID:   station.ID,
			StationName: station.Name,
			Terminals:   groupTerminals(subset, cables),
		}
	}

	groups := make([]stationGroup, 0, len(byID))
	for _, group := range byID {
		if len(group.Terminals) == 0 {
			continue
		}
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].StationID < groups[j].StationID
	})
	return groups
}

func groupTerminals(subset []application, cables map[string]string) []terminalGroup {
	if len(subset) == 0 {
		return nil
	}

	// Distinct (terminal, cable) pairs in first-seen order.
	var pairs []application
	counts := make(map[application]int)
	for _, app := range subset {
		if _, seen := counts[app]; !seen {
			pairs = append(pairs, app)
		}
		counts[app]++
	}

	var groups []terminalGroup
	index := make(map[string]int)
	for _, pair := range pairs {
		pos, ok := index[pair.Terminal]
		if !ok {
			pos = len(groups)
			index[pair.Terminal] = pos
			groups = append(groups, terminalGroup{Terminal: pair.Terminal})
		}
		count := counts[pair]
		groups[pos].Cables = append(groups[pos].Cables, cableCount{
			Code:        pair.Cable,
			HasCode:     pair.HasCable,
			Description: describeCable(pair, cables),
			Count:       count,
		})
		groups[pos].Total += count
	}
	return groups
}

func describeCable(app application, cables map[string]string) string {
	if !app.HasCable || app.Cable == "" {
		return unknownCableLabel
	}
	if desc, ok := cables[app.Cable]; ok {
		return desc
	}
	return app.Cable
}
