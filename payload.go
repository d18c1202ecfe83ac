package main

import "strings"

const (
	payloadGroupSeparator = "#"
	payloadTokenSeparator = "-"
)

// application is one terminal crimp to perform. HasCable is false when the
// payload gave no cable before the terminal token.
type application struct {
	Terminal string
	Cable    string
	HasCable bool
}

// parsePayload decodes a scanned bundle payload such as
// "C1:RED-T1:A1#C2:BLUE-S1:A2" into applications. Unknown tokens are skipped;
// the function never fails.
func parsePayload(raw string) []application {
	if raw == "" {
		return nil
	}
	var apps []application
	for _, conjunto := range strings.Split(raw, payloadGroupSeparator) {
		apps = append(apps, parseConjunto(conjunto)...)
	}
	return apps
}

func parseConjunto(conjunto string) []application {
	var (
		apps     []application
		cable    string
		hasCable bool
	)
	for _, token := range strings.Split(conjunto, payloadTokenSeparator) {
		prefix, value, ok := strings.Cut(token, ":")
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(prefix, "C"):
			cable, hasCable = value, true
		case strings.HasPrefix(prefix, "T"), strings.HasPrefix(prefix, "S"):
			if value == "" {
				continue
			}
			apps = append(apps, application{Terminal: value, Cable: cable, HasCable: hasCable})
		}
	}
	return apps
}
