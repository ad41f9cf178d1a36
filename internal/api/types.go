// Package api is the HTTP client for the Svitlo bot statistics API.
//
// The transport is loose about scalar types: timestamps may arrive as ISO
// strings or epoch numbers, and numerics occasionally arrive as strings.
// The decode types here absorb both forms so the rest of the code only ever
// sees epoch milliseconds and float64s.
package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EpochMillis is a timestamp that unmarshals from an epoch-millisecond
// number, a numeric string, or an ISO-8601 string.
type EpochMillis int64

// UnmarshalJSON implements json.Unmarshaler.
func (m *EpochMillis) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*m = 0
		return nil
	}

	if s != "" && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if n, err := strconv.ParseFloat(str, 64); err == nil {
			*m = EpochMillis(n)
			return nil
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, str); err == nil {
				*m = EpochMillis(t.UnixMilli())
				return nil
			}
		}
		return fmt.Errorf("cannot parse timestamp %q", str)
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cannot parse timestamp %s: %w", s, err)
	}
	*m = EpochMillis(n)
	return nil
}

// Time converts to a time.Time in UTC.
func (m EpochMillis) Time() time.Time {
	return time.UnixMilli(int64(m)).UTC()
}

// Int64 returns the raw epoch-millisecond value.
func (m EpochMillis) Int64() int64 { return int64(m) }

// Number is a float64 that also unmarshals from a numeric string.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = 0
		return nil
	}

	if s != "" && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("cannot parse number %q: %w", str, err)
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("cannot parse number %s: %w", s, err)
	}
	*n = Number(f)
	return nil
}

// Float64 returns the raw value.
func (n Number) Float64() float64 { return float64(n) }

// AccessMeta is the metadata block of an access stats response.
type AccessMeta struct {
	AvailableMin EpochMillis `json:"availableMin"`
	AvailableMax EpochMillis `json:"availableMax"`
	Types        []string    `json:"types"`
}

// AccessStats is one time-windowed slice of access counts.
type AccessStats struct {
	Meta         AccessMeta          `json:"meta"`
	Bins         []EpochMillis       `json:"bins"`
	CountsByType map[string][]Number `json:"countsByType"`
	Total        []Number            `json:"total"`
}

// Summary carries the aggregate counters shown on the summary cards.
type Summary struct {
	TotalHits    Number            `json:"totalHits"`
	UniqueUsers  Number            `json:"uniqueUsers"`
	UniqueGroups Number            `json:"uniqueGroups"`
	TotalByType  map[string]Number `json:"totalByType"`
	AvailableMin EpochMillis       `json:"availableMin"`
	AvailableMax EpochMillis       `json:"availableMax"`
	GeneratedAt  EpochMillis       `json:"generatedAt"`
}

// AreaInsight holds outage/load statistics for one area (or globally).
type AreaInsight struct {
	Area             string      `json:"area"`
	MaxDay           EpochMillis `json:"maxDay"`
	MaxDayHits       Number      `json:"maxDayHits"`
	OutageCount      Number      `json:"outageCount"`
	LongestOutageSec Number      `json:"longestOutageSec"`
	TotalOutageSec   Number      `json:"totalOutageSec"`
	UptimePct        Number      `json:"uptimePct"`
}

// Insights is the insights endpoint response.
type Insights struct {
	Global AreaInsight   `json:"global"`
	Areas  []AreaInsight `json:"areas"`
}

// LightEvent is one on/off transition for an area.
type LightEvent struct {
	Timestamp EpochMillis `json:"timestamp"`
	On        bool        `json:"on"`
}

// AreaLightStatus is the ordered event list for one area.
type AreaLightStatus struct {
	Area   string       `json:"area"`
	Events []LightEvent `json:"events"`
}

// LightStatus is the light-status endpoint response.
type LightStatus struct {
	Areas []AreaLightStatus `json:"areas"`
}
