package api

import (
	"encoding/json"
	"testing"
)

func TestEpochMillis_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"epoch number", `1700000000000`, 1_700_000_000_000},
		{"epoch float", `1.7e12`, 1_700_000_000_000},
		{"numeric string", `"1700000000000"`, 1_700_000_000_000},
		{"iso string", `"2023-11-14T22:13:20Z"`, 1_700_000_000_000},
		{"iso with offset", `"2023-11-15T00:13:20+02:00"`, 1_700_000_000_000},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m EpochMillis
			if err := json.Unmarshal([]byte(tt.input), &m); err != nil {
				t.Fatalf("unmarshal %s failed: %v", tt.input, err)
			}
			if m.Int64() != tt.want {
				t.Errorf("got %d, want %d", m.Int64(), tt.want)
			}
		})
	}
}

func TestEpochMillis_UnmarshalInvalid(t *testing.T) {
	for _, input := range []string{`"not a time"`, `true`, `{}`} {
		var m EpochMillis
		if err := json.Unmarshal([]byte(input), &m); err == nil {
			t.Errorf("expected error for %s", input)
		}
	}
}

func TestNumber_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"integer", `42`, 42},
		{"float", `3.5`, 3.5},
		{"string integer", `"42"`, 42},
		{"string float", `"3.5"`, 3.5},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.input), &n); err != nil {
				t.Fatalf("unmarshal %s failed: %v", tt.input, err)
			}
			if n.Float64() != tt.want {
				t.Errorf("got %v, want %v", n.Float64(), tt.want)
			}
		})
	}
}

func TestNumber_UnmarshalInvalid(t *testing.T) {
	var n Number
	if err := json.Unmarshal([]byte(`"abc"`), &n); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

func TestAccessStats_MixedScalarForms(t *testing.T) {
	body := `{
		"meta": {"availableMin": "2023-01-01T00:00:00Z", "availableMax": 1700000000000, "types": ["private", "group"]},
		"bins": [1699999880000, "1699999940000", 1700000000000],
		"countsByType": {"private": [1, "2", 3]},
		"total": ["6", 7, 8]
	}`

	var stats AccessStats
	if err := json.Unmarshal([]byte(body), &stats); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(stats.Bins) != 3 {
		t.Fatalf("expected 3 bins, got %d", len(stats.Bins))
	}
	if stats.Bins[1].Int64() != 1_699_999_940_000 {
		t.Errorf("string bin decoded to %d", stats.Bins[1].Int64())
	}
	if stats.CountsByType["private"][1].Float64() != 2 {
		t.Errorf("string count decoded to %v", stats.CountsByType["private"][1])
	}
	if stats.Meta.AvailableMin.Int64() != 1_672_531_200_000 {
		t.Errorf("ISO availableMin decoded to %d", stats.Meta.AvailableMin.Int64())
	}
}
