package config

import (
	"encoding/json"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"400ms", 400 * time.Millisecond, false},
		{"1.5s", 1500 * time.Millisecond, false},
		{"1d", 24 * time.Hour, false},
		{"1d2h", 26 * time.Hour, false},
		{"", 0, false},
		{"invalid", 0, true},
		{"1dx", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"100m", 100, false},
		{"6371km", 6371000, false},
		{"1nm", 1852, false},
		{"500", 500, false},
		{"10x", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDistance(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDistance(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDistance(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestUnitsYAMLRoundTrip(t *testing.T) {
	type sample struct {
		Fade   Duration `yaml:"fade"`
		Radius Distance `yaml:"radius"`
	}

	var cfg sample
	if err := yaml.Unmarshal([]byte("fade: 250ms\nradius: 3389.5km\n"), &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if cfg.Fade.Std() != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.Fade.Std())
	}
	if cfg.Radius.Km() != 3389.5 {
		t.Errorf("expected 3389.5km, got %v", cfg.Radius.Km())
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != "fade: 250ms\nradius: 3389.5km\n" {
		t.Errorf("unexpected YAML: %q", out)
	}
}

func TestDurationJSON(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`"1.5s"`), &d); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if d.Std() != 1500*time.Millisecond {
		t.Errorf("got %v", d.Std())
	}
	if err := json.Unmarshal([]byte(`250`), &d); err != nil {
		t.Fatalf("number form: %v", err)
	}
	if d.Std() != 250*time.Millisecond {
		t.Errorf("got %v", d.Std())
	}

	b, _ := json.Marshal(Duration(time.Second))
	if string(b) != `"1s"` {
		t.Errorf("got %s", b)
	}
}
