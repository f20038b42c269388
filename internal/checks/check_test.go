package checks

import (
	"testing"

	"github.com/ppiankov/fbxlint/internal/model"
)

func TestRegistry_Defaults(t *testing.T) {
	cs, err := Registry(&model.ChecksConfig{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cs) != 1 {
		t.Fatalf("expected one check, got %d", len(cs))
	}
	if cs[0].Name() != "coordinate-axis" {
		t.Errorf("unexpected check name %q", cs[0].Name())
	}
}

func TestRegistry_DisabledCheck(t *testing.T) {
	cfg := &model.ChecksConfig{}
	cfg.CoordinateAxis.Disabled = true

	cs, err := Registry(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cs) != 0 {
		t.Errorf("expected no checks, got %d", len(cs))
	}
}

func TestRegistry_ParsesOverrides(t *testing.T) {
	cfg := &model.ChecksConfig{}
	cfg.CoordinateAxis.Overrides = map[string]model.BasisOverride{
		"Maya": {Up: "+Z", Front: "-Y", Coord: "+X"},
	}

	cs, err := Registry(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cs) != 1 {
		t.Fatalf("expected one check, got %d", len(cs))
	}
}

func TestRegistry_RejectsBadOverrides(t *testing.T) {
	cases := []map[string]model.BasisOverride{
		{"Photoshop": {Up: "+Z", Front: "-Y", Coord: "+X"}}, // unknown app
		{"Maya": {Up: "+W", Front: "-Y", Coord: "+X"}},      // bad letter
		{"Maya": {Up: "", Front: "-Y", Coord: "+X"}},        // empty letter
	}
	for _, overrides := range cases {
		cfg := &model.ChecksConfig{}
		cfg.CoordinateAxis.Overrides = overrides
		if _, err := Registry(cfg); err == nil {
			t.Errorf("expected error for overrides %v", overrides)
		}
	}
}
