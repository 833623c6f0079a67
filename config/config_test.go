package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	hero, err := cfg.Field("hero")
	if err != nil {
		t.Fatalf("hero preset: %v", err)
	}
	if hero.Count != 60 || hero.Boundary != BoundaryWrap || hero.Force != ForceAttract {
		t.Errorf("unexpected hero preset: %+v", hero)
	}
	if hero.ParticleColor != (RGB{R: 123, G: 94, B: 167}) {
		t.Errorf("hero color = %v", hero.ParticleColor)
	}

	bg, err := cfg.Field("background")
	if err != nil {
		t.Fatalf("background preset: %v", err)
	}
	if bg.Boundary != BoundaryBounce || bg.Force != ForceRepel || bg.ListenScope != ScopeElement {
		t.Errorf("unexpected background preset: %+v", bg)
	}
}

func TestUnknownField(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.Field("nope"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestLoadMergesPresetByName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("fields:\n  - name: hero\n    count: 12\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	hero, err := cfg.Field("hero")
	if err != nil {
		t.Fatal(err)
	}
	if hero.Count != 12 {
		t.Errorf("count = %d, want 12", hero.Count)
	}
	// Untouched keys keep their defaults
	if hero.MaxConnectionDistance != 140 {
		t.Errorf("max_connection_distance = %v, want 140", hero.MaxConnectionDistance)
	}
	if _, err := cfg.Field("background"); err != nil {
		t.Errorf("background preset lost during merge: %v", err)
	}
}

func TestLoadRejectsInvalidPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("fields:\n  - name: hero\n    boundary: sideways\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidField) {
		t.Errorf("expected ErrInvalidField, got %v", err)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	a, _ := cfg.Field("background")
	b, _ := again.Field("background")
	if *a != *b {
		t.Errorf("snapshot changed preset:\n got %+v\nwant %+v", *b, *a)
	}
}

func TestValidate(t *testing.T) {
	base := func() FieldConfig {
		f := FieldConfig{
			Name:                  "t",
			Count:                 10,
			MaxConnectionDistance: 100,
			InteractionRadius:     50,
			MinRadius:             1,
			MaxRadius:             2,
			BaseSpeed:             0.5,
		}
		f.ApplyDefaults()
		return f
	}

	tests := []struct {
		name   string
		mutate func(*FieldConfig)
		ok     bool
	}{
		{"valid", func(*FieldConfig) {}, true},
		{"zero count", func(f *FieldConfig) { f.Count = 0 }, false},
		{"negative distance", func(f *FieldConfig) { f.MaxConnectionDistance = -1 }, false},
		{"zero radius", func(f *FieldConfig) { f.InteractionRadius = 0 }, false},
		{"inverted radius range", func(f *FieldConfig) { f.MaxRadius = 0.5 }, false},
		{"zero speed", func(f *FieldConfig) { f.BaseSpeed = 0 }, false},
		{"opacity above one", func(f *FieldConfig) { f.MaxOpacity = 1.5 }, false},
		{"unknown force", func(f *FieldConfig) { f.Force = "spin" }, false},
		{"unknown scope", func(f *FieldConfig) { f.ListenScope = "window" }, false},
		{"mobile factor above one", func(f *FieldConfig) { f.MobileFactor = 2 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base()
			tt.mutate(&f)
			err := f.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidField) {
				t.Errorf("expected ErrInvalidField, got %v", err)
			}
		})
	}
}

func TestPopulationFor(t *testing.T) {
	f := FieldConfig{Count: 60, MobileBreakpoint: 768, MobileFactor: 0.5}
	if n := f.PopulationFor(500); n != 30 {
		t.Errorf("narrow device: got %d, want 30", n)
	}
	if n := f.PopulationFor(768); n != 60 {
		t.Errorf("at breakpoint: got %d, want 60", n)
	}
	f.Count = 7
	if n := f.PopulationFor(100); n != 3 {
		t.Errorf("odd count floors: got %d, want 3", n)
	}
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"123, 94, 167", RGB{123, 94, 167}, true},
		{"#06b6d4", RGB{6, 182, 212}, true},
		{"1,2", RGB{}, false},
		{"#abc", RGB{}, false},
		{"300, 0, 0", RGB{}, false},
	}
	for _, tt := range tests {
		got, err := ParseRGB(tt.in)
		if tt.ok != (err == nil) {
			t.Errorf("ParseRGB(%q) err = %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseRGB(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
