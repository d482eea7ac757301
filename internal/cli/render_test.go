package cli

import (
	"os"
	"path/filepath"
	"testing"
)

const testSceneJSON = `{
	"frame": {"width": 100, "height": 80, "margin": 10},
	"silhouette": [[{"x": 10, "y": 10}, {"x": 90, "y": 10}, {"x": 50, "y": 70}]],
	"icons": [{"x": 50, "y": 30, "kind": "broadleaf", "color": "#2d6a4f", "size": 12}],
	"provenance": {"seed": 7, "cells": 3, "points": 1}
}`

const testBoundaryJSON = `{
	"type": "FeatureCollection",
	"features": [{
		"type": "Feature",
		"properties": {"name": "square"},
		"geometry": {
			"type": "Polygon",
			"coordinates": [[[0, 0], [10, 0], [10, 10], [0, 10], [0, 0]]]
		}
	}]
}`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,png,json", []string{"svg", "png", "json"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"empty output strips input extension", "", "uk.geojson", "uk"},
		{"empty output keeps scene stem", "", "uk.scene.json", "uk.scene"},
		{"output with format extension", "posters/map.svg", "uk.geojson", "posters/map"},
		{"output with png extension", "map.png", "uk.geojson", "map"},
		{"output with foreign extension", "posters/map.out", "uk.geojson", "posters/map.out"},
		{"bare output", "map", "uk.geojson", "map"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestReadScene(t *testing.T) {
	dir := t.TempDir()

	scenePath := filepath.Join(dir, "map.scene.json")
	if err := os.WriteFile(scenePath, []byte(testSceneJSON), 0o644); err != nil {
		t.Fatalf("write scene fixture: %v", err)
	}
	scene, ok := readScene(scenePath)
	if !ok {
		t.Fatal("readScene() should accept a valid scene file")
	}
	if scene.Provenance.Cells != 3 {
		t.Errorf("scene cells = %d, want 3", scene.Provenance.Cells)
	}

	boundaryPath := filepath.Join(dir, "uk.json")
	if err := os.WriteFile(boundaryPath, []byte(testBoundaryJSON), 0o644); err != nil {
		t.Fatalf("write boundary fixture: %v", err)
	}
	if _, ok := readScene(boundaryPath); ok {
		t.Error("readScene() should reject a GeoJSON boundary")
	}

	if _, ok := readScene(filepath.Join(dir, "missing.json")); ok {
		t.Error("readScene() should reject a missing file")
	}

	if _, ok := readScene("uk.geojson"); ok {
		t.Error("readScene() should reject non-json extensions")
	}
}

func TestWriteArtifactsSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg": []byte("<svg/>"),
		"png": {0x89, 'P', 'N', 'G'},
	}

	output := filepath.Join(dir, "map.svg")
	if err := writeArtifacts(artifacts, []string{"svg", "png"}, "uk.geojson", output, 12, 30, false); err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	for _, name := range []string{"map.svg", "map.png"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("expected %s to be written: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestWriteArtifactsSingleFormatExactPath(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "poster.svg")

	artifacts := map[string][]byte{"svg": []byte("<svg/>")}
	if err := writeArtifacts(artifacts, []string{"svg"}, "uk.geojson", output, 1, 2, true); err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	if _, err := os.Stat(output); err != nil {
		t.Errorf("single-format output should land at the exact path: %v", err)
	}
}

func TestWriteArtifactsDefaultsNextToInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "uk.geojson")

	artifacts := map[string][]byte{"svg": []byte("<svg/>")}
	if err := writeArtifacts(artifacts, []string{"svg"}, input, "", 1, 2, false); err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "uk.svg")); err != nil {
		t.Errorf("default output should sit next to the input: %v", err)
	}
}
