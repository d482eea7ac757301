package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/render"
	"github.com/woodlandatlas/woodmap/pkg/sprite"
)

func testScene() *render.Scene {
	return &render.Scene{
		Frame: render.Frame{Width: 400, Height: 300, Margin: 20},
		Silhouette: []render.Ring{
			{{X: 20, Y: 20}, {X: 380, Y: 20}, {X: 200, Y: 280}},
		},
		Icons: []render.Icon{
			{X: 120.5, Y: 90.25, Kind: sprite.Broadleaf, Color: "#2d6a4f", Size: 13.5},
			{X: 240, Y: 150, Kind: sprite.Shrub, Color: "#52b788", Size: 8},
		},
		Provenance: render.Provenance{Source: "uk.geojson", Seed: 42, CellSize: 0.25, Points: 2},
	}
}

func TestSceneRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")

	if err := ExportJSON(testScene(), path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	if !reflect.DeepEqual(got, testScene()) {
		t.Errorf("round trip changed the scene:\ngot  %+v\nwant %+v", got, testScene())
	}
}

func TestMarshalSceneStable(t *testing.T) {
	a, err := MarshalScene(testScene())
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}
	b, err := MarshalScene(testScene())
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("same scene marshaled to different bytes")
	}

	// marshal -> unmarshal -> marshal must also be stable, or the
	// artifact cache would miss on replans.
	scene, err := UnmarshalScene(a)
	if err != nil {
		t.Fatalf("UnmarshalScene: %v", err)
	}
	c, err := MarshalScene(scene)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}
	if !bytes.Equal(a, c) {
		t.Error("re-marshaled scene differs from the original bytes")
	}
}

func TestReadJSONRejectsMalformedInput(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{not json")); !errors.Is(err, errors.ErrCodeDataLoad) {
		t.Errorf("malformed JSON should be DATA_LOAD_ERROR, got %v", err)
	}

	// Valid JSON, but not a drawable scene.
	if _, err := ReadJSON(strings.NewReader(`{"frame":{"width":100,"height":100}}`)); !errors.Is(err, errors.ErrCodeDataLoad) {
		t.Errorf("scene without silhouette should be DATA_LOAD_ERROR, got %v", err)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "absent.json")); !errors.Is(err, errors.ErrCodeDataLoad) {
		t.Errorf("missing file should be DATA_LOAD_ERROR, got %v", err)
	}
}

func TestExportJSONRejectsBadPath(t *testing.T) {
	if err := ExportJSON(testScene(), ""); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("empty path should be CONFIG_ERROR, got %v", err)
	}
}
