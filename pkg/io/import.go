package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/render"
)

// UnmarshalScene decodes and validates a scene from JSON bytes.
// Returns DATA_LOAD_ERROR for malformed JSON or undrawable scenes.
func UnmarshalScene(data []byte) (*render.Scene, error) {
	var s render.Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoad, err, "decode scene")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadJSON decodes a scene from r and validates it.
//
// The input must be a scene object as produced by [WriteJSON]: a frame,
// at least one silhouette ring, and zero or more icons, all in screen
// space. The returned scene is independent of r; ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*render.Scene, error) {
	var s render.Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoad, err, "decode scene")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ImportJSON reads a scene file at path and returns the decoded scene.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors carry the file path for context and the same validation
// rules as [ReadJSON] apply.
func ImportJSON(path string) (*render.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoad, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
