package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/woodlandatlas/woodmap/pkg/errors"
	"github.com/woodlandatlas/woodmap/pkg/render"
)

// MarshalScene encodes a scene as indented JSON. Field order is fixed by
// the struct layout, so identical scenes marshal to identical bytes; the
// pipeline relies on that for scene hashing.
func MarshalScene(s *render.Scene) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return append(data, '\n'), nil
}

// WriteJSON encodes a scene as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for later rendering.
func WriteJSON(s *render.Scene, w io.Writer) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write scene")
	}
	return nil
}

// ExportJSON writes a scene to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(s *render.Scene, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(s, f)
}
