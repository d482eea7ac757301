package pipeline

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

// LoadConfig reads pipeline options from a TOML config file.
//
// Every toml-tagged Options field is settable from the file. Zero-valued
// fields keep their defaults, and explicit command-line flags override
// whatever the file sets.
//
// Example config:
//
//	boundary = "data/uk.geojson"
//	seed = 7
//	cell_size = 35
//	palette = "autumn"
//	counts = [2, 3]
//	weights = [0.3, 0.7]
//	formats = ["svg", "png"]
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeConfig, err, "read config file %s", path)
	}
	var opts Options
	if err := toml.Unmarshal(data, &opts); err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeConfig, err, "parse config file %s", path)
	}
	return opts, nil
}
