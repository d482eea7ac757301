package cli

import (
	"testing"

	"github.com/woodlandatlas/woodmap/pkg/cache"
)

func TestNewCLICacheDisabled(t *testing.T) {
	c := newCLICache(true)
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("newCLICache(true) = %T, want a null cache", c)
	}
}

func TestNewCLICacheEnabled(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := newCLICache(false)
	defer c.Close()

	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("newCLICache(false) = %T, want a file cache", c)
	}
	if fc.Dir() == "" {
		t.Error("file cache should have a directory")
	}
}
