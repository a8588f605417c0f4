// Package migrations holds the versioned schema of the span store.
//
// Files are named NNN_description.up.sql and NNN_description.down.sql.
// Only up scripts are applied; down scripts document how to revert.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// FS contains the span store schema scripts.
//
//go:embed *.sql
var FS embed.FS

// Migration is one up script and the schema version it produces.
type Migration struct {
	Version int
	Name    string
}

// Pending returns the up scripts in fsys newer than current, ordered by
// version. Files without a numeric prefix are ignored.
func Pending(fsys fs.FS, current int) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var pending []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version > current {
			pending = append(pending, Migration{Version: version, Name: name})
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Version < pending[j].Version
	})
	return pending, nil
}

// Latest returns the highest schema version in fsys, or 0 when none.
func Latest(fsys fs.FS) (int, error) {
	all, err := Pending(fsys, 0)
	if err != nil || len(all) == 0 {
		return 0, err
	}
	return all[len(all)-1].Version, nil
}
