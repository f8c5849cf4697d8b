package database

import (
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"pinfood/internal/middleware"
)

// Migration is one versioned schema step, loaded from the embedded
// migrations directory as an NNNNNN_name.up.sql / .down.sql pair.
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
}

func (m *Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}

//go:embed migrations/*.sql
var migrationFS embed.FS

var migrations []Migration

func init() {
	if err := RegisterMigrations(migrationFS); err != nil {
		middleware.Logger.Error("Failed to register migrations", slog.String("error", err.Error()))
	}
}

// RegisterMigrations loads every up/down pair from the filesystem into the
// registry, ordered by version. An up script without its down counterpart is
// an error; a file that does not follow the naming scheme is skipped.
func RegisterMigrations(efs embed.FS) error {
	entries, err := efs.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		m, err := loadMigrationPair(efs, entry.Name())
		if err != nil {
			return err
		}
		if m == nil {
			middleware.Logger.Warn("Skipping migration with invalid name",
				slog.String("file", entry.Name()))
			continue
		}
		migrations = append(migrations, *m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return nil
}

func loadMigrationPair(efs embed.FS, upName string) (*Migration, error) {
	base := strings.TrimSuffix(upName, ".up.sql")
	versionPart, name, ok := strings.Cut(base, "_")
	if !ok {
		return nil, nil
	}
	version, err := strconv.Atoi(versionPart)
	if err != nil {
		return nil, nil
	}

	up, err := efs.ReadFile("migrations/" + upName)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", upName, err)
	}
	down, err := efs.ReadFile("migrations/" + base + ".down.sql")
	if err != nil {
		return nil, fmt.Errorf("read %s.down.sql: %w", base, err)
	}

	return &Migration{
		Version:    version,
		Name:       name,
		UpScript:   string(up),
		DownScript: string(down),
	}, nil
}

// GetMigrations returns the registered migrations in version order.
func GetMigrations() []Migration {
	return migrations
}

// GetMigrationByVersion returns the migration with the given version, nil
// when unknown.
func GetMigrationByVersion(version int) *Migration {
	for i := range migrations {
		if migrations[i].Version == version {
			return &migrations[i]
		}
	}
	return nil
}
