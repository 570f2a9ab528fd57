package application

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationManager applies module-embedded schema files on startup. Schemas
// are written to be idempotent (CREATE TABLE IF NOT EXISTS).
type MigrationManager struct {
	pool    *pgxpool.Pool
	schemas []*embed.FS
}

func NewMigrationManager(pool *pgxpool.Pool) *MigrationManager {
	return &MigrationManager{pool: pool}
}

func (m *MigrationManager) RegisterSchema(fsys *embed.FS) {
	m.schemas = append(m.schemas, fsys)
}

func (m *MigrationManager) Apply(ctx context.Context) error {
	for _, fsys := range m.schemas {
		var files []string
		err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return errors.Wrap(err, "failed to list schema files")
		}
		sort.Strings(files)
		for _, file := range files {
			sql, err := fsys.ReadFile(file)
			if err != nil {
				return errors.Wrapf(err, "failed to read schema file %s", file)
			}
			if _, err := m.pool.Exec(ctx, string(sql)); err != nil {
				return errors.Wrapf(err, "failed to apply schema file %s", file)
			}
		}
	}
	return nil
}
