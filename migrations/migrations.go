package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
)

//go:embed *.sql
var files embed.FS

// Apply выполняет все *.sql файлы в лексикографическом порядке
// Скрипты идемпотентны (IF NOT EXISTS), поэтому журнал применённых миграций не ведётся
func Apply(ctx context.Context, db dbmetrics.DBExecutor) ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("migrations: read %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return nil, fmt.Errorf("migrations: apply %s: %w", name, err)
		}
	}
	return names, nil
}
