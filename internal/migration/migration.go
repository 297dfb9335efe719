package migration

import (
	"database/sql"
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed *.sql
var files embed.FS

func source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: files,
		Root:       ".",
	}
}

// Up applies every pending migration and returns how many ran.
func Up(db *sql.DB) (int, error) {
	return migrate.Exec(db, "postgres", source(), migrate.Up)
}

// Down rolls back at most max migrations; max <= 0 rolls back all of them.
func Down(db *sql.DB, max int) (int, error) {
	return migrate.ExecMax(db, "postgres", source(), migrate.Down, max)
}
