package database

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/loragriffin/blog-app/app/config"
	"github.com/loragriffin/blog-app/app/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(dir string) config.DatabaseConfig
	}{
		{
			name: "badger",
			cfg: func(dir string) config.DatabaseConfig {
				return config.DatabaseConfig{Driver: "badger", Path: filepath.Join(dir, "badger")}
			},
		},
		{
			name: "sqlite",
			cfg: func(dir string) config.DatabaseConfig {
				return config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(dir, "db", "blog.db"), AutoMigrate: true}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo, err := Open(tt.cfg(t.TempDir()))
			require.NoError(t, err)
			defer repo.Close()

			author := &models.Author{Name: "Linus"}
			require.NoError(t, repo.Authors.Create(ctx, author))

			post := &models.BlogPost{Slug: "opened", Title: "Opened", Body: "body", Created: time.Now().UTC()}
			require.NoError(t, post.SetAuthor(author))
			require.NoError(t, repo.Posts.Create(ctx, post))

			got, err := repo.Posts.GetBySlug(ctx, "opened")
			require.NoError(t, err)
			assert.Equal(t, "Opened", got.Title)
			require.NotNil(t, got.AuthorID)
			assert.Equal(t, author.ID, *got.AuthorID)
		})
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mysql", Path: t.TempDir()})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrateIsRepeatable(t *testing.T) {
	db, err := OpenGorm(config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "blog.db"), AutoMigrate: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.BlogPost{}))
	assert.True(t, db.Migrator().HasTable(&models.Author{}))
}

func TestOpenGormFailedMigration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.db")
	db, err := OpenGorm(config.DatabaseConfig{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE VIEW authors AS SELECT 1 AS id").Error)
	closeGorm(db)

	db, err = OpenGorm(config.DatabaseConfig{Driver: "sqlite", Path: path, AutoMigrate: true})
	assert.ErrorContains(t, err, "failed to migrate schema")
	assert.Nil(t, db)
}

func TestCloseGorm(t *testing.T) {
	db, err := OpenGorm(config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "blog.db")})
	require.NoError(t, err)

	closeGorm(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.ErrorContains(t, sqlDB.Ping(), "database is closed")
}

func TestLoggerAdapters(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)

	b := badgerLogger{l}
	b.Errorf("disk %s\n", "full")
	b.Warningf("slow")
	b.Infof("compaction done")
	b.Debugf("hidden")

	out := buf.String()
	assert.Contains(t, out, `"level":"error","message":"disk full"`)
	assert.Contains(t, out, `"level":"warn","message":"slow"`)
	assert.Contains(t, out, `"level":"debug","message":"compaction done"`)
	assert.NotContains(t, out, "hidden")

	buf.Reset()
	gormWriter{l}.Printf("%s [%.3fms]", "SELECT 1", 1.5)
	assert.Contains(t, buf.String(), "SELECT 1 [1.500ms]")
}
