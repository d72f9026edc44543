package routes

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/loragriffin/blog-app/app/controllers"
	"github.com/loragriffin/blog-app/app/models"
	"github.com/loragriffin/blog-app/app/repositories"
	"github.com/loragriffin/blog-app/app/views"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/stretchr/testify/require"
)

func setupTestTemplates(t *testing.T) (templateDir, staticDir string) {
	tmpDir := t.TempDir()
	templateDir = filepath.Join(tmpDir, "templates")
	staticDir = filepath.Join(tmpDir, "static")
	for _, dir := range []string{templateDir, staticDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	templates := map[string]string{
		"layout.html": `{{define "header"}}<!DOCTYPE html><html><body>{{end}}{{define "footer"}}</body></html>{{end}}{{define "sidebar"}}<aside>recent</aside>{{end}}`,
		"home.html":   `{{template "header"}}<div class="posts">{{range .posts}}<h2>{{.Title}}</h2>{{end}}</div>{{template "footer"}}`,
		"post.html":   `{{template "header"}}<h1>{{.post.Title}}</h1><p>{{.post.Body}}</p>{{with .comment}}<blockquote>{{.}}</blockquote>{{end}}{{template "footer"}}`,
		"author.html": `{{template "header"}}<h1>{{.author.Name}}</h1>{{template "footer"}}`,
	}
	for name, content := range templates {
		require.NoError(t, os.WriteFile(filepath.Join(templateDir, name), []byte(content), 0644))
	}

	cssContent := "body { background: #f0f0f0; }"
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "style.css"), []byte(cssContent), 0644))

	return templateDir, staticDir
}

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestData(t *testing.T, repo *repositories.Repository) {
	ctx := context.Background()
	author := &models.Author{Name: "Grace"}
	require.NoError(t, repo.Authors.Create(ctx, author))

	base := time.Date(2022, 1, 10, 8, 0, 0, 0, time.UTC)
	posts := []*models.BlogPost{
		{Slug: "older", Title: "Older Post", Body: "An older post", Created: base},
		{Slug: "abc", Title: "ABC", Body: "Short slug", Created: base.AddDate(0, 1, 0)},
		{Slug: "newest", Title: "Newest Post", Body: "The newest post", Created: base.AddDate(0, 2, 0)},
	}
	for _, post := range posts {
		require.NoError(t, post.SetAuthor(author))
		require.NoError(t, repo.Posts.Create(ctx, post))
	}
}

func setupTestRouter(t *testing.T) (http.Handler, *repositories.Repository) {
	templateDir, staticDir := setupTestTemplates(t)
	repo := repositories.NewBadgerRepository(setupTestDB(t))
	setupTestData(t, repo)

	renderer, err := views.NewRenderer(templateDir)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return SetupRoutes(controllers.NewBlogController(repo, renderer), staticDir, reg), repo
}
