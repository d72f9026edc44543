package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/loragriffin/blog-app/app/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func comment(router http.Handler, slug string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/post/"+slug+"/comment", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebRoutes(t *testing.T) {
	router, repo := setupTestRouter(t)

	t.Run("GET / lists posts newest first", func(t *testing.T) {
		w := get(router, "/")

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		newest := strings.Index(body, "Newest Post")
		middle := strings.Index(body, "ABC")
		older := strings.Index(body, "Older Post")
		require.True(t, newest >= 0 && middle >= 0 && older >= 0, body)
		assert.Less(t, newest, middle)
		assert.Less(t, middle, older)
	})

	t.Run("GET /post/{slug} for every stored slug", func(t *testing.T) {
		posts, err := repo.Posts.ListByCreatedDesc(context.Background())
		require.NoError(t, err)
		for _, post := range posts {
			w := get(router, "/post/"+post.Slug)
			assert.Equal(t, http.StatusOK, w.Code, post.Slug)
			assert.Contains(t, w.Body.String(), post.Body)
		}
	})

	t.Run("GET /post/{slug} for an absent slug", func(t *testing.T) {
		w := get(router, "/post/absent")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("GET /page/home.html equals GET /", func(t *testing.T) {
		home := get(router, "/")
		page := get(router, "/page/home.html")
		assert.Equal(t, http.StatusOK, page.Code)
		assert.Equal(t, home.Body.String(), page.Body.String())
	})

	t.Run("GET /page/{name} cannot leave the template set", func(t *testing.T) {
		for _, name := range []string{"missing.html", "..%2Fhelpers_test.go", "layout", "header", "footer", "sidebar"} {
			w := get(router, "/page/"+name)
			assert.NotEqual(t, http.StatusOK, w.Code, name)
		}
	})

	t.Run("GET /author/{id}", func(t *testing.T) {
		w := get(router, "/author/1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<h1>Grace</h1>")

		assert.Equal(t, http.StatusInternalServerError, get(router, "/author/77").Code)
		assert.Equal(t, http.StatusNotFound, get(router, "/author/grace").Code)
	})

	t.Run("POST /post/abc/comment reaches the comment handler", func(t *testing.T) {
		w := comment(router, "abc", url.Values{"comment": {"first!"}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<blockquote>first!</blockquote>")
		assert.Contains(t, w.Body.String(), "<h1>ABC</h1>")
	})

	t.Run("comment is escaped and not persisted", func(t *testing.T) {
		w := comment(router, "older", url.Values{"comment": {`<img src=x onerror=alert(1)>`}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "<img")
		assert.Contains(t, w.Body.String(), "&lt;img src=x onerror=alert(1)&gt;")

		w = get(router, "/post/older")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "onerror")
		assert.NotContains(t, w.Body.String(), "blockquote")
	})

	t.Run("comment without the comment field", func(t *testing.T) {
		w := comment(router, "abc", url.Values{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /post/abc/comment is not the comment handler", func(t *testing.T) {
		w := get(router, "/post/abc/comment")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("static files", func(t *testing.T) {
		w := get(router, "/static/style.css")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "background")

		assert.Equal(t, http.StatusNotFound, get(router, "/static/missing.css").Code)
	})

	t.Run("every response carries a request id", func(t *testing.T) {
		w := get(router, "/")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})
}

func TestOperationalRoutes(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("healthz", func(t *testing.T) {
		w := get(router, "/healthz")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		w := get(router, "/metrics")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "go_goroutines")
	})

	t.Run("unmatched requests are counted", func(t *testing.T) {
		notFound := metrics.RequestsTotal.WithLabelValues("unmatched", "GET", "404")
		notAllowed := metrics.RequestsTotal.WithLabelValues("unmatched", "DELETE", "405")
		beforeNotFound := testutil.ToFloat64(notFound)
		beforeNotAllowed := testutil.ToFloat64(notAllowed)

		assert.Equal(t, http.StatusNotFound, get(router, "/nowhere").Code)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

		assert.Equal(t, beforeNotFound+1, testutil.ToFloat64(notFound))
		assert.Equal(t, beforeNotAllowed+1, testutil.ToFloat64(notAllowed))
	})
}
