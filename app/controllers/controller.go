package controllers

import (
	"fmt"
	"html"
	"io"
	"net/http"

	"github.com/loragriffin/blog-app/app/errs"
	"github.com/loragriffin/blog-app/app/logger"
	"github.com/loragriffin/blog-app/app/repositories"
	"github.com/loragriffin/blog-app/app/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Renderer renders a named template with named values.
type Renderer interface {
	Render(w io.Writer, name string, values map[string]any) error
}

// BlogController handles every page of the blog
type BlogController struct {
	postService    *services.PostService
	authorService  *services.AuthorService
	commentService *services.CommentService
	view           Renderer
	log            zerolog.Logger
}

// NewBlogController creates a new BlogController over the given stores
func NewBlogController(repo *repositories.Repository, view Renderer) *BlogController {
	return &BlogController{
		postService:    services.NewPostService(repo.Posts),
		authorService:  services.NewAuthorService(repo.Authors, repo.Posts),
		commentService: services.NewCommentService(repo.Posts),
		view:           view,
		log:            logger.For("controllers"),
	}
}

// Healthz answers liveness checks
func (bc *BlogController) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}

func (bc *BlogController) render(w http.ResponseWriter, r *http.Request, name string, values map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := bc.view.Render(w, name, values); err != nil {
		bc.sendError(w, r, err)
	}
}

// sendError logs the cause and answers with a page that does not reveal it.
func (bc *BlogController) sendError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.StatusCode(err)

	level := zerolog.ErrorLevel
	if errs.IsBadRequest(err) {
		level = zerolog.WarnLevel
	}
	bc.requestLogger(r).WithLevel(level).Err(err).
		Str("kind", errorKind(err)).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg("request failed")

	text := http.StatusText(status)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<html><title>%d: %s</title><body>%d: %s</body></html>",
		status, html.EscapeString(text), status, html.EscapeString(text))
}

func errorKind(err error) string {
	switch {
	case errs.IsTemplateNotFound(err):
		return "template_not_found"
	case errs.IsNotFound(err):
		return "not_found"
	case errs.IsBadRequest(err):
		return "bad_request"
	default:
		return "internal"
	}
}

func (bc *BlogController) requestLogger(r *http.Request) *zerolog.Logger {
	if l := hlog.FromRequest(r); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &bc.log
}
