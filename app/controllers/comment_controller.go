package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/loragriffin/blog-app/app/errs"
)

const maxFormMemory = 1 << 20

// Comment handles a comment submitted to a post. The comment is echoed on the
// post page and not stored.
func (bc *BlogController) Comment(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	r.Body = http.MaxBytesReader(w, r.Body, maxFormMemory)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		bc.sendError(w, r, errs.NewInvalidFieldError("comment", err.Error()))
		return
	}

	values, ok := r.PostForm["comment"]
	if !ok || len(values) == 0 {
		bc.sendError(w, r, errs.NewMissingFieldError("comment"))
		return
	}
	// the last value wins when the field is repeated
	comment := values[len(values)-1]

	post, posts, err := bc.commentService.SubmitComment(r.Context(), slug, comment)
	if err != nil {
		bc.sendError(w, r, err)
		return
	}
	bc.render(w, r, PostTemplate, map[string]any{
		"post":    post,
		"posts":   posts,
		"comment": comment,
	})
}
