package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/loragriffin/blog-app/app/errs"
)

const AuthorTemplate = "author.html"

// Author handles the author page. The author is bound both as "author" and,
// for templates written against the post page, as "post".
func (bc *BlogController) Author(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		bc.sendError(w, r, errs.NewNotFound("author", raw))
		return
	}

	page, err := bc.authorService.GetAuthorPage(r.Context(), id)
	if err != nil {
		bc.sendError(w, r, err)
		return
	}
	bc.render(w, r, AuthorTemplate, map[string]any{
		"authors": page.Authors,
		"posts":   page.Posts,
		"post":    page.Author,
		"author":  page.Author,
	})
}
