package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// HomeTemplate lists the posts on /
const HomeTemplate = "home.html"

// PostTemplate shows a single post, with or without a submitted comment
const PostTemplate = "post.html"

// Home handles listing all posts
func (bc *BlogController) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := bc.postService.ListPosts(r.Context())
	if err != nil {
		bc.sendError(w, r, err)
		return
	}
	bc.render(w, r, HomeTemplate, map[string]any{"posts": posts})
}

// Page renders any loaded template by file name with the post listing.
// Names outside the loaded set are answered as an unknown template.
func (bc *BlogController) Page(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	posts, err := bc.postService.ListPosts(r.Context())
	if err != nil {
		bc.sendError(w, r, err)
		return
	}
	bc.render(w, r, name, map[string]any{"posts": posts})
}

// Show handles displaying a single post
func (bc *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, posts, err := bc.postService.GetPost(r.Context(), slug)
	if err != nil {
		bc.sendError(w, r, err)
		return
	}
	bc.render(w, r, PostTemplate, map[string]any{
		"post":  post,
		"posts": posts,
	})
}
