package services

import (
	"context"
	"fmt"

	"github.com/loragriffin/blog-app/app/models"
	"github.com/loragriffin/blog-app/app/repositories"
)

// PostService handles the read side of blog posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns every post, newest first
func (s *PostService) ListPosts(ctx context.Context) ([]*models.BlogPost, error) {
	posts, err := s.postRepo.ListByCreatedDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns the post with the given slug together with the full listing
func (s *PostService) GetPost(ctx context.Context, slug string) (*models.BlogPost, []*models.BlogPost, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, nil, err
	}
	return post, posts, nil
}
