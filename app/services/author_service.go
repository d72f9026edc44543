package services

import (
	"context"
	"fmt"

	"github.com/loragriffin/blog-app/app/models"
	"github.com/loragriffin/blog-app/app/repositories"
)

// AuthorPage is everything the author page shows.
type AuthorPage struct {
	Author  *models.Author
	Authors []*models.Author
	Posts   []*models.BlogPost
}

// AuthorService gathers author page data
type AuthorService struct {
	authorRepo repositories.AuthorRepository
	postRepo   repositories.PostRepository
}

func NewAuthorService(authorRepo repositories.AuthorRepository, postRepo repositories.PostRepository) *AuthorService {
	return &AuthorService{
		authorRepo: authorRepo,
		postRepo:   postRepo,
	}
}

// GetAuthorPage fetches the author, then the author listing, then the post listing.
func (s *AuthorService) GetAuthorPage(ctx context.Context, id int) (*AuthorPage, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	authors, err := s.authorRepo.ListByNameDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	posts, err := s.postRepo.ListByCreatedDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return &AuthorPage{Author: author, Authors: authors, Posts: posts}, nil
}
