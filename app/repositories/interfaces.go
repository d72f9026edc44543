package repositories

import (
	"context"

	"github.com/loragriffin/blog-app/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	ListByCreatedDesc(ctx context.Context) ([]*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Save(ctx context.Context, post *models.BlogPost) error
	Create(ctx context.Context, post *models.BlogPost) error
}

// AuthorRepository defines the interface for author data access
type AuthorRepository interface {
	ListByNameDesc(ctx context.Context) ([]*models.Author, error)
	GetByID(ctx context.Context, id int) (*models.Author, error)
	Create(ctx context.Context, author *models.Author) error
}
