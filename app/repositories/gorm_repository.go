package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/loragriffin/blog-app/app/errs"
	"github.com/loragriffin/blog-app/app/models"
	"gorm.io/gorm"
)

// GormPostRepository implements PostRepository on a relational store.
type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db}
}

// ListByCreatedDesc returns all posts ordered by created, newest first
func (r *GormPostRepository) ListByCreatedDesc(ctx context.Context) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.db.WithContext(ctx).Order("created DESC").Order("id DESC").Find(&posts).Error
	return posts, err
}

// GetBySlug fetches at most two rows so an ambiguous slug is detected.
func (r *GormPostRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.db.WithContext(ctx).Where("slug = ?", slug).Limit(2).Find(&posts).Error
	if err != nil {
		return nil, err
	}

	switch len(posts) {
	case 0:
		return nil, errs.NewNotFound("post", slug)
	case 1:
		return posts[0], nil
	default:
		return nil, errs.NewAmbiguousMatch("post", slug, len(posts))
	}
}

// Save writes every column of the post back
func (r *GormPostRepository) Save(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Create inserts a new post
func (r *GormPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("slug = ?", post.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateSlug, post.Slug)
	}
	return r.db.WithContext(ctx).Create(post).Error
}

// GormAuthorRepository implements AuthorRepository on a relational store.
type GormAuthorRepository struct {
	db *gorm.DB
}

func NewGormAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db}
}

func (r *GormAuthorRepository) ListByNameDesc(ctx context.Context) ([]*models.Author, error) {
	var authors []*models.Author
	err := r.db.WithContext(ctx).Order("name DESC").Order("id DESC").Find(&authors).Error
	return authors, err
}

func (r *GormAuthorRepository) GetByID(ctx context.Context, id int) (*models.Author, error) {
	var author models.Author
	err := r.db.WithContext(ctx).First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("author", strconv.Itoa(id))
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *GormAuthorRepository) Create(ctx context.Context, author *models.Author) error {
	if err := author.Validate(); err != nil {
		return fmt.Errorf("invalid author: %w", err)
	}
	return r.db.WithContext(ctx).Create(author).Error
}
