package repositories

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/loragriffin/blog-app/app/errs"
	"github.com/loragriffin/blog-app/app/models"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create stores a new post and assigns its ID. Slugs must be unique.
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		matches, err := scanPosts(txn, func(p *models.BlogPost) bool { return p.Slug == post.Slug })
		if err != nil {
			return err
		}
		if len(matches) > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateSlug, post.Slug)
		}

		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.ID), data)
	})
}

// GetBySlug returns the single post with the given slug.
func (r *BadgerPostRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matches []*models.BlogPost
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		matches, err = scanPosts(txn, func(p *models.BlogPost) bool { return p.Slug == slug })
		return err
	})
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, errs.NewNotFound("post", slug)
	case 1:
		return matches[0], nil
	default:
		return nil, errs.NewAmbiguousMatch("post", slug, len(matches))
	}
}

// ListByCreatedDesc returns every post, newest first.
func (r *BadgerPostRepository) ListByCreatedDesc(ctx context.Context) ([]*models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var posts []*models.BlogPost
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		posts, err = scanPosts(txn, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	SortPostsByCreatedDesc(posts)
	return posts, nil
}

// Save rewrites an existing post as-is.
func (r *BadgerPostRepository) Save(ctx context.Context, post *models.BlogPost) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(post.ID)

		// Verify post exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return errs.NewNotFound("post", post.Slug)
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// scanPosts walks the post prefix and collects the posts keep accepts (all when keep is nil).
func scanPosts(txn *badger.Txn, keep func(*models.BlogPost) bool) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	prefix := []byte(PostKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var post models.BlogPost
		err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal post: %w", err)
		}
		if keep == nil || keep(&post) {
			posts = append(posts, &post)
		}
	}
	return posts, nil
}
