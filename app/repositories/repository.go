package repositories

import (
	"github.com/dgraph-io/badger/v4"
	"gorm.io/gorm"
)

// Repository bundles the post and author stores of one backend.
type Repository struct {
	Posts   PostRepository
	Authors AuthorRepository

	closeFn func() error
}

// NewBadgerRepository wires both stores to a single Badger instance.
func NewBadgerRepository(db *badger.DB) *Repository {
	return &Repository{
		Posts:   NewBadgerPostRepository(db),
		Authors: NewBadgerAuthorRepository(db),
		closeFn: db.Close,
	}
}

// NewGormRepository wires both stores to a relational connection.
func NewGormRepository(db *gorm.DB) *Repository {
	return &Repository{
		Posts:   NewGormPostRepository(db),
		Authors: NewGormAuthorRepository(db),
		closeFn: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// New bundles arbitrary implementations; close may be nil.
func New(posts PostRepository, authors AuthorRepository, close func() error) *Repository {
	return &Repository{Posts: posts, Authors: authors, closeFn: close}
}

// Close releases the underlying storage handle.
func (r *Repository) Close() error {
	if r.closeFn == nil {
		return nil
	}
	return r.closeFn()
}
