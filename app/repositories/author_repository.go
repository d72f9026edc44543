package repositories

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/loragriffin/blog-app/app/errs"
	"github.com/loragriffin/blog-app/app/models"
)

// BadgerAuthorRepository implements AuthorRepository using BadgerDB
type BadgerAuthorRepository struct {
	db *badger.DB
}

// NewBadgerAuthorRepository creates a new BadgerAuthorRepository
func NewBadgerAuthorRepository(db *badger.DB) *BadgerAuthorRepository {
	return &BadgerAuthorRepository{db: db}
}

// Create creates a new author
func (r *BadgerAuthorRepository) Create(ctx context.Context, author *models.Author) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := author.Validate(); err != nil {
		return fmt.Errorf("invalid author: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, AuthorSeqKey)
		if err != nil {
			return err
		}
		author.ID = id

		data, err := marshalEntity(author)
		if err != nil {
			return err
		}
		return txn.Set(authorKey(author.ID), data)
	})
}

// GetByID retrieves an author by ID
func (r *BadgerAuthorRepository) GetByID(ctx context.Context, id int) (*models.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var author models.Author
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(authorKey(id))
		if err == badger.ErrKeyNotFound {
			return errs.NewNotFound("author", strconv.Itoa(id))
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &author)
		})
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// ListByNameDesc returns every author ordered by name, descending.
func (r *BadgerAuthorRepository) ListByNameDesc(ctx context.Context) ([]*models.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var authors []*models.Author
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(AuthorKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var author models.Author
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &author)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal author: %w", err)
			}
			authors = append(authors, &author)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortAuthorsByNameDesc(authors)
	return authors, nil
}
