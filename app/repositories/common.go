package repositories

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/loragriffin/blog-app/app/models"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix   = "post:"
	AuthorKeyPrefix = "author:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey   = "seq:post"
	AuthorSeqKey = "seq:author"
)

var ErrDuplicateSlug = errors.New("slug already in use")

func postKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%d", PostKeyPrefix, id))
}

func authorKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%d", AuthorKeyPrefix, id))
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id uint64
	item, err := txn.Get([]byte(seqKey))
	switch {
	case err == badger.ErrKeyNotFound:
		id = 1
	case err != nil:
		return 0, fmt.Errorf("failed to get sequence: %w", err)
	default:
		err = item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupt sequence %s: %d bytes", seqKey, len(val))
			}
			id = binary.BigEndian.Uint64(val) + 1
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, id)
	if err := txn.Set([]byte(seqKey), buf); err != nil {
		return 0, fmt.Errorf("failed to update sequence: %w", err)
	}

	return int(id), nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// SortPostsByCreatedDesc orders newest first; ties fall back to the higher ID.
func SortPostsByCreatedDesc(posts []*models.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Created.Equal(posts[j].Created) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].Created.After(posts[j].Created)
	})
}

// SortAuthorsByNameDesc orders authors by name, Z to A.
func SortAuthorsByNameDesc(authors []*models.Author) {
	sort.SliceStable(authors, func(i, j int) bool {
		if c := strings.Compare(authors[i].Name, authors[j].Name); c != 0 {
			return c > 0
		}
		return authors[i].ID > authors[j].ID
	})
}
