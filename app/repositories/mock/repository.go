package mock

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/loragriffin/blog-app/app/errs"
	"github.com/loragriffin/blog-app/app/models"
	"github.com/loragriffin/blog-app/app/repositories"
)

type PostRepository struct {
	posts  map[int]*models.BlogPost
	nextID int
	saves  int
	mutex  sync.RWMutex
}

type AuthorRepository struct {
	authors map[int]*models.Author
	nextID  int
	mutex   sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.BlogPost),
		nextID: 1,
	}
}

func NewAuthorRepository() *AuthorRepository {
	return &AuthorRepository{
		authors: make(map[int]*models.Author),
		nextID:  1,
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[int]*models.BlogPost)
	m.nextID = 1
	m.saves = 0
}

// Saves reports how many times Save was called.
func (m *PostRepository) Saves() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.saves
}

// Insert stores a post without the uniqueness check, for ambiguity tests.
func (m *PostRepository) Insert(post *models.BlogPost) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.BeforeCreate()
	for _, existing := range m.posts {
		if existing.Slug == post.Slug {
			return fmt.Errorf("%w: %s", repositories.ErrDuplicateSlug, post.Slug)
		}
	}
	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var matches []*models.BlogPost
	for _, post := range m.posts {
		if post.Slug == slug {
			matches = append(matches, post)
		}
	}
	switch len(matches) {
	case 0:
		return nil, errs.NewNotFound("post", slug)
	case 1:
		copied := *matches[0]
		return &copied, nil
	default:
		return nil, errs.NewAmbiguousMatch("post", slug, len(matches))
	}
}

func (m *PostRepository) ListByCreatedDesc(ctx context.Context) ([]*models.BlogPost, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.BlogPost, 0, len(m.posts))
	for _, post := range m.posts {
		copied := *post
		posts = append(posts, &copied)
	}
	repositories.SortPostsByCreatedDesc(posts)
	return posts, nil
}

func (m *PostRepository) Save(ctx context.Context, post *models.BlogPost) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return errs.NewNotFound("post", post.Slug)
	}
	copied := *post
	m.posts[post.ID] = &copied
	m.saves++
	return nil
}

// AuthorRepository implementation
func (m *AuthorRepository) Create(ctx context.Context, author *models.Author) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	author.ID = m.nextID
	m.nextID++
	m.authors[author.ID] = author
	return nil
}

func (m *AuthorRepository) GetByID(ctx context.Context, id int) (*models.Author, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	author, exists := m.authors[id]
	if !exists {
		return nil, errs.NewNotFound("author", strconv.Itoa(id))
	}
	copied := *author
	return &copied, nil
}

func (m *AuthorRepository) ListByNameDesc(ctx context.Context) ([]*models.Author, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	authors := make([]*models.Author, 0, len(m.authors))
	for _, author := range m.authors {
		copied := *author
		authors = append(authors, &copied)
	}
	repositories.SortAuthorsByNameDesc(authors)
	return authors, nil
}

// NewRepository bundles fresh in-memory stores.
func NewRepository() (*repositories.Repository, *PostRepository, *AuthorRepository) {
	posts := NewPostRepository()
	authors := NewAuthorRepository()
	return repositories.New(posts, authors, nil), posts, authors
}
