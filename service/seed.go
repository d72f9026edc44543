package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/loragriffin/blog-app/app/models"
	"github.com/loragriffin/blog-app/app/repositories"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML document read by the seed command.
//
//	authors:
//	  - name: Grace
//	posts:
//	  - slug: hello-world
//	    title: Hello, world
//	    body: First post.
//	    created: 2024-01-02T15:04:05Z
//	    author: Grace
type SeedFile struct {
	Authors []SeedAuthor `yaml:"authors"`
	Posts   []SeedPost   `yaml:"posts"`
}

type SeedAuthor struct {
	Name string `yaml:"name"`
}

type SeedPost struct {
	Slug    string    `yaml:"slug"`
	Title   string    `yaml:"title"`
	Body    string    `yaml:"body"`
	Created time.Time `yaml:"created"`
	Author  string    `yaml:"author"` // name of an author in the same file
}

// SeedResult counts what was written.
type SeedResult struct {
	Authors int
	Posts   int
}

// ParseSeed decodes and checks a seed document without touching storage.
func ParseSeed(r io.Reader) (*SeedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc SeedFile
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	names := make(map[string]bool, len(doc.Authors))
	for i, a := range doc.Authors {
		author := models.Author{Name: a.Name}
		if err := author.Validate(); err != nil {
			return nil, fmt.Errorf("author #%d: %w", i+1, err)
		}
		if names[a.Name] {
			return nil, fmt.Errorf("author #%d: duplicate name %q", i+1, a.Name)
		}
		names[a.Name] = true
	}

	slugs := make(map[string]bool, len(doc.Posts))
	for i, p := range doc.Posts {
		post := p.model()
		post.BeforeCreate()
		if err := post.Validate(); err != nil {
			return nil, fmt.Errorf("post #%d: %w", i+1, err)
		}
		if slugs[p.Slug] {
			return nil, fmt.Errorf("post #%d: %w: %s", i+1, repositories.ErrDuplicateSlug, p.Slug)
		}
		slugs[p.Slug] = true
		if p.Author != "" && !names[p.Author] {
			return nil, fmt.Errorf("post #%d: unknown author %q", i+1, p.Author)
		}
	}
	return &doc, nil
}

func (p SeedPost) model() *models.BlogPost {
	return &models.BlogPost{
		Slug:    p.Slug,
		Title:   p.Title,
		Body:    p.Body,
		Created: p.Created,
	}
}

// Seed writes the document's authors, then its posts.
func Seed(ctx context.Context, repo *repositories.Repository, doc *SeedFile) (SeedResult, error) {
	var result SeedResult

	byName := make(map[string]*models.Author, len(doc.Authors))
	for _, a := range doc.Authors {
		author := &models.Author{Name: a.Name}
		if err := repo.Authors.Create(ctx, author); err != nil {
			return result, fmt.Errorf("failed to create author %q: %w", a.Name, err)
		}
		byName[a.Name] = author
		result.Authors++
	}

	for _, p := range doc.Posts {
		post := p.model()
		if author, ok := byName[p.Author]; ok {
			if err := post.SetAuthor(author); err != nil {
				return result, err
			}
		}
		if err := repo.Posts.Create(ctx, post); err != nil {
			return result, fmt.Errorf("failed to create post %q: %w", p.Slug, err)
		}
		result.Posts++
	}
	return result, nil
}

// SeedFromFile parses the file at path and seeds repo with it.
func SeedFromFile(ctx context.Context, repo *repositories.Repository, path string) (SeedResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedResult{}, err
	}
	defer f.Close()

	doc, err := ParseSeed(f)
	if err != nil {
		return SeedResult{}, err
	}
	return Seed(ctx, repo, doc)
}
