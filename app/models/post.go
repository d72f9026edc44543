package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._~-]*(/[A-Za-z0-9][A-Za-z0-9._~-]*)*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// slug: URL-safe unreserved characters, segments joined by single slashes
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks if the post meets all validation requirements
func (p *BlogPost) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.AuthorID != nil && *p.AuthorID <= 0 {
		return errors.New("author_id must be positive")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *BlogPost) BeforeCreate() {
	if p.Created.IsZero() {
		p.Created = time.Now().UTC()
	}
}

// SetAuthor links the post to an author
func (p *BlogPost) SetAuthor(author *Author) error {
	if author == nil {
		return errors.New("author cannot be nil")
	}

	id := author.ID
	p.AuthorID = &id
	return nil
}
