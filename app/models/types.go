package models

import "time"

// BlogPost represents a published blog entry. Slug is the public identifier used in URLs.
type BlogPost struct {
	ID       int       `json:"id" gorm:"primaryKey" validate:"gte=0"`
	Slug     string    `json:"slug" gorm:"uniqueIndex;not null" validate:"required,slug,max=200"`
	Title    string    `json:"title" gorm:"not null" validate:"required,max=200"`
	Body     string    `json:"body" gorm:"type:text"`
	Created  time.Time `json:"created" gorm:"index;not null" validate:"required"`
	AuthorID *int      `json:"author_id,omitempty" gorm:"index"`
}

// TableName pins the relational table name.
func (BlogPost) TableName() string {
	return "blog_posts"
}

// Author represents the writer of one or more posts.
type Author struct {
	ID   int    `json:"id" gorm:"primaryKey" validate:"gte=0"`
	Name string `json:"name" gorm:"not null" validate:"required,max=100"`
}

func (Author) TableName() string {
	return "authors"
}
