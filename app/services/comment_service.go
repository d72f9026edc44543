package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/loragriffin/blog-app/app/errs"
	"github.com/loragriffin/blog-app/app/metrics"
	"github.com/loragriffin/blog-app/app/models"
	"github.com/loragriffin/blog-app/app/repositories"
)

// MaxCommentLength bounds the echoed comment, in characters.
const MaxCommentLength = 1000

// CommentService accepts comments. Comments are echoed back, never stored.
type CommentService struct {
	postRepo repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(postRepo repositories.PostRepository) *CommentService {
	return &CommentService{postRepo: postRepo}
}

// SubmitComment looks the post up, lists all posts and re-saves the post unchanged.
// The returned post and listing are what the comment page renders alongside the comment.
func (s *CommentService) SubmitComment(ctx context.Context, slug, comment string) (*models.BlogPost, []*models.BlogPost, error) {
	if err := validateComment(comment); err != nil {
		return nil, nil, err
	}

	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.postRepo.ListByCreatedDesc(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list posts: %w", err)
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, nil, fmt.Errorf("failed to save post %s: %w", slug, err)
	}

	metrics.CommentsReceived.Inc()
	return post, posts, nil
}

// validateComment checks the comment's length; an empty comment is allowed
func validateComment(comment string) error {
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return errs.NewInvalidFieldError("comment", fmt.Sprintf("longer than %d characters", MaxCommentLength))
	}
	return nil
}
