package service

import (
	"context"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/rs/zerolog"
)

// CommentStore persists course comments.
type CommentStore interface {
	CreateIfAbsent(ctx context.Context, c model.Comment) (*model.Comment, bool, error)
	ListByCourse(ctx context.Context, courseID int) ([]model.Comment, error)
}

// CommentNotifier schedules the notification of a stored comment.
type CommentNotifier interface {
	EnqueueCommentNotification(ctx context.Context, c model.Comment) error
}

type CommentService struct {
	store    CommentStore
	notifier CommentNotifier
	logger   *zerolog.Logger
}

// NewCommentService returns a CommentService. A nil notifier disables
// notifications.
func NewCommentService(store CommentStore, notifier CommentNotifier, logger *zerolog.Logger) *CommentService {
	return &CommentService{store: store, notifier: notifier, logger: logger}
}

// Create stores c unless the user already commented on the course that day.
func (s *CommentService) Create(ctx context.Context, c model.Comment) (*model.Comment, error) {
	stored, created, err := s.store.CreateIfAbsent(ctx, c)
	if err != nil {
		return nil, err
	}
	if !created {
		code := "COMMENT_ALREADY_EXISTS"
		return nil, errs.NewConflictError("A comment for this course and date already exists", true, &code)
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueCommentNotification(ctx, *stored); err != nil {
			// The comment is stored; a lost notification is not worth failing the request.
			s.logger.Error().
				Err(err).
				Int("comment_id", stored.ID).
				Msg("failed to enqueue comment notification")
		}
	}

	return stored, nil
}

// ListByCourse returns the comments of a course, newest first.
func (s *CommentService) ListByCourse(ctx context.Context, courseID int) ([]model.Comment, error) {
	return s.store.ListByCourse(ctx, courseID)
}
