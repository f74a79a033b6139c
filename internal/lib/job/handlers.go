package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type commentNotifier interface {
	SendCommentNotification(to string, n email.CommentNotification) error
}

// InitHandlers builds the dependencies of the task handlers.
//
// Without a Resend API key or a notification address, comment
// notifications are acknowledged and skipped.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if cfg.Integration.ResendAPIKey == "" || cfg.Integration.NotifyEmail == "" {
		logger.Warn().Msg("email integration not configured, comment notifications are disabled")
		return
	}
	j.notifier = email.NewClient(cfg, logger)
	j.notifyTo = cfg.Integration.NotifyEmail
}

// handleCommentNotifyTask emails the moderators about a new comment.
// Returning an error makes asynq retry the task.
func (j *JobService) handleCommentNotifyTask(ctx context.Context, t *asynq.Task) error {
	var p CommentNotifyPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal comment notify payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskCommentNotify).
		Int("comment_id", p.CommentID).
		Int("course_id", p.CourseID).
		Logger()

	if j.notifier == nil {
		log.Debug().Msg("comment notifications disabled, skipping task")
		return nil
	}

	log.Info().Msg("processing comment notification task")

	err := j.notifier.SendCommentNotification(j.notifyTo, email.CommentNotification{
		CommentID:   p.CommentID,
		UserID:      p.UserID,
		CourseID:    p.CourseID,
		Rating:      p.Rating,
		Content:     p.Content,
		CommentDate: p.CommentDate,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to send comment notification")
		return err
	}

	log.Info().Msg("sent comment notification")
	return nil
}
