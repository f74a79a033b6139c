package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/hibiken/asynq"
)

// TaskCommentNotify is the task type that notifies moderators of a new
// course comment.
const TaskCommentNotify = "comment:notify"

// CommentNotifyPayload is the JSON payload of a comment:notify task.
type CommentNotifyPayload struct {
	CommentID   int       `json:"comment_id"`
	UserID      int       `json:"user_id"`
	CourseID    int       `json:"course_id"`
	Rating      int       `json:"rating"`
	Content     string    `json:"content"`
	CommentDate time.Time `json:"comment_date"`
}

// NewCommentNotifyTask builds the notification task of c.
//
// The task id is derived from the comment id, so enqueuing the same
// comment twice is rejected by asynq instead of mailing twice.
func NewCommentNotifyTask(c model.Comment) (*asynq.Task, error) {
	payload, err := json.Marshal(CommentNotifyPayload{
		CommentID:   c.ID,
		UserID:      c.UserID,
		CourseID:    c.CourseID,
		Rating:      c.Rating,
		Content:     c.Content,
		CommentDate: c.CommentDate,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskCommentNotify,
		payload,
		asynq.TaskID(fmt.Sprintf("%s:%d", TaskCommentNotify, c.ID)),
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueCommentNotification schedules the notification of a stored comment.
func (j *JobService) EnqueueCommentNotification(ctx context.Context, c model.Comment) error {
	task, err := NewCommentNotifyTask(c)
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", TaskCommentNotify, err)
	}

	info, err := j.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", TaskCommentNotify, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int("comment_id", c.ID).
		Msg("enqueued comment notification")
	return nil
}
