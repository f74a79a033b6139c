package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/lib/email"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "id", Queue: "low"}, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

type fakeNotifier struct {
	to   string
	sent []email.CommentNotification
	err  error
}

func (f *fakeNotifier) SendCommentNotification(to string, n email.CommentNotification) error {
	if f.err != nil {
		return f.err
	}
	f.to = to
	f.sent = append(f.sent, n)
	return nil
}

func newTestJobService() (*JobService, *fakeEnqueuer) {
	logger := zerolog.Nop()
	q := &fakeEnqueuer{}
	return &JobService{client: q, logger: &logger}, q
}

var testComment = model.Comment{
	ID:          12,
	UserID:      3,
	CourseID:    8,
	Content:     "Great course",
	Rating:      5,
	CommentDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
}

func TestEnqueueCommentNotification(t *testing.T) {
	j, q := newTestJobService()

	require.NoError(t, j.EnqueueCommentNotification(context.Background(), testComment))

	require.Len(t, q.tasks, 1)
	assert.Equal(t, TaskCommentNotify, q.tasks[0].Type())

	var p CommentNotifyPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &p))
	assert.Equal(t, 12, p.CommentID)
	assert.Equal(t, 8, p.CourseID)
	assert.True(t, testComment.CommentDate.Equal(p.CommentDate))
}

func TestEnqueueCommentNotificationError(t *testing.T) {
	j, q := newTestJobService()
	q.err = errors.New("redis down")

	err := j.EnqueueCommentNotification(context.Background(), testComment)
	assert.ErrorContains(t, err, "redis down")
}

func TestHandleCommentNotifyTask(t *testing.T) {
	j, _ := newTestJobService()
	n := &fakeNotifier{}
	j.notifier = n
	j.notifyTo = "mods@example.com"

	task, err := NewCommentNotifyTask(testComment)
	require.NoError(t, err)

	require.NoError(t, j.handleCommentNotifyTask(context.Background(), task))
	require.Len(t, n.sent, 1)
	assert.Equal(t, "mods@example.com", n.to)
	assert.Equal(t, "Great course", n.sent[0].Content)
}

func TestHandleCommentNotifyTaskRetriesOnSendFailure(t *testing.T) {
	j, _ := newTestJobService()
	j.notifier = &fakeNotifier{err: errors.New("provider down")}

	task, err := NewCommentNotifyTask(testComment)
	require.NoError(t, err)

	err = j.handleCommentNotifyTask(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleCommentNotifyTaskBadPayload(t *testing.T) {
	j, _ := newTestJobService()
	j.notifier = &fakeNotifier{}

	err := j.handleCommentNotifyTask(context.Background(), asynq.NewTask(TaskCommentNotify, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandlersDisabledWithoutIntegration(t *testing.T) {
	j, _ := newTestJobService()
	logger := zerolog.Nop()
	j.InitHandlers(&config.Config{}, &logger)

	task, err := NewCommentNotifyTask(testComment)
	require.NoError(t, err)
	assert.NoError(t, j.handleCommentNotifyTask(context.Background(), task))
}
