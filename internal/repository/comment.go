package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/jmoiron/sqlx"
)

const commentColumns = "id, user_id, course_id, content, rating, comment_date, created_at"

// CommentRepository reads and writes the comments table.
type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// CreateIfAbsent inserts c unless a comment with the same user, course and
// date exists. The check and the insert are one statement backed by the
// unique constraint, so concurrent submissions cannot both succeed.
//
// created is false when the natural key was already taken.
func (r *CommentRepository) CreateIfAbsent(ctx context.Context, c model.Comment) (comment *model.Comment, created bool, err error) {
	query := r.db.Rebind(statement(
		"INSERT INTO comments (user_id, course_id, content, rating, comment_date, created_at)",
		"VALUES (?, ?, ?, ?, ?, ?)",
		"ON CONFLICT (user_id, course_id, comment_date) DO NOTHING",
		"RETURNING", commentColumns,
	))

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var stored model.Comment
	err = r.db.GetContext(ctx, &stored, query,
		c.UserID, c.CourseID, c.Content, c.Rating, c.CommentDate, createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("inserting comment: %w", err)
	}
	return &stored, true, nil
}

// ListByCourse returns the comments of a course, newest first.
func (r *CommentRepository) ListByCourse(ctx context.Context, courseID int) ([]model.Comment, error) {
	query := r.db.Rebind(statement(
		"SELECT", commentColumns, "FROM comments WHERE course_id = ?",
		"ORDER BY comment_date DESC, id DESC",
	))

	comments := []model.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, courseID); err != nil {
		return nil, fmt.Errorf("listing comments of course %d: %w", courseID, err)
	}
	return comments, nil
}
