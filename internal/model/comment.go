package model

import "time"

// Comment is a course comment. (UserID, CourseID, CommentDate) is its natural key.
type Comment struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	CourseID    int       `json:"course_id" db:"course_id"`
	Content     string    `json:"content" db:"content"`
	Rating      int       `json:"rating" db:"rating"`
	CommentDate time.Time `json:"comment_date" db:"comment_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
