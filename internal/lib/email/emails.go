package email

import (
	"fmt"
	"strconv"
	"time"
)

// CommentNotification describes a newly stored course comment.
type CommentNotification struct {
	CommentID   int
	UserID      int
	CourseID    int
	Rating      int
	Content     string
	CommentDate time.Time
}

func (n CommentNotification) templateData() map[string]string {
	return map[string]string{
		"CommentID":   strconv.Itoa(n.CommentID),
		"UserID":      strconv.Itoa(n.UserID),
		"CourseID":    strconv.Itoa(n.CourseID),
		"Rating":      strconv.Itoa(n.Rating),
		"Content":     n.Content,
		"CommentDate": n.CommentDate.Format(time.DateOnly),
	}
}

// SendCommentNotification tells the moderators about a new comment.
func (c *Client) SendCommentNotification(to string, n CommentNotification) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("New comment on course %d", n.CourseID),
		TemplateCommentNotification,
		n.templateData(),
	)
}
