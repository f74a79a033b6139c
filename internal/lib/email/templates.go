package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateCommentNotification corresponds to templates/comment_notification.html
	TemplateCommentNotification Template = "comment_notification"
)
