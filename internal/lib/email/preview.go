package email

// PreviewData contains sample template data for rendering templates
// locally, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateCommentNotification: {
		"CommentID":   "42",
		"UserID":      "7",
		"CourseID":    "3",
		"Rating":      "5",
		"Content":     "Clear explanations and good exercises.",
		"CommentDate": "2024-05-01",
	},
}
