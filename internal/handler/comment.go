package handler

import (
	"net/http"
	"time"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/deppfellow/storefront/internal/validation"
	"github.com/labstack/echo/v4"
)

type CreateCommentRequest struct {
	UserID      int    `json:"user_id" validate:"required,min=1"`
	CourseID    int    `json:"course_id" validate:"required,min=1"`
	Content     string `json:"content" validate:"required,max=2000"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	CommentDate string `json:"comment_date" validate:"required,datetime=2006-01-02"`
}

func (r *CreateCommentRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateCommentRequest) comment() model.Comment {
	// Validate already checked the layout.
	date, _ := time.Parse(time.DateOnly, r.CommentDate)
	return model.Comment{
		UserID:      r.UserID,
		CourseID:    r.CourseID,
		Content:     r.Content,
		Rating:      r.Rating,
		CommentDate: date,
	}
}

type ListCourseCommentsRequest struct {
	CourseID int `param:"course_id" validate:"required,min=1"`
}

func (r *ListCourseCommentsRequest) Validate() error {
	return validation.Struct(r)
}

type CommentHandler struct {
	Handler
	comments *service.CommentService
}

func NewCommentHandler(s *server.Server, comments *service.CommentService) *CommentHandler {
	return &CommentHandler{Handler: NewHandler(s), comments: comments}
}

// Create serves POST /comments.
func (h *CommentHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *CreateCommentRequest) (*model.Comment, error) {
		return h.comments.Create(c.Request().Context(), req.comment())
	}, http.StatusCreated, &CreateCommentRequest{})
}

// ListByCourse serves GET /courses/:course_id/comments.
func (h *CommentHandler) ListByCourse() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *ListCourseCommentsRequest) ([]model.Comment, error) {
		comments, err := h.comments.ListByCourse(c.Request().Context(), req.CourseID)
		if err != nil {
			return nil, err
		}
		if comments == nil {
			comments = []model.Comment{}
		}
		return comments, nil
	}, http.StatusOK, &ListCourseCommentsRequest{})
}
