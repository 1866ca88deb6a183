package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/dto"
	"github.com/prperemyshlev/videotube/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
	aggregator     service.Aggregator
}

func NewCommentHandler(commentService service.CommentService, aggregator service.Aggregator) *CommentHandler {
	return &CommentHandler{commentService: commentService, aggregator: aggregator}
}

// List returns one page of a video's comments, newest first
func (h *CommentHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.aggregator.VideoComments(c.Request.Context(), c.Param("videoId"), pagination(q))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, page, "Comments fetched successfully")
}

func (h *CommentHandler) Add(c *gin.Context) {
	var req dto.ContentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Add(c.Request.Context(), currentUserID(c), c.Param("videoId"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, comment, "Comment added successfully")
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req dto.ContentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), currentUserID(c), c.Param("commentId"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, comment, "Comment updated successfully")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.commentService.Delete(c.Request.Context(), currentUserID(c), c.Param("commentId")); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{}, "Comment deleted successfully")
}
