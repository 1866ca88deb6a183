package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/dto"
	"github.com/prperemyshlev/videotube/internal/service"
)

type TweetHandler struct {
	tweetService service.TweetService
}

func NewTweetHandler(tweetService service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.ContentRequest
	if !bindJSON(c, &req) {
		return
	}

	tweet, err := h.tweetService.Create(c.Request.Context(), currentUserID(c), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, tweet, "Tweet created successfully")
}

func (h *TweetHandler) ListByUser(c *gin.Context) {
	tweets, err := h.tweetService.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, tweets, "User tweets fetched successfully")
}

func (h *TweetHandler) Update(c *gin.Context) {
	var req dto.ContentRequest
	if !bindJSON(c, &req) {
		return
	}

	tweet, err := h.tweetService.Update(c.Request.Context(), currentUserID(c), c.Param("tweetId"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, tweet, "Tweet updated successfully")
}

func (h *TweetHandler) Delete(c *gin.Context) {
	if err := h.tweetService.Delete(c.Request.Context(), currentUserID(c), c.Param("tweetId")); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{}, "Tweet deleted successfully")
}
