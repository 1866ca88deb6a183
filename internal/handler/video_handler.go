package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/dto"
	"github.com/prperemyshlev/videotube/internal/service"
)

type VideoHandler struct {
	videoService service.VideoService
	aggregator   service.Aggregator
	uploads      *Uploads
}

func NewVideoHandler(videoService service.VideoService, aggregator service.Aggregator, uploads *Uploads) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		aggregator:   aggregator,
		uploads:      uploads,
	}
}

// List returns one page of the published video feed
func (h *VideoHandler) List(c *gin.Context) {
	var q dto.VideoListQuery
	if !bindQuery(c, &q) {
		return
	}

	query := domain.VideoQuery{
		Query:    strings.TrimSpace(q.Query),
		OwnerID:  q.UserID,
		SortBy:   q.SortBy,
		SortDesc: strings.EqualFold(q.SortType, "desc"),
	}

	page, err := h.aggregator.Videos(c.Request.Context(), query, pagination(q.PageQuery))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, page, "Videos fetched successfully")
}

func (h *VideoHandler) Publish(c *gin.Context) {
	var req dto.VideoRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	videoPath, removeVideo, err := h.uploads.Save(c, "videoFile")
	defer removeVideo()
	if err != nil {
		fail(c, err)
		return
	}

	thumbnailPath, removeThumbnail, err := h.uploads.Save(c, "thumbnail")
	defer removeThumbnail()
	if err != nil {
		fail(c, err)
		return
	}

	video, err := h.videoService.Publish(c.Request.Context(), currentUserID(c), service.PublishVideoInput{
		Title:         req.Title,
		Description:   req.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, video, "Video published successfully")
}

func (h *VideoHandler) Get(c *gin.Context) {
	video, err := h.videoService.Get(c.Request.Context(), currentUserID(c), c.Param("videoId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, video, "Video fetched successfully")
}

func (h *VideoHandler) Update(c *gin.Context) {
	var req dto.VideoRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	thumbnailPath, removeThumbnail, err := h.uploads.Save(c, "thumbnail")
	defer removeThumbnail()
	if err != nil {
		fail(c, err)
		return
	}

	video, err := h.videoService.Update(c.Request.Context(), currentUserID(c), c.Param("videoId"), service.UpdateVideoInput{
		Title:         req.Title,
		Description:   req.Description,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, video, "Video updated successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
	if err := h.videoService.Delete(c.Request.Context(), currentUserID(c), c.Param("videoId")); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{}, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	video, err := h.videoService.TogglePublish(c.Request.Context(), currentUserID(c), c.Param("videoId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, video, "Publish status toggled successfully")
}
