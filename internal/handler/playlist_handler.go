package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/dto"
	"github.com/prperemyshlev/videotube/internal/service"
)

type PlaylistHandler struct {
	playlistService service.PlaylistService
}

func NewPlaylistHandler(playlistService service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistRequest
	if !bindJSON(c, &req) {
		return
	}

	playlist, err := h.playlistService.Create(c.Request.Context(), currentUserID(c), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, playlist, "Playlist created successfully")
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	playlist, err := h.playlistService.Get(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, playlist, "Playlist fetched successfully")
}

func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	playlists, err := h.playlistService.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, playlists, "User playlists fetched successfully")
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	var req dto.PlaylistRequest
	if !bindJSON(c, &req) {
		return
	}

	playlist, err := h.playlistService.Update(c.Request.Context(), currentUserID(c), c.Param("playlistId"), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, playlist, "Playlist updated successfully")
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	if err := h.playlistService.Delete(c.Request.Context(), currentUserID(c), c.Param("playlistId")); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{}, "Playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlist, err := h.playlistService.AddVideo(c.Request.Context(), currentUserID(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, playlist, "Video added to playlist")
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlist, err := h.playlistService.RemoveVideo(c.Request.Context(), currentUserID(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, playlist, "Video removed from playlist")
}
