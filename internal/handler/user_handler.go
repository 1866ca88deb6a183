package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/dto"
	"github.com/prperemyshlev/videotube/internal/service"
)

// UserHandler serves account updates and channel pages
type UserHandler struct {
	userService service.UserService
	aggregator  service.Aggregator
	uploads     *Uploads
}

func NewUserHandler(userService service.UserService, aggregator service.Aggregator, uploads *Uploads) *UserHandler {
	return &UserHandler{
		userService: userService,
		aggregator:  aggregator,
		uploads:     uploads,
	}
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateAccount(c.Request.Context(), currentUserID(c), req.FullName, req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user, "Account details updated successfully")
}

type imageUpdate func(c *gin.Context, userID, localPath string) (*domain.PublicUser, error)

func (h *UserHandler) updateImage(c *gin.Context, field, message string, update imageUpdate) {
	path, remove, err := h.uploads.Save(c, field)
	defer remove()
	if err != nil {
		fail(c, err)
		return
	}

	user, err := update(c, currentUserID(c), path)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user, message)
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", "Avatar updated successfully",
		func(c *gin.Context, userID, path string) (*domain.PublicUser, error) {
			return h.userService.UpdateAvatar(c.Request.Context(), userID, path)
		})
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", "Cover image updated successfully",
		func(c *gin.Context, userID, path string) (*domain.PublicUser, error) {
			return h.userService.UpdateCoverImage(c.Request.Context(), userID, path)
		})
}

// ChannelProfile returns the public channel page of a username
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	profile, err := h.aggregator.ChannelProfile(c.Request.Context(), c.Param("username"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, profile, "User channel fetched successfully")
}

func (h *UserHandler) WatchHistory(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.aggregator.WatchHistory(c.Request.Context(), currentUserID(c), pagination(q))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, page, "Watch history fetched successfully")
}

func pagination(q dto.PageQuery) service.Pagination {
	return service.Pagination{Page: q.Page, Limit: q.Limit}
}
