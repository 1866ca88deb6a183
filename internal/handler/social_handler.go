package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/domain"
	"github.com/prperemyshlev/videotube/internal/dto"
	"github.com/prperemyshlev/videotube/internal/service"
)

// SocialHandler serves likes and subscriptions
type SocialHandler struct {
	likeService         service.LikeService
	subscriptionService service.SubscriptionService
	aggregator          service.Aggregator
}

func NewSocialHandler(
	likeService service.LikeService,
	subscriptionService service.SubscriptionService,
	aggregator service.Aggregator,
) *SocialHandler {
	return &SocialHandler{
		likeService:         likeService,
		subscriptionService: subscriptionService,
		aggregator:          aggregator,
	}
}

// ToggleLike returns a handler toggling a like on the target named by param
func (h *SocialHandler) ToggleLike(target domain.LikeTarget, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		liked, err := h.likeService.Toggle(c.Request.Context(), currentUserID(c), target, c.Param(param))
		if err != nil {
			fail(c, err)
			return
		}

		message := "Like removed"
		if liked {
			message = "Like added"
		}
		ok(c, dto.LikeStatus{IsLiked: liked}, message)
	}
}

func (h *SocialHandler) LikedVideos(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.aggregator.LikedVideos(c.Request.Context(), currentUserID(c), pagination(q))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, page, "Liked videos fetched successfully")
}

func (h *SocialHandler) ToggleSubscription(c *gin.Context) {
	subscribed, err := h.subscriptionService.Toggle(c.Request.Context(), currentUserID(c), c.Param("channelId"))
	if err != nil {
		fail(c, err)
		return
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	ok(c, dto.SubscriptionStatus{IsSubscribed: subscribed}, message)
}

func (h *SocialHandler) Subscribers(c *gin.Context) {
	users, err := h.aggregator.Subscribers(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, users, "Subscribers fetched successfully")
}

func (h *SocialHandler) SubscribedChannels(c *gin.Context) {
	users, err := h.aggregator.SubscribedChannels(c.Request.Context(), c.Param("subscriberId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, users, "Subscribed channels fetched successfully")
}
