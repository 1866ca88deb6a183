package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/videotube/internal/service"
)

type DashboardHandler struct {
	aggregator service.Aggregator
}

func NewDashboardHandler(aggregator service.Aggregator) *DashboardHandler {
	return &DashboardHandler{aggregator: aggregator}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.aggregator.ChannelStats(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stats, "Channel stats fetched successfully")
}

// Videos lists every video of the channel, published or not
func (h *DashboardHandler) Videos(c *gin.Context) {
	videos, err := h.aggregator.ChannelVideos(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, videos, "Channel videos fetched successfully")
}
