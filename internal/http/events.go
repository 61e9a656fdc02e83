package httpapi

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"frontdesk/internal/domain"
)

// @Summary Live change notifications
// @Description Server-sent events: a "change" event carries the topic whose data changed.
// @Tags live
// @Produce text/event-stream
// @Param topics query string false "Comma separated: tables, menu, orders, order-items"
// @Success 200 {string} string
// @Failure 400 {object} map[string]string
// @Router /events [get]
func (s *Server) events(c *gin.Context) {
	var topics []domain.Topic
	for _, name := range strings.Split(c.Query("topics"), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t, ok := domain.ParseTopic(name)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown topic " + name})
			return
		}
		topics = append(topics, t)
	}

	ch, cancel := s.broker.Subscribe(topics...)
	defer cancel()

	ping := time.NewTicker(s.heartbeat)
	defer ping.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-s.done:
			return false
		case t, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("change", string(t))
			return true
		case <-ping.C:
			c.SSEvent("ping", "")
			return true
		}
	})
}
