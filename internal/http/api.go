package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frontdesk/internal/domain"
	"frontdesk/internal/service"
)

// JSON представления панелей. Те же данные, что и в HTML.

// @Summary Admin dashboard view
// @Tags views
// @Produce json
// @Success 200 {object} service.AdminView
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/views/admin [get]
func (s *Server) adminView(c *gin.Context) {
	c.JSON(http.StatusOK, s.admin.View())
}

// @Summary Customer dashboard view
// @Tags views
// @Produce json
// @Param category query string false "food, drink or dessert"
// @Param q query string false "Name or description contains"
// @Param sort query string false "name, price_asc or price_desc"
// @Param max_price query number false "Max price"
// @Success 200 {object} service.CustomerView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/views/customer [get]
func (s *Server) customerView(c *gin.Context) {
	var q service.MenuQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		if !service.IsValidation(err) {
			err = service.ErrInvalidInput
		}
		abortWithError(c, err)
		return
	}
	sess := currentSession(c)
	c.JSON(http.StatusOK, s.customer.View(sess.User.ID, sess.TableID, sess.Cart, q))
}

// @Summary Kitchen queue view
// @Tags views
// @Produce json
// @Success 200 {object} service.KitchenView
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/views/kitchen [get]
func (s *Server) kitchenView(c *gin.Context) {
	c.JSON(http.StatusOK, s.kitchen.View())
}

// @Summary Waiter dashboard view
// @Tags views
// @Produce json
// @Success 200 {object} service.WaiterView
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/views/waiter [get]
func (s *Server) waiterView(c *gin.Context) {
	sess := currentSession(c)
	c.JSON(http.StatusOK, s.waiter.View(sess.User.ID))
}

// @Summary Change order item status
// @Description Kitchen moves items pending -> preparing -> ready, the waiter marks ready items delivered.
// @Tags order-items
// @Accept json
// @Produce json
// @Param id path int true "Order item ID"
// @Param input body service.ItemStatusForm true "Status"
// @Success 200 {object} domain.OrderItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/order-items/{id}/status [post]
func (s *Server) setOrderItemStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req service.ItemStatusForm
	if err := c.ShouldBindJSON(&req); err != nil {
		if !service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		abortWithError(c, err)
		return
	}

	var it *domain.OrderItem
	if domain.OrderItemStatus(req.Status) == domain.ItemDelivered {
		it, err = s.waiter.Deliver(c.Request.Context(), id)
	} else {
		it, err = s.kitchen.SetItemStatus(c.Request.Context(), id, req)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}
