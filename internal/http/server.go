package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"frontdesk/internal/domain"
	"frontdesk/internal/live"
	"frontdesk/internal/repository"
	"frontdesk/internal/service"
)

// Deps зависимости HTTP слоя
type Deps struct {
	Auth     *service.AuthService
	Admin    *service.AdminService
	Customer *service.CustomerService
	Kitchen  *service.KitchenService
	Waiter   *service.WaiterService
	Sessions *repository.SessionStore
	Broker   *live.Broker
	Log      *slog.Logger
}

type Server struct {
	engine    *gin.Engine
	auth      *service.AuthService
	admin     *service.AdminService
	customer  *service.CustomerService
	kitchen   *service.KitchenService
	waiter    *service.WaiterService
	sessions  *repository.SessionStore
	broker    *live.Broker
	log       *slog.Logger
	heartbeat time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

func NewServer(d Deps) (*Server, error) {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(requestID(), requestLogger(log), recovery(log))
	r.SetHTMLTemplate(tmpl)

	s := &Server{
		engine:    r,
		auth:      d.Auth,
		admin:     d.Admin,
		customer:  d.Customer,
		kitchen:   d.Kitchen,
		waiter:    d.Waiter,
		sessions:  d.Sessions,
		broker:    d.Broker,
		log:       log,
		heartbeat: 25 * time.Second,
		done:      make(chan struct{}),
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) Engine() *gin.Engine { return s.engine }

// CloseStreams ends open /events streams. http.Server.Shutdown does not
// cancel request contexts, so register it with RegisterOnShutdown.
func (s *Server) CloseStreams() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/healthz", s.healthz)

	web := s.engine.Group("", s.loadSession())
	{
		web.GET("/", s.home)
		web.GET("/login", s.loginPage)
		web.POST("/login", s.login)
		web.POST("/logout", s.logout)
		web.GET("/events", s.requireRole(), s.events)

		admin := web.Group("/admin", s.requireRole(domain.RoleAdmin))
		admin.GET("", s.adminPage)
		admin.POST("/tables", s.adminCreateTable)
		admin.POST("/tables/:id", s.adminUpdateTable)
		admin.POST("/tables/:id/delete", s.adminDeleteTable)
		admin.POST("/menu", s.adminCreateMenuItem)
		admin.POST("/menu/:id", s.adminUpdateMenuItem)
		admin.POST("/menu/:id/availability", s.adminSetAvailability)
		admin.POST("/menu/:id/delete", s.adminDeleteMenuItem)

		customer := web.Group("/customer", s.requireRole(domain.RoleCustomer))
		customer.GET("", s.customerPage)
		customer.POST("/table", s.customerSelectTable)
		customer.POST("/cart", s.customerAddToCart)
		customer.POST("/cart/clear", s.customerClearCart)
		customer.POST("/cart/:id/quantity", s.customerSetQuantity)
		customer.POST("/cart/:id/remove", s.customerRemoveFromCart)
		customer.POST("/orders", s.customerPlaceOrder)
		customer.POST("/orders/:id/bill", s.customerRequestBill)

		kitchen := web.Group("/kitchen", s.requireRole(domain.RoleKitchen))
		kitchen.GET("", s.kitchenPage)
		kitchen.POST("/items/:id/advance", s.kitchenAdvance)

		waiter := web.Group("/waiter", s.requireRole(domain.RoleWaiter))
		waiter.GET("", s.waiterPage)
		waiter.POST("/tables/:id/reserve", s.waiterReserve)
		waiter.POST("/tables/:id/release", s.waiterRelease)
		waiter.POST("/tables/:id/open", s.waiterOpenOrder)
		waiter.POST("/items/:id/deliver", s.waiterDeliver)
		waiter.POST("/orders/:id/close", s.waiterCloseBill)

		v1 := web.Group("/api/v1")
		{
			views := v1.Group("/views")
			views.GET("/admin", s.requireRole(domain.RoleAdmin), s.adminView)
			views.GET("/customer", s.requireRole(domain.RoleCustomer), s.customerView)
			views.GET("/kitchen", s.requireRole(domain.RoleKitchen), s.kitchenView)
			views.GET("/waiter", s.requireRole(domain.RoleWaiter), s.waiterView)

			v1.POST("/order-items/:id/status", s.requireRole(domain.RoleKitchen, domain.RoleWaiter), s.setOrderItemStatus)
		}
	}
}

// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]any
// @Router /healthz [get]
func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "subscribers": s.broker.Len()})
}
