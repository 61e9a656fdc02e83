package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
	"frontdesk/internal/service"
)

// page общие данные шаблона
type page struct {
	Title   string
	User    *domain.User
	Flashes []repository.Flash
	// Topics lists what the page listens to over /events.
	Topics string
	View   any
}

func (s *Server) render(c *gin.Context, name, title string, topics []domain.Topic, view any) {
	sess := currentSession(c)
	p := page{Title: title, User: sess.User, View: view}
	if sess.ID != "" {
		p.Flashes = s.sessions.PopFlashes(sess.ID)
	}
	if len(topics) > 0 {
		names := make([]string, len(topics))
		for i, t := range topics {
			names[i] = string(t)
		}
		p.Topics = strings.Join(names, ",")
	}
	c.HTML(http.StatusOK, name, p)
}

// bindForm binds and validates a form. On failure it flashes the problem,
// redirects back and returns false.
func (s *Server) bindForm(c *gin.Context, back string, form any) bool {
	if err := c.ShouldBind(form); err != nil {
		if !service.IsValidation(err) {
			err = service.ErrInvalidInput
		}
		s.finish(c, back, err, "")
		return false
	}
	return true
}

// pathID reads :id; a bad id is flashed like any other error.
func (s *Server) pathID(c *gin.Context, back string) (int64, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		s.finish(c, back, service.ErrInvalidInput, "")
		return 0, false
	}
	return id, true
}

// Auth

func (s *Server) home(c *gin.Context) {
	sess := currentSession(c)
	if sess.User == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	c.Redirect(http.StatusSeeOther, service.DashboardPath(sess.User.Role))
}

func (s *Server) loginPage(c *gin.Context) {
	if sess := currentSession(c); sess.User != nil {
		c.Redirect(http.StatusSeeOther, service.DashboardPath(sess.User.Role))
		return
	}
	s.render(c, "login.html", "Sign in", nil, nil)
}

func (s *Server) login(c *gin.Context) {
	var f service.LoginForm
	if !s.bindForm(c, "/login", &f) {
		return
	}
	resp, err := s.auth.Login(c.Request.Context(), f)
	if err != nil {
		s.log.Warn("login failed", "request_id", c.GetString(keyRequestID), "username", f.Username, "error", err)
		s.finish(c, "/login", err, "")
		return
	}
	// the pre-login session id never carries a token
	s.sessions.Delete(currentSession(c).ID)
	sess := s.startSession(c)
	_ = s.sessions.Update(sess.ID, func(st *repository.Session) {
		u := resp.User
		st.User = &u
		st.Token = resp.Token
	})
	name := resp.User.Name
	if name == "" {
		name = resp.User.Username
	}
	s.finish(c, service.DashboardPath(resp.User.Role), nil, "Welcome, "+name)
}

func (s *Server) logout(c *gin.Context) {
	sess := currentSession(c)
	s.sessions.Delete(sess.ID)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

// Admin

func (s *Server) adminPage(c *gin.Context) {
	s.render(c, "admin.html", "Admin", []domain.Topic{domain.TopicTables, domain.TopicMenu, domain.TopicOrders}, s.admin.View())
}

func (s *Server) adminCreateTable(c *gin.Context) {
	var f service.TableForm
	if !s.bindForm(c, "/admin", &f) {
		return
	}
	t, err := s.admin.CreateTable(c.Request.Context(), f)
	if err != nil {
		s.finish(c, "/admin", err, "")
		return
	}
	s.finish(c, "/admin", nil, "Table "+strconv.Itoa(t.Number)+" created")
}

func (s *Server) adminUpdateTable(c *gin.Context) {
	id, ok := s.pathID(c, "/admin")
	if !ok {
		return
	}
	var f service.TableForm
	if !s.bindForm(c, "/admin", &f) {
		return
	}
	_, err := s.admin.UpdateTable(c.Request.Context(), id, f)
	s.finish(c, "/admin", err, "Table updated")
}

func (s *Server) adminDeleteTable(c *gin.Context) {
	id, ok := s.pathID(c, "/admin")
	if !ok {
		return
	}
	s.finish(c, "/admin", s.admin.DeleteTable(c.Request.Context(), id), "Table deleted")
}

func (s *Server) adminCreateMenuItem(c *gin.Context) {
	var f service.MenuItemForm
	if !s.bindForm(c, "/admin", &f) {
		return
	}
	m, err := s.admin.CreateMenuItem(c.Request.Context(), f)
	if err != nil {
		s.finish(c, "/admin", err, "")
		return
	}
	s.finish(c, "/admin", nil, m.Name+" added to the menu")
}

func (s *Server) adminUpdateMenuItem(c *gin.Context) {
	id, ok := s.pathID(c, "/admin")
	if !ok {
		return
	}
	var f service.MenuItemForm
	if !s.bindForm(c, "/admin", &f) {
		return
	}
	_, err := s.admin.UpdateMenuItem(c.Request.Context(), id, f)
	s.finish(c, "/admin", err, "Menu item updated")
}

func (s *Server) adminSetAvailability(c *gin.Context) {
	id, ok := s.pathID(c, "/admin")
	if !ok {
		return
	}
	available := c.PostForm("available") == "true"
	m, err := s.admin.SetAvailability(c.Request.Context(), id, available)
	if err != nil {
		s.finish(c, "/admin", err, "")
		return
	}
	msg := m.Name + " is available again"
	if !available {
		msg = m.Name + " is hidden from guests"
	}
	s.finish(c, "/admin", nil, msg)
}

func (s *Server) adminDeleteMenuItem(c *gin.Context) {
	id, ok := s.pathID(c, "/admin")
	if !ok {
		return
	}
	s.finish(c, "/admin", s.admin.DeleteMenuItem(c.Request.Context(), id), "Menu item deleted")
}

// Customer

func (s *Server) customerPage(c *gin.Context) {
	var q service.MenuQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.flash(c, repository.FlashError, userMessage(err))
		q = service.MenuQuery{}
	}
	sess := currentSession(c)
	s.render(c, "customer.html", "Menu", []domain.Topic{domain.TopicMenu, domain.TopicOrders, domain.TopicOrderItems},
		s.customer.View(sess.User.ID, sess.TableID, sess.Cart, q))
}

func (s *Server) customerSelectTable(c *gin.Context) {
	var f struct {
		TableID int64 `form:"table_id" binding:"required,gt=0"`
	}
	if !s.bindForm(c, "/customer", &f) {
		return
	}
	sess := currentSession(c)
	_ = s.sessions.Update(sess.ID, func(st *repository.Session) { st.TableID = f.TableID })
	s.finish(c, "/customer", nil, "")
}

func (s *Server) customerAddToCart(c *gin.Context) {
	var f service.CartForm
	if !s.bindForm(c, "/customer", &f) {
		return
	}
	sess := currentSession(c)
	var err error
	_ = s.sessions.Update(sess.ID, func(st *repository.Session) {
		err = s.customer.AddToCart(&st.Cart, f)
	})
	s.finish(c, "/customer", err, "Added to cart")
}

func (s *Server) customerSetQuantity(c *gin.Context) {
	id, ok := s.pathID(c, "/customer")
	if !ok {
		return
	}
	var f struct {
		Quantity int `form:"quantity" binding:"gte=0,lte=20"`
	}
	if !s.bindForm(c, "/customer", &f) {
		return
	}
	sess := currentSession(c)
	_ = s.sessions.Update(sess.ID, func(st *repository.Session) { st.Cart.SetQuantity(id, f.Quantity) })
	s.finish(c, "/customer", nil, "")
}

func (s *Server) customerRemoveFromCart(c *gin.Context) {
	id, ok := s.pathID(c, "/customer")
	if !ok {
		return
	}
	sess := currentSession(c)
	_ = s.sessions.Update(sess.ID, func(st *repository.Session) { st.Cart.Remove(id) })
	s.finish(c, "/customer", nil, "")
}

func (s *Server) customerClearCart(c *gin.Context) {
	sess := currentSession(c)
	_ = s.sessions.Update(sess.ID, func(st *repository.Session) { st.Cart.Clear() })
	s.finish(c, "/customer", nil, "")
}

// customerPlaceOrder removes the lines the server accepted from the cart,
// also on failure, so a retry sends only what is missing.
func (s *Server) customerPlaceOrder(c *gin.Context) {
	sess := currentSession(c)
	o, sent, err := s.customer.PlaceOrder(c.Request.Context(), sess.User.ID, sess.TableID, sess.Cart)
	if len(sent) > 0 {
		_ = s.sessions.Update(sess.ID, func(st *repository.Session) { st.Cart.Deduct(sent) })
	}
	if err != nil {
		if len(sent) > 0 {
			s.log.Warn("order placed partially", "request_id", c.GetString(keyRequestID), "sent", len(sent), "error", err)
		}
		s.finish(c, "/customer", err, "")
		return
	}
	s.finish(c, "/customer", nil, "Order "+strconv.FormatInt(o.ID, 10)+" sent to the kitchen")
}

func (s *Server) customerRequestBill(c *gin.Context) {
	id, ok := s.pathID(c, "/customer")
	if !ok {
		return
	}
	_, err := s.customer.RequestBill(c.Request.Context(), id)
	s.finish(c, "/customer", err, "A waiter will bring the bill")
}

// Kitchen

func (s *Server) kitchenPage(c *gin.Context) {
	s.render(c, "kitchen.html", "Kitchen", []domain.Topic{domain.TopicOrderItems, domain.TopicOrders}, s.kitchen.View())
}

func (s *Server) kitchenAdvance(c *gin.Context) {
	id, ok := s.pathID(c, "/kitchen")
	if !ok {
		return
	}
	it, err := s.kitchen.Advance(c.Request.Context(), id)
	if err != nil {
		s.finish(c, "/kitchen", err, "")
		return
	}
	s.finish(c, "/kitchen", nil, it.MenuItemName+" is "+string(it.Status))
}

// Waiter

func (s *Server) waiterPage(c *gin.Context) {
	sess := currentSession(c)
	s.render(c, "waiter.html", "Waiter", []domain.Topic{domain.TopicTables, domain.TopicOrders, domain.TopicOrderItems},
		s.waiter.View(sess.User.ID))
}

func (s *Server) waiterReserve(c *gin.Context) {
	id, ok := s.pathID(c, "/waiter")
	if !ok {
		return
	}
	_, err := s.waiter.Reserve(c.Request.Context(), id)
	s.finish(c, "/waiter", err, "Table reserved")
}

func (s *Server) waiterRelease(c *gin.Context) {
	id, ok := s.pathID(c, "/waiter")
	if !ok {
		return
	}
	_, err := s.waiter.Release(c.Request.Context(), id)
	s.finish(c, "/waiter", err, "Table released")
}

func (s *Server) waiterOpenOrder(c *gin.Context) {
	id, ok := s.pathID(c, "/waiter")
	if !ok {
		return
	}
	o, err := s.waiter.OpenOrder(c.Request.Context(), id)
	if err != nil {
		s.finish(c, "/waiter", err, "")
		return
	}
	s.finish(c, "/waiter", nil, "Order "+strconv.FormatInt(o.ID, 10)+" opened")
}

func (s *Server) waiterDeliver(c *gin.Context) {
	id, ok := s.pathID(c, "/waiter")
	if !ok {
		return
	}
	_, err := s.waiter.Deliver(c.Request.Context(), id)
	s.finish(c, "/waiter", err, "Marked as delivered")
}

func (s *Server) waiterCloseBill(c *gin.Context) {
	id, ok := s.pathID(c, "/waiter")
	if !ok {
		return
	}
	var f service.CloseBillForm
	if !s.bindForm(c, "/waiter", &f) {
		return
	}
	o, err := s.waiter.CloseBill(c.Request.Context(), id, f)
	if err != nil {
		s.finish(c, "/waiter", err, "")
		return
	}
	msg := "Bill closed"
	if o.PaymentMethod != nil {
		msg += ", paid by " + string(*o.PaymentMethod)
	}
	s.finish(c, "/waiter", nil, msg)
}
