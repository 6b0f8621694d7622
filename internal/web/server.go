// Package web serves the storefront JSON API over gin.
package web

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"printshop/internal/config"
	"printshop/internal/logx"
	"printshop/internal/models"
	"printshop/internal/repo"
	"printshop/internal/storefront"
	"printshop/internal/syncer"
)

const sessionName = "ps_session"

// Checkout creates the upstream cart a buyer is redirected to.
type Checkout interface {
	CreateCart(ctx context.Context, lines []storefront.CartLineInput) (*storefront.Cart, error)
}

// Users authenticates back-office accounts.
type Users interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
}

// Syncer refreshes the catalog snapshot.
type Syncer interface {
	Run(ctx context.Context) (*syncer.Report, error)
}

// SyncLog reports the most recent catalog sync.
type SyncLog interface {
	LastSync(ctx context.Context) (*models.SyncRun, error)
}

type Deps struct {
	Catalog  repo.Reader
	Users    Users
	Checkout Checkout
	Syncer   Syncer
	SyncLog  SyncLog

	// Sessions defaults to a cookie store signed with SessionSecret.
	Sessions SessionStore

	// Ping checks the database for /health. Optional.
	Ping func(ctx context.Context) error

	SessionSecret string
	ContactNumber string
	Env           config.Environment
}

type Server struct {
	Deps
	cartLimit int
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(d Deps) *gin.Engine {
	if d.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if d.Env == config.Testing {
		gin.SetMode(gin.TestMode)
	}

	store := d.Sessions
	if store.Store == nil {
		store = CookieSessionStore(d.SessionSecret)
	}
	store.Options(sessionOptions(d.Env))

	s := &Server{Deps: d, cartLimit: store.CartLimit}
	r := gin.New()
	r.Use(gin.Recovery(), logx.Gin())
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/health", s.health)

	r.GET("/products", s.listProducts)
	r.GET("/products/:handle", s.getProduct)
	r.GET("/products/:handle/quote", s.quote)
	r.GET("/products/:handle/prices.xlsx", s.priceSheet)
	r.GET("/products/:handle/order-link", s.orderLink)

	r.GET("/categories", s.listCategories)
	r.GET("/collections", s.listCollections)
	r.GET("/collections/:handle", s.getCollection)

	r.GET("/cart", s.showCart)
	r.POST("/cart/add", s.addToCart)
	r.POST("/cart/update", s.updateCart)
	r.POST("/cart/remove", s.removeFromCart)
	r.POST("/cart/clear", s.clearCart)
	r.POST("/checkout", s.checkout)

	admin := r.Group("/admin")
	admin.POST("/login", s.login)
	admin.POST("/logout", s.logout)
	admin.GET("/sync", s.mustAdmin(), s.lastSync)
	admin.POST("/sync", s.mustAdmin(), s.sync)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

func (s *Server) health(c *gin.Context) {
	if s.Ping != nil {
		if err := s.Ping(c.Request.Context()); err != nil {
			logx.Error().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
