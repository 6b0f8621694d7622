package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisstore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"printshop/internal/cart"
	"printshop/internal/config"
	"printshop/internal/logx"
	"printshop/internal/repo"
)

const (
	cartKey      = "cart" // encoded cart.Cart
	userEmailKey = "user_email"
	userCtxKey   = "currentUser"
)

const (
	// encoded carts grow by about 1.8x once signed into a cookie, which
	// browsers cap at 4096 bytes
	cookieCartLimit = 2048
	redisCartLimit  = 32 << 10
	redisMaxLength  = 64 << 10
	sessionMaxAge   = 7 * 24 * 60 * 60
	sessionPrefix   = "session:"
)

// SessionStore is a session backend and the largest encoded cart it holds.
type SessionStore struct {
	sessions.Store
	CartLimit int
}

// CookieSessionStore keeps the session in a signed cookie.
func CookieSessionStore(secret string) SessionStore {
	return SessionStore{Store: cookie.NewStore([]byte(secret)), CartLimit: cookieCartLimit}
}

// RedisSessionStore keeps sessions in Redis behind a signed id cookie.
func RedisSessionStore(cfg config.Redis, secret string) (SessionStore, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return SessionStore{}, fmt.Errorf("parse redis url: %w", err)
	}
	store, err := redisstore.NewStoreWithDB(10, "tcp", opts.Addr, opts.Username, opts.Password, strconv.Itoa(opts.DB), []byte(secret))
	if err != nil {
		return SessionStore{}, fmt.Errorf("redis session store: %w", err)
	}
	rs, err := redisstore.GetRedisStore(store)
	if err != nil {
		return SessionStore{}, err
	}
	rs.SetKeyPrefix(sessionPrefix)
	rs.SetMaxLength(redisMaxLength)
	return SessionStore{Store: store, CartLimit: redisCartLimit}, nil
}

func sessionOptions(env config.Environment) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   env.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}

// ---------- cart in sessions ----------
func getCart(c *gin.Context) cart.Cart {
	raw, _ := sessions.Default(c).Get(cartKey).(string)
	return cart.Decode(raw)
}

// saveCart stores ct unless its encoding is over limit; the session then
// keeps the previous cart.
func saveCart(c *gin.Context, ct cart.Cart, limit int) error {
	raw, err := ct.Encode(limit)
	if err != nil {
		return err
	}
	sess := sessions.Default(c)
	sess.Set(cartKey, raw)
	return sess.Save()
}

// ---------- auth middleware ----------
func (s *Server) mustAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, _ := sessions.Default(c).Get(userEmailKey).(string)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		u, err := s.Users.ByEmail(c.Request.Context(), email)
		if errors.Is(err, repo.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
		if !u.CanSync() {
			logx.Warn().Str("email", email).Str("role", string(u.Role)).Msg("sync denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not allowed"})
			return
		}
		c.Set(userCtxKey, u)
		c.Next()
	}
}
