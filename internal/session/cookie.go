package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/sromero1905/elearningfront/config"
)

// CookieOptions 会话 Cookie 属性
type CookieOptions struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// NewCookieOptions 从配置构造 Cookie 属性
func NewCookieOptions(cfg *config.CookieConfig) CookieOptions {
	name := cfg.Name
	if name == "" {
		name = "elearning_session"
	}
	return CookieOptions{
		Name:     name,
		Domain:   cfg.Domain,
		Secure:   cfg.Secure,
		SameSite: parseSameSite(cfg.SameSite),
	}
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// SetCookie 下发会话 Cookie
func SetCookie(w http.ResponseWriter, ticket string, expiresAt time.Time, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    ticket,
		Path:     "/",
		Domain:   opts.Domain,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie 删除会话 Cookie
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// TicketFrom 读取请求中的会话票据，不存在时返回空串
func TicketFrom(r *http.Request, opts CookieOptions) string {
	c, err := r.Cookie(opts.Name)
	if err != nil {
		return ""
	}
	return c.Value
}
