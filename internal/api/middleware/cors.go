package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsPolicy 前端门户的跨域策略
// 写接口只有 POST / PUT；台账导出需要读取 Content-Disposition
type corsPolicy struct {
	origins map[string]bool
	anyOrig bool
	headers string
	methods string
	exposed string
	maxAge  string
}

func newCORSPolicy(allowOrigins []string) *corsPolicy {
	p := &corsPolicy{
		origins:  make(map[string]bool, len(allowOrigins)),
		headers:  "Content-Type, Authorization, X-Request-ID",
		methods:  "GET, POST, PUT, OPTIONS",
		exposed:  "Content-Disposition, X-Request-ID",
		maxAge: "86400",
	}
	for _, o := range allowOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			p.anyOrig = true
			continue
		}
		if o != "" {
			p.origins[o] = true
		}
	}
	return p
}

func (p *corsPolicy) allowed(origin string) bool {
	return origin != "" && (p.anyOrig || p.origins[origin])
}

// CORS 跨域中间件
// allow_origins 含 "*" 时放行任意来源但不携带凭据（仅用于本地开发）
// 未登记来源的预检请求返回 403，普通请求照常处理，由浏览器拦截响应
func CORS(allowOrigins []string) gin.HandlerFunc {
	policy := newCORSPolicy(allowOrigins)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		preflight := c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != ""

		c.Header("Vary", "Origin")
		if !policy.allowed(origin) {
			if preflight {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		if policy.anyOrig && !policy.origins[origin] {
			c.Header("Access-Control-Allow-Origin", "*")
		} else {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Expose-Headers", policy.exposed)

		if preflight {
			c.Header("Access-Control-Allow-Headers", policy.headers)
			c.Header("Access-Control-Allow-Methods", policy.methods)
			c.Header("Access-Control-Max-Age", policy.maxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
