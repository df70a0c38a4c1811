package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// TlsHandler HTTP 到 HTTPS 的重定向中间件
// 如果由 Nginx 终结 SSL 则无需启用
func TlsHandler(host string, port int) gin.HandlerFunc {
	// 在返回函数之前初始化，避免每次请求重复创建
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect: true,
		SSLHost:     host + ":" + strconv.Itoa(port),
	})

	return func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			// 中间件里不能用 Fatal
			zap.L().Error("TLS redirection failed", zap.Error(err))
			c.Abort()
			return
		}
		c.Next()
	}
}
