package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
	"github.com/ProjectsTask/EasySwapMarket/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapMarket/base/xhttp"
)

// RecoverMiddleware Panic 恢复中间件
// 捕获 handler 中的 panic, 记录堆栈并返回统一错误响应
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				xzap.WithContext(c.Request.Context()).Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				xhttp.Error(c, errcode.ErrUnexpected)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RLog 请求日志中间件
// 为每个请求分配 request id 并记录方法、路径、状态码与耗时
func RLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestId := uuid.NewString()
		c.Header("X-Request-Id", requestId)

		c.Next()

		xzap.WithContext(c.Request.Context()).Info("request",
			zap.String("request_id", requestId),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("cost", time.Since(start)),
		)
	}
}
