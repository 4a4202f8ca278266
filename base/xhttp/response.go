package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapMarket/base/errcode"
)

// Response 统一响应体
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// OkJson 成功响应
func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.CodeOK,
		Msg:  "successful",
		Data: data,
	})
}

// Error 错误响应
// 业务错误码透传, 其余错误归为 unexpected
func Error(c *gin.Context, err error) {
	e := errcode.ParseErr(err)
	c.JSON(http.StatusOK, Response{
		Code: e.Code(),
		Msg:  e.Error(),
	})
}
