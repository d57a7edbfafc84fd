package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// CodeKey gin.Context中记录业务错误码的key，供中间件判断请求结果
const CodeKey = "response_code"

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），0表示成功
// 2. Kind是错误分类（DuplicateEntity、NotFound...），成功时为空
// 3. Message是用户友好的提示信息
// 4. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Kind    string      `json:"kind,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	id, err := svc.StoreBook(ctx, b)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	c.Set(CodeKey, appErr.Code)

	// 内部错误只进日志
	if appErr.Err != nil {
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.Int("code", appErr.Code),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", appErr.Err),
		)
	}

	c.JSON(http.StatusOK, Response{
		Code:    appErr.Code,
		Kind:    string(appErr.Kind()),
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.Set(CodeKey, code)
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Kind:    string(apperrors.KindOf(code)),
		Message: message,
		Data:    nil,
	})
}

// AbortWithError 中间件里使用：写入错误响应并终止后续处理
func AbortWithError(c *gin.Context, status int, err error) {
	appErr := apperrors.GetAppError(err)
	c.Set(CodeKey, appErr.Code)
	c.AbortWithStatusJSON(status, Response{
		Code:    appErr.Code,
		Kind:    string(appErr.Kind()),
		Message: appErr.Message,
	})
}
