package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apitypes "github.com/weisyn/contributor/internal/api/http/types"
	infralog "github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/types"
)

// ErrBadRequest 请求参数无法解析
var ErrBadRequest = errors.New("bad request")

// StatusForCategory 错误类别对应的HTTP状态码
func StatusForCategory(category types.ErrorCategory) int {
	switch category {
	case types.CategoryAuthorization:
		return http.StatusForbidden
	case types.CategoryStateMachine, types.CategoryIntegrity:
		return http.StatusConflict
	case types.CategoryAccounting:
		return http.StatusUnprocessableEntity
	case types.CategoryNotFound:
		return http.StatusNotFound
	case types.CategoryInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler 错误处理中间件
//
// 处理器通过 c.Error 登记错误，由这里统一转换为 {error:{code,message,requestId}}。
func ErrorHandler(logger infralog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, resp := Translate(err)
		resp.WithRequestID(GetRequestID(c))

		if status >= http.StatusInternalServerError && logger != nil {
			logger.Errorf("请求处理失败 path=%s request_id=%s: %v", c.Request.URL.Path, resp.Error.RequestID, err)
		}
		c.AbortWithStatusJSON(status, resp)
	}
}

// Translate 把错误转换为状态码与响应体
func Translate(err error) (int, *apitypes.ErrorResponse) {
	var ce *types.ContributorError
	if errors.As(err, &ce) {
		resp := apitypes.NewErrorResponse(string(ce.Code), err.Error()).WithCategory(string(ce.Category))
		return StatusForCategory(ce.Category), resp
	}
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest, apitypes.NewErrorResponse(apitypes.ErrInvalidRequest, err.Error())
	}
	return http.StatusInternalServerError, apitypes.NewErrorResponse(apitypes.ErrInternal, err.Error())
}
