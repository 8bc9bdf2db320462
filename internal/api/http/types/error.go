// Package types HTTP 响应结构定义
package types

// ErrorResponse 统一错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Code      string `json:"code"`                // 错误码
	Category  string `json:"category,omitempty"`  // 错误类别
	Message   string `json:"message"`             // 错误消息
	RequestID string `json:"requestId,omitempty"` // 请求ID
}

// 传输层自身的错误码，核心错误码直接透传
const (
	ErrInvalidRequest = "InvalidRequest"
	ErrNotFound       = "NotFound"
	ErrInternal       = "Internal"
)

// NewErrorResponse 创建错误响应
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// WithCategory 添加错误类别
func (e *ErrorResponse) WithCategory(category string) *ErrorResponse {
	e.Error.Category = category
	return e
}

// WithRequestID 添加请求ID
func (e *ErrorResponse) WithRequestID(requestID string) *ErrorResponse {
	e.Error.RequestID = requestID
	return e
}
