package types

import (
	"errors"
	"fmt"
)

// ErrorCategory 错误类别，决定调用方如何处理拒绝
type ErrorCategory string

const (
	CategoryAuthorization ErrorCategory = "authorization" // 来源或签名不可信
	CategoryStateMachine  ErrorCategory = "state_machine" // 当前状态不允许该操作
	CategoryAccounting    ErrorCategory = "accounting"    // 金额或上限不满足
	CategoryIntegrity     ErrorCategory = "integrity"     // 重复或畸形的数据
	CategoryNotFound      ErrorCategory = "not_found"
	CategoryInvalidInput  ErrorCategory = "invalid_input" // 调用参数不合法
)

// ErrorCode 错误码
type ErrorCode string

// ContributorError 出资方核心的结构化错误
//
// 同一错误码的两个错误通过 errors.Is 判等，Detail 不参与比较。
type ContributorError struct {
	Code     ErrorCode
	Category ErrorCategory
	Message  string
	Detail   string
}

// Error 实现 error 接口
func (e *ContributorError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
}

// Is 按错误码判等
func (e *ContributorError) Is(target error) bool {
	var t *ContributorError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithDetail 返回附带上下文信息的副本
func (e *ContributorError) WithDetail(format string, args ...interface{}) *ContributorError {
	c := *e
	c.Detail = fmt.Sprintf(format, args...)
	return &c
}

func newContributorError(code ErrorCode, category ErrorCategory, message string) *ContributorError {
	return &ContributorError{Code: code, Category: category, Message: message}
}

// 授权类
var (
	ErrUntrustedOrigin       = newContributorError("UntrustedOrigin", CategoryAuthorization, "消息来源不是指挥合约")
	ErrSaleMismatch          = newContributorError("SaleMismatch", CategoryAuthorization, "消息中的销售ID与目标销售不一致")
	ErrUnexpectedMessageType = newContributorError("UnexpectedMessageType", CategoryAuthorization, "消息类型与期望不符")
	ErrInvalidKycSignature   = newContributorError("InvalidKycSignature", CategoryAuthorization, "KYC签名无效")
)

// 状态机类
var (
	ErrSaleNotOpen                 = newContributorError("SaleNotOpen", CategoryStateMachine, "销售未处于开放状态")
	ErrSaleStillOpen               = newContributorError("SaleStillOpen", CategoryStateMachine, "销售尚未结束")
	ErrSaleNotSealed               = newContributorError("SaleNotSealed", CategoryStateMachine, "销售未封存")
	ErrSaleAlreadyExists           = newContributorError("SaleAlreadyExists", CategoryStateMachine, "销售已存在")
	ErrDuplicateSealMessage        = newContributorError("DuplicateSealMessage", CategoryStateMachine, "重复或过期的封存/中止消息")
	ErrCustodianAlreadyInitialized = newContributorError("CustodianAlreadyInitialized", CategoryStateMachine, "托管方已初始化")
	ErrCustodianNotInitialized     = newContributorError("CustodianNotInitialized", CategoryStateMachine, "托管方未初始化")
)

// 会计类
var (
	ErrContributionCapExceeded = newContributorError("ContributionCapExceeded", CategoryAccounting, "超出资产出资上限")
	ErrZeroContribution        = newContributorError("ZeroContribution", CategoryAccounting, "出资额为零")
	ErrUnsupportedAsset        = newContributorError("UnsupportedAsset", CategoryAccounting, "资产不可在本链出资")
	ErrAmountOverflow          = newContributorError("AmountOverflow", CategoryAccounting, "金额溢出256位")
)

// 完整性类
var (
	ErrAlreadyClaimed     = newContributorError("AlreadyClaimed", CategoryIntegrity, "出资人已领取")
	ErrMalformedSaleTerms = newContributorError("MalformedSaleTerms", CategoryIntegrity, "销售条款不合法")
	ErrMalformedPayload   = newContributorError("MalformedPayload", CategoryIntegrity, "载荷格式错误")
	ErrAlreadySwept       = newContributorError("AlreadySwept", CategoryIntegrity, "该资产已划转给接收方")
)

// 未找到类
var (
	ErrSaleNotFound  = newContributorError("SaleNotFound", CategoryNotFound, "销售不存在")
	ErrBuyerNotFound = newContributorError("BuyerNotFound", CategoryNotFound, "出资记录不存在")
)

// 参数类
var (
	ErrInvalidArgument = newContributorError("InvalidArgument", CategoryInvalidInput, "参数不合法")
)

// AsContributorError 提取结构化错误
func AsContributorError(err error) (*ContributorError, bool) {
	var ce *ContributorError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
