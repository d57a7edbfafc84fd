package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Kind 返回错误码对应的错误分类
func (e *AppError) Kind() Kind {
	return KindOf(e.Code)
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// WrapCode 使用指定错误码包装底层错误
func WrapCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal         = 50000 // 内部错误
	ErrCodeStoreUnavailable = 50001 // 数据库不可用（连接、开启/提交事务失败）
	ErrCodeRedisError       = 50002 // Redis错误
	ErrCodeWriteConflict    = 50003 // 写冲突（影响行数不符、序列化失败、死锁）

	// 资源错误（40400-40499）
	ErrCodeNotFound       = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeCardNotFound   = 40404 // 借书证不存在
	ErrCodeBorrowNotFound = 40405 // 借阅记录不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError       = 40000 // 业务错误(通用)
	ErrCodeInsufficientStock   = 40001 // 库存不足
	ErrCodeInvalidStock        = 40006 // 库存调整非法
	ErrCodeAlreadyBorrowed     = 40007 // 已借未还
	ErrCodeHasOutstandingLoans = 40008 // 存在未归还的借阅
	ErrCodeDuplicateEntry      = 40009 // 重复记录(通用)
	ErrCodeRequestInFlight     = 40010 // 相同幂等键的请求正在处理

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// Kind 错误分类，和错误码是多对一的关系
type Kind string

const (
	KindDuplicateEntity     Kind = "DuplicateEntity"
	KindNotFound            Kind = "NotFound"
	KindInvalidStock        Kind = "InvalidStock"
	KindInsufficientStock   Kind = "InsufficientStock"
	KindAlreadyBorrowed     Kind = "AlreadyBorrowed"
	KindHasOutstandingLoans Kind = "HasOutstandingLoans"
	KindInvalidParams       Kind = "InvalidParams"
	KindWriteConflict       Kind = "WriteConflict"
	KindStoreUnavailable    Kind = "StoreUnavailable"
	KindConflict            Kind = "Conflict"
	KindInternal            Kind = "Internal"
)

// KindOf 错误码 → 错误分类
func KindOf(code int) Kind {
	switch {
	case code == ErrCodeDuplicateEntry:
		return KindDuplicateEntity
	case code >= ErrCodeNotFound && code < 40500:
		return KindNotFound
	case code == ErrCodeInvalidStock:
		return KindInvalidStock
	case code == ErrCodeInsufficientStock:
		return KindInsufficientStock
	case code == ErrCodeAlreadyBorrowed:
		return KindAlreadyBorrowed
	case code == ErrCodeHasOutstandingLoans:
		return KindHasOutstandingLoans
	case code == ErrCodeRequestInFlight:
		return KindConflict
	case code >= ErrCodeInvalidParams && code < 41000:
		return KindInvalidParams
	case code == ErrCodeWriteConflict:
		return KindWriteConflict
	case code == ErrCodeStoreUnavailable:
		return KindStoreUnavailable
	default:
		return KindInternal
	}
}

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal         = New(ErrCodeInternal, "系统内部错误")
	ErrStoreUnavailable = New(ErrCodeStoreUnavailable, "数据库不可用")
	ErrRedisError       = New(ErrCodeRedisError, "缓存服务错误")
	ErrWriteConflict    = New(ErrCodeWriteConflict, "数据写入冲突，请重试")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")

	// 幂等
	ErrRequestInFlight = New(ErrCodeRequestInFlight, "相同请求正在处理中")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// KindOfError 提取任意错误的分类，nil返回空字符串
func KindOfError(err error) Kind {
	if err == nil {
		return ""
	}
	return GetAppError(err).Kind()
}
