package card

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借书证领域错误定义
var (
	ErrCardNotFound    = apperrors.New(apperrors.ErrCodeCardNotFound, "借书证不存在")
	ErrCardDuplicate   = apperrors.New(apperrors.ErrCodeDuplicateEntry, "借书证已存在")
	ErrCardHasLoans    = apperrors.New(apperrors.ErrCodeHasOutstandingLoans, "该借书证还有未归还的图书")
	ErrInvalidCardType = apperrors.New(apperrors.ErrCodeInvalidParams, "借书证类型必须是学生(S)或教师(T)")
	ErrInvalidCard     = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能为空")
)
