package borrow

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrBorrowNotFound 没有匹配(借书证,图书,借出时间)的未归还记录
	ErrBorrowNotFound = apperrors.New(apperrors.ErrCodeBorrowNotFound, "借阅记录不存在或已归还")

	// ErrAlreadyBorrowed 该借书证已借此书且未归还
	ErrAlreadyBorrowed = apperrors.New(apperrors.ErrCodeAlreadyBorrowed, "已借阅该图书且尚未归还")

	// ErrBorrowDuplicate 相同主键的借阅记录已存在
	ErrBorrowDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "借阅记录已存在")

	// ErrInvalidReturnTime 归还时间必须大于0且不早于借出时间
	ErrInvalidReturnTime = apperrors.New(apperrors.ErrCodeInvalidParams, "归还时间不合法")
)
