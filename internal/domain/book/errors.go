package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrBookDuplicate 相同(类别,书名,出版社,年份,作者)的图书已存在
	ErrBookDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "图书已存在")

	// ErrInvalidStock 调整后库存为负
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidStock, "库存不能为负数")

	// ErrInsufficientStock 库存不足,无法借出
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	// ErrBookHasLoans 存在未归还的借阅,不能删除
	ErrBookHasLoans = apperrors.New(apperrors.ErrCodeHasOutstandingLoans, "该图书还有未归还的借阅记录")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")

	// ErrInvalidQuery 非法的查询条件(排序字段或方向)
	ErrInvalidQuery = apperrors.New(apperrors.ErrCodeInvalidParams, "查询条件不合法")
)
