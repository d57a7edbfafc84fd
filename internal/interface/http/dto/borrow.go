package dto

import (
	"github.com/xiebiao/library/internal/domain/borrow"
)

// BorrowRequest 借书请求
// borrow_time由调用方给出(毫秒时间戳),还书时需要原样带回
type BorrowRequest struct {
	CardID     uint  `json:"card_id" binding:"required" example:"1"`
	BookID     uint  `json:"book_id" binding:"required" example:"1"`
	BorrowTime int64 `json:"borrow_time" binding:"required,gt=0" example:"1700000000000"`
}

// ReturnRequest 还书请求
type ReturnRequest struct {
	CardID     uint  `json:"card_id" binding:"required" example:"1"`
	BookID     uint  `json:"book_id" binding:"required" example:"1"`
	BorrowTime int64 `json:"borrow_time" binding:"required,gt=0" example:"1700000000000"`
	ReturnTime int64 `json:"return_time" binding:"required,gt=0" example:"1700086400000"`
}

// HistoryItemResponse 借阅历史条目,return_time为0表示未归还
type HistoryItemResponse struct {
	CardID      uint    `json:"card_id" example:"1"`
	BookID      uint    `json:"book_id" example:"1"`
	Category    string  `json:"category" example:"计算机"`
	Title       string  `json:"title" example:"编译原理"`
	Press       string  `json:"press" example:"机械工业出版社"`
	PublishYear int     `json:"publish_year" example:"2009"`
	Author      string  `json:"author" example:"Aho"`
	Price       float64 `json:"price" example:"89.00"`
	BorrowTime  int64   `json:"borrow_time" example:"1700000000000"`
	ReturnTime  int64   `json:"return_time" example:"0"`
}

// NewHistoryResponse 借阅历史响应
func NewHistoryResponse(items []*borrow.HistoryItem) []HistoryItemResponse {
	list := make([]HistoryItemResponse, len(items))
	for i, it := range items {
		list[i] = HistoryItemResponse{
			CardID:      it.CardID,
			BookID:      it.BookID,
			Category:    it.Category,
			Title:       it.Title,
			Press:       it.Press,
			PublishYear: it.PublishYear,
			Author:      it.Author,
			Price:       it.Price,
			BorrowTime:  it.BorrowTime,
			ReturnTime:  it.ReturnTime,
		}
	}
	return list
}
