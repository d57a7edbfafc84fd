package dto

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// BookRequest 新书入库请求
// validator tag说明:
// - required: 必填字段
// - max: 字符串长度与表结构size:63一致
// - min: 价格、库存非负
type BookRequest struct {
	Category    string  `json:"category" binding:"required,max=63" example:"计算机"`
	Title       string  `json:"title" binding:"required,max=63" example:"编译原理"`
	Press       string  `json:"press" binding:"required,max=63" example:"机械工业出版社"`
	PublishYear int     `json:"publish_year" binding:"required" example:"2009"`
	Author      string  `json:"author" binding:"required,max=63" example:"Aho"`
	Price       float64 `json:"price" binding:"min=0,max=99999.99" example:"89.00"`
	Stock       int     `json:"stock" binding:"min=0" example:"10"`
}

// ToEntity 转换为领域实体
func (r *BookRequest) ToEntity() *book.Book {
	return &book.Book{
		Category:    r.Category,
		Title:       r.Title,
		Press:       r.Press,
		PublishYear: r.PublishYear,
		Author:      r.Author,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}

// BatchBookRequest 批量入库请求
type BatchBookRequest struct {
	Books []BookRequest `json:"books" binding:"required,min=1,dive"`
}

// ModifyBookRequest 修改图书信息请求(库存通过单独的接口调整)
type ModifyBookRequest struct {
	Category    string  `json:"category" binding:"required,max=63" example:"计算机"`
	Title       string  `json:"title" binding:"required,max=63" example:"编译原理(第2版)"`
	Press       string  `json:"press" binding:"required,max=63" example:"机械工业出版社"`
	PublishYear int     `json:"publish_year" binding:"required" example:"2009"`
	Author      string  `json:"author" binding:"required,max=63" example:"Aho"`
	Price       float64 `json:"price" binding:"min=0,max=99999.99" example:"99.00"`
}

// ToEntity 转换为领域实体
func (r *ModifyBookRequest) ToEntity(id uint) *book.Book {
	return &book.Book{
		ID:          id,
		Category:    r.Category,
		Title:       r.Title,
		Press:       r.Press,
		PublishYear: r.PublishYear,
		Author:      r.Author,
		Price:       r.Price,
	}
}

// AdjustStockRequest 库存调整请求,delta可正可负
type AdjustStockRequest struct {
	Delta *int `json:"delta" binding:"required" example:"-1"`
}

// QueryBooksRequest 图书查询参数(GET /books)
// 所有条件可选,不传表示不限制
type QueryBooksRequest struct {
	Category       *string  `form:"category" example:"计算机"`
	Title          *string  `form:"title" example:"编译"`
	Press          *string  `form:"press"`
	Author         *string  `form:"author"`
	MinPublishYear *int     `form:"min_publish_year" example:"2000"`
	MaxPublishYear *int     `form:"max_publish_year" example:"2020"`
	MinPrice       *float64 `form:"min_price" binding:"omitempty,min=0" example:"10"`
	MaxPrice       *float64 `form:"max_price" binding:"omitempty,min=0" example:"100"`
	SortBy         string   `form:"sort_by" example:"price"`
	SortOrder      string   `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC" example:"desc"`
}

// ToQuery 转换为领域查询条件
func (r *QueryBooksRequest) ToQuery() (book.Query, error) {
	sortBy, err := book.ParseSortField(r.SortBy)
	if err != nil {
		return book.Query{}, err
	}
	sortOrder, err := book.ParseSortOrder(r.SortOrder)
	if err != nil {
		return book.Query{}, err
	}
	return book.Query{
		Category:       r.Category,
		Title:          r.Title,
		Press:          r.Press,
		Author:         r.Author,
		MinPublishYear: r.MinPublishYear,
		MaxPublishYear: r.MaxPublishYear,
		MinPrice:       r.MinPrice,
		MaxPrice:       r.MaxPrice,
		SortBy:         sortBy,
		SortOrder:      sortOrder,
	}, nil
}

// BookResponse 图书响应
type BookResponse struct {
	BookID      uint    `json:"book_id" example:"1"`
	Category    string  `json:"category" example:"计算机"`
	Title       string  `json:"title" example:"编译原理"`
	Press       string  `json:"press" example:"机械工业出版社"`
	PublishYear int     `json:"publish_year" example:"2009"`
	Author      string  `json:"author" example:"Aho"`
	Price       float64 `json:"price" example:"89.00"`
	Stock       int     `json:"stock" example:"10"`
}

// NewBookResponse 领域实体 → 响应
func NewBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		BookID:      b.ID,
		Category:    b.Category,
		Title:       b.Title,
		Press:       b.Press,
		PublishYear: b.PublishYear,
		Author:      b.Author,
		Price:       b.Price,
		Stock:       b.Stock,
	}
}

// NewBookListResponse 列表响应
func NewBookListResponse(books []*book.Book) []BookResponse {
	list := make([]BookResponse, len(books))
	for i, b := range books {
		list[i] = NewBookResponse(b)
	}
	return list
}

// StoreBookResponse 入库响应
type StoreBookResponse struct {
	BookID uint `json:"book_id" example:"1"`
}

// BatchStoreResponse 批量入库响应,ID顺序与请求一致
type BatchStoreResponse struct {
	BookIDs []uint `json:"book_ids"`
	Count   int    `json:"count" example:"2"`
}

// ImportBooksResponse CSV导入响应
type ImportBooksResponse struct {
	Count int `json:"count" example:"20"`
}
