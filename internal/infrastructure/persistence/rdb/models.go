package rdb

import (
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrow"
	"github.com/xiebiao/library/internal/domain/card"
)

// BookModel GORM图书模型
// 设计说明:
// 1. 五元组唯一索引只是兜底,业务上在事务内先查重
// 2. 价格decimal(7,2)
type BookModel struct {
	BookID      uint    `gorm:"primaryKey;column:book_id"`
	Category    string  `gorm:"size:63;not null;uniqueIndex:uk_book_identity,priority:1;comment:类别"`
	Title       string  `gorm:"size:63;not null;uniqueIndex:uk_book_identity,priority:2;comment:书名"`
	Press       string  `gorm:"size:63;not null;uniqueIndex:uk_book_identity,priority:3;comment:出版社"`
	PublishYear int     `gorm:"not null;uniqueIndex:uk_book_identity,priority:4;comment:出版年份"`
	Author      string  `gorm:"size:63;not null;uniqueIndex:uk_book_identity,priority:5;comment:作者"`
	Price       float64 `gorm:"type:decimal(7,2);not null;default:0;comment:价格"`
	Stock       int     `gorm:"not null;default:0;comment:库存"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "book"
}

// CardModel GORM借书证模型
type CardModel struct {
	CardID     uint   `gorm:"primaryKey;column:card_id"`
	Name       string `gorm:"size:63;not null;uniqueIndex:uk_card_identity,priority:1;comment:姓名"`
	Department string `gorm:"size:63;not null;uniqueIndex:uk_card_identity,priority:2;comment:单位"`
	Type       string `gorm:"type:char(1);not null;uniqueIndex:uk_card_identity,priority:3;comment:类型(S学生T教师)"`
}

// TableName 指定表名
func (CardModel) TableName() string {
	return "card"
}

// BorrowModel GORM借阅模型
// 设计说明:
// 1. 复合主键(card_id, book_id, borrow_time),不自增
// 2. return_time=0表示未归还
// 3. 不建外键:图书/借书证删除后已归还的历史记录仍保留
type BorrowModel struct {
	CardID     uint  `gorm:"primaryKey;autoIncrement:false;column:card_id"`
	BookID     uint  `gorm:"primaryKey;autoIncrement:false;index:idx_borrow_book;column:book_id"`
	BorrowTime int64 `gorm:"primaryKey;autoIncrement:false;column:borrow_time;comment:借出时间"`
	ReturnTime int64 `gorm:"not null;default:0;column:return_time;comment:归还时间(0未归还)"`
}

// TableName 指定表名
func (BorrowModel) TableName() string {
	return "borrow"
}

// =========================================
// 辅助函数:模型转换
// =========================================

func fromBookEntity(b *book.Book) *BookModel {
	return &BookModel{
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

func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:          m.BookID,
		Category:    m.Category,
		Title:       m.Title,
		Press:       m.Press,
		PublishYear: m.PublishYear,
		Author:      m.Author,
		Price:       m.Price,
		Stock:       m.Stock,
	}
}

func fromCardEntity(c *card.Card) *CardModel {
	return &CardModel{
		CardID:     c.ID,
		Name:       c.Name,
		Department: c.Department,
		Type:       string(c.Type),
	}
}

func toCardEntity(m *CardModel) *card.Card {
	return &card.Card{
		ID:         m.CardID,
		Name:       m.Name,
		Department: m.Department,
		Type:       card.CardType(m.Type),
	}
}

func toBorrowEntity(m *BorrowModel) *borrow.Borrow {
	return &borrow.Borrow{
		CardID:     m.CardID,
		BookID:     m.BookID,
		BorrowTime: m.BorrowTime,
		ReturnTime: m.ReturnTime,
	}
}
