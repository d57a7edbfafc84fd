package rdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/borrow"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// borrowRepository 借阅记录仓储实现
type borrowRepository struct {
	db *gorm.DB
}

// NewBorrowRepository 创建借阅记录仓储
func NewBorrowRepository(db *gorm.DB) borrow.Repository {
	return &borrowRepository{db: db}
}

// Create 插入借阅记录
func (r *borrowRepository) Create(ctx context.Context, b *borrow.Borrow) error {
	model := &BorrowModel{
		CardID:     b.CardID,
		BookID:     b.BookID,
		BorrowTime: b.BorrowTime,
		ReturnTime: b.ReturnTime,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return borrow.ErrBorrowDuplicate
		}
		return wrapDBError(err, "创建借阅记录失败")
	}
	return nil
}

// outstanding 未归还记录
func (r *borrowRepository) outstanding(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db).Model(&BorrowModel{}).Where("return_time = ?", 0)
}

// HasOutstanding 是否存在未归还的(借书证,图书)记录
func (r *borrowRepository) HasOutstanding(ctx context.Context, cardID, bookID uint) (bool, error) {
	var count int64
	err := r.outstanding(ctx).
		Where("card_id = ? AND book_id = ?", cardID, bookID).
		Count(&count).Error
	if err != nil {
		return false, wrapDBError(err, "查询借阅记录失败")
	}
	return count > 0, nil
}

// FindOutstanding 按完整主键查找未归还记录
func (r *borrowRepository) FindOutstanding(ctx context.Context, cardID, bookID uint, borrowTime int64) (*borrow.Borrow, error) {
	var model BorrowModel
	err := r.outstanding(ctx).
		Where("card_id = ? AND book_id = ? AND borrow_time = ?", cardID, bookID, borrowTime).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, borrow.ErrBorrowNotFound
		}
		return nil, wrapDBError(err, "查询借阅记录失败")
	}
	return toBorrowEntity(&model), nil
}

// MarkReturned 写入归还时间
// WHERE中带return_time = 0,已被其他事务归还时影响行数为0
func (r *borrowRepository) MarkReturned(ctx context.Context, cardID, bookID uint, borrowTime, returnTime int64) error {
	result := r.outstanding(ctx).
		Where("card_id = ? AND book_id = ? AND borrow_time = ?", cardID, bookID, borrowTime).
		Update("return_time", returnTime)

	if result.Error != nil {
		return wrapDBError(result.Error, "归还图书失败")
	}
	if result.RowsAffected != 1 {
		return apperrors.ErrWriteConflict
	}
	return nil
}

// CountOutstandingByBook 某本书未归还的借阅数
func (r *borrowRepository) CountOutstandingByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	if err := r.outstanding(ctx).Where("book_id = ?", bookID).Count(&count).Error; err != nil {
		return 0, wrapDBError(err, "查询借阅记录失败")
	}
	return count, nil
}

// CountOutstandingByCard 某借书证未归还的借阅数
func (r *borrowRepository) CountOutstandingByCard(ctx context.Context, cardID uint) (int64, error) {
	var count int64
	if err := r.outstanding(ctx).Where("card_id = ?", cardID).Count(&count).Error; err != nil {
		return 0, wrapDBError(err, "查询借阅记录失败")
	}
	return count, nil
}

// historyRow 借阅历史查询结果行
type historyRow struct {
	CardID      uint
	BookID      uint
	Category    string
	Title       string
	Press       string
	PublishYear int
	Author      string
	Price       float64
	BorrowTime  int64
	ReturnTime  int64
}

// History 借阅历史
// borrow JOIN book,按borrow_time降序、book_id升序
func (r *borrowRepository) History(ctx context.Context, cardID uint) ([]*borrow.HistoryItem, error) {
	var rows []historyRow
	err := getDB(ctx, r.db).
		Table("borrow").
		Select("borrow.card_id, borrow.book_id, book.category, book.title, book.press, " +
			"book.publish_year, book.author, book.price, borrow.borrow_time, borrow.return_time").
		Joins("JOIN book ON book.book_id = borrow.book_id").
		Where("borrow.card_id = ?", cardID).
		Order("borrow.borrow_time DESC").
		Order("borrow.book_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBError(err, "查询借阅历史失败")
	}

	items := make([]*borrow.HistoryItem, len(rows))
	for i, row := range rows {
		items[i] = &borrow.HistoryItem{
			CardID:      row.CardID,
			BookID:      row.BookID,
			Category:    row.Category,
			Title:       row.Title,
			Press:       row.Press,
			PublishYear: row.PublishYear,
			Author:      row.Author,
			Price:       row.Price,
			BorrowTime:  row.BorrowTime,
			ReturnTime:  row.ReturnTime,
		}
	}
	return items, nil
}
