package borrow

import "context"

// Repository 借阅记录仓储接口
type Repository interface {
	// Create 插入一条借阅记录
	Create(ctx context.Context, b *Borrow) error

	// HasOutstanding 该借书证是否有此书的未归还记录
	HasOutstanding(ctx context.Context, cardID, bookID uint) (bool, error)

	// FindOutstanding 按完整主键查找未归还记录,找不到返回ErrBorrowNotFound
	FindOutstanding(ctx context.Context, cardID, bookID uint, borrowTime int64) (*Borrow, error)

	// MarkReturned 写入归还时间
	// 只更新仍未归还的记录,影响行数不为1时返回写冲突
	MarkReturned(ctx context.Context, cardID, bookID uint, borrowTime, returnTime int64) error

	// CountOutstandingByBook 某本书未归还的借阅数
	CountOutstandingByBook(ctx context.Context, bookID uint) (int64, error)

	// CountOutstandingByCard 某借书证未归还的借阅数
	CountOutstandingByCard(ctx context.Context, cardID uint) (int64, error)

	// History 借阅历史,按借出时间降序、book_id升序
	History(ctx context.Context, cardID uint) ([]*HistoryItem, error)
}
