package borrow

// Borrow 借阅记录
// 主键为(CardID, BookID, BorrowTime);ReturnTime为0表示未归还
// 状态只能 未归还 → 已归还 迁移一次,记录永不删除
type Borrow struct {
	CardID     uint
	BookID     uint
	BorrowTime int64
	ReturnTime int64
}

// New 创建一条未归还的借阅记录
func New(cardID, bookID uint, borrowTime int64) *Borrow {
	return &Borrow{
		CardID:     cardID,
		BookID:     bookID,
		BorrowTime: borrowTime,
	}
}

// Outstanding 是否未归还
func (b *Borrow) Outstanding() bool {
	return b.ReturnTime == 0
}

// HistoryItem 借阅历史条目(借阅记录 + 图书描述字段)
type HistoryItem struct {
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
