package library

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrow"
	"github.com/xiebiao/library/internal/domain/card"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

const tracerName = "library-service"

var (
	// serializable 所有写操作的事务选项
	serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}
	// readOnly 查询操作使用默认隔离级别的只读事务
	readOnly = &sql.TxOptions{ReadOnly: true}
)

// TxRunner 事务执行器
// ctx中已有事务时fn加入该事务,否则开启新事务
type TxRunner interface {
	Transaction(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error
}

// Schema 表结构初始化,只用于重置
type Schema interface {
	DropAll(ctx context.Context) error
	CreateAll(ctx context.Context) error
}

// Service 图书馆领域服务
// 设计说明:
// 1. 每个公开方法是一个完整的工作单元(一个事务),成功提交,失败回滚
// 2. 先查后写的检查全部在同一个事务内完成
// 3. 不持有可变状态,每次调用都重新读取数据库
// 4. 返回的错误始终是*apperrors.AppError,领域哨兵错误可以用errors.Is判断
type Service struct {
	tx      TxRunner
	books   book.Repository
	cards   card.Repository
	borrows borrow.Repository
	schema  Schema
	logger  *slog.Logger
}

// NewService 创建领域服务
func NewService(
	tx TxRunner,
	books book.Repository,
	cards card.Repository,
	borrows borrow.Repository,
	schema Schema,
	logger *slog.Logger,
) *Service {
	return &Service{
		tx:      tx,
		books:   books,
		cards:   cards,
		borrows: borrows,
		schema:  schema,
		logger:  logger,
	}
}

// run 在事务中执行一个操作,统一记录span、日志和指标
func (s *Service) run(ctx context.Context, op string, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "library."+op)
	defer span.End()

	start := time.Now()
	err := s.tx.Transaction(ctx, opts, fn)
	elapsed := time.Since(start).Seconds()

	if err == nil {
		metrics.RecordOperation(op, "success", elapsed)
		return nil
	}

	appErr := apperrors.GetAppError(err)
	kind := appErr.Kind()
	metrics.RecordOperation(op, string(kind), elapsed)

	span.RecordError(err)
	span.SetStatus(codes.Error, appErr.Message)
	span.SetAttributes(attribute.String("library.error_kind", string(kind)))

	level := slog.LevelWarn
	if appErr.Code >= apperrors.ErrCodeInternal {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "操作失败",
		slog.String("operation", op),
		slog.String("kind", string(kind)),
		slog.Int("code", appErr.Code),
		slog.Any("error", err),
	)
	return appErr
}

// =========================================
// 图书
// =========================================

// StoreBook 新书入库
// 五元组已存在返回ErrBookDuplicate;成功后ID回填到b
func (s *Service) StoreBook(ctx context.Context, b *book.Book) (uint, error) {
	err := s.run(ctx, "store_book", serializable, func(ctx context.Context) error {
		return s.storeBook(ctx, b)
	})
	if err != nil {
		b.ID = 0
		return 0, err
	}
	return b.ID, nil
}

func (s *Service) storeBook(ctx context.Context, b *book.Book) error {
	if err := b.Validate(); err != nil {
		return err
	}

	b.ID = 0
	exists, err := s.books.ExistsIdentity(ctx, b)
	if err != nil {
		return err
	}
	if exists {
		return book.ErrBookDuplicate
	}
	return s.books.Create(ctx, b)
}

// StoreBooks 批量入库
// 按传入顺序逐本入库,任何一本失败整批回滚,回滚后所有ID清零
func (s *Service) StoreBooks(ctx context.Context, books []*book.Book) error {
	if len(books) == 0 {
		return nil
	}

	err := s.run(ctx, "store_books", serializable, func(ctx context.Context) error {
		for _, b := range books {
			if err := s.storeBook(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, b := range books {
			b.ID = 0
		}
	}
	return err
}

// AdjustStock 调整库存,delta可正可负
func (s *Service) AdjustStock(ctx context.Context, bookID uint, delta int) error {
	return s.run(ctx, "adjust_stock", serializable, func(ctx context.Context) error {
		return s.adjustStock(ctx, bookID, delta)
	})
}

// adjustStock 库存调整原语
// 借书/还书在自己的事务里调用,TxRunner会加入外层事务
func (s *Service) adjustStock(ctx context.Context, bookID uint, delta int) error {
	return s.tx.Transaction(ctx, serializable, func(ctx context.Context) error {
		return s.books.UpdateStock(ctx, bookID, delta)
	})
}

// ModifyBook 修改图书信息(不含库存)
func (s *Service) ModifyBook(ctx context.Context, b *book.Book) error {
	return s.run(ctx, "modify_book", serializable, func(ctx context.Context) error {
		current, err := s.books.FindByID(ctx, b.ID)
		if err != nil {
			return err
		}
		if b.Price < 0 {
			return book.ErrInvalidPrice
		}

		// 修改后的五元组不能和其他图书重复
		if !current.SameIdentity(b) {
			exists, err := s.books.ExistsIdentity(ctx, b)
			if err != nil {
				return err
			}
			if exists {
				return book.ErrBookDuplicate
			}
		}
		return s.books.UpdateInfo(ctx, b)
	})
}

// RemoveBook 删除图书,存在未归还借阅时拒绝
func (s *Service) RemoveBook(ctx context.Context, bookID uint) error {
	return s.run(ctx, "remove_book", serializable, func(ctx context.Context) error {
		if _, err := s.books.FindByID(ctx, bookID); err != nil {
			return err
		}

		n, err := s.borrows.CountOutstandingByBook(ctx, bookID)
		if err != nil {
			return err
		}
		if n > 0 {
			return book.ErrBookHasLoans
		}
		return s.books.Delete(ctx, bookID)
	})
}

// QueryBooks 条件查询
func (s *Service) QueryBooks(ctx context.Context, q book.Query) ([]*book.Book, error) {
	var result []*book.Book
	err := s.run(ctx, "query_books", readOnly, func(ctx context.Context) error {
		if err := q.Validate(); err != nil {
			return err
		}
		books, err := s.books.Find(ctx, q)
		result = books
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListBooks 全部图书,按book_id升序
func (s *Service) ListBooks(ctx context.Context) ([]*book.Book, error) {
	var result []*book.Book
	err := s.run(ctx, "list_books", readOnly, func(ctx context.Context) error {
		books, err := s.books.Find(ctx, book.Query{})
		result = books
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// =========================================
// 借阅
// =========================================

// BorrowBook 借书
// 流程:
// 1. 借书证必须存在
// 2. 同一借书证不能重复借同一本未归还的书
// 3. 库存-1(不足返回ErrInsufficientStock)
// 4. 插入未归还的借阅记录
func (s *Service) BorrowBook(ctx context.Context, cardID, bookID uint, borrowTime int64) error {
	return s.run(ctx, "borrow_book", serializable, func(ctx context.Context) error {
		if _, err := s.cards.FindByID(ctx, cardID); err != nil {
			return err
		}

		has, err := s.borrows.HasOutstanding(ctx, cardID, bookID)
		if err != nil {
			return err
		}
		if has {
			return borrow.ErrAlreadyBorrowed
		}

		if err := s.adjustStock(ctx, bookID, -1); err != nil {
			if errors.Is(err, book.ErrInvalidStock) {
				return book.ErrInsufficientStock
			}
			return err
		}

		return s.borrows.Create(ctx, borrow.New(cardID, bookID, borrowTime))
	})
}

// ReturnBook 还书
// 只能归还(借书证,图书,借出时间)完全匹配的未归还记录
func (s *Service) ReturnBook(ctx context.Context, cardID, bookID uint, borrowTime, returnTime int64) error {
	return s.run(ctx, "return_book", serializable, func(ctx context.Context) error {
		if returnTime <= 0 || returnTime < borrowTime {
			return borrow.ErrInvalidReturnTime
		}

		if _, err := s.borrows.FindOutstanding(ctx, cardID, bookID, borrowTime); err != nil {
			return err
		}
		if err := s.borrows.MarkReturned(ctx, cardID, bookID, borrowTime, returnTime); err != nil {
			return err
		}
		return s.adjustStock(ctx, bookID, 1)
	})
}

// BorrowHistory 借阅历史,借书证不存在或没有记录时返回空列表
func (s *Service) BorrowHistory(ctx context.Context, cardID uint) ([]*borrow.HistoryItem, error) {
	var result []*borrow.HistoryItem
	err := s.run(ctx, "borrow_history", readOnly, func(ctx context.Context) error {
		items, err := s.borrows.History(ctx, cardID)
		result = items
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// =========================================
// 借书证
// =========================================

// RegisterCard 办理借书证,成功后ID回填到c
func (s *Service) RegisterCard(ctx context.Context, c *card.Card) (uint, error) {
	err := s.run(ctx, "register_card", serializable, func(ctx context.Context) error {
		if err := c.Validate(); err != nil {
			return err
		}

		c.ID = 0
		exists, err := s.cards.ExistsIdentity(ctx, c)
		if err != nil {
			return err
		}
		if exists {
			return card.ErrCardDuplicate
		}
		return s.cards.Create(ctx, c)
	})
	if err != nil {
		c.ID = 0
		return 0, err
	}
	return c.ID, nil
}

// UpdateCard 修改借书证信息
func (s *Service) UpdateCard(ctx context.Context, c *card.Card) error {
	return s.run(ctx, "update_card", serializable, func(ctx context.Context) error {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, err := s.cards.FindByID(ctx, c.ID); err != nil {
			return err
		}

		exists, err := s.cards.ExistsIdentity(ctx, c)
		if err != nil {
			return err
		}
		if exists {
			return card.ErrCardDuplicate
		}
		return s.cards.Update(ctx, c)
	})
}

// RemoveCard 注销借书证,存在未归还借阅时拒绝
func (s *Service) RemoveCard(ctx context.Context, cardID uint) error {
	return s.run(ctx, "remove_card", serializable, func(ctx context.Context) error {
		if _, err := s.cards.FindByID(ctx, cardID); err != nil {
			return err
		}

		n, err := s.borrows.CountOutstandingByCard(ctx, cardID)
		if err != nil {
			return err
		}
		if n > 0 {
			return card.ErrCardHasLoans
		}
		return s.cards.Delete(ctx, cardID)
	})
}

// ListCards 全部借书证,按card_id升序
func (s *Service) ListCards(ctx context.Context) ([]*card.Card, error) {
	var result []*card.Card
	err := s.run(ctx, "list_cards", readOnly, func(ctx context.Context) error {
		cards, err := s.cards.List(ctx)
		result = cards
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// =========================================
// 维护
// =========================================

// ResetAll 删除并重建所有表
// 注意:MySQL的DDL会隐式提交,失败时可能停在中间状态
func (s *Service) ResetAll(ctx context.Context) error {
	return s.run(ctx, "reset_all", nil, func(ctx context.Context) error {
		if err := s.schema.DropAll(ctx); err != nil {
			return err
		}
		return s.schema.CreateAll(ctx)
	})
}
