package library

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/card"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/rdb"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

const workers = 8

// newFileService 基于SQLite文件库的服务，多个连接可以同时开启事务
func newFileService(t *testing.T) *Service {
	t.Helper()

	db, err := rdb.Open(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "lib.db"),
		BusyTimeout:  10 * time.Second,
		MaxOpenConns: workers,
		MaxIdleConns: workers,
	}, "test")
	require.NoError(t, err)
	require.NoError(t, rdb.Migrate(db))
	t.Cleanup(func() { _ = rdb.Close(db) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(
		rdb.NewTxManager(db, logger),
		rdb.NewBookRepository(db),
		rdb.NewCardRepository(db),
		rdb.NewBorrowRepository(db),
		rdb.NewSchema(db),
		logger,
	)
}

// runConcurrently 同时启动n个goroutine，返回各自的错误
func runConcurrently(n int, fn func(i int) error) []error {
	errs := make([]error, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
	return errs
}

// countKinds 统计成功次数和各错误分类
func countKinds(errs []error) (int, map[apperrors.Kind]int) {
	ok := 0
	kinds := make(map[apperrors.Kind]int)
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		kinds[apperrors.KindOfError(err)]++
	}
	return ok, kinds
}

func TestBorrowBook_Concurrent(t *testing.T) {
	s := newFileService(t)
	ctx := context.Background()

	bookID, err := s.StoreBook(ctx, newBook("Compilers", 99.5, 1))
	require.NoError(t, err)

	cardIDs := make([]uint, workers)
	for i := range cardIDs {
		cardIDs[i], err = s.RegisterCard(ctx, &card.Card{
			Name: fmt.Sprintf("reader-%d", i), Department: "CS", Type: card.Student,
		})
		require.NoError(t, err)
	}

	errs := runConcurrently(workers, func(i int) error {
		return s.BorrowBook(ctx, cardIDs[i], bookID, int64(1000+i))
	})

	ok, kinds := countKinds(errs)
	assert.Equal(t, 1, ok, "只有一次借书成功")
	assert.Equal(t, map[apperrors.Kind]int{apperrors.KindInsufficientStock: workers - 1}, kinds)
	assert.Equal(t, 0, stockOf(t, s, bookID))

	// 借阅记录只有成功的那一条
	borrowed := 0
	for _, id := range cardIDs {
		items, err := s.BorrowHistory(ctx, id)
		require.NoError(t, err)
		borrowed += len(items)
	}
	assert.Equal(t, 1, borrowed)
}

func TestStoreBook_ConcurrentDuplicate(t *testing.T) {
	s := newFileService(t)
	ctx := context.Background()

	errs := runConcurrently(workers, func(int) error {
		_, err := s.StoreBook(ctx, newBook("Compilers", 99.5, 1))
		return err
	})

	ok, kinds := countKinds(errs)
	assert.Equal(t, 1, ok, "相同五元组只能入库一次")
	assert.Equal(t, map[apperrors.Kind]int{apperrors.KindDuplicateEntity: workers - 1}, kinds)

	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}
