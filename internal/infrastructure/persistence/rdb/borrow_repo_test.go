package rdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/borrow"
	"github.com/xiebiao/library/internal/domain/card"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestCardRepository(t *testing.T) {
	repo := NewCardRepository(newTestDB(t))
	ctx := context.Background()

	c := seedCard(t, repo, "Alice")
	assert.NotZero(t, c.ID)

	t.Run("重复借书证", func(t *testing.T) {
		dup := &card.Card{Name: "Alice", Department: "CS", Type: card.Student}
		exists, err := repo.ExistsIdentity(ctx, dup)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.ErrorIs(t, repo.Create(ctx, dup), card.ErrCardDuplicate)

		// 类型不同不算重复
		staff := &card.Card{Name: "Alice", Department: "CS", Type: card.Teacher}
		require.NoError(t, repo.Create(ctx, staff))
	})

	t.Run("更新", func(t *testing.T) {
		c.Department = "Math"
		require.NoError(t, repo.Update(ctx, c))
		got, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Math", got.Department)
	})

	t.Run("列表按ID升序", func(t *testing.T) {
		cards, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Less(t, cards[0].ID, cards[1].ID)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, c.ID))
		_, err := repo.FindByID(ctx, c.ID)
		assert.ErrorIs(t, err, card.ErrCardNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, c.ID), card.ErrCardNotFound)
	})
}

func TestBorrowRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	books := NewBookRepository(db)
	cards := NewCardRepository(db)
	repo := NewBorrowRepository(db)
	ctx := context.Background()

	b := seedBook(t, books, "Compilers", 99.5, 3)
	c := seedCard(t, cards, "Alice")

	require.NoError(t, repo.Create(ctx, borrow.New(c.ID, b.ID, 100)))
	assert.ErrorIs(t, repo.Create(ctx, borrow.New(c.ID, b.ID, 100)), borrow.ErrBorrowDuplicate)

	has, err := repo.HasOutstanding(ctx, c.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, has)

	n, err := repo.CountOutstandingByBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.CountOutstandingByCard(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rec, err := repo.FindOutstanding(ctx, c.ID, b.ID, 100)
	require.NoError(t, err)
	assert.True(t, rec.Outstanding())

	_, err = repo.FindOutstanding(ctx, c.ID, b.ID, 101)
	assert.ErrorIs(t, err, borrow.ErrBorrowNotFound)

	require.NoError(t, repo.MarkReturned(ctx, c.ID, b.ID, 100, 200))

	// 已归还的记录不能再次归还
	err = repo.MarkReturned(ctx, c.ID, b.ID, 100, 300)
	assert.ErrorIs(t, err, apperrors.ErrWriteConflict)
	_, err = repo.FindOutstanding(ctx, c.ID, b.ID, 100)
	assert.ErrorIs(t, err, borrow.ErrBorrowNotFound)

	has, err = repo.HasOutstanding(ctx, c.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBorrowRepository_History(t *testing.T) {
	db := newTestDB(t)
	books := NewBookRepository(db)
	cards := NewCardRepository(db)
	repo := NewBorrowRepository(db)
	ctx := context.Background()

	b1 := seedBook(t, books, "Compilers", 99.5, 3)
	b2 := seedBook(t, books, "SICP", 45, 3)
	c := seedCard(t, cards, "Alice")
	other := seedCard(t, cards, "Bob")

	require.NoError(t, repo.Create(ctx, borrow.New(c.ID, b2.ID, 100)))
	require.NoError(t, repo.Create(ctx, borrow.New(c.ID, b1.ID, 100)))
	require.NoError(t, repo.Create(ctx, borrow.New(c.ID, b1.ID, 50)))
	require.NoError(t, repo.Create(ctx, borrow.New(other.ID, b1.ID, 500)))
	require.NoError(t, repo.MarkReturned(ctx, c.ID, b1.ID, 50, 80))

	items, err := repo.History(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// borrow_time降序,相同时间按book_id升序
	assert.Equal(t, b1.ID, items[0].BookID)
	assert.Equal(t, int64(100), items[0].BorrowTime)
	assert.Equal(t, b2.ID, items[1].BookID)
	assert.Equal(t, "SICP", items[1].Title)
	assert.Equal(t, 45.0, items[1].Price)
	assert.Equal(t, int64(50), items[2].BorrowTime)
	assert.Equal(t, int64(80), items[2].ReturnTime)

	items, err = repo.History(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, items)
}
