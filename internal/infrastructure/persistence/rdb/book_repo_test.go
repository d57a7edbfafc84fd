package rdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
)

func TestBookRepository_CreateAndFind(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	b := seedBook(t, repo, "Compilers", 99.5, 3)
	assert.NotZero(t, b.ID, "应该回填自增ID")

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = repo.FindByID(ctx, b.ID+100)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepository_Duplicate(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	b := seedBook(t, repo, "Compilers", 99.5, 3)

	t.Run("查重", func(t *testing.T) {
		dup := *b
		dup.ID = 0
		exists, err := repo.ExistsIdentity(ctx, &dup)
		require.NoError(t, err)
		assert.True(t, exists)

		// 排除自身
		exists, err = repo.ExistsIdentity(ctx, b)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("唯一索引兜底", func(t *testing.T) {
		dup := *b
		dup.ID = 0
		dup.Price = 10
		err := repo.Create(ctx, &dup)
		assert.ErrorIs(t, err, book.ErrBookDuplicate)
	})
}

func TestBookRepository_UpdateInfo(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	b := seedBook(t, repo, "Compilers", 99.5, 3)
	other := seedBook(t, repo, "SICP", 45, 1)

	b.Title = "Dragon Book"
	b.Price = 120
	b.Stock = 999 // 库存不应被修改
	require.NoError(t, repo.UpdateInfo(ctx, b))

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dragon Book", got.Title)
	assert.Equal(t, 120.0, got.Price)
	assert.Equal(t, 3, got.Stock)

	other.Title = "Dragon Book"
	assert.ErrorIs(t, repo.UpdateInfo(ctx, other), book.ErrBookDuplicate)

	missing := *b
	missing.ID = 12345
	assert.ErrorIs(t, repo.UpdateInfo(ctx, &missing), book.ErrBookNotFound)
}

func TestBookRepository_UpdateStock(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	b := seedBook(t, repo, "Compilers", 99.5, 1)

	require.NoError(t, repo.UpdateStock(ctx, b.ID, -1))
	assert.ErrorIs(t, repo.UpdateStock(ctx, b.ID, -1), book.ErrInvalidStock)
	require.NoError(t, repo.UpdateStock(ctx, b.ID, 5))
	require.NoError(t, repo.UpdateStock(ctx, b.ID, 0))
	assert.ErrorIs(t, repo.UpdateStock(ctx, b.ID+1, 1), book.ErrBookNotFound)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}

func TestBookRepository_Delete(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	b := seedBook(t, repo, "Compilers", 99.5, 1)
	require.NoError(t, repo.Delete(ctx, b.ID))
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), book.ErrBookNotFound)
}

func TestBookRepository_Find(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	a := seedBook(t, repo, "Compilers", 99.5, 1)
	s := seedBook(t, repo, "SICP", 45, 2)
	c := seedBook(t, repo, "100% Go", 45, 0)

	t.Run("默认按book_id升序", func(t *testing.T) {
		books, err := repo.Find(ctx, book.Query{})
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, []uint{a.ID, s.ID, c.ID}, []uint{books[0].ID, books[1].ID, books[2].ID})
	})

	t.Run("价格区间+降序,同价按book_id", func(t *testing.T) {
		lo, hi := 40.0, 100.0
		books, err := repo.Find(ctx, book.Query{MinPrice: &lo, MaxPrice: &hi, SortBy: book.SortByPrice, SortOrder: book.Desc})
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, a.ID, books[0].ID)
		assert.Equal(t, s.ID, books[1].ID)
		assert.Equal(t, c.ID, books[2].ID)
	})

	t.Run("百分号按字面值匹配", func(t *testing.T) {
		title := "0%"
		books, err := repo.Find(ctx, book.Query{Title: &title})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, c.ID, books[0].ID)
	})

	t.Run("区间颠倒返回空", func(t *testing.T) {
		lo, hi := 100.0, 10.0
		books, err := repo.Find(ctx, book.Query{MinPrice: &lo, MaxPrice: &hi})
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("非法排序字段", func(t *testing.T) {
		_, err := repo.Find(ctx, book.Query{SortBy: "isbn"})
		assert.ErrorIs(t, err, book.ErrInvalidQuery)
	})
}
