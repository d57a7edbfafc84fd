package rdb

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/card"
	"github.com/xiebiao/library/internal/infrastructure/config"
)

// newTestDB 内存SQLite,每个测试独立一个库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, "test")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() { _ = Close(db) })
	return db
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedBook(t *testing.T, repo book.Repository, title string, price float64, stock int) *book.Book {
	t.Helper()
	b := &book.Book{
		Category:    "CS",
		Title:       title,
		Press:       "Pearson",
		PublishYear: 2006,
		Author:      "Aho",
		Price:       price,
		Stock:       stock,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func seedCard(t *testing.T, repo card.Repository, name string) *card.Card {
	t.Helper()
	c := &card.Card{Name: name, Department: "CS", Type: card.Student}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}
