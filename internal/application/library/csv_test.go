package library

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestParseBookCSV(t *testing.T) {
	t.Run("表头和空行", func(t *testing.T) {
		input := "category,title,press,publish_year,author,price,stock\n" +
			"CS, Compilers ,Pearson,2006,Aho,99.50,3\n" +
			"\n" +
			"Math,\"Concrete Mathematics, 2nd\",Addison-Wesley,1994,Knuth,70,1\n"

		books, err := ParseBookCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, &book.Book{
			Category: "CS", Title: "Compilers", Press: "Pearson",
			PublishYear: 2006, Author: "Aho", Price: 99.5, Stock: 3,
		}, books[0])
		assert.Equal(t, "Concrete Mathematics, 2nd", books[1].Title)
	})

	t.Run("字段数不对", func(t *testing.T) {
		_, err := ParseBookCSV(strings.NewReader("CS,Compilers,Pearson,2006,Aho,99.5\n"))
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidParams, apperrors.KindOfError(err))
		assert.Contains(t, err.Error(), "第1行")
	})

	t.Run("数字格式错误带行号", func(t *testing.T) {
		input := "CS,Compilers,Pearson,2006,Aho,99.5,1\n" +
			"CS,SICP,MIT,nineteen,Abelson,45,1\n"
		_, err := ParseBookCSV(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "第2行")
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
	})

	t.Run("负库存", func(t *testing.T) {
		_, err := ParseBookCSV(strings.NewReader("CS,Compilers,Pearson,2006,Aho,99.5,-1\n"))
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidParams, apperrors.KindOfError(err))
	})

	t.Run("空文件", func(t *testing.T) {
		books, err := ParseBookCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestImportBooks(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	n, err := s.ImportBooks(ctx, strings.NewReader(
		"CS,Compilers,Pearson,2006,Aho,99.5,3\nCS,SICP,MIT Press,1996,Abelson,45,2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// 第二行与已有图书重复,整批不入库
	n, err = s.ImportBooks(ctx, strings.NewReader(
		"CS,TAOCP,Addison-Wesley,1968,Knuth,200,1\nCS,SICP,MIT Press,1996,Abelson,10,1\n"))
	assert.ErrorIs(t, err, book.ErrBookDuplicate)
	assert.Zero(t, n)

	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}
