package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/library/internal/interface/http/handler"
)

// apiResponse 统一响应(data延迟解析)
type apiResponse struct {
	Code    int             `json:"code"`
	Kind    string          `json:"kind"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, allowReset bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := rdb.Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, "test")
	require.NoError(t, err)
	require.NoError(t, rdb.Migrate(db))
	t.Cleanup(func() { _ = rdb.Close(db) })

	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := library.NewService(
		rdb.NewTxManager(db, lg),
		rdb.NewBookRepository(db),
		rdb.NewCardRepository(db),
		rdb.NewBorrowRepository(db),
		rdb.NewSchema(db),
		lg,
	)

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.AllowReset = allowReset

	return New(cfg, lg, Handlers{
		Book:   handler.NewBookHandler(svc),
		Card:   handler.NewCardHandler(svc),
		Borrow: handler.NewBorrowHandler(svc),
		Admin:  handler.NewAdminHandler(svc),
	}, nil)
}

func call(t *testing.T, r http.Handler, method, path string, body interface{}) apiResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func bookBody(title string, price float64, stock int) map[string]interface{} {
	return map[string]interface{}{
		"category":     "CS",
		"title":        title,
		"press":        "Pearson",
		"publish_year": 2006,
		"author":       "Aho",
		"price":        price,
		"stock":        stock,
	}
}

// TestLendingOverHTTP 入库→办证→借书→重复借→还书→重复还→历史
func TestLendingOverHTTP(t *testing.T) {
	r := newTestRouter(t, false)

	resp := call(t, r, http.MethodPost, "/api/v1/books", bookBody("Compilers", 99.5, 1))
	require.Equal(t, 0, resp.Code, resp.Message)
	var stored struct {
		BookID uint `json:"book_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &stored))
	require.NotZero(t, stored.BookID)

	resp = call(t, r, http.MethodPost, "/api/v1/books", bookBody("Compilers", 10, 1))
	assert.Equal(t, 40009, resp.Code)
	assert.Equal(t, "DuplicateEntity", resp.Kind)

	resp = call(t, r, http.MethodPost, "/api/v1/cards", map[string]string{"name": "Alice", "department": "CS", "type": "学生"})
	require.Equal(t, 0, resp.Code, resp.Message)
	var registered struct {
		CardID uint `json:"card_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &registered))

	borrowReq := map[string]interface{}{"card_id": registered.CardID, "book_id": stored.BookID, "borrow_time": 1000}
	resp = call(t, r, http.MethodPost, "/api/v1/borrows", borrowReq)
	require.Equal(t, 0, resp.Code, resp.Message)

	borrowReq["borrow_time"] = 2000
	resp = call(t, r, http.MethodPost, "/api/v1/borrows", borrowReq)
	assert.Equal(t, "AlreadyBorrowed", resp.Kind)

	returnReq := map[string]interface{}{"card_id": registered.CardID, "book_id": stored.BookID, "borrow_time": 1000, "return_time": 3000}
	resp = call(t, r, http.MethodPost, "/api/v1/borrows/return", returnReq)
	require.Equal(t, 0, resp.Code, resp.Message)

	resp = call(t, r, http.MethodPost, "/api/v1/borrows/return", returnReq)
	assert.Equal(t, "NotFound", resp.Kind)

	resp = call(t, r, http.MethodGet, fmt.Sprintf("/api/v1/cards/%d/borrows", registered.CardID), nil)
	require.Equal(t, 0, resp.Code)
	var history []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "Compilers", history[0]["title"])
	assert.EqualValues(t, 3000, history[0]["return_time"])

	resp = call(t, r, http.MethodGet, "/api/v1/books", nil)
	var books []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &books))
	require.Len(t, books, 1)
	assert.EqualValues(t, 1, books[0]["stock"])
}

func TestBooksOverHTTP(t *testing.T) {
	r := newTestRouter(t, false)

	resp := call(t, r, http.MethodPost, "/api/v1/books/batch", map[string]interface{}{
		"books": []interface{}{bookBody("Compilers", 99.5, 1), bookBody("SICP", 45, 2)},
	})
	require.Equal(t, 0, resp.Code, resp.Message)

	t.Run("查询参数", func(t *testing.T) {
		resp := call(t, r, http.MethodGet, "/api/v1/books?max_price=50&sort_by=price&sort_order=desc", nil)
		require.Equal(t, 0, resp.Code, resp.Message)
		var books []map[string]interface{}
		require.NoError(t, json.Unmarshal(resp.Data, &books))
		require.Len(t, books, 1)
		assert.Equal(t, "SICP", books[0]["title"])
	})

	t.Run("非法排序字段", func(t *testing.T) {
		resp := call(t, r, http.MethodGet, "/api/v1/books?sort_by=isbn", nil)
		assert.Equal(t, "InvalidParams", resp.Kind)
	})

	t.Run("库存调整", func(t *testing.T) {
		resp := call(t, r, http.MethodPatch, "/api/v1/books/1/stock", map[string]int{"delta": -5})
		assert.Equal(t, "InvalidStock", resp.Kind)

		resp = call(t, r, http.MethodPatch, "/api/v1/books/1/stock", map[string]int{"delta": 4})
		assert.Equal(t, 0, resp.Code, resp.Message)

		resp = call(t, r, http.MethodPatch, "/api/v1/books/1/stock", map[string]int{})
		assert.Equal(t, "InvalidParams", resp.Kind, "delta必填")
	})

	t.Run("修改和删除", func(t *testing.T) {
		body := bookBody("Dragon Book", 120, 0)
		delete(body, "stock")
		resp := call(t, r, http.MethodPut, "/api/v1/books/1", body)
		assert.Equal(t, 0, resp.Code, resp.Message)

		resp = call(t, r, http.MethodDelete, "/api/v1/books/2", nil)
		assert.Equal(t, 0, resp.Code, resp.Message)
		resp = call(t, r, http.MethodDelete, "/api/v1/books/2", nil)
		assert.Equal(t, "NotFound", resp.Kind)

		resp = call(t, r, http.MethodDelete, "/api/v1/books/abc", nil)
		assert.Equal(t, "InvalidParams", resp.Kind)
	})

	t.Run("参数绑定失败", func(t *testing.T) {
		resp := call(t, r, http.MethodPost, "/api/v1/books", map[string]interface{}{"title": "x"})
		assert.Equal(t, 40900, resp.Code)
	})
}

func TestImportOverHTTP(t *testing.T) {
	r := newTestRouter(t, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "books.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("category,title,press,publish_year,author,price,stock\nCS,Compilers,Pearson,2006,Aho,99.5,3\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/books/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code, resp.Message)
	assert.JSONEq(t, `{"count":1}`, string(resp.Data))
}

func TestResetRoute(t *testing.T) {
	t.Run("默认不注册", func(t *testing.T) {
		r := newTestRouter(t, false)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/reset", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("开启后可用", func(t *testing.T) {
		r := newTestRouter(t, true)
		call(t, r, http.MethodPost, "/api/v1/books", bookBody("Compilers", 99.5, 1))

		resp := call(t, r, http.MethodPost, "/api/v1/admin/reset", nil)
		require.Equal(t, 0, resp.Code, resp.Message)

		resp = call(t, r, http.MethodGet, "/api/v1/books", nil)
		assert.JSONEq(t, `[]`, string(resp.Data))
	})
}

func TestPing(t *testing.T) {
	r := newTestRouter(t, false)
	resp := call(t, r, http.MethodGet, "/ping", nil)
	assert.Equal(t, 0, resp.Code)
}
