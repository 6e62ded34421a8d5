package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookHandler struct {
	bookSvc service.BookService
}

func NewBookHandler(bookSvc service.BookService) *BookHandler {
	return &BookHandler{bookSvc: bookSvc}
}

func pathID(r *http.Request, name string) (int32, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var book domain.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	book.VendorID = ClaimsFrom(r.Context()).UserID

	if err := h.bookSvc.AddBook(r.Context(), &book); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, book)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid book id")
		return
	}

	book, err := h.bookSvc.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var book domain.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	book.ID = id

	if err := h.bookSvc.UpdateBook(r.Context(), ClaimsFrom(r.Context()).UserID, &book); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid book id")
		return
	}

	if err := h.bookSvc.DeleteBook(r.Context(), ClaimsFrom(r.Context()).UserID, id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "book deleted")
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	books, total, err := h.bookSvc.ListBooks(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, pagedData{Items: books, Total: total})
}

func (h *BookHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	books, total, err := h.bookSvc.ListVendorBooks(r.Context(), ClaimsFrom(r.Context()).UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, pagedData{Items: books, Total: total})
}
