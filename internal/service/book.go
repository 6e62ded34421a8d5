package service

import (
	"context"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/repository"
)

type bookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

func (s *bookService) AddBook(ctx context.Context, book *domain.Book) error {
	if book.Title == "" {
		return domain.NewValidationError("title", "title is required")
	}
	if book.Price <= 0 {
		return domain.NewValidationError("price", "price must be greater than zero")
	}
	if book.Quantity < 1 {
		book.Quantity = 1
	}
	return s.bookRepo.Create(ctx, book)
}

func (s *bookService) GetBook(ctx context.Context, id int32) (*domain.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

func (s *bookService) UpdateBook(ctx context.Context, userID int32, book *domain.Book) error {
	existing, err := s.bookRepo.GetByID(ctx, book.ID)
	if err != nil {
		return err
	}
	if existing.VendorID != userID {
		return domain.NewValidationError("vendor_id", "only the listing vendor can update a book")
	}
	book.VendorID = existing.VendorID
	return s.bookRepo.Update(ctx, book)
}

func (s *bookService) DeleteBook(ctx context.Context, userID, bookID int32) error {
	existing, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	if existing.VendorID != userID {
		return domain.NewValidationError("vendor_id", "only the listing vendor can delete a book")
	}
	return s.bookRepo.Delete(ctx, bookID)
}

func (s *bookService) ListBooks(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	return s.bookRepo.List(ctx, page, pageSize)
}

func (s *bookService) ListVendorBooks(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	return s.bookRepo.ListByVendor(ctx, vendorID, page, pageSize)
}
