package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/repository"
)

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

const bookColumns = `id, vendor_id, title, author, COALESCE(isbn, ''), COALESCE(category, ''), COALESCE(condition, ''), price, COALESCE(rental_price, 0), quantity, status, COALESCE(description, ''), created_on, updated_on`

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `INSERT INTO books (vendor_id, title, author, isbn, category, condition, price, rental_price, quantity, status, description, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	if b.Status == "" {
		b.Status = domain.BookStatusAvailable
	}
	return r.db.QueryRowContext(ctx, query, b.VendorID, b.Title, b.Author, b.ISBN, b.Category, b.Condition, b.Price, b.RentalPrice, b.Quantity, b.Status, b.Description, now, now).Scan(&b.ID)
}

func scanBook(row interface{ Scan(...any) error }) (*domain.Book, error) {
	b := &domain.Book{}
	err := row.Scan(&b.ID, &b.VendorID, &b.Title, &b.Author, &b.ISBN, &b.Category, &b.Condition, &b.Price, &b.RentalPrice, &b.Quantity, &b.Status, &b.Description, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	b, err := scanBook(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *bookRepository) Update(ctx context.Context, b *domain.Book) error {
	query := `UPDATE books SET title=$1, author=$2, isbn=$3, category=$4, condition=$5, price=$6, rental_price=$7, quantity=$8, status=$9, description=$10, updated_on=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, b.Title, b.Author, b.ISBN, b.Category, b.Condition, b.Price, b.RentalPrice, b.Quantity, b.Status, b.Description, time.Now(), b.ID)
	return err
}

func (r *bookRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	return err
}

func (r *bookRepository) ListByVendor(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM books WHERE vendor_id = $1`, vendorID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE vendor_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, vendorID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, *b)
	}
	return books, count, rows.Err()
}

func (r *bookRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM books WHERE status = 'available'`).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE status = 'available' ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, *b)
	}
	return books, count, rows.Err()
}
