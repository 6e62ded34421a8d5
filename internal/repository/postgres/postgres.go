package postgres

import (
	"database/sql"

	"campusbooks-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.BookRepository
	repository.TransactionRepository
	repository.PayoutRepository
	repository.AuditRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		BookRepository:        NewBookRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		PayoutRepository:      NewPayoutRepository(db),
		AuditRepository:       NewAuditRepository(db),
	}
}
