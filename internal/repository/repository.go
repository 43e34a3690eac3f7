package repository

import (
	"context"
	"database/sql"
	"time"

	"pyrolysis_sim/internal/models"
)

type OperatorRepo interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.Operator, error)
}

// JournalFilter narrows a journal query. Zero fields do not filter.
type JournalFilter struct {
	From   time.Time
	To     time.Time
	Type   string
	Source string
	Limit  int
}

type JournalRepo interface {
	Append(ctx context.Context, e models.JournalEvent) error
	List(ctx context.Context, f JournalFilter) ([]models.JournalEvent, error)
}

type Repository struct {
	Journal   JournalRepo
	Operators OperatorRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Journal:   NewJournalSQLite(db),
		Operators: NewOperatorRepository(db),
	}
}
