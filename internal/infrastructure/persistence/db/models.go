package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Country struct {
	ID         string
	Name       string
	Flag       string
	Population int64
	Region     string
	Capital    string
	Currency   string
	Toplevel   string
	Language1  string
	Language2  pgtype.Text
	Language3  pgtype.Text
	Owner      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
