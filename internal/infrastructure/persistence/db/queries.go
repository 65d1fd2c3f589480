package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

const createUser = `
INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

type CreateUserParams struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.Exec(ctx, createUser,
		arg.ID, arg.Username, arg.Email, arg.PasswordHash, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getUserByID = `
SELECT id, username, email, password_hash, created_at, updated_at
FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByUsername = `
SELECT id, username, email, password_hash, created_at, updated_at
FROM users WHERE username = $1
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByUsername, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const countUsersByUsernameOrEmail = `
SELECT COUNT(*) FROM users WHERE username = $1 OR email = $2
`

func (q *Queries) CountUsersByUsernameOrEmail(ctx context.Context, username, email string) (int64, error) {
	row := q.db.QueryRow(ctx, countUsersByUsernameOrEmail, username, email)
	var n int64
	err := row.Scan(&n)
	return n, err
}

const listUsers = `
SELECT id, username, email, password_hash, created_at, updated_at
FROM users ORDER BY created_at
`

func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := q.db.Query(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

const createCountry = `
INSERT INTO countries (id, name, flag, population, region, capital, currency, toplevel,
	language1, language2, language3, owner, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

type CreateCountryParams struct {
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

func (q *Queries) CreateCountry(ctx context.Context, arg CreateCountryParams) error {
	_, err := q.db.Exec(ctx, createCountry,
		arg.ID, arg.Name, arg.Flag, arg.Population, arg.Region, arg.Capital, arg.Currency,
		arg.Toplevel, arg.Language1, arg.Language2, arg.Language3, arg.Owner,
		arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getCountryByID = `
SELECT id, name, flag, population, region, capital, currency, toplevel,
	language1, language2, language3, owner, created_at, updated_at
FROM countries WHERE id = $1
`

func (q *Queries) GetCountryByID(ctx context.Context, id string) (Country, error) {
	row := q.db.QueryRow(ctx, getCountryByID, id)
	var c Country
	err := scanCountry(row, &c)
	return c, err
}

const listCountries = `
SELECT id, name, flag, population, region, capital, currency, toplevel,
	language1, language2, language3, owner, created_at, updated_at
FROM countries ORDER BY created_at
`

func (q *Queries) ListCountries(ctx context.Context) ([]Country, error) {
	rows, err := q.db.Query(ctx, listCountries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Country
	for rows.Next() {
		var c Country
		if err := scanCountry(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const replaceCountry = `
UPDATE countries
SET name = $2, flag = $3, population = $4, region = $5, capital = $6, currency = $7,
	toplevel = $8, language1 = $9, language2 = $10, language3 = $11, owner = $12,
	updated_at = $13
WHERE id = $1
RETURNING id, name, flag, population, region, capital, currency, toplevel,
	language1, language2, language3, owner, created_at, updated_at
`

type ReplaceCountryParams struct {
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
	UpdatedAt  time.Time
}

func (q *Queries) ReplaceCountry(ctx context.Context, arg ReplaceCountryParams) (Country, error) {
	row := q.db.QueryRow(ctx, replaceCountry,
		arg.ID, arg.Name, arg.Flag, arg.Population, arg.Region, arg.Capital, arg.Currency,
		arg.Toplevel, arg.Language1, arg.Language2, arg.Language3, arg.Owner, arg.UpdatedAt)
	var c Country
	err := scanCountry(row, &c)
	return c, err
}

const deleteCountry = `
DELETE FROM countries WHERE id = $1
RETURNING id, name, flag, population, region, capital, currency, toplevel,
	language1, language2, language3, owner, created_at, updated_at
`

func (q *Queries) DeleteCountry(ctx context.Context, id string) (Country, error) {
	row := q.db.QueryRow(ctx, deleteCountry, id)
	var c Country
	err := scanCountry(row, &c)
	return c, err
}

func scanCountry(row pgx.Row, c *Country) error {
	return row.Scan(&c.ID, &c.Name, &c.Flag, &c.Population, &c.Region, &c.Capital,
		&c.Currency, &c.Toplevel, &c.Language1, &c.Language2, &c.Language3, &c.Owner,
		&c.CreatedAt, &c.UpdatedAt)
}
