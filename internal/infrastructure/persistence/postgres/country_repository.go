package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/AndresRicci93/countries-api/internal/application/ports"
	"github.com/AndresRicci93/countries-api/internal/domain"
	"github.com/AndresRicci93/countries-api/internal/infrastructure/persistence/db"
)

// CountryRepository implements ports.CountryRepository on postgres.
type CountryRepository struct {
	q *db.Queries
}

func NewCountryRepository(q *db.Queries) *CountryRepository {
	return &CountryRepository{q: q}
}

func (r *CountryRepository) Create(ctx context.Context, country *domain.Country) error {
	return r.q.CreateCountry(ctx, db.CreateCountryParams{
		ID:         country.ID,
		Name:       country.Name,
		Flag:       country.Flag,
		Population: country.Population,
		Region:     country.Region,
		Capital:    country.Capital,
		Currency:   country.Currency,
		Toplevel:   country.TopLevel,
		Language1:  country.Language1,
		Language2:  optionalText(country.Language2),
		Language3:  optionalText(country.Language3),
		Owner:      country.Owner,
		CreatedAt:  country.CreatedAt,
		UpdatedAt:  country.UpdatedAt,
	})
}

func (r *CountryRepository) GetByID(ctx context.Context, id string) (*domain.Country, error) {
	c, err := r.q.GetCountryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbCountryToDomain(c), nil
}

func (r *CountryRepository) List(ctx context.Context) ([]*domain.Country, error) {
	countries, err := r.q.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Country, 0, len(countries))
	for _, c := range countries {
		out = append(out, dbCountryToDomain(c))
	}
	return out, nil
}

func (r *CountryRepository) Replace(ctx context.Context, country *domain.Country) (*domain.Country, error) {
	c, err := r.q.ReplaceCountry(ctx, db.ReplaceCountryParams{
		ID:         country.ID,
		Name:       country.Name,
		Flag:       country.Flag,
		Population: country.Population,
		Region:     country.Region,
		Capital:    country.Capital,
		Currency:   country.Currency,
		Toplevel:   country.TopLevel,
		Language1:  country.Language1,
		Language2:  optionalText(country.Language2),
		Language3:  optionalText(country.Language3),
		Owner:      country.Owner,
		UpdatedAt:  country.UpdatedAt,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbCountryToDomain(c), nil
}

func (r *CountryRepository) Delete(ctx context.Context, id string) (*domain.Country, error) {
	c, err := r.q.DeleteCountry(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbCountryToDomain(c), nil
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func dbCountryToDomain(c db.Country) *domain.Country {
	return &domain.Country{
		ID:         c.ID,
		Name:       c.Name,
		Flag:       c.Flag,
		Population: c.Population,
		Region:     c.Region,
		Capital:    c.Capital,
		Currency:   c.Currency,
		TopLevel:   c.Toplevel,
		Language1:  c.Language1,
		Language2:  c.Language2.String,
		Language3:  c.Language3.String,
		Owner:      c.Owner,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

var _ ports.CountryRepository = (*CountryRepository)(nil)
