package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-api/models"

	"github.com/jackc/pgx/v5"
)

var selectColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	columnID, columnTitle, columnDescription, columnCategory, columnClientName,
	columnMainImageURL, columnImageURLs, columnWebsiteURL, columnGithubURL,
	columnTechnologiesUsed, columnIsFeatured, columnIsActive, columnCreatedAt, columnUpdatedAt)

// ListPortfolios returns portfolios matching the filters, newest first.
//
// Filters applied:
//   - Category: exact match when non-empty
//   - featured=true: featured rows only
//   - active: active rows only unless active=false
//
// Returns an empty slice (not nil) if nothing matches.
func (db *DB) ListPortfolios(ctx context.Context, params models.ListParams) ([]models.Portfolio, error) {
	defer db.timed("ListPortfolios", time.Now())

	qb := NewQueryBuilder()
	if params.Category != "" {
		qb.AddCondition(columnCategory, params.Category)
	}
	if params.FeaturedOnly() {
		qb.AddCondition(columnIsFeatured, boolToInt(true))
	}
	if params.ActiveOnly() {
		qb.AddCondition(columnIsActive, boolToInt(true))
	}

	// SAFETY: all user input is parameterized; the WHERE clause only holds
	// column names and placeholders.
	query := fmt.Sprintf(`
		SELECT %s
		FROM portfolios
		%s
		ORDER BY %s DESC, %s DESC
	`, selectColumns, qb.WhereClause(), columnCreatedAt, columnID)

	rows, err := db.Pool.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	return scanPortfolios(rows)
}

func (db *DB) GetPortfolio(ctx context.Context, id int64) (*models.Portfolio, error) {
	defer db.timed("GetPortfolio", time.Now())

	query := fmt.Sprintf(`SELECT %s FROM portfolios WHERE %s = $1`, selectColumns, columnID)

	portfolio, err := scanPortfolio(db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	return portfolio, nil
}

func (db *DB) PortfolioExists(ctx context.Context, id int64) (bool, error) {
	defer db.timed("PortfolioExists", time.Now())

	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM portfolios WHERE %s = $1)`, columnID)
	if err := db.Pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check portfolio: %w", err)
	}
	return exists, nil
}

// CreatePortfolio inserts a row and re-reads it so store defaults
// (id, created_at, updated_at) are populated.
func (db *DB) CreatePortfolio(ctx context.Context, p models.NewPortfolio) (*models.Portfolio, error) {
	defer db.timed("CreatePortfolio", time.Now())

	imageURLs, err := encodeImageURLs(p.ImageURLs)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO portfolios (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`, columnTitle, columnDescription, columnCategory, columnClientName, columnMainImageURL,
		columnImageURLs, columnWebsiteURL, columnGithubURL, columnTechnologiesUsed,
		columnIsFeatured, columnIsActive, columnID)

	var id int64
	err = db.Pool.QueryRow(ctx, query,
		p.Title, p.Description, p.Category, p.ClientName, p.MainImageURL,
		imageURLs, p.WebsiteURL, p.GithubURL, p.TechnologiesUsed,
		boolToInt(p.IsFeatured), boolToInt(p.IsActive),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	db.log.Info().Int64("id", id).Str("title", p.Title).Msg("created portfolio")
	return db.GetPortfolio(ctx, id)
}

// UpdatePortfolio writes only the fields present in req and refreshes
// updated_at, then returns the re-read row.
func (db *DB) UpdatePortfolio(ctx context.Context, id int64, req models.UpdatePortfolioRequest) (*models.Portfolio, error) {
	defer db.timed("UpdatePortfolio", time.Now())

	qb, err := buildUpdate(req)
	if err != nil {
		return nil, err
	}
	if !qb.HasAssignments() {
		return nil, models.ErrEmptyUpdate
	}
	qb.AddRawAssignment(columnUpdatedAt + " = NOW()")
	qb.AddCondition(columnID, id)

	query := fmt.Sprintf(`UPDATE portfolios %s %s`, qb.SetClause(), qb.WhereClause())

	result, err := db.Pool.Exec(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrPortfolioNotFound
	}

	db.log.Info().Int64("id", id).Msg("updated portfolio")
	return db.GetPortfolio(ctx, id)
}

func (db *DB) DeletePortfolio(ctx context.Context, id int64) error {
	defer db.timed("DeletePortfolio", time.Now())

	query := fmt.Sprintf(`DELETE FROM portfolios WHERE %s = $1`, columnID)

	result, err := db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPortfolioNotFound
	}

	db.log.Info().Int64("id", id).Msg("deleted portfolio")
	return nil
}

// buildUpdate maps each present field of req to a SET assignment.
func buildUpdate(req models.UpdatePortfolioRequest) (*QueryBuilder, error) {
	qb := NewQueryBuilder()

	textFields := []struct {
		column string
		field  models.Optional[string]
	}{
		{columnTitle, req.Title},
		{columnDescription, req.Description},
		{columnCategory, req.Category},
		{columnClientName, req.ClientName},
		{columnMainImageURL, req.MainImageURL},
		{columnWebsiteURL, req.WebsiteURL},
		{columnGithubURL, req.GithubURL},
		{columnTechnologiesUsed, req.TechnologiesUsed},
	}
	for _, s := range textFields {
		if s.field.Set {
			qb.AddAssignment(s.column, s.field.Value)
		}
	}

	if req.ImageURLs.Set {
		imageURLs, err := encodeImageURLs(req.ImageURLs.ValueOr(nil))
		if err != nil {
			return nil, err
		}
		qb.AddAssignment(columnImageURLs, imageURLs)
	}

	if req.IsFeatured.Set {
		qb.AddAssignment(columnIsFeatured, boolToInt(req.IsFeatured.ValueOr(false).Bool()))
	}
	if req.IsActive.Set {
		qb.AddAssignment(columnIsActive, boolToInt(req.IsActive.ValueOr(false).Bool()))
	}

	return qb, nil
}

// Helper functions

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPortfolio(row rowScanner) (*models.Portfolio, error) {
	var (
		p          models.Portfolio
		imageURLs  *string
		isFeatured int16
		isActive   int16
	)
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.ClientName,
		&p.MainImageURL,
		&imageURLs,
		&p.WebsiteURL,
		&p.GithubURL,
		&p.TechnologiesUsed,
		&isFeatured,
		&isActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.ImageURLs, err = decodeImageURLs(imageURLs)
	if err != nil {
		return nil, fmt.Errorf("portfolio %d: %w", p.ID, err)
	}
	p.IsFeatured = isFeatured != 0
	p.IsActive = isActive != 0

	return &p, nil
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanPortfolios(rows rowsScanner) ([]models.Portfolio, error) {
	portfolios := []models.Portfolio{}
	for rows.Next() {
		portfolio, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		portfolios = append(portfolios, *portfolio)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolios: %w", err)
	}

	return portfolios, nil
}
