package models

import (
	"errors"
	"time"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrEmptyUpdate   = errors.New("no fields to update")
)

// Portfolio is a showcase entry rendered on the marketing site.
// ImageURLs is never nil once read from the store.
type Portfolio struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      *string   `json:"description"`
	Category         *string   `json:"category"`
	ClientName       *string   `json:"client_name"`
	MainImageURL     *string   `json:"main_image_url"`
	ImageURLs        []string  `json:"image_urls"`
	WebsiteURL       *string   `json:"website_url"`
	GithubURL        *string   `json:"github_url"`
	TechnologiesUsed *string   `json:"technologies_used"`
	IsFeatured       bool      `json:"is_featured"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreatePortfolioRequest is the payload for creating a portfolio.
// Absent optional strings are stored as NULL. Only a literal false for
// is_active creates an inactive portfolio.
type CreatePortfolioRequest struct {
	Title            *string       `json:"title"`
	Description      *string       `json:"description"`
	Category         *string       `json:"category"`
	ClientName       *string       `json:"client_name"`
	MainImageURL     *string       `json:"main_image_url"`
	ImageURLs        []string      `json:"image_urls"`
	WebsiteURL       *string       `json:"website_url"`
	GithubURL        *string       `json:"github_url"`
	TechnologiesUsed *string       `json:"technologies_used"`
	IsFeatured       *Flag         `json:"is_featured"`
	IsActive         ExplicitFalse `json:"is_active"`
}

func (r CreatePortfolioRequest) Validate() error {
	if r.Title == nil || *r.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

// NewPortfolio applies create defaults and returns the row to insert.
func (r CreatePortfolioRequest) NewPortfolio() NewPortfolio {
	p := NewPortfolio{
		Description:      nullIfEmpty(r.Description),
		Category:         nullIfEmpty(r.Category),
		ClientName:       nullIfEmpty(r.ClientName),
		MainImageURL:     nullIfEmpty(r.MainImageURL),
		ImageURLs:        r.ImageURLs,
		WebsiteURL:       nullIfEmpty(r.WebsiteURL),
		GithubURL:        nullIfEmpty(r.GithubURL),
		TechnologiesUsed: nullIfEmpty(r.TechnologiesUsed),
		IsActive:         !bool(r.IsActive),
	}
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.IsFeatured != nil {
		p.IsFeatured = r.IsFeatured.Bool()
	}
	return p
}

// NewPortfolio holds the column values for an insert. A nil ImageURLs is
// stored as NULL.
type NewPortfolio struct {
	Title            string
	Description      *string
	Category         *string
	ClientName       *string
	MainImageURL     *string
	ImageURLs        []string
	WebsiteURL       *string
	GithubURL        *string
	TechnologiesUsed *string
	IsFeatured       bool
	IsActive         bool
}

// UpdatePortfolioRequest is a partial update: only keys present in the
// request body are written.
type UpdatePortfolioRequest struct {
	Title            Optional[string]   `json:"title"`
	Description      Optional[string]   `json:"description"`
	Category         Optional[string]   `json:"category"`
	ClientName       Optional[string]   `json:"client_name"`
	MainImageURL     Optional[string]   `json:"main_image_url"`
	ImageURLs        Optional[[]string] `json:"image_urls"`
	WebsiteURL       Optional[string]   `json:"website_url"`
	GithubURL        Optional[string]   `json:"github_url"`
	TechnologiesUsed Optional[string]   `json:"technologies_used"`
	IsFeatured       Optional[Flag]     `json:"is_featured"`
	IsActive         Optional[Flag]     `json:"is_active"`
}

// IsEmpty reports whether no recognized field was present.
func (r UpdatePortfolioRequest) IsEmpty() bool {
	return !(r.Title.Set ||
		r.Description.Set ||
		r.Category.Set ||
		r.ClientName.Set ||
		r.MainImageURL.Set ||
		r.ImageURLs.Set ||
		r.WebsiteURL.Set ||
		r.GithubURL.Set ||
		r.TechnologiesUsed.Set ||
		r.IsFeatured.Set ||
		r.IsActive.Set)
}

func (r UpdatePortfolioRequest) Validate() error {
	if r.IsEmpty() {
		return ErrEmptyUpdate
	}
	if r.Title.Set && r.Title.ValueOr("") == "" {
		return ErrTitleRequired
	}
	return nil
}

// ListParams are the list filters taken from the query string.
type ListParams struct {
	Category string `form:"category"`
	Featured string `form:"featured"`
	Active   string `form:"active"`
}

// FeaturedOnly is true only for featured=true.
func (p ListParams) FeaturedOnly() bool {
	return p.Featured == "true"
}

// ActiveOnly is true unless active=false was requested.
func (p ListParams) ActiveOnly() bool {
	return p.Active != "false"
}

type ListResponse struct {
	Success bool        `json:"success"`
	Data    []Portfolio `json:"data"`
	Count   int         `json:"count"`
}

type ItemResponse struct {
	Success bool       `json:"success"`
	Data    *Portfolio `json:"data"`
	Message string     `json:"message,omitempty"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
