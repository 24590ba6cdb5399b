package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"portfolio-api/database"
	"portfolio-api/models"
)

// fakeStore is an in-memory PortfolioStore with the same filtering,
// ordering and partial-update rules as the PostgreSQL store.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Portfolio
	now    time.Time

	// failWith, when set, is returned by every method.
	failWith error
	// vanishOnUpdate deletes the row between the existence check and the
	// update, simulating a concurrent delete.
	vanishOnUpdate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID: 1,
		rows:   map[int64]models.Portfolio{},
		now:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *fakeStore) ListPortfolios(ctx context.Context, params models.ListParams) ([]models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	result := []models.Portfolio{}
	for _, p := range s.rows {
		if params.Category != "" && (p.Category == nil || *p.Category != params.Category) {
			continue
		}
		if params.FeaturedOnly() && !p.IsFeatured {
			continue
		}
		if params.ActiveOnly() && !p.IsActive {
			continue
		}
		result = append(result, clonePortfolio(p))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *fakeStore) GetPortfolio(ctx context.Context, id int64) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	p, ok := s.rows[id]
	if !ok {
		return nil, database.ErrPortfolioNotFound
	}
	out := clonePortfolio(p)
	return &out, nil
}

func (s *fakeStore) PortfolioExists(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}

	_, ok := s.rows[id]
	return ok, nil
}

func (s *fakeStore) CreatePortfolio(ctx context.Context, np models.NewPortfolio) (*models.Portfolio, error) {
	s.mu.Lock()
	if s.failWith != nil {
		s.mu.Unlock()
		return nil, s.failWith
	}

	ts := s.tick()
	p := models.Portfolio{
		ID:               s.nextID,
		Title:            np.Title,
		Description:      np.Description,
		Category:         np.Category,
		ClientName:       np.ClientName,
		MainImageURL:     np.MainImageURL,
		ImageURLs:        append([]string{}, np.ImageURLs...),
		WebsiteURL:       np.WebsiteURL,
		GithubURL:        np.GithubURL,
		TechnologiesUsed: np.TechnologiesUsed,
		IsFeatured:       np.IsFeatured,
		IsActive:         np.IsActive,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
	s.rows[p.ID] = p
	s.nextID++
	s.mu.Unlock()

	return s.GetPortfolio(ctx, p.ID)
}

func (s *fakeStore) UpdatePortfolio(ctx context.Context, id int64, req models.UpdatePortfolioRequest) (*models.Portfolio, error) {
	s.mu.Lock()
	if s.failWith != nil {
		s.mu.Unlock()
		return nil, s.failWith
	}
	if s.vanishOnUpdate {
		delete(s.rows, id)
	}

	p, ok := s.rows[id]
	if !ok {
		s.mu.Unlock()
		return nil, database.ErrPortfolioNotFound
	}

	if req.Title.Set {
		p.Title = req.Title.ValueOr("")
	}
	setText(&p.Description, req.Description)
	setText(&p.Category, req.Category)
	setText(&p.ClientName, req.ClientName)
	setText(&p.MainImageURL, req.MainImageURL)
	setText(&p.WebsiteURL, req.WebsiteURL)
	setText(&p.GithubURL, req.GithubURL)
	setText(&p.TechnologiesUsed, req.TechnologiesUsed)
	if req.ImageURLs.Set {
		p.ImageURLs = append([]string{}, req.ImageURLs.ValueOr(nil)...)
	}
	if req.IsFeatured.Set {
		p.IsFeatured = req.IsFeatured.ValueOr(false).Bool()
	}
	if req.IsActive.Set {
		p.IsActive = req.IsActive.ValueOr(false).Bool()
	}
	p.UpdatedAt = s.tick()
	s.rows[id] = p
	s.mu.Unlock()

	return s.GetPortfolio(ctx, id)
}

func (s *fakeStore) DeletePortfolio(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	if _, ok := s.rows[id]; !ok {
		return database.ErrPortfolioNotFound
	}
	delete(s.rows, id)
	return nil
}

func setText(dst **string, o models.Optional[string]) {
	if o.Set {
		*dst = o.Value
	}
}

func clonePortfolio(p models.Portfolio) models.Portfolio {
	p.ImageURLs = append([]string{}, p.ImageURLs...)
	return p
}
