package directory

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samber/lo"

	"github.com/Alijeyrad/moksha_web/pkg/clinicapi"
)

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

// API is the part of the clinic API client the directory reads.
type API interface {
	ListDoctors(ctx context.Context) ([]clinicapi.Doctor, error)
	GetDoctor(ctx context.Context, id int) (*clinicapi.Doctor, error)
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context) ([]clinicapi.Doctor, error)
	Get(ctx context.Context, id int) (*clinicapi.Doctor, error)
	ResolveBySlug(ctx context.Context, slug string) (*clinicapi.Doctor, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type directoryService struct {
	api API
}

func New(api API) Service {
	return &directoryService{api: api}
}

func (s *directoryService) List(ctx context.Context) ([]clinicapi.Doctor, error) {
	doctors, err := s.api.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (s *directoryService) Get(ctx context.Context, id int) (*clinicapi.Doctor, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	d, err := s.api.GetDoctor(ctx, id)
	if err != nil {
		if clinicapi.IsStatus(err, http.StatusNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get doctor %d: %w", id, err)
	}
	return d, nil
}

// ResolveBySlug scans the full roster on every call. The roster is a handful
// of doctors, so there is no index and no cache.
func (s *directoryService) ResolveBySlug(ctx context.Context, slug string) (*clinicapi.Doctor, error) {
	doctors, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	d, ok := lo.Find(doctors, func(d clinicapi.Doctor) bool {
		return Slug(d.Name) == slug
	})
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}
