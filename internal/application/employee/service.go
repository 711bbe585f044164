package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/employee-records-api/internal/domain"
	"github.com/employee-records-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName       = "name"
	fieldEmail      = "email"
	fieldPosition   = "position"
	fieldDepartment = "department"
	fieldPictureURL = "picture_url"
	fieldResumeURL  = "resume_url"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateEmployeeRequest) (*domain.Employee, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.Employee, string, error)
	Get(ctx context.Context, employeeID string) (*domain.Employee, error)
	Update(ctx context.Context, employeeID string, req domain.UpdateEmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, employeeID string) error
	SetFileURL(ctx context.Context, employeeID, kind, url string) error
}

type employeeStore interface {
	Put(ctx context.Context, e *domain.Employee) error
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	Get(ctx context.Context, employeeID string) (*domain.Employee, error)
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Employee, string, error)
	Update(ctx context.Context, employeeID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, employeeID string) error
}

type service struct {
	repo employeeStore
}

func NewService(repo employeeStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateEmployeeRequest) (*domain.Employee, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	now := time.Now().UTC()
	e := &domain.Employee{
		EmployeeID: id.New(),
		Name:       req.Name,
		Email:      req.Email,
		Position:   req.Position,
		Department: req.Department,
		Enable:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Employee, string, error) {
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	e, err := s.repo.Get(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("employee not found: %w", domain.ErrNotFound)
	}
	if !e.Enable {
		return nil, fmt.Errorf("employee not found: %w", domain.ErrNotFound)
	}
	return e, nil
}

func (s *service) Update(ctx context.Context, employeeID string, req domain.UpdateEmployeeRequest) (*domain.Employee, error) {
	if _, err := s.Get(ctx, employeeID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Email != nil {
		if existing, err := s.repo.GetByEmail(ctx, *req.Email); err == nil && existing.EmployeeID != employeeID {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		updates[fieldEmail] = *req.Email
	}
	if req.Position != nil {
		updates[fieldPosition] = *req.Position
	}
	if req.Department != nil {
		updates[fieldDepartment] = *req.Department
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, employeeID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, employeeID)
}

func (s *service) Delete(ctx context.Context, employeeID string) error {
	if _, err := s.Get(ctx, employeeID); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, employeeID)
}

// SetFileURL records the blob URL of an uploaded picture or resume on the
// employee record.
func (s *service) SetFileURL(ctx context.Context, employeeID, kind, url string) error {
	field := fieldPictureURL
	if kind == domain.FileKindResume {
		field = fieldResumeURL
	}
	return s.repo.Update(ctx, employeeID, map[string]interface{}{field: url})
}
