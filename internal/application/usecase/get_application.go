package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bibbank/loan-origination/internal/application/dto"
	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/port"
)

// GetApplicationUseCase retrieves a single application.
type GetApplicationUseCase struct {
	repo port.ApplicationRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(repo port.ApplicationRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{repo: repo}
}

// Execute looks the application up by id.
func (uc *GetApplicationUseCase) Execute(ctx context.Context, req dto.GetApplicationRequest) (dto.ApplicationResponse, error) {
	if strings.TrimSpace(req.ApplicationID) == "" {
		return dto.ApplicationResponse{}, model.NewValidationError("application_id", "is required")
	}
	app, err := uc.repo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	return toApplicationResponse(app), nil
}

// ListApplicationsUseCase lists a customer's applications.
type ListApplicationsUseCase struct {
	repo port.ApplicationRepository
}

// NewListApplicationsUseCase wires dependencies.
func NewListApplicationsUseCase(repo port.ApplicationRepository) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{repo: repo}
}

// Execute returns the customer's applications, newest first.
func (uc *ListApplicationsUseCase) Execute(ctx context.Context, req dto.ListApplicationsRequest) (dto.ApplicationListResponse, error) {
	if strings.TrimSpace(req.CustomerID) == "" {
		return dto.ApplicationListResponse{}, model.NewValidationError("customer_id", "is required")
	}
	apps, err := uc.repo.FindByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return dto.ApplicationListResponse{}, fmt.Errorf("find applications: %w", err)
	}
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].CreatedAt().After(apps[j].CreatedAt())
	})

	resp := dto.ApplicationListResponse{Applications: make([]dto.ApplicationResponse, 0, len(apps))}
	for _, app := range apps {
		resp.Applications = append(resp.Applications, toApplicationResponse(app))
	}
	return resp, nil
}
