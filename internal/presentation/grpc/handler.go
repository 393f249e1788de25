package grpc

import (
	"context"
	"log/slog"

	"github.com/bibbank/loan-origination/internal/application/dto"
	"github.com/bibbank/loan-origination/internal/application/usecase"
	"github.com/bibbank/loan-origination/pkg/auth"
)

// UseCases are the operations the handler exposes.
type UseCases struct {
	EvaluateEligibility  *usecase.EvaluateEligibilityUseCase
	ParseIncome          *usecase.ParseIncomeUseCase
	StartApplication     *usecase.StartApplicationUseCase
	Transition           *usecase.TransitionApplicationUseCase
	VerifyIncomeDocument *usecase.VerifyIncomeDocumentUseCase
	VerifyAffordability  *usecase.VerifyAffordabilityUseCase
	GenerateSanction     *usecase.GenerateSanctionUseCase
	GetApplication       *usecase.GetApplicationUseCase
	ListApplications     *usecase.ListApplicationsUseCase
}

// ---------------------------------------------------------------------------
// OriginationHandler exposes the decision engine over gRPC.
// ---------------------------------------------------------------------------

// OriginationHandler is the gRPC handler for origination operations. With
// authorization enabled every call that names a customer, directly or via
// an application, must carry claims allowed to act for that customer.
type OriginationHandler struct {
	UnimplementedOriginationServiceServer

	uc        UseCases
	authorize bool
	logger    *slog.Logger
}

var _ OriginationServiceServer = (*OriginationHandler)(nil)

// NewOriginationHandler creates a new handler with all use-case dependencies.
func NewOriginationHandler(uc UseCases, authorize bool, logger *slog.Logger) *OriginationHandler {
	return &OriginationHandler{uc: uc, authorize: authorize, logger: logger}
}

func (h *OriginationHandler) EvaluateEligibility(ctx context.Context, req *dto.EvaluateEligibilityRequest) (*dto.EligibilityResponse, error) {
	if err := h.authorizeCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	return respond(ctx, h, func() (dto.EligibilityResponse, error) {
		return h.uc.EvaluateEligibility.Execute(ctx, *req)
	})
}

// ParseIncome touches no customer data and needs no authorization beyond a
// valid token.
func (h *OriginationHandler) ParseIncome(ctx context.Context, req *dto.ParseIncomeRequest) (*dto.IncomeResponse, error) {
	return respond(ctx, h, func() (dto.IncomeResponse, error) {
		return h.uc.ParseIncome.Execute(ctx, *req)
	})
}

func (h *OriginationHandler) StartApplication(ctx context.Context, req *dto.StartApplicationRequest) (*dto.ApplicationResponse, error) {
	if err := h.authorizeCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	return respond(ctx, h, func() (dto.ApplicationResponse, error) {
		return h.uc.StartApplication.Execute(ctx, *req)
	})
}

func (h *OriginationHandler) TransitionApplication(ctx context.Context, req *dto.TransitionRequest) (*dto.ApplicationResponse, error) {
	if err := h.authorizeApplication(ctx, req.ApplicationID); err != nil {
		return nil, err
	}
	return respond(ctx, h, func() (dto.ApplicationResponse, error) {
		return h.uc.Transition.Execute(ctx, *req)
	})
}

func (h *OriginationHandler) VerifyIncomeDocument(ctx context.Context, req *dto.VerifyIncomeDocumentRequest) (*dto.AffordabilityResponse, error) {
	if err := h.authorizeApplication(ctx, req.ApplicationID); err != nil {
		return nil, err
	}
	return respond(ctx, h, func() (dto.AffordabilityResponse, error) {
		return h.uc.VerifyIncomeDocument.Execute(ctx, *req)
	})
}

func (h *OriginationHandler) VerifyAffordability(ctx context.Context, req *dto.VerifyAffordabilityRequest) (*dto.AffordabilityResponse, error) {
	var err error
	if req.ApplicationID != "" {
		err = h.authorizeApplication(ctx, req.ApplicationID)
	} else {
		err = h.authorizeCustomer(ctx, req.CustomerID)
	}
	if err != nil {
		return nil, err
	}
	return respond(ctx, h, func() (dto.AffordabilityResponse, error) {
		return h.uc.VerifyAffordability.Execute(ctx, *req)
	})
}

func (h *OriginationHandler) GenerateSanction(ctx context.Context, req *dto.GenerateSanctionRequest) (*dto.SanctionLetterResponse, error) {
	if err := h.authorizeApplication(ctx, req.ApplicationID); err != nil {
		return nil, err
	}
	return respond(ctx, h, func() (dto.SanctionLetterResponse, error) {
		return h.uc.GenerateSanction.Execute(ctx, *req)
	})
}

func (h *OriginationHandler) GetApplication(ctx context.Context, req *dto.GetApplicationRequest) (*dto.ApplicationResponse, error) {
	resp, err := h.uc.GetApplication.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(ctx, h.logger, err)
	}
	if err := h.authorizeCustomer(ctx, resp.CustomerID); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (h *OriginationHandler) ListApplications(ctx context.Context, req *dto.ListApplicationsRequest) (*dto.ApplicationListResponse, error) {
	if err := h.authorizeCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	return respond(ctx, h, func() (dto.ApplicationListResponse, error) {
		return h.uc.ListApplications.Execute(ctx, *req)
	})
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func respond[T any](ctx context.Context, h *OriginationHandler, call func() (T, error)) (*T, error) {
	resp, err := call()
	if err != nil {
		return nil, toStatus(ctx, h.logger, err)
	}
	return &resp, nil
}

func (h *OriginationHandler) authorizeCustomer(ctx context.Context, customerID string) error {
	if !h.authorize {
		return nil
	}
	return auth.AuthorizeCustomer(ctx, customerID)
}

// authorizeApplication resolves the application's customer first. Unknown
// ids surface as NotFound, which only reveals that an id is unused.
func (h *OriginationHandler) authorizeApplication(ctx context.Context, applicationID string) error {
	if !h.authorize {
		return nil
	}
	app, err := h.uc.GetApplication.Execute(ctx, dto.GetApplicationRequest{ApplicationID: applicationID})
	if err != nil {
		return toStatus(ctx, h.logger, err)
	}
	return auth.AuthorizeCustomer(ctx, app.CustomerID)
}
