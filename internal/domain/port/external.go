package port

import (
	"context"

	"github.com/bibbank/loan-origination/internal/domain/model"
)

//go:generate mockgen -destination=mocks/mock_external.go -package=mocks -source=external.go

// ---------------------------------------------------------------------------
// External collaborators
// ---------------------------------------------------------------------------

// CustomerDirectory looks up customer records. Unknown customers yield
// model.ErrCustomerNotFound.
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, customerID string) (model.Customer, error)
}

// OfferCatalog returns a customer's pre-approved offer.
type OfferCatalog interface {
	GetOffer(ctx context.Context, customerID string) (model.Offer, error)
}

// IdentityVerifier reports the identity-verification facts for a customer.
type IdentityVerifier interface {
	Check(ctx context.Context, customerID string) (model.IdentityChecks, error)
}

// DocumentTextExtractor turns an uploaded document into plain text.
// Unsupported or unreadable documents are reported as validation errors and
// are never retried.
type DocumentTextExtractor interface {
	Extract(ctx context.Context, doc model.Document) (string, error)
}
