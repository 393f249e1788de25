package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"

	"github.com/bibbank/loan-origination/internal/domain/model"
)

// toStatus maps an engine error onto a gRPC status. Refusals carry their
// structured reasons as error details; unexpected errors are logged and
// hidden behind a generic message.
func toStatus(ctx context.Context, logger *slog.Logger, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var (
		precondition *model.PreconditionViolation
		validation   *model.ValidationError
		rejection    *model.PolicyRejection
	)
	switch {
	case errors.As(err, &precondition):
		return withDetails(status.New(codes.FailedPrecondition, err.Error()), preconditionDetails(precondition))
	case errors.As(err, &validation):
		return withDetails(status.New(codes.InvalidArgument, err.Error()), &errdetails.BadRequest{
			FieldViolations: []*errdetails.BadRequest_FieldViolation{{Field: validation.Field, Description: validation.Reason}},
		})
	case errors.As(err, &rejection):
		return withDetails(status.New(codes.FailedPrecondition, err.Error()), &errdetails.ErrorInfo{
			Reason: "POLICY_REJECTION",
			Domain: ServiceName,
			Metadata: map[string]string{
				"reason":    rejection.Reason,
				"actual":    rejection.Actual.String(),
				"threshold": rejection.Threshold.String(),
			},
		})
	case errors.Is(err, model.ErrExtractionFailure):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrApplicationNotFound), errors.Is(err, model.ErrCustomerNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrConcurrentModification):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}

	logger.ErrorContext(ctx, "unexpected error", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func preconditionDetails(v *model.PreconditionViolation) *errdetails.PreconditionFailure {
	pf := &errdetails.PreconditionFailure{}
	for _, u := range v.Unmet {
		pf.Violations = append(pf.Violations, &errdetails.PreconditionFailure_Violation{
			Type:        u.Check,
			Subject:     v.Action,
			Description: "actual " + u.Actual + ", required " + u.Required,
		})
	}
	return pf
}

// withDetails attaches details to st. A detail that fails to encode is
// dropped rather than masking the original status.
func withDetails(st *status.Status, details protoadapt.MessageV1) error {
	if ds, err := st.WithDetails(details); err == nil {
		return ds.Err()
	}
	return st.Err()
}
