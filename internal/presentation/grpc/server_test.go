package grpc

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/bibbank/loan-origination/internal/application/dto"
	"github.com/bibbank/loan-origination/internal/application/usecase"
	"github.com/bibbank/loan-origination/internal/domain/service"
	"github.com/bibbank/loan-origination/internal/infrastructure/adapter"
	"github.com/bibbank/loan-origination/internal/infrastructure/kafka"
	"github.com/bibbank/loan-origination/internal/infrastructure/metrics"
	"github.com/bibbank/loan-origination/internal/infrastructure/persistence/memory"
	"github.com/bibbank/loan-origination/pkg/auth"
	"github.com/bibbank/loan-origination/pkg/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUseCases() UseCases {
	logger := quietLogger()
	book := adapter.NewStubCustomerBook()
	repo := memory.NewApplicationRepo()
	publisher := kafka.NewLogEventPublisher(logger)
	recorder := metrics.Noop{}
	evaluator := service.NewEligibilityEvaluator()
	verifier := service.NewAffordabilityVerifier()
	parser := service.NewIncomeDocumentParser()

	transition := usecase.NewTransitionApplicationUseCase(repo, evaluator, verifier,
		service.NewSanctionAssembler(nil), book, publisher, recorder, logger)
	return UseCases{
		EvaluateEligibility:  usecase.NewEvaluateEligibilityUseCase(book, book, evaluator, recorder, logger),
		ParseIncome:          usecase.NewParseIncomeUseCase(parser, recorder, logger),
		StartApplication:     usecase.NewStartApplicationUseCase(book, book, repo, publisher, logger),
		Transition:           transition,
		VerifyIncomeDocument: usecase.NewVerifyIncomeDocumentUseCase(repo, adapter.NewPlainTextExtractor(), parser, verifier, publisher, recorder, logger),
		VerifyAffordability:  usecase.NewVerifyAffordabilityUseCase(repo, verifier, publisher, recorder, logger),
		GenerateSanction:     usecase.NewGenerateSanctionUseCase(transition),
		GetApplication:       usecase.NewGetApplicationUseCase(repo),
		ListApplications:     usecase.NewListApplicationsUseCase(repo),
	}
}

type client struct {
	conn *grpclib.ClientConn
}

func (c client) call(ctx context.Context, method string, req, resp any) error {
	return c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, req, resp)
}

func startServer(t *testing.T, jwt *auth.JWTService) client {
	t.Helper()
	logger := quietLogger()
	handler := NewOriginationHandler(newUseCases(), jwt != nil, logger)
	srv, err := NewServer(handler, ServerConfig{JWT: jwt}, logger)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
		grpclib.WithDefaultCallOptions(grpclib.CallContentSubtype(CodecName)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return client{conn: conn}
}

func TestServer_InstantJourney(t *testing.T) {
	c := startServer(t, nil)
	ctx := context.Background()

	var app dto.ApplicationResponse
	require.NoError(t, c.call(ctx, "StartApplication", &dto.StartApplicationRequest{CustomerID: testutil.TestCustomerID}, &app))
	assert.Equal(t, "NOT_STARTED", app.Status)

	for _, req := range []dto.TransitionRequest{
		{Action: "INITIATE", Amount: decimal.NewFromInt(500000), TenureMonths: 36, Purpose: "home renovation"},
		{Action: "VERIFY_KYC"},
		{Action: "APPROVE"},
	} {
		req.ApplicationID = app.ID
		require.NoError(t, c.call(ctx, "TransitionApplication", &req, &app), req.Action)
	}
	assert.Equal(t, "APPROVED", app.Status)
	assert.Equal(t, "INSTANT", app.ApprovalType)

	var letter dto.SanctionLetterResponse
	require.NoError(t, c.call(ctx, "GenerateSanction", &dto.GenerateSanctionRequest{ApplicationID: app.ID}, &letter))
	testutil.AssertDecimal(t, "16488.00", letter.EMI)
	testutil.AssertDecimal(t, "491150", letter.NetDisbursement)
	assert.Equal(t, "₹4,91,150.00", letter.FormattedNetDisbursement)

	var list dto.ApplicationListResponse
	require.NoError(t, c.call(ctx, "ListApplications", &dto.ListApplicationsRequest{CustomerID: testutil.TestCustomerID}, &list))
	require.Len(t, list.Applications, 1)
	assert.Equal(t, "SANCTION_GENERATED", list.Applications[0].Status)
}

func TestServer_StatelessOperations(t *testing.T) {
	c := startServer(t, nil)
	ctx := context.Background()

	var decision dto.EligibilityResponse
	require.NoError(t, c.call(ctx, "EvaluateEligibility", &dto.EvaluateEligibilityRequest{
		CustomerID: testutil.TestCustomerID, Amount: decimal.NewFromInt(500000), TenureMonths: 36,
	}, &decision))
	assert.Equal(t, "INSTANT", decision.ApprovalType)

	var income dto.IncomeResponse
	require.NoError(t, c.call(ctx, "ParseIncome", &dto.ParseIncomeRequest{Text: "Net Pay (Take Home): 72,000"}, &income))
	testutil.AssertDecimal(t, "72000", income.Amount)
}

func TestServer_ErrorStatuses(t *testing.T) {
	c := startServer(t, nil)
	ctx := context.Background()

	var app dto.ApplicationResponse
	err := c.call(ctx, "GetApplication", &dto.GetApplicationRequest{ApplicationID: "missing"}, &app)
	assert.Equal(t, codes.NotFound, status.Code(err))

	err = c.call(ctx, "StartApplication", &dto.StartApplicationRequest{CustomerID: "CUST404"}, &app)
	assert.Equal(t, codes.NotFound, status.Code(err))

	require.NoError(t, c.call(ctx, "StartApplication", &dto.StartApplicationRequest{CustomerID: testutil.TestCustomerID}, &app))

	err = c.call(ctx, "TransitionApplication", &dto.TransitionRequest{ApplicationID: app.ID, Action: "DISBURSE"}, &app)
	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	require.Len(t, st.Details(), 1)
	badRequest, ok := st.Details()[0].(*errdetails.BadRequest)
	require.True(t, ok)
	assert.Equal(t, "action", badRequest.GetFieldViolations()[0].GetField())

	err = c.call(ctx, "TransitionApplication", &dto.TransitionRequest{ApplicationID: app.ID, Action: "APPROVE"}, &app)
	st = status.Convert(err)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
	require.Len(t, st.Details(), 1)
	failure, ok := st.Details()[0].(*errdetails.PreconditionFailure)
	require.True(t, ok)
	assert.Equal(t, "status", failure.GetViolations()[0].GetType())
}

func TestServer_Authorization(t *testing.T) {
	jwt, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "originationd", Expiration: time.Hour})
	require.NoError(t, err)
	c := startServer(t, jwt)

	withToken := func(customerID string, roles ...string) context.Context {
		token, err := jwt.GenerateToken("user-1", customerID, roles)
		require.NoError(t, err)
		return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
	}
	req := &dto.StartApplicationRequest{CustomerID: testutil.TestCustomerID}

	var app dto.ApplicationResponse
	err = c.call(context.Background(), "StartApplication", req, &app)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	err = c.call(withToken(testutil.TestOtherCustomerID, auth.RoleCustomer), "StartApplication", req, &app)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	require.NoError(t, c.call(withToken(testutil.TestCustomerID, auth.RoleCustomer), "StartApplication", req, &app))

	// Another customer may not read or move the application.
	other := withToken(testutil.TestOtherCustomerID, auth.RoleCustomer)
	err = c.call(other, "GetApplication", &dto.GetApplicationRequest{ApplicationID: app.ID}, &app)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	err = c.call(other, "TransitionApplication", &dto.TransitionRequest{ApplicationID: app.ID, Action: "REJECT", Reason: "x"}, &app)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	operator := withToken("", auth.RoleOperator)
	require.NoError(t, c.call(operator, "TransitionApplication",
		&dto.TransitionRequest{ApplicationID: app.ID, Action: "REJECT", Reason: "duplicate request"}, &app))
	assert.Equal(t, "REJECTED", app.Status)
}
