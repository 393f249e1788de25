package grpc

// proto.go hand-writes what protoc-gen-go-grpc would emit for
// bib.origination.v1.OriginationService. Messages are the application DTOs
// carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/loan-origination/internal/application/dto"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "bib.origination.v1.OriginationService"

// OriginationServiceServer is the server API for OriginationService.
type OriginationServiceServer interface {
	EvaluateEligibility(context.Context, *dto.EvaluateEligibilityRequest) (*dto.EligibilityResponse, error)
	ParseIncome(context.Context, *dto.ParseIncomeRequest) (*dto.IncomeResponse, error)
	StartApplication(context.Context, *dto.StartApplicationRequest) (*dto.ApplicationResponse, error)
	TransitionApplication(context.Context, *dto.TransitionRequest) (*dto.ApplicationResponse, error)
	VerifyIncomeDocument(context.Context, *dto.VerifyIncomeDocumentRequest) (*dto.AffordabilityResponse, error)
	VerifyAffordability(context.Context, *dto.VerifyAffordabilityRequest) (*dto.AffordabilityResponse, error)
	GenerateSanction(context.Context, *dto.GenerateSanctionRequest) (*dto.SanctionLetterResponse, error)
	GetApplication(context.Context, *dto.GetApplicationRequest) (*dto.ApplicationResponse, error)
	ListApplications(context.Context, *dto.ListApplicationsRequest) (*dto.ApplicationListResponse, error)
	mustEmbedUnimplementedOriginationServiceServer()
}

// UnimplementedOriginationServiceServer provides forward-compatible default implementations.
type UnimplementedOriginationServiceServer struct{}

func (UnimplementedOriginationServiceServer) EvaluateEligibility(context.Context, *dto.EvaluateEligibilityRequest) (*dto.EligibilityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EvaluateEligibility not implemented")
}
func (UnimplementedOriginationServiceServer) ParseIncome(context.Context, *dto.ParseIncomeRequest) (*dto.IncomeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ParseIncome not implemented")
}
func (UnimplementedOriginationServiceServer) StartApplication(context.Context, *dto.StartApplicationRequest) (*dto.ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method StartApplication not implemented")
}
func (UnimplementedOriginationServiceServer) TransitionApplication(context.Context, *dto.TransitionRequest) (*dto.ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method TransitionApplication not implemented")
}
func (UnimplementedOriginationServiceServer) VerifyIncomeDocument(context.Context, *dto.VerifyIncomeDocumentRequest) (*dto.AffordabilityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VerifyIncomeDocument not implemented")
}
func (UnimplementedOriginationServiceServer) VerifyAffordability(context.Context, *dto.VerifyAffordabilityRequest) (*dto.AffordabilityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VerifyAffordability not implemented")
}
func (UnimplementedOriginationServiceServer) GenerateSanction(context.Context, *dto.GenerateSanctionRequest) (*dto.SanctionLetterResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GenerateSanction not implemented")
}
func (UnimplementedOriginationServiceServer) GetApplication(context.Context, *dto.GetApplicationRequest) (*dto.ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetApplication not implemented")
}
func (UnimplementedOriginationServiceServer) ListApplications(context.Context, *dto.ListApplicationsRequest) (*dto.ApplicationListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListApplications not implemented")
}
func (UnimplementedOriginationServiceServer) mustEmbedUnimplementedOriginationServiceServer() {}

// RegisterOriginationServiceServer registers srv with the gRPC server.
func RegisterOriginationServiceServer(s grpclib.ServiceRegistrar, srv OriginationServiceServer) {
	s.RegisterService(&_OriginationService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _OriginationService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OriginationServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "EvaluateEligibility", Handler: _OriginationService_EvaluateEligibility_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "ParseIncome", Handler: _OriginationService_ParseIncome_Handler},                     //nolint:revive // gRPC handler registration
		{MethodName: "StartApplication", Handler: _OriginationService_StartApplication_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "TransitionApplication", Handler: _OriginationService_TransitionApplication_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "VerifyIncomeDocument", Handler: _OriginationService_VerifyIncomeDocument_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "VerifyAffordability", Handler: _OriginationService_VerifyAffordability_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "GenerateSanction", Handler: _OriginationService_GenerateSanction_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "GetApplication", Handler: _OriginationService_GetApplication_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "ListApplications", Handler: _OriginationService_ListApplications_Handler},           //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _OriginationService_EvaluateEligibility_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.EvaluateEligibilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OriginationServiceServer).EvaluateEligibility(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/EvaluateEligibility",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OriginationServiceServer).EvaluateEligibility(ctx, req.(*dto.EvaluateEligibilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _OriginationService_ParseIncome_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.ParseIncomeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OriginationServiceServer).ParseIncome(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/ParseIncome",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OriginationServiceServer).ParseIncome(ctx, req.(*dto.ParseIncomeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _OriginationService_StartApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.StartApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OriginationServiceServer).StartApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/StartApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OriginationServiceServer).StartApplication(ctx, req.(*dto.StartApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _OriginationService_TransitionApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.TransitionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OriginationServiceServer).TransitionApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/TransitionApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OriginationServiceServer).TransitionApplication(ctx, req.(*dto.TransitionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _OriginationService_VerifyIncomeDocument_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.VerifyIncomeDocumentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OriginationServiceServer).VerifyIncomeDocument(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/VerifyIncomeDocument",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OriginationServiceServer).VerifyIncomeDocument(ctx, req.(*dto.VerifyIncomeDocumentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _OriginationService_VerifyAffordability_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.VerifyAffordabilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OriginationServiceServer).VerifyAffordability(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/VerifyAffordability",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OriginationServiceServer).VerifyAffordability(ctx, req.(*dto.VerifyAffordabilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _OriginationService_GenerateSanction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.GenerateSanctionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OriginationServiceServer).GenerateSanction(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/GenerateSanction",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OriginationServiceServer).GenerateSanction(ctx, req.(*dto.GenerateSanctionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _OriginationService_GetApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.GetApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OriginationServiceServer).GetApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/GetApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OriginationServiceServer).GetApplication(ctx, req.(*dto.GetApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _OriginationService_ListApplications_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.ListApplicationsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OriginationServiceServer).ListApplications(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/ListApplications",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OriginationServiceServer).ListApplications(ctx, req.(*dto.ListApplicationsRequest))
	}
	return interceptor(ctx, in, info, handler)
}
