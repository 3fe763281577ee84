package grpc

// proto.go defines the gRPC server interface derived from
// motorlend/v1/motorlend.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/motorlend/motorlend/api/gen/go/motorlend/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MotorlendServiceServer is the server API for MotorlendService.
// It mirrors the proto-generated interface from motorlend.v1.MotorlendService.
type MotorlendServiceServer interface {
	RegisterVehicle(context.Context, *RegisterVehicleRequest) (*RegisterVehicleResponse, error)
	GetVehicle(context.Context, *GetVehicleRequest) (*GetVehicleResponse, error)
	ListVehicles(context.Context, *ListVehiclesRequest) (*ListVehiclesResponse, error)
	RequestValuation(context.Context, *RequestValuationRequest) (*RequestValuationResponse, error)
	GetValuation(context.Context, *GetValuationRequest) (*GetValuationResponse, error)
	GetLatestValuation(context.Context, *GetLatestValuationRequest) (*GetLatestValuationResponse, error)
	CreateLoan(context.Context, *CreateLoanRequest) (*CreateLoanResponse, error)
	GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error)
	ListLoansByApplicant(context.Context, *ListLoansByApplicantRequest) (*ListLoansByApplicantResponse, error)
	UpdateLoanStatus(context.Context, *UpdateLoanStatusRequest) (*UpdateLoanStatusResponse, error)
	CheckEligibility(context.Context, *CheckEligibilityRequest) (*CheckEligibilityResponse, error)
	GetLoanStatistics(context.Context, *GetLoanStatisticsRequest) (*GetLoanStatisticsResponse, error)
	mustEmbedUnimplementedMotorlendServiceServer()
}

// UnimplementedMotorlendServiceServer provides forward-compatible default implementations.
type UnimplementedMotorlendServiceServer struct{}

func (UnimplementedMotorlendServiceServer) RegisterVehicle(context.Context, *RegisterVehicleRequest) (*RegisterVehicleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterVehicle not implemented")
}
func (UnimplementedMotorlendServiceServer) GetVehicle(context.Context, *GetVehicleRequest) (*GetVehicleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetVehicle not implemented")
}
func (UnimplementedMotorlendServiceServer) ListVehicles(context.Context, *ListVehiclesRequest) (*ListVehiclesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListVehicles not implemented")
}
func (UnimplementedMotorlendServiceServer) RequestValuation(context.Context, *RequestValuationRequest) (*RequestValuationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RequestValuation not implemented")
}
func (UnimplementedMotorlendServiceServer) GetValuation(context.Context, *GetValuationRequest) (*GetValuationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetValuation not implemented")
}
func (UnimplementedMotorlendServiceServer) GetLatestValuation(context.Context, *GetLatestValuationRequest) (*GetLatestValuationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLatestValuation not implemented")
}
func (UnimplementedMotorlendServiceServer) CreateLoan(context.Context, *CreateLoanRequest) (*CreateLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateLoan not implemented")
}
func (UnimplementedMotorlendServiceServer) GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedMotorlendServiceServer) ListLoansByApplicant(context.Context, *ListLoansByApplicantRequest) (*ListLoansByApplicantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListLoansByApplicant not implemented")
}
func (UnimplementedMotorlendServiceServer) UpdateLoanStatus(context.Context, *UpdateLoanStatusRequest) (*UpdateLoanStatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateLoanStatus not implemented")
}
func (UnimplementedMotorlendServiceServer) CheckEligibility(context.Context, *CheckEligibilityRequest) (*CheckEligibilityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckEligibility not implemented")
}
func (UnimplementedMotorlendServiceServer) GetLoanStatistics(context.Context, *GetLoanStatisticsRequest) (*GetLoanStatisticsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoanStatistics not implemented")
}
func (UnimplementedMotorlendServiceServer) mustEmbedUnimplementedMotorlendServiceServer() {}

// RegisterMotorlendServiceServer registers the MotorlendServiceServer with the gRPC server.
func RegisterMotorlendServiceServer(s *grpclib.Server, srv MotorlendServiceServer) {
	s.RegisterService(&_MotorlendService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _MotorlendService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "motorlend.v1.MotorlendService",
	HandlerType: (*MotorlendServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RegisterVehicle", Handler: _MotorlendService_RegisterVehicle_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "GetVehicle", Handler: _MotorlendService_GetVehicle_Handler},                     //nolint:revive // gRPC handler registration
		{MethodName: "ListVehicles", Handler: _MotorlendService_ListVehicles_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "RequestValuation", Handler: _MotorlendService_RequestValuation_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "GetValuation", Handler: _MotorlendService_GetValuation_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "GetLatestValuation", Handler: _MotorlendService_GetLatestValuation_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "CreateLoan", Handler: _MotorlendService_CreateLoan_Handler},                     //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _MotorlendService_GetLoan_Handler},                           //nolint:revive // gRPC handler registration
		{MethodName: "ListLoansByApplicant", Handler: _MotorlendService_ListLoansByApplicant_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "UpdateLoanStatus", Handler: _MotorlendService_UpdateLoanStatus_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "CheckEligibility", Handler: _MotorlendService_CheckEligibility_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "GetLoanStatistics", Handler: _MotorlendService_GetLoanStatistics_Handler},       //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_RegisterVehicle_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RegisterVehicleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).RegisterVehicle(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/RegisterVehicle",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).RegisterVehicle(ctx, req.(*RegisterVehicleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_GetVehicle_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetVehicleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).GetVehicle(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/GetVehicle",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).GetVehicle(ctx, req.(*GetVehicleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_ListVehicles_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListVehiclesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).ListVehicles(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/ListVehicles",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).ListVehicles(ctx, req.(*ListVehiclesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_RequestValuation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RequestValuationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).RequestValuation(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/RequestValuation",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).RequestValuation(ctx, req.(*RequestValuationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_GetValuation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetValuationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).GetValuation(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/GetValuation",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).GetValuation(ctx, req.(*GetValuationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_GetLatestValuation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLatestValuationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).GetLatestValuation(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/GetLatestValuation",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).GetLatestValuation(ctx, req.(*GetLatestValuationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_CreateLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).CreateLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/CreateLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).CreateLoan(ctx, req.(*CreateLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).GetLoan(ctx, req.(*GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_ListLoansByApplicant_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListLoansByApplicantRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).ListLoansByApplicant(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/ListLoansByApplicant",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).ListLoansByApplicant(ctx, req.(*ListLoansByApplicantRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_UpdateLoanStatus_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateLoanStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).UpdateLoanStatus(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/UpdateLoanStatus",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).UpdateLoanStatus(ctx, req.(*UpdateLoanStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_CheckEligibility_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CheckEligibilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).CheckEligibility(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/CheckEligibility",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).CheckEligibility(ctx, req.(*CheckEligibilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MotorlendService_GetLoanStatistics_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanStatisticsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MotorlendServiceServer).GetLoanStatistics(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/motorlend.v1.MotorlendService/GetLoanStatistics",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MotorlendServiceServer).GetLoanStatistics(ctx, req.(*GetLoanStatisticsRequest))
	}
	return interceptor(ctx, in, info, handler)
}
