package grpc

// proto.go defines the gRPC server interface for advancehub.underwriting.v1.UnderwritingService.
// This file serves as a stand-in for buf-generated code; the JSON codec in this
// package carries the DTO structs over the wire until proto definitions land.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/advancehub/underwriting-service/internal/application/dto"
)

// Wire message types. The handler speaks the application DTOs directly.
type (
	CreateDealRequest        = dto.CreateDealRequest
	CreateDealResponse       = dto.DealResponse
	AnalyzeDealRequest       = dto.AnalyzeDealRequest
	AnalyzeDealResponse      = dto.AnalyzeDealResponse
	QuoteOfferRequest        = dto.QuoteOfferRequest
	QuoteOfferResponse       = dto.QuoteOfferResponse
	DecideDealRequest        = dto.DecideDealRequest
	DecideDealResponse       = dto.DecideDealResponse
	AdvanceDealStageRequest  = dto.AdvanceDealStageRequest
	AdvanceDealStageResponse = dto.DealResponse
	GetDealRequest           = dto.GetDealRequest
	GetDealResponse          = dto.GetDealResponse
	AddDealCommentRequest    = dto.AddDealCommentRequest
	AddDealCommentResponse   = dto.DealCommentResponse
)

// UnderwritingServiceServer is the server API for UnderwritingService.
type UnderwritingServiceServer interface {
	CreateDeal(context.Context, *CreateDealRequest) (*CreateDealResponse, error)
	AnalyzeDeal(context.Context, *AnalyzeDealRequest) (*AnalyzeDealResponse, error)
	QuoteOffer(context.Context, *QuoteOfferRequest) (*QuoteOfferResponse, error)
	DecideDeal(context.Context, *DecideDealRequest) (*DecideDealResponse, error)
	AdvanceDealStage(context.Context, *AdvanceDealStageRequest) (*AdvanceDealStageResponse, error)
	GetDeal(context.Context, *GetDealRequest) (*GetDealResponse, error)
	AddDealComment(context.Context, *AddDealCommentRequest) (*AddDealCommentResponse, error)
	mustEmbedUnimplementedUnderwritingServiceServer()
}

// UnimplementedUnderwritingServiceServer provides forward-compatible default implementations.
type UnimplementedUnderwritingServiceServer struct{}

func (UnimplementedUnderwritingServiceServer) CreateDeal(context.Context, *CreateDealRequest) (*CreateDealResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateDeal not implemented")
}
func (UnimplementedUnderwritingServiceServer) AnalyzeDeal(context.Context, *AnalyzeDealRequest) (*AnalyzeDealResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeDeal not implemented")
}
func (UnimplementedUnderwritingServiceServer) QuoteOffer(context.Context, *QuoteOfferRequest) (*QuoteOfferResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method QuoteOffer not implemented")
}
func (UnimplementedUnderwritingServiceServer) DecideDeal(context.Context, *DecideDealRequest) (*DecideDealResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DecideDeal not implemented")
}
func (UnimplementedUnderwritingServiceServer) AdvanceDealStage(context.Context, *AdvanceDealStageRequest) (*AdvanceDealStageResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AdvanceDealStage not implemented")
}
func (UnimplementedUnderwritingServiceServer) GetDeal(context.Context, *GetDealRequest) (*GetDealResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDeal not implemented")
}
func (UnimplementedUnderwritingServiceServer) AddDealComment(context.Context, *AddDealCommentRequest) (*AddDealCommentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddDealComment not implemented")
}
func (UnimplementedUnderwritingServiceServer) mustEmbedUnimplementedUnderwritingServiceServer() {}

// RegisterUnderwritingServiceServer registers the server with the gRPC server.
func RegisterUnderwritingServiceServer(s *grpclib.Server, srv UnderwritingServiceServer) {
	s.RegisterService(&_UnderwritingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _UnderwritingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "advancehub.underwriting.v1.UnderwritingService",
	HandlerType: (*UnderwritingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateDeal", Handler: _UnderwritingService_CreateDeal_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "AnalyzeDeal", Handler: _UnderwritingService_AnalyzeDeal_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "QuoteOffer", Handler: _UnderwritingService_QuoteOffer_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "DecideDeal", Handler: _UnderwritingService_DecideDeal_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "AdvanceDealStage", Handler: _UnderwritingService_AdvanceDealStage_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetDeal", Handler: _UnderwritingService_GetDeal_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "AddDealComment", Handler: _UnderwritingService_AddDealComment_Handler},     //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_CreateDeal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateDealRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnderwritingServiceServer).CreateDeal(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/advancehub.underwriting.v1.UnderwritingService/CreateDeal",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnderwritingServiceServer).CreateDeal(ctx, req.(*CreateDealRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_AnalyzeDeal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AnalyzeDealRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnderwritingServiceServer).AnalyzeDeal(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/advancehub.underwriting.v1.UnderwritingService/AnalyzeDeal",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnderwritingServiceServer).AnalyzeDeal(ctx, req.(*AnalyzeDealRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_QuoteOffer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(QuoteOfferRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnderwritingServiceServer).QuoteOffer(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/advancehub.underwriting.v1.UnderwritingService/QuoteOffer",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnderwritingServiceServer).QuoteOffer(ctx, req.(*QuoteOfferRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_DecideDeal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DecideDealRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnderwritingServiceServer).DecideDeal(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/advancehub.underwriting.v1.UnderwritingService/DecideDeal",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnderwritingServiceServer).DecideDeal(ctx, req.(*DecideDealRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_AdvanceDealStage_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AdvanceDealStageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnderwritingServiceServer).AdvanceDealStage(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/advancehub.underwriting.v1.UnderwritingService/AdvanceDealStage",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnderwritingServiceServer).AdvanceDealStage(ctx, req.(*AdvanceDealStageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_GetDeal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetDealRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnderwritingServiceServer).GetDeal(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/advancehub.underwriting.v1.UnderwritingService/GetDeal",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnderwritingServiceServer).GetDeal(ctx, req.(*GetDealRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_AddDealComment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AddDealCommentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnderwritingServiceServer).AddDealComment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/advancehub.underwriting.v1.UnderwritingService/AddDealComment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnderwritingServiceServer).AddDealComment(ctx, req.(*AddDealCommentRequest))
	}
	return interceptor(ctx, in, info, handler)
}
