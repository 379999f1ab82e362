package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "calibration.v1.RaterCalibration"

const (
	RaterCalibration_GetRaterStatistics_FullMethodName     = "/calibration.v1.RaterCalibration/GetRaterStatistics"
	RaterCalibration_GetGlobalStatistics_FullMethodName    = "/calibration.v1.RaterCalibration/GetGlobalStatistics"
	RaterCalibration_GetNormalizedScores_FullMethodName    = "/calibration.v1.RaterCalibration/GetNormalizedScores"
	RaterCalibration_GetNormalizationReport_FullMethodName = "/calibration.v1.RaterCalibration/GetNormalizationReport"
	RaterCalibration_GetPeriodReports_FullMethodName       = "/calibration.v1.RaterCalibration/GetPeriodReports"
)

// RaterCalibrationServer is the server API for the RaterCalibration service.
type RaterCalibrationServer interface {
	GetRaterStatistics(context.Context, *PeriodRequest) (*RaterStatisticsResponse, error)
	GetGlobalStatistics(context.Context, *PeriodRequest) (*GlobalStatisticsResponse, error)
	GetNormalizedScores(context.Context, *PeriodRequest) (*NormalizedScoresResponse, error)
	GetNormalizationReport(context.Context, *PeriodRequest) (*NormalizationReportResponse, error)
	GetPeriodReports(context.Context, *PeriodsRequest) (*PeriodReportsResponse, error)
}

// UnimplementedRaterCalibrationServer can be embedded to have forward
// compatible implementations.
type UnimplementedRaterCalibrationServer struct{}

func (UnimplementedRaterCalibrationServer) GetRaterStatistics(context.Context, *PeriodRequest) (*RaterStatisticsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRaterStatistics not implemented")
}

func (UnimplementedRaterCalibrationServer) GetGlobalStatistics(context.Context, *PeriodRequest) (*GlobalStatisticsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetGlobalStatistics not implemented")
}

func (UnimplementedRaterCalibrationServer) GetNormalizedScores(context.Context, *PeriodRequest) (*NormalizedScoresResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetNormalizedScores not implemented")
}

func (UnimplementedRaterCalibrationServer) GetNormalizationReport(context.Context, *PeriodRequest) (*NormalizationReportResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetNormalizationReport not implemented")
}

func (UnimplementedRaterCalibrationServer) GetPeriodReports(context.Context, *PeriodsRequest) (*PeriodReportsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPeriodReports not implemented")
}

func RegisterRaterCalibrationServer(s grpc.ServiceRegistrar, srv RaterCalibrationServer) {
	s.RegisterService(&RaterCalibration_ServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc's method handler signature.
func unaryHandler[Req any](fullMethod string, call func(RaterCalibrationServer, context.Context, *Req) (any, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RaterCalibrationServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RaterCalibrationServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RaterCalibration_ServiceDesc is the grpc.ServiceDesc for the RaterCalibration service.
var RaterCalibration_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RaterCalibrationServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetRaterStatistics",
			Handler: unaryHandler(RaterCalibration_GetRaterStatistics_FullMethodName,
				func(s RaterCalibrationServer, ctx context.Context, in *PeriodRequest) (any, error) {
					return s.GetRaterStatistics(ctx, in)
				}),
		},
		{
			MethodName: "GetGlobalStatistics",
			Handler: unaryHandler(RaterCalibration_GetGlobalStatistics_FullMethodName,
				func(s RaterCalibrationServer, ctx context.Context, in *PeriodRequest) (any, error) {
					return s.GetGlobalStatistics(ctx, in)
				}),
		},
		{
			MethodName: "GetNormalizedScores",
			Handler: unaryHandler(RaterCalibration_GetNormalizedScores_FullMethodName,
				func(s RaterCalibrationServer, ctx context.Context, in *PeriodRequest) (any, error) {
					return s.GetNormalizedScores(ctx, in)
				}),
		},
		{
			MethodName: "GetNormalizationReport",
			Handler: unaryHandler(RaterCalibration_GetNormalizationReport_FullMethodName,
				func(s RaterCalibrationServer, ctx context.Context, in *PeriodRequest) (any, error) {
					return s.GetNormalizationReport(ctx, in)
				}),
		},
		{
			MethodName: "GetPeriodReports",
			Handler: unaryHandler(RaterCalibration_GetPeriodReports_FullMethodName,
				func(s RaterCalibrationServer, ctx context.Context, in *PeriodsRequest) (any, error) {
					return s.GetPeriodReports(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/v1/calibration_grpc.go",
}

// RaterCalibrationClient is the client API for the RaterCalibration service.
type RaterCalibrationClient interface {
	GetRaterStatistics(ctx context.Context, in *PeriodRequest, opts ...grpc.CallOption) (*RaterStatisticsResponse, error)
	GetGlobalStatistics(ctx context.Context, in *PeriodRequest, opts ...grpc.CallOption) (*GlobalStatisticsResponse, error)
	GetNormalizedScores(ctx context.Context, in *PeriodRequest, opts ...grpc.CallOption) (*NormalizedScoresResponse, error)
	GetNormalizationReport(ctx context.Context, in *PeriodRequest, opts ...grpc.CallOption) (*NormalizationReportResponse, error)
	GetPeriodReports(ctx context.Context, in *PeriodsRequest, opts ...grpc.CallOption) (*PeriodReportsResponse, error)
}

type raterCalibrationClient struct {
	cc grpc.ClientConnInterface
}

func NewRaterCalibrationClient(cc grpc.ClientConnInterface) RaterCalibrationClient {
	return &raterCalibrationClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *raterCalibrationClient) GetRaterStatistics(ctx context.Context, in *PeriodRequest, opts ...grpc.CallOption) (*RaterStatisticsResponse, error) {
	return invoke[RaterStatisticsResponse](ctx, c.cc, RaterCalibration_GetRaterStatistics_FullMethodName, in, opts)
}

func (c *raterCalibrationClient) GetGlobalStatistics(ctx context.Context, in *PeriodRequest, opts ...grpc.CallOption) (*GlobalStatisticsResponse, error) {
	return invoke[GlobalStatisticsResponse](ctx, c.cc, RaterCalibration_GetGlobalStatistics_FullMethodName, in, opts)
}

func (c *raterCalibrationClient) GetNormalizedScores(ctx context.Context, in *PeriodRequest, opts ...grpc.CallOption) (*NormalizedScoresResponse, error) {
	return invoke[NormalizedScoresResponse](ctx, c.cc, RaterCalibration_GetNormalizedScores_FullMethodName, in, opts)
}

func (c *raterCalibrationClient) GetNormalizationReport(ctx context.Context, in *PeriodRequest, opts ...grpc.CallOption) (*NormalizationReportResponse, error) {
	return invoke[NormalizationReportResponse](ctx, c.cc, RaterCalibration_GetNormalizationReport_FullMethodName, in, opts)
}

func (c *raterCalibrationClient) GetPeriodReports(ctx context.Context, in *PeriodsRequest, opts ...grpc.CallOption) (*PeriodReportsResponse, error) {
	return invoke[PeriodReportsResponse](ctx, c.cc, RaterCalibration_GetPeriodReports_FullMethodName, in, opts)
}
