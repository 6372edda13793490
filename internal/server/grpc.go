package server

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rshade/carbonwise/internal/carbon"
	"github.com/rshade/carbonwise/internal/profile"
)

// FootprintServiceName is the fully-qualified gRPC service name.
const FootprintServiceName = "carbonwise.v1.FootprintService"

// EstimateFullMethod is the full method name of FootprintService.Estimate.
const EstimateFullMethod = "/" + FootprintServiceName + "/Estimate"

// errorDomain identifies this service in gRPC error details.
const errorDomain = "carbonwise"

// Error reasons attached to gRPC error details.
const (
	reasonCodeInvalidField = "INVALID_FIELD"
	reasonCodeInternal     = "ESTIMATE_FAILED"
)

// FootprintServiceServer is the gRPC surface of the estimator. Requests and
// responses are google.protobuf.Struct values with the same field names as
// the HTTP API.
type FootprintServiceServer interface {
	Estimate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var _ FootprintServiceServer = (*Server)(nil)

var footprintServiceDesc = grpc.ServiceDesc{
	ServiceName: FootprintServiceName,
	HandlerType: (*FootprintServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Estimate",
			Handler:    estimateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "carbonwise/v1/footprint.proto",
}

func estimateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FootprintServiceServer).Estimate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EstimateFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FootprintServiceServer).Estimate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// NewGRPCServer builds a gRPC server exposing FootprintService and the
// standard health service. Both are reported SERVING; call Shutdown on the
// returned health server before stopping.
func (s *Server) NewGRPCServer(opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.unaryTraceInterceptor))
	gs := grpc.NewServer(opts...)
	gs.RegisterService(&footprintServiceDesc, s)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(FootprintServiceName, healthpb.HealthCheckResponse_SERVING)

	return gs, hs
}

// unaryTraceInterceptor assigns a trace ID and logs each call.
func (s *Server) unaryTraceInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	traceID := grpcTraceID(ctx)
	ctx = ContextWithTraceID(ctx, traceID)

	resp, err := handler(ctx, req)

	s.logger.Info().
		Str(fieldTraceID, traceID).
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Int64(fieldDurationMs, time.Since(start).Milliseconds()).
		Msg("rpc handled")

	return resp, err
}

// Estimate implements FootprintServiceServer.
func (s *Server) Estimate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	traceID := grpcTraceID(ctx)
	logger := s.logger.With().Str(fieldTraceID, traceID).Logger()

	input, err := profile.Parse(req.AsMap())
	if err != nil {
		s.metrics.ObserveFailure(transportGRPC, reasonInvalidPayload)
		field := ""
		var verr *profile.ValidationError
		if errors.As(err, &verr) {
			field = verr.Field
		}
		statusErr := s.newErrorWithID(traceID, codes.InvalidArgument, err.Error(), reasonCodeInvalidField, field)
		logger.Warn().Str(fieldOperation, "Estimate").Err(err).Msg("profile rejected")
		return nil, statusErr
	}

	result, err := s.calculate(logger, transportGRPC, input)
	if err != nil {
		return nil, s.newErrorWithID(traceID, codes.Internal, err.Error(), reasonCodeInternal, "")
	}

	out, err := resultToStruct(result)
	if err != nil {
		logger.Error().Str(fieldOperation, "Estimate").Err(err).Msg("encoding result failed")
		return nil, s.newErrorWithID(traceID, codes.Internal, err.Error(), reasonCodeInternal, "")
	}
	return out, nil
}

// newErrorWithID creates a gRPC error whose details carry the trace ID and,
// when known, the offending field.
func (s *Server) newErrorWithID(traceID string, code codes.Code, msg, reason, field string) error {
	info := &errdetails.ErrorInfo{
		Reason: reason,
		Domain: errorDomain,
		Metadata: map[string]string{
			"trace_id": traceID,
		},
	}
	if field != "" {
		info.Metadata["field"] = field
	}

	st := status.New(code, msg)
	withDetails, err := st.WithDetails(info)
	if err != nil {
		s.logger.Warn().
			Str(fieldTraceID, traceID).
			Str("grpc_code", code.String()).
			Err(err).
			Msg("failed to attach error details to gRPC status")
		return st.Err()
	}
	return withDetails.Err()
}

// resultToStruct converts a Result into the same shape the HTTP API emits.
func resultToStruct(r carbon.Result) (*structpb.Struct, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}
