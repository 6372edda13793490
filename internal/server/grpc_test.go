package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rshade/carbonwise/internal/carbon"
)

// dialBufconn starts srv's gRPC surface on an in-memory listener and
// returns a connected client.
func dialBufconn(t *testing.T, srv *Server) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs, _ := srv.NewGRPCServer()
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func estimate(ctx context.Context, conn *grpc.ClientConn, fields map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	err = conn.Invoke(ctx, EstimateFullMethod, req, out)
	return out, err
}

func TestGRPCEstimate(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	conn := dialBufconn(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := estimate(ctx, conn, map[string]any{
		"carMiles":          1000,
		"electricityUsage":  300,
		"energySource":      "renewable",
		"energyEfficient":   true,
		"wasteKg":           20,
		"recyclePercentage": "80",
		"foodType":          "vegan",
		"foodSpending":      200,
	})
	require.NoError(t, err)

	m := out.AsMap()
	assert.InDelta(t, 468.75, m["monthlyEmissions"], 1e-9)
	assert.InDelta(t, 5625.0, m["yearlyEmissions"], 1e-8)

	breakdown := m["breakdown"].(map[string]any)
	food := breakdown["food"].(map[string]any)
	assert.Equal(t, "vegan", food["type"])

	recs := m["recommendations"].([]any)
	require.Len(t, recs, 1)
	assert.Equal(t, string(carbon.CategoryTravel), recs[0].(map[string]any)["category"])
}

func TestGRPCEstimate_InvalidField(t *testing.T) {
	srv, logs := newTestServer(t, nil)
	conn := dialBufconn(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, traceIDMetadataKey, "grpc-trace-42")

	_, err := estimate(ctx, conn, map[string]any{"flightHours": "several"})
	require.Error(t, err)

	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Contains(t, st.Message(), "flightHours")

	var info *errdetails.ErrorInfo
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			info = ei
		}
	}
	require.NotNil(t, info, "ErrorInfo detail missing")
	assert.Equal(t, reasonCodeInvalidField, info.GetReason())
	assert.Equal(t, errorDomain, info.GetDomain())
	assert.Equal(t, "grpc-trace-42", info.GetMetadata()["trace_id"])
	assert.Equal(t, "flightHours", info.GetMetadata()["field"])

	assert.Contains(t, logs.String(), `"code":"InvalidArgument"`)
	assert.Contains(t, logs.String(), `"trace_id":"grpc-trace-42"`)
}

func TestGRPCEstimate_Panic(t *testing.T) {
	srv, _ := newTestServer(t, panickingEstimator{})
	conn := dialBufconn(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := estimate(ctx, conn, map[string]any{})
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "estimator panic")
}

func TestGRPCEstimate_NonFiniteResult(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	conn := dialBufconn(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := estimate(ctx, conn, map[string]any{"flightHours": 1e307})
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "emissions not finite")

	assert.InDelta(t, 1.0, testutilCounter(t, srv, "carbonwise_requests_failed_total", "reason", reasonNonFinite), 0)
}

func TestGRPCHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	conn := dialBufconn(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := healthpb.NewHealthClient(conn)
	for _, svc := range []string{"", FootprintServiceName} {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: svc})
		require.NoError(t, err, "service %q", svc)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	}
}

func TestGRPCMetrics(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	conn := dialBufconn(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := estimate(ctx, conn, map[string]any{"carMiles": 10})
	require.NoError(t, err)

	count := testutilCounter(t, srv, "carbonwise_estimates_total", "transport", transportGRPC)
	assert.InDelta(t, 1.0, count, 0)
}

// testutilCounter reads a single labelled counter value from the server's
// registry.
func testutilCounter(t *testing.T, srv *Server, name, label, value string) float64 {
	t.Helper()
	families, err := srv.registry.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{%s=%q} not found", name, label, value)
	return 0
}
