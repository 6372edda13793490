package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// readHeaderTimeout bounds slow clients sending request headers.
const readHeaderTimeout = 10 * time.Second

// Run serves HTTP, and gRPC when a gRPC port is configured, until ctx is
// cancelled or a listener fails. Shutdown is graceful and bounded by the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	httpLis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}

	var grpcLis net.Listener
	if s.cfg.Server.GRPCPort != 0 {
		grpcLis, err = net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Server.GRPCPort))
		if err != nil {
			_ = httpLis.Close()
			return fmt.Errorf("grpc listen: %w", err)
		}
	}

	return s.Serve(ctx, httpLis, grpcLis)
}

// Serve is Run with caller-supplied listeners. grpcLis may be nil. It
// returns nil after a shutdown triggered by ctx, or the first listener
// error otherwise.
func (s *Server) Serve(ctx context.Context, httpLis, grpcLis net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	var (
		gs *grpc.Server
		hs *health.Server
	)
	if grpcLis != nil {
		gs, hs = s.NewGRPCServer()
	}

	g, gctx := errgroup.WithContext(ctx)

	s.logger.Info().Str("addr", httpLis.Addr().String()).Msg("CarbonWise server running")
	g.Go(func() error {
		if err := httpSrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if gs != nil {
		s.logger.Info().Str("addr", grpcLis.Addr().String()).Msg("gRPC server running")
		g.Go(func() error {
			if err := gs.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			s.logger.Info().Msg("Shutting down server...")
		} else {
			s.logger.Warn().Msg("listener failed, shutting down")
		}
		return s.shutdown(httpSrv, gs, hs)
	})

	err := g.Wait()
	if err != nil {
		s.logger.Error().Err(err).Msg("server stopped with error")
	}
	return err
}

// shutdown drains gRPC then HTTP within the configured timeout. gRPC calls
// still running at the deadline are cut off.
func (s *Server) shutdown(httpSrv *http.Server, gs *grpc.Server, hs *health.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if hs != nil {
		hs.Shutdown()
	}
	if gs != nil {
		stopped := make(chan struct{})
		go func() {
			gs.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			gs.Stop()
		}
	}

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
