package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KonishchevDmitry/easypub/internal/generator"
)

// Generator is a background publication list generator.
type Generator interface {
	prometheus.Collector
	Start(ctx context.Context)
	Stop(ctx context.Context)
	Get(ctx context.Context) generator.Result
}

var _ Generator = &generator.Generator{}

type Server struct {
	router    *mux.Router
	generator Generator
}

func New(publications Generator) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		generator: publications,
	}

	s.registerDocument("/publications.html", generator.FormatHTML)
	s.registerDocument("/publications.rss", generator.FormatRSS)
	s.registerDocument("/report.json", generator.FormatReport)

	s.router.NotFoundHandler = s.wrap(func(ctx context.Context, writer http.ResponseWriter, request *http.Request) {
		http.NotFound(writer, request)
	})

	return s
}

// Handler returns the handler which serves the publication list.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Serve(ctx context.Context, addr string, metricsAddr string) error {
	var waitGroup sync.WaitGroup
	defer waitGroup.Wait()

	if err := prometheus.DefaultRegisterer.Register(s.generator); err != nil {
		return err
	}
	defer prometheus.DefaultRegisterer.Unregister(s.generator)

	//nolint:gosec
	publicationsServer := http.Server{
		Addr:     addr,
		Handler:  s.router,
		ErrorLog: errorLog(ctx, "Publications"),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	defer func() {
		if err := publicationsServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logging.L(ctx).Errorf("Failed to shutdown publications HTTP server: %s.", err)
		}
	}()

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: metricsLogger{logging.L(ctx)},
	}))

	//nolint:gosec
	metricsServer := http.Server{
		Addr:     metricsAddr,
		Handler:  metricsMux,
		ErrorLog: errorLog(ctx, "Metrics"),
	}
	defer func() {
		if err := metricsServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logging.L(ctx).Errorf("Failed to shutdown metrics HTTP server: %s.", err)
		}
	}()

	logging.L(ctx).Infof("Listening on %s (publications) and %s (metrics)...", addr, metricsAddr)

	publicationsSocket, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	closePublicationsSocket := true
	defer func() {
		if closePublicationsSocket {
			if err := publicationsSocket.Close(); err != nil {
				logging.L(ctx).Errorf("Failed to close a socket: %s.", err)
			}
		}
	}()

	metricsSocket, err := net.Listen("tcp", metricsAddr)
	if err != nil {
		return err
	}
	closeMetricsSocket := true
	defer func() {
		if closeMetricsSocket {
			if err := metricsSocket.Close(); err != nil {
				logging.L(ctx).Errorf("Failed to close a socket: %s.", err)
			}
		}
	}()

	serverCrashed := make(chan error, 2)

	closePublicationsSocket = false
	waitGroup.Go(func() {
		if err := publicationsServer.Serve(publicationsSocket); !errors.Is(err, http.ErrServerClosed) {
			serverCrashed <- fmt.Errorf("publications HTTP server has crashed: %w", err)
		}
	})

	closeMetricsSocket = false
	waitGroup.Go(func() {
		if err := metricsServer.Serve(metricsSocket); !errors.Is(err, http.ErrServerClosed) {
			serverCrashed <- fmt.Errorf("metrics HTTP server has crashed: %w", err)
		}
	})

	s.generator.Start(ctx)
	defer s.generator.Stop(ctx)

	select {
	case err := <-serverCrashed:
		return err
	case <-ctx.Done():
		logging.L(ctx).Info("Shutting down...")
		return nil
	}
}

func (s *Server) registerDocument(path string, format generator.Format) {
	s.router.Handle(path, s.wrap(func(ctx context.Context, writer http.ResponseWriter, request *http.Request) {
		result := s.generator.Get(ctx)
		status, document := result.Document(format)

		header := writer.Header()
		header.Set("Content-Type", document.ContentType)
		if status == http.StatusOK {
			header.Set("Last-Modified", result.Time.UTC().Format(http.TimeFormat))
		}
		writer.WriteHeader(status)

		if request.Method != http.MethodHead {
			if _, err := writer.Write(document.Data); err != nil {
				logging.L(ctx).Debugf("Failed to send %s: %s.", request.RequestURI, err)
			}
		}
	})).Methods(http.MethodGet, http.MethodHead)
}

func (s *Server) wrap(handler func(ctx context.Context, writer http.ResponseWriter, request *http.Request)) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		logging.L(ctx).Debugf("%s %s...", request.Method, request.RequestURI)
		handler(ctx, writer, request)
		logging.L(ctx).Debugf("%s %s finished.", request.Method, request.RequestURI)
	})
}
