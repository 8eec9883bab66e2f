package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"syscall"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// errorLog returns a standard logger for http.Server which forwards its messages to the context logger.
func errorLog(ctx context.Context, name string) *log.Logger {
	return log.New(serverLogWriter{logging.L(ctx)}, name+" HTTP server: ", 0)
}

type serverLogWriter struct {
	logger *zap.SugaredLogger
}

func (w serverLogWriter) Write(message []byte) (int, error) {
	size := len(message)
	w.logger.Errorf("%s.", strings.TrimSuffix(string(message), "\n"))
	return size, nil
}

type metricsLogger struct {
	logger *zap.SugaredLogger
}

var _ promhttp.Logger = metricsLogger{}

func (l metricsLogger) Println(v ...any) {
	level := zapcore.ErrorLevel

	for _, value := range v {
		if err, ok := value.(error); ok {
			if isClientGone(err) {
				level = zapcore.DebugLevel
			}
			break
		}
	}

	l.logger.Logf(level, "Metrics handler: %s.", strings.TrimRight(fmt.Sprint(v...), "\n"))
}

// isClientGone reports whether the error is caused by a client which has closed the connection or stopped reading.
func isClientGone(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}

	var netErr *net.OpError
	return errors.As(err, &netErr) && netErr.Op == "write" &&
		(netErr.Timeout() || errors.Is(netErr.Err, syscall.EPIPE) || errors.Is(netErr.Err, syscall.ECONNRESET))
}
