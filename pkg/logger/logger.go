package logger

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Logger = logrus.New()

// Init configures the process-wide logger. Production gets JSON lines for
// log shippers; everything else gets a colored human-readable format.
func Init() {
	Logger.SetOutput(os.Stdout)

	if os.Getenv("APP_ENV") == "production" {
		Logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
			ForceColors:     true,
			PadLevelText:    true,
		})
	}

	Logger.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))
}

func parseLevel(raw string) logrus.Level {
	switch strings.ToLower(raw) {
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

func Info(msg string, fields map[string]interface{})  { Logger.WithFields(fields).Info(msg) }
func Warn(msg string, fields map[string]interface{})  { Logger.WithFields(fields).Warn(msg) }
func Debug(msg string, fields map[string]interface{}) { Logger.WithFields(fields).Debug(msg) }
func Fatal(msg string, fields map[string]interface{}) { Logger.WithFields(fields).Fatal(msg) }

func Error(err error, msg string, fields map[string]interface{}) {
	Logger.WithError(err).WithFields(fields).Error(msg)
}

type ctxKey struct{}

// ContextWithFields attaches log fields to a context so downstream log calls
// can carry request-scoped data like the request id.
func ContextWithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	existing, _ := ctx.Value(ctxKey{}).(map[string]interface{})
	merged := make(map[string]interface{}, len(existing)+len(fields))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, ctxKey{}, merged)
}

// FromContext returns an entry carrying the fields attached to the context.
func FromContext(ctx context.Context) *logrus.Entry {
	if fields, ok := ctx.Value(ctxKey{}).(map[string]interface{}); ok {
		return Logger.WithFields(fields)
	}
	return logrus.NewEntry(Logger)
}

// GinLogger logs one line per request after the handler chain completes.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		entry := Logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.RequestURI(),
			"status":    status,
			"client_ip": c.ClientIP(),
			"latency":   time.Since(start).String(),
		})
		if requestID := c.Writer.Header().Get("X-Request-ID"); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}

		msg := "request completed"
		if len(c.Errors) > 0 {
			msg = c.Errors.String()
		}

		switch {
		case status >= 500:
			entry.Error(msg)
		case status >= 400:
			entry.Warn(msg)
		default:
			entry.Info(msg)
		}
	}
}

// GormLogger routes gorm output through logrus. Record-not-found is an
// expected outcome in the repositories, not an error worth a log line.
type GormLogger struct {
	SlowThreshold time.Duration
}

func NewGormLogger() logger.Interface {
	return &GormLogger{SlowThreshold: 200 * time.Millisecond}
}

func (l *GormLogger) LogMode(logger.LogLevel) logger.Interface { return l }

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	Logger.Infof(msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	Logger.Warnf(msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	Logger.Errorf(msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := logrus.Fields{"sql": sql, "rows": rows, "elapsed": elapsed.String()}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		Logger.WithError(err).WithFields(fields).Error("database query failed")
	case elapsed > l.SlowThreshold:
		Logger.WithFields(fields).Warn("slow query")
	default:
		Logger.WithFields(fields).Debug("query executed")
	}
}
