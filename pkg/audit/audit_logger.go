package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audit event
type EventType string

const (
	EventRankingCreated        EventType = "ranking_created"
	EventRankingDeactivated    EventType = "ranking_deactivated"
	EventApplicationSubmitted  EventType = "application_submitted"
	EventApplicationScored     EventType = "application_scored"
	EventScoringBatchCompleted EventType = "scoring_batch_completed"
	EventScoringSkipped        EventType = "scoring_skipped"
	EventScoringFailed         EventType = "scoring_failed"
	EventStatusChanged         EventType = "status_changed"
	EventRateLimitTriggered    EventType = "rate_limit_triggered"
)

// Event is a hiring decision or scoring action worth keeping a trail of.
type Event struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "ranking", "application", "email", "ip"
	SubjectValue string                 `json:"subject_value,omitempty"` // Masked for PII
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// Logger writes audit events as structured zap entries.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// Init builds the production audit logger and makes it the default.
func Init(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		zl, _ = zap.NewProduction()
	}

	l := New(zl, serviceName, environment)
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
	return l
}

// New wraps an existing zap logger.
func New(zl *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{zapLogger: zl, serviceName: serviceName, environment: environment}
}

// NewNop returns a logger that discards every event.
func NewNop() *Logger {
	return New(zap.NewNop(), "", "")
}

// Default returns the process-wide audit logger, initializing it on first use.
func Default() *Logger {
	defaultMu.Lock()
	l := defaultLogger
	defaultMu.Unlock()
	if l == nil {
		return Init("hireranker-backend", Environment())
	}
	return l
}

// Log writes an audit event
func (l *Logger) Log(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = l.serviceName
	event.Environment = l.environment

	level := zapcore.InfoLevel
	switch event.Event {
	case EventScoringSkipped, EventRateLimitTriggered:
		level = zapcore.WarnLevel
	case EventScoringFailed:
		level = zapcore.ErrorLevel
	}
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)
}

func (l *Logger) LogRankingCreated(ctx context.Context, rankingID int64, position string) {
	l.Log(ctx, Event{
		Event:        EventRankingCreated,
		SubjectType:  "ranking",
		SubjectValue: itoa(rankingID),
		Details:      map[string]interface{}{"position": position},
	})
}

func (l *Logger) LogRankingDeactivated(ctx context.Context, rankingID int64) {
	l.Log(ctx, Event{Event: EventRankingDeactivated, SubjectType: "ranking", SubjectValue: itoa(rankingID)})
}

func (l *Logger) LogApplicationSubmitted(ctx context.Context, rankingID int64, email string) {
	l.Log(ctx, Event{
		Event:        EventApplicationSubmitted,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      map[string]interface{}{"ranking_id": rankingID},
	})
}

func (l *Logger) LogApplicationScored(ctx context.Context, applicationID int64, totalScore int) {
	l.Log(ctx, Event{
		Event:        EventApplicationScored,
		SubjectType:  "application",
		SubjectValue: itoa(applicationID),
		Details:      map[string]interface{}{"total_score": totalScore},
	})
}

func (l *Logger) LogScoringSkipped(ctx context.Context, applicationID int64, reason string) {
	l.Log(ctx, Event{
		Event:        EventScoringSkipped,
		SubjectType:  "application",
		SubjectValue: itoa(applicationID),
		Details:      map[string]interface{}{"reason": reason},
	})
}

func (l *Logger) LogScoringFailed(ctx context.Context, applicationID int64, err error) {
	l.Log(ctx, Event{
		Event:        EventScoringFailed,
		SubjectType:  "application",
		SubjectValue: itoa(applicationID),
		Details:      map[string]interface{}{"error": err.Error()},
	})
}

func (l *Logger) LogScoringBatchCompleted(ctx context.Context, rankingID int64, scored, total, failed int) {
	l.Log(ctx, Event{
		Event:        EventScoringBatchCompleted,
		SubjectType:  "ranking",
		SubjectValue: itoa(rankingID),
		Details: map[string]interface{}{
			"scored": scored,
			"total":  total,
			"errors": failed,
		},
	})
}

func (l *Logger) LogStatusChanged(ctx context.Context, applicationID int64, from, to string) {
	l.Log(ctx, Event{
		Event:        EventStatusChanged,
		SubjectType:  "application",
		SubjectValue: itoa(applicationID),
		Details:      map[string]interface{}{"from": from, "to": to},
	})
}

func (l *Logger) LogRateLimitTriggered(ctx context.Context, ip, requestID, endpoint string) {
	l.Log(ctx, Event{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return HashValue(email)
	}
	if at <= 1 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue creates a short SHA256 digest of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

// Environment derives the deployment environment from APP_ENV or GIN_MODE.
func Environment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
