package processor

import (
	"context"
	"fmt"
	"time"

	"customersatisfaction/pkg/logger"
	"customersatisfaction/pkg/metrics"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/infrastructure"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/service"

	"github.com/robfig/cron/v3"
)

const digestWindow = 24 * time.Hour

// DigestScheduler по расписанию считает отчёт за последние сутки
// и публикует событие REPORT_DIGEST
type DigestScheduler struct {
	cron      *cron.Cron
	reports   service.ReportServiceInterface
	publisher infrastructure.MessagePublisher
	now       func() time.Time
}

func NewDigestScheduler(reports service.ReportServiceInterface, publisher infrastructure.MessagePublisher) *DigestScheduler {
	return &DigestScheduler{
		cron:      cron.New(cron.WithLogger(cronLogger{})),
		reports:   reports,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *DigestScheduler) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			logger.Error().Err(err).Msg("report digest failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	logger.Info().Str("schedule", schedule).Msg("report digest scheduler started")
	return nil
}

// RunOnce считает и публикует один дайджест
func (s *DigestScheduler) RunOnce(ctx context.Context) error {
	to := s.now()
	from := to.Add(-digestWindow)

	filter := repository.NewReviewFilter("", from.Format(time.RFC3339Nano), to.Format(time.RFC3339Nano))
	summary, err := s.reports.GetReport(ctx, filter)
	if err != nil {
		metrics.ReportDigests.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to build report digest: %w", err)
	}

	event := entity.ReportDigestEvent{
		EventType:    "REPORT_DIGEST",
		From:         from,
		To:           to,
		AverageScore: summary.AverageScore,
		Visitors:     summary.Visitors,
		Timestamp:    time.Now().UTC(),
	}

	if err := s.publisher.PublishReportDigest(ctx, event); err != nil {
		metrics.ReportDigests.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to publish report digest: %w", err)
	}

	metrics.ReportDigests.WithLabelValues("success").Inc()
	logger.Info().
		Time("from", from).
		Time("to", to).
		Float64("average_score", summary.AverageScore).
		Int("visitors", summary.Visitors).
		Msg("report digest published")
	return nil
}

func (s *DigestScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("report digest scheduler stopped")
}

func (s *DigestScheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// cronLogger направляет служебные сообщения cron в zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
