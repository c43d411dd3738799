package infrastructure

import (
	"context"

	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"
)

// MessagePublisher отправляет доменные события во внешнюю шину
type MessagePublisher interface {
	PublishReviewEvent(ctx context.Context, event entity.ReviewEvent) error
	PublishReportDigest(ctx context.Context, event entity.ReportDigestEvent) error
	Close() error
}

// ReportCache хранит вычисленные отчёты
// version - поколение данных на момент Lookup, Store пишет под этим поколением,
// поэтому отчёт, посчитанный до нового отзыва, больше не будет прочитан
type ReportCache interface {
	Lookup(ctx context.Context, key string) (*entity.ReportSummary, int64, error)
	Store(ctx context.Context, key string, version int64, summary entity.ReportSummary) error
	Invalidate(ctx context.Context) error
	Close() error
}
