package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"

	"go.mongodb.org/mongo-driver/bson"
)

// Форматы, в которых принимаются границы from/to
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ReviewFilter хранит сырые параметры запроса отчёта
// Пустая строка означает отсутствие ограничения. Приведение типов откладывается
// до обращения к хранилищу, поэтому сам фильтр построить можно из любых строк
type ReviewFilter struct {
	StoreID string
	From    string
	To      string
}

func NewReviewFilter(storeID, from, to string) ReviewFilter {
	return ReviewFilter{
		StoreID: strings.TrimSpace(storeID),
		From:    strings.TrimSpace(from),
		To:      strings.TrimSpace(to),
	}
}

func (f ReviewFilter) HasStore() bool {
	return f.StoreID != ""
}

// CacheKey однозначно описывает фильтр для ключа кеша
func (f ReviewFilter) CacheKey() string {
	return "store=" + f.StoreID + "|from=" + f.From + "|to=" + f.To
}

type resolvedFilter struct {
	storeID *int
	from    *time.Time
	to      *time.Time
}

func (f ReviewFilter) resolve() (resolvedFilter, error) {
	var rf resolvedFilter

	if f.StoreID != "" {
		id, err := strconv.Atoi(f.StoreID)
		if err != nil {
			return rf, castError("Number", f.StoreID, "storeId")
		}
		rf.storeID = &id
	}

	if f.From != "" {
		t, err := parseTimestamp(f.From)
		if err != nil {
			return rf, castError("date", f.From, "datetime")
		}
		rf.from = &t
	}

	if f.To != "" {
		t, err := parseTimestamp(f.To)
		if err != nil {
			return rf, castError("date", f.To, "datetime")
		}
		rf.to = &t
	}

	return rf, nil
}

// BSON строит запрос MongoDB: datetime в [from, to], опционально storeId
func (f ReviewFilter) BSON() (bson.M, error) {
	rf, err := f.resolve()
	if err != nil {
		return nil, err
	}

	query := bson.M{}

	datetime := bson.M{}
	if rf.from != nil {
		datetime["$gte"] = *rf.from
	}
	if rf.to != nil {
		datetime["$lte"] = *rf.to
	}
	if len(datetime) > 0 {
		query["datetime"] = datetime
	}

	if rf.storeID != nil {
		query["storeId"] = *rf.storeID
	}

	return query, nil
}

// Predicate возвращает тот же фильтр в виде функции над отзывом
func (f ReviewFilter) Predicate() (func(entity.Review) bool, error) {
	rf, err := f.resolve()
	if err != nil {
		return nil, err
	}

	return func(r entity.Review) bool {
		if rf.storeID != nil && r.StoreID != *rf.storeID {
			return false
		}
		if rf.from != nil && r.Datetime.Before(*rf.from) {
			return false
		}
		if rf.to != nil && r.Datetime.After(*rf.to) {
			return false
		}
		return true
	}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func castError(kind, value, path string) error {
	return &StoreError{
		Kind: KindCastError,
		Err:  fmt.Errorf("Cast to %s failed for value %q (type string) at path %q", kind, value, path),
	}
}
