package metrics

import (
	"time"
)

type RedisOperation string

const (
	RedisOpGet  RedisOperation = "get"
	RedisOpSet  RedisOperation = "set"
	RedisOpIncr RedisOperation = "incr"
)

type RedisTimer struct {
	service   string
	operation RedisOperation
	start     time.Time
}

func NewRedisTimer(service string, op RedisOperation) *RedisTimer {
	return &RedisTimer{
		service:   service,
		operation: op,
		start:     time.Now(),
	}
}

func (rt *RedisTimer) ObserveDuration() {
	RedisOperationDuration.WithLabelValues(rt.service, string(rt.operation)).Observe(time.Since(rt.start).Seconds())
}

func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

func (kt *KafkaProduceTimer) Error() {
	KafkaErrors.WithLabelValues(kt.service, kt.topic, "produce").Inc()
}

type StoreOperation string

const (
	StoreOpFind   StoreOperation = "find"
	StoreOpInsert StoreOperation = "insert"
)

// StoreTimer измеряет длительность одного запроса к MongoDB или PostgreSQL
type StoreTimer struct {
	service    string
	backend    string
	operation  StoreOperation
	collection string
	start      time.Time
}

func NewStoreTimer(service, backend string, op StoreOperation, collection string) *StoreTimer {
	return &StoreTimer{
		service:    service,
		backend:    backend,
		operation:  op,
		collection: collection,
		start:      time.Now(),
	}
}

// Done фиксирует длительность и, если err != nil, увеличивает счётчик ошибок
func (st *StoreTimer) Done(err error) {
	StoreQueryDuration.WithLabelValues(st.service, st.backend, string(st.operation), st.collection).
		Observe(time.Since(st.start).Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(st.service, st.backend, string(st.operation)).Inc()
	}
}
