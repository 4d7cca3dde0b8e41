// Package report decorates a SlotArrayMap so that every operation is rendered
// as a trace line and logged as a structured event.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/on-the-ground/assocarray/assoc"
	"github.com/on-the-ground/assocarray/shared/log"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"
)

// Emitter receives rendered trace lines.
type Emitter interface {
	Emit(line string)
}

// Reporter wraps a SlotArrayMap and reports each call made through it.
type Reporter[K comparable, V any] struct {
	name    string
	m       *assoc.SlotArrayMap[K, V]
	out     Emitter
	logger  *zap.Logger
	traceID string
}

// New wraps m. A nil logger disables structured logging.
func New[K comparable, V any](
	name string,
	m *assoc.SlotArrayMap[K, V],
	out Emitter,
	logger *zap.Logger,
) *Reporter[K, V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter[K, V]{
		name:    name,
		m:       m,
		out:     out,
		logger:  logger,
		traceID: uuid.New().String(),
	}
}

// Map returns the wrapped container.
func (r *Reporter[K, V]) Map() *assoc.SlotArrayMap[K, V] {
	return r.m
}

// Size reports and returns the number of entries.
func (r *Reporter[K, V]) Size() int {
	start := time.Now()
	n := r.m.Size()
	r.emit(start, log.LogDebug, "size", fmt.Sprintf("%s.size() -> %d", r.name, n), map[string]interface{}{
		"result": n,
	})
	return n
}

// Set reports the insertion or overwrite of key.
func (r *Reporter[K, V]) Set(key K, value V) {
	start := time.Now()
	r.m.Set(key, value)
	r.emit(start, log.LogDebug, "set", fmt.Sprintf("%s.set(%v, %v)", r.name, key, value), map[string]interface{}{
		"key":   key,
		"value": value,
	})
}

// Get reports the lookup and returns its result unchanged.
// A missing key is reported at info level; it is an expected outcome.
func (r *Reporter[K, V]) Get(key K) (V, error) {
	start := time.Now()
	v, err := r.m.Get(key)
	if err != nil {
		level := log.LogInfo
		if !errors.Is(err, assoc.ErrKeyNotFound) {
			level = log.LogError
		}
		r.emit(start, level, "get", fmt.Sprintf("%s.get(%v) FAILED: %v", r.name, key, err), map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return v, err
	}
	r.emit(start, log.LogDebug, "get", fmt.Sprintf("%s.get(%v) -> %v", r.name, key, v), map[string]interface{}{
		"key":    key,
		"result": v,
	})
	return v, nil
}

// HasKey reports and returns whether key is present.
func (r *Reporter[K, V]) HasKey(key K) bool {
	start := time.Now()
	ok := r.m.HasKey(key)
	r.emit(start, log.LogDebug, "hasKey", fmt.Sprintf("%s.hasKey(%v) -> %t", r.name, key, ok), map[string]interface{}{
		"key":    key,
		"result": ok,
	})
	return ok
}

// Remove reports the removal of key, including removals of absent keys.
func (r *Reporter[K, V]) Remove(key K) {
	start := time.Now()
	r.m.Remove(key)
	r.emit(start, log.LogDebug, "remove", fmt.Sprintf("%s.remove(%v)", r.name, key), map[string]interface{}{
		"key": key,
	})
}

// Clone reports the copy and returns the bare clone.
func (r *Reporter[K, V]) Clone() *assoc.SlotArrayMap[K, V] {
	start := time.Now()
	c := r.m.Clone()
	r.emit(start, log.LogDebug, "clone", fmt.Sprintf("%s.clone() -> %s", r.name, c), map[string]interface{}{
		"result": c.String(),
	})
	return c
}

// Render reports and returns the rendering of the wrapped container.
// Reporter has no String method: formatting a Reporter with %v must not emit a trace line.
func (r *Reporter[K, V]) Render() string {
	start := time.Now()
	s := r.m.String()
	r.emit(start, log.LogDebug, "format", fmt.Sprintf("%s.format() -> %s", r.name, s), map[string]interface{}{
		"result": s,
	})
	return s
}

func (r *Reporter[K, V]) emit(start time.Time, level log.LogLevel, op, line string, fields map[string]interface{}) {
	span := timespan.BetweenTimes(start, time.Now())
	r.out.Emit(line)

	fields["map"] = r.name
	fields["op"] = op
	fields["size"] = r.m.Size()
	fields["span_start"] = span.Start()
	fields["span_duration"] = span.Duration()
	fields["trace_id"] = r.traceID
	log.Log(r.logger, level, "slot array map operation", fields)
}

// Fingerprint digests the rendering of m.
// Maps with the same entries in the same slot order share a fingerprint.
func Fingerprint[K comparable, V any](m *assoc.SlotArrayMap[K, V]) uint64 {
	return xxhash.Sum64String(m.String())
}
