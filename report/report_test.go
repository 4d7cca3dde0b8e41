package report_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/on-the-ground/assocarray/assoc"
	"github.com/on-the-ground/assocarray/report"
	"github.com/on-the-ground/assocarray/shared/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lines []string

func (l *lines) Emit(line string) {
	*l = append(*l, line)
}

func TestReporter_TracesEachOperation(t *testing.T) {
	var out lines
	r := report.New("s2s", assoc.New[string, string](), &out, nil)

	r.Size()
	r.Set("a", "apple")
	r.Set("A", "aardvark")
	r.HasKey("a")
	_, err := r.Get("a")
	require.NoError(t, err)
	r.Remove("a")
	_, err = r.Get("a")
	assert.ErrorIs(t, err, assoc.ErrKeyNotFound)
	r.Render()

	assert.Equal(t, lines{
		"s2s.size() -> 0",
		"s2s.set(a, apple)",
		"s2s.set(A, aardvark)",
		"s2s.hasKey(a) -> true",
		"s2s.get(a) -> apple",
		"s2s.remove(a)",
		"s2s.get(a) FAILED: key not found: a",
		"s2s.format() -> { A: aardvark }",
	}, out)
}

func TestReporter_PrintingDoesNotTrace(t *testing.T) {
	var out lines
	r := report.New("m", assoc.New[string, int](), &out, nil)

	_ = fmt.Sprintf("%v", r)
	_ = fmt.Sprintf("%v", r)
	assert.Empty(t, out)

	_, isStringer := any(r).(fmt.Stringer)
	assert.False(t, isStringer)

	assert.Equal(t, "{}", r.Render())
	assert.Equal(t, lines{"m.format() -> {}"}, out)
}

func TestReporter_DelegatesToWrappedMap(t *testing.T) {
	var out lines
	m := assoc.New[int, int]()
	r := report.New("i2i", m, &out, nil)

	r.Set(1, 1)
	r.Set(2, 4)
	r.Remove(1)

	assert.Same(t, m, r.Map())
	assert.Equal(t, 1, m.Size())
	assert.False(t, m.HasKey(1))
}

func TestReporter_CloneIsBare(t *testing.T) {
	var out lines
	r := report.New("m", assoc.New[string, int](), &out, nil)
	r.Set("x", 1)

	c := r.Clone()
	c.Set("y", 2)

	assert.False(t, r.HasKey("y"))
	assert.Equal(t, "m.clone() -> { x: 1 }", out[1])
	// mutations on the clone are not traced
	assert.Len(t, out, 3)
}

func TestReporter_LogsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := log.NewLogger(log.LogDebug, log.EncodingJSON, &buf)
	require.NoError(t, err)

	var out lines
	r := report.New("s2s", assoc.New[string, string](), &out, logger)
	r.Set("a", "apple")
	_, _ = r.Get("b")

	entries := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, entries, 2)

	var set, get map[string]any
	require.NoError(t, json.Unmarshal([]byte(entries[0]), &set))
	require.NoError(t, json.Unmarshal([]byte(entries[1]), &get))

	assert.Equal(t, "debug", set["level"])
	assert.Equal(t, "set", set["op"])
	assert.Equal(t, "s2s", set["map"])
	assert.Equal(t, "a", set["key"])
	assert.Equal(t, "apple", set["value"])
	assert.EqualValues(t, 1, set["size"])
	assert.NotEmpty(t, set["trace_id"])
	assert.Contains(t, set, "span_start")
	assert.Contains(t, set, "span_duration")

	assert.Equal(t, "info", get["level"])
	assert.Equal(t, "get", get["op"])
	assert.Equal(t, "key not found: b", get["error"])
	assert.Equal(t, set["trace_id"], get["trace_id"])
}

func TestFingerprint(t *testing.T) {
	m := assoc.New[string, int]()
	m.Set("a", 1)
	c := m.Clone()
	assert.Equal(t, report.Fingerprint(m), report.Fingerprint(c))

	c.Set("b", 2)
	assert.NotEqual(t, report.Fingerprint(m), report.Fingerprint(c))

	c.Remove("b")
	assert.Equal(t, report.Fingerprint(m), report.Fingerprint(c))
}
