package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"facultynotes/internal/annotate"
	"facultynotes/internal/docstore"
	"facultynotes/internal/record"
	"facultynotes/internal/report"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	path string
	out  *bytes.Buffer
	logs *observer.ObservedLogs
	run  *Runner
}

func newHarness(t *testing.T, content *string) *harness {
	t.Helper()
	path := filepath.Join(t.TempDir(), "2025_bakalavr_az.json")
	if content != nil {
		require.NoError(t, os.WriteFile(path, []byte(*content), 0o644))
	}
	return newHarnessWithStore(t, path, docstore.New(path, ""))
}

func newHarnessWithStore(t *testing.T, path string, store Store) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	out := &bytes.Buffer{}
	logger := zap.New(core)
	r := New(store, annotate.New(annotate.DefaultOptions(), logger), report.New(out), logger)
	return &harness{path: path, out: out, logs: logs, run: r}
}

func ptr(s string) *string { return &s }

func (h *harness) file(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(h.path)
	require.NoError(t, err)
	return string(data)
}

func TestRunAnnotatesFile(t *testing.T) {
	h := newHarness(t, ptr(`[{"qeyd": " a, b ,, c", "Fakulte adi": "Law"}]`))

	out := h.run.Run(context.Background())

	require.NoError(t, out.Err)
	assert.Equal(t, report.KindNone, out.Kind)
	assert.Equal(t, annotate.Result{Records: 1, Annotated: 1}, out.Result)
	assert.NotEmpty(t, out.RunID)

	want := `[
  {
    "qeyd": " a, b ,, c",
    "Fakulte adi": "Law (a, b, c)"
  }
]`
	if diff := cmp.Diff(want, h.file(t)); diff != "" {
		t.Fatalf("written document mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "File '"+h.path+"' has been updated successfully.\n", h.out.String())
}

func TestRunEmptyNoteLeavesRecord(t *testing.T) {
	h := newHarness(t, ptr(`[{"qeyd": "", "Fakulte adi": "Med"}]`))

	out := h.run.Run(context.Background())

	require.NoError(t, out.Err)
	assert.Equal(t, "[\n  {\n    \"qeyd\": \"\",\n    \"Fakulte adi\": \"Med\"\n  }\n]", h.file(t))
}

func TestRunPreservesOrderAndOtherFields(t *testing.T) {
	h := newHarness(t, ptr(`[
  {"Fakulte kodu": 110101, "Fakulte adi": "Hüquq", "qeyd": "qiyabi ,", "bal": 612.50},
  {"Fakulte kodu": 110102, "Fakulte adi": "Tibb"},
  {"qeyd": "ingilis dili", "Fakulte adi": "Tarix", "extra": {"b": 1, "a": [true, null]}}
]`))

	out := h.run.Run(context.Background())
	require.NoError(t, out.Err)
	assert.Equal(t, annotate.Result{Records: 3, Annotated: 2, Skipped: 1}, out.Result)

	want := `[
  {
    "Fakulte kodu": 110101,
    "Fakulte adi": "Hüquq (qiyabi)",
    "qeyd": "qiyabi ,",
    "bal": 612.50
  },
  {
    "Fakulte kodu": 110102,
    "Fakulte adi": "Tibb"
  },
  {
    "qeyd": "ingilis dili",
    "Fakulte adi": "Tarix (ingilis dili)",
    "extra": {
      "b": 1,
      "a": [
        true,
        null
      ]
    }
  }
]`
	if diff := cmp.Diff(want, h.file(t)); diff != "" {
		t.Fatalf("written document mismatch (-want +got):\n%s", diff)
	}
}

func TestRunTwiceAppendsAgain(t *testing.T) {
	h := newHarness(t, ptr(`[{"qeyd": "a", "Fakulte adi": "Law"}]`))

	require.NoError(t, h.run.Run(context.Background()).Err)
	require.NoError(t, h.run.Run(context.Background()).Err)

	assert.Contains(t, h.file(t), `"Fakulte adi": "Law (a) (a)"`)
}

func TestRunMissingFile(t *testing.T) {
	h := newHarness(t, nil)

	out := h.run.Run(context.Background())

	assert.Equal(t, report.KindNotFound, out.Kind)
	assert.Equal(t, "Error: The file '"+h.path+"' was not found.\n", h.out.String())
	_, err := os.Stat(h.path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunMalformedFile(t *testing.T) {
	h := newHarness(t, ptr("not json"))

	out := h.run.Run(context.Background())

	assert.Equal(t, report.KindMalformed, out.Kind)
	assert.Equal(t, "Error: Could not decode JSON from the file '"+h.path+"'.\n", h.out.String())
	assert.Equal(t, "not json", h.file(t))
}

func TestRunMissingNameFieldWritesNothing(t *testing.T) {
	original := `[{"qeyd": "a", "Fakulte adi": "Law"}, {"qeyd": "b"}]`
	h := newHarness(t, ptr(original))

	out := h.run.Run(context.Background())

	assert.Equal(t, report.KindUnexpected, out.Kind)
	var missing *annotate.MissingFieldError
	assert.ErrorAs(t, out.Err, &missing)
	assert.Equal(t, "An unexpected error occurred: record 1: missing field \"Fakulte adi\"\n", h.out.String())
	assert.Equal(t, original, h.file(t))
}

func TestRunCanceledBeforeWrite(t *testing.T) {
	original := `[{"qeyd": "a", "Fakulte adi": "Law"}]`
	h := newHarness(t, ptr(original))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := h.run.Run(ctx)

	assert.Equal(t, report.KindUnexpected, out.Kind)
	assert.ErrorIs(t, out.Err, context.Canceled)
	assert.Equal(t, original, h.file(t))
}

type fakeStore struct {
	doc     record.Document
	loadErr error
	saveErr error
	panicky bool
	saved   record.Document
}

func (f *fakeStore) InputPath() string  { return "in.json" }
func (f *fakeStore) OutputPath() string { return "out.json" }

func (f *fakeStore) Load() (record.Document, error) {
	if f.panicky {
		panic("decoder exploded")
	}
	return f.doc, f.loadErr
}

func (f *fakeStore) Save(doc record.Document) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = doc
	return nil
}

func TestRunSaveErrorIsUnexpected(t *testing.T) {
	store := &fakeStore{
		doc:     record.Document{record.ObjectOf("qeyd", "a", "Fakulte adi", "Law")},
		saveErr: errors.New("read-only file system"),
	}
	h := newHarnessWithStore(t, "", store)

	out := h.run.Run(context.Background())

	assert.Equal(t, report.KindUnexpected, out.Kind)
	assert.Equal(t, "An unexpected error occurred: read-only file system\n", h.out.String())
}

func TestRunRecoversPanic(t *testing.T) {
	h := newHarnessWithStore(t, "", &fakeStore{panicky: true})

	out := h.run.Run(context.Background())

	assert.Equal(t, report.KindUnexpected, out.Kind)
	assert.EqualError(t, out.Err, "panic: decoder exploded")
}

func TestRunReportsOutputPathOnSuccess(t *testing.T) {
	store := &fakeStore{doc: record.Document{}}
	h := newHarnessWithStore(t, "", store)

	out := h.run.Run(context.Background())

	require.NoError(t, out.Err)
	assert.NotNil(t, store.saved)
	assert.Equal(t, "File 'out.json' has been updated successfully.\n", h.out.String())
}

func TestRunLogsOutcome(t *testing.T) {
	h := newHarness(t, ptr(`[{"qeyd": "a", "Fakulte adi": "Law"}, {"Fakulte adi": "Med"}]`))
	tick := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	h.run.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	out := h.run.Run(context.Background())
	require.NoError(t, out.Err)
	assert.Equal(t, time.Second, out.Elapsed)

	done := h.logs.FilterMessage("run complete").All()
	require.Len(t, done, 1)
	fields := done[0].ContextMap()
	assert.Equal(t, out.RunID, fields["run_id"])
	assert.Equal(t, int64(2), fields["records"])
	assert.Equal(t, int64(1), fields["annotated"])
	assert.Equal(t, int64(1), fields["skipped"])
	assert.Equal(t, "run", done[0].LoggerName)
}

func TestRunLogsFailureKind(t *testing.T) {
	h := newHarness(t, ptr("[1,"))

	h.run.Run(context.Background())

	failed := h.logs.FilterMessage("run failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "malformed", failed[0].ContextMap()["kind"])
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := New(&fakeStore{}, annotate.New(annotate.DefaultOptions(), nil), report.New(&bytes.Buffer{}), nil,
		WithClock(func() time.Time { return fixed }))

	out := r.Run(context.Background())
	assert.Equal(t, time.Duration(0), out.Elapsed)
}
