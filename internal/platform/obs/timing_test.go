package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestWithRequestIDGeneratesID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	if id := RequestID(ctx); len(id) != 36 {
		t.Fatalf("expected a uuid, got %q", id)
	}

	ctx = WithRequestID(context.Background(), "abc")
	if id := RequestID(ctx); id != "abc" {
		t.Fatalf("got %q, want abc", id)
	}
}

func TestTimeLogsOperation(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRequestID(context.Background(), "r1")

	func() (err error) {
		defer Time(ctx, "match.Predict")(&err)
		return errors.New("boom")
	}()

	line := buf.String()
	for _, want := range []string{"req_id=r1", "op=match.Predict", "err=boom"} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}
