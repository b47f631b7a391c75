package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogsRunID(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ctx, id := WithRunID(context.Background())
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, RunID(ctx))

	var opErr error
	Time(ctx, "ok")(&opErr)

	opErr = errors.New("boom")
	Time(ctx, "failing")(&opErr)

	out := buf.String()
	assert.Contains(t, out, "run_id="+id+" op=ok")
	assert.Contains(t, out, "op=failing")
	assert.Contains(t, out, "err=boom")
}

func TestRunIDMissing(t *testing.T) {
	assert.Empty(t, RunID(context.Background()))
}
