package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_StopClearsLine(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "Contacting planning server...")
	time.Sleep(200 * time.Millisecond)
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, out, "Contacting planning server...")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"), "line is cleared on stop")
}
