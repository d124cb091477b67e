package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncrementResourceOperation(t *testing.T) {
	counter := ResourceOperations.WithLabelValues("projects", "delete", "not_found")
	before := testutil.ToFloat64(counter)

	IncrementResourceOperation("projects", "delete", "not_found")
	IncrementResourceOperation("projects", "delete", "not_found")

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordHTTPRequestDuration(t *testing.T) {
	RecordHTTPRequestDuration("GET", "/users", "200", 15*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTPRequestDuration), 1)
}
