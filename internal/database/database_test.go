package database

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"proconnect/internal/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestQueryOperation(t *testing.T) {
	tests := []struct {
		sql      string
		expected string
	}{
		{`SELECT * FROM "users" WHERE id = 1`, "select"},
		{`INSERT INTO "posts" ("body") VALUES ($1)`, "insert"},
		{`UPDATE "connection_requests" SET "status"=$1`, "update"},
		{`DELETE FROM "likes" WHERE post_id = $1`, "delete"},
		{`BEGIN`, "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, queryOperation(tt.sql), tt.sql)
	}
}

func TestQueryTable(t *testing.T) {
	tests := []struct {
		sql      string
		expected string
	}{
		{`SELECT * FROM "users" WHERE id = 1`, "users"},
		{`SELECT count(*) FROM "posts"`, "posts"},
		{`INSERT INTO "comments" ("body") VALUES ($1)`, "comments"},
		{`UPDATE "connection_requests" SET "status"=$1 WHERE id = $2`, "connection_requests"},
		{`DELETE FROM "likes" WHERE post_id = $1`, "likes"},
		{`BEGIN`, "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, queryTable(tt.sql), tt.sql)
	}
}

func TestTraceRecordsQueryLatency(t *testing.T) {
	gormLogger := &CustomGormLogger{
		logger: slog.Default(),
		Config: logger.Config{LogLevel: logger.Silent},
	}

	// A table name no other test touches, so the histogram child is fresh.
	before := testutil.CollectAndCount(observability.DatabaseQueryLatency)
	gormLogger.Trace(context.Background(), time.Now(), func() (string, int64) {
		return `SELECT * FROM "trace_latency_sample_rows" WHERE id = 1`, 1
	}, nil)
	after := testutil.CollectAndCount(observability.DatabaseQueryLatency)

	assert.Greater(t, after, before, "expected a new latency series even at silent log level")
}
