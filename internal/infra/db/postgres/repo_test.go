package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/reelcheck/reelcheck/internal/domain/analysis"
)

// driver stub yang cuma merekam SQL yang di-prepare; cukup buat
// memastikan repo pakai placeholder $n, bukan gaya mysql.
type recordingDriver struct {
	mu      sync.Mutex
	queries []string
}

func (d *recordingDriver) record(q string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries = append(d.queries, q)
}

func (d *recordingDriver) last() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queries) == 0 {
		return ""
	}
	return d.queries[len(d.queries)-1]
}

func (d *recordingDriver) Open(name string) (driver.Conn, error) {
	return &recordingConn{d: d}, nil
}

type recordingConn struct{ d *recordingDriver }

func (c *recordingConn) Prepare(q string) (driver.Stmt, error) {
	c.d.record(q)
	return recordingStmt{}, nil
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

type recordingStmt struct{}

func (recordingStmt) Close() error  { return nil }
func (recordingStmt) NumInput() int { return -1 }

func (recordingStmt) Exec(args []driver.Value) (driver.Result, error) {
	return driver.RowsAffected(1), nil
}

func (recordingStmt) Query(args []driver.Value) (driver.Rows, error) {
	return emptyRows{}, nil
}

type emptyRows struct{}

func (emptyRows) Columns() []string              { return nil }
func (emptyRows) Close() error                   { return nil }
func (emptyRows) Next(dest []driver.Value) error { return io.EOF }

var recorder = &recordingDriver{}

var registerOnce sync.Once

func openRecordingDB(t *testing.T) *sql.DB {
	t.Helper()
	registerOnce.Do(func() {
		sql.Register("postgres-recorder", recorder)
	})
	db, err := sql.Open("postgres-recorder", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func assertPostgresPlaceholders(t *testing.T, q string) {
	t.Helper()
	assert.Contains(t, q, "$1")
	assert.NotContains(t, q, "?")
}

func TestTurnRepositoryUsesPostgresPlaceholders(t *testing.T) {
	repo := NewTurnRepository(openRecordingDB(t))

	err := repo.Append(context.Background(), &domain.Turn{
		SessionID: "s1", AnalysisID: "a1", Seq: 0,
		Role: domain.TurnUser, Content: "q", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	q := recorder.last()
	assert.Contains(t, q, "INSERT INTO conversation_turns")
	assertPostgresPlaceholders(t, q)

	_, err = repo.List(context.Background(), "s1", "a1")
	require.NoError(t, err)
	assertPostgresPlaceholders(t, recorder.last())

	require.NoError(t, repo.DeleteBySession(context.Background(), "s1"))
	assertPostgresPlaceholders(t, recorder.last())
}

func TestFailureRepositoryUsesPostgresPlaceholders(t *testing.T) {
	repo := NewFailureRepository(openRecordingDB(t))

	err := repo.Save(context.Background(), &domain.Failure{
		SessionID: "s1", AnalysisID: "a1", Stage: "resolving",
		Message: "no audio", PayloadJSON: `{"title":"x"}`,
	})
	require.NoError(t, err)
	q := recorder.last()
	assert.Contains(t, q, "INSERT INTO analysis_failures")
	assertPostgresPlaceholders(t, q)

	_, err = repo.Latest(context.Background(), "s1", 5)
	require.NoError(t, err)
	assertPostgresPlaceholders(t, recorder.last())
}

func TestAnalysisRepositoryUsesPostgresPlaceholders(t *testing.T) {
	repo := NewAnalysisRepository(openRecordingDB(t))

	err := repo.Save(context.Background(), &domain.Analysis{
		ID: "a1", SessionID: "s1", Status: domain.StatusRunning,
	})
	require.NoError(t, err)
	q := recorder.last()
	assert.True(t, strings.Contains(q, "ON CONFLICT (id) DO UPDATE"))
	assertPostgresPlaceholders(t, q)

	require.NoError(t, repo.UpdateStatus(context.Background(), "s1", "a1", domain.StatusReady))
	assertPostgresPlaceholders(t, recorder.last())
}
