package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersMetrics(t *testing.T) {
	m := New()

	if m.AccountsCreated == nil || m.AccountOperations == nil || m.StoreSaves == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.RecordSave(time.Millisecond, nil)

	metricFamilies, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestNewUsesPrivateRegistry(t *testing.T) {
	// Two instances must not collide on registration.
	require.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}

func TestRecordOperation(t *testing.T) {
	m := New()

	m.RecordOperation("create_account", nil)
	m.RecordOperation("create_account", errors.New("taken"))
	m.RecordOperation("deposit", nil)
	m.RecordOperation("deposit", nil)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.AccountsCreated), "operations alone do not count accounts")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccountOperations.WithLabelValues("create_account", "failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AccountOperations.WithLabelValues("deposit", "success")))
}

func TestRecordAccountCreated(t *testing.T) {
	m := New()

	m.RecordAccountCreated()
	m.RecordAccountCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AccountsCreated))
}

func TestRecordAuthAttempt(t *testing.T) {
	m := New()

	m.RecordAuthAttempt(nil)
	m.RecordAuthAttempt(errors.New("invalid credentials"))
	m.RecordAuthAttempt(errors.New("invalid credentials"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("failure")))
}

func TestWriteToFile(t *testing.T) {
	m := New()
	m.RecordSave(5*time.Millisecond, errors.New("disk full"))

	path := filepath.Join(t.TempDir(), "gobank.prom")
	require.NoError(t, m.WriteToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `gobank_store_saves_total{status="failure"} 1`), string(data))
	assert.Contains(t, string(data), "gobank_store_save_duration_seconds_count 1")
}
