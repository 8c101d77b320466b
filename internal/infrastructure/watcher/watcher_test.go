package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	root := filepath.Join("srv", "records")
	table := filepath.Join("srv", "sessions.csv")
	trigger := NewFileTrigger(root, "ent_all_results.json", table, 0, nil)

	cases := []struct {
		path string
		kind pathKind
		ok   bool
	}{
		{table, kindTable, true},
		{filepath.Join(root, "2025"), kindYear, true},
		{filepath.Join(root, "2025", "03"), kindMonth, true},
		{filepath.Join(root, "2025", "03", "ent_all_results.json"), kindRecords, true},
		{filepath.Join(root, "2025", "03", "notes.txt"), 0, false},
		{filepath.Join(root, "2025", "3"), 0, false},
		{filepath.Join(root, "data", "journal_club.json"), 0, false},
		{filepath.Join("srv", "sessions.csv.lock"), 0, false},
		{root, 0, false},
	}

	for _, tc := range cases {
		kind, ok := trigger.classify(tc.path)
		assert.Equal(t, tc.ok, ok, tc.path)
		if tc.ok {
			assert.Equal(t, tc.kind, kind, tc.path)
		}
	}
}

func TestFileTriggerFiresOnChange(t *testing.T) {
	root := t.TempDir()
	monthDir := filepath.Join(root, "2025", "01")
	require.NoError(t, os.MkdirAll(monthDir, 0o755))
	table := filepath.Join(root, "sessions.csv")
	require.NoError(t, os.WriteFile(table, []byte("pmid\n"), 0o644))

	fired := make(chan time.Time, 16)
	trigger := NewFileTrigger(root, "ent_all_results.json", table, 20*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, trigger.Start(ctx, func(at time.Time) { fired <- at }))
	defer func() { require.NoError(t, trigger.Stop(context.Background())) }()

	waitFire(t, fired)

	require.NoError(t, os.WriteFile(filepath.Join(monthDir, "ent_all_results.json"), []byte("[]"), 0o644))
	waitFire(t, fired)

	require.NoError(t, os.WriteFile(table, []byte("pmid\n1\n"), 0o644))
	waitFire(t, fired)
}

func TestFileTriggerStartTwice(t *testing.T) {
	root := t.TempDir()
	trigger := NewFileTrigger(root, "ent_all_results.json", filepath.Join(root, "sessions.csv"), 0, nil)

	require.NoError(t, trigger.Start(context.Background(), func(time.Time) {}))
	defer func() { require.NoError(t, trigger.Stop(context.Background())) }()

	require.ErrorIs(t, trigger.Start(context.Background(), func(time.Time) {}), ErrAlreadyStarted)
}

func TestStopWithoutStart(t *testing.T) {
	t.Parallel()

	trigger := NewFileTrigger(t.TempDir(), "", "sessions.csv", 0, nil)
	require.NoError(t, trigger.Stop(context.Background()))
}

func waitFire(t *testing.T, fired <-chan time.Time) {
	t.Helper()

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("trigger did not fire")
	}
}
