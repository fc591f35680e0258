package command

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSendRepliesFreshThenEdits(t *testing.T) {
	ic := NewBatchInteraction("u1", "test", MapOptions{})

	Send(ic, &Response{Content: "first"}, false)
	require.True(t, ic.Replied())

	Send(ic, &Response{Content: "second"}, false)
	require.Len(t, ic.Outputs, 2)
	require.Equal(t, "second", ic.Last().Content)
}

func TestSendEditsAfterDefer(t *testing.T) {
	ic := NewBatchInteraction("u1", "test", MapOptions{})

	Defer(ic, false)
	require.True(t, ic.Deferred())

	// A second Defer must be a no-op.
	Defer(ic, false)

	Send(ic, &Response{Content: "done"}, false)
	require.Len(t, ic.Outputs, 1)
	require.False(t, ic.Failed())
}

func TestSendErrorMarksFailure(t *testing.T) {
	ic := NewBatchInteraction("u1", "test", MapOptions{})

	SendError(ic, "upstream unavailable")

	last := ic.Last()
	require.NotNil(t, last)
	require.True(t, last.IsError)
	require.Contains(t, last.Content, "❌")
	require.Contains(t, last.Content, "upstream unavailable")
	require.True(t, ic.Failed())
}

func TestBatchFailedWithoutResponse(t *testing.T) {
	ic := NewBatchInteraction("u1", "test", MapOptions{})
	require.True(t, ic.Failed(), "no response at all counts as failure")
}

func TestBatchCleanupIsPerRun(t *testing.T) {
	mkdir := func(name string) string {
		dir := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "out.gif"), []byte("x"), 0o644))
		return dir
	}

	a := NewBatchInteraction("u1", "gif", MapOptions{})
	b := NewBatchInteraction("u2", "gif", MapOptions{})
	dirA := mkdir("run-a")
	dirB := mkdir("run-b")
	a.DeferCleanup(dirA)
	b.DeferCleanup(dirB)

	// One run finishing must not touch the other's scratch space.
	b.RunCleanup()
	_, err := os.Stat(filepath.Join(dirA, "out.gif"))
	require.NoError(t, err)
	_, err = os.Stat(dirB)
	require.True(t, os.IsNotExist(err))

	a.RunCleanup()
	_, err = os.Stat(dirA)
	require.True(t, os.IsNotExist(err))

	// A second call with nothing parked is a no-op.
	a.RunCleanup()
}

func TestBaseCooldownDefault(t *testing.T) {
	b := &Base{CommandName: "x"}
	require.Equal(t, 2*time.Second, b.Cooldown())

	b.WithCooldown(5 * time.Second)
	require.Equal(t, 5*time.Second, b.Cooldown())
}

func TestPendingRenameExpiry(t *testing.T) {
	now := time.Now()
	p := &PendingRename{Created: now}

	require.False(t, p.Expired(now.Add(RenameSessionTTL-time.Second)))
	require.True(t, p.Expired(now.Add(RenameSessionTTL+time.Second)))
}
