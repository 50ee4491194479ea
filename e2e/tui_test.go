//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTUINavigateAndClick(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("--backend", "dryrun", "--oneshot"))
	require.True(t, tf.SeePlain("level 1/2"), "should show the first level")
	require.True(t, tf.SeePlain("esc cancel"), "should show the footer")

	require.NoError(t, tf.Press("f"))
	require.True(t, tf.SeePlain("level 2/2"), "should narrow to the second level")
	require.True(t, tf.SeePlain("(480,270 480x270)"), "should show the breadcrumb")

	require.NoError(t, tf.Press("f"))
	require.True(t, tf.SeePlain("(660,370)"), "should resolve the point")

	require.NoError(t, tf.Press(KeySpace))
	require.NoError(t, tf.WaitExit(3*time.Second), "oneshot should quit after the click")
}

func TestTUICancelAndBack(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("--backend", "dryrun"))
	require.True(t, tf.SeePlain("level 1/2"))

	require.NoError(t, tf.Press("a", "a"))
	require.True(t, tf.SeePlain("(60,33)"))

	require.NoError(t, tf.Press(KeyBackspace))
	require.True(t, tf.SeePlain("level 2/2"), "back from cell mode returns to the last level")

	require.NoError(t, tf.Press(KeyEsc))
	// esc on its own needs a moment before the terminal reports it
	require.True(t, tf.OutputContainsPlain("level 1/2", 5*time.Second))

	require.NoError(t, tf.SendCtrlC())
	require.NoError(t, tf.WaitExit(3*time.Second))
}

func TestTUIUnmappedKeyKeepsLevel(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("--backend", "dryrun"))
	require.True(t, tf.SeePlain("level 1/2"))

	require.NoError(t, tf.Press("z", "1", "f"))
	require.True(t, tf.SeePlain("level 2/2"))

	require.NoError(t, tf.SendCtrlC())
	require.NoError(t, tf.WaitExit(3*time.Second))
}
