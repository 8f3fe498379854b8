package tele

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/keyprint/log2"
)

func TestDisabledIsNoop(t *testing.T) {
	t.Parallel()

	tl := New()
	require.NoError(t, tl.Init(log2.NewTest(t, log2.LDebug), Config{Enable: false}))
	// must not panic without a client
	tl.Flush("14", nil)
	tl.Error(fmt.Errorf("x"))
	tl.Close()
}

func TestEnableRequiresBroker(t *testing.T) {
	t.Parallel()

	tl := New()
	err := tl.Init(log2.NewTest(t, log2.LDebug), Config{Enable: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker")
}

func TestTopics(t *testing.T) {
	t.Parallel()

	tl := New()
	tl.setTopics("kp1")
	assert.Equal(t, "kp1/c", tl.topicConnect)
	assert.Equal(t, "kp1/w/print", tl.topicFlush)
	assert.Equal(t, "kp1/w/error", tl.topicError)
}
