package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActor(t *testing.T) {
	_, ok := Actor(context.Background())
	assert.False(t, ok)

	ctx := WithActor(context.Background(), Caller{Subject: "abc", Role: RoleLawyer})
	c, ok := Actor(ctx)
	assert.True(t, ok)
	assert.Equal(t, RoleLawyer, c.Role)
	assert.Equal(t, "abc", c.Subject)
}

func TestNow(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))
	assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Second)
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "req-1", RequestID(WithRequestID(context.Background(), "req-1")))
}
