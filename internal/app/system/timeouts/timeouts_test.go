package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestSet(t *testing.T) {
	t.Cleanup(func() { Set(Defaults) })

	Set(Config{Short: 7 * time.Second})

	want := Config{Ping: Defaults.Ping, Short: 7 * time.Second, Medium: Defaults.Medium}
	if got := Get(); got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if Short() != 7*time.Second {
		t.Errorf("Short() = %v, want 7s", Short())
	}

	Set(Defaults)
	if Short() != Defaults.Short {
		t.Errorf("Short() after restoring defaults = %v, want %v", Short(), Defaults.Short)
	}
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	<-ctx.Done()
	cancel()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
	}
}
