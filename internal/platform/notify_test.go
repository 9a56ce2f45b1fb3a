package platform

import (
	"testing"
	"time"
)

func TestTimeoutDefault(t *testing.T) {
	if got := (Notification{}).timeout(); got != DefaultTimeout {
		t.Fatalf("timeout = %v, want %v", got, DefaultTimeout)
	}
	if got := (Notification{Timeout: time.Second}).timeout(); got != time.Second {
		t.Fatalf("timeout = %v", got)
	}
}
