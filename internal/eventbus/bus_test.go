package eventbus

import (
	"errors"
	"testing"
	"time"
)

func TestSendAndReceive(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	if err := eb.SendToCore(SubmitCommandEvent{Command: "list"}); err != nil {
		t.Fatal(err)
	}
	ev := <-eb.UIToCore()
	if e, ok := ev.(SubmitCommandEvent); !ok || e.Command != "list" {
		t.Errorf("received %#v", ev)
	}

	if err := eb.SendToUI(ConfirmationRequestEvent{ID: "1", Prompt: "Sure?"}); err != nil {
		t.Fatal(err)
	}
	if e, ok := (<-eb.CoreToUI()).(ConfirmationRequestEvent); !ok || e.Prompt != "Sure?" {
		t.Errorf("received %#v", e)
	}
}

func TestFullChannelOpensBreaker(t *testing.T) {
	eb := NewEventBusWithSize(1)
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	if err := eb.SendToUI(StatsStatusEvent{}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := eb.SendToUI(StatsStatusEvent{}); !errors.Is(err, ErrChannelFull) {
			t.Fatalf("send %d: err = %v, want ErrChannelFull", i, err)
		}
	}
	if eb.GetCircuitBreakerState() != CircuitOpen {
		t.Fatalf("state = %v, want open", eb.GetCircuitBreakerState())
	}
	if err := eb.SendToCore(StatsRetryEvent{}); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("err = %v, want ErrCircuitOpen", err)
	}
	if len(reported) != 6 || reported[0].Operation != "SendToUI" {
		t.Errorf("reported = %v", reported)
	}
}

func TestBreakerHalfOpensAfterTimeout(t *testing.T) {
	now := time.Unix(0, 0)
	cb := NewCircuitBreaker(1, time.Minute)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	if !cb.IsOpen() {
		t.Fatal("breaker not open after failure")
	}

	now = now.Add(2 * time.Minute)
	if cb.IsOpen() {
		t.Error("breaker still open after timeout")
	}
	if cb.State() != CircuitHalfOpen {
		t.Errorf("state = %v, want half-open", cb.State())
	}

	cb.RecordSuccess()
	if cb.State() != CircuitClosed {
		t.Errorf("state = %v, want closed", cb.State())
	}
}

func TestSendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	if err := eb.SendToCore(StatsRetryEvent{}); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
	if err := eb.SendToUI(StatsStatusEvent{}); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}
