package taxcalc

import (
	"context"
	"testing"
	"time"

	"taxprep-backend/internal/taxpayers"
)

func TestDispatchDeliversResult(t *testing.T) {
	ch := Dispatch(context.Background(), Input{
		FilingStatus: taxpayers.FilingSingle,
		Wages:        dec("60000"),
	})
	select {
	case out := <-ch:
		if out.Err != nil {
			t.Fatalf("Dispatch: %v", out.Err)
		}
		if !out.Result.EstimatedTax.Equal(dec("5161.50")) {
			t.Fatalf("estimated tax = %s, want 5161.50", out.Result.EstimatedTax)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for estimate")
	}
}

func TestDispatchDeliversError(t *testing.T) {
	out := <-Dispatch(context.Background(), Input{Wages: dec("-10")})
	if out.Err == nil {
		t.Fatal("expected error for negative wages")
	}
}

func TestDispatchHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := <-Dispatch(ctx, Input{Wages: dec("60000")})
	if out.Err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
