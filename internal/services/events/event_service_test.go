package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
)

func TestPublish_DeliversToSubscribers(t *testing.T) {
	svc := NewService(common.GetLogger())

	var mu sync.Mutex
	var received []interfaces.Event
	done := make(chan struct{}, 2)

	handler := func(ctx context.Context, event interfaces.Event) error {
		mu.Lock()
		received = append(received, event)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	require.NoError(t, svc.Subscribe(interfaces.EventPipelineStage, handler))
	require.NoError(t, svc.Subscribe(interfaces.EventPipelineStage, handler))

	err := svc.Publish(context.Background(), interfaces.Event{
		Type:    interfaces.EventPipelineStage,
		Payload: map[string]interface{}{"stage": "plan_generation"},
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("handler was not invoked")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 2, "every subscriber sees the event")
	assert.Equal(t, "plan_generation", received[0].Payload["stage"])
}

func TestPublish_NoSubscribers(t *testing.T) {
	svc := NewService(common.GetLogger())
	err := svc.Publish(context.Background(), interfaces.Event{Type: interfaces.EventSamplePersisted})
	assert.NoError(t, err)
}

func TestPublish_IgnoresUnrelatedEventTypes(t *testing.T) {
	svc := NewService(common.GetLogger())

	called := make(chan struct{}, 1)
	require.NoError(t, svc.Subscribe(interfaces.EventTrainingStatus, func(ctx context.Context, event interfaces.Event) error {
		called <- struct{}{}
		return nil
	}))

	require.NoError(t, svc.Publish(context.Background(), interfaces.Event{Type: interfaces.EventPipelineStage}))

	select {
	case <-called:
		t.Fatal("handler received an event type it never subscribed to")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublish_HandlerErrorsDoNotPropagate(t *testing.T) {
	svc := NewService(common.GetLogger())

	done := make(chan struct{}, 1)
	require.NoError(t, svc.Subscribe(interfaces.EventSamplePersisted, func(ctx context.Context, event interfaces.Event) error {
		done <- struct{}{}
		return errors.New("handler blew up")
	}))

	err := svc.Publish(context.Background(), interfaces.Event{Type: interfaces.EventSamplePersisted})
	assert.NoError(t, err, "publisher never sees handler failures")
	<-done
}

func TestSubscribe_RejectsNilHandler(t *testing.T) {
	svc := NewService(common.GetLogger())
	assert.Error(t, svc.Subscribe(interfaces.EventPipelineStage, nil))
}
