package worker

import (
	"context"
	"testing"

	"github.com/muhe-mall/internal/provider"
	"github.com/muhe-mall/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleWishlistTransferInvalidPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskWishlistTransfer, []byte(`not-json`))
	if err := consumer.handleWishlistTransfer(context.Background(), task); err == nil {
		t.Fatalf("expected error for malformed payload")
	}

	task = asynq.NewTask(queue.TaskWishlistTransfer, []byte(`{"user_id":0,"wishlist_id":0}`))
	if err := consumer.handleWishlistTransfer(context.Background(), task); err != nil {
		t.Fatalf("zero ids should be skipped without error, got %v", err)
	}
}

func TestHandleCartPurgeSkipsWithoutService(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskCartPurge, []byte(`{"ttl_hours":24}`))
	if err := consumer.handleCartPurge(context.Background(), task); err != nil {
		t.Fatalf("missing cart service should be skipped without error, got %v", err)
	}
}
