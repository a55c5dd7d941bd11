package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/muhe-mall/internal/logger"
	"github.com/muhe-mall/internal/provider"
	"github.com/muhe-mall/internal/queue"
	"github.com/muhe-mall/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskWishlistTransfer, c.handleWishlistTransfer)
	mux.HandleFunc(queue.TaskCartPurge, c.handleCartPurge)
}

func (c *Consumer) handleWishlistTransfer(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_wishlist_transfer_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.WishlistTransferPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_wishlist_transfer_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || payload.WishlistID == 0 {
		logger.Debugw("worker_wishlist_transfer_skip_invalid_payload",
			"user_id", payload.UserID,
			"wishlist_id", payload.WishlistID,
		)
		return nil
	}
	if c.WishlistService == nil {
		logger.Warnw("worker_wishlist_transfer_skip_service_nil", "transfer_id", payload.TransferID)
		return nil
	}

	summary, err := c.WishlistService.ExecuteTransfer(ctx, payload.TransferID, payload.UserID, payload.WishlistID, payload.ItemIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWishlistNotFound):
			logger.Debugw("worker_wishlist_transfer_skip_not_found",
				"transfer_id", payload.TransferID,
				"wishlist_id", payload.WishlistID,
			)
			return nil
		default:
			logger.Warnw("worker_wishlist_transfer_failed",
				"transfer_id", payload.TransferID,
				"wishlist_id", payload.WishlistID,
				"error", err,
			)
			return err
		}
	}
	logger.Infow("worker_wishlist_transfer_done",
		"transfer_id", payload.TransferID,
		"wishlist_id", payload.WishlistID,
		"total", summary.Total,
		"success", summary.Success,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)
	return nil
}

func (c *Consumer) handleCartPurge(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_cart_purge_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CartPurgePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cart_purge_unmarshal_failed", "error", err)
		return err
	}
	if c.CartService == nil {
		logger.Warnw("worker_cart_purge_skip_service_nil")
		return nil
	}

	ttlHours := payload.TTLHours
	if ttlHours <= 0 && c.Config != nil {
		ttlHours = c.Config.Cart.GuestTTLHours
	}
	if ttlHours <= 0 {
		logger.Debugw("worker_cart_purge_skip_zero_ttl")
		return nil
	}

	purged, err := c.CartService.PurgeStaleGuestCarts(time.Duration(ttlHours) * time.Hour)
	if err != nil {
		logger.Warnw("worker_cart_purge_failed", "ttl_hours", ttlHours, "error", err)
		return err
	}
	if purged > 0 {
		logger.Infow("worker_cart_purge_done", "ttl_hours", ttlHours, "purged", purged)
	}
	return nil
}
