package queue

import (
	"encoding/json"

	"github.com/muhe-mall/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskWishlistTransfer 心愿单批量转购物车任务
	TaskWishlistTransfer = constants.TaskWishlistTransfer
	// TaskCartPurge 过期游客购物车清理任务
	TaskCartPurge = constants.TaskCartPurge
)

// WishlistTransferPayload 心愿单转购物车任务载荷
type WishlistTransferPayload struct {
	TransferID string `json:"transfer_id"`
	UserID     uint   `json:"user_id"`
	WishlistID uint   `json:"wishlist_id"`
	CartID     uint   `json:"cart_id"`
	ItemIDs    []uint `json:"item_ids,omitempty"` // 为空表示整单转移
}

// CartPurgePayload 过期游客购物车清理任务载荷
type CartPurgePayload struct {
	TTLHours int `json:"ttl_hours"`
}

// NewWishlistTransferTask 创建心愿单转购物车任务
func NewWishlistTransferTask(payload WishlistTransferPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWishlistTransfer, body), nil
}

// NewCartPurgeTask 创建过期游客购物车清理任务
func NewCartPurgeTask(payload CartPurgePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartPurge, body), nil
}
