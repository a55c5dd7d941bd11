package cache

import (
	"context"
	"fmt"
	"time"
)

const transferStateTTL = 30 * time.Minute

// TransferState 心愿单转购物车的进度快照
// 由 worker 写入，前端轮询读取
type TransferState struct {
	TransferID string `json:"transfer_id"`
	UserID     uint   `json:"user_id"`
	WishlistID uint   `json:"wishlist_id"`
	Status     string `json:"status"` // pending/running/done/failed
	Total      int    `json:"total"`
	Processed  int    `json:"processed"`
	Success    int    `json:"success"`
	Failed     int    `json:"failed"`
	Skipped    int    `json:"skipped"`
	Error      string `json:"error,omitempty"`
	UpdatedAt  int64  `json:"updated_at"`
}

func transferStateKey(transferID string) string {
	return fmt.Sprintf("wishlist:transfer:%s", transferID)
}

// GetTransferState 获取转移进度快照
func GetTransferState(ctx context.Context, transferID string) (*TransferState, bool, error) {
	if transferID == "" {
		return nil, false, nil
	}
	var state TransferState
	hit, err := GetJSON(ctx, transferStateKey(transferID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetTransferState 写入转移进度快照
func SetTransferState(ctx context.Context, state *TransferState) error {
	if state == nil || state.TransferID == "" {
		return nil
	}
	state.UpdatedAt = time.Now().Unix()
	return SetJSON(ctx, transferStateKey(state.TransferID), state, transferStateTTL)
}
