package service

import (
	"context"
	"strings"

	"github.com/muhe-mall/internal/cache"
	"github.com/muhe-mall/internal/constants"
	"github.com/muhe-mall/internal/logger"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/queue"
	"github.com/muhe-mall/internal/repository"

	"github.com/google/uuid"
)

// TransferProgress 单条转移进度事件
// 节奏由消费方决定，业务流程本身不做延时
type TransferProgress struct {
	Index   int                 `json:"index"`
	Total   int                 `json:"total"`
	Item    models.WishlistItem `json:"item"`
	Success bool                `json:"success"`
	Err     error               `json:"-"`
}

// TransferSummary 转移结果汇总
// Total 为实际尝试加购的条目数，售罄条目计入 Skipped 且不参与加购
type TransferSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// CreateWishlistInput 创建心愿单输入
type CreateWishlistInput struct {
	Name        string
	Description string
	Icon        string
}

// AddWishlistItemInput 添加心愿单条目输入
type AddWishlistItemInput struct {
	ProductID uint
	Variant   string
	Quantity  int
}

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	cartService  *CartService
	queueClient  *queue.Client
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	cartService *CartService,
	queueClient *queue.Client,
) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		cartService:  cartService,
		queueClient:  queueClient,
	}
}

// ListByUser 获取用户心愿单列表（含条目）
// 读取失败时降级为空列表，仅记录日志
func (s *WishlistService) ListByUser(userID uint) []models.Wishlist {
	if userID == 0 {
		return []models.Wishlist{}
	}
	wishlists, err := s.wishlistRepo.ListByUser(userID)
	if err != nil {
		logger.Warnw("wishlist_list_failed", "user_id", userID, "error", err)
		return []models.Wishlist{}
	}
	for i := range wishlists {
		items, err := s.wishlistRepo.ListItems(wishlists[i].ID)
		if err != nil {
			logger.Warnw("wishlist_items_list_failed", "wishlist_id", wishlists[i].ID, "error", err)
			items = []models.WishlistItem{}
		}
		wishlists[i].Items = items
	}
	return wishlists
}

// Get 获取单个心愿单（含条目）
func (s *WishlistService) Get(userID, wishlistID uint) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetByIDForUser(wishlistID, userID)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return nil, ErrWishlistNotFound
	}
	items, err := s.wishlistRepo.ListItems(wishlist.ID)
	if err != nil {
		return nil, err
	}
	wishlist.Items = items
	return wishlist, nil
}

// Create 创建心愿单
func (s *WishlistService) Create(userID uint, input CreateWishlistInput) (*models.Wishlist, error) {
	name := strings.TrimSpace(input.Name)
	if userID == 0 || name == "" {
		return nil, ErrInvalidInput
	}
	wishlist := &models.Wishlist{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Icon:        strings.TrimSpace(input.Icon),
	}
	if err := s.wishlistRepo.Create(wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

// Update 更新心愿单基本信息
func (s *WishlistService) Update(userID, wishlistID uint, input CreateWishlistInput) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetByIDForUser(wishlistID, userID)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return nil, ErrWishlistNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		wishlist.Name = name
	}
	wishlist.Description = strings.TrimSpace(input.Description)
	wishlist.Icon = strings.TrimSpace(input.Icon)
	if err := s.wishlistRepo.Update(wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

// Delete 删除心愿单及全部条目
func (s *WishlistService) Delete(userID, wishlistID uint) error {
	wishlist, err := s.wishlistRepo.GetByIDForUser(wishlistID, userID)
	if err != nil {
		return err
	}
	if wishlist == nil {
		return ErrWishlistNotFound
	}
	return s.wishlistRepo.Delete(wishlist.ID)
}

// AddItem 添加条目，同一 (商品, 规格) 已存在时累加数量
func (s *WishlistService) AddItem(userID, wishlistID uint, input AddWishlistItemInput) (*models.WishlistItem, error) {
	if input.ProductID == 0 {
		return nil, ErrInvalidInput
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	wishlist, err := s.wishlistRepo.GetByIDForUser(wishlistID, userID)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return nil, ErrWishlistNotFound
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}

	variant := strings.TrimSpace(input.Variant)
	existing, err := s.wishlistRepo.FindItem(wishlist.ID, product.ID, variant)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += quantity
		if err := s.wishlistRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	item := &models.WishlistItem{
		WishlistID: wishlist.ID,
		ProductID:  product.ID,
		Variant:    variant,
		Name:       product.Name,
		Price:      product.Price,
		Image:      image,
		Quantity:   quantity,
		Unit:       product.Unit,
	}
	if err := s.wishlistRepo.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem 删除条目
func (s *WishlistService) RemoveItem(userID, wishlistID, itemID uint) error {
	wishlist, err := s.wishlistRepo.GetByIDForUser(wishlistID, userID)
	if err != nil {
		return err
	}
	if wishlist == nil {
		return ErrWishlistNotFound
	}
	return s.wishlistRepo.DeleteItem(itemID)
}

// TransferToCart 把心愿单条目逐条转入购物车
// 售罄条目在转移前过滤掉，绝不参与加购
// 逐条顺序执行，单条失败不中断后续，整体不回滚
func (s *WishlistService) TransferToCart(userID, wishlistID uint, itemIDs []uint, onProgress func(TransferProgress)) (TransferSummary, error) {
	summary := TransferSummary{}
	wishlist, err := s.wishlistRepo.GetByIDForUser(wishlistID, userID)
	if err != nil {
		return summary, err
	}
	if wishlist == nil {
		return summary, ErrWishlistNotFound
	}

	var items []models.WishlistItem
	if len(itemIDs) > 0 {
		items, err = s.wishlistRepo.ListItemsByIDs(wishlist.ID, itemIDs)
	} else {
		items, err = s.wishlistRepo.ListItems(wishlist.ID)
	}
	if err != nil {
		return summary, err
	}

	eligible := make([]models.WishlistItem, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				logger.Warnw("transfer_product_load_failed", "product_id", item.ProductID, "error", err)
				summary.Skipped++
				continue
			}
			product = p
		}
		if product == nil || !product.IsActive || product.OutOfStock() {
			summary.Skipped++
			continue
		}
		eligible = append(eligible, item)
	}

	summary.Total = len(eligible)
	ref := CartRef{UserID: userID}
	for i, item := range eligible {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		_, err := s.cartService.AddItem(ref, AddCartItemInput{
			ProductID: item.ProductID,
			Variant:   item.Variant,
			Quantity:  quantity,
		})
		if err != nil {
			summary.Failed++
			logger.Warnw("transfer_item_failed", "wishlist_id", wishlist.ID, "item_id", item.ID, "error", err)
		} else {
			summary.Success++
		}
		if onProgress != nil {
			onProgress(TransferProgress{
				Index:   i + 1,
				Total:   summary.Total,
				Item:    item,
				Success: err == nil,
				Err:     err,
			})
		}
	}
	return summary, nil
}

// StartTransfer 发起转移
// 队列可用时异步执行并返回进度查询 ID，否则同步执行直接返回汇总
func (s *WishlistService) StartTransfer(ctx context.Context, userID, wishlistID uint, itemIDs []uint) (string, *TransferSummary, error) {
	wishlist, err := s.wishlistRepo.GetByIDForUser(wishlistID, userID)
	if err != nil {
		return "", nil, err
	}
	if wishlist == nil {
		return "", nil, ErrWishlistNotFound
	}

	transferID := uuid.NewString()
	if s.queueClient.Enabled() && cache.Enabled() {
		state := &cache.TransferState{
			TransferID: transferID,
			UserID:     userID,
			WishlistID: wishlist.ID,
			Status:     constants.TransferStatusPending,
		}
		if err := cache.SetTransferState(ctx, state); err != nil {
			return "", nil, err
		}
		err := s.queueClient.EnqueueWishlistTransfer(queue.WishlistTransferPayload{
			TransferID: transferID,
			UserID:     userID,
			WishlistID: wishlist.ID,
			ItemIDs:    itemIDs,
		})
		if err == nil {
			return transferID, nil, nil
		}
		logger.Warnw("transfer_enqueue_failed", "transfer_id", transferID, "error", err)
	}

	summary, err := s.ExecuteTransfer(ctx, transferID, userID, wishlist.ID, itemIDs)
	if err != nil {
		return "", nil, err
	}
	return transferID, &summary, nil
}

// ExecuteTransfer 执行转移并把进度快照写入缓存
// worker 与同步回退路径共用
func (s *WishlistService) ExecuteTransfer(ctx context.Context, transferID string, userID, wishlistID uint, itemIDs []uint) (TransferSummary, error) {
	state := &cache.TransferState{
		TransferID: transferID,
		UserID:     userID,
		WishlistID: wishlistID,
		Status:     constants.TransferStatusRunning,
	}
	s.persistTransferState(ctx, state)

	summary, err := s.TransferToCart(userID, wishlistID, itemIDs, func(p TransferProgress) {
		state.Total = p.Total
		state.Processed = p.Index
		if p.Success {
			state.Success++
		} else {
			state.Failed++
		}
		s.persistTransferState(ctx, state)
	})
	if err != nil {
		state.Status = constants.TransferStatusFailed
		state.Error = err.Error()
		s.persistTransferState(ctx, state)
		return summary, err
	}

	state.Status = constants.TransferStatusDone
	state.Total = summary.Total
	state.Processed = summary.Total
	state.Success = summary.Success
	state.Failed = summary.Failed
	state.Skipped = summary.Skipped
	s.persistTransferState(ctx, state)
	return summary, nil
}

// GetTransferState 查询转移进度
func (s *WishlistService) GetTransferState(ctx context.Context, userID uint, transferID string) (*cache.TransferState, error) {
	state, hit, err := cache.GetTransferState(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !hit || state.UserID != userID {
		return nil, ErrTransferNotFound
	}
	return state, nil
}

func (s *WishlistService) persistTransferState(ctx context.Context, state *cache.TransferState) {
	if err := cache.SetTransferState(ctx, state); err != nil {
		logger.Warnw("transfer_state_persist_failed", "transfer_id", state.TransferID, "error", err)
	}
}
