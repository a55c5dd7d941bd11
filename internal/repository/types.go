package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	CategorySlug string
	Search       string
	OnlyActive   bool
	InStockOnly  bool
	WithCategory bool
	OrderBy      string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	Page     int
	PageSize int
	Search   string
}
