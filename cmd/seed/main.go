package main

import (
	"github.com/muhe-mall/internal/config"
	"github.com/muhe-mall/internal/logger"
	"github.com/muhe-mall/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "fresh-produce", Name: "生鲜果蔬", SortOrder: 10},
		{Slug: "snacks", Name: "零食饮料", SortOrder: 20},
		{Slug: "household", Name: "家居日用", SortOrder: 30},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"fresh-produce", "snacks", "household"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品
	products := []models.Product{
		{
			CategoryID:  categoryIDs["fresh-produce"],
			Slug:        "red-fuji-apple",
			Name:        "红富士苹果",
			Description: "脆甜多汁，产地直采",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(12.80)),
			Unit:        "kg",
			Variants:    models.StringArray([]string{"1kg", "2.5kg"}),
			Stock:       200,
			IsActive:    true,
			SortOrder:   10,
		},
		{
			CategoryID:  categoryIDs["fresh-produce"],
			Slug:        "cherry-tomato",
			Name:        "圣女果",
			Description: "新鲜小番茄，酸甜可口",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(9.90)),
			Unit:        "盒",
			Stock:       120,
			IsActive:    true,
			SortOrder:   20,
		},
		{
			CategoryID:  categoryIDs["snacks"],
			Slug:        "sparkling-water",
			Name:        "无糖气泡水",
			Description: "0 糖 0 卡，多种口味",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(4.50)),
			Unit:        "瓶",
			Variants:    models.StringArray([]string{"白桃", "青柠", "原味"}),
			Stock:       500,
			IsActive:    true,
			SortOrder:   10,
		},
		{
			CategoryID:  categoryIDs["household"],
			Slug:        "bamboo-paper-towel",
			Name:        "竹浆纸巾",
			Description: "本色无漂白，整箱装",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(29.90)),
			Unit:        "箱",
			Stock:       80,
			IsActive:    true,
			SortOrder:   10,
		},
	}
	for _, product := range products {
		if product.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category missing", product.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 添加演示用户
	var existingUser models.User
	if err := models.DB.Where("email = ?", "demo@example.com").First(&existingUser).Error; err != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("Demo1234"), bcrypt.DefaultCost)
		if hashErr != nil {
			stdLog.Printf("Failed to hash demo password: %v", hashErr)
		} else {
			user := models.User{
				Email:        "demo@example.com",
				PasswordHash: string(hash),
				DisplayName:  "演示用户",
				Locale:       "zh-CN",
				Status:       "active",
			}
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create demo user: %v", err)
			} else {
				stdLog.Printf("Created demo user: %s", user.Email)
			}
		}
	} else {
		stdLog.Printf("Demo user already exists: demo@example.com")
	}

	stdLog.Printf("Seed finished")
}
