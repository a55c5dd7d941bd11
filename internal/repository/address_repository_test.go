package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/muhe-mall/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAddressRepositoryTest(t *testing.T) (*GormAddressRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:address_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Address{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewAddressRepository(db), db
}

func createTestAddress(t *testing.T, repo *GormAddressRepository, userID uint, name string, isDefault bool, createdAt time.Time) models.Address {
	t.Helper()
	address := models.Address{
		UserID:    userID,
		Name:      name,
		Recipient: "收件人",
		Phone:     "13800000000",
		Address:   "某街道 1 号",
		City:      "上海",
		Country:   "CN",
		IsDefault: isDefault,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := repo.Create(&address); err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	return address
}

func countDefaults(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Address{}).Where("user_id = ? AND is_default = ?", userID, true).Count(&count).Error; err != nil {
		t.Fatalf("count defaults failed: %v", err)
	}
	return count
}

func TestAddressRepositorySetDefaultKeepsSingleDefault(t *testing.T) {
	repo, db := setupAddressRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	home := createTestAddress(t, repo, 1, "家", true, now.Add(-2*time.Hour))
	office := createTestAddress(t, repo, 1, "公司", false, now.Add(-time.Hour))

	if err := repo.SetDefault(1, office.ID); err != nil {
		t.Fatalf("set default failed: %v", err)
	}

	if got := countDefaults(t, db, 1); got != 1 {
		t.Fatalf("expected exactly one default, got %d", got)
	}

	updated, err := repo.GetByIDForUser(office.ID, 1)
	if err != nil {
		t.Fatalf("get address failed: %v", err)
	}
	if updated == nil || !updated.IsDefault {
		t.Fatal("expected office to be the default")
	}

	previous, err := repo.GetByIDForUser(home.ID, 1)
	if err != nil {
		t.Fatalf("get address failed: %v", err)
	}
	if previous == nil || previous.IsDefault {
		t.Fatal("expected home default flag cleared")
	}
}

func TestAddressRepositorySetDefaultRejectsForeignAddress(t *testing.T) {
	repo, db := setupAddressRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	mine := createTestAddress(t, repo, 1, "家", true, now)
	other := createTestAddress(t, repo, 2, "别人的", true, now)

	if err := repo.SetDefault(1, other.ID); err == nil {
		t.Fatal("expected error when setting another user's address as default")
	}

	// 失败的设置不应影响现有默认
	if got := countDefaults(t, db, 1); got != 1 {
		t.Fatalf("expected one default for user 1, got %d", got)
	}
	current, err := repo.GetByIDForUser(mine.ID, 1)
	if err != nil || current == nil || !current.IsDefault {
		t.Fatalf("expected user 1 default unchanged, err %v", err)
	}
}

func TestAddressRepositoryDeleteDefaultPromotesMostRecent(t *testing.T) {
	repo, db := setupAddressRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	oldest := createTestAddress(t, repo, 1, "老家", false, now.Add(-3*time.Hour))
	recent := createTestAddress(t, repo, 1, "新家", false, now.Add(-time.Hour))
	current := createTestAddress(t, repo, 1, "当前默认", true, now.Add(-2*time.Hour))

	if err := repo.Delete(1, current.ID); err != nil {
		t.Fatalf("delete default failed: %v", err)
	}

	if got := countDefaults(t, db, 1); got != 1 {
		t.Fatalf("expected one default after promotion, got %d", got)
	}

	promoted, err := repo.GetDefault(1)
	if err != nil {
		t.Fatalf("get default failed: %v", err)
	}
	if promoted == nil || promoted.ID != recent.ID {
		t.Fatalf("expected most recent address promoted, got %+v", promoted)
	}

	remaining, err := repo.GetByIDForUser(oldest.ID, 1)
	if err != nil || remaining == nil || remaining.IsDefault {
		t.Fatalf("expected oldest address untouched, err %v", err)
	}
}

func TestAddressRepositoryDeleteNonDefaultKeepsDefault(t *testing.T) {
	repo, db := setupAddressRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	def := createTestAddress(t, repo, 1, "家", true, now.Add(-2*time.Hour))
	extra := createTestAddress(t, repo, 1, "公司", false, now.Add(-time.Hour))

	if err := repo.Delete(1, extra.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if got := countDefaults(t, db, 1); got != 1 {
		t.Fatalf("expected default preserved, got %d defaults", got)
	}
	current, err := repo.GetDefault(1)
	if err != nil || current == nil || current.ID != def.ID {
		t.Fatalf("expected original default preserved, err %v", err)
	}
}

func TestAddressRepositoryGetDefaultFallsBackToLatest(t *testing.T) {
	repo, _ := setupAddressRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	createTestAddress(t, repo, 1, "旧地址", false, now.Add(-2*time.Hour))
	latest := createTestAddress(t, repo, 1, "新地址", false, now.Add(-time.Hour))

	got, err := repo.GetDefault(1)
	if err != nil {
		t.Fatalf("get default failed: %v", err)
	}
	if got == nil || got.ID != latest.ID {
		t.Fatalf("expected latest address as fallback, got %+v", got)
	}
}
