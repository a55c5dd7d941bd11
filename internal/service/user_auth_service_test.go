package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/muhe-mall/internal/config"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		UserJWT: config.JWTConfig{
			SecretKey:             "test-secret",
			ExpireHours:           1,
			RememberMeExpireHours: 168,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(db)), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, token, _, err := svc.Register("shopper@example.com", "Password1", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected jwt issued on register")
	}
	if user.DisplayName != "shopper" {
		t.Fatalf("expected display name from email, got %q", user.DisplayName)
	}

	if _, _, _, err := svc.Register("shopper@example.com", "Password1", ""); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	logged, token, _, err := svc.Login("Shopper@Example.com", "Password1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatal("expected same user with fresh token")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected claims for user %d, got %d", user.ID, claims.UserID)
	}

	if _, _, _, err := svc.Login("shopper@example.com", "WrongPass1"); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)
	if _, _, _, err := svc.Register("weak@example.com", "short", ""); !errors.Is(err, ErrPasswordWeak) {
		t.Fatalf("expected ErrPasswordWeak, got %v", err)
	}
}

func TestNotificationPrefsShallowMerge(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("prefs@example.com", "Password1", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.UpdateNotificationPrefs(user.ID, map[string]bool{
		"order_updates": true,
		"promotions":    true,
	}); err != nil {
		t.Fatalf("seed prefs failed: %v", err)
	}

	merged, err := svc.UpdateNotificationPrefs(user.ID, map[string]bool{"promotions": false})
	if err != nil {
		t.Fatalf("merge prefs failed: %v", err)
	}

	if got, ok := merged["order_updates"]; !ok || got != true {
		t.Fatalf("expected order_updates untouched, got %v", merged["order_updates"])
	}
	if got, ok := merged["promotions"]; !ok || got != false {
		t.Fatalf("expected promotions overwritten, got %v", merged["promotions"])
	}

	// 落库后再读也保持合并结果
	prefs, err := svc.GetNotificationPrefs(user.ID)
	if err != nil {
		t.Fatalf("get prefs failed: %v", err)
	}
	if prefs["order_updates"] != true || prefs["promotions"] != false {
		t.Fatalf("unexpected persisted prefs: %v", prefs)
	}
}

func TestChangePasswordInvalidatesOldTokens(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("rotate@example.com", "Password1", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	oldVersion := user.TokenVersion

	if err := svc.ChangePassword(user.ID, "Password1", "Password2"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	updated, err := svc.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if updated.TokenVersion != oldVersion+1 {
		t.Fatalf("expected token version bump, got %d", updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatal("expected token invalid before set")
	}

	if err := svc.ChangePassword(user.ID, "Password1", "Password3"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch with stale password, got %v", err)
	}
}
