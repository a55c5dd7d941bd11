package service

import (
	"strings"
	"time"

	"github.com/muhe-mall/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码服务
// 登录场景按配置开关决定是否需要验证码
type CaptchaService struct {
	cfg   config.CaptchaConfig
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	maxStore := cfg.MaxStore
	if maxStore <= 0 {
		maxStore = base64Captcha.GCLimitNumber
	}
	expire := time.Duration(cfg.ExpireSeconds) * time.Second
	if expire <= 0 {
		expire = 5 * time.Minute
	}
	return &CaptchaService{
		cfg:   cfg,
		store: base64Captcha.NewMemoryStore(maxStore, expire),
	}
}

// Enabled 登录场景是否要求验证码
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	driver := base64Captcha.NewDriverDigit(
		positiveOrDefault(s.cfg.Height, 80),
		positiveOrDefault(s.cfg.Width, 240),
		positiveOrDefault(s.cfg.Length, 5),
		0.7,
		positiveOrDefault(s.cfg.ShowLine, 2),
	)
	captcha := base64Captcha.NewCaptcha(driver, s.store)
	id, b64, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   id,
		ImageBase64: b64,
	}, nil
}

// Verify 校验验证码，校验后即失效
func (s *CaptchaService) Verify(captchaID, code string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	code = strings.TrimSpace(code)
	if captchaID == "" || code == "" {
		return ErrCaptchaInvalid
	}
	if !s.store.Verify(captchaID, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func positiveOrDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
