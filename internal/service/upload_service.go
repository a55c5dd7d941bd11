package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/muhe-mall/internal/config"

	"github.com/google/uuid"
)

var allowedUploadScenes = map[string]struct{}{
	"product":  {},
	"category": {},
	"avatar":   {},
	"common":   {},
}

// UploadService 文件上传服务
type UploadService struct {
	cfg *config.Config
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// SaveFile 保存上传的文件，返回相对访问路径
func (s *UploadService) SaveFile(file *multipart.FileHeader, scene string) (string, error) {
	if file == nil {
		return "", ErrUploadInvalid
	}
	scene = strings.ToLower(strings.TrimSpace(scene))
	if scene == "" {
		scene = "common"
	}
	if _, ok := allowedUploadScenes[scene]; !ok {
		return "", ErrUploadInvalid
	}
	if file.Size > s.cfg.Upload.MaxSize {
		return "", fmt.Errorf("%w: 文件大小超过限制（最大 %d MB）", ErrUploadInvalid, s.cfg.Upload.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.Upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
			return "", fmt.Errorf("%w: 文件扩展名不被允许 %s", ErrUploadInvalid, ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 读取文件头部识别真实 MIME 类型，不信任客户端声明
	buffer := make([]byte, 512)
	_, err = src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	contentType := http.DetectContentType(buffer)
	if len(s.cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.Upload.AllowedTypes {
			if strings.EqualFold(contentType, t) {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", fmt.Errorf("%w: 文件类型不被允许 %s", ErrUploadInvalid, contentType)
		}
	}

	dir := filepath.Join(s.cfg.Upload.Dir, scene, time.Now().Format("200601"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/" + filepath.ToSlash(filepath.Join("uploads", scene, time.Now().Format("200601"), filename)), nil
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}
