package i18n

import (
	"fmt"
	"strings"

	"github.com/muhe-mall/internal/constants"

	"github.com/gin-gonic/gin"
)

const defaultLocale = constants.LocaleZhCN

var supportedLocales = map[string]struct{}{
	constants.LocaleZhCN: {},
	constants.LocaleEnUS: {},
}

// ResolveLocale 从请求解析语言
// 优先级：query locale > Accept-Language > 默认 zh-CN
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	if locale := normalizeLocale(c.Query("locale")); locale != "" {
		return locale
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := normalizeLocale(lang); locale != "" {
			return locale
		}
	}
	return defaultLocale
}

// T 按语言翻译消息键，未命中时返回键本身
func T(locale, key string) string {
	messages, ok := catalog[normalizeOrDefault(locale)]
	if !ok {
		messages = catalog[defaultLocale]
	}
	if msg, ok := messages[key]; ok {
		return msg
	}
	if msg, ok := catalog[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return constants.LocaleZhCN
	case strings.HasPrefix(lower, "en"):
		return constants.LocaleEnUS
	}
	if _, ok := supportedLocales[trimmed]; ok {
		return trimmed
	}
	return ""
}

func normalizeOrDefault(locale string) string {
	if normalized := normalizeLocale(locale); normalized != "" {
		return normalized
	}
	return defaultLocale
}
