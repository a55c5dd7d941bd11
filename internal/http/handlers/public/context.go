package public

import (
	"strings"

	"github.com/muhe-mall/internal/constants"
	handlershared "github.com/muhe-mall/internal/http/handlers/shared"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getUserID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

// getCartRef 解析购物车归属：已登录取 user_id，游客取请求头令牌
// 游客无令牌时返回空 Token，由服务层签发新令牌
func getCartRef(c *gin.Context) service.CartRef {
	if value, exists := c.Get("user_id"); exists {
		if uid, ok := value.(uint); ok && uid > 0 {
			return service.CartRef{UserID: uid}
		}
	}
	return service.CartRef{Token: strings.TrimSpace(c.GetHeader(constants.HeaderCartToken))}
}
