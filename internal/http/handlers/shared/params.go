package shared

import (
	"strconv"
	"strings"

	"github.com/ait-marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ParseUintParam 解析路径中的正整数 ID，非法时写入 400 响应
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return 0, false
	}
	return uint(value), true
}

// QueryUint 读取可选的正整数查询参数，缺失或非法返回 0
func QueryUint(c *gin.Context, key string) uint {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Query(key)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// QueryBool 读取可选布尔查询参数（true/false/1/0），缺失或非法返回 nil
func QueryBool(c *gin.Context, key string) *bool {
	raw := strings.ToLower(strings.TrimSpace(c.Query(key)))
	var value bool
	switch raw {
	case "true", "1", "yes":
		value = true
	case "false", "0", "no":
		value = false
	default:
		return nil
	}
	return &value
}

// QueryFlag 布尔查询参数是否为真
func QueryFlag(c *gin.Context, key string) bool {
	value := QueryBool(c, key)
	return value != nil && *value
}
