package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Raw JWT disimpan middleware di Locals supaya logout bisa blacklist.
const LocRawToken = "raw_token"

// GetRawAccessToken: Locals("raw_token") → Authorization "Bearer <token>" → cookie "access_token".
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	fields := strings.Fields(c.Get("Authorization"))
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return strings.Trim(fields[1], "\"'")
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if raw = strings.TrimSpace(raw); raw != "" {
		c.Locals(LocRawToken, raw)
	}
}
