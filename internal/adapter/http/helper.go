package http

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// HeaderUserID carries the acting user's id on every request. Upstream auth
// terminates at the gateway; by the time a request reaches this service the
// header is trusted.
const HeaderUserID = "Ax-User-Id"

func currentUserID(c echo.Context) (string, bool) {
	uid := strings.ToLower(strings.TrimSpace(c.Request().Header.Get(HeaderUserID)))
	if !reHex32.MatchString(uid) {
		return "", false
	}
	return uid, true
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
