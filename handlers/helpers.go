package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jwchoi684/rg-manager/store"
)

var validate = validator.New()

// actor is the identity resolved by the auth middleware.
type actor struct {
	UserID   uint
	Role     string
	Username string
}

func actorFrom(c echo.Context) actor {
	id, _ := c.Get("user_id").(uint)
	role, _ := c.Get("role").(string)
	name, _ := c.Get("username").(string)
	return actor{UserID: id, Role: role, Username: name}
}

// scopeFrom derives the visibility scope for this request from the caller
// and the optional filterUserId query value.
func scopeFrom(c echo.Context) (actor, store.Scope, error) {
	a := actorFrom(c)
	sc, err := store.ForActor(a.UserID, a.Role, strings.TrimSpace(c.QueryParam("filterUserId")))
	if err != nil {
		return a, sc, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_FILTER_USER_ID"})
	}
	return a, sc, nil
}

func paramID(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || n == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	return uint(n), nil
}

// storeErr maps store failures onto the response taxonomy. Scope misses
// and absent rows are both 404; anything unexpected is a generic 500 with
// the detail kept server-side.
func storeErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]any{"error": "ALREADY_EXISTS"})
	default:
		zap.L().Error("store call failed", zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "INTERNAL"})
	}
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS", "detail": err.Error()})
	}
	return nil
}

// string -> int with a fallback when empty or unparseable.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// isDate accepts YYYY-MM-DD only.
func isDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
