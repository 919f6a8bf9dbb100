package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ckobridge/internal/checkout"
	"ckobridge/internal/identity"
	"ckobridge/internal/ops"
)

// Deps bundles everything the API handlers need.
type Deps struct {
	Ops      *ops.Service
	Checkout checkout.Factory
	Identity identity.Resolver
	Logger   *zap.Logger
}

// resultResponse wraps an operation result string the way every GET
// endpoint returns it: {"result": "..."}.
func resultResponse(c echo.Context, result string) error {
	return c.JSON(http.StatusOK, map[string]string{"result": result})
}
