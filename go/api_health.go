package inventoryserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/go-gin-inventory-server/internal/shared/errors"
)

// HealthAPI reports which store backs the service and whether it answers.
type HealthAPI struct {
	driver string
	ping   func(ctx context.Context) error
}

// NewHealthAPI takes an optional ping used to probe the store.
func NewHealthAPI(driver string, ping func(ctx context.Context) error) HealthAPI {
	return HealthAPI{driver: driver, ping: ping}
}

// Get /healthz
func (api *HealthAPI) Healthz(c *gin.Context) {
	if api.ping != nil {
		if err := api.ping(c.Request.Context()); err != nil {
			apierrors.Respond(c, apierrors.ErrUnavailable.WithMessage("Store unavailable").WithDetail(err.Error()))
			return
		}
	}
	apierrors.RespondData(c, http.StatusOK, "ok", gin.H{"store": api.driver})
}
