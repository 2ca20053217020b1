package v1

import (
	"net/http"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterRootRoutes registers the routes for the v1 API root with
// the RouterGroup that is passed.
func RegisterRootRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", Get)
}

type Response struct {
	Links Links `json:"links"`
}

type Links struct {
	Auth      string `json:"auth" example:"https://example.com/api/v1/auth"`
	Budget    string `json:"budget" example:"https://example.com/api/v1/budget"`
	Expenses  string `json:"expenses" example:"https://example.com/api/v1/expenses"`
	Income    string `json:"income" example:"https://example.com/api/v1/income"`
	Analytics string `json:"analytics" example:"https://example.com/api/v1/analytics"`
	Reset     string `json:"reset" example:"https://example.com/api/v1/reset"`
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	base := httputil.RequestPathV1(c)

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Auth:      base + "/auth",
			Budget:    base + "/budget",
			Expenses:  base + "/expenses",
			Income:    base + "/income",
			Analytics: base + "/analytics",
			Reset:     base + "/reset",
		},
	})
}
