package v1

import (
	"net/http"
	"time"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// trendMonths is the number of months covered by the trend endpoint,
// including the current one.
const trendMonths = 6

// RegisterAnalyticsRoutes registers the routes for analytics with
// the RouterGroup that is passed.
func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", httputil.OptionsGet)
	r.GET("/summary", GetMonthlySummary)

	r.OPTIONS("/categories", httputil.OptionsGet)
	r.GET("/categories", GetCategoryBreakdown)

	r.OPTIONS("/trend", httputil.OptionsGet)
	r.GET("/trend", GetMonthlyTrend)
}

type MonthlySummaryResponse struct {
	Month      string          `json:"month" example:"March"`
	TotalSpent decimal.Decimal `json:"totalSpent" example:"421.55"`
	Count      int64           `json:"count" example:"17"`
}

// @Summary		Monthly summary
// @Description	Returns the total spending and expense count of the current calendar month so far
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	MonthlySummaryResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/analytics/summary [get]
// @Security		BearerAuth
func GetMonthlySummary(c *gin.Context) {
	month := types.MonthOf(time.Now())

	total, count, err := models.ExpenseSumSince(currentUser(c).ID, month.First())
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MonthlySummaryResponse{
		Month:      month.Name(),
		TotalSpent: total,
		Count:      count,
	})
}

// @Summary		Category breakdown
// @Description	Returns the all-time spending of the authenticated user grouped by category
// @Tags			Analytics
// @Produce		json
// @Success		200	{array}		models.CategoryTotal
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/analytics/categories [get]
// @Security		BearerAuth
func GetCategoryBreakdown(c *gin.Context) {
	totals, err := models.ExpenseTotalsByCategory(currentUser(c).ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, totals)
}

// @Summary		Monthly trend
// @Description	Returns per-month spending totals for the last six calendar months, oldest first. Months without expenses are omitted.
// @Tags			Analytics
// @Produce		json
// @Success		200	{array}		models.MonthTotal
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/analytics/trend [get]
// @Security		BearerAuth
func GetMonthlyTrend(c *gin.Context) {
	totals, err := models.ExpenseMonthlyTotals(currentUser(c).ID, trendMonths, time.Now())
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, totals)
}
