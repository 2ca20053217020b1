package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterBudgetRoutes registers the routes for the budget ledger with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetBudget)
	r.POST("", SetBudget)
}

// BudgetSet is the body of a set call. All fields are optional; absent
// fields keep the values of the existing record.
type BudgetSet struct {
	Limit           *decimal.Decimal      `json:"limit" example:"1000"`
	CategoryLimits  models.CategoryLimits `json:"categoryLimits"`
	RolloverEnabled *bool                 `json:"rolloverEnabled" example:"true"`
}

// BudgetResponse is a budget record together with its derived effective
// limit.
type BudgetResponse struct {
	models.Budget
	EffectiveLimit decimal.Decimal `json:"effectiveLimit" example:"1300"` // limit + carriedOver, the actual spending ceiling
}

func newBudgetResponse(budget models.Budget) BudgetResponse {
	return BudgetResponse{
		Budget:         budget,
		EffectiveLimit: budget.EffectiveLimit(),
	}
}

// @Summary		Get budget
// @Description	Returns the budget of the current calendar month with its effective limit, or null when no budget is set
// @Tags			Budget
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/budget [get]
// @Security		BearerAuth
func GetBudget(c *gin.Context) {
	budget, err := models.BudgetForMonth(currentUser(c).ID, types.MonthOf(time.Now()))
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newBudgetResponse(budget))
}

// @Summary		Set budget
// @Description	Creates or updates the budget of the current calendar month, computes the carry-over from the previous month and appends a history snapshot
// @Tags			Budget
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			budget	body		BudgetSet	true	"Budget"
// @Router			/v1/budget [post]
// @Security		BearerAuth
func SetBudget(c *gin.Context) {
	var set BudgetSet
	err := httputil.BindData(c, &set)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	budget, err := models.SetBudget(currentUser(c).ID, time.Now(), models.BudgetUpdate{
		Limit:          set.Limit,
		CategoryLimits: set.CategoryLimits,
		Rollover:       set.RolloverEnabled,
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newBudgetResponse(budget))
}
