package v1

import (
	"net/http"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterResetRoutes registers the route for the data reset with
// the RouterGroup that is passed.
func RegisterResetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsDelete)
	r.DELETE("", ResetUserData)
}

type ResetResponse struct {
	Message string       `json:"message" example:"User data reset successfully"`
	Deleted DeletedCount `json:"deleted"`
}

type DeletedCount struct {
	Expenses int64 `json:"expenses" example:"32"`
	Income   int64 `json:"income" example:"4"`
	Budgets  int64 `json:"budgets" example:"2"`
}

// @Summary		Reset user data
// @Description	Permanently deletes all expenses, income records and budgets of the authenticated user
// @Tags			Reset
// @Produce		json
// @Success		200	{object}	ResetResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/reset [delete]
// @Security		BearerAuth
func ResetUserData(c *gin.Context) {
	userID := currentUser(c).ID
	var deleted DeletedCount

	// One transaction so a failing delete rolls everything back. History
	// entries reference budgets and have to go first.
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("budget_id IN (?)", tx.Model(&models.Budget{}).Select("id").Where("user_id = ?", userID)).Delete(&models.BudgetEntry{})
		if res.Error != nil {
			return res.Error
		}

		res = tx.Where("user_id = ?", userID).Delete(&models.Budget{})
		if res.Error != nil {
			return res.Error
		}
		deleted.Budgets = res.RowsAffected

		res = tx.Where("user_id = ?", userID).Delete(&models.Expense{})
		if res.Error != nil {
			return res.Error
		}
		deleted.Expenses = res.RowsAffected

		res = tx.Where("user_id = ?", userID).Delete(&models.Income{})
		if res.Error != nil {
			return res.Error
		}
		deleted.Income = res.RowsAffected

		return nil
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ResetResponse{
		Message: "User data reset successfully",
		Deleted: deleted,
	})
}
