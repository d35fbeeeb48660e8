package controllers

import (
	"net/http"

	"flatly-backend/services"
	"flatly-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardSvc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{DashboardSvc: svc}
}

// GET /api/dashboard/stats
func (ctrl *DashboardController) GetStats(c *gin.Context) {
	stats, err := ctrl.DashboardSvc.Stats()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/dashboard/recent-activities
func (ctrl *DashboardController) GetRecentActivities(c *gin.Context) {
	activities, err := ctrl.DashboardSvc.RecentActivities()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// GET /api/dashboard/most-active-user
func (ctrl *DashboardController) GetMostActiveUser(c *gin.Context) {
	user, found, err := ctrl.DashboardSvc.MostActiveUser()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"message": "No active user found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
