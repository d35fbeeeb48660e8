package controllers

import (
	"log"
	"net/http"

	"flatly-backend/models"
	"flatly-backend/services"
	"flatly-backend/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{UserSvc: svc}
}

// GET /api/users
func (ctrl *UserController) GetUsers(c *gin.Context) {
	users, err := ctrl.UserSvc.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := ctrl.UserSvc.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /api/users
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var dto models.UserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := ctrl.UserSvc.Create(dto)
	if err != nil {
		if utils.IsDuplicateKey(err) {
			utils.JSONError(c, http.StatusConflict, "email already registered")
			return
		}
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
