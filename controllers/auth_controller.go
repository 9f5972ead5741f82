package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/resp"
	"github.com/tapan2502/Ride-Sharing-Assingement/services"
	"github.com/tapan2502/Ride-Sharing-Assingement/utils"
)

type RegisterRequest struct {
	Name           string                `json:"name" binding:"required"`
	Email          string                `json:"email" binding:"required,email"`
	Password       string                `json:"password" binding:"required,min=6"`
	Role           string                `json:"role" binding:"omitempty,oneof=user driver"`
	Phone          string                `json:"phone" binding:"required"`
	LicenseNumber  string                `json:"licenseNumber"`
	VehicleDetails entity.VehicleDetails `json:"vehicleDetails"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// POST /api/auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.Auth.Register(services.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		PhoneNumber:    req.Phone,
		LicenseNumber:  req.LicenseNumber,
		VehicleDetails: req.VehicleDetails,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			resp.Conflict(c, err.Error())
		case errors.Is(err, services.ErrLicenseRequired), errors.Is(err, services.ErrInvalidRole):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, "server error during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "token": token, "role": user.Role})
}

// POST /api/auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.Auth.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "role": user.Role})
}

// GET /api/auth/profile
func (a *AuthController) Profile(c *gin.Context) {
	user, err := a.Auth.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	resp.OK(c, user)
}
