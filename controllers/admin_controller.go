package controllers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/resp"
	"github.com/tapan2502/Ride-Sharing-Assingement/services"
)

type AssignDriverRequest struct {
	DriverID uint `json:"driverId" binding:"required"`
}

type AdminController struct {
	Rides *services.RideService
}

func NewAdminController(rides *services.RideService) *AdminController {
	return &AdminController{Rides: rides}
}

// GET /api/admin/rides
func (ac *AdminController) AllRides(c *gin.Context) {
	rides, err := ac.Rides.ListAll()
	if err != nil {
		log.Printf("admin list rides: %v", err)
		resp.ServerError(c, "server error while fetching rides")
		return
	}
	resp.OK(c, rides)
}

// POST /api/admin/assign-driver/:rideId — escape hatch: overwrites the
// driver and forces accepted regardless of current state.
func (ac *AdminController) AssignDriver(c *gin.Context) {
	rideID, ok := paramID(c, "rideId")
	if !ok {
		return
	}

	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	ride, err := ac.Rides.AdminAssign(rideID, req.DriverID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRideNotFound):
			resp.NotFound(c, err.Error())
		case errors.Is(err, services.ErrInvalidDriver):
			resp.BadRequest(c, err.Error())
		default:
			log.Printf("assign driver to ride %d: %v", rideID, err)
			resp.ServerError(c, "server error while assigning driver")
		}
		return
	}

	resp.OK(c, ride)
}
