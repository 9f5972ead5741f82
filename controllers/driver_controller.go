package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/resp"
	"github.com/tapan2502/Ride-Sharing-Assingement/services"
	"github.com/tapan2502/Ride-Sharing-Assingement/utils"
)

type UpdateAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

type DriverController struct {
	Drivers *services.DriverService
}

func NewDriverController(drivers *services.DriverService) *DriverController {
	return &DriverController{Drivers: drivers}
}

// GET /api/driver/available — riders browsing drivers; an empty list is 404
// to match the original client contract.
func (dc *DriverController) Available(c *gin.Context) {
	drivers, err := dc.Drivers.ListAvailable()
	if err != nil {
		log.Printf("list available drivers: %v", err)
		resp.ServerError(c, "server error while fetching available drivers")
		return
	}
	if len(drivers) == 0 {
		resp.NotFound(c, "no available drivers found")
		return
	}
	resp.OK(c, drivers)
}

// POST /api/driver/update-availability
func (dc *DriverController) UpdateAvailability(c *gin.Context) {
	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	driver, err := dc.Drivers.SetAvailability(utils.CurrentUserID(c), *req.IsAvailable)
	if err != nil {
		log.Printf("update availability: %v", err)
		resp.ServerError(c, "server error while updating driver availability")
		return
	}
	resp.OK(c, driver)
}
