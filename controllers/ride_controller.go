package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/resp"
	"github.com/tapan2502/Ride-Sharing-Assingement/services"
	"github.com/tapan2502/Ride-Sharing-Assingement/utils"
)

type BookRideRequest struct {
	Pickup        string `json:"pickup" binding:"required"`
	Dropoff       string `json:"dropoff" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=cash card"`
	DriverID      *uint  `json:"driverId"`
}

type RideController struct {
	Rides *services.RideService
}

func NewRideController(rides *services.RideService) *RideController {
	return &RideController{Rides: rides}
}

// POST /api/ride/book
func (rc *RideController) Book(c *gin.Context) {
	var req BookRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	ride, err := rc.Rides.Book(c.Request.Context(), services.BookInput{
		UserID:        utils.CurrentUserID(c),
		Pickup:        req.Pickup,
		Dropoff:       req.Dropoff,
		PaymentMethod: req.PaymentMethod,
		DriverID:      req.DriverID,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidDriver) {
			resp.BadRequest(c, err.Error())
			return
		}
		log.Printf("book ride: %v", err)
		resp.ServerError(c, "server error during ride booking")
		return
	}

	resp.Created(c, ride)
}

// POST /api/ride/accept/:id
func (rc *RideController) Accept(c *gin.Context) {
	rideID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ride, err := rc.Rides.Accept(rideID, utils.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRideNotAvailable):
			resp.NotFound(c, err.Error())
		case errors.Is(err, services.ErrDriverUnavailable):
			resp.Conflict(c, err.Error())
		case errors.Is(err, services.ErrInvalidDriver):
			resp.BadRequest(c, err.Error())
		default:
			log.Printf("accept ride %d: %v", rideID, err)
			resp.ServerError(c, "server error while accepting ride")
		}
		return
	}

	resp.OK(c, ride)
}

// POST /api/ride/cancel/:id
func (rc *RideController) Cancel(c *gin.Context) {
	rideID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := rc.Rides.Cancel(rideID, utils.CurrentUserID(c)); err != nil {
		if errors.Is(err, services.ErrNoActiveRide) {
			resp.NotFound(c, "no active ride found to cancel")
			return
		}
		log.Printf("cancel ride %d: %v", rideID, err)
		resp.ServerError(c, "server error while cancelling ride")
		return
	}

	resp.OK(c, gin.H{"msg": "ride cancelled successfully"})
}

// POST /api/ride/start/:id
func (rc *RideController) Start(c *gin.Context) {
	rideID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ride, err := rc.Rides.Start(rideID, utils.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			resp.NotFound(c, "ride not found or not accepted")
			return
		}
		log.Printf("start ride %d: %v", rideID, err)
		resp.ServerError(c, "server error while starting ride")
		return
	}

	resp.OK(c, ride)
}

// POST /api/ride/complete/:id
func (rc *RideController) Complete(c *gin.Context) {
	rideID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ride, err := rc.Rides.Complete(rideID, utils.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			resp.NotFound(c, "ride not found or not in progress")
			return
		}
		log.Printf("complete ride %d: %v", rideID, err)
		resp.ServerError(c, "server error while completing ride")
		return
	}

	resp.OK(c, ride)
}

// GET /api/ride/current
func (rc *RideController) Current(c *gin.Context) {
	detail, err := rc.Rides.GetCurrent(utils.CurrentUserID(c), utils.CurrentRole(c))
	if err != nil {
		resp.NotFound(c, "no active ride found")
		return
	}
	resp.OK(c, detail)
}

// GET /api/ride/current-driver
func (rc *RideController) CurrentForDriver(c *gin.Context) {
	ride, err := rc.Rides.GetCurrentForDriver(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "no active ride found for the driver")
		return
	}
	resp.OK(c, ride)
}

// GET /api/ride/available
func (rc *RideController) Available(c *gin.Context) {
	rides, err := rc.Rides.ListAvailable()
	if err != nil {
		log.Printf("list available rides: %v", err)
		resp.ServerError(c, "server error while fetching available rides")
		return
	}
	resp.OK(c, rides)
}

// GET /api/ride/all
func (rc *RideController) All(c *gin.Context) {
	rides, err := rc.Rides.ListAll()
	if err != nil {
		log.Printf("list rides: %v", err)
		resp.ServerError(c, "server error while fetching rides")
		return
	}
	resp.OK(c, rides)
}

// GET /api/ride/history?page=&limit=
func (rc *RideController) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	history, err := rc.Rides.History(utils.CurrentUserID(c), utils.CurrentRole(c), page, limit)
	if err != nil {
		log.Printf("ride history: %v", err)
		resp.ServerError(c, "server error while fetching ride history")
		return
	}
	resp.OK(c, history)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
