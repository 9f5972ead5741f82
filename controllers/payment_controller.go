package controllers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/resp"
	"github.com/tapan2502/Ride-Sharing-Assingement/services"
)

type ConfirmPaymentRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
	RideID    uint   `json:"rideId" binding:"required"`
}

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

// POST /api/payment/initiate/:id
func (pc *PaymentController) Initiate(c *gin.Context) {
	rideID, ok := paramID(c, "id")
	if !ok {
		return
	}

	intent, err := pc.Payments.Initiate(c.Request.Context(), rideID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRideNotFound):
			resp.NotFound(c, err.Error())
		case errors.Is(err, services.ErrRideNotAccepted):
			resp.BadRequest(c, err.Error())
		default:
			log.Printf("initiate payment for ride %d: %v", rideID, err)
			resp.ServerError(c, "server error during payment initiation")
		}
		return
	}

	resp.OK(c, gin.H{"paymentId": intent.ID, "amount": intent.Amount})
}

// POST /api/payment/confirm
func (pc *PaymentController) Confirm(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	ride, err := pc.Payments.Confirm(c.Request.Context(), req.PaymentID, req.RideID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRideNotFound):
			resp.NotFound(c, err.Error())
		case errors.Is(err, services.ErrPaymentNotPending), errors.Is(err, services.ErrRideNotAccepted):
			resp.BadRequest(c, err.Error())
		default:
			log.Printf("confirm payment for ride %d: %v", req.RideID, err)
			resp.ServerError(c, "server error during payment confirmation")
		}
		return
	}

	resp.OK(c, gin.H{"msg": "payment successful", "ride": ride})
}

// GET /api/payment/history
func (pc *PaymentController) History(c *gin.Context) {
	records, err := pc.Payments.History()
	if err != nil {
		log.Printf("payment history: %v", err)
		resp.ServerError(c, "server error while fetching payment history")
		return
	}
	resp.OK(c, records)
}
