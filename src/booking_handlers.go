package main

import (
	"acs/src/types"
	"acs/src/utils"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
)

func bookingHandlers(g *gin.RouterGroup) {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			if ctx.GetString("role") == string(types.ROLE_OPERATOR) {
				bookings, err := utils.GetOperatorBookings(userId)
				if err != nil {
					respondError(ctx, err)
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": bookings})
				return
			}
			bookings, err := utils.GetClientBookings(userId)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		}).
		GET("/bookings/:code", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.GetBooking(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:code/confirm", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.ConfirmBooking(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:code/cancel", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.CancelBooking(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		POST("/bookings/:code/passengers", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.AddPassengerRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			passenger, err := utils.AddPassenger(params.Code, body.FullName, body.Document)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": passenger})
		}).
		GET("/bookings/:code/pass", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.GetBooking(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			if booking.Status != types.BOOKING_CONFIRMED {
				ctx.JSON(http.StatusConflict, gin.H{"error": "boarding pass requires a confirmed booking"})
				return
			}

			rawData := map[string]any{
				"booking": booking.Code,
				"route":   fmt.Sprintf("%s-%s", booking.Origin, booking.Destination),
				"pax":     booking.PaxCount,
			}
			rawBytes, _ := json.Marshal(rawData)

			key, err := hex.DecodeString(os.Getenv("API_QRC_SECRET"))
			if err != nil {
				log.Printf("Could not read key from string: %s\n", err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "boarding pass unavailable"})
				return
			}
			encryptedMessage, err := utils.EncryptMessage(key, string(rawBytes))
			if err != nil {
				log.Printf("Error encrypting message: %s\n", err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "boarding pass unavailable"})
				return
			}
			qrc, err := qrcode.New(encryptedMessage)
			if err != nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "boarding pass unavailable"})
				return
			}
			wd, _ := os.Getwd()
			filepath := path.Join(wd, "temp", fmt.Sprintf("%s.jpeg", booking.Code))
			if err := qrc.Save(filepath); err != nil {
				log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "boarding pass unavailable"})
				return
			}
			ctx.FileAttachment(filepath, "boarding-pass.jpeg")
		})
}
