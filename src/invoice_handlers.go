package main

import (
	"acs/src/types"
	"acs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func invoiceHandlers(g *gin.RouterGroup) {
	g.
		POST("/bookings/:code/invoices", func(ctx *gin.Context) {
			role := ctx.GetString("role")
			if role != string(types.ROLE_OPERATOR) && role != string(types.ROLE_ADMIN) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "only operators can raise invoices"})
				return
			}
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateInvoiceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			invoice, err := utils.CreateInvoiceForBooking(params.Code, body.FlightCode, body.Amount)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": invoice})
		}).
		GET("/bookings/:code/invoices", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			invoices, err := utils.GetBookingInvoices(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": invoices})
		}).
		GET("/invoices/:code", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			invoice, err := utils.GetInvoice(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": invoice})
		})
}
