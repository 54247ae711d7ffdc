package main

import (
	"acs/src/db"
	"acs/src/lib"
	"acs/src/models"
	"acs/src/types"
	"acs/src/utils"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

func paymentHandlers(g *gin.RouterGroup) {
	g.
		POST("/invoices/:code/payments", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.RecordPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			d := db.GetDb()
			var user models.User
			if err := d.Where(&models.User{ID: userId}).First(&user).Error; err != nil {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
				return
			}
			payment, err := utils.RecordPayment(params.Code, &body, &user)
			if err != nil {
				respondError(ctx, err)
				return
			}
			response := gin.H{"data": payment}
			if rd := lib.GetRedisClient(); rd != nil {
				if url, err := rd.Get(context.Background(), payment.Code+":checkout").Result(); err == nil && url != "" {
					response["checkout_url"] = url
				}
			}
			ctx.JSON(http.StatusCreated, response)
		}).
		GET("/payments/pending", func(ctx *gin.Context) {
			if ctx.GetString("role") != string(types.ROLE_ADMIN) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
				return
			}
			payments, err := utils.GetPendingPayments()
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": payments})
		}).
		PUT("/payments/:code/process", func(ctx *gin.Context) {
			if ctx.GetString("role") != string(types.ROLE_ADMIN) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
				return
			}
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ProcessPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			adminCode := ctx.GetString("code")
			payment, err := utils.ProcessPayment(params.Code, adminCode, body.Status, body.Notes)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": payment})
		}).
		PUT("/payments/:code/operator-paid", func(ctx *gin.Context) {
			if ctx.GetString("role") != string(types.ROLE_ADMIN) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
				return
			}
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.MarkOperatorPaidRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			adminCode := ctx.GetString("code")
			payment, err := utils.MarkOperatorPaid(params.Code, adminCode, body.Notes)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": payment})
		})
}
