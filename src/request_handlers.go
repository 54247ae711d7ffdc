package main

import (
	"acs/src/types"
	"acs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func requestHandlers(g *gin.RouterGroup) {
	g.
		POST("/requests", func(ctx *gin.Context) {
			role := ctx.GetString("role")
			if role != string(types.ROLE_PASSENGER) && role != string(types.ROLE_AGENT) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "only clients can submit charter requests"})
				return
			}
			var body types.CreateRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			clientId := ctx.GetUint("id")
			request, err := utils.CreateQuoteRequest(&body, clientId)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": request})
		}).
		GET("/requests", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			if ctx.GetString("role") == string(types.ROLE_OPERATOR) {
				requests, err := utils.GetOperatorRequests(userId)
				if err != nil {
					respondError(ctx, err)
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": requests})
				return
			}
			requests, err := utils.GetOwnRequests(userId)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests})
		}).
		GET("/requests/:code", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			request, err := utils.GetQuoteRequest(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": request})
		}).
		GET("/requests/:code/quotes", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			quotes, err := utils.GetRequestQuotes(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": quotes})
		}).
		PUT("/requests/:code/viewed", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			request, err := utils.MarkQuotesViewed(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": request})
		}).
		PUT("/requests/:code/cancel", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			request, err := utils.CancelQuoteRequest(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": request})
		})
}
