package main

import (
	"acs/src/types"
	"acs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func quoteHandlers(g *gin.RouterGroup) {
	g.
		POST("/quotes", func(ctx *gin.Context) {
			if ctx.GetString("role") != string(types.ROLE_OPERATOR) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "only operators can submit quotes"})
				return
			}
			var body types.SubmitQuoteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			operatorId := ctx.GetUint("id")
			quote, err := utils.SubmitQuote(&body, operatorId)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": quote})
		}).
		PUT("/quotes/:code/accept", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			clientId := ctx.GetUint("id")
			booking, err := utils.AcceptQuote(params.Code, clientId)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/quotes/:code/reject", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			quote, err := utils.RejectQuote(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": quote})
		})
}
