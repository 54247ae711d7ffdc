package main

import (
	"acs/src/types"
	"acs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ratingHandlers(g *gin.RouterGroup) {
	g.
		POST("/bookings/:code/rating", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateRatingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userCode := ctx.GetString("code")
			rating, err := utils.CreateRating(params.Code, userCode, body.Rating, body.Comments)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": rating})
		}).
		GET("/operators/:code/ratings", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ratings, err := utils.GetOperatorRatings(params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ratings})
		})
}
