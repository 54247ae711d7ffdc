package main

import (
	"acs/src/db"
	"acs/src/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

func notificationHandlers(g *gin.RouterGroup) {
	g.
		GET("/notifications", func(ctx *gin.Context) {
			email := ctx.GetString("email")
			d := db.GetDb()
			var notifications []models.Notification
			err := d.
				Model(&models.Notification{}).
				Where(&models.Notification{Recipient: email}).
				Order("created_at DESC").
				Limit(50).
				Find(&notifications).
				Error
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notifications})
		})
}
