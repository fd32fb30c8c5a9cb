package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type inboundJSON struct {
	Phone   string `json:"phone"`
	From    string `json:"from"`
	Message string `json:"message"`
	Body    string `json:"body"`
}

// HandleInboundMessage receives client replies from the messaging channel.
// Accepts Twilio-style form posts ({From, Body}) or JSON
// ({phone|from, message|body}). Always answers 200: the channel treats
// anything else as a delivery failure and retries.
func HandleInboundMessage(c *gin.Context) {
	from := c.PostForm("From")
	body := c.PostForm("Body")

	if from == "" && body == "" {
		var payload inboundJSON
		if err := c.ShouldBindJSON(&payload); err == nil {
			from = payload.Phone
			if from == "" {
				from = payload.From
			}
			body = payload.Message
			if body == "" {
				body = payload.Body
			}
		}
	}

	reply := confirmationSvc.HandleInboundMessage(from, body)
	c.JSON(http.StatusOK, gin.H{"ok": true, "reply": reply})
}
