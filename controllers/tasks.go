package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salon-agenda-backend/utils"
)

// The /tasks endpoints mirror the internal cron triggers so an external
// scheduler (or an operator) can fire the same idempotent scans on demand.

func authorizedTask(c *gin.Context) bool {
	secret := c.Query("secret")
	if secret == "" {
		secret = c.GetHeader("X-Tasks-Secret")
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(settings.TasksSecret)) != 1 {
		utils.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	return true
}

// TriggerReminderScan runs one reminder scan. Safe to call redundantly; the
// conditional mark inside the service is what prevents double-sends.
func TriggerReminderScan(c *gin.Context) {
	if !authorizedTask(c) {
		return
	}

	results := reminderSvc.ScanAndDispatch(time.Now().In(location))
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

// TriggerBirthdayGreetings runs one birthday pass. Accepts an optional
// ?today=YYYY-MM-DD override, mostly for backfills.
func TriggerBirthdayGreetings(c *gin.Context) {
	if !authorizedTask(c) {
		return
	}

	today := time.Now().In(location)
	if raw := c.Query("today"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, location)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid today, expected YYYY-MM-DD")
			return
		}
		today = parsed
	}

	results := reminderSvc.SendBirthdayGreetings(today)
	c.JSON(http.StatusOK, gin.H{"count": len(results), "greeted": results})
}
