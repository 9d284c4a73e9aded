package controllers

import (
	"fmt"
	"strconv"
	"time"

	"rental-backend/models"

	"github.com/gin-gonic/gin"
)

const dayLayout = "2006-01-02"

func uintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

func parseDay(raw string) (time.Time, error) {
	day, err := time.ParseInLocation(dayLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return day, nil
}

// rangeFromQuery reads check_in/check_out (YYYY-MM-DD) query parameters.
func rangeFromQuery(c *gin.Context) (models.DateRange, error) {
	checkIn, err := parseDay(c.Query("check_in"))
	if err != nil {
		return models.DateRange{}, err
	}
	checkOut, err := parseDay(c.Query("check_out"))
	if err != nil {
		return models.DateRange{}, err
	}
	return models.NewDateRange(checkIn, checkOut)
}

func formatDays(days []time.Time) []string {
	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, day.Format(dayLayout))
	}
	return out
}
