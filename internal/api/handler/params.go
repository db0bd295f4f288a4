package handler

import (
	"net/http"
	"regexp"
	"time"

	"github.com/awardpilot/awardpilot/internal/api/models"
)

var iataParam = regexp.MustCompile(`^[A-Za-z]{3}$`)

// routeParams validates the origin/destination/date query triple shared by
// the fare and availability endpoints.
func routeParams(r *http.Request) (origin, destination, date string, errs []models.FieldError) {
	q := r.URL.Query()
	origin = q.Get("origin")
	destination = q.Get("destination")
	date = q.Get("date")

	if !iataParam.MatchString(origin) {
		errs = append(errs, models.FieldError{Field: "origin", Message: "must be a three-letter IATA code", Code: "invalid"})
	}
	if !iataParam.MatchString(destination) {
		errs = append(errs, models.FieldError{Field: "destination", Message: "must be a three-letter IATA code", Code: "invalid"})
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		errs = append(errs, models.FieldError{Field: "date", Message: "must be YYYY-MM-DD", Code: "invalid"})
	}
	return origin, destination, date, errs
}

// fieldErrors flattens a settings validation failure into wire field errors.
func fieldErrors(fields map[string]string) []models.FieldError {
	out := make([]models.FieldError, 0, len(fields))
	for field, msg := range fields {
		out = append(out, models.FieldError{Field: field, Message: msg, Code: "invalid"})
	}
	return out
}
