package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eke/internal/domains/booking/model"
)

func TestExpiredFilter(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	filter := expiredFilter(now)
	clause, args := filter.GetWhereClause()

	assert.Contains(t, clause, "bookings.status = :status")
	assert.Contains(t, clause, "bookings.expires_at IS NOT NULL")

	// The deadline comparison must be strict: a booking expiring exactly at
	// the sweep instant is still confirmable, so the sweep leaves it alone.
	assert.Contains(t, clause, "bookings.expires_at < :expires_at")
	assert.False(t, strings.Contains(clause, "<="))

	assert.Equal(t, model.StatusPending, args["status"])
	assert.Equal(t, now, args["expires_at"])
}
