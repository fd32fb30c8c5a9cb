package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	ts := time.Date(2030, 5, 20, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2030, 5, 20, 0, 0, 0, 0, time.UTC), BeginningOfDay(ts))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2030, 5, 20, 0, 1, 0, 0, time.UTC)
	b := time.Date(2030, 5, 20, 23, 59, 0, 0, time.UTC)
	c := time.Date(2030, 5, 21, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}

func TestMinutesIntoDay(t *testing.T) {
	ts := time.Date(2030, 5, 20, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, 630, MinutesIntoDay(ts))
}
