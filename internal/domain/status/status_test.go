package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBuckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ageDays int
		bucket  Bucket
		color   string
	}{
		{0, BucketRecent, ColorGreen},
		{30, BucketRecent, ColorGreen},
		{31, BucketGood, ColorLightYellow},
		{60, BucketGood, ColorLightYellow},
		{61, BucketFair, ColorOrange},
		{90, BucketFair, ColorOrange},
		{91, BucketAttention, ColorLightRed},
		{120, BucketAttention, ColorLightRed},
		{121, BucketCritical, ColorRed},
		{150, BucketCritical, ColorRed},
		{151, BucketCriticalUrgent, ColorDarkRed},
		{180, BucketCriticalUrgent, ColorDarkRed},
		{181, BucketOverdue, ColorPulsingRed},
		{365, BucketOverdue, ColorPulsingRed},
		{1000, BucketOverdue, ColorPulsingRed},
	}

	for _, tt := range tests {
		lastTest := now.AddDate(0, 0, -tt.ageDays)
		c := Classify(now, lastTest)

		assert.Equal(t, tt.ageDays, c.AgeDays, "age %d", tt.ageDays)
		assert.Equal(t, tt.bucket, c.Bucket, "age %d", tt.ageDays)
		assert.Equal(t, tt.color, c.Color, "age %d", tt.ageDays)
		assert.False(t, c.Anomalous, "age %d", tt.ageDays)
	}
}

func TestClassifyFutureTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)

	c := Classify(now, future)

	assert.Equal(t, 0, c.AgeDays, "future timestamps clamp to zero, never negative")
	assert.Equal(t, BucketRecent, c.Bucket)
	assert.Equal(t, ColorGreen, c.Color)
	assert.True(t, c.Anomalous)
}

func TestClassifySameInstant(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	c := Classify(now, now)

	assert.Equal(t, 0, c.AgeDays)
	assert.Equal(t, BucketRecent, c.Bucket)
	assert.False(t, c.Anomalous)
}

func TestUnclassified(t *testing.T) {
	c := Unclassified()

	assert.Equal(t, BucketUnknown, c.Bucket)
	assert.Equal(t, ColorGray, c.Color)
	assert.NotEqual(t, BucketRecent, c.Bucket, "a never-tested device must not look freshly tested")
}
