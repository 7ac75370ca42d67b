// Package status derives the age classification of a safety device
// from the timestamp of its most recent test. Classification is a pure
// function of the two timestamps so callers inject the evaluation time.
package status

import "time"

// Bucket names an age range of days since the last test
type Bucket string

const (
	BucketUnknown        Bucket = "unknown" // device has never been tested
	BucketRecent         Bucket = "recent"
	BucketGood           Bucket = "good"
	BucketFair           Bucket = "fair"
	BucketAttention      Bucket = "attention"
	BucketCritical       Bucket = "critical"
	BucketCriticalUrgent Bucket = "critical-urgent"
	BucketOverdue        Bucket = "overdue"
)

// Color tokens rendered by the presentation layer
const (
	ColorGray        = "gray"
	ColorGreen       = "green"
	ColorLightYellow = "light-yellow"
	ColorOrange      = "orange"
	ColorLightRed    = "light-red"
	ColorRed         = "red"
	ColorDarkRed     = "dark-red"
	ColorPulsingRed  = "pulsing-red"
)

// Classification is the derived status of a device
type Classification struct {
	AgeDays int    `json:"age_days"`
	Bucket  Bucket `json:"bucket"`
	Color   string `json:"color"`
	// Anomalous is set when the last test timestamp lies in the
	// future (clock skew). The age is clamped to 0 rather than
	// reported negative.
	Anomalous bool `json:"anomalous,omitempty"`
}

// bucket boundaries, inclusive lower / exclusive upper in whole days
var thresholds = []struct {
	maxAge int // exclusive upper bound
	bucket Bucket
	color  string
}{
	{31, BucketRecent, ColorGreen},
	{61, BucketGood, ColorLightYellow},
	{91, BucketFair, ColorOrange},
	{121, BucketAttention, ColorLightRed},
	{151, BucketCritical, ColorRed},
	{181, BucketCriticalUrgent, ColorDarkRed},
}

// Classify maps the elapsed whole days between lastTest and now onto
// an age bucket. A future lastTest clamps to age 0 and flags the
// result as anomalous instead of failing.
func Classify(now, lastTest time.Time) Classification {
	age := int(now.Sub(lastTest).Hours() / 24)
	if lastTest.After(now) {
		return Classification{AgeDays: 0, Bucket: BucketRecent, Color: ColorGreen, Anomalous: true}
	}

	for _, t := range thresholds {
		if age < t.maxAge {
			return Classification{AgeDays: age, Bucket: t.bucket, Color: t.color}
		}
	}
	return Classification{AgeDays: age, Bucket: BucketOverdue, Color: ColorPulsingRed}
}

// Unclassified is the status of a device with no test records. It is
// distinct from every age bucket: a never-tested device must not show
// up as freshly tested.
func Unclassified() Classification {
	return Classification{AgeDays: 0, Bucket: BucketUnknown, Color: ColorGray}
}
