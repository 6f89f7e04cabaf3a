package utils

import "time"

// Clock abstracts time.Now so timestamps can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// RealTime implements Clock using time.Now()
type RealTime struct{}

func (RealTime) Now() time.Time {
	return time.Now()
}

// FixedTime always returns Fixed.
type FixedTime struct {
	Fixed time.Time
}

func (ft FixedTime) Now() time.Time {
	return ft.Fixed
}
