package testutil

import (
	"time"
)

// Deterministic values shared across package tests.
var (
	// FixedNow is a stable wall-clock instant in IST.
	FixedNow = time.Date(2026, time.March, 2, 10, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

	TestCustomerID      = "CUST001"
	TestOtherCustomerID = "CUST002"
	TestApplicationID   = "00000000-0000-0000-0000-0000000000a1"
)

// Clock returns a func that always reports FixedNow.
func Clock() func() time.Time {
	return func() time.Time { return FixedNow }
}
