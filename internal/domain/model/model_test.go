package model

import (
	"math"
	"testing"
	"time"
)

func TestAdStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   string
		value string
	}{
		{"payment pending", string(AdPaymentPending), "PENDING"},
		{"payment paid", string(AdPaymentPaid), "PAID"},
		{"payment failed", string(AdPaymentFailed), "FAILED"},
		{"approval pending", string(AdApprovalPending), "PENDING"},
		{"approval approved", string(AdApprovalApproved), "APPROVED"},
		{"approval rejected", string(AdApprovalRejected), "REJECTED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestOrderPaymentStatusValues(t *testing.T) {
	cases := []struct {
		status OrderPaymentStatus
		value  string
	}{
		{OrderPaymentPending, "Pending"},
		{OrderPaymentPaid, "Paid"},
		{OrderPaymentRefunded, "Refunded"},
		{OrderPaymentPaidToMerchant, "Paid To Merchant"},
		{OrderPaymentPendingRefund, "Pending Refund"},
	}

	for _, tc := range cases {
		if string(tc.status) != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.status)
		}
	}
}

func TestPointValid(t *testing.T) {
	cases := []struct {
		name  string
		point Point
		want  bool
	}{
		{"addis ababa", Point{Longitude: 38.74, Latitude: 9.03}, true},
		{"longitude bound", Point{Longitude: 180, Latitude: 0}, true},
		{"longitude overflow", Point{Longitude: 180.1, Latitude: 0}, false},
		{"latitude overflow", Point{Longitude: 0, Latitude: -90.5}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.point.Valid(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestHaversineMeters(t *testing.T) {
	addis := Point{Longitude: 38.74, Latitude: 9.03}
	adama := Point{Longitude: 39.27, Latitude: 8.54}

	if d := HaversineMeters(addis, addis); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}

	// Addis Ababa to Adama is roughly 80 km.
	d := HaversineMeters(addis, adama)
	if math.Abs(d-80_000) > 5_000 {
		t.Fatalf("unexpected distance %f", d)
	}

	if HaversineMeters(addis, adama) != HaversineMeters(adama, addis) {
		t.Fatalf("distance must be symmetric")
	}
}

func TestAuctionDerivedStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	window := Auction{
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
	}

	cases := []struct {
		name    string
		mutate  func(*Auction)
		expects AuctionStatus
	}{
		{"approved inside window", func(a *Auction) { a.AdminApproval = AuctionApprovalApproved }, AuctionStatusActive},
		{"approved before start", func(a *Auction) {
			a.AdminApproval = AuctionApprovalApproved
			a.StartTime = now.Add(time.Minute)
		}, AuctionStatusPending},
		{"past end time", func(a *Auction) {
			a.AdminApproval = AuctionApprovalApproved
			a.EndTime = now.Add(-time.Minute)
		}, AuctionStatusEnded},
		{"rejected", func(a *Auction) { a.AdminApproval = AuctionApprovalRejected }, AuctionStatusCancelled},
		{"cancelled stays cancelled", func(a *Auction) {
			a.Status = AuctionStatusCancelled
			a.EndTime = now.Add(-time.Minute)
		}, AuctionStatusCancelled},
		{"pending approval inside window", func(a *Auction) { a.AdminApproval = AuctionApprovalPending }, AuctionStatusPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := window
			tc.mutate(&a)
			if got := a.DerivedStatus(now); got != tc.expects {
				t.Fatalf("expected %s, got %s", tc.expects, got)
			}
		})
	}
}
