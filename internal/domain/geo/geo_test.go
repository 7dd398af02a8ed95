package geo

import (
	"math"
	"testing"
)

func almost(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// depot is the reference point riders are dispatched around.
var depot = NewPoint(13.7859177, 121.0706258)

func TestDistance_SamePoint(t *testing.T) {
	if d := Distance(depot, depot); d != 0 {
		t.Fatalf("want 0, got %f", d)
	}
}

func TestDistance_NewYork_London(t *testing.T) {
	// NYC to London: ~5,570 km
	d := Distance(NewPoint(40.7128, -74.0060), NewPoint(51.5074, -0.1278))
	if !almost(d, 5570, 30) {
		t.Fatalf("want ~5570km, got %.0fkm", d)
	}
}

func TestDistance_Antipodal(t *testing.T) {
	d := Distance(NewPoint(0, 0), NewPoint(0, 180))
	if !almost(d, math.Pi*EarthRadiusKm, 1e-6) {
		t.Fatalf("want %.3f, got %.3f", math.Pi*EarthRadiusKm, d)
	}
}

func TestDistance_OneDegreeLatitude(t *testing.T) {
	// 1° of latitude is R*pi/180 ≈ 111.19 km
	d := Distance(NewPoint(0, 0), NewPoint(1, 0))
	if !almost(d, EarthRadiusKm*math.Pi/180, 1e-9) {
		t.Fatalf("got %f", d)
	}
}

func TestDistance_SymmetricAndNonNegative(t *testing.T) {
	points := []Point{
		depot,
		NewPoint(13.7800, 121.0650),
		NewPoint(13.7900, 121.0750),
		NewPoint(-33.8688, 151.2093),
		NewPoint(55.7558, 37.6173),
		NewPoint(90, 0),
		NewPoint(-90, 0),
		NewPoint(0, -180),
		NewPoint(120, 400), // out of range, passed through
	}
	for _, a := range points {
		for _, b := range points {
			ab, ba := Distance(a, b), Distance(b, a)
			if ab < 0 {
				t.Errorf("Distance(%v,%v) negative: %f", a, b, ab)
			}
			if !almost(ab, ba, 1e-9) {
				t.Errorf("asymmetric: %f vs %f for %v,%v", ab, ba, a, b)
			}
		}
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%v,%v) = %f, want 0", a, a, d)
		}
	}
}

func TestDistance_NearbyRiders(t *testing.T) {
	// Riders sit in a ~1km box around the depot.
	d := Distance(depot, NewPoint(13.7900, 121.0750))
	if d <= 0 || d > 1.5 {
		t.Fatalf("want a sub-1.5km distance, got %f", d)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		p     Point
		valid bool
	}{
		{NewPoint(0, 0), true},
		{NewPoint(90, 180), true},
		{NewPoint(-90, -180), true},
		{NewPoint(91, 0), false},
		{NewPoint(0, 181), false},
		{NewPoint(-91, 0), false},
		{NewPoint(0, -181), false},
	}
	for _, tt := range tests {
		if got := Valid(tt.p); got != tt.valid {
			t.Errorf("Valid(%v) = %v, want %v", tt.p, got, tt.valid)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1.234, 1.23},
		{1.235001, 1.24},
		{0.999, 1},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
