package altitude_test

import (
	"context"
	"errors"
	"testing"

	"github.com/andinolabs/altura/internal/altitude"
)

func TestService_Resolve(t *testing.T) {
	service := altitude.NewService(altitude.NewInMemoryRepository())
	ctx := context.Background()

	tests := []struct {
		city    string
		want    int
		wantErr error
	}{
		{city: "Puno", want: 3827},
		{city: "puno", want: 3827},
		{city: "  Juliaca ", want: 3825},
		{city: "Macusani", want: 4315},
		{city: "Atlantis", wantErr: altitude.ErrCityNotFound},
		{city: "", wantErr: altitude.ErrCityNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.city, func(t *testing.T) {
			got, err := service.Resolve(ctx, tt.city)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.city, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.city, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %d, want %d", tt.city, got, tt.want)
			}
		})
	}
}

func TestService_SetAltitude(t *testing.T) {
	service := altitude.NewService(altitude.NewEmptyInMemoryRepository())
	ctx := context.Background()

	if _, err := service.Resolve(ctx, "Lima"); !errors.Is(err, altitude.ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound before upsert, got %v", err)
	}

	if err := service.SetAltitude(ctx, "Lima", 154); err != nil {
		t.Fatalf("SetAltitude failed: %v", err)
	}

	got, err := service.Resolve(ctx, "Lima")
	if err != nil {
		t.Fatalf("Resolve after upsert failed: %v", err)
	}
	if got != 154 {
		t.Errorf("Resolve = %d, want 154", got)
	}

	cities, err := service.Cities(ctx)
	if err != nil {
		t.Fatalf("Cities failed: %v", err)
	}
	if len(cities) != 1 {
		t.Errorf("expected 1 city, got %d", len(cities))
	}
}
