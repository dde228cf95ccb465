package money

import (
	"errors"
	"math"
	"testing"

	"project_billing/internal/domain/errs"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name    string
		total   Cents
		percent int
		want    Cents
	}{
		{"thirty percent of 100.00", 10000, 30, 3000},
		{"zero total", 0, 30, 0},
		{"zero percent", 12345, 0, 0},
		{"full percent", 12345, 100, 12345},
		{"half rounds up", 5, 10, 1},
		{"below half rounds down", 4, 10, 0},
		{"odd cents", 3333, 30, 1000},
		{"one cent at fifty", 1, 50, 1},
		{"large total", Cents(math.MaxInt64), 100, Cents(math.MaxInt64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PercentOf(tt.total, tt.percent)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PercentOf(%d, %d) = %d, want %d", tt.total, tt.percent, got, tt.want)
			}
		})
	}
}

func TestPercentOfRejectsInvalidInput(t *testing.T) {
	if _, err := PercentOf(-1, 30); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for negative total, got %v", err)
	}
	if _, err := PercentOf(100, 101); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for percent > 100, got %v", err)
	}
	if _, err := PercentOf(100, -1); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for negative percent, got %v", err)
	}
}

func TestSplitKeepsTotal(t *testing.T) {
	for _, total := range []Cents{0, 1, 99, 101, 3333, 10000, 987654321} {
		for _, percent := range []int{0, 1, 15, 30, 33, 50, 99, 100} {
			deposit, balance, err := Split(total, percent)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if deposit+balance != total {
				t.Fatalf("deposit %d + balance %d != total %d", deposit, balance, total)
			}
		}
	}

	deposit, balance, _ := Split(10000, 30)
	if deposit != 3000 || balance != 7000 {
		t.Fatalf("expected 3000/7000, got %d/%d", deposit, balance)
	}
}

func TestSubtractClamped(t *testing.T) {
	if got := SubtractClamped(10000, 8000); got != 2000 {
		t.Errorf("SubtractClamped(10000, 8000) = %d, want 2000", got)
	}
	if got := SubtractClamped(5000, 7000); got != 0 {
		t.Errorf("SubtractClamped(5000, 7000) = %d, want 0", got)
	}
	if got := SubtractClamped(0, 0); got != 0 {
		t.Errorf("SubtractClamped(0, 0) = %d, want 0", got)
	}
}

func TestSum(t *testing.T) {
	got, err := Sum(100, 200, 300)
	if err != nil || got != 600 {
		t.Fatalf("Sum = %d, %v; want 600, nil", got, err)
	}
	if got, _ := Sum(); got != 0 {
		t.Fatalf("empty Sum = %d, want 0", got)
	}
	if _, err := Sum(100, -1); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for negative component, got %v", err)
	}
	if _, err := Sum(Cents(math.MaxInt64), 1); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for overflow, got %v", err)
	}
}

func TestMultiply(t *testing.T) {
	got, err := Multiply(2500, 3)
	if err != nil || got != 7500 {
		t.Fatalf("Multiply = %d, %v; want 7500, nil", got, err)
	}
	if _, err := Multiply(Cents(math.MaxInt64), 2); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected overflow error, got %v", err)
	}
	if _, err := Multiply(-1, 2); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for negative unit, got %v", err)
	}
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" eur ")
	if err != nil || c != "EUR" {
		t.Fatalf("ParseCurrency = %q, %v; want EUR, nil", c, err)
	}
	for _, bad := range []string{"", "EU", "EURO", "E1R"} {
		if _, err := ParseCurrency(bad); !errors.Is(err, errs.ErrValidation) {
			t.Errorf("ParseCurrency(%q) expected validation error, got %v", bad, err)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount   Cents
		currency Currency
		want     string
	}{
		{4900, "EUR", "49.00"},
		{5, "USD", "0.05"},
		{100, "JPY", "100"},
		{0, "EUR", "0.00"},
	}
	for _, tt := range tests {
		if got := Format(tt.amount, tt.currency); got != tt.want {
			t.Errorf("Format(%d, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}
