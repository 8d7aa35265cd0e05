package storage

import (
	"testing"
	"time"
)

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("Expected %q to be a valid category", c)
		}
	}
	if ValidCategory("항공권") {
		t.Error("Expected unknown category to be invalid")
	}
	if ValidCategory("") {
		t.Error("Expected empty category to be invalid")
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range PaymentMethods {
		if !ValidPaymentMethod(m) {
			t.Errorf("Expected %q to be a valid payment method", m)
		}
	}
	if ValidPaymentMethod("상품권") {
		t.Error("Expected unknown payment method to be invalid")
	}
}

func TestDateLayoutSortsLexically(t *testing.T) {
	earlier := time.Date(2024, 1, 15, 9, 5, 0, 0, time.UTC).Format(DateLayout)
	later := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC).Format(DateLayout)

	if !(earlier < later) {
		t.Errorf("Expected %q to sort before %q", earlier, later)
	}
}

func TestFixtureExpenses(t *testing.T) {
	expenses := FixtureExpenses()
	if len(expenses) != 5 {
		t.Fatalf("Expected 5 fixture expenses, got %d", len(expenses))
	}

	for i, e := range expenses {
		if e.ID() != int64(i+1) {
			t.Errorf("Expected fixture id %d, got %d", i+1, e.ID())
		}
		if e.UserID() != FixtureUserID {
			t.Errorf("Expected fixture user %d, got %d", FixtureUserID, e.UserID())
		}
		if e.Deleted() {
			t.Errorf("Fixture %d must not be deleted", e.ID())
		}
		if !ValidCategory(e.Category()) {
			t.Errorf("Fixture %d has unknown category %q", e.ID(), e.Category())
		}
		if !ValidPaymentMethod(e.PaymentMethod()) {
			t.Errorf("Fixture %d has unknown payment method %q", e.ID(), e.PaymentMethod())
		}
		if _, err := time.Parse(DateLayout, e.Date()); err != nil {
			t.Errorf("Fixture %d has malformed date %q", e.ID(), e.Date())
		}
	}
}
