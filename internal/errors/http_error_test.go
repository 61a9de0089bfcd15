package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPErrorJSON(t *testing.T) {
	body, err := json.Marshal(ErrNotFound("reservation not found"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(body), `{"error":"not_found","message":"reservation not found"}`; got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
	if ErrInternal().Status != http.StatusInternalServerError {
		t.Error("ErrInternal status")
	}
}

func TestIsValidation(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", NewValidationError("", "clientName", "date"))
	if !IsValidation(wrapped) {
		t.Fatal("IsValidation() = false for wrapped validation error")
	}
	if got := wrapped.Error(); got != "create: invalid fields: clientName, date" {
		t.Errorf("Error() = %q", got)
	}
	if IsValidation(fmt.Errorf("plain")) {
		t.Error("IsValidation() = true for plain error")
	}
}
