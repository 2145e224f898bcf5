package models

import "testing"

func TestValidOrderStatusAcceptsEnum(t *testing.T) {
	for _, status := range OrderStatuses {
		if !ValidOrderStatus(status) {
			t.Errorf("expected %q to be a valid status", status)
		}
	}
}

func TestValidOrderStatusRejectsEverythingElse(t *testing.T) {
	invalid := []string{"", "Teleporting", "not process", "SHIPPED", "Delivered "}
	for _, status := range invalid {
		if ValidOrderStatus(status) {
			t.Errorf("expected %q to be rejected", status)
		}
	}
}

func TestDefaultStatusIsPartOfEnum(t *testing.T) {
	if !ValidOrderStatus(StatusNotProcess) {
		t.Fatal("the initial status must be one of the enumerated values")
	}
}
