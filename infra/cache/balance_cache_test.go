package cache

import (
	"testing"

	"github.com/google/uuid"
)

func TestBalanceKey(t *testing.T) {
	id := uuid.MustParse("7f9c24e5-2f31-4a9b-8e6d-1a2b3c4d5e6f")
	if got, want := balanceKey(id), "balance_7f9c24e5-2f31-4a9b-8e6d-1a2b3c4d5e6f"; got != want {
		t.Fatalf("balanceKey() = %q, want %q", got, want)
	}
}
