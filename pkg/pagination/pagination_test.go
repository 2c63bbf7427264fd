package pagination_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/andresmolina/casamolina-backend/pkg/pagination"
)

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	want := pagination.Cursor{
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 500, time.UTC),
		ID:        uuid.New(),
	}

	got, err := pagination.Decode(want.Encode())
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got == nil {
		t.Fatal("Decode returned nil cursor")
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || got.ID != want.ID {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestDecodeBlankToken(t *testing.T) {
	t.Parallel()

	got, err := pagination.Decode("   ")
	if err != nil {
		t.Fatalf("Decode returned error for blank token: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil cursor for blank token, got %+v", got)
	}
}

func TestDecodeMalformedToken(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"%%%", "bm8tcGlwZQ", "bm90fGEtdXVpZA"} {
		if _, err := pagination.Decode(token); err == nil {
			t.Fatalf("expected error for token %q", token)
		}
	}
}

func TestNormalizeLimit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   int
		want int
	}{
		{-3, pagination.DefaultLimit},
		{0, pagination.DefaultLimit},
		{15, 15},
		{500, pagination.MaxLimit},
	}
	for _, tc := range cases {
		if got := pagination.NormalizeLimit(tc.in); got != tc.want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTrim(t *testing.T) {
	t.Parallel()

	rows := []int{1, 2, 3, 4}

	page, more := pagination.Trim(rows, 3)
	if !more {
		t.Fatal("expected more pages when rows exceed limit")
	}
	if len(page) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(page))
	}

	page, more = pagination.Trim(rows, 10)
	if more {
		t.Fatal("did not expect more pages")
	}
	if len(page) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(page))
	}
}
