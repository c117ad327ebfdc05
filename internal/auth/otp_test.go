package auth

import "testing"

func TestGenerateOTP_Range(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP failed: %v", err)
		}
		if code < 0 || code >= OTPMax {
			t.Fatalf("code %d out of range [0, %d)", code, OTPMax)
		}
	}
}

func TestGenerateOTP_Varies(t *testing.T) {
	t.Parallel()

	seen := make(map[int]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP failed: %v", err)
		}
		seen[code] = true
	}

	// 50 draws from a million values colliding down to a handful is not plausible.
	if len(seen) < 40 {
		t.Errorf("expected varied codes, got %d distinct of 50", len(seen))
	}
}

func TestFormatOTP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code int
		want string
	}{
		{0, "000000"},
		{42, "000042"},
		{123456, "123456"},
		{999999, "999999"},
	}

	for _, tt := range tests {
		if got := FormatOTP(tt.code); got != tt.want {
			t.Errorf("FormatOTP(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
