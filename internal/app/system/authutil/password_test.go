package authutil

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "mySecurePassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" {
		t.Error("HashPassword() returned empty hash")
	}
	if hash == password {
		t.Error("HashPassword() returned unhashed password")
	}

	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() second call error = %v", err)
	}
	if hash == hash2 {
		t.Error("HashPassword() should produce different hashes for same password (salt)")
	}

	if _, err := HashPassword(strings.Repeat("a", MaxPasswordLength+1)); err != ErrPasswordTooLong {
		t.Errorf("HashPassword(too long) err = %v, want %v", err, ErrPasswordTooLong)
	}
}

func TestCheckPassword(t *testing.T) {
	password := "secret"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"correct password", password, hash, true},
		{"wrong password", "wrong", hash, false},
		{"case differs", "SECRET", hash, false},
		{"empty password", "", hash, false},
		{"invalid hash", password, "not-a-valid-hash", false},
		{"empty hash", password, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.password, tt.hash); got != tt.want {
				t.Errorf("CheckPassword(%q, hash) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        Registration
		wantErr   error
		wantLogin string
	}{
		{"valid", Registration{Credentials{"alice", "secret"}, "Alice A"}, nil, "alice"},
		{"login kept exactly", Registration{Credentials{"  alice ", "secret"}, "Alice"}, nil, "  alice "},
		{"whitespace login kept", Registration{Credentials{"  ", "secret"}, "Alice"}, nil, "  "},
		{"missing login", Registration{Credentials{"", "secret"}, "Alice"}, ErrLoginIDRequired, ""},
		{"missing password", Registration{Credentials{"alice", ""}, "Alice"}, ErrPasswordRequired, ""},
		{"missing name", Registration{Credentials{"alice", "secret"}, " "}, ErrDisplayNameRequired, ""},
		{"long password", Registration{Credentials{"alice", strings.Repeat("x", 73)}, "A"}, ErrPasswordTooLong, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			if err := in.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && in.LoginID != tt.wantLogin {
				t.Errorf("LoginID = %q, want %q", in.LoginID, tt.wantLogin)
			}
		})
	}
}
