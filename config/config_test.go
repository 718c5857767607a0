package config

import "testing"

func TestLoadEnvWithoutFile(t *testing.T) {
	// The deployed service has no .env file, variables come from the
	// environment. A missing file must not be an error.
	if err := LoadEnv(); err != nil {
		t.Errorf("expected nil without a .env file, got %v", err)
	}
}

func TestValidateEnvCriticalVariables(t *testing.T) {
	cases := []struct {
		name    string
		jwt     string
		dbURL   string
		wantErr bool
	}{
		{"both set", "bistro-test-secret", "postgres://localhost/bistro_test", false},
		{"missing JWT_SECRET", "", "postgres://localhost/bistro_test", true},
		{"missing DATABASE_URL", "bistro-test-secret", "", true},
		{"missing both", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tc.jwt)
			t.Setenv("DATABASE_URL", tc.dbURL)

			err := ValidateEnv()
			if tc.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("expected nil, got %v", err)
			}
		})
	}
}

func TestValidateEnvOptionalVariablesOnlyWarn(t *testing.T) {
	t.Setenv("JWT_SECRET", "bistro-test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/bistro_test")
	t.Setenv("REDIS_URL", "")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "")

	// Cache and image storage are optional integrations; leaving them
	// unset must not block boot.
	if err := ValidateEnv(); err != nil {
		t.Errorf("expected nil with only optional variables unset, got %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BISTRO_TEST_PORT", "9090")
	if got := GetEnv("BISTRO_TEST_PORT", "8080"); got != "9090" {
		t.Errorf("expected set value 9090, got %q", got)
	}

	t.Setenv("BISTRO_TEST_PORT", "")
	if got := GetEnv("BISTRO_TEST_PORT", "8080"); got != "8080" {
		t.Errorf("expected fallback 8080, got %q", got)
	}

	if got := GetEnv("BISTRO_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("expected fallback for an unset key, got %q", got)
	}
}
