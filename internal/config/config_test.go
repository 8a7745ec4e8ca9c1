package config

import (
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero body cap")
	}

	cfg = DefaultConfig()
	cfg.UserAgent = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty user agent")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FIRMSIGHT_USER_AGENT", "custom-agent/2.0")
	t.Setenv("FIRMSIGHT_HOMEPAGE_TIMEOUT_MS", "4000")
	t.Setenv("FIRMSIGHT_SUBPAGE_TIMEOUT_MS", "2500")
	t.Setenv("FIRMSIGHT_MAX_BODY_BYTES", "500000")
	t.Setenv("FIRMSIGHT_VERBOSE", "1")

	cfg := DefaultConfig()
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.UserAgent != "custom-agent/2.0" {
		t.Fatalf("user agent = %q", cfg.UserAgent)
	}
	if cfg.HomepageTimeout != 4*time.Second {
		t.Fatalf("homepage timeout = %v", cfg.HomepageTimeout)
	}
	if cfg.SubpageTimeout != 2500*time.Millisecond {
		t.Fatalf("subpage timeout = %v", cfg.SubpageTimeout)
	}
	if cfg.MaxBodyBytes != 500000 {
		t.Fatalf("max body bytes = %d", cfg.MaxBodyBytes)
	}
	if !cfg.Verbose {
		t.Fatal("verbose override not applied")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("overridden config invalid: %v", err)
	}
}

func TestApplyEnvRejectsBadInt(t *testing.T) {
	t.Setenv("FIRMSIGHT_HOMEPAGE_TIMEOUT_MS", "soon")
	if err := ApplyEnv(DefaultConfig()); err == nil {
		t.Fatal("expected error for unparsable override")
	}
}

func TestApplyEnvLeavesDefaultsAlone(t *testing.T) {
	for _, key := range []string{
		"FIRMSIGHT_USER_AGENT", "FIRMSIGHT_HOMEPAGE_TIMEOUT_MS",
		"FIRMSIGHT_SUBPAGE_TIMEOUT_MS", "FIRMSIGHT_MAX_BODY_BYTES", "FIRMSIGHT_VERBOSE",
	} {
		t.Setenv(key, "")
	}
	cfg := DefaultConfig()
	want := *cfg
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if *cfg != want {
		t.Fatalf("config changed with no env set: %+v vs %+v", *cfg, want)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("FIRMSIGHT_TEST_INT", "41")
	n, ok, err := EnvInt("FIRMSIGHT_TEST_INT")
	if err != nil || !ok || n != 41 {
		t.Fatalf("EnvInt = %d %v %v", n, ok, err)
	}

	t.Setenv("FIRMSIGHT_TEST_INT", "nope")
	if _, _, err := EnvInt("FIRMSIGHT_TEST_INT"); err == nil {
		t.Fatal("expected parse error")
	}
}
