package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad should not panic on valid defaults, got: %v", r)
		}
	}()
	cfg := MustLoad()
	if cfg.DBPath == "" {
		t.Fatalf("unexpected empty config from MustLoad")
	}
}

// --- Load defaults, overrides, normalization ---

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DBPath != "quotebook.db" || cfg.PrefsPath != "quotebook-prefs.db" || cfg.DBTimeout != 5*time.Second {
		t.Fatalf("storage defaults unexpected: %+v", cfg)
	}
	if cfg.SearchDebounce != 300*time.Millisecond || cfg.MaxSearchLength != 100 || cfg.MaxVisibleCards != 3 {
		t.Fatalf("presentation defaults unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogPretty {
		t.Fatalf("logging defaults unexpected: %+v", cfg)
	}
	if !cfg.MetricsEnabled || cfg.OTEL.Enabled || cfg.OTEL.ServiceName != "quotebook" || cfg.OTEL.SampleRatio != 1.0 {
		t.Fatalf("observability defaults unexpected: %+v", cfg)
	}
}

func TestLoad_Success_Overrides(t *testing.T) {
	t.Setenv("QUOTEBOOK_DB_PATH", "  quotes.sqlite ")
	t.Setenv("QUOTEBOOK_PREFS_PATH", "prefs.bolt")
	t.Setenv("DB_TIMEOUT", "750ms")
	t.Setenv("SEARCH_DEBOUNCE", "0s")
	t.Setenv("MAX_SEARCH_LENGTH", "40")
	t.Setenv("MAX_VISIBLE_CARDS", "nope") // -> default 3
	t.Setenv("LOG_LEVEL", "WARNING")      // -> "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("METRICS_ENABLED", "off")
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DBPath != "quotes.sqlite" || cfg.PrefsPath != "prefs.bolt" || cfg.DBTimeout != 750*time.Millisecond {
		t.Fatalf("storage fields unexpected: %+v", cfg)
	}
	if cfg.SearchDebounce != 0 || cfg.MaxSearchLength != 40 || cfg.MaxVisibleCards != 3 {
		t.Fatalf("presentation fields unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || cfg.MetricsEnabled {
		t.Fatalf("logging/metrics unexpected: %+v", cfg)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	const key = "QUOTEBOOK_PREFS_PATH"
	if _, ok := os.LookupEnv(key); ok {
		t.Skipf("%s set in the environment", key)
	}
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(key+"=from-dotenv.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	orig := EnvFile
	EnvFile = path
	t.Cleanup(func() { EnvFile = orig })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PrefsPath != "from-dotenv.db" {
		t.Fatalf("PrefsPath = %q; want value from env file", cfg.PrefsPath)
	}
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	orig := EnvFile
	EnvFile = filepath.Join(t.TempDir(), "absent.env")
	t.Cleanup(func() { EnvFile = orig })

	if _, err := Load(); err != nil {
		t.Fatalf("missing env file should be ignored, got: %v", err)
	}
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name, key, val, want string
	}{
		{"invalid LOG_LEVEL", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"empty DB path via spaces", "QUOTEBOOK_DB_PATH", "   ", "QUOTEBOOK_DB_PATH must not be empty"},
		{"empty prefs path via spaces", "QUOTEBOOK_PREFS_PATH", "   ", "QUOTEBOOK_PREFS_PATH must not be empty"},
		{"non-positive timeout", "DB_TIMEOUT", "0s", "DB_TIMEOUT"},
		{"negative debounce", "SEARCH_DEBOUNCE", "-1ms", "SEARCH_DEBOUNCE"},
		{"max search length < 1", "MAX_SEARCH_LENGTH", "0", "MAX_SEARCH_LENGTH"},
		{"max visible cards < 1", "MAX_VISIBLE_CARDS", "0", "MAX_VISIBLE_CARDS"},
		{"otel sample ratio out of range", "OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil || !containsErr(err, tc.want) {
				t.Fatalf("expected %s validation error, got: %v", tc.want, err)
			}
		})
	}
}

// --- helpers ---

func TestHelpers_getenv(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	if getenv("X_EMPTY", "d") != "d" {
		t.Fatalf("getenv should fall back to default on empty var")
	}
	t.Setenv("X_SET", "val")
	if getenv("X_SET", "d") != "val" {
		t.Fatalf("getenv should read set value")
	}
}

func TestHelpers_getfloat_getint_getdur(t *testing.T) {
	t.Setenv("F_VALID", "3.14")
	if getfloat("F_VALID", 0) != 3.14 {
		t.Fatalf("getfloat parse failed")
	}
	t.Setenv("F_BAD", "nope")
	if getfloat("F_BAD", 1.23) != 1.23 {
		t.Fatalf("getfloat default on bad parse failed")
	}

	t.Setenv("I_VALID", " 42 ")
	if getint("I_VALID", 0) != 42 {
		t.Fatalf("getint parse failed")
	}
	t.Setenv("I_BAD", "x")
	if getint("I_BAD", 7) != 7 {
		t.Fatalf("getint default on bad parse failed")
	}

	t.Setenv("D_VALID", "150ms")
	if getdur("D_VALID", time.Second) != 150*time.Millisecond {
		t.Fatalf("getdur parse failed")
	}
	t.Setenv("D_BAD", "zzz")
	if getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatalf("getdur default on bad parse failed")
	}
}

func TestHelpers_getbool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes ", "Y", "on", "On"} {
		t.Setenv("B_T", v)
		if !getbool("B_T", false) {
			t.Fatalf("getbool(%q) = false; want true", v)
		}
	}
	for _, v := range []string{"0", "false", "FALSE", " no ", "N", "off", "Off"} {
		t.Setenv("B_F", v)
		if getbool("B_F", true) {
			t.Fatalf("getbool(%q) = true; want false", v)
		}
	}
	t.Setenv("B_EMPTY", "")
	if !getbool("B_EMPTY", true) || getbool("B_EMPTY", false) {
		t.Fatalf("getbool default behavior unexpected")
	}
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}
