package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestConfig(t *testing.T, yamlBody string) *Config {
	t.Helper()
	projectDir := t.TempDir()
	root := filepath.Join(projectDir, StayMitarDir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if yamlBody != "" {
		if err := os.WriteFile(filepath.Join(root, "config.yaml"), []byte(yamlBody), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return &Config{ProjectDir: projectDir, StayMitarDir: root, Project: defaultProjectConfig()}
}

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	c := newTestConfig(t, "")
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	catalog := c.Catalog()
	if len(catalog.RoomClasses) != 4 || len(catalog.PaymentMethods) != 2 {
		t.Fatalf("unexpected default catalog: %+v", catalog)
	}
	if got, want := c.DataFile(), filepath.Join(c.StayMitarDir, "state", "hotel.jsonl"); got != want {
		t.Fatalf("data file = %s, want %s", got, want)
	}
}

func TestDefaultTemplateMatchesBuiltinCatalog(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("InitDir: %v", err)
	}
	for _, dir := range []string{"state", "logs", "receipts"} {
		if info, err := os.Stat(filepath.Join(projectDir, StayMitarDir, dir)); err != nil || !info.IsDir() {
			t.Fatalf("expected %s directory, err=%v", dir, err)
		}
	}
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	builtin := defaultProjectConfig().catalog()
	if !reflect.DeepEqual(cfg.Catalog(), builtin) {
		t.Fatalf("template catalog = %+v, want %+v", cfg.Catalog(), builtin)
	}
	if cfg.Hotel().Name != "ProjectWorlds Hotel & Resorts" {
		t.Fatalf("hotel name = %q", cfg.Hotel().Name)
	}
}

func TestLoadProjectConfigParsesRangesAndLists(t *testing.T) {
	c := newTestConfig(t, strings.TrimSpace(`
version: 1
hotel:
  name: Lakeview Inn
room_classes:
  - id: 7
    name: Suite
    rate: 5000
    rooms: [3, 1, 2]
  - id: 8
    name: Dorm
    rate: 400
    range: 10-12
payment_methods:
  - id: 1
    name: UPI
    discount: 5
storage:
  data_file: /var/lib/staymitar/guests.jsonl
`))
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	catalog := c.Catalog()
	suite, ok := catalog.RoomClass(7)
	if !ok {
		t.Fatalf("suite class missing")
	}
	if !reflect.DeepEqual(suite.Rooms, []int{1, 2, 3}) {
		t.Fatalf("suite rooms = %v, want sorted [1 2 3]", suite.Rooms)
	}
	dorm, _ := catalog.RoomClass(8)
	if !reflect.DeepEqual(dorm.Rooms, []int{10, 11, 12}) {
		t.Fatalf("dorm rooms = %v, want [10 11 12]", dorm.Rooms)
	}
	if pm, ok := catalog.PaymentMethod(1); !ok || pm.Discount != 5 {
		t.Fatalf("payment method = %+v", pm)
	}
	if c.DataFile() != "/var/lib/staymitar/guests.jsonl" {
		t.Fatalf("absolute data file not kept: %s", c.DataFile())
	}
	if c.ReceiptsDir() != filepath.Join(c.StayMitarDir, "receipts") {
		t.Fatalf("receipts dir default not applied: %s", c.ReceiptsDir())
	}
	if c.Hotel().Currency != "Rs." {
		t.Fatalf("currency default not applied: %q", c.Hotel().Currency)
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "overlapping rooms",
			yaml: `
room_classes:
  - {id: 1, name: A, rate: 100, range: 1-5}
  - {id: 2, name: B, rate: 100, range: 5-9}
`,
		},
		{
			name: "bad range",
			yaml: `
room_classes:
  - {id: 1, name: A, rate: 100, range: ten-twenty}
`,
		},
		{
			name: "discount above 100",
			yaml: `
payment_methods:
  - {id: 1, name: Voucher, discount: 150}
`,
		},
		{
			name: "zero rate",
			yaml: `
room_classes:
  - {id: 1, name: A, rate: 0, rooms: [1]}
`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newTestConfig(t, strings.TrimSpace(test.yaml))
			if err := c.loadProjectConfig(); err == nil {
				t.Fatalf("expected validation error but got none")
			}
		})
	}
}

func TestNewConfigAppliesDotEnvOverrides(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("InitDir: %v", err)
	}
	t.Setenv(EnvReceiptsDir, "")
	os.Unsetenv(EnvReceiptsDir)
	t.Setenv(EnvDataFile, "")
	os.Unsetenv(EnvDataFile)
	env := EnvDataFile + "=desk/guests.jsonl\n"
	if err := os.WriteFile(filepath.Join(projectDir, ".env"), []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if got, want := cfg.DataFile(), filepath.Join(projectDir, "desk", "guests.jsonl"); got != want {
		t.Fatalf("data file = %s, want %s", got, want)
	}
}
