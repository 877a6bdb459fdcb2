// internal/config/config.go
//
// This package handles configuration and the .staymitar directory structure.
// Every property directory that runs StayMitar gets a .staymitar/ folder
// holding the guest record file, the desk journal, receipts and config.yaml.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/staymitar/internal/hotel"
)

const (
	// StayMitarDir is the name of the directory we create in each property dir
	StayMitarDir = ".staymitar"

	// EnvDataFile overrides storage.data_file.
	EnvDataFile = "STAYMITAR_DATA_FILE"
	// EnvReceiptsDir overrides storage.receipts_dir.
	EnvReceiptsDir = "STAYMITAR_RECEIPTS_DIR"

	defaultDataFile    = "state/hotel.jsonl"
	defaultReceiptsDir = "receipts"
)

const defaultProjectConfigYAML = `# staymitar front desk configuration
version: 1

hotel:
  name: ProjectWorlds Hotel & Resorts
  location: Bhilai, Chhattisgarh
  currency: Rs.

# Room classes partition the property's rooms. Use either an explicit
# rooms list or a range like "1-10". Rooms are handed out lowest first.
room_classes:
  - id: 1
    name: Deluxe
    rate: 2000
    range: 1-10
  - id: 2
    name: Semi-Deluxe
    rate: 1500
    range: 11-25
  - id: 3
    name: General
    rate: 1000
    range: 26-45
  - id: 4
    name: Joint
    rate: 1700
    rooms: [46, 47, 48, 49, 50]

# Discounts are percentages taken off the nightly subtotal.
payment_methods:
  - id: 1
    name: Cash
    discount: 0
  - id: 2
    name: Credit/Debit Card
    discount: 10

# Paths are relative to .staymitar/ unless absolute.
storage:
  data_file: state/hotel.jsonl
  receipts_dir: receipts
`

// HotelInfo is printed at the top of every receipt.
type HotelInfo struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location,omitempty"`
	Currency string `yaml:"currency,omitempty"`
}

// RoomClassConfig declares one room class inside .staymitar/config.yaml.
type RoomClassConfig struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Rate  int    `yaml:"rate"`
	Rooms []int  `yaml:"rooms,omitempty"`
	Range string `yaml:"range,omitempty"`
}

// PaymentMethodConfig declares one payment option.
type PaymentMethodConfig struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Discount int    `yaml:"discount"`
}

// StorageConfig locates the record file and receipt output.
type StorageConfig struct {
	DataFile    string `yaml:"data_file"`
	ReceiptsDir string `yaml:"receipts_dir"`
}

// ProjectConfig models .staymitar/config.yaml.
type ProjectConfig struct {
	Version        int                   `yaml:"version"`
	Hotel          HotelInfo             `yaml:"hotel"`
	RoomClasses    []RoomClassConfig     `yaml:"room_classes"`
	PaymentMethods []PaymentMethodConfig `yaml:"payment_methods"`
	Storage        StorageConfig         `yaml:"storage"`
}

// Config holds the runtime configuration for the desk.
type Config struct {
	// ProjectDir is the directory the desk was started from
	ProjectDir string

	// StayMitarDir is ProjectDir/.staymitar
	StayMitarDir string

	Project ProjectConfig
}

// InitDir creates the .staymitar directory structure in the given directory.
//
// Structure created:
// .staymitar/
// ├── config.yaml
// ├── state/       <- guest record file
// ├── logs/        <- front-desk journal
// └── receipts/    <- text and PDF receipts
func InitDir(projectDir string) error {
	root := filepath.Join(projectDir, StayMitarDir)
	dirs := []string{
		filepath.Join(root, "state"),
		filepath.Join(root, "logs"),
		filepath.Join(root, "receipts"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	return ensureProjectConfig(filepath.Join(root, "config.yaml"))
}

// NewConfig loads .staymitar/config.yaml (defaults when absent), then applies
// an optional .env file and environment overrides.
func NewConfig(projectDir string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(projectDir, ".env")); err != nil {
		return nil, err
	}
	cfg := &Config{
		ProjectDir:   projectDir,
		StayMitarDir: filepath.Join(projectDir, StayMitarDir),
		Project:      defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// ProjectConfigPath returns the on-disk location for the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StayMitarDir, "config.yaml")
}

// DataFile returns the path of the guest record file.
func (c *Config) DataFile() string {
	return c.resolve(c.Project.Storage.DataFile)
}

// ReceiptsDir returns where receipts are written.
func (c *Config) ReceiptsDir() string {
	return c.resolve(c.Project.Storage.ReceiptsDir)
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StayMitarDir, "logs")
}

// JournalPath returns the front-desk journal file.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "frontdesk.log")
}

// Hotel returns the property identity.
func (c *Config) Hotel() HotelInfo {
	return c.Project.Hotel
}

// Catalog converts the configured classes and payment methods into domain values.
func (c *Config) Catalog() hotel.Catalog {
	return c.Project.catalog()
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.StayMitarDir, p)
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	if err := parsed.normalize(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvDataFile)); v != "" {
		c.Project.Storage.DataFile = resolvePath(c.ProjectDir, v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvReceiptsDir)); v != "" {
		c.Project.Storage.ReceiptsDir = resolvePath(c.ProjectDir, v)
	}
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{
		Version: 1,
		Hotel: HotelInfo{
			Name:     "ProjectWorlds Hotel & Resorts",
			Location: "Bhilai, Chhattisgarh",
			Currency: "Rs.",
		},
	}
	pc.applyDefaults()
	return pc
}

func defaultRoomClasses() []RoomClassConfig {
	var out []RoomClassConfig
	for _, rc := range hotel.DefaultCatalog().RoomClasses {
		out = append(out, RoomClassConfig{
			ID:    rc.ID,
			Name:  rc.Name,
			Rate:  rc.Rate,
			Rooms: append([]int{}, rc.Rooms...),
		})
	}
	return out
}

func defaultPaymentMethods() []PaymentMethodConfig {
	var out []PaymentMethodConfig
	for _, pm := range hotel.DefaultCatalog().PaymentMethods {
		out = append(out, PaymentMethodConfig{
			ID:       pm.ID,
			Name:     pm.Name,
			Discount: pm.Discount,
		})
	}
	return out
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Hotel.Name) == "" {
		pc.Hotel.Name = "StayMitar"
	}
	if strings.TrimSpace(pc.Hotel.Currency) == "" {
		pc.Hotel.Currency = "Rs."
	}
	if len(pc.RoomClasses) == 0 {
		pc.RoomClasses = defaultRoomClasses()
	}
	if len(pc.PaymentMethods) == 0 {
		pc.PaymentMethods = defaultPaymentMethods()
	}
	if strings.TrimSpace(pc.Storage.DataFile) == "" {
		pc.Storage.DataFile = defaultDataFile
	}
	if strings.TrimSpace(pc.Storage.ReceiptsDir) == "" {
		pc.Storage.ReceiptsDir = defaultReceiptsDir
	}
}

func (pc *ProjectConfig) normalize() error {
	pc.Hotel.Name = strings.TrimSpace(pc.Hotel.Name)
	pc.Hotel.Location = strings.TrimSpace(pc.Hotel.Location)
	pc.Hotel.Currency = strings.TrimSpace(pc.Hotel.Currency)
	for i := range pc.RoomClasses {
		if err := pc.RoomClasses[i].normalize(); err != nil {
			return fmt.Errorf("room_classes[%d]: %w", i, err)
		}
	}
	for i := range pc.PaymentMethods {
		pc.PaymentMethods[i].Name = strings.TrimSpace(pc.PaymentMethods[i].Name)
	}
	pc.Storage.DataFile = strings.TrimSpace(pc.Storage.DataFile)
	pc.Storage.ReceiptsDir = strings.TrimSpace(pc.Storage.ReceiptsDir)
	return nil
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	return pc.catalog().Validate()
}

func (pc ProjectConfig) catalog() hotel.Catalog {
	var catalog hotel.Catalog
	for _, rc := range pc.RoomClasses {
		catalog.RoomClasses = append(catalog.RoomClasses, hotel.RoomClass{
			ID:    rc.ID,
			Name:  rc.Name,
			Rate:  rc.Rate,
			Rooms: append([]int{}, rc.Rooms...),
		})
	}
	for _, pm := range pc.PaymentMethods {
		catalog.PaymentMethods = append(catalog.PaymentMethods, hotel.PaymentMethod{
			ID:       pm.ID,
			Name:     pm.Name,
			Discount: pm.Discount,
		})
	}
	return catalog
}

// normalize folds the optional range into the rooms list and sorts it so
// allocation walks rooms in ascending order.
func (rc *RoomClassConfig) normalize() error {
	rc.Name = strings.TrimSpace(rc.Name)
	rooms := append([]int{}, rc.Rooms...)
	if r := strings.TrimSpace(rc.Range); r != "" {
		expanded, err := parseRange(r)
		if err != nil {
			return err
		}
		rooms = append(rooms, expanded...)
	}
	sort.Ints(rooms)
	for i := 1; i < len(rooms); i++ {
		if rooms[i] == rooms[i-1] {
			return fmt.Errorf("room %d listed twice", rooms[i])
		}
	}
	rc.Rooms = rooms
	rc.Range = ""
	return nil
}

func parseRange(value string) ([]int, error) {
	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("range %q must look like first-last", value)
	}
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", value, err)
	}
	last, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", value, err)
	}
	if last < first {
		return nil, fmt.Errorf("range %q ends before it starts", value)
	}
	return hotel.RoomRange(first, last), nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
