// Package config loads frontdesk settings.
//
// Order of precedence: defaults, the YAML file (--config or
// FRONTDESK_CONFIG), FRONTDESK_* environment variables (a .env file in
// the working directory is read first), then command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	MinPollInterval = 10 * time.Second
	MaxPollInterval = 30 * time.Second
)

type HTTP struct {
	Addr       string        `yaml:"addr"`
	Mode       string        `yaml:"mode"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// API удалённый REST сервер
type API struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

type STOMP struct {
	URL         string `yaml:"url"`
	Host        string `yaml:"host"`
	TopicPrefix string `yaml:"topic_prefix"`
}

type AMQP struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

// Push канал событий: stomp, amqp или none
type Push struct {
	Transport string `yaml:"transport"`
	STOMP     STOMP  `yaml:"stomp"`
	AMQP      AMQP   `yaml:"amqp"`
}

type Polling struct {
	Tables     time.Duration `yaml:"tables"`
	Menu       time.Duration `yaml:"menu"`
	Orders     time.Duration `yaml:"orders"`
	OrderItems time.Duration `yaml:"order_items"`
}

type Display struct {
	Currency         string  `yaml:"currency"`
	WaiterCommission float64 `yaml:"waiter_commission"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	HTTP    HTTP    `yaml:"http"`
	API     API     `yaml:"api"`
	Push    Push    `yaml:"push"`
	Polling Polling `yaml:"polling"`
	Display Display `yaml:"display"`
	Log     Log     `yaml:"log"`
}

// Default returns the configuration used before the file is applied.
func Default() *Config {
	return &Config{
		HTTP: HTTP{Addr: ":9091", Mode: "release", SessionTTL: 12 * time.Hour},
		API:  API{BaseURL: "http://localhost:8080/api", Timeout: 10 * time.Second},
		Push: Push{
			Transport: "none",
			STOMP:     STOMP{Host: "/", TopicPrefix: "/topic/"},
			AMQP:      AMQP{Exchange: "restaurant.events"},
		},
		Polling: Polling{
			Tables:     30 * time.Second,
			Menu:       30 * time.Second,
			Orders:     15 * time.Second,
			OrderItems: 10 * time.Second,
		},
		Display: Display{Currency: "EUR", WaiterCommission: 0.05},
		Log:     Log{Level: "info", Format: "json"},
	}
}

// LoadFile reads path over the defaults. An empty path keeps the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Load parses args, reads .env, the config file and the environment.
func Load(args []string) (*Config, error) {
	fset := pflag.NewFlagSet("frontdesk", pflag.ContinueOnError)
	path := fset.String("config", "", "path to the YAML config file (env FRONTDESK_CONFIG)")
	addr := fset.String("addr", "", "listen address")
	apiURL := fset.String("api-url", "", "base URL of the restaurant API")
	transport := fset.String("push", "", "push transport: stomp, amqp or none")
	level := fset.String("log-level", "", "log level: debug, info, warn, error")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if *path == "" {
		*path = os.Getenv("FRONTDESK_CONFIG")
	}

	cfg, err := LoadFile(*path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	// flags win over the file and the environment
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *transport != "" {
		cfg.Push.Transport = *transport
	}
	if *level != "" {
		cfg.Log.Level = *level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"FRONTDESK_ADDR":           &c.HTTP.Addr,
		"FRONTDESK_GIN_MODE":       &c.HTTP.Mode,
		"FRONTDESK_API_URL":        &c.API.BaseURL,
		"FRONTDESK_API_TOKEN":      &c.API.Token,
		"FRONTDESK_PUSH_TRANSPORT": &c.Push.Transport,
		"FRONTDESK_STOMP_URL":      &c.Push.STOMP.URL,
		"FRONTDESK_AMQP_URL":       &c.Push.AMQP.URL,
		"FRONTDESK_AMQP_EXCHANGE":  &c.Push.AMQP.Exchange,
		"FRONTDESK_CURRENCY":       &c.Display.Currency,
		"FRONTDESK_LOG_LEVEL":      &c.Log.Level,
		"FRONTDESK_LOG_FORMAT":     &c.Log.Format,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	dur := map[string]*time.Duration{
		"FRONTDESK_API_TIMEOUT": &c.API.Timeout,
		"FRONTDESK_SESSION_TTL": &c.HTTP.SessionTTL,
	}
	for key, dst := range dur {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}

	if v, ok := lookup("FRONTDESK_WAITER_COMMISSION"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FRONTDESK_WAITER_COMMISSION: %w", err)
		}
		c.Display.WaiterCommission = f
	}
	return nil
}

// Validate checks required fields and normalizes ranges: polling intervals
// are clamped to 10..30s, the commission rate to 0..1.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("config: api.base_url is required")
	}
	if c.HTTP.Addr == "" {
		return errors.New("config: http.addr is required")
	}

	c.Push.Transport = strings.ToLower(c.Push.Transport)
	switch c.Push.Transport {
	case "", "none":
		c.Push.Transport = "none"
	case "stomp":
		if c.Push.STOMP.URL == "" {
			return errors.New("config: push.stomp.url is required for the stomp transport")
		}
	case "amqp":
		if c.Push.AMQP.URL == "" {
			return errors.New("config: push.amqp.url is required for the amqp transport")
		}
	default:
		return fmt.Errorf("config: unknown push transport %q", c.Push.Transport)
	}

	def := Default().Polling
	c.Polling.Tables = clamp(c.Polling.Tables, def.Tables)
	c.Polling.Menu = clamp(c.Polling.Menu, def.Menu)
	c.Polling.Orders = clamp(c.Polling.Orders, def.Orders)
	c.Polling.OrderItems = clamp(c.Polling.OrderItems, def.OrderItems)

	switch {
	case c.Display.WaiterCommission < 0:
		c.Display.WaiterCommission = 0
	case c.Display.WaiterCommission > 1:
		c.Display.WaiterCommission = 1
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = Default().API.Timeout
	}
	return nil
}

func clamp(d, def time.Duration) time.Duration {
	switch {
	case d <= 0:
		return def
	case d < MinPollInterval:
		return MinPollInterval
	case d > MaxPollInterval:
		return MaxPollInterval
	}
	return d
}
