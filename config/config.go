package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Peer schemes understood by the transport layer
const (
	SchemeUDP = "udp"
	SchemeWS  = "ws"
	SchemeWSS = "wss"
)

// DefaultPeer is the endpoint position updates are sent to when none is configured
const DefaultPeer = "udp://127.0.0.1:34000"

// Config holds the runtime configuration of the viewer.
type Config struct {
	Peer         string        `toml:"peer" env:"CUBEVIEW_PEER"`
	Width        int           `toml:"width" env:"CUBEVIEW_WIDTH"`
	Height       int           `toml:"height" env:"CUBEVIEW_HEIGHT"`
	Title        string        `toml:"title" env:"CUBEVIEW_TITLE"`
	LogLevel     string        `toml:"log_level" env:"CUBEVIEW_LOG_LEVEL"`
	QueueSize    int           `toml:"queue_size" env:"CUBEVIEW_QUEUE_SIZE"`
	WriteTimeout time.Duration `toml:"-" env:"CUBEVIEW_WRITE_TIMEOUT"`
	WASD         bool          `toml:"wasd" env:"CUBEVIEW_WASD"`
	TPS          int           `toml:"tps" env:"CUBEVIEW_TPS"`

	// Headless runs the frame loop without a window, fed by Script.
	Headless bool   `toml:"-"`
	Script   string `toml:"-"`
}

// Default returns the built-in configuration
func Default() *Config {
	width, height := GetWindowSize()
	return &Config{
		Peer:         DefaultPeer,
		Width:        width,
		Height:       height,
		Title:        WindowTitle,
		LogLevel:     "info",
		QueueSize:    64,
		WriteTimeout: 250 * time.Millisecond,
		TPS:          DefaultTPS,
	}
}

// ConfigurationError reports an invalid startup setting. It is fatal: the
// viewer never enters its frame loop with a bad configuration.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Load builds the configuration from defaults, an optional TOML file,
// the environment and command-line flags, in increasing precedence.
func Load(args []string) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("cubeview", flag.ContinueOnError)
	var (
		path     = fs.String("config", "", "Path to a TOML configuration file.")
		peer     = fs.String("peer", cfg.Peer, "Peer endpoint (udp://host:port, ws://host:port/path or host:port).")
		width    = fs.Int("width", cfg.Width, "Initial window width.")
		height   = fs.Int("height", cfg.Height, "Initial window height.")
		title    = fs.String("title", cfg.Title, "Window title.")
		logLevel = fs.String("log-level", cfg.LogLevel, "Log level: debug, info, warn or error.")
		queue    = fs.Int("queue", cfg.QueueSize, "Outgoing position update queue size.")
		wasd     = fs.Bool("wasd", cfg.WASD, "Also move the cube with W, A, S and D.")
		tps      = fs.Int("tps", cfg.TPS, "Frames per second.")
		headless = fs.Bool("headless", false, "Run without a window.")
		script   = fs.String("script", "", "Scripted input for headless mode, e.g. \"right,up;resize:640x480;escape\".")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *path != "" {
		if err := cfg.loadFile(*path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Explicit flags win over everything else
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "peer":
			cfg.Peer = *peer
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "title":
			cfg.Title = *title
		case "log-level":
			cfg.LogLevel = *logLevel
		case "queue":
			cfg.QueueSize = *queue
		case "wasd":
			cfg.WASD = *wasd
		case "tps":
			cfg.TPS = *tps
		}
	})
	cfg.Headless = *headless
	cfg.Script = *script

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays the keys present in a TOML file onto the configuration
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

// Validate checks every setting the viewer depends on at startup
func (c *Config) Validate() error {
	if _, err := ParsePeer(c.Peer); err != nil {
		return err
	}
	if c.Width <= 0 {
		return &ConfigurationError{Field: "width", Value: strconv.Itoa(c.Width), Err: errors.New("must be positive")}
	}
	if c.Height <= 0 {
		return &ConfigurationError{Field: "height", Value: strconv.Itoa(c.Height), Err: errors.New("must be positive")}
	}
	if c.QueueSize <= 0 {
		return &ConfigurationError{Field: "queue size", Value: strconv.Itoa(c.QueueSize), Err: errors.New("must be positive")}
	}
	if c.TPS <= 0 {
		return &ConfigurationError{Field: "tps", Value: strconv.Itoa(c.TPS), Err: errors.New("must be positive")}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Peer is a validated remote endpoint.
type Peer struct {
	Scheme string
	// Address is host:port
	Address string
	// URL is the full WebSocket URL; empty for UDP peers.
	URL string
}

func (p Peer) String() string {
	if p.URL != "" {
		return p.URL
	}
	return p.Scheme + "://" + p.Address
}

// ParsePeer validates a peer endpoint. A bare host:port means UDP.
func ParsePeer(raw string) (Peer, error) {
	fail := func(err error) (Peer, error) {
		return Peer{}, &ConfigurationError{Field: "peer address", Value: raw, Err: err}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fail(errors.New("empty"))
	}
	if !strings.Contains(raw, "://") {
		raw = SchemeUDP + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fail(err)
	}

	switch u.Scheme {
	case SchemeUDP, SchemeWS, SchemeWSS:
	default:
		return fail(fmt.Errorf("unsupported scheme %q", u.Scheme))
	}

	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		return fail(err)
	}
	if host == "" {
		return fail(errors.New("missing host"))
	}
	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return fail(fmt.Errorf("bad port %q", port))
	}

	p := Peer{Scheme: u.Scheme, Address: u.Host}
	if u.Scheme != SchemeUDP {
		p.URL = u.String()
	}
	return p, nil
}

// ParseLevel maps a level name onto a slog level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, &ConfigurationError{Field: "log level", Value: name, Err: err}
	}
	return level, nil
}
