package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net"
	"os"
	"path/filepath"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/kyu49/euonymus/internal/errors"
	"github.com/kyu49/euonymus/pkg/binding"
)

const (
	// DefaultName is the application name used for the page title.
	DefaultName = "euonymus"

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultBufferSize is the default websocket read and write buffer size.
	DefaultBufferSize = 1024

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "euonymus"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "github.com/kyu49/euonymus"

	// DefaultPublishKey is the default object key for published snapshots.
	DefaultPublishKey = "index.html"
)

// Config is the complete euonymus configuration.
type Config struct {
	// Name is the application name.
	Name string `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`

	Binding BindingConfig `json:"binding" toml:"binding" yaml:"binding"`
	Server  ServerConfig  `json:"server" toml:"server" yaml:"server"`
	Publish PublishConfig `json:"publish" toml:"publish" yaml:"publish"`
	Metrics MetricsConfig `json:"metrics" toml:"metrics" yaml:"metrics"`
	Tracing TracingConfig `json:"tracing" toml:"tracing" yaml:"tracing"`

	// path is where the config was loaded from.
	path string
}

// BindingConfig controls cell behaviour.
type BindingConfig struct {
	// OverrideWithState makes a new binding adopt the element's current
	// state instead of pushing the cell's value into the element.
	OverrideWithState bool `json:"overrideWithState" toml:"override_with_state" yaml:"override_with_state"`

	// MaxDepth bounds nested Set calls caused by observers.
	MaxDepth int `json:"maxDepth,omitempty" toml:"max_depth" yaml:"max_depth,omitempty"`
}

// ServerConfig contains live server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" toml:"host" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" toml:"port" yaml:"port,omitempty"`

	// ReadBufferSize and WriteBufferSize size the websocket buffers.
	ReadBufferSize  int `json:"readBufferSize,omitempty" toml:"read_buffer_size" yaml:"read_buffer_size,omitempty"`
	WriteBufferSize int `json:"writeBufferSize,omitempty" toml:"write_buffer_size" yaml:"write_buffer_size,omitempty"`
}

// PublishConfig names the object store location for rendered snapshots.
type PublishConfig struct {
	Bucket string `json:"bucket,omitempty" toml:"bucket" yaml:"bucket,omitempty"`
	Key    string `json:"key,omitempty" toml:"key" yaml:"key,omitempty"`
	Region string `json:"region,omitempty" toml:"region" yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty" toml:"endpoint" yaml:"endpoint,omitempty"`
}

// MetricsConfig controls the Prometheus recorder and /metrics endpoint.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" toml:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace,omitempty" toml:"namespace" yaml:"namespace,omitempty"`
}

// TracingConfig controls OpenTelemetry spans around session events.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" toml:"enabled" yaml:"enabled"`
	TracerName string `json:"tracerName,omitempty" toml:"tracer_name" yaml:"tracer_name,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration file at path. The format follows the
// extension: .json, .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E020").
				WithDetail("No configuration file at " + path).
				WithSuggestion("Pass --config with an existing file or omit it to use defaults")
		}
		return nil, errors.New("E020").Wrap(err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) && e.Code == "E021" {
			e.WithLocation(path, errorLine(err, data))
		}
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes data in the format named by ext (".json", ".toml", ".yaml"
// or ".yml") over the defaults and validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := New()
	// Decoders overwrite only the fields present; metrics default to on.
	var err error
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case ".toml":
		var md toml.MetaData
		md, err = toml.Decode(string(data), cfg)
		if err == nil {
			if keys := md.Undecoded(); len(keys) > 0 {
				return nil, errors.New("E021").
					WithDetail("Unknown key " + keys[0].String())
			}
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if stderrors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, errors.New("E023").
			WithDetail("Unsupported config extension " + strconv.Quote(ext))
	}
	if err != nil {
		return nil, errors.New("E021").Wrap(err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in zero values.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Binding.MaxDepth == 0 {
		c.Binding.MaxDepth = binding.DefaultMaxDepth
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadBufferSize == 0 {
		c.Server.ReadBufferSize = DefaultBufferSize
	}
	if c.Server.WriteBufferSize == 0 {
		c.Server.WriteBufferSize = DefaultBufferSize
	}
	if c.Publish.Key == "" {
		c.Publish.Key = DefaultPublishKey
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Binding.MaxDepth < 1:
		return errors.New("E022").
			WithSuggestion("binding.max_depth must be at least 1")
	case c.Server.Port < 1 || c.Server.Port > 65535:
		return errors.New("E022").
			WithSuggestion("server.port must be between 1 and 65535")
	case c.Server.ReadBufferSize < 0 || c.Server.WriteBufferSize < 0:
		return errors.New("E022").
			WithSuggestion("server buffer sizes cannot be negative")
	case !namespacePattern.MatchString(c.Metrics.Namespace):
		return errors.New("E022").
			WithSuggestion("metrics.namespace must be a valid Prometheus name")
	}
	return nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Address returns host:port for the server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// BindingConfig converts the binding section for cell construction.
func (c *Config) BindingConfig() binding.Config {
	return binding.Config{
		OverrideWithState: c.Binding.OverrideWithState,
		MaxDepth:          c.Binding.MaxDepth,
	}
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// errorLine finds the 1-based line a decode error refers to, or 0.
func errorLine(err error, data []byte) int {
	var perr toml.ParseError
	if stderrors.As(err, &perr) {
		return perr.Position.Line
	}
	var serr *json.SyntaxError
	if stderrors.As(err, &serr) {
		return bytes.Count(data[:min(int(serr.Offset), len(data))], []byte("\n")) + 1
	}
	var terr *json.UnmarshalTypeError
	if stderrors.As(err, &terr) {
		return bytes.Count(data[:min(int(terr.Offset), len(data))], []byte("\n")) + 1
	}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return 0
}
