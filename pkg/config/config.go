package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/pta-archive"
	ConfigFileName    = "archive.yml"

	DefaultPort        = 5006
	DefaultBindAddress = "0.0.0.0"
	DefaultDBPort      = 1521
	DefaultDMSLibrary  = "RTA_MAIN"
	DefaultSessionDays = 60
)

// Database holds the Oracle connection settings.
type Database struct {
	Host        string `yaml:"host" json:"host" validate:"required"`
	Port        int    `yaml:"port" json:"port" validate:"min=1,max=65535"`
	ServiceName string `yaml:"service_name" json:"service_name" validate:"required"`
	Username    string `yaml:"username" json:"username" validate:"required"`
	Password    string `yaml:"-" json:"-" validate:"required"`
}

// DMS holds the connection settings for the document management system.
type DMS struct {
	// WSDLURL is the WSDL address of the DMSvr service. The service
	// endpoint is this URL with any ?wsdl / ?singleWsdl suffix removed.
	WSDLURL      string `yaml:"wsdl_url" json:"wsdl_url" validate:"required,url"`
	User         string `yaml:"user" json:"user" validate:"required"`
	Password     string `yaml:"-" json:"-" validate:"required"`
	Library      string `yaml:"library" json:"library" validate:"required"`
	LoginContext string `yaml:"login_context" json:"login_context" validate:"required"`
}

// Session holds the settings for the HTTP session cookies.
type Session struct {
	SecretKey    string `yaml:"-" json:"-" validate:"required,min=16"`
	LifetimeDays int    `yaml:"lifetime_days" json:"lifetime_days" validate:"min=1"`
	SecureCookie bool   `yaml:"secure_cookie" json:"secure_cookie"`
}

// Config holds all settings for the archiving backend.
type Config struct {
	Port        int    `yaml:"port" json:"port" validate:"min=1,max=65535"`
	BindAddress string `yaml:"bind_address" json:"bind_address" validate:"required"`
	LogLevel    string `yaml:"log_level" json:"log_level" validate:"oneof=trace debug info warn error"`

	// CORSAllowedOrigins is the list of origins allowed to call the API
	// with credentials. "*" echoes the request origin.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" json:"cors_allowed_origins"`

	Database Database `yaml:"database" json:"database"`
	DMS      DMS      `yaml:"dms" json:"dms"`
	Session  Session  `yaml:"session" json:"session"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		Port:               DefaultPort,
		BindAddress:        DefaultBindAddress,
		LogLevel:           "info",
		CORSAllowedOrigins: []string{"*"},
		Database: Database{
			Port: DefaultDBPort,
		},
		DMS: DMS{
			Library:      DefaultDMSLibrary,
			LoginContext: DefaultDMSLibrary,
		},
		Session: Session{
			LifetimeDays: DefaultSessionDays,
		},
		sources: make(map[string]string),
	}
}

// Load loads configuration from the optional config file and environment
// variables. Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("ARCHIVE_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"port", "bind_address", "log_level", "cors_allowed_origins",
		"db_host", "db_port", "db_service_name", "db_username", "db_password",
		"wsdl_url", "dms_user", "dms_password", "dms_library", "dms_login_context",
		"secret_key", "session_lifetime_days", "session_secure_cookie",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if len(file.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = file.CORSAllowedOrigins
		c.sources["cors_allowed_origins"] = "file"
	}
	if file.Database.Host != "" {
		c.Database.Host = file.Database.Host
		c.sources["db_host"] = "file"
	}
	if file.Database.Port != 0 {
		c.Database.Port = file.Database.Port
		c.sources["db_port"] = "file"
	}
	if file.Database.ServiceName != "" {
		c.Database.ServiceName = file.Database.ServiceName
		c.sources["db_service_name"] = "file"
	}
	if file.Database.Username != "" {
		c.Database.Username = file.Database.Username
		c.sources["db_username"] = "file"
	}
	if file.DMS.WSDLURL != "" {
		c.DMS.WSDLURL = file.DMS.WSDLURL
		c.sources["wsdl_url"] = "file"
	}
	if file.DMS.User != "" {
		c.DMS.User = file.DMS.User
		c.sources["dms_user"] = "file"
	}
	if file.DMS.Library != "" {
		c.DMS.Library = file.DMS.Library
		c.sources["dms_library"] = "file"
	}
	if file.DMS.LoginContext != "" {
		c.DMS.LoginContext = file.DMS.LoginContext
		c.sources["dms_login_context"] = "file"
	}
	if file.Session.LifetimeDays != 0 {
		c.Session.LifetimeDays = file.Session.LifetimeDays
		c.sources["session_lifetime_days"] = "file"
	}
	if file.Session.SecureCookie {
		c.Session.SecureCookie = true
		c.sources["session_secure_cookie"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	// HTTP_PLATFORM_PORT is set by the IIS HttpPlatformHandler the original
	// deployment runs behind; it wins over PORT when both are present.
	if val := os.Getenv("PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("HTTP_PLATFORM_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(val)
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORSAllowedOrigins = splitAndTrim(val)
		c.sources["cors_allowed_origins"] = "environment"
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
		c.sources["db_host"] = "environment"
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Database.Port = i
			c.sources["db_port"] = "environment"
		}
	}
	if val := os.Getenv("DB_SERVICE_NAME"); val != "" {
		c.Database.ServiceName = val
		c.sources["db_service_name"] = "environment"
	}
	if val := os.Getenv("DB_USERNAME"); val != "" {
		c.Database.Username = val
		c.sources["db_username"] = "environment"
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
		c.sources["db_password"] = "environment"
	}
	if val := os.Getenv("WSDL_URL"); val != "" {
		c.DMS.WSDLURL = val
		c.sources["wsdl_url"] = "environment"
	}
	if val := os.Getenv("DMS_USER"); val != "" {
		c.DMS.User = val
		c.sources["dms_user"] = "environment"
	}
	if val := os.Getenv("DMS_PASSWORD"); val != "" {
		c.DMS.Password = val
		c.sources["dms_password"] = "environment"
	}
	if val := os.Getenv("DMS_LIBRARY"); val != "" {
		c.DMS.Library = val
		c.sources["dms_library"] = "environment"
	}
	if val := os.Getenv("DMS_LOGIN_CONTEXT"); val != "" {
		c.DMS.LoginContext = val
		c.sources["dms_login_context"] = "environment"
	}
	if val := os.Getenv("SECRET_KEY"); val != "" {
		c.Session.SecretKey = val
		c.sources["secret_key"] = "environment"
	}
	if val := os.Getenv("SESSION_LIFETIME_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Session.LifetimeDays = i
			c.sources["session_lifetime_days"] = "environment"
		}
	}
	if val := os.Getenv("SESSION_SECURE_COOKIE"); val != "" {
		c.Session.SecureCookie = val == "true" || val == "1"
		c.sources["session_secure_cookie"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionLifetime returns the session lifetime as a duration.
func (c *Config) SessionLifetime() time.Duration {
	return time.Duration(c.Session.LifetimeDays) * 24 * time.Hour
}

// ListenAddr returns the host:port the server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

// Validate validates the configuration. Credentials are checked for
// presence only, never echoed back.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("invalid configuration: %s failed on %q", attributeNameFor(first.Namespace()), first.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// attributeNameFor maps validator namespaces (Config.Database.Host) to the
// environment names operators know (DB_HOST).
func attributeNameFor(namespace string) string {
	switch namespace {
	case "Config.Database.Host":
		return "DB_HOST"
	case "Config.Database.Port":
		return "DB_PORT"
	case "Config.Database.ServiceName":
		return "DB_SERVICE_NAME"
	case "Config.Database.Username":
		return "DB_USERNAME"
	case "Config.Database.Password":
		return "DB_PASSWORD"
	case "Config.DMS.WSDLURL":
		return "WSDL_URL"
	case "Config.DMS.User":
		return "DMS_USER"
	case "Config.DMS.Password":
		return "DMS_PASSWORD"
	case "Config.DMS.Library":
		return "DMS_LIBRARY"
	case "Config.DMS.LoginContext":
		return "DMS_LOGIN_CONTEXT"
	case "Config.Session.SecretKey":
		return "SECRET_KEY"
	case "Config.Session.LifetimeDays":
		return "SESSION_LIFETIME_DAYS"
	case "Config.Port":
		return "PORT"
	case "Config.BindAddress":
		return "BIND_ADDRESS"
	case "Config.LogLevel":
		return "LOG_LEVEL"
	default:
		return namespace
	}
}

// Attributes returns all configuration attributes with their values and
// sources. Secrets are masked.
func (c *Config) Attributes() []Attribute {
	mask := func(v string) string {
		if v == "" {
			return ""
		}
		return "********"
	}
	return []Attribute{
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "cors_allowed_origins", Value: strings.Join(c.CORSAllowedOrigins, ","), Source: c.Source("cors_allowed_origins")},
		{Name: "db_host", Value: c.Database.Host, Source: c.Source("db_host")},
		{Name: "db_port", Value: strconv.Itoa(c.Database.Port), Source: c.Source("db_port")},
		{Name: "db_service_name", Value: c.Database.ServiceName, Source: c.Source("db_service_name")},
		{Name: "db_username", Value: c.Database.Username, Source: c.Source("db_username")},
		{Name: "db_password", Value: mask(c.Database.Password), Source: c.Source("db_password")},
		{Name: "wsdl_url", Value: c.DMS.WSDLURL, Source: c.Source("wsdl_url")},
		{Name: "dms_user", Value: c.DMS.User, Source: c.Source("dms_user")},
		{Name: "dms_password", Value: mask(c.DMS.Password), Source: c.Source("dms_password")},
		{Name: "dms_library", Value: c.DMS.Library, Source: c.Source("dms_library")},
		{Name: "dms_login_context", Value: c.DMS.LoginContext, Source: c.Source("dms_login_context")},
		{Name: "secret_key", Value: mask(c.Session.SecretKey), Source: c.Source("secret_key")},
		{Name: "session_lifetime_days", Value: strconv.Itoa(c.Session.LifetimeDays), Source: c.Source("session_lifetime_days")},
		{Name: "session_secure_cookie", Value: strconv.FormatBool(c.Session.SecureCookie), Source: c.Source("session_secure_cookie")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-45s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-45s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-45s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
