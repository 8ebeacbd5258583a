package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const DefaultAppName = "link-gateway"

type Configuration struct {
	Database Database
	Logging  Logging
	Loaded   bool
	Hosts    Hosts
	Options  Options
	Clients  Clients `mapstructure:"clients"`
	Kafka    Kafka   `mapstructure:"kafka"`
	Metrics  Metrics
	Sentry   Sentry `mapstructure:"sentry"`
	Cron     Cron   `mapstructure:"cron"`
}

type Database struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	CACertPath        string        `mapstructure:"ca_cert_path"`
	PoolLimit         int           `mapstructure:"pool_limit"`
	SlowQueryDuration time.Duration `mapstructure:"slow_query_duration"`
}

type Logging struct {
	Level   string
	Console bool
	Color   bool
}

// Hosts is the hostname classification table used by the routing proxy.
// Loaded once at startup and handed to the proxy as immutable configuration.
type Hosts struct {
	App      []string `mapstructure:"app"`
	API      []string `mapstructure:"api"`
	Admin    []string `mapstructure:"admin"`
	Partners []string `mapstructure:"partners"`
	// ShortDomain is the platform's canonical short-link domain.
	ShortDomain string `mapstructure:"short_domain"`
}

type Clients struct {
	Hosting Hosting `mapstructure:"hosting"`
	Redis   Redis   `mapstructure:"redis"`
}

// Hosting is the external DNS/hosting provider API consumed by domain verification.
type Hosting struct {
	Server  string
	Token   string
	Timeout int
}

type Redis struct {
	Host       string
	Port       int
	Username   string
	Password   string
	DB         int
	Expiration time.Duration
}

type Kafka struct {
	Bootstrap struct {
		Servers string
	}
	Topics struct {
		Clicks    string
		Lifecycle string
	}
	Sasl struct {
		Username  string
		Password  string
		Mechanism string
		Protocol  string
	}
	Capath string
}

type Metrics struct {
	// Defines the path that the app should be configured to
	// listen on for metric traffic.
	Path string `mapstructure:"path"`

	// Defines the metrics port that the app should be configured to listen on for
	// metric traffic.
	Port int `mapstructure:"port"`
}

type Sentry struct {
	Dsn string
}

type Cron struct {
	// Secret is the shared HMAC key scheduled trigger requests are signed with.
	Secret string `mapstructure:"secret"`
}

type Options struct {
	SweepBatchSize      int `mapstructure:"sweep_batch_size"`
	SweepWorkerCount    int `mapstructure:"sweep_worker_count"`
	ClickBufferSize     int `mapstructure:"click_buffer_size"`
	FirstWarningDays    int `mapstructure:"first_warning_days"`
	FinalWarningDays    int `mapstructure:"final_warning_days"`
	DeleteAfterDays     int `mapstructure:"delete_after_days"`
	HostingTimeLimitSec int `mapstructure:"hosting_api_time_limit_sec"`
}

const (
	DefaultSweepBatchSize      = 100
	DefaultSweepWorkerCount    = 10
	DefaultClickBufferSize     = 1024
	DefaultFirstWarningDays    = 14
	DefaultFinalWarningDays    = 28
	DefaultDeleteAfterDays     = 30
	DefaultHostingTimeLimitSec = 30
)

const (
	HeaderRequestId     = "x-request-id"
	RequestIdLoggingKey = "request_id"
)

var LoadedConfig Configuration

func Get() *Configuration {
	if !LoadedConfig.Loaded {
		Load()
	}
	return &LoadedConfig
}

func RedisUrl() string {
	return fmt.Sprintf("%s:%d", Get().Clients.Redis.Host, Get().Clients.Redis.Port)
}

func readConfigFile(v *viper.Viper) {
	v.SetConfigName("config.yaml")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs/")
	v.AddConfigPath("../../configs/")
	v.AddConfigPath("../../../configs")

	if path, ok := os.LookupEnv("CONFIG_PATH"); ok {
		v.AddConfigPath(path)
	}
	err := v.ReadInConfig()
	if err != nil {
		log.Logger.Warn().Msgf("config.yaml file not loaded: %s", err.Error())
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Loaded", true)
	// In viper you have to set defaults, otherwise loading from ENV doesn't work
	//   without a config file present
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.pool_limit", 20)
	v.SetDefault("database.slow_query_duration", 2*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", false)
	v.SetDefault("logging.color", false)

	v.SetDefault("hosts.app", []string{"app.linkgw.io", "preview.linkgw.io"})
	v.SetDefault("hosts.api", []string{"api.linkgw.io"})
	v.SetDefault("hosts.admin", []string{"admin.linkgw.io"})
	v.SetDefault("hosts.partners", []string{"partners.linkgw.io"})
	v.SetDefault("hosts.short_domain", "lgw.sh")

	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.port", 9000)

	v.SetDefault("clients.hosting.server", "")
	v.SetDefault("clients.hosting.token", "")
	v.SetDefault("clients.hosting.timeout", DefaultHostingTimeLimitSec)

	v.SetDefault("clients.redis.host", "")
	v.SetDefault("clients.redis.port", "")
	v.SetDefault("clients.redis.username", "")
	v.SetDefault("clients.redis.password", "")
	v.SetDefault("clients.redis.db", 0)
	v.SetDefault("clients.redis.expiration", 5*time.Minute)

	v.SetDefault("kafka.bootstrap.servers", "")
	v.SetDefault("kafka.topics.clicks", "platform.links.clicks")
	v.SetDefault("kafka.topics.lifecycle", "platform.domains.lifecycle")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("cron.secret", "")

	v.SetDefault("options.sweep_batch_size", DefaultSweepBatchSize)
	v.SetDefault("options.sweep_worker_count", DefaultSweepWorkerCount)
	v.SetDefault("options.click_buffer_size", DefaultClickBufferSize)
	v.SetDefault("options.first_warning_days", DefaultFirstWarningDays)
	v.SetDefault("options.final_warning_days", DefaultFinalWarningDays)
	v.SetDefault("options.delete_after_days", DefaultDeleteAfterDays)
	v.SetDefault("options.hosting_api_time_limit_sec", DefaultHostingTimeLimitSec)
}

func Load() {
	v := viper.New()

	readConfigFile(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err := v.Unmarshal(&LoadedConfig)
	if err != nil {
		panic(err)
	}

	if LoadedConfig.Clients.Redis.Host == "" {
		log.Warn().Msg("Link caching is disabled.")
	}
	if LoadedConfig.Cron.Secret == "" {
		log.Warn().Msg("No cron secret configured, scheduled triggers will be rejected.")
	}
}

// SkipLogging keeps health checks out of the request log.
func SkipLogging(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/ping" || path == "/ping/"
}

func ProgramString() string {
	return strings.Join(os.Args, " ")
}

func CustomHTTPErrorHandler(err error, c echo.Context) {
	var code int
	var message ce.ErrorResponse

	if c.Response().Committed {
		c.Logger().Error(err)
		return
	}

	if errResp, ok := err.(ce.ErrorResponse); ok {
		code = ce.GetGeneralResponseCode(errResp)
		message = errResp
	} else if he, ok := err.(*echo.HTTPError); ok {
		errResp := ce.NewErrorResponseFromEchoError(he)
		code = errResp.Errors[0].Status
		message = errResp
	} else {
		code = http.StatusInternalServerError
		message = ce.NewErrorResponse(code, "", http.StatusText(http.StatusInternalServerError))
	}

	// Send response
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, message)
	}
	if err != nil {
		log.Logger.Error().Err(err)
	}
}
