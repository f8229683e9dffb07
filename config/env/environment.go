package env

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/meetnear/broadcast-service/pkg/helper"
)

// Env model
type Env struct {
	RootApp, ServiceName string
	// Env on application
	Environment       string
	LoadConfigTimeout time.Duration

	// UseREST env
	UseREST bool
	// UseKafkaConsumer env
	UseKafkaConsumer bool
	// UseCronScheduler env
	UseCronScheduler bool

	DebugMode bool

	// HTTPPort config
	HTTPPort uint16

	// BasicAuthUsername config
	BasicAuthUsername string
	// BasicAuthPassword config
	BasicAuthPassword string

	// JWTSecretKey config for sign and validate bearer token
	JWTSecretKey string
	// TokenExpired config for bearer token lifetime
	TokenExpired time.Duration

	// JaegerTracingHost env
	JaegerTracingHost string
	// JaegerMaxPacketSize env
	JaegerMaxPacketSize int

	// Kafka broker environment
	Kafka struct {
		Brokers       []string
		ClientVersion string
		ClientID      string
		ConsumerGroup string
	}

	// MaxGoroutines env for goroutine semaphore
	MaxGoroutines int

	// Database environment
	DbMongoWriteHost, DbMongoReadHost string

	// BroadcastSweepInterval config for expiration scheduler
	BroadcastSweepInterval time.Duration
	// DefaultSearchRadiusMeters config for proximity query when radius param is empty
	DefaultSearchRadiusMeters float64

	StartAt string
}

var env Env

// BaseEnv get global basic environment
func BaseEnv() Env {
	return env
}

// SetEnv set env for mocking data env
func SetEnv(newEnv Env) {
	env = newEnv
}

// Load environment
func Load(serviceName string) {
	var ok bool
	env.ServiceName = serviceName

	// load main .env and additional .env in app
	err := godotenv.Load(os.Getenv(helper.WORKDIR) + ".env")
	if err != nil {
		log.Printf("Warning: load env, %v", err)
	}

	mErrs := helper.NewMultiError()

	// ------------------------------------
	env.UseREST = parseBool("USE_REST")
	env.UseKafkaConsumer = parseBool("USE_KAFKA_CONSUMER")
	env.UseCronScheduler = parseBool("USE_CRON_SCHEDULER")

	if env.LoadConfigTimeout, err = time.ParseDuration(os.Getenv("LOAD_CONFIG_TIMEOUT")); err != nil {
		env.LoadConfigTimeout = 10 * time.Second // default value
	}

	// ------------------------------------
	if env.UseREST {
		httpPort, _ := strconv.Atoi(os.Getenv("HTTP_PORT"))
		if httpPort <= 0 {
			httpPort = 8080
		}
		env.HTTPPort = uint16(httpPort)
	}

	// ------------------------------------
	env.Environment = os.Getenv("ENVIRONMENT")
	env.DebugMode, err = strconv.ParseBool(os.Getenv("DEBUG_MODE"))
	if err != nil {
		env.DebugMode = true
	}

	env.BasicAuthUsername, ok = os.LookupEnv("BASIC_AUTH_USERNAME")
	if !ok {
		mErrs.Append("BASIC_AUTH_USERNAME", errors.New("missing BASIC_AUTH_USERNAME environment"))
	}
	env.BasicAuthPassword, ok = os.LookupEnv("BASIC_AUTH_PASS")
	if !ok {
		mErrs.Append("BASIC_AUTH_PASS", errors.New("missing BASIC_AUTH_PASS environment"))
	}

	env.JWTSecretKey, ok = os.LookupEnv("JWT_SECRET_KEY")
	if !ok {
		mErrs.Append("JWT_SECRET_KEY", errors.New("missing JWT_SECRET_KEY environment"))
	}
	if env.TokenExpired, err = time.ParseDuration(os.Getenv("TOKEN_EXPIRED")); err != nil {
		env.TokenExpired = 1 * time.Hour // default value
	}

	env.JaegerTracingHost = os.Getenv("JAEGER_TRACING_HOST")
	jaegerMaxPacketSize, err := strconv.Atoi(os.Getenv("JAEGER_MAX_PACKET_SIZE"))
	if err != nil || jaegerMaxPacketSize < 0 {
		jaegerMaxPacketSize = 65000 // default max packet size of UDP
	}
	env.JaegerMaxPacketSize = jaegerMaxPacketSize * int(helper.Byte)

	// kafka environment
	parseBrokerEnv(mErrs)

	maxGoroutines, err := strconv.Atoi(os.Getenv("MAX_GOROUTINES"))
	if err != nil || maxGoroutines <= 0 {
		maxGoroutines = 10
	}
	env.MaxGoroutines = maxGoroutines

	// Parse database environment
	parseDatabaseEnv(mErrs)

	if env.BroadcastSweepInterval, err = time.ParseDuration(os.Getenv("BROADCAST_SWEEP_INTERVAL")); err != nil {
		env.BroadcastSweepInterval = 5 * time.Minute // default value
	}
	radius, err := strconv.ParseFloat(os.Getenv("DEFAULT_SEARCH_RADIUS_METERS"), 64)
	if err != nil || radius <= 0 {
		radius = 5000
	}
	env.DefaultSearchRadiusMeters = radius

	env.StartAt = time.Now().Format(time.RFC3339)

	if mErrs.HasError() {
		panic("Basic environment error: \n" + mErrs.Error())
	}
}

func parseBool(envName string) bool {
	b, _ := strconv.ParseBool(os.Getenv(envName))
	return b
}

func parseBrokerEnv(mErrs helper.MultiError) {
	if !env.UseKafkaConsumer {
		if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
			env.Kafka.Brokers = strings.Split(brokers, ",")
		}
	} else {
		kafkaBrokers, ok := os.LookupEnv("KAFKA_BROKERS")
		if !ok {
			mErrs.Append("KAFKA_BROKERS", errors.New("missing KAFKA_BROKERS environment"))
		}
		env.Kafka.Brokers = strings.Split(kafkaBrokers, ",")

		env.Kafka.ConsumerGroup, ok = os.LookupEnv("KAFKA_CONSUMER_GROUP")
		if !ok {
			mErrs.Append("KAFKA_CONSUMER_GROUP", errors.New("missing KAFKA_CONSUMER_GROUP environment"))
		}
	}

	env.Kafka.ClientVersion = os.Getenv("KAFKA_CLIENT_VERSION")
	env.Kafka.ClientID = os.Getenv("KAFKA_CLIENT_ID")
	if env.Kafka.ClientID == "" {
		env.Kafka.ClientID = env.ServiceName
	}
}

func parseDatabaseEnv(mErrs helper.MultiError) {
	var ok bool
	env.DbMongoWriteHost, ok = os.LookupEnv("MONGODB_HOST_WRITE")
	if !ok {
		mErrs.Append("MONGODB_HOST_WRITE", errors.New("missing MONGODB_HOST_WRITE environment"))
	}
	env.DbMongoReadHost = os.Getenv("MONGODB_HOST_READ")
}
