package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/aocinput/internal/cache"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/hashutil"
	"github.com/tailscale/hujson"
)

// SessionEnv is read when no session is given explicitly.
const SessionEnv = "AOC_SESSION"

type CacheBackend string

const (
	CacheBackendNone   CacheBackend = "none"
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendFile   CacheBackend = "file"
	CacheBackendRedis  CacheBackend = "redis"
	CacheBackendS3     CacheBackend = "s3"
)

func ParseCacheBackend(s string) (CacheBackend, bool) {
	switch CacheBackend(s) {
	case CacheBackendNone, CacheBackendMemory, CacheBackendFile, CacheBackendRedis, CacheBackendS3:
		return CacheBackend(s), true
	default:
		return "", false
	}
}

type Config struct {
	//===============
	// Session
	//===============
	// Value of the site's "session" cookie
	session string

	//===============
	// Fetch
	//===============
	// Scheme and host of the puzzle site, without trailing slash
	baseURL string
	// User agent sent with every request
	userAgent string
	// Timeout of a single HTTP request
	timeout time.Duration

	//===============
	// Output
	//===============
	// Directory in which the file backend writes day<N>.txt files
	outputDir string

	//===============
	// Cache
	//===============
	cacheBackend CacheBackend
	// What memory and redis backends do when an entry already exists
	conflictPolicy cache.ConflictPolicy

	redisAddr     string
	redisPassword string
	redisDB       int
	redisPrefix   string

	s3Bucket    string
	s3Region    string
	s3Endpoint  string
	s3Prefix    string
	s3AccessKey string
	s3SecretKey string

	//===============
	// Metadata
	//===============
	// Algorithm used to fingerprint stored inputs in log records
	hashAlgo hashutil.HashAlgo
}

type configDTO struct {
	Session        string `json:"session,omitempty"`
	BaseURL        string `json:"baseUrl,omitempty"`
	UserAgent      string `json:"userAgent,omitempty"`
	Timeout        string `json:"timeout,omitempty"`
	OutputDir      string `json:"outputDir,omitempty"`
	CacheBackend   string `json:"cacheBackend,omitempty"`
	ConflictPolicy string `json:"conflictPolicy,omitempty"`
	RedisAddr      string `json:"redisAddr,omitempty"`
	RedisPassword  string `json:"redisPassword,omitempty"`
	RedisDB        int    `json:"redisDb,omitempty"`
	RedisPrefix    string `json:"redisPrefix,omitempty"`
	S3Bucket       string `json:"s3Bucket,omitempty"`
	S3Region       string `json:"s3Region,omitempty"`
	S3Endpoint     string `json:"s3Endpoint,omitempty"`
	S3Prefix       string `json:"s3Prefix,omitempty"`
	S3AccessKey    string `json:"s3AccessKey,omitempty"`
	S3SecretKey    string `json:"s3SecretKey,omitempty"`
	HashAlgo       string `json:"hashAlgo,omitempty"`
}

func newConfigFromDTO(dto configDTO) (*Config, error) {
	builder := WithDefault()

	// Only override defaults with values that are present in the file
	if dto.Session != "" {
		builder.WithSession(dto.Session)
	}
	if dto.BaseURL != "" {
		builder.WithBaseURL(dto.BaseURL)
	}
	if dto.UserAgent != "" {
		builder.WithUserAgent(dto.UserAgent)
	}
	if dto.Timeout != "" {
		timeout, err := time.ParseDuration(dto.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: timeout: %s", ErrInvalidConfig, err.Error())
		}
		builder.WithTimeout(timeout)
	}
	if dto.OutputDir != "" {
		builder.WithOutputDir(dto.OutputDir)
	}
	if dto.CacheBackend != "" {
		backend, ok := ParseCacheBackend(dto.CacheBackend)
		if !ok {
			return nil, fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, dto.CacheBackend)
		}
		builder.WithCacheBackend(backend)
	}
	if dto.ConflictPolicy != "" {
		policy, ok := cache.ParseConflictPolicy(dto.ConflictPolicy)
		if !ok {
			return nil, fmt.Errorf("%w: unknown conflict policy %q", ErrInvalidConfig, dto.ConflictPolicy)
		}
		builder.WithConflictPolicy(policy)
	}
	if dto.RedisAddr != "" {
		builder.WithRedisAddr(dto.RedisAddr)
	}
	if dto.RedisPassword != "" {
		builder.WithRedisPassword(dto.RedisPassword)
	}
	// 0 is both the zero value and the default database
	builder.WithRedisDB(dto.RedisDB)
	if dto.RedisPrefix != "" {
		builder.WithRedisPrefix(dto.RedisPrefix)
	}
	if dto.S3Bucket != "" {
		builder.WithS3Bucket(dto.S3Bucket)
	}
	if dto.S3Region != "" {
		builder.WithS3Region(dto.S3Region)
	}
	if dto.S3Endpoint != "" {
		builder.WithS3Endpoint(dto.S3Endpoint)
	}
	if dto.S3Prefix != "" {
		builder.WithS3Prefix(dto.S3Prefix)
	}
	if dto.S3AccessKey != "" || dto.S3SecretKey != "" {
		builder.WithS3Credentials(dto.S3AccessKey, dto.S3SecretKey)
	}
	if dto.HashAlgo != "" {
		algo, err := hashutil.ParseHashAlgo(dto.HashAlgo)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
		}
		builder.WithHashAlgo(algo)
	}

	return builder, nil
}

// WithConfigFile loads a JSON config file and validates it.
func WithConfigFile(path string) (Config, error) {
	builder, err := LoadConfigFile(path)
	if err != nil {
		return Config{}, err
	}
	return builder.Build()
}

// LoadConfigFile reads a JSON config file into a builder on top of the
// defaults. Comments and trailing commas are accepted. Field values are
// checked, but the result is not validated as a whole until Build, so
// callers can still apply overrides such as command-line flags.
func LoadConfigFile(path string) (*Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	standardized, err := hujson.Standardize(configContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfgDTO := configDTO{}
	err = json.Unmarshal(standardized, &cfgDTO)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config builder holding the default values.
// The session is taken from AOC_SESSION when that variable is set.
func WithDefault() *Config {
	defaultConfig := Config{
		session:        os.Getenv(SessionEnv),
		baseURL:        "https://adventofcode.com",
		userAgent:      "github.com/rohmanhakim/aocinput",
		timeout:        30 * time.Second,
		outputDir:      ".",
		cacheBackend:   CacheBackendFile,
		conflictPolicy: cache.ConflictReject,
		redisAddr:      "localhost:6379",
		redisDB:        0,
		redisPrefix:    cache.DefaultRedisPrefix,
		s3Prefix:       cache.DefaultS3Prefix,
		hashAlgo:       hashutil.HashAlgoBLAKE3,
	}
	return &defaultConfig
}

func (c *Config) WithSession(session string) *Config {
	c.session = session
	return c
}

func (c *Config) WithBaseURL(baseURL string) *Config {
	c.baseURL = baseURL
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithCacheBackend(backend CacheBackend) *Config {
	c.cacheBackend = backend
	return c
}

func (c *Config) WithConflictPolicy(policy cache.ConflictPolicy) *Config {
	c.conflictPolicy = policy
	return c
}

func (c *Config) WithRedisAddr(addr string) *Config {
	c.redisAddr = addr
	return c
}

func (c *Config) WithRedisPassword(password string) *Config {
	c.redisPassword = password
	return c
}

func (c *Config) WithRedisDB(db int) *Config {
	c.redisDB = db
	return c
}

func (c *Config) WithRedisPrefix(prefix string) *Config {
	c.redisPrefix = prefix
	return c
}

func (c *Config) WithS3Bucket(bucket string) *Config {
	c.s3Bucket = bucket
	return c
}

func (c *Config) WithS3Region(region string) *Config {
	c.s3Region = region
	return c
}

func (c *Config) WithS3Endpoint(endpoint string) *Config {
	c.s3Endpoint = endpoint
	return c
}

func (c *Config) WithS3Prefix(prefix string) *Config {
	c.s3Prefix = prefix
	return c
}

func (c *Config) WithS3Credentials(accessKey, secretKey string) *Config {
	c.s3AccessKey = accessKey
	c.s3SecretKey = secretKey
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) Build() (Config, error) {
	if _, err := puzzle.ParseSession(c.session); err != nil {
		return Config{}, fmt.Errorf("%w: session is required (flag, config file or %s)", ErrInvalidConfig, SessionEnv)
	}
	if c.baseURL == "" {
		return Config{}, fmt.Errorf("%w: baseUrl cannot be empty", ErrInvalidConfig)
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if _, ok := ParseCacheBackend(string(c.cacheBackend)); !ok {
		return Config{}, fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, c.cacheBackend)
	}

	switch c.cacheBackend {
	case CacheBackendRedis:
		if c.redisAddr == "" {
			return Config{}, fmt.Errorf("%w: redisAddr is required for the redis backend", ErrInvalidConfig)
		}
	case CacheBackendS3:
		if c.s3Bucket == "" {
			return Config{}, fmt.Errorf("%w: s3Bucket is required for the s3 backend", ErrInvalidConfig)
		}
	}

	if (c.s3AccessKey == "") != (c.s3SecretKey == "") {
		return Config{}, fmt.Errorf("%w: s3AccessKey and s3SecretKey must be set together", ErrInvalidConfig)
	}

	return *c, nil
}

func (c Config) Session() puzzle.Session {
	return puzzle.Session(c.session)
}

func (c Config) BaseURL() string {
	return c.baseURL
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) CacheBackend() CacheBackend {
	return c.cacheBackend
}

func (c Config) ConflictPolicy() cache.ConflictPolicy {
	return c.conflictPolicy
}

func (c Config) RedisAddr() string {
	return c.redisAddr
}

func (c Config) RedisPassword() string {
	return c.redisPassword
}

func (c Config) RedisDB() int {
	return c.redisDB
}

func (c Config) RedisPrefix() string {
	return c.redisPrefix
}

func (c Config) S3Bucket() string {
	return c.s3Bucket
}

func (c Config) S3Region() string {
	return c.s3Region
}

func (c Config) S3Endpoint() string {
	return c.s3Endpoint
}

func (c Config) S3Prefix() string {
	return c.s3Prefix
}

func (c Config) S3Options() cache.S3Options {
	return cache.S3Options{
		Region:    c.s3Region,
		Endpoint:  c.s3Endpoint,
		AccessKey: c.s3AccessKey,
		SecretKey: c.s3SecretKey,
	}
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}
