package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string
	SNSTopicARN    string // verification-completed events; empty disables publishing

	// Social platform API (profile bios and tweets).
	SocialAPIBaseURL string
	SocialAPIToken   string

	// OAuth collaborator (PKCE authorization-code flow).
	OAuthClientID     string
	OAuthAuthorizeURL string
	OAuthTokenURL     string
	OAuthRedirectURL  string

	// Attestation network.
	AttestationURL    string
	AttestationAPIKey string

	ChallengeTTL     time.Duration
	MaxAttempts      int
	RequiredHashtags []string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiryDays     int

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each store.
type DynamoTables struct {
	Challenges    string
	OAuthStates   string
	Verifications string
}

// JWTExpiry returns the configured token lifetime.
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryDays) * 24 * time.Hour
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Challenges:    getEnv("DYNAMO_TABLE_CHALLENGES", "verification_challenges"),
			OAuthStates:   getEnv("DYNAMO_TABLE_OAUTH_STATES", "oauth_states"),
			Verifications: getEnv("DYNAMO_TABLE_VERIFICATIONS", "verifications"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "verify-evidence"),
		SNSTopicARN:  getEnv("SNS_TOPIC_ARN", ""),

		SocialAPIBaseURL: getEnv("SOCIAL_API_BASE_URL", "https://api.twitter.com/2"),
		SocialAPIToken:   getEnv("SOCIAL_API_TOKEN", ""),

		OAuthClientID:     getEnv("OAUTH_CLIENT_ID", ""),
		OAuthAuthorizeURL: getEnv("OAUTH_AUTHORIZE_URL", "https://twitter.com/i/oauth2/authorize"),
		OAuthTokenURL:     getEnv("OAUTH_TOKEN_URL", "https://api.twitter.com/2/oauth2/token"),
		OAuthRedirectURL:  getEnv("OAUTH_REDIRECT_URL", "http://localhost:3000/v1/verifications/oauth/callback"),

		AttestationURL:    getEnv("ATTESTATION_URL", ""),
		AttestationAPIKey: getEnv("ATTESTATION_API_KEY", ""),

		ChallengeTTL:     time.Duration(getEnvInt("CHALLENGE_TTL_SECONDS", 600)) * time.Second,
		MaxAttempts:      getEnvInt("CHALLENGE_MAX_ATTEMPTS", 5),
		RequiredHashtags: strings.Split(getEnv("REQUIRED_HASHTAGS", "#FlareVerified,#AIETF"), ","),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiryDays:     getEnvInt("JWT_EXPIRY_DAYS", 7),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
