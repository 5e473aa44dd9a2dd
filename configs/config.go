package config

import "os"

type Config struct {
	InstagramClientID     string
	InstagramClientSecret string
	FacebookClientID      string
	FacebookClientSecret  string
	LinkedinClientID      string
	LinkedinClientSecret  string
	TiktokClientKey       string
	TiktokClientSecret    string
	OAuthRedirectURI      string
	OpenAIAPIKey          string
	PostgresURI           string
	FrontendURL           string
	EncryptionKey         string
	SecretKey             string
	CookieName            string
}

func LoadConfig() *Config {
	return &Config{
		InstagramClientID:     getEnv("INSTAGRAM_CLIENT_ID", ""),
		InstagramClientSecret: getEnv("INSTAGRAM_CLIENT_SECRET", ""),
		FacebookClientID:      getEnv("FACEBOOK_CLIENT_ID", ""),
		FacebookClientSecret:  getEnv("FACEBOOK_CLIENT_SECRET", ""),
		LinkedinClientID:      getEnv("LINKEDIN_CLIENT_ID", ""),
		LinkedinClientSecret:  getEnv("LINKEDIN_CLIENT_SECRET", ""),
		TiktokClientKey:       getEnv("TIKTOK_CLIENT_KEY", ""),
		TiktokClientSecret:    getEnv("TIKTOK_CLIENT_SECRET", ""),
		OAuthRedirectURI:      getEnv("OAUTH_REDIRECT_URI", ""),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		PostgresURI:           getEnv("POSTGRES_URI", ""),
		FrontendURL:           getEnv("FRONTEND_URL", "http://localhost:5173"),
		EncryptionKey:         getEnv("ENCRYPTION_KEY", ""),
		SecretKey:             getEnv("SECRET_KEY", ""),
		CookieName:            getEnv("COOKIE_NAME", "lyra_session"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
