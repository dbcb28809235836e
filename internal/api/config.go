package api

// Config carries everything Start needs to serve the API.
type Config struct {
	Host              string
	Port              int
	DataDir           string // Bible version files
	CommentaryDir     string // commentary JSON, optional
	DefaultVersion    string // served when a request names none
	RateLimitRequests int    // per minute, 0 disables limiting
	RateLimitBurst    int
	Auth              AuthConfig
	TLS               TLSConfig
	AllowedOrigins    []string // CORS and WebSocket origins, empty allows all
}

// TLSConfig names the certificate pair for HTTPS.
type TLSConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

// ServerConfig is the configuration the running server started with.
var ServerConfig Config
