// Command scriptura parses free-form Bible references and serves passages
// over a REST API. It also manages the API key database used by the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Scriptura/core/passage"
	"github.com/FocuswithJustin/Scriptura/internal/api"
	"github.com/FocuswithJustin/Scriptura/internal/apikey"
	"github.com/FocuswithJustin/Scriptura/internal/logging"
	"github.com/FocuswithJustin/Scriptura/internal/store"
)

const version = "0.4.0"

// CLI defines the command-line interface for scriptura.
var CLI struct {
	// Global flags
	Data      string `help:"Directory containing Bible version files" default:"./data" env:"SCRIPTURA_DATA" type:"path"`
	LogLevel  string `help:"Log level" default:"info" enum:"debug,info,warn,error" env:"SCRIPTURA_LOG_LEVEL"`
	LogFormat string `help:"Log format" default:"text" enum:"text,json" env:"SCRIPTURA_LOG_FORMAT"`

	Serve    ServeCmd    `cmd:"" help:"Start the REST API server"`
	Parse    ParseCmd    `cmd:"" help:"Parse references and print the passages"`
	Books    BooksCmd    `cmd:"" help:"List the books of a version"`
	Versions VersionsCmd `cmd:"" help:"List loaded Bible versions"`
	Daytext  DaytextCmd  `cmd:"" help:"Print the verse of the day"`
	Apikey   APIKeyGroup `cmd:"" help:"API key management"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// ServeCmd starts the REST API server.
type ServeCmd struct {
	Host           string   `help:"Listen address" default:"0.0.0.0" env:"SCRIPTURA_HOST"`
	Port           int      `help:"HTTP server port" default:"8081" env:"SCRIPTURA_PORT"`
	CommentaryDir  string   `help:"Directory containing commentary files" env:"SCRIPTURA_COMMENTARY_DIR" type:"path"`
	DefaultVersion string   `help:"Version served when a request names none" env:"SCRIPTURA_DEFAULT_VERSION"`
	RequireAuth    bool     `help:"Require an API key on non-public endpoints" env:"SCRIPTURA_REQUIRE_AUTH"`
	APIKey         []string `name:"api-key" help:"Static API key (repeatable)" env:"SCRIPTURA_API_KEY"`
	KeysDB         string   `name:"keys-db" help:"SQLite API key database" env:"SCRIPTURA_KEYS_DB" type:"path"`
	RateLimit      int      `name:"rate-limit" help:"Requests per minute per client (0 disables)" default:"0" env:"SCRIPTURA_RATE_LIMIT"`
	RateLimitBurst int      `name:"rate-limit-burst" help:"Rate limiter burst size" default:"10"`
	AllowedOrigin  []string `name:"allowed-origin" help:"Allowed CORS/WebSocket origin (repeatable, empty allows all)" env:"SCRIPTURA_ALLOWED_ORIGINS"`
	TLSCert        string   `name:"tls-cert" help:"TLS certificate file" env:"SCRIPTURA_TLS_CERT" type:"path"`
	TLSKey         string   `name:"tls-key" help:"TLS private key file" env:"SCRIPTURA_TLS_KEY" type:"path"`
}

func (c *ServeCmd) Run() error {
	cfg := api.Config{
		Host:              c.Host,
		Port:              c.Port,
		DataDir:           CLI.Data,
		CommentaryDir:     c.CommentaryDir,
		DefaultVersion:    c.DefaultVersion,
		RateLimitRequests: c.RateLimit,
		RateLimitBurst:    c.RateLimitBurst,
		AllowedOrigins:    c.AllowedOrigin,
		Auth: api.AuthConfig{
			Enabled: c.RequireAuth,
			APIKeys: c.APIKey,
			KeysDB:  c.KeysDB,
		},
		TLS: api.TLSConfig{
			Enabled:  c.TLSCert != "" || c.TLSKey != "",
			CertFile: c.TLSCert,
			KeyFile:  c.TLSKey,
		},
	}

	if err := api.Start(cfg); err != nil {
		if strings.Contains(err.Error(), "auth config") {
			fmt.Fprintln(os.Stderr, api.GenerateAPIKeyExample())
		}
		return err
	}
	return nil
}

// ParseCmd runs references through the parsing pipeline.
type ParseCmd struct {
	References []string `arg:"" name:"reference" help:"References to parse (e.g. \"John 3:16-4:1\")"`
	Version    string   `help:"Bible version to read from"`
	JSON       bool     `help:"Output results as JSON"`
}

func (c *ParseCmd) Run() error {
	v, err := loadVersion(c.Version)
	if err != nil {
		return err
	}

	results := passage.AssembleAll(c.References, v)

	if c.JSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		fmt.Println(string(data))
	} else {
		for _, res := range results {
			if !res.Parsed {
				fmt.Printf("%s: %s [%s]\n", res.Reference, res.Message, res.Error)
				continue
			}
			fmt.Printf("%s (%s)\n", res.Reference, v.Name())
			fmt.Printf("  %s\n", res.FormattedText)
		}
	}

	failed := 0
	for _, res := range results {
		if !res.Parsed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d reference(s) failed to parse", failed)
	}
	return nil
}

// BooksCmd lists the books of a version in canonical order.
type BooksCmd struct {
	Version string `help:"Bible version to list"`
}

func (c *BooksCmd) Run() error {
	v, err := loadVersion(c.Version)
	if err != nil {
		return err
	}

	fmt.Printf("Books in %s:\n\n", v.Name())
	for _, book := range v.Books() {
		fmt.Printf("  %-20s %d chapter(s)\n", book, v.ChapterCount(book))
	}
	fmt.Printf("\nTotal: %d book(s)\n", v.BookCount())
	return nil
}

// VersionsCmd lists the loaded Bible versions.
type VersionsCmd struct{}

func (c *VersionsCmd) Run() error {
	st, err := store.Load(CLI.Data, store.Options{})
	if err != nil {
		return fmt.Errorf("loading bible data: %w", err)
	}

	infos := st.Versions()
	fmt.Printf("Versions in %s:\n\n", CLI.Data)
	for _, info := range infos {
		marker := " "
		if info.Default {
			marker = "*"
		}
		fmt.Printf("  %s %-8s %s (%d books, %d verses)\n",
			marker, info.Key, info.Name, info.Books, info.Verses)
	}
	fmt.Printf("\nTotal: %d version(s)\n", len(infos))
	return nil
}

// DaytextCmd prints the verse of the day. The selection is deterministic
// for a given date or seed.
type DaytextCmd struct {
	Date    string `help:"Date to select for (YYYY-MM-DD, default today)"`
	Seed    string `help:"Custom selection seed"`
	Version string `help:"Bible version to read from"`
}

func (c *DaytextCmd) Run() error {
	seed := c.Date
	if seed != "" {
		if _, err := time.Parse("2006-01-02", seed); err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD")
		}
	} else {
		seed = c.Seed
	}
	if seed == "" {
		seed = time.Now().UTC().Format("2006-01-02")
	}

	v, err := loadVersion(c.Version)
	if err != nil {
		return err
	}

	vs := v.DayText(seed)
	fmt.Printf("%s %d:%d (%s)\n", vs.Book, vs.Chapter, vs.Verse, v.Name())
	fmt.Printf("  %s\n", vs.Text)
	return nil
}

// APIKeyGroup contains key database operations.
type APIKeyGroup struct {
	DB string `help:"SQLite key database" default:"./keys.db" env:"SCRIPTURA_KEYS_DB" type:"path"`

	Issue  KeyIssueCmd  `cmd:"" help:"Issue a key for an email address"`
	Revoke KeyRevokeCmd `cmd:"" help:"Revoke the key for an email address"`
	List   KeyListCmd   `cmd:"" help:"List issued keys"`
}

// KeyIssueCmd issues a fresh API key.
type KeyIssueCmd struct {
	Email string `arg:"" help:"Key owner email address"`
}

func (c *KeyIssueCmd) Run() error {
	ks, err := apikey.Open(CLI.Apikey.DB)
	if err != nil {
		return err
	}
	defer ks.Close()

	key, err := ks.Issue(context.Background(), c.Email)
	if err != nil {
		return err
	}

	fmt.Printf("Issued key for %s\n", key.Email)
	fmt.Printf("  %s\n", key.Key)
	return nil
}

// KeyRevokeCmd deactivates an email's key.
type KeyRevokeCmd struct {
	Email string `arg:"" help:"Key owner email address"`
}

func (c *KeyRevokeCmd) Run() error {
	ks, err := apikey.Open(CLI.Apikey.DB)
	if err != nil {
		return err
	}
	defer ks.Close()

	if err := ks.Revoke(context.Background(), c.Email); err != nil {
		return err
	}

	fmt.Printf("Revoked key for %s\n", c.Email)
	return nil
}

// KeyListCmd lists every key record.
type KeyListCmd struct{}

func (c *KeyListCmd) Run() error {
	ks, err := apikey.Open(CLI.Apikey.DB)
	if err != nil {
		return err
	}
	defer ks.Close()

	keys, err := ks.List(context.Background())
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		fmt.Println("No keys issued.")
		return nil
	}

	for _, k := range keys {
		status := "active"
		if !k.Active {
			status = "revoked"
		}
		fmt.Printf("  %-30s %s (%s)\n", k.Email, k.Key, status)
	}
	fmt.Printf("\nTotal: %d key(s)\n", len(keys))
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("scriptura version %s\n", version)
	return nil
}

// loadVersion loads the data directory and resolves one version for the
// read-only commands.
func loadVersion(name string) (*store.Version, error) {
	st, err := store.Load(CLI.Data, store.Options{})
	if err != nil {
		return nil, fmt.Errorf("loading bible data: %w", err)
	}
	v, err := st.Resolve(name)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func logLevel(name string) logging.Level {
	switch name {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func logFormat(name string) logging.Format {
	if name == "json" {
		return logging.FormatJSON
	}
	return logging.FormatText
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("scriptura"),
		kong.Description("Scriptura - free-form Bible reference parsing and passage server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logLevel(CLI.LogLevel), logFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
