package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	inaturalist "github.com/inaturalist/inaturalist-go"
	"github.com/inaturalist/inaturalist-go/config"
)

// tokenEnvVar is read when --api-token is not given.
const tokenEnvVar = "INATURALIST_API_TOKEN"

// Config holds the streams the command reads and writes.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config bound to the process streams.
func DefaultConfig() Config {
	return Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// app carries flag values and the client shared by the subcommands.
type app struct {
	streams Config

	apiURL      string
	writeAPIURL string
	configPath  string
	envFile     string
	apiToken    string
	logLevel    string
	output      string
	timeout     time.Duration
	useAuth     bool
	params      []string

	client *inaturalist.Client
}

func run(args []string, cfg Config) error {
	cmd := newRootCmd(cfg)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCmd(cfg Config) *cobra.Command {
	a := &app{streams: cfg}

	cmd := &cobra.Command{
		Use:               "inat",
		Short:             "Call the iNaturalist API",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetIn(cfg.Stdin)
	cmd.SetOut(cfg.Stdout)
	cmd.SetErr(cfg.Stderr)
	a.registerFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		a.getCmd(),
		a.fetchCmd(),
		a.writeCmd("post", "Send a POST to a write route"),
		a.writeCmd("put", "Send a PUT to a write route"),
		a.writeCmd("delete", "Send a DELETE to a write route"),
		a.uploadCmd(),
		a.scoreImageCmd(),
		a.photoURLCmd(),
	)
	return cmd
}

func (a *app) registerFlags(flags *pflag.FlagSet) {
	// Hosts
	flags.StringVar(&a.apiURL, "api-url", "", "Read API base URL")
	flags.StringVar(&a.writeAPIURL, "write-api-url", "", "Write API base URL")
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML host configuration file")
	flags.StringVar(&a.envFile, "env-file", ".env", "Environment file to load if present")

	// Auth
	flags.StringVar(&a.apiToken, "api-token", "", "API token (default $"+tokenEnvVar+")")
	flags.BoolVar(&a.useAuth, "auth", false, "Send the API token on read calls")

	// Request
	flags.StringArrayVarP(&a.params, "param", "p", nil, "Request param in key=value form (repeatable, dots nest)")
	flags.DurationVar(&a.timeout, "timeout", 0, "Per-request timeout (0 means none)")

	// Output
	flags.StringVarP(&a.output, "output", "o", "json", "Output format: json or yaml")
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level: trace, debug, info, warn, error")
}

// setup loads the env file and builds the client before any subcommand.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := loadEnvFile(a.envFile); err != nil {
		return err
	}
	if a.apiToken == "" {
		a.apiToken = os.Getenv(tokenEnvVar)
	}
	if a.output != "json" && a.output != "yaml" {
		return fmt.Errorf("unknown output format %q", a.output)
	}

	var hosts config.Config
	if a.configPath != "" {
		loaded, err := config.LoadFile(a.configPath)
		if err != nil {
			return err
		}
		hosts = loaded
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "inat",
		Level:  hclog.LevelFromString(a.logLevel),
		Output: a.streams.Stderr,
	})

	opts := []inaturalist.Option{
		inaturalist.WithConfig(hosts),
		inaturalist.WithLogger(logger),
	}
	if a.apiURL != "" {
		opts = append(opts, inaturalist.WithAPIURL(a.apiURL))
	}
	if a.writeAPIURL != "" {
		opts = append(opts, inaturalist.WithWriteAPIURL(a.writeAPIURL))
	}
	if a.timeout > 0 {
		opts = append(opts, inaturalist.WithTimeout(a.timeout))
	}

	client, err := inaturalist.New(opts...)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	a.client = client

	logger.Debug("client ready", "api_url", client.APIURL(), "write_api_url", client.WriteAPIURL())
	return nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// requestOptions builds the per-call options from the flags.
func (a *app) requestOptions() inaturalist.RequestOptions {
	return inaturalist.RequestOptions{
		UseAuth:   a.useAuth,
		APIToken:  a.apiToken,
		UserAgent: "inat-cli",
	}
}
