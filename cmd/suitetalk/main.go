// Command suitetalk is a NetSuite SuiteTalk console for one-off reads
// and connectivity checks.
//
// Credentials and account settings resolve in priority order:
//   - command line flags
//   - SUITETALK_* environment variables (e.g. SUITETALK_TOKEN_SECRET)
//   - suitetalk.toml in the user config directory or the working directory
//   - stdin prompt for a missing secret
//
// Usage:
//
//	suitetalk <command> [flags]
//
// Examples:
//
//	# Print the WSDL location for a production account
//	suitetalk wsdl-url --sandbox=false
//
//	# Check connectivity and clock skew
//	export SUITETALK_TOKEN_SECRET='secret'
//	suitetalk server-time --account 123456
//
//	# Fetch two customers and show their company names
//	suitetalk get-list customer --id 42 --id 77 --field companyName
//
//	# Capture redacted wire traffic while debugging
//	suitetalk get-list customer --id 42 --trace-file /tmp/suitetalk-trace.log
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/suitegate/go-suitetalk/internal/log"
	"github.com/suitegate/go-suitetalk/netsuite"
	"github.com/suitegate/go-suitetalk/soap/transport"
)

const (
	traceMaxSize = 10 << 20
	traceBackups = 3
)

var (
	cfgFile   string
	account   string
	sandbox   bool
	version   string
	wsdlURL   string
	timeout   time.Duration
	logLevel  string
	traceFile string
	insecure  bool

	// traceLog stays open for the life of the process so every request
	// of a command lands in the same file.
	traceLog *log.RotatingFile
)

func main() {
	err := rootCmd().Execute()
	if traceLog != nil {
		_ = traceLog.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "suitetalk",
		Short:        "NetSuite SuiteTalk web services client",
		Long:         "Query NetSuite records and diagnose SuiteTalk connectivity from the command line.",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default suitetalk.toml in the user config dir)")
	flags.StringVar(&account, "account", "", "NetSuite account number")
	flags.BoolVar(&sandbox, "sandbox", true, "target the sandbox environment")
	flags.StringVar(&version, "version", "", "SuiteTalk endpoint version (default "+netsuite.DefaultVersion+")")
	flags.StringVar(&wsdlURL, "wsdl", "", "explicit WSDL URL (overrides version and sandbox resolution)")
	flags.DurationVar(&timeout, "timeout", 60*time.Second, "per-command timeout")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (empty = no logging)")
	flags.StringVar(&traceFile, "trace-file", "", "write redacted request/response XML to this file")
	flags.BoolVar(&insecure, "insecure", false, "skip TLS certificate verification")

	cmd.AddCommand(wsdlURLCmd())
	cmd.AddCommand(serverTimeCmd())
	cmd.AddCommand(dataCenterURLsCmd())
	cmd.AddCommand(getListCmd())
	cmd.AddCommand(itemAvailabilityCmd())

	return cmd
}

// settings merges the config file and SUITETALK_* environment variables.
// Flag values are layered on top by the resolver methods, so a flag set on
// the command line always wins.
type settings struct {
	v *viper.Viper
}

func loadSettings() (*settings, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("suitetalk")
		v.SetConfigType("toml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			// No config file is fine, env vars and flags remain.
		}
	}

	v.SetEnvPrefix("SUITETALK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("sandbox", true)

	return &settings{v: v}, nil
}

func (s *settings) stringVal(cmd *cobra.Command, flagName, key, flagValue string) string {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	if got := s.v.GetString(key); got != "" {
		return got
	}
	return flagValue
}

func (s *settings) boolVal(cmd *cobra.Command, flagName, key string, flagValue bool) bool {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	return s.v.GetBool(key)
}

// clientConfig builds the credential set from the resolved settings.
// Secrets deliberately have no flags so they stay out of the process list.
func (s *settings) clientConfig(cmd *cobra.Command) netsuite.Config {
	cfg := netsuite.Config{
		Account:        s.stringVal(cmd, "account", "account", account),
		ConsumerKey:    s.v.GetString("consumer_key"),
		ConsumerSecret: s.v.GetString("consumer_secret"),
		TokenID:        s.v.GetString("token_id"),
		TokenSecret:    s.v.GetString("token_secret"),
		Email:          s.v.GetString("email"),
		Password:       s.v.GetString("password"),
		Role:           s.v.GetString("role"),
		ApplicationID:  s.v.GetString("application_id"),
		PartnerID:      s.v.GetString("partner_id"),
	}

	// When the rest of a credential set is present, prompt for the
	// missing secret rather than failing validation.
	if cfg.ConsumerKey != "" && cfg.TokenID != "" {
		if cfg.ConsumerSecret == "" {
			cfg.ConsumerSecret = promptSecret("Consumer secret")
		}
		if cfg.TokenSecret == "" {
			cfg.TokenSecret = promptSecret("Token secret")
		}
	}
	if cfg.Email != "" && cfg.Password == "" {
		cfg.Password = promptSecret("Password")
	}

	return cfg
}

// newClient builds a SuiteTalk client from flags, environment, and config
// file. The caller owns Close.
func newClient(cmd *cobra.Command) (*netsuite.Client, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}

	opts := []netsuite.Option{
		netsuite.WithSandbox(s.boolVal(cmd, "sandbox", "sandbox", sandbox)),
	}
	if ver := s.stringVal(cmd, "version", "version", version); ver != "" {
		opts = append(opts, netsuite.WithVersion(ver))
	}
	if u := s.stringVal(cmd, "wsdl", "wsdl", wsdlURL); u != "" {
		opts = append(opts, netsuite.WithWSDLURL(u))
	}

	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	if logger != nil {
		opts = append(opts, netsuite.WithLogger(logger))
	}

	topts, err := transportOptions()
	if err != nil {
		return nil, err
	}
	if len(topts) > 0 {
		opts = append(opts, netsuite.WithTransportOptions(topts...))
	}

	return netsuite.New(s.clientConfig(cmd), opts...)
}

func newLogger() (*slog.Logger, error) {
	if logLevel == "" {
		return nil, nil
	}

	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q (valid: debug, info, warn, error)", logLevel)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(log.NewRedactingHandler(handler)), nil
}

func transportOptions() ([]transport.HTTPTransportOption, error) {
	var opts []transport.HTTPTransportOption
	if insecure {
		opts = append(opts, transport.WithInsecureSkipVerify(true))
	}
	if traceFile != "" && traceLog == nil {
		rf, err := log.NewRotatingFile(traceFile, traceMaxSize, traceBackups)
		if err != nil {
			return nil, fmt.Errorf("open trace file: %w", err)
		}
		traceLog = rf
		opts = append(opts, transport.WithTrace(log.NewScrubbingWriter(rf)))
	}
	return opts, nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// promptSecret reads a secret from the terminal without echo. When stdin
// is not a terminal (piped input) it falls back to a plain line read.
func promptSecret(label string) string {
	fmt.Fprintf(os.Stderr, "%s: ", label)

	// os.Stdin.Fd() cast to int for cross-platform compatibility
	// (syscall.Stdin is type-specific per OS)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr) // newline after hidden input
		if err != nil {
			return ""
		}
		return string(secret)
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
