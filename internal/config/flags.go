package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d data directory
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "168h")
//	-admin-login administrator username
//	-admin-password administrator password
//	-log-level zerolog level name
//	-request-timeout request timeout (e.g., "30s")
//	-max-upload-size max multipart request size in bytes
//	-tmp-sweep-interval stale temp file sweep interval
//	-tmp-max-age age after which a temp file is stale
//	-server client: server base URL
//	-client-timeout client: request timeout
//	-u / -p client: login and password
//	-log-file client: log file path
func parseFlags(args []string) (*StructuredConfig, error) {
	cfg, _, err := parseFlagsWithArgs(args)
	return cfg, err
}

// parseFlagsWithArgs is parseFlags that also returns the positional
// arguments left after the last flag.
func parseFlagsWithArgs(args []string) (*StructuredConfig, []string, error) {
	fs := flag.NewFlagSet("go-note-keeper", flag.ContinueOnError)

	var serverAddress NetAddress
	var jsonConfigPath string
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.Files.DataDir, "d", "", "Data directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 168h)")
	fs.StringVar(&cfg.App.AdminLogin, "admin-login", "", "Administrator username")
	fs.StringVar(&cfg.App.AdminPassword, "admin-password", "", "Administrator password")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	fs.Int64Var(&cfg.Server.MaxUploadSize, "max-upload-size", 0, "Max upload request size in bytes")
	fs.IntVar(&cfg.Server.AuthRateLimit, "auth-rate-limit", 0, "Register/login attempts per minute per client")
	fs.IntVar(&cfg.Server.AuthRateBurst, "auth-rate-burst", 0, "Register/login burst size")
	fs.DurationVar(&cfg.Workers.TmpSweepInterval, "tmp-sweep-interval", 0, "Stale temp file sweep interval")
	fs.DurationVar(&cfg.Workers.TmpMaxAge, "tmp-max-age", 0, "Age after which a temp file is stale")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "server", "", "Server base URL (client)")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "client-timeout", 0, "Client request timeout")
	fs.StringVar(&cfg.Adapter.Login, "u", "", "Login (client)")
	fs.StringVar(&cfg.Adapter.Password, "p", "", "Password (client)")
	fs.StringVar(&cfg.Adapter.LogFile, "log-file", "", "Log file path (client)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.JSONFilePath = jsonConfigPath

	return cfg, fs.Args(), nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

