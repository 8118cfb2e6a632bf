package config

import (
	"fmt"
	"os"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the server base URL used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains the server endpoint settings.
	Adapter ClientAdapter
	// Login and Password are the credentials used to sign in.
	Login    string
	Password string
	// LogFile is the client log destination; empty discards logs.
	LogFile string
	// Args are the positional arguments left after flag parsing: the
	// command name followed by its operands.
	Args []string
}

// GetClientConfig builds and validates the client configuration from the
// environment, os.Args and an optional JSON file.
func GetClientConfig() (*ClientConfig, error) {
	return getClientConfig(os.Args[1:])
}

func getClientConfig(args []string) (*ClientConfig, error) {
	flagsCfg, rest, err := parseFlagsWithArgs(args)
	if err != nil {
		return nil, err
	}

	builder := newConfigBuilder().withEnv()
	builder.configs = append(builder.configs, flagsCfg)

	cfg, err := builder.withJSON().build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Login:    cfg.Adapter.Login,
		Password: cfg.Adapter.Password,
		LogFile:  cfg.Adapter.LogFile,
		Args:     rest,
	}

	return clientCfg, clientCfg.validate()
}
