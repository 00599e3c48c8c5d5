// Copyright © 2024 The ELPS authors

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/lisplib"
	"github.com/luthersystems/mal/repl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Configuration keys read through viper.  Each may be set in the config
// file or in the environment as MAL_<KEY> with dashes replaced by
// underscores.
const (
	keyPrompt      = "prompt"
	keyHistoryFile = "history-file"
	keyLogLevel    = "log-level"
	keyComments    = "comments"
	keyColor       = "color"
)

// Option configures an exported command factory.
type Option func(*cmdConfig)

type cmdConfig struct {
	runtime *lisp.Runtime
	viper   *viper.Viper
}

// WithRuntime injects a fully configured runtime.  Commands use it instead
// of building their own and never close it.
func WithRuntime(rt *lisp.Runtime) Option {
	return func(c *cmdConfig) { c.runtime = rt }
}

// WithViper injects the configuration store.  By default each command tree
// gets its own.
func WithViper(v *viper.Viper) Option {
	return func(c *cmdConfig) { c.viper = v }
}

func newCmdConfig(opts ...Option) *cmdConfig {
	c := &cmdConfig{}
	for _, opt := range opts {
		opt(c)
	}
	if c.viper == nil {
		c.viper = viper.New()
	}
	c.viper.SetDefault(keyPrompt, repl.DefaultPrompt)
	c.viper.SetDefault(keyHistoryFile, defaultHistoryFile())
	c.viper.SetDefault(keyLogLevel, logrus.WarnLevel.String())
	c.viper.SetDefault(keyComments, false)
	c.viper.SetDefault(keyColor, "auto")
	return c
}

// readConfig loads cfgFile, or .mal.yaml from the home directory when
// cfgFile is empty, and the MAL_ environment.  A missing default config
// file is not an error.
func (c *cmdConfig) readConfig(cfgFile string) error {
	v := c.viper
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".mal")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("MAL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func (c *cmdConfig) newLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.viper.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", keyLogLevel, err)
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	return log, nil
}

// newRuntime returns the injected runtime or a new one with the native
// library loaded.  The returned function releases the runtime.
func (c *cmdConfig) newRuntime() (*lisp.Runtime, func(), error) {
	if c.runtime != nil {
		return c.runtime, func() {}, nil
	}
	log, err := c.newLogger()
	if err != nil {
		return nil, nil, err
	}
	rt, err := lisplib.NewRuntime(
		lisp.WithLogger(log),
		lisp.WithComments(c.viper.GetBool(keyComments)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("runtime initialization failure: %w", err)
	}
	return rt, rt.Close, nil
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mal_history")
}
