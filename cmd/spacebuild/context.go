package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"spacebuild/internal/config"
	"spacebuild/internal/driver"
	"spacebuild/internal/history"
	"spacebuild/internal/logging"
	"spacebuild/internal/toolexec"
)

type commandContext struct {
	configFlag  *string
	projectFlag *string
	levelFlag   *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	log        *slog.Logger
	logErr     error
}

func newCommandContext(configFlag, projectFlag, levelFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		projectFlag: projectFlag,
		levelFlag:   levelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if project := flagValue(c.projectFlag); project != "" {
			if err := cfg.SetProjectRoot(project); err != nil {
				c.configErr = err
				return
			}
		}
		if level := strings.ToLower(flagValue(c.levelFlag)); level != "" {
			cfg.Logging.Level = level
			if err := cfg.Validate(); err != nil {
				c.configErr = fmt.Errorf("--log-level: %w", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logErr = err
			return
		}
		c.log, c.logErr = logging.NewFromConfig(cfg)
	})
	return c.log, c.logErr
}

// withDriver builds a driver whose tools write to the command's output
// streams, runs fn, and closes the history store afterwards.
func (c *commandContext) withDriver(cmd *cobra.Command, fn func(*driver.Driver) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}

	opts := []driver.Option{
		driver.WithLogger(logger),
		driver.WithExecutor(toolexec.CommandExecutor{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}),
	}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.HistoryPath())
		if err != nil {
			logger.Warn("run history unavailable", logging.String("path", cfg.HistoryPath()), logging.Error(err))
		} else {
			defer store.Close()
			opts = append(opts, driver.WithHistory(store))
		}
	}

	d, err := driver.New(cfg, opts...)
	if err != nil {
		return err
	}
	return fn(d)
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
