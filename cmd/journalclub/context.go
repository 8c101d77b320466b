package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"JournalClub/internal/app"
	"JournalClub/internal/config"
	"JournalClub/internal/logging"
	"JournalClub/pkg/logger"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
			if err := cfg.Validate(); err != nil {
				c.configErr = fmt.Errorf("--log-level: %w", err)
				return
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// application builds the wired use cases; logs and diagnostics go to the command's stderr.
func (c *commandContext) application(cmd *cobra.Command) (*app.Application, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	stderr := cmd.ErrOrStderr()
	log := logging.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, stderr)
	return app.New(cfg, log, logger.NewTo(stderr, "journalclub"))
}
