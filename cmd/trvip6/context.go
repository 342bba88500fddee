package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Oktay2617/trvip6/internal/config"
)

type commandContext struct {
	configFlag *string
	outputFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag, outputFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		outputFlag: outputFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.outputFlag != nil && strings.TrimSpace(*c.outputFlag) != "" {
			output, err := config.ExpandPath(strings.TrimSpace(*c.outputFlag))
			if err != nil {
				c.configErr = err
				return
			}
			cfg.Playlist.OutputFile = output
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
