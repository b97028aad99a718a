package cmd

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/cpescan/cpescan/cpescan"
	"github.com/cpescan/cpescan/internal/config"
	"github.com/cpescan/cpescan/internal/log"
	"github.com/cpescan/cpescan/internal/logger"
)

var appConfig *config.Application

func initAppConfig() {
	cfg, err := config.LoadConfigFromFile(viper.GetViper(), &cliOpts)
	if err != nil {
		fmt.Printf("failed to load application config: \n\t%+v\n", err)
		os.Exit(1)
	}
	appConfig = cfg
}

func initLogging() {
	cfg := logger.LogrusConfig{
		EnableConsole: (appConfig.Log.FileLocation == "" || appConfig.CliOptions.Verbosity > 0) && !appConfig.Quiet,
		EnableFile:    appConfig.Log.FileLocation != "",
		Level:         appConfig.Log.LevelOpt,
		Structured:    appConfig.Log.Structured,
		FileLocation:  appConfig.Log.FileLocation,
	}

	cpescan.SetLogger(logger.NewLogrusLogger(cfg))
}

func logAppConfig() {
	appCfgStr, err := yaml.Marshal(&appConfig)

	if err != nil {
		log.Debugf("Could not display application config: %+v", err)
	} else {
		log.Debugf("Application config:\n%+v", color.Magenta.Sprint(string(appCfgStr)))
	}
}
