/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/wso2/identity-phonebook-service/internal/system/config"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

const configFile = "repository/conf/deployment.yaml"

func main() {
	app := &cli.Command{
		Name:  "phonebook",
		Usage: "Phonebook directory search service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "home",
				Usage:   "Path to the phonebook service home directory",
				Sources: cli.EnvVars("PHONEBOOK_HOME"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
		Action: serve,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.GetLogger().Fatal("Phonebook service stopped", log.Error(err))
	}
}

// bootstrap loads .env files and deployment.yaml and initializes logging.
func bootstrap(c *cli.Command) (*config.Config, error) {

	home := c.String("home")
	if home == "" {
		dir, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		home = dir
	}

	envFiles, err := filepath.Glob(filepath.Join(home, "config", "*.env"))
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	phonebookConfig, err := config.LoadConfig(home, configFile)
	if err != nil {
		return nil, err
	}
	if err := config.InitializePhonebookRuntime(home, phonebookConfig); err != nil {
		return nil, err
	}
	runtimeConfig := config.GetPhonebookRuntime().Config
	if err := log.InitWithOptions(log.Options{
		Level:      runtimeConfig.Log.LogLevel,
		Format:     runtimeConfig.Log.Format,
		File:       runtimeConfig.Log.File,
		MaxSizeMB:  runtimeConfig.Log.MaxSizeMB,
		MaxBackups: runtimeConfig.Log.MaxBackups,
		MaxAgeDays: runtimeConfig.Log.MaxAgeDays,
		Compress:   runtimeConfig.Log.Compress,
	}); err != nil {
		return nil, err
	}
	log.GetLogger().Info("Configuration loaded", log.String("home", home),
		log.String("datasource", runtimeConfig.DataSource.Type))
	return &runtimeConfig, nil
}
