// main.go
//
// A REST back-end for the catalog, contracts and sales of a publishing house
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of publishing-house.
// publishing-house is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// publishing-house is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with publishing-house.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/localnerve/publishing-house/internal/config"
	"github.com/localnerve/publishing-house/internal/database"
	"github.com/localnerve/publishing-house/internal/logger"
	"github.com/localnerve/publishing-house/internal/services"
	"github.com/localnerve/publishing-house/internal/utils"
)

func main() {
	log := logger.Default()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	logger.InitLogger(cfg.LogLevel)

	// Fail fast when the database host does not accept connections
	if cfg.DBType != "sqlite" {
		if err := utils.PingService(cfg.DBHost, cfg.DBPort, 1500*time.Millisecond); err != nil {
			log.WithError(err).Error("Database host unreachable")
			os.Exit(1)
		}
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(context.Background(), cfg, db)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.WithError(err).Fatal("Failed to marshal health check result")
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if !result.Healthy() {
		os.Exit(1)
	}
}
