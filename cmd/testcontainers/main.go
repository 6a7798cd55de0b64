package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/publishing-house/internal/database"
	"github.com/localnerve/publishing-house/internal/logger"
	"github.com/localnerve/publishing-house/internal/testsupport"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var migrate bool
	flag.BoolVar(&migrate, "m", false, "create the tables once the database is up")
	flag.Parse()

	usage := `
Run a publishing-house database container with the environment variables from the .env file.

Usage:

testcontainers [-h] [-m] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file
-m: run the schema migration against the started database

example
  testcontainers -m -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logger.Default()
	if envFilename != "" {
		log.Infof("Loading environment variables from %s", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.WithError(err).Fatal("Failed to load environment variables")
		}
	} else {
		log.Info("No environment file specified, using current environment variables")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	testContainers, err := testsupport.CreateDatabaseContainer(nil)
	if err != nil {
		log.WithError(err).Fatal("Failed to create test containers")
	}

	if migrate {
		db, err := database.Connect(testContainers.Config)
		if err != nil {
			testContainers.Terminate(nil)
			log.WithError(err).Fatal("Failed to connect to database")
		}
		if err := database.AutoMigrate(db); err != nil {
			testContainers.Terminate(nil)
			log.WithError(err).Fatal("Failed to migrate database")
		}
		_ = database.Close(db)
		log.Info("Schema created")
	}

	sig := <-sigs
	log.Infof("Received signal: %v, terminating test containers...", sig)
	testContainers.Terminate(nil)
}
