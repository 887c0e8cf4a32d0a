package main

import (
	"fmt"
	"os"

	"github.com/mailslurper/settings-service/cli"
	"github.com/mailslurper/settings-service/handlers"
)

const version = "0.1.0"

var (
	sha1ver   string // sha1 revision used to build the program
	buildTime string // when the executable was built
)

func main() {
	info := handlers.BuildInfo{
		Version:   version,
		Sha1ver:   sha1ver,
		BuildTime: buildTime,
	}

	if err := cli.Execute(info, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
