// Command ironlog-config-validator loads and validates an ironlog
// config file and reports any error, nginx-config-test style. Adapted
// from the teacher's cmd/config-validator/main.go.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ironlog/ironlog/internal/config"
)

func main() {
	flag.Parse()

	if len(flag.Args()) < 1 {
		fmt.Println("Error: Config file path is required")
		fmt.Println("Usage: ironlog-config-validator <config-file>")
		os.Exit(1)
	}
	configPath := flag.Args()[0]

	_, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration is valid!")
}
