package main

import (
	"flag"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/chordline-aero/wingloft/internal/version"
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "serve":
		handleServe(args)
	case "generate":
		handleGenerate(args)
	case "airfoils":
		handleAirfoilsCommand(args)
	case "migrate":
		handleMigrate(args)
	case "version":
		fmt.Printf("wingloft version %s\n", version.String())
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`wingloft - NURBS wing geometry generator

Usage: wingloft <command> [options]

Commands:
  serve      Run the HTTP API and chart server
  generate   Build a wing surface once and write charts and mesh files
  airfoils   Manage the airfoil catalog (list | seed | import | fetch | show)
  migrate    Run database migrations (up | down | status | version N | force N)
  version    Show wingloft version
  help       Show this help message

Examples:
  # Serve the API on the default port with the default database
  wingloft serve

  # Loft the demo wing and write everything to ./out
  wingloft generate -stl -obj -csv -sections-png

  # Loft a NACA 2412 section over a stored planform at higher resolution
  wingloft generate -airfoil naca2412 -planform demo -samples-u 80 -samples-v 80

  # Import a Selig .dat profile into the catalog
  wingloft airfoils import clarky ./clarky.dat

  # Apply pending schema migrations
  wingloft migrate up`)
}
