package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/chordline-aero/wingloft/internal/db"
	"github.com/chordline-aero/wingloft/internal/geom"
	"github.com/chordline-aero/wingloft/internal/httputil"
)

// handleAirfoilsCommand manages the stored airfoil catalog:
//
//	wingloft airfoils list
//	wingloft airfoils seed
//	wingloft airfoils import <name> <file.dat>
//	wingloft airfoils fetch <url> [name]
//	wingloft airfoils show <name>
func handleAirfoilsCommand(args []string) {
	fs := flag.NewFlagSet("airfoils", flag.ExitOnError)
	dbPath := fs.String("db", "", "Path to the SQLite database file (overrides config)")
	configPath := fs.String("config", "", "Path to a JSON config file")
	fs.Parse(args)

	cfg := loadServeConfig(*configPath)
	if *dbPath != "" {
		cfg.DBPath = dbPath
	}

	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: wingloft airfoils [flags] <list|seed|import|fetch|show> ...")
		os.Exit(1)
	}

	database, err := db.NewDB(cfg.GetDBPath())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	switch rest[0] {
	case "list":
		listAirfoils(database)
	case "seed":
		// NewDB already seeds on open; rerunning reports idempotence.
		if err := database.SeedBuiltins(); err != nil {
			log.Fatalf("Failed to seed airfoils: %v", err)
		}
		fmt.Println("Built-in geometry seeded")
	case "import":
		if len(rest) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: wingloft airfoils import <name> <file.dat>")
			os.Exit(1)
		}
		importAirfoil(database, rest[1], rest[2])
	case "fetch":
		if len(rest) < 2 || len(rest) > 3 {
			fmt.Fprintln(os.Stderr, "Usage: wingloft airfoils fetch <url> [name]")
			os.Exit(1)
		}
		name := ""
		if len(rest) == 3 {
			name = rest[2]
		}
		if err := fetchAirfoil(database, httputil.NewRealClient(nil), rest[1], name); err != nil {
			log.Fatalf("Failed to fetch airfoil: %v", err)
		}
	case "show":
		if len(rest) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: wingloft airfoils show <name>")
			os.Exit(1)
		}
		showAirfoil(database, rest[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown airfoils action: %s\n", rest[0])
		os.Exit(1)
	}
}

func listAirfoils(database *db.DB) {
	airfoils, err := database.GetAllAirfoils()
	if err != nil {
		log.Fatalf("Failed to list airfoils: %v", err)
	}

	fmt.Printf("%-4s %-12s %-8s %-7s %s\n", "ID", "NAME", "SOURCE", "POINTS", "DESCRIPTION")
	for _, a := range airfoils {
		description := ""
		if a.Description != nil {
			description = *a.Description
		}
		fmt.Printf("%-4d %-12s %-8s %-7d %s\n", a.ID, a.Name, a.Source, len(a.Points), description)
	}
}

func importAirfoil(database *db.DB, name, path string) {
	section, err := geom.LoadDatFile(path)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}
	section.Name = name

	existing, err := database.GetAirfoilByName(name)
	if err != nil {
		log.Fatalf("Failed to check catalog: %v", err)
	}
	if existing != nil {
		log.Fatalf("Airfoil %q already in catalog (id %d)", name, existing.ID)
	}

	airfoil := &db.Airfoil{
		Name:   name,
		Source: "dat-import",
		Points: section.Points,
	}
	if section.Description != "" {
		airfoil.Description = &section.Description
	}
	if err := database.CreateAirfoil(airfoil); err != nil {
		log.Fatalf("Failed to store airfoil: %v", err)
	}

	fmt.Printf("Imported %q from %s (%d points, id %d)\n", name, path, len(airfoil.Points), airfoil.ID)
}

// airfoilNameFromURL derives a catalog name from the last path segment of
// a coordinate-file URL, e.g. ".../coord/e387.dat" becomes "e387".
func airfoilNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "fetched"
	}
	base := path.Base(u.Path)
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return "fetched"
	}
	return base
}

// fetchAirfoil downloads a Selig-format coordinate file, most usefully
// from the UIUC airfoil database, and stores it in the catalog. The name
// line inside the file wins over the URL-derived fallback; an explicit
// name argument overrides both.
func fetchAirfoil(database *db.DB, client httputil.Client, rawURL, name string) error {
	resp, err := client.Get(rawURL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: server returned %d", rawURL, resp.StatusCode)
	}

	section, err := geom.ParseDatFile(resp.Body, airfoilNameFromURL(rawURL))
	if err != nil {
		return fmt.Errorf("parse %s: %w", rawURL, err)
	}
	if name != "" {
		section.Name = name
	}

	existing, err := database.GetAirfoilByName(section.Name)
	if err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("airfoil %q already in catalog (id %d)", section.Name, existing.ID)
	}

	airfoil := &db.Airfoil{
		Name:        section.Name,
		Description: &rawURL,
		Source:      "dat-fetch",
		Points:      section.Points,
	}
	if err := database.CreateAirfoil(airfoil); err != nil {
		return fmt.Errorf("failed to store airfoil: %w", err)
	}

	fmt.Printf("Fetched %q from %s (%d points, id %d)\n", airfoil.Name, rawURL, len(airfoil.Points), airfoil.ID)
	return nil
}

func showAirfoil(database *db.DB, name string) {
	airfoil, err := database.GetAirfoilByName(name)
	if err != nil {
		log.Fatalf("Failed to look up airfoil: %v", err)
	}
	if airfoil == nil {
		log.Fatalf("Airfoil %q not in catalog", name)
	}

	description := ""
	if airfoil.Description != nil {
		description = *airfoil.Description
	}
	fmt.Printf("Name:        %s\n", airfoil.Name)
	fmt.Printf("ID:          %d\n", airfoil.ID)
	fmt.Printf("Source:      %s\n", airfoil.Source)
	fmt.Printf("System:      %v\n", airfoil.IsSystem)
	fmt.Printf("Description: %s\n", description)
	fmt.Printf("Points:      %d\n", len(airfoil.Points))
	for _, p := range airfoil.Points {
		fmt.Printf("  %9.6f %9.6f\n", p[0], p[1])
	}
}
