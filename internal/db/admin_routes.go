package db

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"
)

// AttachAdminRoutes mounts the operator endpoints under /debug: a tailsql
// console bound to the live database and a one-shot gzipped backup download.
// tsweb gates both behind its debug-access check, so only loopback and
// tailnet callers get through.
func (db *DB) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		log.Fatalf("failed to create tailsql server: %v", err)
	}
	tsql.SetDB("sqlite://wingloft.db", db.DB, &tailsql.DBOptions{
		Label: "Wingloft DB",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.Handle("backup", "Create and download a backup of the database now", http.HandlerFunc(db.handleBackup))
}

// handleBackup snapshots the database with VACUUM INTO and streams the
// snapshot back gzip-compressed. The snapshot file only exists for the
// duration of the request.
func (db *DB) handleBackup(w http.ResponseWriter, r *http.Request) {
	backupPath := fmt.Sprintf("backup-%d.db", time.Now().Unix())
	if _, err := db.Exec("VACUUM INTO ?", backupPath); err != nil {
		http.Error(w, fmt.Sprintf("Failed to create backup: %v", err), http.StatusInternalServerError)
		return
	}

	backupFile, err := os.Open(backupPath)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to open backup file: %v", err), http.StatusInternalServerError)
		return
	}
	defer func() {
		backupFile.Close()
		if err := os.Remove(backupPath); err != nil {
			log.Printf("Failed to remove backup file %s: %v", backupPath, err)
		}
	}()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", backupPath))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Encoding", "gzip")

	gzw := gzip.NewWriter(w)
	defer gzw.Close()
	if _, err := io.Copy(gzw, backupFile); err != nil {
		// Headers are already on the wire at this point, so the client
		// just sees a truncated stream.
		log.Printf("Failed to stream backup file %s: %v", backupPath, err)
	}
}
