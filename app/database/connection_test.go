package database

import (
	"path/filepath"
	"testing"
)

func TestNewConnection(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "emails.db")

	db, err := NewConnection(dbPath)
	if err != nil {
		t.Fatalf("Expected connection to succeed, got %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Errorf("Expected ping to succeed, got %v", err)
	}
}

func TestNewConnectionInvalidPath(t *testing.T) {
	// /dev/null is a file, so creating a directory beneath it must fail
	_, err := NewConnection("/dev/null/subdir/emails.db")
	if err == nil {
		t.Error("Expected error for invalid database path")
	}
}
