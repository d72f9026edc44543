package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/loragriffin/blog-app/app/database"
)

// ErrCancelled is returned when the user declines a destructive operation.
var ErrCancelled = errors.New("operation cancelled")

// Console carries the streams the maintenance commands talk to.
type Console struct {
	In    io.Reader
	Out   io.Writer
	Force bool // skip confirmation prompts
}

func (c Console) confirm(question string) bool {
	if c.Force {
		return true
	}
	fmt.Fprintf(c.Out, "%s [y/N] ", question)
	response, _ := bufio.NewReader(c.In).ReadString('\n')
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// InitDB creates a new empty badger database at path.
func InitDB(path string, c Console) error {
	if exists(path) {
		fmt.Fprintln(c.Out, "Database already exists. Use 'clean' first if you want to reinitialize.")
		return nil
	}

	db, err := database.OpenBadger(path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Close(); err != nil {
		return err
	}

	fmt.Fprintln(c.Out, "Database initialized successfully")
	return nil
}

// Clean removes the badger database at path.
func Clean(path string, c Console) error {
	if !exists(path) {
		fmt.Fprintln(c.Out, "Database is already clean (does not exist)")
		return nil
	}

	if !c.confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(c.Out, "Operation cancelled")
		return ErrCancelled
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Fprintln(c.Out, "Database cleaned successfully")
	return nil
}

// Backup writes a full badger backup into backupDir and returns the file name.
func Backup(path, backupDir string, c Console) (string, error) {
	if !exists(path) {
		fmt.Fprintln(c.Out, "No database exists to backup")
		return "", nil
	}

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	db, err := database.OpenBadger(path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}

	fmt.Fprintf(c.Out, "Database backed up successfully to %s\n", backupFile)
	return backupFile, nil
}

// Restore replaces the badger database at path with the contents of backupFile.
func Restore(path, backupFile string, c Console) (err error) {
	fi, err := os.Stat(backupFile)
	if err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if exists(path) {
		if !c.confirm("Existing database found. Do you want to replace it?") {
			fmt.Fprintln(c.Out, "Operation cancelled")
			return ErrCancelled
		}
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	db, err := database.OpenBadger(path)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	// badger panics on some malformed backups
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to restore database: %v", r)
		}
	}()
	if err := db.Load(f, 4); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}

	fmt.Fprintln(c.Out, "Database restored successfully")
	return nil
}
