package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Applies SQL migration files in order. With no argument every *.up.sql
// file is applied; with one argument only files whose name contains it.
func main() {
	var nameFilter string
	if len(os.Args) > 1 {
		nameFilter = os.Args[1]
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	files, err := migrationFiles(basePath, nameFilter)
	if err != nil {
		log.Fatal(err)
	}

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(basePath, file))
		if err != nil {
			log.Fatal(err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("Failed to execute %s: %v", file, err)
		}

		fmt.Printf("Applied %s\n", file)
	}
}

func migrationFiles(basePath string, nameFilter string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}
		if nameFilter != "" && !strings.Contains(entry.Name(), nameFilter) {
			continue
		}
		files = append(files, entry.Name())
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no migration files matched")
	}

	sort.Strings(files)
	return files, nil
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
