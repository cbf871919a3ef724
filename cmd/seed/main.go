package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/config"
	"github.com/rezkam/todos/internal/infrastructure/persistence"
)

// Command-line tool that creates the todos table and fills an empty table
// with sample todos whose creation times span the last few months.
// A development utility, not meant for production data.
func main() {
	driver := flag.String("driver", "", "Database driver override: postgres or sqlite")
	fixtures := flag.String("file", "", "TOML file with seed todos (defaults to the built-in samples)")
	flag.Parse()

	cfg, err := config.LoadSeedConfig()
	if err != nil {
		flag.Usage()
		log.Fatal(err)
	}
	if *driver != "" {
		cfg.Database.Driver = *driver
		if err := cfg.Database.Validate(); err != nil {
			log.Fatal(err)
		}
	}

	samples := todo.DefaultSeedTodos
	if *fixtures != "" {
		samples, err = loadFixtures(*fixtures)
		if err != nil {
			log.Fatal(err)
		}
	}

	ctx := context.Background()

	// Opening the store applies migrations, which creates the table.
	store, err := persistence.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	fmt.Println("Database tables created successfully!")

	result, err := todo.NewService(store).Seed(ctx, samples)
	if err != nil {
		log.Fatalf("Error setting up database: %v", err)
	}

	printSummary(os.Stdout, result)
}

func printSummary(w io.Writer, result *todo.SeedResult) {
	if result.Skipped {
		fmt.Fprintf(w, "Database already contains %d todos. Skipping test data creation.\n", result.Total)
	} else {
		fmt.Fprintf(w, "Created %d test todos.\n", result.Inserted)
	}
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "   Total todos: %d\n", result.Total)
	fmt.Fprintf(w, "   Completed: %d\n", result.Completed)
	fmt.Fprintf(w, "   Pending: %d\n", result.Pending)
}
