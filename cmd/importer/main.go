package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"placelog-api/internal/config"
	"placelog-api/internal/models"
	"placelog-api/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	places, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d places\n", len(places))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	ctx := context.Background()
	conn, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)
	if err := repo.EnsureSchema(ctx); err != nil {
		fmt.Printf("Error creating table: %v\n", err)
		os.Exit(1)
	}

	// Insert places
	inserted := 0
	for _, place := range places {
		err := repo.InsertPlace(ctx, place)
		if err == repository.ErrDuplicatePlace {
			fmt.Printf("Skipping duplicate place: %s\n", place.PlaceID)
			continue
		}
		if err != nil {
			fmt.Printf("Error inserting place %s: %v\n", place.PlaceID, err)
			os.Exit(1)
		}
		inserted++
	}

	// Verify data
	count, err := repo.CountPlaces(ctx)
	if err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d places (%d total in store)\n", inserted, count)
}

// parseCSV reads places from a CSV with header name,latitude,longitude,notes.
func parseCSV(filePath string) ([]models.PlaceVisit, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	_, err = reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var places []models.PlaceVisit
	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 3 {
			return nil, fmt.Errorf("invalid record length: %d, expected at least 3 columns", len(record))
		}

		name := record[0]
		if name == "" {
			return nil, fmt.Errorf("place name cannot be empty")
		}

		lat, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude: %s", record[1])
		}

		lon, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude: %s", record[2])
		}

		notes := ""
		if len(record) > 3 {
			notes = record[3]
		}

		places = append(places, models.PlaceVisit{
			PlaceID:   models.MakePlaceID(name, lat, lon),
			Name:      name,
			Latitude:  lat,
			Longitude: lon,
			Notes:     notes,
		})
	}

	return places, nil
}
