// Command import-geo bulk-loads the Census gazetteer ZCTA dataset into the
// geocode cache so evaluations never hit the network for known zip codes.
package main

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/openpaddle/paddle-planner/internal/entities"
	"github.com/openpaddle/paddle-planner/internal/repository"
)

const (
	zctasURL  = "https://www2.census.gov/geo/docs/maps-data/data/gazetteer/2023_Gazetteer/2023_Gaz_zcta_national.zip"
	dataDir   = "data"
	batchSize = 5000
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %v", err)
	}

	repo, err := repository.NewSQLiteLocationRepository(os.Getenv("PADDLE_DB"))
	if err != nil {
		return fmt.Errorf("failed to open db: %v", err)
	}
	defer repo.Close()

	zipPath := filepath.Join(dataDir, "zctas.zip")
	if _, err := os.Stat(zipPath); os.IsNotExist(err) {
		fmt.Println("Downloading ZCTA gazetteer...")
		if err := downloadFile(zctasURL, zipPath); err != nil {
			return err
		}
	} else {
		fmt.Println("Using existing zctas.zip")
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if strings.HasSuffix(f.Name, ".txt") {
			rc, err := f.Open()
			if err != nil {
				return err
			}
			defer rc.Close()
			return importZCTAs(repo, rc)
		}
	}
	return fmt.Errorf("no txt file found in %s", zipPath)
}

func downloadFile(url, filepath string) error {
	out, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer out.Close()

	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	_, err = io.Copy(out, resp.Body)
	return err
}

func importZCTAs(repo *repository.SQLiteLocationRepository, r io.Reader) error {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return err
	}

	var batch []entities.Location
	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // Skip malformed lines
		}

		// Gaz_zcta_national.txt format:
		// GEOID(0)	ALAND(1)	AWATER(2)	ALAND_SQMI(3)	AWATER_SQMI(4)	INTPTLAT(5)	INTPTLONG(6)

		if len(record) < 7 {
			continue
		}

		zipCode := strings.TrimSpace(record[0])
		lat, lon, err := parseAndValidateCoordinates(strings.TrimSpace(record[5]), strings.TrimSpace(record[6]))
		if err != nil {
			log.Printf("Error parsing coordinates for ZIP %s: %v", zipCode, err)
			continue
		}

		batch = append(batch, entities.Location{
			Zip:       zipCode,
			Latitude:  lat,
			Longitude: lon,
		})

		if len(batch) >= batchSize {
			if err := repo.SaveLocations(batch); err != nil {
				return err
			}
			count += len(batch)
			batch = batch[:0]
			fmt.Printf("Imported %d ZIPs...\r", count)
		}
	}

	if len(batch) > 0 {
		if err := repo.SaveLocations(batch); err != nil {
			return err
		}
		count += len(batch)
	}
	fmt.Printf("\nFinished importing %d ZIPs.\n", count)

	total, err := repo.Count()
	if err == nil {
		fmt.Printf("Cache now holds %d places.\n", total)
	}
	return nil
}

// parseAndValidateCoordinates parses and validates latitude and longitude strings
func parseAndValidateCoordinates(latStr, lonStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude: %v", err)
	}
	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("latitude out of range: %f", lat)
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude: %v", err)
	}
	if lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("longitude out of range: %f", lon)
	}

	return lat, lon, nil
}
