package seeder

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexivanou/geoweather/internal/config"
	"github.com/alexivanou/geoweather/internal/model"
)

const (
	countryInfoFile = "countryInfo.txt"
	admin1File      = "admin1CodesASCII.txt"
	defaultBatch    = 1000
)

// Parser parses GeoNames data files
type Parser struct {
	dataDir       string
	citiesFile    string
	batchSize     int
	minPopulation int
}

// NewParser creates a new parser instance with config
func NewParser(seederCfg config.SeederConfig) *Parser {
	batchSize := seederCfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatch
	}

	return &Parser{
		dataDir:       seederCfg.DataDir,
		citiesFile:    seederCfg.CitiesFile,
		batchSize:     batchSize,
		minPopulation: seederCfg.MinPopulation,
	}
}

// ParseCountries parses countryInfo.txt
func (p *Parser) ParseCountries() ([]model.Country, error) {
	file, err := os.Open(filepath.Join(p.dataDir, countryInfoFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", countryInfoFile, err)
	}
	defer file.Close()

	var countries []model.Country
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}

		// ISO, ISO3, ISO-Numeric, fips, Country, ...
		parts := strings.Split(line, "\t")
		if len(parts) < 5 {
			continue
		}

		code, name := parts[0], parts[4]
		if code != "" && name != "" {
			countries = append(countries, model.Country{Code: code, Name: name})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", countryInfoFile, err)
	}

	return countries, nil
}

// ParseRegions parses admin1CodesASCII.txt. Regions of countries missing
// from known are skipped.
func (p *Parser) ParseRegions(known map[string]bool) ([]model.Region, error) {
	file, err := os.Open(filepath.Join(p.dataDir, admin1File))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", admin1File, err)
	}
	defer file.Close()

	var regions []model.Region
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		// code ("IN.35"), name, ascii name, geonameid
		parts := strings.Split(scanner.Text(), "\t")
		if len(parts) < 2 || parts[1] == "" {
			continue
		}

		countryCode, _, ok := strings.Cut(parts[0], ".")
		if !ok || !known[countryCode] {
			continue
		}

		regions = append(regions, model.Region{
			Code:        parts[0],
			CountryCode: countryCode,
			Name:        parts[1],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", admin1File, err)
	}

	return regions, nil
}

// ProcessCities streams the configured cities file in batches. The zip
// archive is preferred when both <name>.zip and <name>.txt exist. Cities
// below the population threshold or in unknown countries are skipped.
func (p *Parser) ProcessCities(known map[string]bool, callback func(batch []model.City) error) (int, error) {
	zipPath := filepath.Join(p.dataDir, p.citiesFile+".zip")
	if _, err := os.Stat(zipPath); err == nil {
		return p.processCitiesFromZip(zipPath, known, callback)
	}

	txtPath := filepath.Join(p.dataDir, p.citiesFile+".txt")
	file, err := os.Open(txtPath)
	if err != nil {
		return 0, fmt.Errorf("cities file not found (checked %s and %s): %w", zipPath, txtPath, err)
	}
	defer file.Close()

	return p.processCitiesFromReader(file, known, callback)
}

func (p *Parser) processCitiesFromZip(zipPath string, known map[string]bool, callback func([]model.City) error) (int, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".txt") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return 0, fmt.Errorf("failed to open file in zip: %w", err)
		}
		defer rc.Close()
		return p.processCitiesFromReader(rc, known, callback)
	}

	return 0, fmt.Errorf("no txt file found in %s", zipPath)
}

func (p *Parser) processCitiesFromReader(reader io.Reader, known map[string]bool, callback func([]model.City) error) (int, error) {
	scanner := bufio.NewScanner(reader)
	// The alternatenames column can be long
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	batch := make([]model.City, 0, p.batchSize)
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := callback(batch); err != nil {
			return fmt.Errorf("city callback error: %w", err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		city, ok := p.parseCity(scanner.Text())
		if !ok || !known[city.CountryCode] {
			continue
		}

		batch = append(batch, city)
		if len(batch) >= p.batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return total, fmt.Errorf("failed to scan cities: %w", err)
	}

	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

// parseCity reads one row of the GeoNames cities table
func (p *Parser) parseCity(line string) (model.City, bool) {
	parts := strings.Split(line, "\t")
	if len(parts) < 19 {
		return model.City{}, false
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return model.City{}, false
	}

	population, err := strconv.Atoi(parts[14])
	if err != nil || population < p.minPopulation {
		return model.City{}, false
	}

	lat, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return model.City{}, false
	}

	lon, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return model.City{}, false
	}

	var timezone *string
	if parts[17] != "" {
		tz := parts[17]
		timezone = &tz
	}

	return model.City{
		ID:          id,
		Name:        parts[1],
		ASCIIName:   parts[2],
		CountryCode: parts[8],
		Admin1Code:  parts[10],
		Population:  population,
		Lat:         lat,
		Lon:         lon,
		Timezone:    timezone,
	}, true
}

// CreateCountryCodeMap creates a map of country codes
func CreateCountryCodeMap(countries []model.Country) map[string]bool {
	m := make(map[string]bool, len(countries))
	for _, country := range countries {
		m[country.Code] = true
	}
	return m
}
