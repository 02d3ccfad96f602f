package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"campus-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed <file.json>",
	Short: "Load cities, universities, schools and departments from a JSON file",
	Long: `Load directory data. The file lists cities, each with its universities,
their email domains, schools and departments:

  {"cities": [{"name": "Almaty", "universities": [{"name": "KBTU",
    "domains": ["kbtu.kz"], "schools": [{"name": "SITE",
    "departments": ["Computer Science"]}]}]}]}

A file already seeded with the same content is skipped unless --force is
given.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Seed even if the file was loaded before")
}

type SeedFile struct {
	Cities []SeedCity `json:"cities"`
}

type SeedCity struct {
	Name         string           `json:"name"`
	Universities []SeedUniversity `json:"universities"`
}

type SeedUniversity struct {
	Name    string       `json:"name"`
	Domains []string     `json:"domains"`
	Schools []SeedSchool `json:"schools"`
}

type SeedSchool struct {
	Name        string   `json:"name"`
	Departments []string `json:"departments"`
}

// DirectoryWriter is the part of repository.DirectoryRepository seeding
// uses.
type DirectoryWriter interface {
	UpsertCity(ctx context.Context, name string) (uuid.UUID, error)
	CreateUniversity(ctx context.Context, name string, cityID *uuid.UUID, domains []string) (uuid.UUID, error)
	CreateSchool(ctx context.Context, universityID uuid.UUID, name string) (uuid.UUID, error)
	CreateDepartment(ctx context.Context, schoolID uuid.UUID, name string) (uuid.UUID, error)
}

type SeedStats struct {
	Cities, Universities, Schools, Departments int
}

// ProcessedFile records a seeded file in the cache.
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	ProcessedAt time.Time `json:"processed_at"`
}

type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: absolute file path
}

func runSeed(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	cacheFile := filepath.Join(filepath.Dir(path), ".seed_cache.json")

	cache, err := loadCache(cacheFile)
	if err != nil {
		logger.Warn("Failed to load seed cache, seeding anyway", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}
	hash, err := fileHash(path)
	if err != nil {
		return err
	}
	if cached, ok := cache.ProcessedFiles[path]; ok && cached.FileHash == hash && !seedForce {
		logger.Info("Seed file already loaded, skipping",
			zap.String("path", path),
			zap.Time("processed_at", cached.ProcessedAt),
		)
		return nil
	}

	data, err := readSeedFile(path)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := seedDirectory(ctx, data, repository.NewDirectoryRepository(db, logger))
	if err != nil {
		return err
	}
	logger.Info("Directory seeded",
		zap.Int("cities", stats.Cities),
		zap.Int("universities", stats.Universities),
		zap.Int("schools", stats.Schools),
		zap.Int("departments", stats.Departments),
	)

	cache.ProcessedFiles[path] = ProcessedFile{FilePath: path, FileHash: hash, ProcessedAt: time.Now()}
	if err := saveCache(cacheFile, cache); err != nil {
		logger.Warn("Failed to save seed cache", zap.Error(err))
	}
	return nil
}

func readSeedFile(path string) (*SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var data SeedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for _, c := range data.Cities {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("seed file: city without a name")
		}
		for _, u := range c.Universities {
			if strings.TrimSpace(u.Name) == "" {
				return nil, fmt.Errorf("seed file: university without a name in %s", c.Name)
			}
		}
	}
	return &data, nil
}

func seedDirectory(ctx context.Context, data *SeedFile, w DirectoryWriter) (SeedStats, error) {
	var stats SeedStats
	for _, c := range data.Cities {
		cityID, err := w.UpsertCity(ctx, strings.TrimSpace(c.Name))
		if err != nil {
			return stats, fmt.Errorf("city %s: %w", c.Name, err)
		}
		stats.Cities++

		for _, u := range c.Universities {
			uniID, err := w.CreateUniversity(ctx, strings.TrimSpace(u.Name), &cityID, u.Domains)
			if err != nil {
				return stats, fmt.Errorf("university %s: %w", u.Name, err)
			}
			stats.Universities++

			for _, s := range u.Schools {
				schoolID, err := w.CreateSchool(ctx, uniID, strings.TrimSpace(s.Name))
				if err != nil {
					return stats, fmt.Errorf("school %s: %w", s.Name, err)
				}
				stats.Schools++

				for _, d := range s.Departments {
					if _, err := w.CreateDepartment(ctx, schoolID, strings.TrimSpace(d)); err != nil {
						return stats, fmt.Errorf("department %s: %w", d, err)
					}
					stats.Departments++
				}
			}
		}
	}
	return stats, nil
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}

	data, err := os.ReadFile(cacheFile)
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}
	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("parse cache file: %w", err)
	}
	if cache.ProcessedFiles == nil {
		cache.ProcessedFiles = make(map[string]ProcessedFile)
	}
	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash seed file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
