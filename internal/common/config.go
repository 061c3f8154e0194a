package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	OCR    OCRConfig
	Output OutputConfig
	Report ReportConfig
	Debug  bool
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm    string // binary name or absolute path; if empty -> "pdftoppm"
	Pdftotext   string // binary name or absolute path; if empty -> "pdftotext"
	Language    string // default "eng"
	TessdataDir string
	DPI         int  // rasterization DPI for scanned PDFs, default 300
	MaxPages    int  // page cap per PDF; 0 = no limit
	Enhance     bool // pre-OCR image enhancement of rasterized pages
}

// OutputConfig holds the output namespaces inside the processed folder.
type OutputConfig struct {
	MergedDirName    string
	ConvertedDirName string
	LogName          string
}

// ReportConfig controls the XLSX run report.
type ReportConfig struct {
	Enabled  bool
	FileName string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Tesseract:   getEnv("SCANMERGE_TESSERACT", "tesseract"),
			Pdftoppm:    getEnv("SCANMERGE_PDFTOPPM", "pdftoppm"),
			Pdftotext:   getEnv("SCANMERGE_PDFTOTEXT", "pdftotext"),
			Language:    getEnv("SCANMERGE_LANG", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			DPI:         getEnvAsInt("SCANMERGE_DPI", 300),
			MaxPages:    getEnvAsInt("SCANMERGE_MAX_PAGES", 10),
			Enhance:     getEnvAsBool("SCANMERGE_ENHANCE", false),
		},
		Output: OutputConfig{
			MergedDirName:    "output_pdfs",
			ConvertedDirName: "jpeg_output_pdfs",
			LogName:          "log.txt",
		},
		Report: ReportConfig{
			Enabled:  getEnvAsBool("SCANMERGE_REPORT", true),
			FileName: getEnv("SCANMERGE_REPORT_FILE", "scanmerge_report.xlsx"),
		},
		Debug: getEnvAsBool("SCANMERGE_DEBUG", false),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
