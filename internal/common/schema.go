package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FolderConfigName is the optional per-folder override file.
const FolderConfigName = "scanmerge.json"

// folderOverride mirrors the keys scanmerge.json may set. Pointers so
// absent keys leave the environment-derived value alone.
type folderOverride struct {
	Language *string `json:"language"`
	DPI      *int    `json:"dpi"`
	MaxPages *int    `json:"max_pages"`
	Enhance  *bool   `json:"enhance"`
	Report   *bool   `json:"report"`
}

// buildFolderConfigSchema returns the JSON-Schema (draft 2020-12 subset)
// the override file is validated against before use.
func buildFolderConfigSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"language":  map[string]any{"type": "string", "minLength": 3},
			"dpi":       map[string]any{"type": "integer", "minimum": 72, "maximum": 1200},
			"max_pages": map[string]any{"type": "integer", "minimum": 0},
			"enhance":   map[string]any{"type": "boolean"},
			"report":    map[string]any{"type": "boolean"},
		},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ApplyFolderConfig merges <folder>/scanmerge.json into cfg if the file
// exists. The file is validated against the embedded schema first; a
// file that fails validation is a configuration error, not a skip.
func (c *Config) ApplyFolderConfig(folder string) error {
	path := filepath.Join(folder, FolderConfigName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return WrapError(err, "read folder config")
	}
	if err := ValidateJSONAgainstSchema(buildFolderConfigSchema(), data); err != nil {
		return NewAppError("CONFIG_ERROR", FolderConfigName+" is invalid", err)
	}
	var ov folderOverride
	if err := json.Unmarshal(data, &ov); err != nil {
		return WrapError(err, "decode folder config")
	}
	if ov.Language != nil {
		c.OCR.Language = *ov.Language
	}
	if ov.DPI != nil {
		c.OCR.DPI = *ov.DPI
	}
	if ov.MaxPages != nil {
		c.OCR.MaxPages = *ov.MaxPages
	}
	if ov.Enhance != nil {
		c.OCR.Enhance = *ov.Enhance
	}
	if ov.Report != nil {
		c.Report.Enabled = *ov.Report
	}
	return nil
}
