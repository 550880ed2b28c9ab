package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/groblegark/gatewarden/internal/model"
)

// Source fetches a question list from somewhere (local file, S3 object).
type Source interface {
	Fetch(ctx context.Context) ([]model.Question, error)
}

// FileSource loads questions from a local JSON or TOML file, decided by
// the file extension.
type FileSource struct {
	Path string
}

// Fetch reads and parses the questions file.
func (f FileSource) Fetch(ctx context.Context) ([]model.Question, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}
	return Parse(data, filepath.Ext(f.Path))
}

// tomlFile is the top-level shape of a TOML questions file:
// repeated [[questions]] tables.
type tomlFile struct {
	Questions []model.Question `toml:"questions"`
}

// Parse decodes a question list from raw bytes. ext selects the format
// (".toml" for TOML, anything else is treated as JSON, an array of
// question objects).
func Parse(data []byte, ext string) ([]model.Question, error) {
	if strings.EqualFold(ext, ".toml") {
		var f tomlFile
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse questions toml: %w", err)
		}
		return f.Questions, nil
	}

	var qs []model.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("parse questions json: %w", err)
	}
	return qs, nil
}
