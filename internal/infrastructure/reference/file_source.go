// Package reference loads the player reference dataset from disk.
package reference

import (
	"context"
	"fmt"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchside/dream-eleven/internal/domain/playerstats"
	domainref "github.com/pitchside/dream-eleven/internal/domain/reference"
)

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

type fileEntry struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Role    string `json:"role"`
}

func (s *FileSource) Load(ctx context.Context) ([]domainref.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read reference dataset %s: %w", s.path, err)
	}

	var rows []fileEntry
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode reference dataset %s: %w", s.path, err)
	}

	entries := make([]domainref.Entry, 0, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			return nil, fmt.Errorf("reference dataset %s: entry %d has no name", s.path, i)
		}
		role := playerstats.Role(strings.ToUpper(strings.TrimSpace(row.Role)))
		if _, ok := playerstats.AllRoles[role]; !ok {
			role = playerstats.RoleUnknown
		}
		entries = append(entries, domainref.Entry{
			Name:    name,
			Country: strings.TrimSpace(row.Country),
			Role:    role,
		})
	}
	return entries, nil
}
