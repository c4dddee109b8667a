// Package report renders detector output for the host CLI: a colorized
// table-backed text report, or a structured JSON/YAML dump, plus optional
// diagnostic code-slice diffing between a representative and its
// duplicates.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dupscan/dupscan/internal/detector"
	"github.com/dupscan/dupscan/pkg/method"
)

// Format selects a renderer.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Options configures rendering.
type Options struct {
	Format   Format
	Print    bool // include one code slice per duplicate entry.
	PrintAll bool // include every method's full code slice plus a unified diff against the representative.
	RunID    string
}

// SourceLoader supplies the source lines of a method's owning file,
// consulted only when Print/PrintAll request code slices. Hosts implement
// this over their own file cache; the report package never touches the
// filesystem directly.
type SourceLoader func(path string, startLine, endLine int) ([]string, error)

// Render writes groups to w in the configured format.
func Render(w io.Writer, groups []detector.Group, opts Options, loadSource SourceLoader) error {
	switch opts.Format {
	case FormatJSON:
		return renderStructured(w, groups, opts, func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		})
	case FormatYAML:
		return renderStructured(w, groups, opts, yaml.Marshal)
	default:
		return renderText(w, groups, opts, loadSource)
	}
}

type groupDTO struct {
	ID             string     `json:"id" yaml:"id"`
	Representative entryDTO   `json:"representative" yaml:"representative"`
	TotalImpact    float64    `json:"total_impact" yaml:"total_impact"`
	Duplicates     []entryDTO `json:"duplicates" yaml:"duplicates"`
}

type entryDTO struct {
	FullName   string  `json:"full_name" yaml:"full_name"`
	FilePath   string  `json:"file_path" yaml:"file_path"`
	StartLine  int     `json:"start_line" yaml:"start_line"`
	EndLine    int     `json:"end_line" yaml:"end_line"`
	Similarity float64 `json:"similarity,omitempty" yaml:"similarity,omitempty"`
	Impact     float64 `json:"impact,omitempty" yaml:"impact,omitempty"`
}

func renderStructured(w io.Writer, groups []detector.Group, opts Options, marshal func(v any) ([]byte, error)) error {
	dtos := make([]groupDTO, 0, len(groups))

	for _, g := range groups {
		dto := groupDTO{
			ID:             groupID(opts.RunID, g),
			Representative: entryFromRecord(g.Representative, 0, 0),
			TotalImpact:    g.TotalImpact,
		}

		for _, e := range g.Entries {
			dto.Duplicates = append(dto.Duplicates, entryFromRecord(e.Method, e.Similarity, e.Impact))
		}

		dtos = append(dtos, dto)
	}

	out, err := marshal(dtos)
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}

	_, err = w.Write(append(out, '\n'))

	return err
}

func groupID(runID string, g detector.Group) string {
	seed := fmt.Sprintf("%s:%s:%d", runID, g.Representative.FilePath, g.Representative.StartLine)

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

func entryFromRecord(m *method.Record, similarity, impact float64) entryDTO {
	return entryDTO{
		FullName:   m.FullName,
		FilePath:   m.FilePath,
		StartLine:  m.StartLine,
		EndLine:    m.EndLine,
		Similarity: similarity,
		Impact:     impact,
	}
}
