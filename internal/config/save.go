// Package config provides configuration types, defaults, and persistence for dealboard.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

// SaveStageColor sets theme.stage_colors.<stage> in the config file.
// Comments and formatting in other sections are preserved by editing the
// yaml.Node tree rather than re-marshaling Config.
func SaveStageColor(configPath string, stage pipeline.Stage, hex string) error {
	edit, err := stageColorEdit(stage, hex)
	if err != nil {
		return err
	}
	return updateConfig(configPath, edit)
}

// PreviewStageColor returns the line diff SaveStageColor would apply to the
// config file, without writing it. An empty result means no change.
func PreviewStageColor(configPath string, stage pipeline.Stage, hex string) (string, error) {
	edit, err := stageColorEdit(stage, hex)
	if err != nil {
		return "", err
	}
	before, after, err := editConfig(configPath, edit)
	if err != nil {
		return "", err
	}
	return LineDiff(string(before), string(after)), nil
}

func stageColorEdit(stage pipeline.Stage, hex string) (func(*yaml.Node), error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: %d", pipeline.ErrUnknownStage, int(stage))
	}
	if !isHexColor(hex) {
		return nil, fmt.Errorf("invalid hex color %q", hex)
	}
	return func(root *yaml.Node) {
		colors := ensureMapping(ensureMapping(root, "theme"), "stage_colors")
		setScalar(colors, stage.String(), hex)
	}, nil
}

// ClearStageColor removes theme.stage_colors.<stage> from the config file.
func ClearStageColor(configPath string, stage pipeline.Stage) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}
	return updateConfig(configPath, func(root *yaml.Node) {
		theme := lookup(root, "theme")
		if theme == nil || theme.Kind != yaml.MappingNode {
			return
		}
		colors := lookup(theme, "stage_colors")
		if colors == nil || colors.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i < len(colors.Content)-1; i += 2 {
			if colors.Content[i].Value == stage.String() {
				colors.Content = append(colors.Content[:i], colors.Content[i+2:]...)
				return
			}
		}
	})
}

// updateConfig applies edit to configPath and writes the result back
// atomically.
func updateConfig(configPath string, edit func(root *yaml.Node)) error {
	_, after, err := editConfig(configPath, edit)
	if err != nil {
		return err
	}
	return writeAtomic(configPath, after)
}

// editConfig reads configPath into a yaml.Node, lets edit change the root
// mapping, and returns the file contents before and after. A missing file
// reads as empty.
func editConfig(configPath string, edit func(root *yaml.Node)) (before, after []byte, err error) {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("parsing config: top level must be a mapping")
	}

	edit(root)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return nil, nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return data, buf.Bytes(), nil
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".dealboard.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// ensureMapping returns the mapping under key, creating it or replacing a
// null value (a key followed only by comments parses as null).
func ensureMapping(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		v := m.Content[i+1]
		if v.Kind != yaml.MappingNode {
			replacement := &yaml.Node{Kind: yaml.MappingNode, HeadComment: v.HeadComment, FootComment: v.FootComment}
			m.Content[i+1] = replacement
			return replacement
		}
		return v
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, child)
	return child
}

func setScalar(m *yaml.Node, key, value string) {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: yaml.DoubleQuotedStyle}
			return
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: yaml.DoubleQuotedStyle},
	)
}
