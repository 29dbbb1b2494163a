package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveSeeds updates the ordering.seeds section in the config file. It edits
// the yaml.Node tree so comments and formatting in every other section
// survive the rewrite. A missing config file is created with just the
// ordering section.
func SaveSeeds(configPath string, seeds []SeedConfig) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	seedsNode := buildSeedsNode(seeds)

	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "ordering"},
						{
							Kind: yaml.MappingNode,
							Content: []*yaml.Node{
								{Kind: yaml.ScalarNode, Value: "seeds"},
								seedsNode,
							},
						},
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			orderingNode := ensureMappingKey(root, "ordering")
			setMappingKey(orderingNode, "seeds", seedsNode)
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	// Write atomically (write to temp, then rename)
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".espalier.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
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

// buildSeedsNode creates a yaml.Node representing the seeds array. Names use
// flow style so each seed stays on two lines.
func buildSeedsNode(seeds []SeedConfig) *yaml.Node {
	node := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: make([]*yaml.Node, 0, len(seeds)),
	}

	for _, seed := range seeds {
		namesNode := &yaml.Node{
			Kind:    yaml.SequenceNode,
			Style:   yaml.FlowStyle,
			Content: make([]*yaml.Node, 0, len(seed.Names)),
		}
		for _, name := range seed.Names {
			namesNode.Content = append(namesNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: name})
		}

		seedNode := &yaml.Node{Kind: yaml.MappingNode}
		seedNode.Content = append(seedNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "path"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: seed.Path, Style: yaml.DoubleQuotedStyle},
		)
		seedNode.Content = append(seedNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "names"},
			namesNode,
		)

		node.Content = append(node.Content, seedNode)
	}

	return node
}

// ensureMappingKey returns the mapping node stored at key, creating or
// replacing a non-mapping placeholder (like a bare `ordering:`) as needed.
func ensureMappingKey(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			if m.Content[i+1].Kind == yaml.MappingNode {
				return m.Content[i+1]
			}
			mapping := &yaml.Node{Kind: yaml.MappingNode}
			m.Content[i+1] = mapping
			return mapping
		}
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		mapping,
	)
	return mapping
}

// setMappingKey replaces the value stored at key, appending when absent.
func setMappingKey(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}
