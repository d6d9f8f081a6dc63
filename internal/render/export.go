// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/scholarops/pubsync/pkg/types"
)

// ExportJSON writes the store as indented JSON.
func ExportJSON(w io.Writer, st *types.Store) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("encoding store as JSON: %w", err)
	}
	return nil
}

// ExportYAML writes the store as YAML.
func ExportYAML(w io.Writer, st *types.Store) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("encoding store as YAML: %w", err)
	}
	return nil
}

// CSLItem represents a bibliographic entry in CSL (Citation Style
// Language) format. The field names follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// ExportCSL writes the publications as a CSL-YAML list, newest first.
func ExportCSL(w io.Writer, pubs []types.Publication) error {
	sorted := SortedByYear(pubs)
	items := make([]CSLItem, len(sorted))
	for i, pub := range sorted {
		items[i] = toCSLItem(pub, i+1)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding CSL items: %w", err)
	}
	return nil
}

// toCSLItem converts a Publication to a CSLItem. The ID is positional;
// publications have no stable external identifier in this store.
func toCSLItem(pub types.Publication, n int) CSLItem {
	item := CSLItem{
		ID:             fmt.Sprintf("pub-%d", n),
		Type:           "article",
		Title:          pub.Title,
		ContainerTitle: pub.Venue,
	}
	for _, a := range pub.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if pub.Year.Known() {
		item.Issued = &CSLDate{DateParts: [][]int{{int(pub.Year)}}}
	}
	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last
// token is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
