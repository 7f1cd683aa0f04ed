// Copyright 2026 The OfsaaValidator Authors
// SPDX-License-Identifier: MIT

// Package templates loads OFSAA XML declaration templates into schema
// definitions. Templates in the wild vary in structure (attribute vs child
// element, Column vs Field), so parsing tries a chain of fallbacks for every
// piece of table and column metadata.
package templates

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/GooferByte/OfsaaValidator/internal/schema"
)

// DefaultColumnLength applies when a template declares no length.
const DefaultColumnLength = 255

// stemTables maps well-known template filename stems to their staging table
// names, used when the document itself does not name the table.
var stemTables = map[string]string{
	"AccountAddress":    "ACCT_ADDR",
	"DimAccount":        "DIM_ACCOUNT",
	"DimCustomer":       "DIM_CUSTOMER",
	"DimBranch":         "DIM_BRANCH",
	"FctAccountBalance": "FCT_ACCOUNT_BALANCE",
}

// node is a generic XML element; templates are too loosely structured for a
// fixed struct mapping.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
	Text     string     `xml:",chardata"`
}

// attr returns the first present attribute among the given names.
func (n *node) attr(names ...string) (string, bool) {
	for _, name := range names {
		for _, a := range n.Attrs {
			if a.Name.Local == name {
				return a.Value, true
			}
		}
	}
	return "", false
}

// child returns the first direct child element with the given name.
func (n *node) child(name string) (*node, bool) {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			return &n.Children[i], true
		}
	}
	return nil, false
}

// find returns the first element with the given name anywhere in the tree,
// including n itself.
func (n *node) find(name string) (*node, bool) {
	if n.XMLName.Local == name {
		return n, true
	}
	for i := range n.Children {
		if found, ok := n.Children[i].find(name); ok {
			return found, true
		}
	}
	return nil, false
}

// findAll collects every element with the given name anywhere in the tree.
func (n *node) findAll(name string) []*node {
	var out []*node
	if n.XMLName.Local == name {
		out = append(out, n)
	}
	for i := range n.Children {
		out = append(out, n.Children[i].findAll(name)...)
	}
	return out
}

// Parse reads one XML template document. stem is the template filename
// without extension, used as the table-name fallback when the document does
// not carry one.
func Parse(r io.Reader, stem string) (*schema.Table, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	name := tableName(&root, stem)
	description, _ := root.attr("description")
	if description == "" {
		description = fmt.Sprintf("%s dimension/fact table", name)
	}

	tbl := &schema.Table{
		Name:        name,
		Description: description,
		Delimiter:   schema.DefaultDelimiter,
		Encoding:    schema.DefaultEncoding,
		DateFormat:  schema.DefaultDateFormat,
	}
	applyFileFormat(&root, tbl)

	cols, err := parseColumns(&root)
	if err != nil {
		return nil, err
	}
	tbl.Columns = cols
	tbl.SortColumns()

	return tbl, nil
}

// ParseFile parses a single template file.
func ParseFile(path string) (*schema.Table, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided templates dir
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tbl, err := Parse(f, stem)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return tbl, nil
}

// LoadDir parses every *.xml template in dir into a schema set. Individual
// templates that fail to parse are logged and skipped; a missing directory
// or a directory yielding no tables is a structural failure.
func LoadDir(dir string) (*schema.Set, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("templates directory not found: %s", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("scan templates directory: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no XML templates found in %s", dir)
	}

	set := schema.NewSet()
	for _, path := range paths {
		tbl, err := ParseFile(path)
		if err != nil {
			slog.Warn("skipping unreadable template", "path", path, "error", err)
			continue
		}
		set.Add(tbl)
		slog.Debug("loaded template", "table", tbl.Name, "columns", len(tbl.Columns))
	}

	if set.Len() == 0 {
		return nil, fmt.Errorf("no usable table definitions in %s", dir)
	}
	return set, nil
}

// tableName extracts the table name from root attributes, the root tag, or
// the filename stem, in that order. Names are upper-cased.
func tableName(root *node, stem string) string {
	if name, ok := root.attr("name", "tableName", "table"); ok && name != "" {
		return strings.ToUpper(name)
	}

	if tag := root.XMLName.Local; strings.Contains(tag, "Table") {
		if name := strings.ReplaceAll(tag, "Table", ""); name != "" {
			return strings.ToUpper(name)
		}
	}

	if mapped, ok := stemTables[stem]; ok {
		return mapped
	}
	return strings.ToUpper(stem)
}

// applyFileFormat reads the FileFormat (or Format) element if present.
func applyFileFormat(root *node, tbl *schema.Table) {
	format, ok := root.find("FileFormat")
	if !ok {
		format, ok = root.find("Format")
	}
	if !ok {
		return
	}

	if v, ok := format.attr("delimiter"); ok && v != "" {
		tbl.Delimiter = v
	}
	if v, ok := format.attr("encoding"); ok && v != "" {
		tbl.Encoding = v
	}
	if v, ok := format.attr("dateFormat"); ok && v != "" {
		tbl.DateFormat = v
	}
}

// parseColumns extracts the column list, trying the known layouts in order:
// a Columns wrapper, bare Column elements, then Field elements.
func parseColumns(root *node) ([]schema.Column, error) {
	var elems []*node
	if wrapper, ok := root.find("Columns"); ok {
		for i := range wrapper.Children {
			if wrapper.Children[i].XMLName.Local == "Column" {
				elems = append(elems, &wrapper.Children[i])
			}
		}
	}
	if len(elems) == 0 {
		elems = root.findAll("Column")
	}
	if len(elems) == 0 {
		elems = root.findAll("Field")
	}
	if len(elems) == 0 {
		return nil, fmt.Errorf("template declares no columns")
	}

	cols := make([]schema.Column, len(elems))
	for i, elem := range elems {
		cols[i] = parseColumn(elem, i)
	}
	return cols, nil
}

// parseColumn reads one column element with per-attribute fallbacks.
// defaultPos is the document order, used when no position is declared.
func parseColumn(elem *node, defaultPos int) schema.Column {
	name := textOf(elem, "Name", "name", "columnName", "fieldName")
	if name == "" {
		name = fmt.Sprintf("column_%d", defaultPos)
	}

	col := schema.Column{
		Position:    intOr(textOf(elem, "", "position", "order"), defaultPos),
		Name:        name,
		Type:        schema.ParseDataType(textOf(elem, "DataType", "dataType", "type")),
		Length:      intOr(textOf(elem, "Length", "length", "size", "maxLength"), DefaultColumnLength),
		Nullable:    parseNullable(elem),
		Requirement: parseRequirement(elem),
		Description: textOf(elem, "Description", "description", "comment"),
		Format:      schema.FormatForName(name),
	}
	if col.Description == "" {
		col.Description = name
	}
	return col
}

// textOf returns the named attribute value, falling back to the text of the
// named child element. childName may be empty to skip the child lookup.
func textOf(elem *node, childName string, attrNames ...string) string {
	if v, ok := elem.attr(attrNames...); ok && v != "" {
		return v
	}
	if childName != "" {
		if c, ok := elem.child(childName); ok {
			return strings.TrimSpace(c.Text)
		}
	}
	return ""
}

// parseNullable interprets the nullable/required/mandatory attribute.
// Whichever alias is present first, its value decides: false/n/no/0/
// required/mandatory mean the column rejects nulls, anything else means
// nullable. Absent attributes default to nullable.
func parseNullable(elem *node) bool {
	v, ok := elem.attr("nullable", "required", "mandatory")
	if !ok {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "n", "no", "0", "required", "mandatory":
		return false
	default:
		return true
	}
}

// parseRequirement reads the requirement flag, defaulting to optional.
func parseRequirement(elem *node) string {
	v, _ := elem.attr("requirement")
	if strings.EqualFold(strings.TrimSpace(v), schema.RequirementMandatory) {
		return schema.RequirementMandatory
	}
	return schema.RequirementOptional
}

// intOr parses s as an int, returning fallback on empty or invalid input.
func intOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
