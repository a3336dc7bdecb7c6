// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/s3cli/s3cli/internal/apperr"
	"github.com/s3cli/s3cli/internal/attrs"
	"github.com/s3cli/s3cli/internal/config"
	"github.com/s3cli/s3cli/internal/filters"
	"github.com/s3cli/s3cli/internal/log"
)

// Output formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatRaw  = "raw"
)

// Formats lists the accepted --output values.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatRaw}

// Options controls how a result is rendered.
type Options struct {
	Format  string
	Titles  bool
	Color   bool
	Padding int
	Sort    string
	Filter  string
	Header  string
	Footer  string
}

// OptionsFromCommand reads the rendering flags of cmd. Header and footer come
// from cmd.Metadata.
func OptionsFromCommand(cmd *cli.Command) Options {
	opts := Options{
		Format:  cmd.String("output"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: int(cmd.Int("padding")),
		Sort:    cmd.String("sort"),
		Filter:  cmd.String("filter"),
	}
	if h, ok := cmd.Metadata["header"].(string); ok {
		opts.Header = h
	}
	if f, ok := cmd.Metadata["footer"].(string); ok {
		opts.Footer = f
	}
	return opts
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		// Sizes and counts arrive from JSON as float64 but are integral.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit filters, sorts, transforms and renders a listing. raw is the
// JSON encoded row array; parent optionally selects a nested array inside it.
func SliceDiceSpit(raw []byte, attrList attrs.AttrList, opts Options, parent string, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Format == FormatRaw {
		_, err := fmt.Fprintln(w, string(raw))
		return err
	}

	fullDataset := gjson.ParseBytes(raw)
	if parent != "" {
		fullDataset = fullDataset.Get(parent)
	}

	// Filter first so the later stages work on fewer rows.
	dataset := filters.FilterDataset(fullDataset, attrList, opts.Filter)

	// Sort on the untransformed values so sizes and times order correctly.
	SortDataset(dataset, opts.Sort)

	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, dataset)
	case FormatYAML:
		return writeYAML(w, dataset)
	}

	if err := attrList.SetGlobalTransformSpec(); err != nil {
		return err
	}
	for _, row := range dataset {
		for _, attr := range attrList {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	return TableWriter(dataset, attrList, opts, w)
}

// Emit renders a single result. text is the text form; doc is marshalled for
// json and yaml; raw, when non-nil, replaces doc for --output=raw.
func Emit(w io.Writer, opts Options, text string, doc any, raw any) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, doc)
	case FormatYAML:
		return writeYAML(w, doc)
	case FormatRaw:
		if raw == nil {
			raw = doc
		}
		return writeJSON(w, raw)
	default:
		_, err := fmt.Fprintln(w, text)
		return err
	}
}

// Rows marshals a row slice into the raw form consumed by SliceDiceSpit.
func Rows(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unknown, "", err, "cannot encode rows")
	}
	return b, nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		log.Errorf("json marshal: %v", err)
		return apperr.Wrap(apperr.Unknown, "", err, "cannot encode json output")
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeYAML(w io.Writer, v any) error {
	// Round trip through JSON so yaml keys follow the json tags.
	b, err := json.Marshal(v)
	if err != nil {
		return apperr.Wrap(apperr.Unknown, "", err, "cannot encode yaml output")
	}
	var generic any
	if err := yaml.Unmarshal(b, &generic); err != nil {
		return apperr.Wrap(apperr.Unknown, "", err, "cannot encode yaml output")
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		log.Errorf("yaml marshal: %v", err)
		return apperr.Wrap(apperr.Unknown, "", err, "cannot encode yaml output")
	}
	_, err = w.Write(out)
	return err
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(resultSet []map[string]interface{}, attrList attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	if len(resultSet) > 0 {
		columns := attrList.Included()

		var rows [][]string
		for _, result := range resultSet {
			row := make([]string, 0, len(columns))
			for _, attr := range columns {
				row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
			}
			rows = append(rows, row)
		}

		pad := opts.Padding
		t := table.New().
			BorderBottom(false).
			BorderTop(false).
			BorderLeft(false).
			BorderRight(false).
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				var style lipgloss.Style
				switch {
				case row == table.HeaderRow:
					style = headerStyle
				case row%2 == 0:
					style = evenRowStyle
				default:
					style = oddRowStyle
				}

				if col > 0 {
					style = style.PaddingLeft(pad)
				}

				return style
			}).
			Headers().
			Rows(rows...)

		if opts.Titles {
			headers := make([]string, 0, len(columns))
			for _, attr := range columns {
				headers = append(headers, strings.ToUpper(attr.OutputKey))
			}

			// https://github.com/charmbracelet/lipgloss/issues/261
			t = t.Headers(headers...).BorderHeader(false)
		}
		fmt.Fprintln(w, t)
	}

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
	return nil
}

// getColors returns configured color values for table rendering. Defaults
// depend on the terminal background so output stays readable in light and
// dark themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil && colorCfg != "" {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
