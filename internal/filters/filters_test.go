// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/s3cli/s3cli/internal/attrs"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

type testBuildFiltersCase struct {
	Name      string   `yaml:"name"`
	Spec      string   `yaml:"spec"`
	Delimiter string   `yaml:"delimiter"`
	Want      []Filter `yaml:"want"`
	WantCount int      `yaml:"wantCount"`
}

type testCheckStringOperandCase struct {
	Name   string `yaml:"name"`
	Value  string `yaml:"value"`
	Filter Filter `yaml:"filter"`
	Want   bool   `yaml:"want"`
}

type testCheckNumericOperandCase struct {
	Name   string  `yaml:"name"`
	Value  float64 `yaml:"value"`
	Filter Filter  `yaml:"filter"`
	Want   bool    `yaml:"want"`
}

type testFilterDatasetCase struct {
	Name      string   `yaml:"name"`
	Spec      string   `yaml:"spec"`
	WantCount int      `yaml:"wantCount"`
	WantNames []string `yaml:"wantNames"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestBuildFilters(t *testing.T) {
	var tests []testBuildFiltersCase
	require.NoError(t, loadTestData("filters_test_build_filters.yaml", &tests))
	require.NotEmpty(t, tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			t.Setenv("S3CLI_FILTER_DELIM", tt.Delimiter)

			got := BuildFilters(tt.Spec)
			require.Len(t, got, tt.WantCount)
			for i, filter := range tt.Want {
				assert.Equal(t, filter.Key, got[i].Key)
				assert.Equal(t, filter.Operand, got[i].Operand)
				assert.Equal(t, filter.Value, got[i].Value)
				assert.Equal(t, filter.Negate, got[i].Negate)
				assert.Equal(t, filter.ServerSide, got[i].ServerSide)
			}
		})
	}
}

func TestServerSide(t *testing.T) {
	filters := BuildFilters("name^x,_prefix=logs/")

	v, ok := ServerSide(filters, "prefix")
	assert.True(t, ok)
	assert.Equal(t, "logs/", v)

	_, ok = ServerSide(filters, "name")
	assert.False(t, ok)
}

func TestCheckStringOperand(t *testing.T) {
	var tests []testCheckStringOperandCase
	require.NoError(t, loadTestData("filters_test_check_string_operand.yaml", &tests))
	require.NotEmpty(t, tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, checkStringOperand(tt.Value, tt.Filter))
		})
	}
}

func TestCheckNumericOperand(t *testing.T) {
	var tests []testCheckNumericOperandCase
	require.NoError(t, loadTestData("filters_test_check_numeric_operand.yaml", &tests))
	require.NotEmpty(t, tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, checkNumericOperand(tt.Value, tt.Filter))
		})
	}
}

func TestCheckContainsOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		filter Filter
		want   bool
	}{
		{"slice hit", []any{"a", "b"}, Filter{Operand: "@", Value: "b"}, true},
		{"slice miss", []any{"a"}, Filter{Operand: "@", Value: "b"}, false},
		{"slice negated", []any{"a"}, Filter{Operand: "@", Value: "b", Negate: true}, true},
		{"map hit", map[string]any{"env": "prod"}, Filter{Operand: "@", Value: "env"}, true},
		{"map negated", map[string]any{"env": "prod"}, Filter{Operand: "@", Value: "env", Negate: true}, false},
		{"unsupported", 3, Filter{Operand: "@", Value: "3"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkContainsOperand(tt.value, tt.filter))
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		want   float64
		wantOk bool
	}{
		{"float64", 1.5, 1.5, true},
		{"int", 3, 3, true},
		{"int64", int64(7), 7, true},
		{"uint64", uint64(9), 9, true},
		{"string", "4", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toFloat64(tt.value)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDrill(t *testing.T) {
	doc := gjson.Parse(`{
		"spec": {"image_id": "ami-1"},
		"requests": [{"id": "sir-1", "state": "open"}],
		"tags": ["a", "b"],
		"nested": {"list": [{"v": 1}, {"v": 2}]}
	}`)

	tests := []struct {
		path    string
		want    string
		exists  bool
		isArray bool
	}{
		{path: "spec.image_id", want: "ami-1", exists: true},
		{path: "requests.id", want: "sir-1", exists: true},
		{path: "requests[0].state", want: "open", exists: true},
		{path: "tags", exists: true, isArray: true},
		{path: "tags[1]", want: "b", exists: true},
		{path: "tags[5]", exists: false},
		{path: "nested.list[1].v", want: "2", exists: true},
		{path: "missing.key", exists: false},
		{path: "bad segment!", exists: false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := drill(doc, tt.path)
			assert.Equal(t, tt.exists, got.Exists())
			if tt.isArray {
				assert.True(t, got.IsArray())
				return
			}
			if tt.exists {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestApplyFilters(t *testing.T) {
	row := gjson.Parse(`{
		"key": "logs/app.log",
		"size": 2048,
		"storage_class": "STANDARD",
		"etag": null,
		"spec": {"image_id": "ami-1"}
	}`)

	attrList := attrs.AttrList{
		{Key: "key", OutputKey: "key", Include: true},
		{Key: "size", OutputKey: "bytes", Include: true},
		{Key: "storage_class", OutputKey: "class", Include: true},
		{Key: "etag", OutputKey: "etag", Include: true},
	}

	tests := []struct {
		name string
		spec string
		want bool
	}{
		{"no filters", "", true},
		{"by output key", "bytes>1024", true},
		{"by output key miss", "bytes<1024", false},
		{"by class", "class=STANDARD", true},
		{"two filters one fails", "class=STANDARD,key^data/", false},
		{"null value rejects", "etag=x", false},
		{"raw path", "spec.image_id=ami-1", true},
		{"unknown key is skipped", "color=blue", true},
		{"server side skipped", "_prefix=nope", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyFilters(row, attrList, BuildFilters(tt.spec)))
		})
	}
}

func TestFilterDataset(t *testing.T) {
	var tests []testFilterDatasetCase
	require.NoError(t, loadTestData("filters_test_filter_dataset.yaml", &tests))
	require.NotEmpty(t, tests)

	data := gjson.Parse(`[
		{"name": "logs-2023", "size": 50, "etag": "a"},
		{"name": "logs-2024", "size": 500, "etag": "b"},
		{"name": "data", "size": 1000, "etag": "c"}
	]`)

	attrList := attrs.AttrList{
		{Key: "*", OutputKey: "*"},
		{Key: "name", OutputKey: "name", Include: true},
		{Key: "size", OutputKey: "size", Include: true},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got := FilterDataset(data, attrList, tt.Spec)
			require.Len(t, got, tt.WantCount)
			for i, expected := range tt.WantNames {
				assert.Equal(t, expected, got[i]["name"])
				assert.NotContains(t, got[i], "etag")
				assert.NotContains(t, got[i], "*")
			}
		})
	}
}
