// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/s3cli/s3cli/internal/log"
)

// maxSchemaDepth limits how far nested structs are walked.
const maxSchemaDepth = 1

// DumpSchema writes the sorted attribute paths of typ, taken from its json
// tags, to w. If w is nil, os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	fmt.Fprintln(w,
		`Row attributes that are directly available to the --attrs, --filter and
--sort flags.`)
	fmt.Fprintln(w, "")

	names := dumpSchemaWalker("", typ, 0)
	if len(names) == 0 {
		log.Debugf("no tags found for type: %s", typ.Name())
		return
	}

	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

// dumpSchemaWalker walks a struct type collecting json tag names, prefixed by
// holder for nested structs.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []string {
	if typ.Kind() != reflect.Struct {
		return nil
	}

	names := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}
		name := strings.Split(tagValue, ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if holder != "" {
			name = holder + "." + name
		}
		names = append(names, name)

		if depth >= maxSchemaDepth {
			continue
		}
		ft := field.Type
		if ft.Kind() == reflect.Ptr || ft.Kind() == reflect.Slice {
			ft = ft.Elem()
		}
		// time.Time and friends are leaves.
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			names = append(names, dumpSchemaWalker(name, ft, depth+1)...)
		}
	}

	return names
}
