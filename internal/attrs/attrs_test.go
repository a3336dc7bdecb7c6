// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"fmt"
	"testing"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrList_Set(t *testing.T) {
	tests := []struct {
		name    string
		initial AttrList
		value   string
		want    AttrList
		wantErr bool
	}{
		{
			name:  "empty",
			value: "",
			want:  nil,
		},
		{
			name:  "star only",
			value: "*",
			want:  nil,
		},
		{
			name:  "plain keys",
			value: "name,creation_date",
			want: AttrList{
				{Key: "name", OutputKey: "name", Include: true},
				{Key: "creation_date", OutputKey: "creation_date", Include: true},
			},
		},
		{
			name:  "output key and transform",
			value: "size:bytes:h, last_modified::T",
			want: AttrList{
				{Key: "size", OutputKey: "bytes", Include: true, TransformSpec: "h"},
				{Key: "last_modified", OutputKey: "last_modified", Include: true, TransformSpec: "T"},
			},
		},
		{
			name:  "dotted key takes last segment",
			value: "spec.image_id",
			want:  AttrList{{Key: "spec.image_id", OutputKey: "image_id", Include: true}},
		},
		{
			name:  "excluded",
			value: "!etag",
			want:  AttrList{{Key: "etag", OutputKey: "etag", Include: false}},
		},
		{
			name:    "updates existing",
			initial: AttrList{{Key: "key", OutputKey: "key", Include: true}, {Key: "size", OutputKey: "size", Include: true, TransformSpec: "h"}},
			value:   "!key,size:bytes",
			want:    AttrList{{Key: "key", OutputKey: "key", Include: false}, {Key: "size", OutputKey: "bytes", Include: true, TransformSpec: "h"}},
		},
		{
			name:    "too many fields",
			value:   "a:b:c:d",
			wantErr: true,
		},
		{
			name:    "empty key",
			value:   ":out",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.initial
			err := a.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestMustParse(t *testing.T) {
	a := MustParse("key,size::h")
	assert.Len(t, a, 2)
	assert.Panics(t, func() { MustParse("::") })
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	a := AttrList{
		{Key: "*", TransformSpec: "U"},
		{Key: "name", OutputKey: "name", Include: true, TransformSpec: "l"},
	}
	require.NoError(t, a.SetGlobalTransformSpec())
	assert.Equal(t, "U,U", a[0].TransformSpec)
	assert.Equal(t, "U,l", a[1].TransformSpec)
	assert.Equal(t, "my-bucket", a[1].Transform("My-Bucket"))

	b := AttrList{{Key: "name", TransformSpec: "l"}}
	require.NoError(t, b.SetGlobalTransformSpec())
	assert.Equal(t, "l", b[0].TransformSpec)
}

func TestAttr_Transform(t *testing.T) {
	tests := []struct {
		name string
		spec string
		in   interface{}
		want interface{}
	}{
		{"no spec", "", "Value", "Value"},
		{"upper", "u", "value", "VALUE"},
		{"lower", "L", "VALUE", "value"},
		{"last case wins", "u,l", "MiXed", "mixed"},
		{"truncate", "5", "abcdefghij", "abcde"},
		{"truncate shorter is noop", "20", "abc", "abc"},
		{"elide middle", "-8", "abcdefghijklmnop", "abc..nop"},
		{"human bytes float", "h", float64(4200000), "4.2 MB"},
		{"human bytes int64", "h", int64(1024), "1.0 kB"},
		{"human ignores strings", "h", "big", "big"},
		{"non string passthrough", "u", 42, 42},
		{"bad time left alone", "t", "yesterday", "yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := Attr{TransformSpec: tt.spec}
			assert.Equal(t, tt.want, attr.Transform(tt.in))
		})
	}
}

func TestAttr_Transform_Time(t *testing.T) {
	input := "2024-01-15T10:00:00Z"
	parsed, err := time.Parse(time.RFC3339, input)
	require.NoError(t, err)

	local := Attr{TransformSpec: "t"}
	assert.Equal(t, parsed.In(time.Local).Format("2006-01-02T15:04:05MST"), fmt.Sprintf("%v", local.Transform(input)))

	ago := Attr{TransformSpec: "T"}
	assert.Equal(t, humanize.Time(parsed.In(time.Local)), fmt.Sprintf("%v", ago.Transform(input)))
}

func TestAttrList_Included(t *testing.T) {
	a := AttrList{
		{Key: "*", Include: false},
		{Key: "name", OutputKey: "name", Include: true},
		{Key: "etag", OutputKey: "etag", Include: false},
	}
	got := a.Included()
	require.Len(t, got, 1)
	assert.Equal(t, "name", got[0].Key)
}

func TestAttrList_String(t *testing.T) {
	a := AttrList{
		{Key: "key", OutputKey: "key"},
		{Key: "size", OutputKey: "bytes", TransformSpec: "h"},
	}
	assert.Equal(t, "key:key:,size:bytes:h", a.String())
}

func TestAttrList_Type(t *testing.T) {
	a := AttrList{}
	assert.Equal(t, "list", a.Type())
}
