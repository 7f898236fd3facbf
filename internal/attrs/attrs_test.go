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
	}{
		{
			name:  "single key",
			value: "package",
			want: AttrList{
				{Key: "package", OutputKey: "package", Include: true},
			},
		},
		{
			name:  "key with output key and transform",
			value: "package:pkg:u",
			want: AttrList{
				{Key: "package", OutputKey: "pkg", TransformSpec: "u", Include: true},
			},
		},
		{
			name:  "excluded key",
			value: "!version",
			want: AttrList{
				{Key: "version", OutputKey: "version", Include: false},
			},
		},
		{
			name:  "multiple specs",
			value: "package,version,category:cat",
			want: AttrList{
				{Key: "package", OutputKey: "package", Include: true},
				{Key: "version", OutputKey: "version", Include: true},
				{Key: "category", OutputKey: "cat", Include: true},
			},
		},
		{
			name: "existing attr updated not duplicated",
			initial: AttrList{
				{Key: "package", OutputKey: "package", Include: true},
			},
			value: "package:pkg:l",
			want: AttrList{
				{Key: "package", OutputKey: "pkg", TransformSpec: "l", Include: true},
			},
		},
		{
			name:  "star is excluded",
			value: "*::u",
			want: AttrList{
				{Key: "*", OutputKey: "*", TransformSpec: "u", Include: false},
			},
		},
		{
			name:  "empty value is a no-op",
			value: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.initial
			require.NoError(t, a.Set(tt.value))
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		input interface{}
		want  interface{}
	}{
		{name: "no spec passes through", spec: "", input: "scanpy", want: "scanpy"},
		{name: "upper", spec: "u", input: "scanpy", want: "SCANPY"},
		{name: "lower", spec: "l", input: "CuPy", want: "cupy"},
		{name: "last case wins", spec: "u,l", input: "CuPy", want: "cupy"},
		{name: "truncate", spec: "6", input: "scikit-learn", want: "scikit"},
		{name: "middle ellipsis", spec: "-8", input: "jupyterlab-server", want: "jup..ver"},
		{name: "shorter than limit untouched", spec: "30", input: "numpy", want: "numpy"},
		{name: "non-string untouched", spec: "u", input: 42, want: 42},
		{name: "bad timestamp untouched", spec: "t", input: "not-a-time", want: "not-a-time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := Attr{TransformSpec: tt.spec}
			assert.Equal(t, tt.want, attr.Transform(tt.input))
		})
	}
}

func TestAttr_Transform_TimeLocal(t *testing.T) {
	input := "2026-01-15T10:00:00Z"
	attr := Attr{TransformSpec: "t"}
	got := fmt.Sprintf("%v", attr.Transform(input))

	parsed, err := time.Parse(time.RFC3339, input)
	require.NoError(t, err)
	want := parsed.In(time.Now().Location()).Format("2006-01-02T15:04:05MST")
	assert.Equal(t, want, got)
}

func TestAttr_Transform_TimeAgo(t *testing.T) {
	input := "2026-01-15T10:00:00Z"
	attr := Attr{TransformSpec: "T"}
	got := fmt.Sprintf("%v", attr.Transform(input))

	parsed, err := time.Parse(time.RFC3339, input)
	require.NoError(t, err)
	assert.Equal(t, humanize.Time(parsed.In(time.Now().Location())), got)
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	a := AttrList{
		{Key: "*", TransformSpec: "u"},
		{Key: "package", TransformSpec: "10"},
		{Key: "version"},
	}

	require.NoError(t, a.SetGlobalTransformSpec())

	assert.Equal(t, "u,u", a[0].TransformSpec)
	assert.Equal(t, "u,10", a[1].TransformSpec)
	assert.Equal(t, "u,", a[2].TransformSpec)
}

func TestAttrList_SetGlobalTransformSpec_NoGlobal(t *testing.T) {
	a := AttrList{
		{Key: "package", TransformSpec: "l"},
	}

	require.NoError(t, a.SetGlobalTransformSpec())
	assert.Equal(t, "l", a[0].TransformSpec)
}

func TestAttrList_String(t *testing.T) {
	a := AttrList{
		{Key: "package", OutputKey: "pkg", TransformSpec: "u"},
		{Key: "version", OutputKey: "version"},
	}
	assert.Equal(t, "package:pkg:u,version:version:", a.String())
}

func TestAttrList_Type(t *testing.T) {
	a := AttrList{}
	assert.Equal(t, "list", a.Type())
}
