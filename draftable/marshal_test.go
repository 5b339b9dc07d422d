// Unit tests for marshal.go.
//
// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package draftable_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diffeo/go-draftable/draftable"
)

type ExportKindMatrix struct {
	Kind        draftable.ExportKind
	JSON        string
	EncodeError string
	DecodeError string
}

var exportKinds = []ExportKindMatrix{
	{draftable.SinglePageExport, "single_page", "", ""},
	{draftable.CombinedExport, "combined", "", ""},
	{draftable.LeftExport, "left", "", ""},
	{draftable.RightExport, "right", "", ""},
	{draftable.ExportKind(17), "seventeen",
		"invalid export kind (marshal, 17)",
		"invalid export kind (unmarshal, seventeen)"},
}

func TestExportKindToJSON(t *testing.T) {
	for _, w := range exportKinds {
		t.Run(w.JSON, func(tt *testing.T) {
			actual, err := json.Marshal(w.Kind)
			if w.EncodeError == "" {
				if assert.NoError(tt, err) {
					assert.Equal(tt, "\""+w.JSON+"\"",
						string(actual))
				}
			} else {
				assert.EqualError(tt, err,
					"json: error calling MarshalText for type draftable.ExportKind: "+w.EncodeError)
			}
		})
	}
}

func TestExportKindToText(t *testing.T) {
	for _, w := range exportKinds {
		t.Run(w.JSON, func(tt *testing.T) {
			actual, err := w.Kind.MarshalText()
			if w.EncodeError == "" {
				if assert.NoError(tt, err) {
					assert.Equal(tt, w.JSON,
						string(actual))
				}
			} else {
				assert.EqualError(tt, err, w.EncodeError)
			}
		})
	}
}

func TestExportKindFromJSON(t *testing.T) {
	for _, w := range exportKinds {
		t.Run(w.JSON, func(tt *testing.T) {
			var actual draftable.ExportKind
			input := []byte("\"" + w.JSON + "\"")
			err := json.Unmarshal(input, &actual)
			if w.DecodeError == "" {
				if assert.NoError(tt, err) {
					assert.Equal(tt, actual, w.Kind)
				}
			} else {
				assert.EqualError(tt, err, w.DecodeError)
			}
		})
	}
}

func TestExportKindFromText(t *testing.T) {
	for _, w := range exportKinds {
		t.Run(w.JSON, func(tt *testing.T) {
			var actual draftable.ExportKind
			input := []byte(w.JSON)
			err := actual.UnmarshalText(input)
			if w.DecodeError == "" {
				if assert.NoError(tt, err) {
					assert.Equal(tt, actual, w.Kind)
				}
			} else {
				assert.EqualError(tt, err, w.DecodeError)
			}
		})
	}
}

func TestExportKindString(t *testing.T) {
	assert.Equal(t, "combined", draftable.CombinedExport.String())
	assert.Equal(t, "ExportKind(17)", draftable.ExportKind(17).String())
}
