// SPDX-License-Identifier: MIT
// Package: cifti
//
// xml.go - the CIFTI-2 XML extension (ecode 32).
//
// Only the parts needed to label a dscalar matrix are modelled: the scalar
// map names along dimension 0 and the brain models along dimension 1.

package cifti

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// ExtensionCIFTI is the NIfTI extension code carrying CIFTI-2 XML.
const ExtensionCIFTI int32 = 32

// Mapping types of a MatrixIndicesMap.
const (
	MapTypeScalars     = "CIFTI_INDEX_TYPE_SCALARS"
	MapTypeBrainModels = "CIFTI_INDEX_TYPE_BRAIN_MODELS"
)

// BrainModel is one structure along the grayordinate axis.
type BrainModel struct {
	IndexOffset             int    `xml:"IndexOffset,attr"`
	IndexCount              int    `xml:"IndexCount,attr"`
	ModelType               string `xml:"ModelType,attr"`
	BrainStructure          string `xml:"BrainStructure,attr"`
	SurfaceNumberOfVertices int    `xml:"SurfaceNumberOfVertices,attr,omitempty"`
}

type ciftiDoc struct {
	XMLName xml.Name `xml:"CIFTI"`
	Version string   `xml:"Version,attr"`
	Matrix  struct {
		Maps []indicesMap `xml:"MatrixIndicesMap"`
	} `xml:"Matrix"`
}

type indicesMap struct {
	AppliesTo   string       `xml:"AppliesToMatrixDimension,attr"`
	Type        string       `xml:"IndicesMapToDataType,attr"`
	NamedMaps   []namedMap   `xml:"NamedMap,omitempty"`
	BrainModels []BrainModel `xml:"BrainModel,omitempty"`
}

type namedMap struct {
	MapName string `xml:"MapName"`
}

func (m indicesMap) appliesTo(dim string) bool {
	for _, d := range strings.Split(m.AppliesTo, ",") {
		if strings.TrimSpace(d) == dim {
			return true
		}
	}
	return false
}

// parseCIFTIXML extracts the scalar map names (dimension 0) and brain models
// (dimension 1). Trailing NUL padding of the extension is ignored.
func parseCIFTIXML(data []byte) (maps []string, models []BrainModel, err error) {
	data = bytes.TrimRight(data, "\x00")
	var doc ciftiDoc
	if err = xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%v: %w", err, ErrBadExtension)
	}

	for _, m := range doc.Matrix.Maps {
		switch {
		case m.Type == MapTypeScalars && m.appliesTo("0"):
			for _, nm := range m.NamedMaps {
				maps = append(maps, strings.TrimSpace(nm.MapName))
			}
		case m.Type == MapTypeBrainModels && m.appliesTo("1"):
			models = append(models, m.BrainModels...)
		}
	}

	return maps, models, nil
}

// marshalCIFTIXML renders a dscalar document for the given labels.
func marshalCIFTIXML(maps []string, models []BrainModel) ([]byte, error) {
	var doc ciftiDoc
	doc.Version = "2"

	scalars := indicesMap{AppliesTo: "0", Type: MapTypeScalars}
	for _, name := range maps {
		scalars.NamedMaps = append(scalars.NamedMaps, namedMap{MapName: name})
	}
	doc.Matrix.Maps = append(doc.Matrix.Maps,
		scalars,
		indicesMap{AppliesTo: "1", Type: MapTypeBrainModels, BrainModels: models},
	)

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrBadExtension)
	}
	return append([]byte(xml.Header), out...), nil
}
