// SPDX-License-Identifier: ice License 1.0

// Package document loads and writes just enough of an SPDX document to get at its annotations:
// the creation header, the annotation collection and, for JSON/YAML, every other top level key untouched.
package document

import (
	"github.com/pkg/errors"

	"github.com/ice-blockchain/spdx/annotation"
	"github.com/ice-blockchain/spdx/record"
	"github.com/ice-blockchain/spdx/tagvalue"
)

// Public API.

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTagValue Format = "tag-value"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spdx document format")
	ErrFileTooLarge      = errors.New("spdx document is too large")
)

type (
	Format string

	Document struct {
		// Extra holds the top level JSON/YAML keys this package doesn't model (packages, files, relationships, ...).
		// Annotations nested in packages, files and snippets are moved to Annotations and put back on Encode.
		Extra             record.Raw
		SPDXVersion       string
		DataLicense       string
		SPDXID            string
		Name              string
		DocumentNamespace string
		Annotations       []*annotation.Annotation
		// Tag-value pairs this package doesn't model, in their original order.
		extraPairs []*tagvalue.Pair
	}
)

// Private API.

const (
	configKey = "spdx/document"

	keySPDXVersion       = "spdxVersion"
	keyDataLicense       = "dataLicense"
	keySPDXID            = "SPDXID"
	keyName              = "name"
	keyDocumentNamespace = "documentNamespace"
	keyAnnotations       = "annotations"

	tagSPDXVersion       = "SPDXVersion"
	tagDataLicense       = "DataLicense"
	tagSPDXID            = "SPDXID"
	tagName              = "DocumentName"
	tagDocumentNamespace = "DocumentNamespace"
)

//nolint:gochecknoglobals // Tags that open a new section, after which SPDXID no longer belongs to the document.
var sectionTags = map[string]struct{}{
	"PackageName":           {},
	"FileName":              {},
	"SnippetSPDXID":         {},
	"LicenseID":             {},
	"Relationship":          {},
	annotation.TagAnnotator: {},
}

//nolint:gochecknoglobals // Element lists that can carry their own annotations, in decoding order.
var elementKeys = []string{"packages", "files", "snippets"}

type (
	config struct {
		MaxFileSizeBytes int64 `yaml:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	}
)
