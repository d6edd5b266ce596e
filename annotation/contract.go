// SPDX-License-Identifier: ice License 1.0

package annotation

import (
	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/ice-blockchain/spdx/record"
	"github.com/ice-blockchain/spdx/time"
)

// Public API.

const (
	AnnotationTypeReview AnnotationType = iota + 1
	AnnotationTypeOther
)

const (
	KeyAnnotator               = "annotator"
	KeyAnnotationDate          = "annotationDate"
	KeyAnnotationType          = "annotationType"
	KeySPDXIdentifierReference = "spdxIdentifierReference"
	// KeyComment is `comment`, not `annotationComment`.
	KeyComment = "comment"

	TagAnnotator               = "Annotator"
	TagAnnotationDate          = "AnnotationDate"
	TagAnnotationType          = "AnnotationType"
	TagSPDXIdentifierReference = "SPDXREF"
	TagComment                 = "AnnotationComment"
)

type (
	// AnnotationType is https://spdx.github.io/spdx-spec/8-annotations/#83-annotation-type.
	// The zero value is not a valid annotation type.
	AnnotationType uint8

	// Annotation is https://spdx.github.io/spdx-spec/8-annotations/.
	Annotation struct {
		// AnnotationDate is https://spdx.github.io/spdx-spec/8-annotations/#82-annotation-date.
		AnnotationDate time.Time
		// SPDXIdentifierReference is https://spdx.github.io/spdx-spec/8-annotations/#84-spdx-identifier-reference.
		// SPDX 2.2 marks it mandatory, but real documents leave it out, SPDX's own JSON example included.
		SPDXIdentifierReference record.Optional[string]
		// Annotator is https://spdx.github.io/spdx-spec/8-annotations/#81-annotator.
		Annotator string
		// AnnotationComment is https://spdx.github.io/spdx-spec/8-annotations/#85-annotation-comment.
		AnnotationComment string
		// AnnotationType is https://spdx.github.io/spdx-spec/8-annotations/#83-annotation-type.
		AnnotationType AnnotationType
	}
)

// Private API.

//nolint:gochecknoglobals // Immutable lookup tables.
var (
	annotationTypeTexts = map[AnnotationType]string{
		AnnotationTypeReview: "REVIEW",
		AnnotationTypeOther:  "OTHER",
	}
	annotationTypesByText = map[string]AnnotationType{
		"REVIEW": AnnotationTypeReview,
		"OTHER":  AnnotationTypeOther,
	}
	schema = record.NewSchema("annotation",
		record.String(KeyAnnotator, TagAnnotator, func(a *Annotation) *string { return &a.Annotator }),
		record.Timestamp(KeyAnnotationDate, TagAnnotationDate, func(a *Annotation) *time.Time { return &a.AnnotationDate }),
		record.Enum(KeyAnnotationType, TagAnnotationType, func(a *Annotation) *AnnotationType { return &a.AnnotationType }),
		record.OptionalString(KeySPDXIdentifierReference, TagSPDXIdentifierReference,
			func(a *Annotation) *record.Optional[string] { return &a.SPDXIdentifierReference }),
		record.String(KeyComment, TagComment, func(a *Annotation) *string { return &a.AnnotationComment }).AsText(),
	)
)

var (
	_ json.MarshalerContext   = (*Annotation)(nil)
	_ json.UnmarshalerContext = (*Annotation)(nil)
	_ yaml.Marshaler          = (*Annotation)(nil)
	_ yaml.Unmarshaler        = (*Annotation)(nil)
	_ msgpack.CustomEncoder   = (*Annotation)(nil)
	_ msgpack.CustomDecoder   = (*Annotation)(nil)
)
