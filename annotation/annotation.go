// SPDX-License-Identifier: ice License 1.0

package annotation

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"

	"github.com/ice-blockchain/spdx/record"
	"github.com/ice-blockchain/spdx/tagvalue"
	"github.com/ice-blockchain/spdx/time"
)

func New(annotator string, date time.Time, annotationType AnnotationType, comment string) *Annotation {
	return &Annotation{
		Annotator:         annotator,
		AnnotationDate:    date,
		AnnotationType:    annotationType,
		AnnotationComment: comment,
	}
}

// Of returns a copy of the annotation that references the given SPDX element (or document).
func (a *Annotation) Of(spdxID string) *Annotation {
	cpy := *a
	cpy.SPDXIdentifierReference = record.Some(spdxID)

	return &cpy
}

func Decode(raw record.Raw) (*Annotation, error) {
	return schema.Decode(raw) //nolint:wrapcheck // It's already wrapped with the field it's about.
}

func (a *Annotation) Encode() (record.Raw, error) {
	return schema.Encode(a) //nolint:wrapcheck // It's already wrapped with the field it's about.
}

func (a *Annotation) Validate() error {
	_, err := a.Encode()

	return err
}

func (a *Annotation) Equal(other *Annotation) bool {
	return schema.Equal(a, other)
}

// Fingerprint is equal for equal annotations. It doesn't require the annotation to be valid.
func (a *Annotation) Fingerprint() uint64 {
	ref, set := a.SPDXIdentifierReference.Get()
	var canonical strings.Builder
	for _, part := range []string{
		a.Annotator,
		a.AnnotationDate.String(),
		strconv.Itoa(int(a.AnnotationType)),
		strconv.FormatBool(set),
		ref,
		a.AnnotationComment,
	} {
		canonical.WriteString(strconv.Itoa(len(part)))
		canonical.WriteString(":")
		canonical.WriteString(part)
	}

	return xxh3.HashString(canonical.String())
}

func (a *Annotation) MarshalJSON(ctx context.Context) ([]byte, error) {
	raw, err := a.Encode()
	if err != nil {
		return nil, err
	}
	bytes, err := json.MarshalContext(ctx, raw)

	return bytes, errors.Wrap(err, "failed to marshal annotation")
}

func (a *Annotation) UnmarshalJSON(ctx context.Context, bytes []byte) error {
	var raw record.Raw
	if err := json.UnmarshalContext(ctx, bytes, &raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal annotation")
	}

	return a.decodeInto(raw)
}

func (a *Annotation) MarshalYAML() (any, error) {
	raw, err := a.Encode()
	if err != nil {
		return nil, err
	}

	return map[string]any(raw), nil
}

func (a *Annotation) UnmarshalYAML(node *yaml.Node) error {
	var raw record.Raw
	if err := node.Decode(&raw); err != nil {
		return errors.Wrapf(err, "failed to decode annotation yaml at line %v", node.Line)
	}

	return a.decodeInto(raw)
}

func (a *Annotation) EncodeMsgpack(enc *msgpack.Encoder) error {
	raw, err := a.Encode()
	if err != nil {
		return err
	}

	return errors.Wrap(enc.Encode(map[string]any(raw)), "failed to EncodeMsgpack annotation")
}

func (a *Annotation) DecodeMsgpack(dec *msgpack.Decoder) error {
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return errors.Wrap(err, "failed to DecodeMsgpack annotation")
	}

	return a.decodeInto(raw)
}

func (a *Annotation) WriteTagValue(writer io.Writer) error {
	pairs, err := schema.ToTagValue(a)
	if err != nil {
		return err //nolint:wrapcheck // It's already wrapped with the field it's about.
	}

	return errors.Wrap(tagvalue.Write(writer, pairs...), "failed to write annotation")
}

// IsTagValueTag reports whether the tag belongs to an annotation block.
func IsTagValueTag(tag string) bool {
	return schema.FieldByTag(tag) != nil
}

func DecodeTagValue(pairs []*tagvalue.Pair) (*Annotation, error) {
	raw, err := schema.FromTagValue(pairs)
	if err != nil {
		return nil, err //nolint:wrapcheck // It's already wrapped with the field it's about.
	}

	return Decode(raw)
}

func ParseTagValue(reader io.Reader) (*Annotation, error) {
	pairs, err := tagvalue.Read(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read annotation")
	}

	return DecodeTagValue(pairs)
}

func (a *Annotation) decodeInto(raw record.Raw) error {
	decoded, err := Decode(raw)
	if err != nil {
		return err
	}
	*a = *decoded

	return nil
}
