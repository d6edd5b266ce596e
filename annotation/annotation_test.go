// SPDX-License-Identifier: ice License 1.0

package annotation

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ice-blockchain/spdx/record"
	"github.com/ice-blockchain/spdx/terror"
	. "github.com/ice-blockchain/spdx/testing"
	"github.com/ice-blockchain/spdx/time"
)

func documentLevelRaw() record.Raw {
	return record.Raw{
		"annotator":      "Person: Jane Doe ()",
		"annotationDate": "2010-01-29T18:30:22Z",
		"annotationType": "OTHER",
		"comment":        "Document level annotation",
	}
}

func documentLevelAnnotation() *Annotation {
	return New("Person: Jane Doe ()", time.MustParse("2010-01-29T18:30:22Z"), AnnotationTypeOther, "Document level annotation")
}

func TestDecode(t *testing.T) {
	t.Parallel()
	annotation, err := Decode(documentLevelRaw())
	require.NoError(t, err)
	assert.Equal(t, "Person: Jane Doe ()", annotation.Annotator)
	assert.Equal(t, "2010-01-29T18:30:22Z", annotation.AnnotationDate.String())
	assert.Equal(t, AnnotationTypeOther, annotation.AnnotationType)
	assert.Equal(t, "Document level annotation", annotation.AnnotationComment)
	assert.False(t, annotation.SPDXIdentifierReference.IsSet())
	assert.Equal(t, documentLevelAnnotation(), annotation)

	raw := documentLevelRaw()
	raw[KeySPDXIdentifierReference] = "SPDXRef-File"
	annotation, err = Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, documentLevelAnnotation().Of("SPDXRef-File"), annotation)
}

func TestDecodeFailures(t *testing.T) {
	t.Parallel()
	GIVEN("an annotation without a comment", func() {
		raw := documentLevelRaw()
		delete(raw, KeyComment)
		WHEN("it's decoded", func() {
			_, err := Decode(raw)
			THEN(func() {
				require.ErrorIs(t, err, record.ErrMissingField)
				assert.Equal(t, KeyComment, terror.As(err).FieldName())
			})
		})
	})
	GIVEN("an annotation with an `annotationComment` key instead of `comment`", func() {
		raw := documentLevelRaw()
		raw["annotationComment"] = raw[KeyComment]
		delete(raw, KeyComment)
		_, err := Decode(raw)
		require.ErrorIs(t, err, record.ErrMissingField)
		assert.Equal(t, KeyComment, terror.As(err).FieldName())
	})
	GIVEN("an annotation type outside of the closed set", func() {
		raw := documentLevelRaw()
		raw[KeyAnnotationType] = "APPROVED"
		_, err := Decode(raw)
		require.ErrorIs(t, err, record.ErrInvalidEnumValue)
		assert.Equal(t, KeyAnnotationType, terror.As(err).FieldName())
		assert.Equal(t, "APPROVED", terror.As(err).Value())
	})
	GIVEN("an annotation type in the wrong case", func() {
		raw := documentLevelRaw()
		raw[KeyAnnotationType] = "Review"
		_, err := Decode(raw)
		require.ErrorIs(t, err, record.ErrInvalidEnumValue)
		assert.Equal(t, "Review", terror.As(err).Value())
	})
	GIVEN("a malformed annotation date", func() {
		raw := documentLevelRaw()
		raw[KeyAnnotationDate] = "not-a-date"
		_, err := Decode(raw)
		require.ErrorIs(t, err, record.ErrInvalidTimestamp)
		assert.Equal(t, KeyAnnotationDate, terror.As(err).FieldName())
		assert.Equal(t, "not-a-date", terror.As(err).Value())
	})
	GIVEN("any mandatory key is missing", func() {
		for _, key := range []string{KeyAnnotator, KeyAnnotationDate, KeyAnnotationType, KeyComment} {
			raw := documentLevelRaw()
			delete(raw, key)
			_, err := Decode(raw)
			require.ErrorIs(t, err, record.ErrMissingField, key)
			assert.Equal(t, key, terror.As(err).FieldName())
		}
	})
}

func TestEncode(t *testing.T) {
	t.Parallel()
	raw, err := documentLevelAnnotation().Encode()
	require.NoError(t, err)
	assert.Equal(t, documentLevelRaw(), raw)
	assert.NotContains(t, raw, KeySPDXIdentifierReference)

	raw, err = documentLevelAnnotation().Of("SPDXRef-DOCUMENT").Encode()
	require.NoError(t, err)
	assert.Equal(t, "SPDXRef-DOCUMENT", raw[KeySPDXIdentifierReference])

	raw, err = documentLevelAnnotation().Of("").Encode()
	require.NoError(t, err)
	assert.Contains(t, raw, KeySPDXIdentifierReference)
	assert.Empty(t, raw[KeySPDXIdentifierReference])

	invalid := documentLevelAnnotation()
	invalid.AnnotationType = AnnotationType(42)
	_, err = invalid.Encode()
	require.ErrorIs(t, err, record.ErrInvariantViolation)
	require.ErrorIs(t, invalid.Validate(), record.ErrInvariantViolation)
	_, err = json.MarshalContext(context.Background(), invalid)
	require.Error(t, err)

	invalid = documentLevelAnnotation()
	invalid.AnnotationDate = time.Time{}
	_, err = invalid.Encode()
	require.ErrorIs(t, err, record.ErrInvariantViolation)
	require.NoError(t, documentLevelAnnotation().Validate())
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	for _, annotation := range []*Annotation{
		documentLevelAnnotation(),
		documentLevelAnnotation().Of("SPDXRef-DOCUMENT"),
		documentLevelAnnotation().Of(""),
		New("Tool: scanner-1.0", time.MustParse("2011-03-13T00:00:00Z"), AnnotationTypeReview, "multi\nline\ncomment"),
		New("", time.MustParse("1969-07-20T20:17:40Z"), AnnotationTypeReview, ""),
		New("Person: Jane Doe () ", time.MustParse("2010-01-29T18:30:22Z"), AnnotationTypeOther, " padded comment\n"),
		documentLevelAnnotation().Of(" SPDXRef-A"),
		New("<text>Jane", time.MustParse("2010-01-29T18:30:22Z"), AnnotationTypeOther, "<text>"),
	} {
		raw, err := annotation.Encode()
		require.NoError(t, err)
		decoded, err := Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, annotation, decoded)
		assert.True(t, annotation.Equal(decoded))

		reencoded, err := decoded.Encode()
		require.NoError(t, err)
		assert.Equal(t, raw, reencoded)

		AssertSymmetricEncodings(t, annotation)

		var buf bytes.Buffer
		require.NoError(t, annotation.WriteTagValue(&buf))
		fromTagValue, err := ParseTagValue(&buf)
		require.NoError(t, err)
		assert.Equal(t, annotation, fromTagValue)
	}

	unwritable := documentLevelAnnotation()
	unwritable.AnnotationComment = "see </text> here"
	raw, err := unwritable.Encode()
	require.NoError(t, err)
	decoded, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, unwritable, decoded)
	var buf bytes.Buffer
	err = unwritable.WriteTagValue(&buf)
	require.ErrorIs(t, err, record.ErrInvariantViolation)
	assert.Equal(t, KeyComment, terror.As(err).FieldName())
	assert.Empty(t, buf.String())
}

func TestJSON(t *testing.T) {
	t.Parallel()
	AssertSymmetricMarshallingUnmarshalling(t, documentLevelAnnotation(), `{
		"annotationDate": "2010-01-29T18:30:22Z",
		"annotationType": "OTHER",
		"annotator": "Person: Jane Doe ()",
		"comment": "Document level annotation"
	}`)
	AssertSymmetricMarshallingUnmarshalling(t, documentLevelAnnotation().Of("SPDXRef-DOCUMENT"), `{
		"annotationDate": "2010-01-29T18:30:22Z",
		"annotationType": "OTHER",
		"annotator": "Person: Jane Doe ()",
		"comment": "Document level annotation",
		"spdxIdentifierReference": "SPDXRef-DOCUMENT"
	}`)

	var annotation Annotation
	err := json.UnmarshalContext(context.Background(), []byte(`{
		"annotationDate": "2010-01-29T18:30:22Z",
		"annotationType": "APPROVED",
		"annotator": "Person: Jane Doe ()",
		"comment": "Document level annotation"
	}`), &annotation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), record.ErrInvalidEnumValue.Error())
}

func TestTagValue(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, documentLevelAnnotation().Of("SPDXRef-DOCUMENT").WriteTagValue(&buf))
	assert.Equal(t, "Annotator: Person: Jane Doe ()\n"+
		"AnnotationDate: 2010-01-29T18:30:22Z\n"+
		"AnnotationType: OTHER\n"+
		"SPDXREF: SPDXRef-DOCUMENT\n"+
		"AnnotationComment: <text>Document level annotation</text>\n", buf.String())

	annotation, err := ParseTagValue(strings.NewReader("Annotator: Person: Jane Doe ()\n" +
		"AnnotationDate: 2010-01-29T18:30:22Z\n" +
		"AnnotationComment: <text>Document level annotation</text>\n" +
		"AnnotationType: OTHER\n"))
	require.NoError(t, err)
	assert.Equal(t, documentLevelAnnotation(), annotation)

	_, err = ParseTagValue(strings.NewReader("Annotator: Person: Jane Doe ()\nAnnotationDate: 2010-01-29T18:30:22Z\nAnnotationType: OTHER\n"))
	require.ErrorIs(t, err, record.ErrMissingField)
	assert.Equal(t, KeyComment, terror.As(err).FieldName())

	assert.True(t, IsTagValueTag("SPDXREF"))
	assert.True(t, IsTagValueTag("AnnotationComment"))
	assert.False(t, IsTagValueTag("PackageName"))
}

func TestEqual(t *testing.T) {
	t.Parallel()
	a, b := documentLevelAnnotation(), documentLevelAnnotation()
	assert.True(t, a.Equal(b))
	assert.True(t, *a == *b)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	for _, mutate := range []func(*Annotation){
		func(an *Annotation) { an.Annotator = "Person: John Doe ()" },
		func(an *Annotation) { an.AnnotationDate = time.MustParse("2010-01-29T18:30:23Z") },
		func(an *Annotation) { an.AnnotationType = AnnotationTypeReview },
		func(an *Annotation) { an.SPDXIdentifierReference = record.Some("SPDXRef-DOCUMENT") },
		func(an *Annotation) { an.SPDXIdentifierReference = record.Some("") },
		func(an *Annotation) { an.AnnotationComment = "Package level annotation" },
	} {
		c := documentLevelAnnotation()
		mutate(c)
		assert.False(t, a.Equal(c))
		assert.False(t, c.Equal(a))
		assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	}
	var nilAnnotation *Annotation
	assert.False(t, a.Equal(nilAnnotation))
	assert.True(t, nilAnnotation.Equal(nil))
}
