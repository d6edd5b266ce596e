// SPDX-License-Identifier: ice License 1.0

package document

import (
	"bytes"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/spdx/annotation"
	"github.com/ice-blockchain/spdx/tagvalue"
)

func fromTagValue(data []byte) (*Document, error) {
	pairs, err := tagvalue.Read(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read tag-value document")
	}
	var (
		doc        = new(Document)
		errs       *multierror.Error
		block      []*tagvalue.Pair
		blocks     int
		inSections bool
	)
	flush := func() {
		if len(block) == 0 {
			return
		}
		decoded, dErr := annotation.DecodeTagValue(block)
		if dErr != nil {
			errs = multierror.Append(errs, errors.Wrapf(dErr, "%v[%v]", keyAnnotations, blocks))
		} else {
			doc.Annotations = append(doc.Annotations, decoded)
		}
		blocks++
		block = nil
	}
	for _, pair := range pairs {
		if pair.Tag == annotation.TagAnnotator {
			flush()
			block = append(block, pair)
			inSections = true

			continue
		}
		if len(block) > 0 && annotation.IsTagValueTag(pair.Tag) {
			block = append(block, pair)

			continue
		}
		flush()
		if _, isSection := sectionTags[pair.Tag]; isSection {
			inSections = true
		}
		if !doc.header(pair, inSections) {
			doc.extraPairs = append(doc.extraPairs, pair)
		}
	}
	flush()

	return doc, errs.ErrorOrNil() //nolint:wrapcheck // Every member is already wrapped.
}

func (d *Document) header(pair *tagvalue.Pair, inSections bool) bool {
	switch pair.Tag {
	case tagSPDXVersion:
		d.SPDXVersion = pair.Value
	case tagDataLicense:
		d.DataLicense = pair.Value
	case tagSPDXID:
		if inSections {
			return false
		}
		d.SPDXID = pair.Value
	case tagName:
		d.Name = pair.Value
	case tagDocumentNamespace:
		d.DocumentNamespace = pair.Value
	default:
		return false
	}

	return true
}

func (d *Document) toTagValue() ([]byte, error) {
	var buf bytes.Buffer
	header := []*tagvalue.Pair{
		{Tag: tagSPDXVersion, Value: d.SPDXVersion},
		{Tag: tagDataLicense, Value: d.DataLicense},
		{Tag: tagSPDXID, Value: d.SPDXID},
		{Tag: tagName, Value: d.Name},
		{Tag: tagDocumentNamespace, Value: d.DocumentNamespace},
	}
	if err := tagvalue.Write(&buf, header...); err != nil {
		return nil, errors.Wrap(err, "failed to write tag-value document header")
	}
	if err := tagvalue.Write(&buf, d.extraPairs...); err != nil {
		return nil, errors.Wrap(err, "failed to write tag-value document")
	}
	for ix, an := range d.Annotations {
		buf.WriteString("\n")
		if err := an.WriteTagValue(&buf); err != nil {
			return nil, errors.Wrapf(err, "annotations[%v]", ix)
		}
	}

	return buf.Bytes(), nil
}
