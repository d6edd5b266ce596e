// SPDX-License-Identifier: ice License 1.0

package document

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ice-blockchain/spdx/annotation"
	appCfg "github.com/ice-blockchain/spdx/config"
	"github.com/ice-blockchain/spdx/log"
	"github.com/ice-blockchain/spdx/record"
)

func loadConfig() *config {
	var cfg config
	appCfg.MustLoadFromKeyWithDefaults(configKey, &cfg, &config{MaxFileSizeBytes: 100 * 1024 * 1024}) //nolint:mnd // 100MB.

	return &cfg
}

func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".spdx", ".tv":
		return FormatTagValue, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "can't tell the format of %v", path)
	}
}

func FromFile(ctx context.Context, path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %v", path)
	}
	if maxSize := loadConfig().MaxFileSizeBytes; info.Size() > maxSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "%v is %v bytes, max %v", path, info.Size(), maxSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %v", path)
	}
	doc, err := Parse(ctx, format, data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %v", path)
	}
	log.Debug("loaded spdx document", "path", path, "format", format, "annotations", len(doc.Annotations))

	return doc, nil
}

func Parse(ctx context.Context, format Format, data []byte) (*Document, error) {
	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "context failed")
	}
	var (
		doc *Document
		err error
	)
	switch format {
	case FormatJSON:
		var raw record.Raw
		if err = json.UnmarshalContext(ctx, data, &raw); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal json document")
		}
		doc, err = fromRaw(raw)
	case FormatYAML:
		var raw record.Raw
		if err = yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal yaml document")
		}
		doc, err = fromRaw(raw)
	case FormatTagValue:
		doc, err = fromTagValue(data)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	if err != nil {
		return nil, err
	}
	if unreferenced := len(doc.Annotations) - doc.referencedAnnotations(); unreferenced > 0 {
		log.Debug("annotations without spdxIdentifierReference are attributed to the document",
			"spdxId", doc.SPDXID, "annotations", unreferenced)
	}

	return doc, nil
}

func fromRaw(raw record.Raw) (*Document, error) {
	doc := &Document{Extra: make(record.Raw, len(raw))}
	var errs *multierror.Error
	for key, val := range raw {
		switch key {
		case keySPDXVersion:
			errs = multierror.Append(errs, headerString(key, val, &doc.SPDXVersion))
		case keyDataLicense:
			errs = multierror.Append(errs, headerString(key, val, &doc.DataLicense))
		case keySPDXID:
			errs = multierror.Append(errs, headerString(key, val, &doc.SPDXID))
		case keyName:
			errs = multierror.Append(errs, headerString(key, val, &doc.Name))
		case keyDocumentNamespace:
			errs = multierror.Append(errs, headerString(key, val, &doc.DocumentNamespace))
		case keyAnnotations:
			annotations, err := decodeAnnotations(keyAnnotations, val, "")
			errs = multierror.Append(errs, err)
			doc.Annotations = annotations
		default:
			doc.Extra[key] = val
		}
	}
	for _, key := range elementKeys {
		errs = multierror.Append(errs, doc.decodeElementAnnotations(key))
	}

	return doc, errs.ErrorOrNil() //nolint:wrapcheck // Every member is already wrapped.
}

func headerString(key string, val any, dst *string) error {
	if val == nil {
		return nil
	}
	str, ok := val.(string)
	if !ok {
		return errors.Wrapf(record.ErrInvalidFieldType, "document %v is %T", key, val)
	}
	*dst = str

	return nil
}

// decodeElementAnnotations moves the annotations nested in packages, files or snippets out of Extra.
// Those without a reference are about the element they're nested in.
func (d *Document) decodeElementAnnotations(key string) error {
	items, ok := d.Extra[key].([]any)
	if !ok {
		return nil
	}
	var errs *multierror.Error
	elements := make([]any, 0, len(items))
	for ix, item := range items {
		element, isMap := asRaw(item)
		if _, nested := element[keyAnnotations]; !isMap || !nested {
			elements = append(elements, item)

			continue
		}
		element = maps.Clone(element)
		spdxID, _ := element[keySPDXID].(string)
		annotations, err := decodeAnnotations(fmt.Sprintf("%v[%v].%v", key, ix, keyAnnotations), element[keyAnnotations], spdxID)
		errs = multierror.Append(errs, err)
		d.Annotations = append(d.Annotations, annotations...)
		delete(element, keyAnnotations)
		elements = append(elements, map[string]any(element))
	}
	d.Extra[key] = elements

	return errs.ErrorOrNil()
}

func decodeAnnotations(path string, val any, owner string) ([]*annotation.Annotation, error) {
	if val == nil {
		return nil, nil
	}
	items, ok := val.([]any)
	if !ok {
		return nil, errors.Wrapf(record.ErrInvalidFieldType, "%v is %T", path, val)
	}
	var errs *multierror.Error
	annotations := make([]*annotation.Annotation, 0, len(items))
	for ix, item := range items {
		raw, isMap := asRaw(item)
		if !isMap {
			errs = multierror.Append(errs, errors.Wrapf(record.ErrInvalidFieldType, "%v[%v] is %T", path, ix, item))

			continue
		}
		decoded, err := annotation.Decode(raw)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "%v[%v]", path, ix))

			continue
		}
		if owner != "" && !decoded.SPDXIdentifierReference.IsSet() {
			decoded = decoded.Of(owner)
		}
		annotations = append(annotations, decoded)
	}

	return annotations, errs.ErrorOrNil()
}

func asRaw(item any) (record.Raw, bool) {
	switch typed := item.(type) {
	case map[string]any:
		return typed, true
	case record.Raw:
		return typed, true
	default:
		return nil, false
	}
}

func (d *Document) toRaw() (record.Raw, error) {
	raw := record.Raw{
		keySPDXVersion:       d.SPDXVersion,
		keyDataLicense:       d.DataLicense,
		keySPDXID:            d.SPDXID,
		keyName:              d.Name,
		keyDocumentNamespace: d.DocumentNamespace,
	}
	elementIDs := d.elementIDs()
	var (
		annotations []any
		nested      = make(map[string][]any, len(elementIDs))
	)
	for ix, an := range d.Annotations {
		encoded, err := an.Encode()
		if err != nil {
			return nil, errors.Wrapf(err, "%v[%v]", keyAnnotations, ix)
		}
		if ref, isSet := an.SPDXIdentifierReference.Get(); isSet && ref != d.SPDXID {
			if _, isElement := elementIDs[ref]; isElement {
				delete(encoded, annotation.KeySPDXIdentifierReference)
				nested[ref] = append(nested[ref], map[string]any(encoded))

				continue
			}
		}
		annotations = append(annotations, map[string]any(encoded))
	}
	if len(annotations) > 0 {
		raw[keyAnnotations] = annotations
	}
	if extra := d.extraWithAnnotations(nested); len(extra) > 0 {
		if err := mergo.Merge(&raw, extra); err != nil {
			return nil, errors.Wrap(err, "failed to merge extra document keys")
		}
	}

	return raw, nil
}

func (d *Document) elementIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, key := range elementKeys {
		items, _ := d.Extra[key].([]any)
		for _, item := range items {
			if element, isMap := asRaw(item); isMap {
				if spdxID, isString := element[keySPDXID].(string); isString && spdxID != "" {
					ids[spdxID] = struct{}{}
				}
			}
		}
	}

	return ids
}

// extraWithAnnotations returns Extra with the element annotations put back into their elements, leaving Extra itself untouched.
func (d *Document) extraWithAnnotations(nested map[string][]any) record.Raw {
	if len(nested) == 0 {
		return d.Extra
	}
	extra := maps.Clone(d.Extra)
	for _, key := range elementKeys {
		items, isList := extra[key].([]any)
		if !isList {
			continue
		}
		elements := make([]any, 0, len(items))
		for _, item := range items {
			element, isMap := asRaw(item)
			spdxID, _ := element[keySPDXID].(string)
			annotations, found := nested[spdxID]
			if !isMap || !found {
				elements = append(elements, item)

				continue
			}
			element = maps.Clone(element)
			element[keyAnnotations] = annotations
			delete(nested, spdxID)
			elements = append(elements, map[string]any(element))
		}
		extra[key] = elements
	}

	return extra
}

func (d *Document) Encode(ctx context.Context, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		raw, err := d.toRaw()
		if err != nil {
			return nil, err
		}
		compact, err := json.MarshalContext(ctx, map[string]any(raw))
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal json document")
		}
		var indented bytes.Buffer
		if err = json.Indent(&indented, compact, "", "  "); err != nil {
			return nil, errors.Wrap(err, "failed to indent json document")
		}

		return indented.Bytes(), nil
	case FormatYAML:
		raw, err := d.toRaw()
		if err != nil {
			return nil, err
		}
		out, err := yaml.Marshal(map[string]any(raw))

		return out, errors.Wrap(err, "failed to marshal yaml document")
	case FormatTagValue:
		return d.toTagValue()
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}

func (d *Document) WriteFile(ctx context.Context, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := d.Encode(ctx, format)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %v", path)
	}

	return errors.Wrapf(os.WriteFile(path, data, 0o600), "failed to write %v", path) //nolint:mnd // Owner only.
}

// AnnotationsOf returns the annotations about the given element. Annotations without a reference are about the document itself.
func (d *Document) AnnotationsOf(spdxID string) []*annotation.Annotation {
	var annotations []*annotation.Annotation
	for _, an := range d.Annotations {
		if an.SPDXIdentifierReference.OrElse(d.SPDXID) == spdxID {
			annotations = append(annotations, an)
		}
	}

	return annotations
}

func (d *Document) referencedAnnotations() int {
	var referenced int
	for _, an := range d.Annotations {
		if an.SPDXIdentifierReference.IsSet() {
			referenced++
		}
	}

	return referenced
}

// DeduplicateAnnotations drops structurally equal annotations, keeping the first of each, and returns how many were dropped.
func (d *Document) DeduplicateAnnotations() int {
	seen := make(map[uint64][]*annotation.Annotation, len(d.Annotations))
	unique := d.Annotations[:0]
	for _, an := range d.Annotations {
		fingerprint := an.Fingerprint()
		duplicate := false
		for _, other := range seen[fingerprint] {
			if other.Equal(an) {
				duplicate = true

				break
			}
		}
		if duplicate {
			continue
		}
		seen[fingerprint] = append(seen[fingerprint], an)
		unique = append(unique, an)
	}
	dropped := len(d.Annotations) - len(unique)
	clear(d.Annotations[len(unique):])
	d.Annotations = unique

	return dropped
}
