// SPDX-License-Identifier: ice License 1.0

package record

import (
	"github.com/pkg/errors"

	"github.com/ice-blockchain/spdx/tagvalue"
	"github.com/ice-blockchain/spdx/terror"
)

func NewSchema[R any](name string, fields ...*Field[R]) *Schema[R] {
	return &Schema[R]{Name: name, Fields: fields}
}

// Decode builds a new record out of raw. Unknown keys are ignored; a null value counts as an absent one.
func (s *Schema[R]) Decode(raw Raw) (*R, error) {
	rec := new(R)
	for _, field := range s.Fields {
		val, found := raw[field.Key]
		if !found || val == nil {
			if field.Optional {
				continue
			}

			return nil, errors.Wrapf(terror.Field(ErrMissingField, field.Key), "failed to decode %v", s.Name)
		}
		if err := field.decode(rec, val); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %v", s.Name)
		}
	}

	return rec, nil
}

func (s *Schema[R]) Encode(rec *R) (Raw, error) {
	if rec == nil {
		return nil, errors.Wrapf(ErrInvariantViolation, "nil %v", s.Name)
	}
	raw := make(Raw, len(s.Fields))
	for _, field := range s.Fields {
		if !field.present(rec) {
			continue
		}
		val, err := field.encode(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode %v", s.Name)
		}
		raw[field.Key] = val
	}

	return raw, nil
}

func (s *Schema[R]) Equal(a, b *R) bool {
	if a == nil || b == nil {
		return a == b
	}
	for _, field := range s.Fields {
		if !field.equal(a, b) {
			return false
		}
	}

	return true
}

func (s *Schema[R]) Keys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		keys = append(keys, field.Key)
	}

	return keys
}

func (s *Schema[R]) MandatoryKeys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		if !field.Optional {
			keys = append(keys, field.Key)
		}
	}

	return keys
}

// FieldByTag resolves a tag-value tag, e.g. `SPDXREF`, to the field it populates.
func (s *Schema[R]) FieldByTag(tag string) *Field[R] {
	for _, field := range s.Fields {
		if field.Tag == tag {
			return field
		}
	}

	return nil
}

// FromTagValue maps the pairs of one record block to their keys. Tags this record doesn't know are skipped.
func (s *Schema[R]) FromTagValue(pairs []*tagvalue.Pair) (Raw, error) {
	raw := make(Raw, len(s.Fields))
	for _, pair := range pairs {
		field := s.FieldByTag(pair.Tag)
		if field == nil {
			continue
		}
		if _, found := raw[field.Key]; found {
			return nil, errors.Wrapf(terror.Field(ErrDuplicateField, field.Key, pair.Value), "duplicate in %v block", s.Name)
		}
		raw[field.Key] = pair.Value
	}

	return raw, nil
}

func (s *Schema[R]) ToTagValue(rec *R) ([]*tagvalue.Pair, error) {
	raw, err := s.Encode(rec)
	if err != nil {
		return nil, err
	}
	pairs := make([]*tagvalue.Pair, 0, len(raw))
	for _, field := range s.Fields {
		val, found := raw[field.Key]
		if !found {
			continue
		}
		pair := &tagvalue.Pair{Tag: field.Tag, Value: val.(string), Text: field.Text} //nolint:forcetypeassert // Encode only emits strings.
		if vErr := tagvalue.Validate(pair); vErr != nil {
			return nil, errors.Wrapf(terror.Field(errors.Wrapf(ErrInvariantViolation, "%v", vErr), field.Key, pair.Value),
				"failed to encode %v", s.Name)
		}
		pairs = append(pairs, pair)
	}

	return pairs, nil
}
