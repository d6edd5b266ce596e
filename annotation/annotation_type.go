// SPDX-License-Identifier: ice License 1.0

package annotation

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ice-blockchain/spdx/record"
)

func AnnotationTypes() []AnnotationType {
	return []AnnotationType{AnnotationTypeReview, AnnotationTypeOther}
}

func ParseAnnotationType(text string) (AnnotationType, error) {
	annotationType, found := annotationTypesByText[text]
	if !found {
		return 0, errors.Wrapf(record.ErrInvalidEnumValue, "%q is not an annotation type", text)
	}

	return annotationType, nil
}

func (t AnnotationType) IsValid() bool {
	_, found := annotationTypeTexts[t]

	return found
}

func (t AnnotationType) String() string {
	if text, found := annotationTypeTexts[t]; found {
		return text
	}

	return fmt.Sprintf("AnnotationType(%d)", uint8(t))
}

func (t AnnotationType) MarshalText() ([]byte, error) {
	text, found := annotationTypeTexts[t]
	if !found {
		return nil, errors.Wrapf(record.ErrInvariantViolation, "out of range annotation type %d", uint8(t))
	}

	return []byte(text), nil
}

func (t *AnnotationType) UnmarshalText(text []byte) error {
	annotationType, err := ParseAnnotationType(string(text))
	if err != nil {
		return err
	}
	*t = annotationType

	return nil
}
