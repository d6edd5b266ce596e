// SPDX-License-Identifier: ice License 1.0

package tagvalue

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spdx/tools-golang/tagvalue/reader"
)

func Read(input io.Reader) ([]*Pair, error) {
	read, err := reader.ReadTagValues(input)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "%v", err)
	}
	pairs := make([]*Pair, 0, len(read))
	for ix := range read {
		if read[ix].Tag == "" || strings.ContainsAny(read[ix].Tag, " \t") {
			return nil, errors.Wrapf(ErrMalformed, "pair %v has an invalid tag %q", ix, read[ix].Tag)
		}
		pairs = append(pairs, &Pair{Tag: read[ix].Tag, Value: read[ix].Value})
	}

	return pairs, nil
}

// Validate checks that pair survives a Write/Read round trip unchanged.
func Validate(pair *Pair) error {
	if pair.Tag == "" || strings.ContainsAny(pair.Tag, " \t\n:") {
		return errors.Wrapf(ErrUnrepresentable, "invalid tag %q", pair.Tag)
	}
	if strings.Contains(pair.Value, textClose) {
		return errors.Wrapf(ErrUnrepresentable, "%v contains %v", pair.Tag, textClose)
	}
	// Line scanning drops the \r of a \r\n.
	if strings.Contains(pair.Value, "\r\n") {
		return errors.Wrapf(ErrUnrepresentable, "%v contains a CRLF line break", pair.Tag)
	}

	return nil
}

func Write(writer io.Writer, pairs ...*Pair) error {
	buf := bufio.NewWriter(writer)
	for _, pair := range pairs {
		if err := Validate(pair); err != nil {
			return err
		}
		value := pair.Value
		if pair.Text || needsText(value) {
			value = textOpen + value + textClose
		}
		if _, err := buf.WriteString(pair.Tag + separator + value + "\n"); err != nil {
			return errors.Wrapf(err, "failed to write tag %v", pair.Tag)
		}
	}

	return errors.Wrap(buf.Flush(), "failed to flush tag-value output")
}

// Plain values are trimmed on read and anything after a <text> is taken as a text block.
func needsText(value string) bool {
	return strings.ContainsAny(value, "\r\n") || strings.Contains(value, textOpen) || strings.TrimSpace(value) != value
}
