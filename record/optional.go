// SPDX-License-Identifier: ice License 1.0

package record

func Some[T comparable](value T) Optional[T] {
	return Optional[T]{value: value, set: true}
}

func None[T comparable]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

func (o Optional[T]) OrElse(fallback T) T {
	if !o.set {
		return fallback
	}

	return o.value
}
