package services

import (
	"errors"
	"fmt"
)

var (
	ErrUnseenLabel  = errors.New("unseen label")
	ErrUnknownClass = errors.New("unknown class id")
)

// LabelEncoder maps each trained string value to its index in Classes.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

func NewLabelEncoder(classes []string) *LabelEncoder {
	e := &LabelEncoder{
		classes: append([]string(nil), classes...),
		index:   make(map[string]int, len(classes)),
	}
	for i, c := range e.classes {
		if _, dup := e.index[c]; !dup {
			e.index[c] = i
		}
	}
	return e
}

func (e *LabelEncoder) Transform(value string) (int, error) {
	i, ok := e.index[value]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnseenLabel, value)
	}
	return i, nil
}

func (e *LabelEncoder) InverseTransform(id int) (string, error) {
	if id < 0 || id >= len(e.classes) {
		return "", fmt.Errorf("%w: %d", ErrUnknownClass, id)
	}
	return e.classes[id], nil
}

func (e *LabelEncoder) Len() int {
	return len(e.classes)
}

// MultiLabelBinarizer turns a tag set into a fixed-width 0/1 indicator vector,
// one column per trained tag.
type MultiLabelBinarizer struct {
	classes []string
	index   map[string]int
}

func NewMultiLabelBinarizer(classes []string) *MultiLabelBinarizer {
	b := &MultiLabelBinarizer{
		classes: append([]string(nil), classes...),
		index:   make(map[string]int, len(classes)),
	}
	for i, c := range b.classes {
		if _, dup := b.index[c]; !dup {
			b.index[c] = i
		}
	}
	return b
}

// Transform fails on the first tag that was not seen in training.
func (b *MultiLabelBinarizer) Transform(tags []string) ([]float64, error) {
	out := make([]float64, len(b.classes))
	for _, tag := range tags {
		i, ok := b.index[tag]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnseenLabel, tag)
		}
		out[i] = 1
	}
	return out, nil
}

func (b *MultiLabelBinarizer) Width() int {
	return len(b.classes)
}
