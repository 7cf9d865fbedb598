// Package layout describes and decodes fixed-size binary records such as
// file and section headers.
//
// Descriptors follow the Go memory layout of the record type, so padding
// between fields is honored the same way a C struct overlay would see it.
package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/hupe1980/binparse/source"
)

// ErrNotFixedSize is returned for types with fields of variable size.
var ErrNotFixedSize = errors.New("layout: type is not fixed size")

// Field is one field of a record.
type Field struct {
	Name   string
	Offset int
	Size   int
	index  int
}

// Descriptor is the layout of a record type.
type Descriptor struct {
	Size   int
	Align  int
	Fields []Field
	// Fixed reports whether every exported field has a fixed binary size.
	Fixed bool
}

// Offset returns the byte offset of the named field.
func (d Descriptor) Offset(name string) (int, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Offset, true
		}
	}
	return 0, false
}

var cache sync.Map // reflect.Type -> Descriptor

// Of returns the layout of T. Results are computed once per type.
func Of[T any]() Descriptor {
	return of(reflect.TypeFor[T]())
}

func of(t reflect.Type) Descriptor {
	if d, ok := cache.Load(t); ok {
		return d.(Descriptor)
	}

	d := Descriptor{
		Size:  int(t.Size()),
		Align: t.Align(),
		Fixed: true,
	}
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			if binary.Size(reflect.Zero(sf.Type).Interface()) < 0 {
				d.Fixed = false
			}
			d.Fields = append(d.Fields, Field{
				Name:   sf.Name,
				Offset: int(sf.Offset),
				Size:   int(sf.Type.Size()),
				index:  i,
			})
		}
	} else if binary.Size(reflect.Zero(t).Interface()) < 0 {
		d.Fixed = false
	}

	actual, _ := cache.LoadOrStore(t, d)
	return actual.(Descriptor)
}

// Read decodes a T stored at off in src. Struct fields are read at their
// memory-layout offsets in the given byte order; unexported fields are
// left zero.
func Read[T any](src source.Source, off int64, order binary.ByteOrder) (T, error) {
	var v T
	d := Of[T]()
	if !d.Fixed {
		return v, fmt.Errorf("%w: %T", ErrNotFixedSize, v)
	}

	b, err := src.ReadBytes(off, int64(d.Size))
	if err != nil {
		return v, err
	}

	if err := decode(reflect.ValueOf(&v).Elem(), b, order); err != nil {
		return v, fmt.Errorf("layout: decode %T: %w", v, err)
	}
	return v, nil
}

// decode fills rv from b, which spans exactly rv's memory. Structs and
// arrays of records recurse so nested padding stays at its memory offsets.
func decode(rv reflect.Value, b []byte, order binary.ByteOrder) error {
	switch rv.Kind() {
	case reflect.Struct:
		t := rv.Type()
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			end := sf.Offset + sf.Type.Size()
			if err := decode(rv.Field(i), b[sf.Offset:end], order); err != nil {
				return fmt.Errorf("%s: %w", sf.Name, err)
			}
		}
		return nil
	case reflect.Array:
		elem := rv.Type().Elem()
		if k := elem.Kind(); k == reflect.Struct || k == reflect.Array {
			w := int(elem.Size())
			for i := range rv.Len() {
				if err := decode(rv.Index(i), b[i*w:(i+1)*w], order); err != nil {
					return fmt.Errorf("[%d]: %w", i, err)
				}
			}
			return nil
		}
	}
	_, err := binary.Decode(b, order, rv.Addr().Interface())
	return err
}
