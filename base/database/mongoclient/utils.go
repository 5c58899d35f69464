package mongoclient

import (
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
)

var (
	ErrNotStruct = fmt.Errorf("patchable must be a struct or a pointer to struct")
)

// MakeBsonM turns a patch struct into a `$set` document. Nil pointers and
// zero values are skipped; non-nil pointers are dereferenced, so a pointer to
// a zero value still patches the field.
func MakeBsonM(patchable interface{}) (bson.M, error) {
	val := reflect.ValueOf(patchable)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	bsonM := bson.M{}
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanInterface() {
			continue
		}

		tag, err := bsoncodec.DefaultStructTagParser(typ.Field(i))
		if err != nil {
			return nil, err
		}
		if tag.Skip || field.IsZero() {
			continue
		}

		if field.Kind() == reflect.Ptr {
			bsonM[tag.Name] = field.Elem().Interface()
		} else {
			bsonM[tag.Name] = field.Interface()
		}
	}

	return bsonM, nil
}
