package mongoclient

import (
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
)

var (
	ErrNotStruct = fmt.Errorf("patchable is not a struct")
)

// MakeBsonM turns a patchable struct into a $set document. Nil pointers and
// zero values are skipped, non nil pointers are dereferenced so false and ""
// can still be written.
func MakeBsonM(patchable interface{}) (bson.M, error) {
	val := reflect.ValueOf(patchable)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	bsonM := bson.M{}
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)

		tag, err := bsoncodec.DefaultStructTagParser(val.Type().Field(i))
		if err != nil {
			return nil, err
		}
		if tag.Skip || !field.CanInterface() || field.IsZero() {
			continue
		}
		if field.Kind() == reflect.Ptr {
			bsonM[tag.Name] = field.Elem().Interface()
			continue
		}
		bsonM[tag.Name] = field.Interface()
	}

	return bsonM, nil
}
