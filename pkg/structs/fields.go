package structs

import "github.com/oleiade/reflections"

// GetField returns the value of the provided obj field. obj can whether be a structure or pointer to structure.
func GetField(obj any, name string) any {
	v, err := reflections.GetField(obj, name)
	if err != nil {
		panic(err)
	}

	return v
}

// FieldByTag returns the name of the obj field tagged with the given value for the tag key.
// e.g. FieldByTag(item, "json", "category") => "Category"
func FieldByTag(obj any, key, value string) (string, bool) {
	tags, err := reflections.Tags(obj, key)
	if err != nil {
		return "", false
	}

	for field, tag := range tags {
		if tag == value {
			return field, true
		}
	}
	return "", false
}
