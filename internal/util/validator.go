package util

import (
	"fmt"
	"strings"
)

// Field is a named input value.
type Field struct {
	Name  string
	Value string
}

// ValidateRequired 验证字段非空（忽略首尾空白）
func ValidateRequired(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is empty", name)
	}
	return nil
}

// MissingFields returns the names of empty fields, in argument order.
func MissingFields(fields ...Field) []string {
	var missing []string
	for _, f := range fields {
		if ValidateRequired(f.Name, f.Value) != nil {
			missing = append(missing, f.Name)
		}
	}
	return missing
}
