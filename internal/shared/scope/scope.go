package scope

import "gorm.io/gorm"

// Eq adds "column = value" unless value is the zero value of its kind
// (empty string, nil pointer or zero id).
func Eq[T comparable](column string, value T) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		var zero T
		if value == zero {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

func EqPtr[T any](column string, value *T) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == nil {
			return db
		}
		return db.Where(column+" = ?", *value)
	}
}
