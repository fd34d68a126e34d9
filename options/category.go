package options

import "struct-binder/primitive"

// Categories combines the configured conversion names.
// No names means pass-through: raw values must be assignable to their target.
func (o *Options) Categories() (primitive.CategoryEnum, error) {
	return primitive.ParseCategories(o.Conversions...)
}
