package models

// All lists every table owned by the application, in creation order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Listing{},
		&Preference{},
		&FeedAction{},
		&Favorite{},
		&Lead{},
	}
}
