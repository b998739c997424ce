package model

// Movie represents a row in the `movies` table. A movie is created at
// catalog seeding time or by an admin and is immutable afterwards; it is
// never deleted. Duration is a display string such as "148 min" rather
// than a structured value, so ordering on it is plain lexicographic.
//
// Fields:
//  ID       – primary key identifier, a small positive integer.
//  Title    – non-empty movie title.
//  Genre    – genre text used for case-insensitive filtering.
//  Duration – free-text running time for display.
//  Price    – ticket price per seat in minor currency units.
type Movie struct {
	ID       int64  `json:"id"`       // movies.id
	Title    string `json:"title"`    // movies.title
	Genre    string `json:"genre"`    // movies.genre
	Duration string `json:"duration"` // movies.duration
	Price    int64  `json:"price"`    // movies.price
}
