package domain

// IntentKind is the closed set of labels the intent classifier may return.
type IntentKind string

const (
	// IntentRecs asks for music recommendations or a playlist.
	IntentRecs IntentKind = "recs"
	// IntentFavorite names a favorite artist whose catalog should be harvested.
	IntentFavorite IntentKind = "favorite"
	// IntentNone is anything outside the application's scope.
	IntentNone IntentKind = "no"
)
