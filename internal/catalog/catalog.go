// Package catalog holds the fixed interview script. The question list is
// ordered, externally immutable, and referenced by id from question
// timestamp logs and answer maps.
package catalog

// Enrichment types understood by the enrichment engine's keyword tables.
const (
	TypeColor      = "color"
	TypeAnimal     = "animal"
	TypeFood       = "food"
	TypeSong       = "song"
	TypeBook       = "book"
	TypeActivity   = "activity"
	TypeMovie      = "movie"
	TypeTVShow     = "tvshow"
	TypeRestaurant = "restaurant"
)

type Question struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	Category       string `json:"category"`
	Enrichable     bool   `json:"enrichable"`
	EnrichmentType string `json:"enrichmentType,omitempty"`
}

// Questions is the interview script in presentation order.
var Questions = []Question{
	{ID: "favoriteColor", Text: "What is your favorite color?", Category: "favorites", Enrichable: true, EnrichmentType: TypeColor},
	{ID: "favoriteAnimal", Text: "What is your favorite animal?", Category: "favorites", Enrichable: true, EnrichmentType: TypeAnimal},
	{ID: "favoriteFood", Text: "What is your favorite food?", Category: "favorites", Enrichable: true, EnrichmentType: TypeFood},
	{ID: "favoriteSong", Text: "What is your favorite song?", Category: "favorites", Enrichable: true, EnrichmentType: TypeSong},
	{ID: "favoriteBook", Text: "What is your favorite book or story?", Category: "favorites", Enrichable: true, EnrichmentType: TypeBook},
	{ID: "favoriteActivity", Text: "What do you love to do the most?", Category: "favorites", Enrichable: true, EnrichmentType: TypeActivity},
	{ID: "favoriteMovie", Text: "What is your favorite movie?", Category: "favorites", Enrichable: true, EnrichmentType: TypeMovie},
	{ID: "favoriteShow", Text: "What is your favorite TV show?", Category: "favorites", Enrichable: true, EnrichmentType: TypeTVShow},
	{ID: "favoriteRestaurant", Text: "Where is your favorite place to eat?", Category: "favorites", Enrichable: true, EnrichmentType: TypeRestaurant},
	{ID: "bestFriend", Text: "Who is your best friend?", Category: "friends"},
	{ID: "funnyFriendStory", Text: "What is the funniest thing you did with a friend this year?", Category: "friends"},
	{ID: "familyActivity", Text: "What do you love doing with your family?", Category: "family"},
	{ID: "proudMoment", Text: "What made you really proud this year?", Category: "memories"},
	{ID: "bestMemory", Text: "What was the best part of being this age?", Category: "memories"},
	{ID: "grownUpJob", Text: "What do you want to be when you grow up?", Category: "dreams"},
	{ID: "birthdayWish", Text: "If you could wish for anything, what would it be?", Category: "dreams"},
	{ID: "newThingLearned", Text: "What is something new you learned to do?", Category: "growing"},
	{ID: "nextYearGoal", Text: "What do you want to learn next year?", Category: "growing"},
}

// ByID looks a question up by id.
func ByID(id string) (Question, bool) {
	for _, q := range Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
