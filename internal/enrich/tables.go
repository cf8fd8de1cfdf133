package enrich

// entry pairs a keyword with the emojis it contributes. Entries are kept
// as ordered slices, not maps: match order decides which color swatch wins
// when an answer names several colors.
type entry struct {
	keyword string
	emojis  []string
}

var keywordTables = map[string][]entry{
	"color": {
		{"red", []string{"🔴"}},
		{"blue", []string{"🔵"}},
		{"green", []string{"🟢"}},
		{"yellow", []string{"🟡"}},
		{"orange", []string{"🟠"}},
		{"purple", []string{"🟣"}},
		{"pink", []string{"💗"}},
		{"black", []string{"⚫"}},
		{"white", []string{"⚪"}},
		{"brown", []string{"🟤"}},
		{"gold", []string{"🏆"}},
		{"silver", []string{"🥈"}},
		{"rainbow", []string{"🌈"}},
	},
	"animal": {
		{"dog", []string{"🐕"}},
		{"puppy", []string{"🐶"}},
		{"cat", []string{"🐱"}},
		{"kitten", []string{"🐱"}},
		{"horse", []string{"🐴"}},
		{"unicorn", []string{"🦄"}},
		{"rabbit", []string{"🐰"}},
		{"bunny", []string{"🐰"}},
		{"bear", []string{"🐻"}},
		{"lion", []string{"🦁"}},
		{"tiger", []string{"🐯"}},
		{"elephant", []string{"🐘"}},
		{"dolphin", []string{"🐬"}},
		{"whale", []string{"🐳"}},
		{"bird", []string{"🐦"}},
		{"owl", []string{"🦉"}},
		{"penguin", []string{"🐧"}},
		{"fish", []string{"🐟"}},
		{"shark", []string{"🦈"}},
		{"butterfly", []string{"🦋"}},
		{"dinosaur", []string{"🦕"}},
		{"dragon", []string{"🐉"}},
		{"monkey", []string{"🐵"}},
		{"panda", []string{"🐼"}},
		{"fox", []string{"🦊"}},
		{"wolf", []string{"🐺"}},
		{"turtle", []string{"🐢"}},
		{"frog", []string{"🐸"}},
	},
	"food": {
		{"pizza", []string{"🍕"}},
		{"burger", []string{"🍔"}},
		{"hamburger", []string{"🍔"}},
		{"taco", []string{"🌮"}},
		{"spaghetti", []string{"🍝"}},
		{"pasta", []string{"🍝"}},
		{"noodle", []string{"🍜"}},
		{"sushi", []string{"🍣"}},
		{"chicken", []string{"🍗"}},
		{"steak", []string{"🥩"}},
		{"hotdog", []string{"🌭"}},
		{"fries", []string{"🍟"}},
		{"ice cream", []string{"🍦"}},
		{"cake", []string{"🎂"}},
		{"cookie", []string{"🍪"}},
		{"chocolate", []string{"🍫"}},
		{"candy", []string{"🍬"}},
		{"donut", []string{"🍩"}},
		{"pancake", []string{"🥞"}},
		{"waffle", []string{"🧇"}},
		{"apple", []string{"🍎"}},
		{"banana", []string{"🍌"}},
		{"strawberry", []string{"🍓"}},
		{"watermelon", []string{"🍉"}},
		{"mac", []string{"🧀"}},
		{"cheese", []string{"🧀"}},
		{"soup", []string{"🍲"}},
		{"salad", []string{"🥗"}},
	},
	"song": {
		{"music", []string{"🎵"}},
		{"song", []string{"🎶"}},
		{"sing", []string{"🎤"}},
		{"dance", []string{"💃"}},
		{"rock", []string{"🎸"}},
		{"piano", []string{"🎹"}},
		{"drum", []string{"🥁"}},
	},
	"book": {
		{"book", []string{"📖"}},
		{"story", []string{"📚"}},
		{"read", []string{"📖"}},
		{"fairy", []string{"🧚"}},
		{"magic", []string{"✨"}},
		{"adventure", []string{"🗺️"}},
		{"comic", []string{"💥"}},
	},
	"activity": {
		{"swim", []string{"🏊"}},
		{"soccer", []string{"⚽"}},
		{"football", []string{"🏈"}},
		{"basketball", []string{"🏀"}},
		{"baseball", []string{"⚾"}},
		{"tennis", []string{"🎾"}},
		{"dance", []string{"💃"}},
		{"bike", []string{"🚲"}},
		{"ride", []string{"🚲"}},
		{"draw", []string{"🎨"}},
		{"paint", []string{"🎨"}},
		{"art", []string{"🎨"}},
		{"sing", []string{"🎤"}},
		{"game", []string{"🎮"}},
		{"video game", []string{"🎮"}},
		{"lego", []string{"🧱"}},
		{"play", []string{"🎮"}},
		{"run", []string{"🏃"}},
		{"skate", []string{"⛸️"}},
		{"gymnastics", []string{"🤸"}},
		{"cook", []string{"👩‍🍳"}},
		{"bake", []string{"🧁"}},
	},
	"movie": {
		{"movie", []string{"🎬"}},
		{"film", []string{"🎬"}},
		{"cartoon", []string{"📺"}},
		{"disney", []string{"🏰"}},
		{"superhero", []string{"🦸"}},
		{"star wars", []string{"⭐"}},
		{"princess", []string{"👸"}},
	},
	"tvshow": {
		{"show", []string{"📺"}},
		{"cartoon", []string{"📺"}},
		{"anime", []string{"📺"}},
	},
	"restaurant": {
		{"mcdonalds", []string{"🍔"}},
		{"chick", []string{"🐔"}},
		{"pizza", []string{"🍕"}},
		{"subway", []string{"🥪"}},
		{"taco", []string{"🌮"}},
		{"chinese", []string{"🥡"}},
		{"mexican", []string{"🌮"}},
		{"italian", []string{"🍕"}},
		{"japanese", []string{"🍣"}},
		{"thai", []string{"🍜"}},
		{"indian", []string{"🍛"}},
	},
}

// colorSwatches maps color keywords to display hex values.
var colorSwatches = map[string]string{
	"red":     "#EF4444",
	"blue":    "#3B82F6",
	"green":   "#22C55E",
	"yellow":  "#EAB308",
	"orange":  "#F97316",
	"purple":  "#A855F7",
	"pink":    "#EC4899",
	"black":   "#1F2937",
	"white":   "#F9FAFB",
	"brown":   "#92400E",
	"gold":    "#D97706",
	"silver":  "#9CA3AF",
	"rainbow": "#EC4899",
}
