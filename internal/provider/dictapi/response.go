package dictapi

// apiEntry is a single entry of the dictionary response array.
type apiEntry struct {
	Word      string        `json:"word"`
	Phonetic  string        `json:"phonetic"`
	Phonetics []apiPhonetic `json:"phonetics"`
	Meanings  []apiMeaning  `json:"meanings"`
}

type apiPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// apiError is the object body the API returns instead of an array
// when it has nothing for the word.
type apiError struct {
	Error   string `json:"error"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
