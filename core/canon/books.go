package canon

// books is the 66-book Protestant canon in canonical order.
var books = []Book{
	{Name: "Genesis", Ordinal: 1, Chapters: 50},
	{Name: "Exodus", Ordinal: 2, Chapters: 40},
	{Name: "Leviticus", Ordinal: 3, Chapters: 27},
	{Name: "Numbers", Ordinal: 4, Chapters: 36},
	{Name: "Deuteronomy", Ordinal: 5, Chapters: 34},
	{Name: "Joshua", Ordinal: 6, Chapters: 24},
	{Name: "Judges", Ordinal: 7, Chapters: 21},
	{Name: "Ruth", Ordinal: 8, Chapters: 4},
	{Name: "1 Samuel", Ordinal: 9, Chapters: 31},
	{Name: "2 Samuel", Ordinal: 10, Chapters: 24},
	{Name: "1 Kings", Ordinal: 11, Chapters: 22},
	{Name: "2 Kings", Ordinal: 12, Chapters: 25},
	{Name: "1 Chronicles", Ordinal: 13, Chapters: 29},
	{Name: "2 Chronicles", Ordinal: 14, Chapters: 36},
	{Name: "Ezra", Ordinal: 15, Chapters: 10},
	{Name: "Nehemiah", Ordinal: 16, Chapters: 13},
	{Name: "Esther", Ordinal: 17, Chapters: 10},
	{Name: "Job", Ordinal: 18, Chapters: 42},
	{Name: "Psalms", Ordinal: 19, Chapters: 150},
	{Name: "Proverbs", Ordinal: 20, Chapters: 31},
	{Name: "Ecclesiastes", Ordinal: 21, Chapters: 12},
	{Name: "Song of Solomon", Ordinal: 22, Chapters: 8},
	{Name: "Isaiah", Ordinal: 23, Chapters: 66},
	{Name: "Jeremiah", Ordinal: 24, Chapters: 52},
	{Name: "Lamentations", Ordinal: 25, Chapters: 5},
	{Name: "Ezekiel", Ordinal: 26, Chapters: 48},
	{Name: "Daniel", Ordinal: 27, Chapters: 12},
	{Name: "Hosea", Ordinal: 28, Chapters: 14},
	{Name: "Joel", Ordinal: 29, Chapters: 3},
	{Name: "Amos", Ordinal: 30, Chapters: 9},
	{Name: "Obadiah", Ordinal: 31, Chapters: 1},
	{Name: "Jonah", Ordinal: 32, Chapters: 4},
	{Name: "Micah", Ordinal: 33, Chapters: 7},
	{Name: "Nahum", Ordinal: 34, Chapters: 3},
	{Name: "Habakkuk", Ordinal: 35, Chapters: 3},
	{Name: "Zephaniah", Ordinal: 36, Chapters: 3},
	{Name: "Haggai", Ordinal: 37, Chapters: 2},
	{Name: "Zechariah", Ordinal: 38, Chapters: 14},
	{Name: "Malachi", Ordinal: 39, Chapters: 4},
	{Name: "Matthew", Ordinal: 40, Chapters: 28},
	{Name: "Mark", Ordinal: 41, Chapters: 16},
	{Name: "Luke", Ordinal: 42, Chapters: 24},
	{Name: "John", Ordinal: 43, Chapters: 21},
	{Name: "Acts", Ordinal: 44, Chapters: 28},
	{Name: "Romans", Ordinal: 45, Chapters: 16},
	{Name: "1 Corinthians", Ordinal: 46, Chapters: 16},
	{Name: "2 Corinthians", Ordinal: 47, Chapters: 13},
	{Name: "Galatians", Ordinal: 48, Chapters: 6},
	{Name: "Ephesians", Ordinal: 49, Chapters: 6},
	{Name: "Philippians", Ordinal: 50, Chapters: 4},
	{Name: "Colossians", Ordinal: 51, Chapters: 4},
	{Name: "1 Thessalonians", Ordinal: 52, Chapters: 5},
	{Name: "2 Thessalonians", Ordinal: 53, Chapters: 3},
	{Name: "1 Timothy", Ordinal: 54, Chapters: 6},
	{Name: "2 Timothy", Ordinal: 55, Chapters: 4},
	{Name: "Titus", Ordinal: 56, Chapters: 3},
	{Name: "Philemon", Ordinal: 57, Chapters: 1},
	{Name: "Hebrews", Ordinal: 58, Chapters: 13},
	{Name: "James", Ordinal: 59, Chapters: 5},
	{Name: "1 Peter", Ordinal: 60, Chapters: 5},
	{Name: "2 Peter", Ordinal: 61, Chapters: 3},
	{Name: "1 John", Ordinal: 62, Chapters: 5},
	{Name: "2 John", Ordinal: 63, Chapters: 1},
	{Name: "3 John", Ordinal: 64, Chapters: 1},
	{Name: "Jude", Ordinal: 65, Chapters: 1},
	{Name: "Revelation", Ordinal: 66, Chapters: 22},
}

// aliases maps normalized abbreviations (lowercase, periods and spaces
// stripped) to canonical book names. Canonical names resolve without an
// entry here; only alternate spellings need one.
var aliases = map[string]string{
	// Genesis
	"gen": "Genesis",
	// Exodus
	"exod": "Exodus", "exo": "Exodus", "ex": "Exodus",
	// Leviticus
	"lev": "Leviticus",
	// Numbers
	"num": "Numbers",
	// Deuteronomy
	"deut": "Deuteronomy", "deu": "Deuteronomy",
	// Joshua
	"josh": "Joshua", "jos": "Joshua",
	// Judges
	"judg": "Judges", "jdg": "Judges",
	// 1 Samuel
	"1sam": "1 Samuel",
	// 2 Samuel
	"2sam": "2 Samuel",
	// 1 Kings
	"1kgs": "1 Kings",
	// 2 Kings
	"2kgs": "2 Kings",
	// 1 Chronicles
	"1chr": "1 Chronicles",
	// 2 Chronicles
	"2chr": "2 Chronicles",
	// Ezra
	"ezr": "Ezra",
	// Nehemiah
	"neh": "Nehemiah",
	// Esther
	"esth": "Esther", "est": "Esther",
	// Psalms
	"ps": "Psalms", "psa": "Psalms", "psalm": "Psalms",
	// Proverbs
	"prov": "Proverbs", "pro": "Proverbs",
	// Ecclesiastes
	"eccl": "Ecclesiastes", "ecc": "Ecclesiastes",
	// Song of Solomon
	"song": "Song of Solomon", "songofsongs": "Song of Solomon",
	"sos": "Song of Solomon", "canticles": "Song of Solomon",
	// Isaiah
	"isa": "Isaiah",
	// Jeremiah
	"jer": "Jeremiah",
	// Lamentations
	"lam": "Lamentations",
	// Ezekiel
	"ezek": "Ezekiel", "eze": "Ezekiel",
	// Daniel
	"dan": "Daniel",
	// Hosea
	"hos": "Hosea",
	// Obadiah
	"obad": "Obadiah", "oba": "Obadiah",
	// Jonah
	"jon": "Jonah",
	// Micah
	"mic": "Micah",
	// Nahum
	"nah": "Nahum",
	// Habakkuk
	"hab": "Habakkuk",
	// Zephaniah
	"zeph": "Zephaniah", "zep": "Zephaniah",
	// Haggai
	"hag": "Haggai",
	// Zechariah
	"zech": "Zechariah", "zec": "Zechariah",
	// Malachi
	"mal": "Malachi",
	// Matthew
	"matt": "Matthew", "mat": "Matthew", "mt": "Matthew",
	// Mark
	"mrk": "Mark", "mk": "Mark",
	// Luke
	"luk": "Luke", "lk": "Luke",
	// John
	"joh": "John", "jn": "John",
	// Acts
	"act": "Acts",
	// Romans
	"rom": "Romans",
	// 1 Corinthians
	"1cor": "1 Corinthians",
	// 2 Corinthians
	"2cor": "2 Corinthians",
	// Galatians
	"gal": "Galatians",
	// Ephesians
	"eph": "Ephesians",
	// Philippians
	"phil": "Philippians",
	// Colossians
	"col": "Colossians",
	// 1 Thessalonians
	"1thess": "1 Thessalonians", "1thes": "1 Thessalonians",
	// 2 Thessalonians
	"2thess": "2 Thessalonians", "2thes": "2 Thessalonians",
	// 1 Timothy
	"1tim": "1 Timothy",
	// 2 Timothy
	"2tim": "2 Timothy",
	// Titus
	"tit": "Titus",
	// Philemon
	"phlm": "Philemon", "phm": "Philemon",
	// Hebrews
	"heb": "Hebrews",
	// James
	"jas": "James",
	// 1 Peter
	"1pet": "1 Peter",
	// 2 Peter
	"2pet": "2 Peter",
	// 1 John
	"1jn": "1 John",
	// 2 John
	"2jn": "2 John",
	// 3 John
	"3jn": "3 John",
	// Revelation
	"rev": "Revelation",
}
