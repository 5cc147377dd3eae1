package normalize

// Vocabularies used by the cleaning pipeline. Every list is matched whole-word
// only. protectedNames is the guard rail: tokens listed there are real
// ingredients even though they co-occur with unit-like words, and no stripping
// stage may remove them.

// protectedNames are ingredient words that look like units or counters.
// "1 clove garlic", "2 sticks celery", "zest of one lemon" all keep their
// ingredient word.
var protectedNames = map[string]bool{
	"egg":      true,
	"eggs":     true,
	"rice":     true,
	"clove":    true,
	"cloves":   true,
	"shrimp":   true,
	"shrimps":  true,
	"crab":     true,
	"crabs":    true,
	"zest":     true,
	"lobster":  true,
	"lobsters": true,
	"seed":     true,
	"seeds":    true,
	"sprig":    true,
	"sprigs":   true,
	"leaf":     true,
	"leaves":   true,
	"ear":      true,
	"ears":     true,
	"head":     true,
	"heads":    true,
}

// unitTokens are measurement and packaging words removed from ingredient
// lines. Singular and plural forms are listed explicitly; there is no
// suffix guessing.
var unitTokens = []string{
	"cup", "cups",
	"c",
	"tablespoon", "tablespoons",
	"tbsp", "tbsps", "tbs", "tbl",
	"teaspoon", "teaspoons",
	"tsp", "tsps",
	"ounce", "ounces",
	"oz", "ozs",
	"fluid",
	"fl",
	"pound", "pounds",
	"lb", "lbs",
	"gram", "grams",
	"g",
	"kilogram", "kilograms",
	"kg",
	"milligram", "milligrams",
	"mg",
	"liter", "liters", "litre", "litres",
	"l",
	"milliliter", "milliliters", "millilitre", "millilitres",
	"ml",
	"quart", "quarts",
	"qt", "qts",
	"pint", "pints",
	"pt",
	"gallon", "gallons",
	"gal",
	"dash", "dashes",
	"pinch", "pinches",
	"drop", "drops",
	"handful", "handfuls",
	"splash", "splashes",
	"dollop", "dollops",
	"can", "cans",
	"canned",
	"tin", "tins",
	"jar", "jars",
	"bottle", "bottles",
	"box", "boxes",
	"bag", "bags",
	"package", "packages",
	"pkg", "pkgs",
	"packet", "packets",
	"envelope", "envelopes",
	"carton", "cartons",
	"container", "containers",
	"tub", "tubs",
	"stick", "sticks",
	"cube", "cubes",
	"block", "blocks",
	"sheet", "sheets",
	"loaf", "loaves",
	"bunch", "bunches",
	"stalk", "stalks",
	"rib", "ribs",
	"strip", "strips",
	"fillet", "fillets",
	"filet", "filets",
	"wedge", "wedges",
	"round", "rounds",
	"inch", "inches",
	"cm",
	"mm",
	"size", "sizes",
	"serving", "servings",
	"portion", "portions",
	"part", "parts",
	"dozen",
}

// descriptorTokens are preparation and state words that never change what the
// ingredient is.
var descriptorTokens = []string{
	"chopped", "finely", "coarsely", "roughly",
	"diced", "minced", "sliced", "slivered", "julienned",
	"grated", "shredded", "crumbled", "crushed",
	"mashed", "pureed", "blended", "whipped", "beaten",
	"drained", "rinsed", "washed", "scrubbed", "strained", "sifted",
	"peeled", "unpeeled", "pitted", "seeded", "cored",
	"trimmed", "deveined", "shucked", "husked", "shelled",
	"stemmed", "destemmed", "deboned", "boneless", "skinless",
	"skinned", "boned",
	"melted", "softened", "chilled", "frozen", "thawed",
	"warmed", "heated", "cooled", "scalded",
	"cooked", "uncooked", "precooked", "parboiled", "blanched",
	"boiled", "steamed", "roasted", "toasted", "baked",
	"grilled", "broiled", "fried", "sauteed", "seared",
	"smoked", "cured", "dried", "dehydrated", "freeze-dried",
	"fresh", "freshly", "raw", "ripe", "overripe", "underripe",
	"firm", "soft", "tender", "crisp", "crispy",
	"divided", "separated", "reserved", "packed", "lightly",
	"loosely", "firmly", "heaping", "heaped", "level",
	"rounded", "scant", "generous",
	"optional", "needed", "desired", "taste", "garnish",
	"plus", "extra", "additional", "more",
	"large", "medium", "small", "jumbo", "mini", "baby",
	"thick", "thin", "thinly", "thickly",
	"hot", "cold", "warm", "cool", "lukewarm", "tepid",
	"room", "temperature",
	"unsalted", "salted",
	"sweetened", "unsweetened",
	"seasoned", "unseasoned",
	"flavored", "unflavored",
	"cut", "halved", "quartered", "sectioned", "segmented",
	"torn", "broken", "snipped", "pounded", "flattened",
	"bruised", "smashed", "pressed", "squeezed", "juiced",
	"zested", "pared", "scored",
	"prepared", "instant", "quick", "rapid", "quick-cooking",
	"ready", "store-bought", "homemade", "leftover",
	"organic", "natural", "pure", "real", "artificial",
	"imitation", "premium", "gourmet", "quality",
	"good", "best", "favorite", "preferred", "cheap",
	"about", "approximately", "around",
	"such", "like", "preferably", "ideally",
	"removed", "discarded", "intact",
}

// colorTokens are color adjectives stripped only when they are genuinely
// decorative. Compound names where color is identity ("brown sugar",
// "green onion", "red pepper") are restored by the dictionary, so they stay
// out of this list.
var colorTokens = []string{
	"golden",
	"dark",
	"light",
	"pale",
	"bright",
	"deep",
}

// countTokens are generic counting words: "4 slices bacon", "6 pieces of
// chicken". Whole-word only; "sliced" is a descriptor, not a counter, and
// neither list may ever be applied as a substring.
var countTokens = []string{
	"slice", "slices",
	"piece", "pieces",
	"chunk", "chunks",
	"bit", "bits",
	"item", "items",
	"count",
	"whole",
	"each",
}

// brandMarkers are trademark words dropped along with registered-mark glyphs.
// A token carrying (r)/(tm) glyphs is dropped wholesale before these apply,
// which is what removes possessive brand names like "fleischmann's(r)".
var brandMarkers = []string{
	"brand", "brands",
	"registered",
	"trademark", "trademarked",
	"original",
	"classic",
	"style",
}

var trademarkGlyphs = []rune{'®', '™', '©', '℠'}

func isProtected(token string) bool {
	return protectedNames[token]
}

func hasTrademarkGlyph(token string) bool {
	for _, r := range token {
		for _, g := range trademarkGlyphs {
			if r == g {
				return true
			}
		}
	}
	return false
}

var (
	unitSet       = makeSet(unitTokens)
	descriptorSet = makeSet(descriptorTokens)
	colorSet      = makeSet(colorTokens)
	countSet      = makeSet(countTokens)
	brandSet      = makeSet(brandMarkers)
)

// makeSet builds a lookup set, refusing protected ingredient names so a
// vocabulary edit can never reintroduce the unit-stripping bug class.
func makeSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if protectedNames[w] {
			continue
		}
		set[w] = true
	}
	return set
}
