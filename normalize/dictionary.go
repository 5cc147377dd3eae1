package normalize

// dictionary maps a fully cleaned ingredient string to its preferred
// canonical spelling. Lookup is exact-match on the whole cleaned string,
// never substring: "cream of tartar" must not be rewritten because "cream"
// has an entry.
//
// Identity entries ("cream of mushroom soup") pin multiword names that the
// stripping stages could otherwise erode and double as a confirmed-phrase
// list for curation tooling.
var dictionary = map[string]string{
	// sugars
	"brown sugar":          "sugar",
	"white sugar":          "sugar",
	"granulated sugar":     "sugar",
	"caster sugar":         "sugar",
	"superfine sugar":      "sugar",
	"confectioners sugar":  "powdered sugar",
	"confectioner's sugar": "powdered sugar",
	"icing sugar":          "powdered sugar",
	"powdered sugar":       "powdered sugar",
	"demerara sugar":       "sugar",
	"turbinado sugar":      "sugar",

	// flours
	"all-purpose flour": "all-purpose flour",
	"all purpose flour": "all-purpose flour",
	"plain flour":       "all-purpose flour",
	"ap flour":          "all-purpose flour",
	"wheat flour":       "flour",
	"bread flour":       "bread flour",
	"cake flour":        "cake flour",
	"self-rising flour": "self-rising flour",
	"self rising flour": "self-rising flour",

	// dairy
	"whole milk":           "milk",
	"skim milk":            "milk",
	"low-fat milk":         "milk",
	"heavy cream":          "heavy cream",
	"heavy whipping cream": "heavy cream",
	"whipping cream":       "heavy cream",
	"half and half":        "half-and-half",
	"half-and-half":        "half-and-half",
	"sour cream":           "sour cream",
	"cream cheese":         "cream cheese",
	"sweet butter":         "butter",

	// eggs; bare "egg"/"eggs" is intentionally absent, those pass through
	"egg white":  "egg white",
	"egg whites": "egg white",
	"egg yolk":   "egg yolk",
	"egg yolks":  "egg yolk",

	// leaveners
	"baking soda":         "baking soda",
	"bicarbonate soda":    "baking soda",
	"baking powder":       "baking powder",
	"active dry yeast":    "yeast",
	"dry yeast":           "yeast",
	"instant yeast":       "yeast",
	"rapidrise yeast":     "yeast",
	"rapid rise yeast":    "yeast",
	"bread machine yeast": "yeast",

	// oils and fats
	"olive oil":              "olive oil",
	"extra virgin olive oil": "olive oil",
	"evoo":                   "olive oil",
	"vegetable oil":          "vegetable oil",
	"canola oil":             "vegetable oil",
	"corn oil":               "vegetable oil",
	"cooking oil":            "vegetable oil",
	"shortening":             "shortening",
	"vegetable shortening":   "shortening",

	// aromatics
	"garlic clove":  "garlic",
	"garlic cloves": "garlic",
	"clove garlic":  "garlic",
	"cloves garlic": "garlic",
	"yellow onion":  "onion",
	"white onion":   "onion",
	"sweet onion":   "onion",
	"spanish onion": "onion",
	"green onion":   "green onion",
	"green onions":  "green onion",
	"scallion":      "green onion",
	"scallions":     "green onion",
	"spring onion":  "green onion",
	"spring onions": "green onion",

	// produce
	"roma tomato":         "tomato",
	"roma tomatoes":       "tomato",
	"plum tomato":         "tomato",
	"plum tomatoes":       "tomato",
	"cherry tomatoes":     "cherry tomato",
	"russet potato":       "potato",
	"russet potatoes":     "potato",
	"yukon gold potatoes": "potato",
	"red bell pepper":     "bell pepper",
	"green bell pepper":   "bell pepper",
	"yellow bell pepper":  "bell pepper",

	// broths and soups
	"chicken broth":          "chicken broth",
	"chicken stock":          "chicken broth",
	"beef broth":             "beef broth",
	"beef stock":             "beef broth",
	"vegetable broth":        "vegetable broth",
	"vegetable stock":        "vegetable broth",
	"cream of mushroom soup": "cream of mushroom soup",
	"cream of chicken soup":  "cream of chicken soup",
	"cream of celery soup":   "cream of celery soup",

	// condiments
	"soy sauce":            "soy sauce",
	"worcestershire sauce": "worcestershire sauce",
	"worcestershire":       "worcestershire sauce",
	"hot sauce":            "hot sauce",
	"tomato paste":         "tomato paste",
	"tomato sauce":         "tomato sauce",
	"ketchup":              "ketchup",
	"catsup":               "ketchup",
	"mayonnaise":           "mayonnaise",
	"mayo":                 "mayonnaise",
	"dijon mustard":        "dijon mustard",
	"yellow mustard":       "mustard",

	// herbs and spices
	"kosher salt":       "salt",
	"sea salt":          "salt",
	"table salt":        "salt",
	"black pepper":      "black pepper",
	"white pepper":      "white pepper",
	"cayenne":           "cayenne pepper",
	"cayenne pepper":    "cayenne pepper",
	"chili powder":      "chili powder",
	"chilli powder":     "chili powder",
	"cilantro":          "cilantro",
	"coriander leaves":  "cilantro",
	"flat-leaf parsley": "parsley",
	"italian parsley":   "parsley",
	"curly parsley":     "parsley",

	// sweeteners and baking
	"chocolate chips":            "chocolate chips",
	"semisweet chocolate chips":  "chocolate chips",
	"semi-sweet chocolate chips": "chocolate chips",
	"vanilla":                    "vanilla extract",
	"vanilla extract":            "vanilla extract",
	"corn syrup":                 "corn syrup",
	"maple syrup":                "maple syrup",
	"honey":                      "honey",

	// grains and pasta
	"white rice":        "rice",
	"long-grain rice":   "rice",
	"long grain rice":   "rice",
	"brown rice":        "brown rice",
	"spaghetti noodles": "spaghetti",
	"elbow macaroni":    "macaroni",
	"elbow noodles":     "macaroni",

	// meat
	"chicken breast":        "chicken breast",
	"chicken breasts":       "chicken breast",
	"chicken breast halves": "chicken breast",
	"ground beef":           "ground beef",
	"lean ground beef":      "ground beef",
	"hamburger":             "ground beef",
	"ground turkey":         "ground turkey",
	"pork chops":            "pork chop",
	"bacon strips":          "bacon",
}

// lookupDictionary returns the preferred spelling for a cleaned string, or
// the string itself when no entry exists.
func lookupDictionary(cleaned string) string {
	if preferred, ok := dictionary[cleaned]; ok {
		return preferred
	}
	return cleaned
}
