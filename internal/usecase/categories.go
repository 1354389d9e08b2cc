package usecase

import (
	"strings"

	"github.com/pantrychef/backend/internal/ingredient"
)

// ingredientCategory groups ingredients that can stand in for each other
type ingredientCategory struct {
	name    string
	members []string
}

// substitutionCategories is consulted in order; the longest member match wins.
var substitutionCategories = []ingredientCategory{
	{name: "Protein", members: []string{
		"chicken", "beef", "pork", "turkey", "lamb", "duck", "fish", "salmon", "tuna",
		"cod", "tilapia", "shrimp", "tofu", "tempeh", "seitan", "egg", "bacon",
		"sausage", "ham", "ground beef", "ground turkey", "chickpea", "lentil", "black bean",
	}},
	{name: "Dairy", members: []string{
		"milk", "cream", "heavy cream", "sour cream", "cream cheese", "butter", "cheese",
		"yogurt", "greek yogurt", "buttermilk", "half half", "mozzarella", "cheddar",
		"parmesan", "ricotta", "feta",
	}},
	{name: "Seasoning", members: []string{
		"salt", "pepper", "black pepper", "paprika", "smoked paprika", "cumin", "oregano",
		"basil", "thyme", "rosemary", "sage", "garlic powder", "onion powder",
		"chili powder", "cayenne", "cinnamon", "nutmeg", "parsley", "cilantro",
		"ginger", "turmeric", "curry powder", "italian seasoning",
	}},
	{name: "Oil", members: []string{
		"oil", "olive oil", "vegetable oil", "canola oil", "coconut oil", "sesame oil",
		"avocado oil", "peanut oil", "ghee", "lard", "shortening",
	}},
	{name: "Sweetener", members: []string{
		"sugar", "brown sugar", "powdered sugar", "honey", "maple syrup", "agave",
		"molasses", "corn syrup", "stevia",
	}},
	{name: "Grain", members: []string{
		"rice", "brown rice", "pasta", "spaghetti", "noodle", "flour", "bread",
		"breadcrumb", "oat", "quinoa", "couscous", "barley", "cornmeal", "tortilla",
	}},
	{name: "Vegetable", members: []string{
		"onion", "red onion", "green onion", "shallot", "leek", "carrot", "celery",
		"bell pepper", "tomato", "potato", "sweet potato", "spinach", "kale", "broccoli",
		"cauliflower", "zucchini", "mushroom", "cabbage", "lettuce", "pea", "corn",
		"green bean", "eggplant", "cucumber",
	}},
}

func singularWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		switch {
		case strings.HasSuffix(w, "oes"):
			words[i] = strings.TrimSuffix(w, "es")
		case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
			words[i] = strings.TrimSuffix(w, "s")
		}
	}
	return strings.Join(words, " ")
}

// categoryOf returns the category of an ingredient name, or "" when none
// applies. An exact member wins; otherwise the longest member contained in
// the name as whole words decides ("cheddar cheese" is Dairy, "bell pepper"
// is Vegetable).
func categoryOf(name string) string {
	key := singularWords(ingredient.Normalize(name))
	if key == "" {
		return ""
	}

	best, bestLen := "", 0
	padded := " " + key + " "
	for _, cat := range substitutionCategories {
		for _, m := range cat.members {
			member := singularWords(m)
			if member == key {
				return cat.name
			}
			if len(member) > bestLen && strings.Contains(padded, " "+member+" ") {
				best, bestLen = cat.name, len(member)
			}
		}
	}
	return best
}
