package extract

import "strings"

// Category is the semantic class assigned to a fact. Exactly one is
// assigned per fact even when keyword lists overlap.
type Category string

// Fact categories, in classification priority order.
const (
	CategoryBusiness      Category = "business"
	CategoryInvestment    Category = "investment"
	CategoryInterest      Category = "interest"
	CategoryHabit         Category = "habit"
	CategoryPersonalTrait Category = "personal_trait"
	CategoryPreference    Category = "preference"
	CategoryRelationship  Category = "relationship"
	CategoryHumor         Category = "humor"
	CategoryGeneral       Category = "general"
)

type categoryRule struct {
	category Category
	keywords []string
}

// classificationRules is evaluated top to bottom; the first rule with any
// keyword present wins. The order is part of the contract: a message
// matching several lists must always resolve to the same category, so do
// not reorder without migrating existing stores.
var classificationRules = []categoryRule{
	{CategoryBusiness, []string{"business", "startup", "company", "meeting", "client", "revenue", "pitch", "investor"}},
	{CategoryInvestment, []string{"invest", "stock", "crypto", "trading", "portfolio", "bitcoin", "eth"}},
	{CategoryInterest, []string{"love", "enjoy", "favorite", "like", "interested", "passion", "hobby"}},
	{CategoryHabit, []string{"every day", "always", "usually", "routine", "habit", "morning", "evening"}},
	{CategoryPersonalTrait, []string{"i am", "i'm", "i feel", "i think", "i believe", "my opinion"}},
	{CategoryPreference, []string{"prefer", "rather", "better than", "dont like", "don't like", "hate"}},
	{CategoryRelationship, []string{"friend", "family", "mom", "dad", "brother", "sister", "relationship"}},
	{CategoryHumor, []string{"haha", "lol", "lmao", "😂", "🤣", "funny", "joke"}},
}

// Classify assigns a category by case-insensitive substring matching
// against the ordered rule table. Text matching no rule is general.
func Classify(text string) Category {
	lower := strings.ToLower(text)
	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}
