package rules

import "github.com/mvoloshin/personify/internal/model"

// Builtin returns the default rule table. Registration order matters:
// ties in aggregate weight resolve to the earlier rule.
func Builtin() []model.TraitRule {
	return []model.TraitRule{
		// Locations
		{Category: model.CategoryLocation, Value: "NYC", Keywords: []string{"newyork", "manhattan", "brooklyn", "queens", "bronx", "nyc"}},
		{Category: model.CategoryLocation, Value: "San Francisco", Keywords: []string{"sanfrancisco", "bayarea", "siliconvalley"}},
		{Category: model.CategoryLocation, Value: "Seattle", Keywords: []string{"seattle", "washington", "pnw"}},
		{Category: model.CategoryLocation, Value: "Los Angeles", Keywords: []string{"losangeles", "california", "socal"}},
		{Category: model.CategoryLocation, Value: "Chicago", Keywords: []string{"chicago", "illinois", "midwest"}},
		{Category: model.CategoryLocation, Value: "Boston", Keywords: []string{"boston", "massachusetts", "cambridge"}},
		{Category: model.CategoryLocation, Value: "Austin", Keywords: []string{"austin", "texas"}},
		{Category: model.CategoryLocation, Value: "Denver", Keywords: []string{"denver", "colorado"}},
		{Category: model.CategoryLocation, Value: "Canada", Keywords: []string{"canada", "toronto", "vancouver", "montreal"}},
		{Category: model.CategoryLocation, Value: "UK", Keywords: []string{"london", "britain", "england", "scotland"}},
		{Category: model.CategoryLocation, Value: "Europe", Keywords: []string{"germany", "france", "netherlands", "sweden", "norway"}},

		// Occupations
		{Category: model.CategoryOccupation, Value: "Software Developer", Keywords: []string{"programming", "coding", "developer", "software", "python", "javascript", "react", "node", "git", "github"}},
		{Category: model.CategoryOccupation, Value: "Data Scientist", Keywords: []string{"analytics", "machine learning", "statistics", "pandas", "numpy", "data science"}},
		{Category: model.CategoryOccupation, Value: "Designer", Keywords: []string{"design", "figma", "photoshop", "creative", "ui", "ux"}},
		{Category: model.CategoryOccupation, Value: "Student", Keywords: []string{"university", "college", "homework", "exam", "professor", "semester", "graduation"}},
		{Category: model.CategoryOccupation, Value: "Healthcare", Keywords: []string{"doctor", "nurse", "medical", "hospital", "patient", "healthcare"}},
		{Category: model.CategoryOccupation, Value: "Finance", Keywords: []string{"finance", "banking", "investment", "stock", "trading", "economics"}},
		{Category: model.CategoryOccupation, Value: "Marketing", Keywords: []string{"marketing", "advertising", "social media", "brand", "campaign"}},
		{Category: model.CategoryOccupation, Value: "Teacher", Keywords: []string{"teacher", "education", "classroom", "curriculum"}},

		// Age brackets
		{Category: model.CategoryAge, Value: "Teen (13-19)", Keywords: []string{"high school", "teenager", "parents", "allowance"}},
		{Category: model.CategoryAge, Value: "Young Adult (20-25)", Keywords: []string{"college", "university", "dorm", "first job", "internship"}},
		{Category: model.CategoryAge, Value: "Adult (26-35)", Keywords: []string{"career", "apartment", "dating", "relationship", "job search"}},
		{Category: model.CategoryAge, Value: "Adult (36-45)", Keywords: []string{"mortgage", "kids", "family", "career change", "management"}},
		{Category: model.CategoryAge, Value: "Adult (45+)", Keywords: []string{"retirement", "children", "grandchildren", "medicare"}},

		// Interests
		{Category: model.CategoryInterest, Value: "Gaming", Keywords: []string{"gaming", "xbox", "playstation", "nintendo", "steam", "twitch"}},
		{Category: model.CategoryInterest, Value: "Technology", Keywords: []string{"tech", "apple", "android", "computer", "hardware", "gadget"}},
		{Category: model.CategoryInterest, Value: "Sports", Keywords: []string{"football", "basketball", "baseball", "soccer", "hockey", "tennis", "golf"}},
		{Category: model.CategoryInterest, Value: "Fitness", Keywords: []string{"gym", "workout", "fitness", "running", "yoga", "diet"}},
		{Category: model.CategoryInterest, Value: "Food", Keywords: []string{"cooking", "recipe", "restaurant", "baking", "chef"}},
		{Category: model.CategoryInterest, Value: "Travel", Keywords: []string{"travel", "vacation", "trip", "flight", "hotel"}},
		{Category: model.CategoryInterest, Value: "Music", Keywords: []string{"music", "band", "concert", "album", "guitar", "piano", "spotify"}},
		{Category: model.CategoryInterest, Value: "Movies", Keywords: []string{"movie", "film", "netflix", "cinema", "actor", "director"}},
		{Category: model.CategoryInterest, Value: "Books", Keywords: []string{"book", "reading", "novel", "author", "library", "kindle"}},
	}
}
