package classify

// Category is one of the eight fixed department labels. The set is closed:
// department routing relies on exact-name lookup of the String form.
type Category int

const (
	Education Category = iota
	Healthcare
	Infrastructure
	Transport
	WaterSupply
	Electricity
	PublicSafety
	Others

	NumCategories = 8
)

var categoryNames = [NumCategories]string{
	"Education",
	"Healthcare",
	"Infrastructure",
	"Transport",
	"Water Supply",
	"Electricity",
	"Public Safety",
	"Others",
}

// String returns the department label for the category.
func (c Category) String() string {
	if c < 0 || c >= NumCategories {
		return "Others"
	}
	return categoryNames[c]
}

// Categories lists all labels in enumeration order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Score pairs a category with its posterior probability.
type Score struct {
	Category    Category
	Probability float64
}

// Result is the outcome of a single classification.
type Result struct {
	Category   Category
	Confidence float64
	// Distribution holds one score per category in enumeration order;
	// nil when classification short-circuited on empty input.
	Distribution []Score
}
